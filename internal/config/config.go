package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".notebook"
	envPrefix  = "NB"

	KeyBaseURL        = "api.base_url"
	KeyTimeout        = "api.timeout"
	KeyStatePath      = "state.path"
	KeyStoreDriver    = "store.driver"
	KeyRedisAddr      = "store.redis_addr"
	KeyRedisNamespace = "store.namespace"
	KeySessionTTL     = "store.session_ttl"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"
	KeyLogDebug       = "log.debug"

	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultTimeout = 30 * time.Second
)

type StoreDriver string

const (
	StoreTOML   StoreDriver = "toml"
	StoreMemory StoreDriver = "memory"
	StoreRedis  StoreDriver = "redis"
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	StatePath      string
	StoreDriver    StoreDriver
	RedisAddr      string
	RedisNamespace string
	SessionTTL     time.Duration
	LogLevel       string
	LogFile        string
	Debug          bool
}

// Dir returns ~/.notebook.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir), nil
}

// Load reads ~/.notebook/config.toml when present and applies NB_* overrides
// such as NB_API_BASE_URL. Flags bound to cfg beforehand take precedence.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyBaseURL, DefaultBaseURL)
	cfg.SetDefault(KeyTimeout, DefaultTimeout)
	cfg.SetDefault(KeyStatePath, filepath.Join(dir, "state.toml"))
	cfg.SetDefault(KeyStoreDriver, string(StoreTOML))
	cfg.SetDefault(KeyRedisNamespace, "nb")
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyLogFile, filepath.Join(dir, "logs", "nb.log"))
	cfg.SetDefault(KeyLogDebug, false)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		BaseURL:        strings.TrimSpace(cfg.GetString(KeyBaseURL)),
		Timeout:        cfg.GetDuration(KeyTimeout),
		StatePath:      cfg.GetString(KeyStatePath),
		StoreDriver:    StoreDriver(strings.ToLower(strings.TrimSpace(cfg.GetString(KeyStoreDriver)))),
		RedisAddr:      strings.TrimSpace(cfg.GetString(KeyRedisAddr)),
		RedisNamespace: cfg.GetString(KeyRedisNamespace),
		SessionTTL:     cfg.GetDuration(KeySessionTTL),
		LogLevel:       cfg.GetString(KeyLogLevel),
		LogFile:        cfg.GetString(KeyLogFile),
		Debug:          cfg.GetBool(KeyLogDebug),
	}

	if err := loaded.Validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}

	switch c.StoreDriver {
	case StoreTOML, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%s is required when %s is redis", KeyRedisAddr, KeyStoreDriver)
		}
	default:
		return fmt.Errorf("unsupported %s %q (want toml, memory or redis)", KeyStoreDriver, c.StoreDriver)
	}

	return nil
}
