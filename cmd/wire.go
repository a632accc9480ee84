package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/bnema/notebook-cli/internal/adapters/api"
	"github.com/bnema/notebook-cli/internal/adapters/ids"
	"github.com/bnema/notebook-cli/internal/adapters/render/transcript"
	"github.com/bnema/notebook-cli/internal/adapters/store/memory"
	redisstore "github.com/bnema/notebook-cli/internal/adapters/store/redis"
	tomlstore "github.com/bnema/notebook-cli/internal/adapters/store/toml"
	"github.com/bnema/notebook-cli/internal/application"
	"github.com/bnema/notebook-cli/internal/config"
	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/logging"
	"github.com/bnema/notebook-cli/internal/ports"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg      config.Config
	logger   *zap.Logger
	notebook *application.Notebook
	render   func(transcript.View, transcript.RenderOptions) (string, error)
	copy     func(string) error
	closers  []func() error
}

func (a *app) wire(cmd *cobra.Command, v *viper.Viper) error {
	if a.notebook != nil {
		return nil
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Debug:   cfg.Debug,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}
	a.logger = logger

	client, err := api.NewClient(api.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger)
	if err != nil {
		return fmt.Errorf("wire api client: %w", err)
	}

	sessions, attachments, closer, err := wireStores(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	clock := ports.SystemClock{}
	notebook, err := application.NewNotebook(application.Dependencies{
		Backend:     client,
		Sessions:    sessions,
		Attachments: attachments,
		IDs:         ids.NewULIDGenerator(clock),
		Clock:       clock,
		Logger:      logger,
		Observer:    logTransitions(logger),
	})
	if err != nil {
		return fmt.Errorf("wire notebook: %w", err)
	}

	if _, err := notebook.Restore(cmd.Context()); err != nil {
		if !errors.Is(err, domain.ErrInvalidState) {
			return fmt.Errorf("restore notebook: %w", err)
		}
		// logout clears the stores, so it is the way out of a bad state file.
		if cmd.Name() != "logout" {
			return fmt.Errorf("restore notebook: %w (run nb logout to reset)", err)
		}
		logger.Warn("ignoring invalid stored state", zap.Error(err))
	}

	a.cfg = cfg
	a.notebook = notebook
	a.render = transcript.Render
	a.copy = clipboard.WriteAll

	logger.Debug("notebook wired",
		zap.String("command", cmd.CommandPath()),
		zap.String("base_url", cfg.BaseURL),
		zap.String("store", string(cfg.StoreDriver)),
	)

	return nil
}

func logTransitions(logger *zap.Logger) application.Observer {
	return func(state domain.RequestState) {
		fields := []zap.Field{
			zap.String("operation", string(state.Operation)),
			zap.String("phase", string(state.Phase)),
		}
		if state.Err != nil {
			fields = append(fields, zap.Error(state.Err))
		}
		logger.Debug("request state changed", fields...)
	}
}

func wireStores(cfg config.Config) (ports.SessionStore, ports.AttachmentRepository, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New(cfg.SessionTTL)
		return store.Sessions(), store.Attachments(), nil, nil
	case config.StoreRedis:
		store, err := redisstore.New(redisstore.Options{
			Addr:       cfg.RedisAddr,
			Namespace:  cfg.RedisNamespace,
			SessionTTL: cfg.SessionTTL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("wire redis store: %w", err)
		}
		return store.Sessions(), store.Attachments(), store.Close, nil
	default:
		file, err := tomlstore.Open(cfg.StatePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("wire state file: %w", err)
		}
		return tomlstore.NewSessionStore(file), tomlstore.NewAttachmentRepository(file), nil, nil
	}
}

func (a *app) close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if a.logger != nil {
		_ = a.logger.Sync()
	}

	return errors.Join(errs...)
}

func (a *app) renderOptions(out io.Writer) transcript.RenderOptions {
	return transcript.RenderOptions{
		Markdown: isTerminal(out),
		Style:    "auto",
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
