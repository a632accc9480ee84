package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Session     sessionSchema      `toml:"session"`
	Attachments []attachmentSchema `toml:"attachments"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Identity string `toml:"identity"`
}

type attachmentSchema struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Subject string `toml:"subject"`
	AddedAt string `toml:"added_at"`
}
