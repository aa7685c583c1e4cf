package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user config and data directories.
const AppName = "autoarchive"

const (
	configFileName  = "config.toml"
	catalogFileName = "local_keys_db.json"
)

// Settings holds the per-user directories autoarchive reads and writes.
type Settings struct {
	ConfigDir string
	DataDir   string
}

// UserSettings resolves the directories for the current user.
func UserSettings() (*Settings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir: filepath.Join(configDir, AppName),
		DataDir:   filepath.Join(dataDir, AppName),
	}, nil
}

// ConfigPath is the default location of the config file.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, configFileName)
}

// CatalogPath is the default location of the local catalog.
func (s *Settings) CatalogPath() string {
	return filepath.Join(s.DataDir, catalogFileName)
}

// AuditLogPath is the location of the audit log.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}
