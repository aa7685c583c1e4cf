package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// Environment variables that override the remote section.
const (
	EnvToken      = "AUTOARCHIVE_TOKEN"
	EnvDocumentID = "AUTOARCHIVE_DOCUMENT_ID"
)

// Defaults written by DefaultConfig.
const (
	DefaultArchiverPath   = `C:\Program Files\7-Zip\7z.exe`
	DefaultRemoteFilename = "keys_db.json"
	DefaultRemoteBaseURL  = "https://api.github.com"
	DefaultTimeoutSeconds = 15
	DefaultOutputDir      = "output_archives"
	DefaultRestoreDir     = "restored_files"
)

type Config struct {
	Archiver ArchiverConfig `toml:"archiver" json:"archiver"`
	Remote   RemoteConfig   `toml:"remote" json:"remote"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
}

type ArchiverConfig struct {
	Path             string `toml:"path" json:"path"`
	CompressionLevel int    `toml:"compression_level" json:"compression_level"`
}

type RemoteConfig struct {
	Token          string `toml:"token" json:"token"`
	DocumentID     string `toml:"document_id" json:"document_id"`
	Filename       string `toml:"filename" json:"filename"`
	BaseURL        string `toml:"base_url" json:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeout_seconds"`
}

type StorageConfig struct {
	// CatalogPath empty means Settings.CatalogPath.
	CatalogPath string `toml:"catalog_path" json:"catalog_path"`
	OutputDir   string `toml:"output_dir" json:"output_dir"`
	RestoreDir  string `toml:"restore_dir" json:"restore_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Archiver: ArchiverConfig{
			Path: DefaultArchiverPath,
		},
		Remote: RemoteConfig{
			Filename:       DefaultRemoteFilename,
			BaseURL:        DefaultRemoteBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Storage: StorageConfig{
			OutputDir:  DefaultOutputDir,
			RestoreDir: DefaultRestoreDir,
		},
	}
}

// LoadConfig reads the config file at path over the defaults.
// A missing file yields DefaultConfig. Unknown keys are returned so
// the caller can warn about typos.
func LoadConfig(path string) (*Config, []string, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil, nil
	}

	unknown, err := LoadTOML(path, config)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	return config, unknown, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks ranges the archiver and remote depend on.
func (c *Config) Validate() error {
	if c.Archiver.CompressionLevel < 0 || c.Archiver.CompressionLevel > 9 {
		return fmt.Errorf("%w: archiver.compression_level must be between 0 and 9, got %d",
			kerrors.ErrInvalidConfig, c.Archiver.CompressionLevel)
	}
	if c.Remote.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: remote.timeout_seconds must not be negative", kerrors.ErrInvalidConfig)
	}
	if c.Remote.BaseURL != "" && !strings.HasPrefix(c.Remote.BaseURL, "http://") && !strings.HasPrefix(c.Remote.BaseURL, "https://") {
		return fmt.Errorf("%w: remote.base_url must be an http(s) URL, got %q", kerrors.ErrInvalidConfig, c.Remote.BaseURL)
	}
	return nil
}

// ApplyEnv overrides the remote credentials from the environment.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvToken); ok && v != "" {
		c.Remote.Token = v
	}
	if v, ok := lookup(EnvDocumentID); ok && v != "" {
		c.Remote.DocumentID = v
	}
}

// RemoteEnabled reports whether both a token and a document ID are set.
func (c *Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.Remote.Token) != "" && strings.TrimSpace(c.Remote.DocumentID) != ""
}

// Timeout returns the remote request timeout.
func (c *Config) Timeout() time.Duration {
	if c.Remote.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// ResolveCatalogPath returns the configured catalog path or the default under s.
func (c *Config) ResolveCatalogPath(s *Settings) string {
	if c.Storage.CatalogPath != "" {
		return c.Storage.CatalogPath
	}
	return s.CatalogPath()
}
