package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/devbush/ytbatch/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Paths       PathsConfig       `yaml:"paths"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
}

// DefaultsConfig holds the batch behavior defaults
type DefaultsConfig struct {
	Sampling       string `yaml:"sampling"`      // sample-url or first-entry
	RangeParsing   string `yaml:"range_parsing"` // permissive or strict
	OnError        string `yaml:"on_error"`      // continue or abort
	OutputTemplate string `yaml:"output_template"`
}

// CredentialsConfig enables browser cookies; the profile is asked for at run time
type CredentialsConfig struct {
	Browser string `yaml:"browser"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	YtDlp string `yaml:"yt_dlp"`
}

// CacheConfig sizes the in-memory metadata cache
type CacheConfig struct {
	MetadataEntries int `yaml:"metadata_entries"`
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Sampling:       string(domain.SampleExplicitURL),
			RangeParsing:   "permissive",
			OnError:        string(domain.ContinueOnError),
			OutputTemplate: domain.DefaultOutputTemplate,
		},
		Cache: CacheConfig{
			MetadataEntries: 512,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// AppDir returns the application directory (~/.ytbatch)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ytbatch"
	}
	return filepath.Join(home, ".ytbatch")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs(fs afero.Fs) error {
	for _, dir := range []string{AppDir(), BinDir()} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes config to file
func (c *Config) Save(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	if _, err := domain.ParseSamplingKind(c.Defaults.Sampling); err != nil {
		return err
	}
	if _, err := domain.ParseFailurePolicy(c.Defaults.OnError); err != nil {
		return err
	}
	switch c.Defaults.RangeParsing {
	case "permissive", "strict":
	default:
		return fmt.Errorf("unknown range parsing policy: %s (use permissive or strict)", c.Defaults.RangeParsing)
	}
	if c.Cache.MetadataEntries < 0 {
		return fmt.Errorf("cache.metadata_entries must not be negative")
	}
	return nil
}

// SamplingKind returns the validated sampling mode
func (c *Config) SamplingKind() domain.SamplingKind {
	kind, err := domain.ParseSamplingKind(c.Defaults.Sampling)
	if err != nil {
		return domain.SampleExplicitURL
	}
	return kind
}

// FailurePolicy returns the validated failure policy
func (c *Config) FailurePolicy() domain.FailurePolicy {
	policy, err := domain.ParseFailurePolicy(c.Defaults.OnError)
	if err != nil {
		return domain.ContinueOnError
	}
	return policy
}
