// Package config handles loading and managing bocmenh configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for bocmenh.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
	Locale  LocaleConfig  `yaml:"locale"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
}

// RulesConfig points at an optional rule-table override file.
type RulesConfig struct {
	Path string `yaml:"path"` // empty means built-in tables only
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// LocaleConfig selects the language recommendations are rendered in.
type LocaleConfig struct {
	Language string `yaml:"language"`
}

// CacheConfig sizes the call-boundary result cache.
type CacheConfig struct {
	Size int `yaml:"size"` // entries; 0 disables caching
}

// HistoryConfig controls recording of analysis results.
type HistoryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	DatabaseURL string        `yaml:"database_url"`
	Subject     string        `yaml:"subject"` // who the results belong to
	Archive     ArchiveConfig `yaml:"archive"`
}

// ArchiveConfig selects where full JSON reports are stored.
type ArchiveConfig struct {
	Backend   string `yaml:"backend"` // local, s3 or gcs
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // custom S3 endpoint (MinIO, R2)
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Locale: LocaleConfig{Language: "en"},
		Cache:  CacheConfig{Size: 512},
		History: HistoryConfig{
			Subject: "default",
			Archive: ArchiveConfig{
				Backend: "local",
				Dir:     filepath.Join(CacheDir(), "reports"),
			},
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BOCMENH_"

// ApplyEnv overrides fields from BOCMENH_* environment variables, e.g.
// BOCMENH_HISTORY_DATABASE_URL. lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"RULES_PATH":                 &c.Rules.Path,
		"LOG_LEVEL":                  &c.Logging.Level,
		"LOG_FORMAT":                 &c.Logging.Format,
		"LANGUAGE":                   &c.Locale.Language,
		"HISTORY_DATABASE_URL":       &c.History.DatabaseURL,
		"HISTORY_SUBJECT":            &c.History.Subject,
		"HISTORY_ARCHIVE_BACKEND":    &c.History.Archive.Backend,
		"HISTORY_ARCHIVE_DIR":        &c.History.Archive.Dir,
		"HISTORY_ARCHIVE_BUCKET":     &c.History.Archive.Bucket,
		"HISTORY_ARCHIVE_REGION":     &c.History.Archive.Region,
		"HISTORY_ARCHIVE_ENDPOINT":   &c.History.Archive.Endpoint,
		"HISTORY_ARCHIVE_ACCESS_KEY": &c.History.Archive.AccessKey,
		"HISTORY_ARCHIVE_SECRET_KEY": &c.History.Archive.SecretKey,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE: %w", EnvPrefix, err)
		}
		c.Cache.Size = n
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sHISTORY_ENABLED: %w", EnvPrefix, err)
		}
		c.History.Enabled = b
	}
	return nil
}

// Validate checks the fields the CLI cannot work without. It lower-cases
// the logging format in place.
func (c *Config) Validate() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: expected text or json, got %q", c.Logging.Format)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size: must not be negative, got %d", c.Cache.Size)
	}
	if !c.History.Enabled {
		return nil
	}
	if c.History.Subject == "" {
		return fmt.Errorf("history.subject: required when history is enabled")
	}
	switch c.History.Archive.Backend {
	case "local":
		if c.History.Archive.Dir == "" {
			return fmt.Errorf("history.archive.dir: required for the local backend")
		}
	case "s3", "gcs":
		if c.History.Archive.Bucket == "" {
			return fmt.Errorf("history.archive.bucket: required for the %s backend", c.History.Archive.Backend)
		}
	default:
		return fmt.Errorf("history.archive.backend: expected local, s3 or gcs, got %q", c.History.Archive.Backend)
	}
	return nil
}

// FindConfigFile looks for .bocmenh/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".bocmenh", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user data directory, ~/.cache/bocmenh.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "bocmenh")
}
