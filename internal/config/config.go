// Package config loads mdq settings from a TOML file, with CLI flags
// layered on top by the command layer.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

// Config holds everything a run needs to know up front.
type Config struct {
	// SourceGlob selects the note files to index, e.g. "~/notes/*.md".
	SourceGlob string `mapstructure:"source-glob"`

	// IndexPath is the on-disk index directory. Empty means in-memory.
	IndexPath string `mapstructure:"index-path"`

	// ChecksumPath is where per-file checksums persist between runs.
	ChecksumPath string `mapstructure:"checksum-path"`

	// Limit caps query result sets.
	Limit int `mapstructure:"limit"`

	// LogLevel is the minimum level written to the log file.
	LogLevel string `mapstructure:"log-level"`
}

// DefaultPath returns the conventional config location,
// ~/.config/mdq/mdq.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "mdq", "mdq.toml")
	}
	return filepath.Join(home, ".config", "mdq", "mdq.toml")
}

// dataDir is where mdq keeps its own state (index, checksums, logs).
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mdq"
	}
	return filepath.Join(home, ".mdq")
}

// Default returns the built-in configuration used when no file and no
// flags override it.
func Default() *Config {
	return &Config{
		IndexPath:    filepath.Join(dataDir(), "index.bleve"),
		ChecksumPath: filepath.Join(dataDir(), "checksums.yaml"),
		Limit:        100,
		LogLevel:     "info",
	}
}

// Load reads the config file at path. When path is empty the default
// location is tried, and its absence is not an error; an explicitly
// given path must exist. File values override the built-in defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("index-path", cfg.IndexPath)
	v.SetDefault("checksum-path", cfg.ChecksumPath)
	v.SetDefault("limit", cfg.Limit)
	v.SetDefault("log-level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && !explicit {
			return cfg, nil
		}
		code := mdqerrors.ErrCodeConfigInvalid
		if os.IsNotExist(err) {
			code = mdqerrors.ErrCodeConfigNotFound
		}
		return nil, mdqerrors.Wrap(code, err).WithPath(path)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeConfigInvalid, err).WithPath(path)
	}

	cfg.SourceGlob = expandHome(cfg.SourceGlob)
	cfg.IndexPath = expandHome(cfg.IndexPath)
	cfg.ChecksumPath = expandHome(cfg.ChecksumPath)
	return cfg, nil
}

// Validate checks that the settings a sync run depends on are present.
func (c *Config) Validate() error {
	if c.SourceGlob == "" {
		return mdqerrors.Newf(mdqerrors.ErrCodeConfigInvalid,
			"source-glob is not set; configure it in %s or pass --source", DefaultPath())
	}
	if c.Limit <= 0 {
		return mdqerrors.Newf(mdqerrors.ErrCodeConfigInvalid, "limit must be positive, got %d", c.Limit)
	}
	return nil
}

// expandHome rewrites a leading "~/" to the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != filepath.Separator {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
