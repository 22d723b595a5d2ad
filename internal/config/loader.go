package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override the rc file.
const (
	EnvStore  = "ANNOTATESHOT_STORE"
	EnvLocale = "ANNOTATESHOT_LOCALE"
)

// Loader locates and reads the configuration.
type Loader struct {
	Version      string // build version, "dev" enables the working directory rc
	OverridePath string
	Getenv       func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath, Getenv: os.Getenv}
}

// Load reads the rc file if one exists and applies environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, err
		}
	}
	l.applyEnv(cfg)
	if cfg.Store == "" {
		cfg.Store = DefaultStorePath()
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvStore)); v != "" {
		cfg.Store = v
	}
	if v := strings.TrimSpace(getenv(EnvLocale)); v != "" {
		cfg.Locale = v
	}
}

// GetConfigPath returns the rc file to read, or "" when none exists.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		local := filepath.Join(wd, ".annotateshotrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	if p := UserConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// UserConfigPath is where "config save" writes.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "annotateshot", "config.rc")
}

// DefaultStorePath is the sqlite database used when none is configured.
func DefaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "annotateshot", "annotateshot.db")
	}
	return "annotateshot.db"
}
