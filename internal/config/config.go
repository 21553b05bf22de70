// Package config loads client settings from files, environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL  = "http://localhost:8000/api"
	DefaultLogLevel = "info"
	DefaultTheme    = "classic"

	ProjectConfigFile = "todo.toml"
)

// Config holds everything the client needs to talk to the backend.
type Config struct {
	BaseURL  string `toml:"base_url"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	Theme    string `toml:"theme"`

	// ConfigFile is an explicit file given with -config; not read from TOML.
	ConfigFile string `toml:"-"`
}

// Load resolves configuration in priority order:
// 1. Defaults
// 2. User config file (<UserConfigDir>/todo/config.toml)
// 3. Project config file (todo.toml in the working directory)
// 4. Explicit -config file
// 5. Environment variables (.env in the working directory fills gaps)
// 6. CLI flags
//
// Flags are parsed from args into fs; remaining arguments stay in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	// Flags are parsed before the explicit file is read so -config is known,
	// then re-applied so they still win over the file and env.
	flags := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	if flags.configFile != "" {
		cfg.ConfigFile = expandPath(flags.configFile)
		if err := loadConfigFile(cfg, cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigFile, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	flags.apply(fs, cfg)

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.LogLevel = DefaultLogLevel
	cfg.Theme = DefaultTheme
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func finalizeConfig(cfg *Config) error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: want an absolute http(s) URL", cfg.BaseURL)
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	switch strings.ToLower(cfg.Theme) {
	case "classic", "neon", "mono":
		cfg.Theme = strings.ToLower(cfg.Theme)
	default:
		return fmt.Errorf("invalid theme %q: want classic, neon or mono", cfg.Theme)
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	return nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(dir, "todo", "config.toml"))
}

func findProjectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(wd, ProjectConfigFile))
}

func existing(p string) string {
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return p // let the decoder report the real problem
		}
		return ""
	}
	return p
}
