package config

import "flag"

type flagValues struct {
	configFile string
	baseURL    string
	logFile    string
	logLevel   string
	theme      string
}

// bindFlags registers the root flags. Values are applied later so that
// only flags the user actually set override file and env values.
func bindFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.configFile, "config", "", "Path to a TOML config file")
	fs.StringVar(&v.baseURL, "api", "", "Backend base URL (default "+DefaultBaseURL+")")
	fs.StringVar(&v.logFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&v.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&v.theme, "theme", "", "Color theme: classic, neon, mono")
	return v
}

func (v *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api":
			cfg.BaseURL = v.baseURL
		case "log-file":
			cfg.LogFile = v.logFile
		case "log-level":
			cfg.LogLevel = v.logLevel
		case "theme":
			cfg.Theme = v.theme
		}
	})
}
