package config

import (
	"strings"

	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
	"sirherobrine23.com.br/go-bds/mountrevert/revert"
)

// DefaultDir is searched for config.yaml when no path is given
const DefaultDir = "/data/adb/mountrevert"

// ApplyDefaults sets default values for any unspecified field.
func ApplyDefaults(cfg *Config) {
	if cfg.ModuleDir == "" {
		cfg.ModuleDir = revert.ModuleDir
	}
	if cfg.HidePrefix == "" {
		cfg.HidePrefix = revert.HidePrefix
	}

	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "mounts"
	}
	if cfg.Source.Kind == "mounts" && cfg.Source.Path == "" {
		cfg.Source.Path = mounts.ProcThreadSelfMounts
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
