package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
)

// Config is the mountrevert configuration.
//
// Precedence, highest first: MOUNTREVERT_* environment variables,
// configuration file, defaults.
type Config struct {
	// ModuleDir is the module image mount point, unmounted last
	ModuleDir string `mapstructure:"module_dir" yaml:"module_dir" validate:"required,startswith=/"`

	// HidePrefix hides every mount point starting with it
	HidePrefix string `mapstructure:"hide_prefix" yaml:"hide_prefix" validate:"required,startswith=/"`

	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SourceConfig selects where mount table snapshots come from
type SourceConfig struct {
	// Kind is "mounts" (fstab format file) or "mountinfo"
	Kind string `mapstructure:"kind" yaml:"kind" validate:"required,oneof=mounts mountinfo"`

	// Path of the fstab format file, only for kind mounts, defaults to /proc/thread-self/mounts
	Path string `mapstructure:"path" yaml:"path" validate:"omitempty,startswith=/"`
}

// Open returns the mount table source selected by Kind
func (src SourceConfig) Open() mounts.Source {
	if src.Kind == "mountinfo" {
		return mounts.Mountinfo{}
	}
	return mounts.File(src.Path)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

type MetricsConfig struct {
	// Textfile receives metrics after each run, empty to disable
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// A missing file is not an error, defaults and environment are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	// MOUNTREVERT_SOURCE_KIND=mountinfo
	v.SetEnvPrefix("MOUNTREVERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only apply to known keys
	for _, key := range []string{
		"module_dir", "hide_prefix",
		"source.kind", "source.path",
		"logging.level", "logging.format", "logging.output",
		"metrics.textfile",
	} {
		v.SetDefault(key, "")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultDir)
}

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config file")
}
