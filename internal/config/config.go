// Package config loads user settings from an optional YAML file and TODO_*
// environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/abatilo/todo/internal/storage"
)

const (
	envPrefix  = "TODO"
	appName    = "todo"
	configFile = "config.yaml"
)

// Config holds every user-tunable setting.
type Config struct {
	DataFile   string `mapstructure:"data_file"`
	DataFormat string `mapstructure:"data_format"`
	ExportFile string `mapstructure:"export_file"`
	LogFile    string `mapstructure:"log_file"`
	LogLevel   string `mapstructure:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataFile:   "~/.todo/tasks.json",
		DataFormat: "", // inferred from DataFile's extension
		ExportFile: "tasks.csv",
		LogFile:    "~/.todo/todo.log",
		LogLevel:   "info",
	}
}

// DefaultPath returns ~/.config/todo/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// Load reads configuration from path, or from DefaultPath when path is empty.
// A missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil || explicit {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("data_format", cfg.DataFormat)
	v.SetDefault("export_file", cfg.ExportFile)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.DataFile, &c.ExportFile, &c.LogFile} {
		expanded, err := storage.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}
