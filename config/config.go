// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads the command line settings.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const (
	Name      = "multiasset"
	envPrefix = "MULTIASSET"
)

type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// Output is the format of info summaries: text, json or yaml.
	Output    string `mapstructure:"output"`
	ExportDir string `mapstructure:"export_dir"`
}

var (
	logFormats = []string{"text", "json"}
	outputs    = []string{"text", "json", "yaml"}
)

// Load reads cfgFile, or multiasset.yaml from the home or working directory
// when cfgFile is empty. A missing default file is not an error.
// MULTIASSET_* environment variables override the file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output", "text")
	v.SetDefault("export_dir", ".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return errors.Errorf("unsupported log format %q, want one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}
	if !slices.Contains(outputs, c.Output) {
		return errors.Errorf("unsupported output %q, want one of %s", c.Output, strings.Join(outputs, ", "))
	}
	if c.ExportDir == "" {
		return errors.New("export directory cannot be empty")
	}
	return nil
}

// Level returns the slog level of LogLevel. Load has validated it.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.Errorf("unsupported log level %q", s)
	}
	return l, nil
}
