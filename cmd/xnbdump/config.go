package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the xnbdump configuration, read from flags, XNBDUMP_*
// environment variables and an optional xnbdump.yaml.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"`
	NoColor   bool   `mapstructure:"no_color"`
}

var exportFormats = []string{"json", "yaml", "cbor", "toml"}

// loadConfig merges defaults, the config file, the environment and the
// given flags, in increasing priority. An empty path searches the working
// directory for xnbdump.yaml.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "warn")
	v.SetDefault("output_dir", ".")
	v.SetDefault("format", "json")
	v.SetDefault("no_color", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("xnbdump")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("XNBDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"log_level", "output_dir", "format", "no_color"} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	cfg.Format = strings.ToLower(cfg.Format)
	for _, f := range exportFormats {
		if cfg.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", cfg.Format, strings.Join(exportFormats, ", "))
}
