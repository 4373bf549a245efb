// Package config loads the optional YAML config file for the CLI.
package config

import (
	"github.com/spf13/viper"
)

const DefaultOutputFile = "scan_results/results.json"

type Config struct {
	ScanPath   string `mapstructure:"scan_path"`
	OutputFile string `mapstructure:"output_file"`
	History    bool   `mapstructure:"history"`
	TUI        bool   `mapstructure:"tui"`
}

// Default returns the config used when no file is given.
func Default() *Config {
	return &Config{
		OutputFile: DefaultOutputFile,
		History:    true,
	}
}

// Load reads a YAML config from path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("output_file", DefaultOutputFile)
	v.SetDefault("history", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
