// Package config loads the optional tir.yaml project file: prelude sources
// to bind before a session, the history location and color preferences.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the project configuration.
type Config struct {
	// Prelude files hold `name = expr` lines bound before the session.
	Prelude []string `yaml:"prelude"`
	// History is the REPL history file path.
	History string `yaml:"history"`
	// Color switches ANSI output; nil means auto.
	Color *bool `yaml:"color"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{History: filepath.Join(home, ".tir_history")}
}

// Load reads path and fills defaults for unset fields. A missing file is
// not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.History == "" {
		cfg.History = Default().History
	}
	return cfg, nil
}
