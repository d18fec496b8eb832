package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/edwardstark/taglock/internal/device"
)

// Config holds application settings stored at ~/.taglock/config.
type Config struct {
	Port     string `yaml:"port"`
	Baud     int    `yaml:"baud"`
	TagsFile string `yaml:"tags_file"`
	Theme    string `yaml:"theme"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Baud:     device.DefaultBaud,
		TagsFile: "allowed_tags.json",
		Theme:    "dark",
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taglock", "config")
}

// Load reads and parses the config file. A missing file is not an error;
// the app must start cold on a fresh machine, so defaults are returned.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Baud <= 0 {
		cfg.Baud = device.DefaultBaud
	}
	if cfg.TagsFile == "" {
		cfg.TagsFile = "allowed_tags.json"
	}

	return cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
