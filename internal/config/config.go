// Package config provides configuration loading for the outputfs command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendDrive  = "drive"
	BackendHDFS   = "hdfs"
)

// Config selects and configures the filesystem backend.
type Config struct {
	Backend string `yaml:"backend"`

	// Local
	Root string `yaml:"root"`

	// Google Drive
	DriveRootID string `yaml:"drive_root_id"`

	// HDFS
	Namenode string `yaml:"namenode"`
	HDFSUser string `yaml:"hdfs_user"`

	// Logging
	Verbose bool `yaml:"verbose"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Backend: BackendLocal,
		Root:    ".",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the settings required by the selected backend are present.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendLocal:
		if c.Root == "" {
			return errors.New("root is required for the local backend")
		}
		return nil
	case BackendDrive:
		if c.DriveRootID == "" {
			return errors.New("drive_root_id is required for the drive backend")
		}
		return nil
	case BackendHDFS:
		if c.Namenode == "" {
			return errors.New("namenode is required for the hdfs backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}
