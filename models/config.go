package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchConfig holds runtime configuration for batch extraction runs.
type BatchConfig struct {
	URLs        []string `yaml:"urls"`
	WorkerCount int      `yaml:"workers"`
	OutputDir   string   `yaml:"output_dir"`
	DBPath      string   `yaml:"db_path"`
}

// LoadBatchConfig reads a yaml batch config from path and applies defaults.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := &BatchConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	if config.OutputDir == "" {
		config.OutputDir = "pagectx-results"
	}
	return config, nil
}
