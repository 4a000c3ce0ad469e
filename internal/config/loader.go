package config

import (
	"errors"
	"fmt"
	"os"

	"tekqueue/pkg/logging"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the given file path, layered over the
// defaults. A missing file is not an error: the defaults are returned so the
// controller can run with no configuration at all.
func LoadConfig(configFilePath string) (QueueConfig, error) {
	config := GetDefaultConfig()

	if configFilePath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config file at %s, using defaults", configFilePath)
			return config, nil
		}
		return QueueConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return QueueConfig{}, fmt.Errorf("error parsing config from %s: %w", configFilePath, err)
	}

	if err := config.Validate(); err != nil {
		return QueueConfig{}, fmt.Errorf("invalid config in %s: %w", configFilePath, err)
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
