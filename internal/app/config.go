package app

import (
	"time"

	"tekqueue/internal/config"
)

// Config holds the application configuration assembled from flags before the
// file-backed configuration is loaded.
type Config struct {
	// Debug enables verbose logging across the application.
	Debug bool

	// ConfigPath is an optional path to a YAML configuration file.
	ConfigPath string

	// Kubeconfig is an optional path to a kubeconfig file. When empty, the
	// usual in-cluster / environment detection applies.
	Kubeconfig string

	// NamespacePatterns overrides the configured namespace patterns when
	// non-empty.
	NamespacePatterns []string

	// SweepInterval overrides the configured sweep interval when positive.
	SweepInterval time.Duration

	// QueueConfig is the effective configuration after loading and overrides.
	QueueConfig *config.QueueConfig
}

// NewConfig creates a new application configuration from flag values.
func NewConfig(debug bool, configPath, kubeconfig string, namespacePatterns []string, sweepInterval time.Duration) *Config {
	return &Config{
		Debug:             debug,
		ConfigPath:        configPath,
		Kubeconfig:        kubeconfig,
		NamespacePatterns: namespacePatterns,
		SweepInterval:     sweepInterval,
	}
}
