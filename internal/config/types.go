package config

import (
	"fmt"
	"time"
)

// QueueConfig is the top-level configuration structure for tekqueue.
type QueueConfig struct {
	// NamespacePatterns are the glob patterns matched against namespace names
	// to decide which namespaces are under queue management.
	NamespacePatterns []string `yaml:"namespacePatterns,omitempty"`

	// SweepInterval is how often the reconciler re-derives the queue from
	// live cluster state and corrects drift.
	SweepInterval time.Duration `yaml:"sweepInterval,omitempty"`

	// DefaultLimit is the concurrency ceiling used until a GlobalLimit
	// resource has been read successfully.
	DefaultLimit int `yaml:"defaultLimit,omitempty"`

	// RequestTimeout bounds every individual API call the controller makes.
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"`
}

// GetDefaultConfig returns the default configuration for tekqueue.
func GetDefaultConfig() QueueConfig {
	return QueueConfig{
		NamespacePatterns: []string{"*-cicd"},
		SweepInterval:     5 * time.Second,
		DefaultLimit:      10,
		RequestTimeout:    15 * time.Second,
	}
}

// Validate checks the configuration for values the controller cannot run with.
func (c QueueConfig) Validate() error {
	if len(c.NamespacePatterns) == 0 {
		return fmt.Errorf("at least one namespace pattern is required")
	}
	for _, p := range c.NamespacePatterns {
		if p == "" {
			return fmt.Errorf("namespace pattern must not be empty")
		}
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %v", c.SweepInterval)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default limit must be at least 1, got %d", c.DefaultLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	return nil
}
