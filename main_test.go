package main

import (
	"testing"

	"tekqueue/cmd"
)

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	version = "1.2.3"
	if version != "1.2.3" {
		t.Errorf("Expected version to be 1.2.3, got %s", version)
	}

	version = "dev"
}

func TestSetVersion(t *testing.T) {
	// SetVersion must accept any build-injected value without panicking.
	cmd.SetVersion(version)
	cmd.SetVersion("0.0.0-snapshot")
	cmd.SetVersion(version)
}
