package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestGetVersionUnset(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = ""
	if GetVersion() != "unknown" {
		t.Errorf("Expected 'unknown' for an empty version, got '%s'", GetVersion())
	}
}
