// Package testutil provides helpers for testing binstall in isolation.
package testutil

import (
	"testing"
)

// configVars lists every environment variable the configuration layers
// read, including the generic fallbacks.
var configVars = []string{
	"BINSTALL_OWNER",
	"BINSTALL_BINARY",
	"BINSTALL_VERSION",
	"BINSTALL_OUTPUT_DIR",
	"BINSTALL_OS",
	"BINSTALL_ARCH",
	"BINSTALL_DEBUG",
	"BINSTALL_DRY_RUN",
	"BINSTALL_DISABLE_SSL",
	"BINSTALL_GITHUB_TOKEN",
	"DISABLE_SSL",
	"GITHUB_TOKEN",
}

// ScrubEnv clears every binstall configuration variable for the
// duration of the test, so tests never pick up settings from the
// developer's shell. t.Setenv registers automatic restoration.
func ScrubEnv(t *testing.T) {
	t.Helper()
	for _, name := range configVars {
		t.Setenv(name, "")
	}
}
