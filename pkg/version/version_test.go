package version

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if got := GetVersion(); got != Version {
		t.Errorf("GetVersion() = %q, expected %q", got, Version)
	}
	if !strings.HasPrefix(GetVersion(), "v") {
		t.Errorf("expected semantic version prefix, got %q", GetVersion())
	}
}

func TestGetVersionWithCommit(t *testing.T) {
	original := GitCommit
	defer func() { GitCommit = original }()

	GitCommit = "unknown"
	if got := GetVersionWithCommit(); got != Version {
		t.Errorf("expected bare version for unknown commit, got %q", got)
	}

	GitCommit = "abcdef1234567890"
	expected := Version + " (abcdef1)"
	if got := GetVersionWithCommit(); got != expected {
		t.Errorf("GetVersionWithCommit() = %q, expected %q", got, expected)
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
	if info.GoVersion == "" {
		t.Error("expected go version to be populated")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("expected os/arch platform, got %q", info.Platform)
	}
}

func TestGetFullVersionString(t *testing.T) {
	full := GetFullVersionString()

	if !strings.HasPrefix(full, "callroute ") {
		t.Errorf("expected tool name prefix, got %q", full)
	}
	for _, field := range []string{"Built:", "Commit:", "Go:", "Platform:"} {
		if !strings.Contains(full, field) {
			t.Errorf("expected %q in full version string", field)
		}
	}
}
