package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")

	file, err := SafeCreateFile(path)
	if err != nil {
		t.Fatalf("SafeCreateFile() error: %v", err)
	}
	defer file.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestSafeCreateFileRejectsTraversal(t *testing.T) {
	if _, err := SafeCreateFile("../../etc/passwd"); err == nil {
		t.Error("expected traversal path to be rejected")
	}
}

func TestSafeCreateFileRejectsSensitiveDirectories(t *testing.T) {
	if _, err := SafeCreateFile("/etc/callroute.json"); err == nil {
		t.Error("expected sensitive system path to be rejected")
	}
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()

	if !DirectoryExists(dir) {
		t.Error("expected existing directory to be reported")
	}
	if DirectoryExists(filepath.Join(dir, "missing")) {
		t.Error("expected missing directory to be reported absent")
	}
	if DirectoryExists("") {
		t.Error("expected empty path to be reported absent")
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if DirectoryExists(file) {
		t.Error("expected regular file not to count as directory")
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		name       string
		sourceRoot string
		format     string
		expected   string
	}{
		{"text format", "/home/dev/myapp", "text", "myapp.callroutes.txt"},
		{"json format", "./myapp", "json", "myapp.callroutes.json"},
		{"csv format", "myapp/", "csv", "myapp.callroutes.csv"},
		{"dot format", "myapp", "dot", "myapp.callroutes.dot"},
		{"current directory", ".", "json", "analysis.callroutes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateOutputFilename(tt.sourceRoot, tt.format)
			if got != tt.expected {
				t.Errorf("GenerateOutputFilename(%q, %q) = %q, expected %q",
					tt.sourceRoot, tt.format, got, tt.expected)
			}
		})
	}
}
