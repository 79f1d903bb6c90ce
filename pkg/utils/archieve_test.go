package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidatePaths(t *testing.T) {
	tempDir := t.TempDir()

	tempFile := filepath.Join(tempDir, "test-file.txt")
	if err := os.WriteFile(tempFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	tests := []struct {
		name        string
		paths       []string
		expectError bool
	}{
		{"Valid file", []string{tempFile}, false},
		{"Valid directory", []string{tempDir}, false},
		{"Multiple valid paths", []string{tempFile, tempDir}, false},
		{"Non-existent path", []string{filepath.Join(tempDir, "non-existent")}, true},
		{"Empty paths", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaths(tt.paths)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidatePaths() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestBackupFileName(t *testing.T) {
	at := time.Date(2026, 1, 13, 19, 35, 6, 0, time.Local)

	result := BackupFileName("My World", at)
	expected := "My World_2026-01-13_19-35-06.zip"
	if result != expected {
		t.Errorf("BackupFileName() = %s, want %s", result, expected)
	}
}

func TestInferWorldName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{"Timestamped backup", "My World_2026-01-13_19-35-06.zip", "My World"},
		{"Timestamped backup with path", "/tmp/downloads/Survival_2025-12-31_23-59-59.zip", "Survival"},
		{"Plain name", "Creative.zip", "Creative"},
		{"Underscore in wrong place", "abcdefghijklmnopqrstu.zip", "abcdefghijklmnopqrstu"},
		{"Only a timestamp", "_2026-01-13_19-35-06.zip", "_2026-01-13_19-35-06"},
		{"Round trip", BackupFileName("Realm_2", time.Now()), "Realm_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InferWorldName(tt.fileName)
			if result != tt.expected {
				t.Errorf("InferWorldName(%q) = %q, want %q", tt.fileName, result, tt.expected)
			}
		})
	}
}

func TestIsZipFile(t *testing.T) {
	if !IsZipFile("world.zip") || !IsZipFile("WORLD.ZIP") {
		t.Errorf("IsZipFile() = false for zip names")
	}
	if IsZipFile("world.tar.gz") || IsZipFile("world") {
		t.Errorf("IsZipFile() = true for non-zip names")
	}
}

func TestCleanupTempFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "cleanup-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()
	tempPath := tempFile.Name()

	err = CleanupTempFile(tempPath)
	if err != nil {
		t.Errorf("CleanupTempFile() error = %v", err)
	}

	_, err = os.Stat(tempPath)
	if !os.IsNotExist(err) {
		t.Errorf("File was not removed: %v", err)
	}

	err = CleanupTempFile(tempPath)
	if err != nil {
		t.Errorf("CleanupTempFile() on non-existent file error = %v", err)
	}

	err = CleanupTempFile("")
	if err != nil {
		t.Errorf("CleanupTempFile() with empty path error = %v", err)
	}
}

func TestRevealCommand(t *testing.T) {
	tests := []struct {
		goos     string
		path     string
		expected []string
	}{
		{"darwin", "/Users/me/w.zip", []string{"open", "-R", "/Users/me/w.zip"}},
		{"windows", `C:\w.zip`, []string{"explorer", "/select,", `C:\w.zip`}},
		{"linux", "/home/me/w.zip", []string{"xdg-open", "/home/me"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd := revealCommand(tt.goos, tt.path)
			if len(cmd.Args) != len(tt.expected) {
				t.Fatalf("revealCommand() args = %v, want %v", cmd.Args, tt.expected)
			}
			for i := range tt.expected {
				if cmd.Args[i] != tt.expected[i] {
					t.Errorf("revealCommand() args = %v, want %v", cmd.Args, tt.expected)
				}
			}
		})
	}
}
