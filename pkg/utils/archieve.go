package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// BackupTimestampLayout is embedded in archive names and log file names.
	BackupTimestampLayout = "2006-01-02_15-04-05"
	archiveExtension      = ".zip"
	// len("_2006-01-02_15-04-05")
	timestampSuffixLen = 20
)

// BackupFileName suggests "<world>_<timestamp>.zip" for a backup taken at t.
func BackupFileName(worldName string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", worldName, t.Format(BackupTimestampLayout), archiveExtension)
}

// InferWorldName recovers the default world name from an archive file name by
// stripping the extension and, when present, the "_YYYY-MM-DD_HH-MM-SS" suffix.
func InferWorldName(fileName string) string {
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if len(stem) > timestampSuffixLen && stem[len(stem)-timestampSuffixLen] == '_' {
		return stem[:len(stem)-timestampSuffixLen]
	}
	return stem
}

// IsZipFile reports whether the path carries a .zip extension.
func IsZipFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), archiveExtension)
}

func ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("path does not exist: %s", path)
			}
			return fmt.Errorf("cannot access path %s: %w", path, err)
		}
	}
	return nil
}

func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to cleanup temporary file %s: %w", path, err)
	}
	return nil
}
