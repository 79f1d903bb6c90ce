package worlds

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveRoot(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	}
	home := func(dir string, err error) func() (string, error) {
		return func() (string, error) { return dir, err }
	}

	tests := []struct {
		name        string
		goos        string
		lookupEnv   func(string) (string, bool)
		homeDir     func() (string, error)
		expected    string
		expectedErr error
	}{
		{
			name:      "Windows with APPDATA",
			goos:      "windows",
			lookupEnv: env(map[string]string{"APPDATA": "/appdata"}),
			homeDir:   home("", errors.New("unused")),
			expected:  filepath.Join("/appdata", "Hytale", "UserData", "Saves"),
		},
		{
			name:        "Windows without APPDATA",
			goos:        "windows",
			lookupEnv:   env(nil),
			homeDir:     home("/home/me", nil),
			expectedErr: ErrEnvironmentVariableMissing,
		},
		{
			name:      "macOS with home",
			goos:      "darwin",
			lookupEnv: env(nil),
			homeDir:   home("/Users/me", nil),
			expected:  filepath.Join("/Users/me", "Library", "Application Support", "Hytale", "UserData", "Saves"),
		},
		{
			name:        "macOS without home",
			goos:        "darwin",
			lookupEnv:   env(nil),
			homeDir:     home("", errors.New("$HOME is not defined")),
			expectedErr: ErrHomeDirectoryUnavailable,
		},
		{
			name:        "Linux is unsupported",
			goos:        "linux",
			lookupEnv:   env(map[string]string{"APPDATA": "/appdata"}),
			homeDir:     home("/home/me", nil),
			expectedErr: ErrUnsupportedPlatform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolveRoot(tt.goos, tt.lookupEnv, tt.homeDir)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("resolveRoot() error = %v, want %v", err, tt.expectedErr)
				}
				var platformErr *PlatformError
				if !errors.As(err, &platformErr) || platformErr.GOOS != tt.goos {
					t.Errorf("resolveRoot() error = %#v, want *PlatformError for %s", err, tt.goos)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveRoot() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("resolveRoot() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestResolveRootWithOverride(t *testing.T) {
	result, err := ResolveRootWithOverride("/srv/saves/")
	if err != nil {
		t.Fatalf("ResolveRootWithOverride() error = %v", err)
	}
	if result != filepath.Clean("/srv/saves") {
		t.Errorf("ResolveRootWithOverride() = %s, want /srv/saves", result)
	}
}
