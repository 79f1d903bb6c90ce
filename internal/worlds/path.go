package worlds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var (
	ErrEnvironmentVariableMissing = errors.New("required environment variable is not set")
	ErrHomeDirectoryUnavailable   = errors.New("user home directory cannot be determined")
	ErrUnsupportedPlatform        = errors.New("platform has no known Hytale saves location")
)

// PlatformError reports why the saves root could not be resolved on GOOS.
type PlatformError struct {
	GOOS string
	// Variable is set for ErrEnvironmentVariableMissing.
	Variable string
	Err      error
}

func (e *PlatformError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("resolve worlds root on %s: %s: %v", e.GOOS, e.Variable, e.Err)
	}
	return fmt.Sprintf("resolve worlds root on %s: %v", e.GOOS, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

// ResolveRoot returns the directory holding Hytale world saves for the
// running platform. The path is only constructed, never checked.
func ResolveRoot() (string, error) {
	return resolveRoot(runtime.GOOS, os.LookupEnv, os.UserHomeDir)
}

// ResolveRootWithOverride prefers override when it is non-empty.
func ResolveRootWithOverride(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	return ResolveRoot()
}

func resolveRoot(goos string, lookupEnv func(string) (string, bool), homeDir func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		appData, ok := lookupEnv("APPDATA")
		if !ok || appData == "" {
			return "", &PlatformError{GOOS: goos, Variable: "APPDATA", Err: ErrEnvironmentVariableMissing}
		}
		return filepath.Join(appData, "Hytale", "UserData", "Saves"), nil
	case "darwin":
		home, err := homeDir()
		if err != nil || home == "" {
			return "", &PlatformError{GOOS: goos, Err: ErrHomeDirectoryUnavailable}
		}
		return filepath.Join(home, "Library", "Application Support", "Hytale", "UserData", "Saves"), nil
	default:
		return "", &PlatformError{GOOS: goos, Err: ErrUnsupportedPlatform}
	}
}
