package utils

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Reveal asks the platform file manager to show path. It never reports
// failure to the caller.
func Reveal(path string) {
	cmd := revealCommand(runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		slog.Debug("reveal in file manager failed", "path", path, "error", err)
		return
	}
	go cmd.Wait()
}

func revealCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", "-R", path)
	case "windows":
		return exec.Command("explorer", "/select,", path)
	default:
		return exec.Command("xdg-open", filepath.Dir(path))
	}
}
