package archive

import (
	"archive/zip"
	"fmt"
	"hytalebackup/internal/progress"
	"hytalebackup/internal/worlds"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer produces zip backups of worlds found in an inventory.
type Writer struct {
	inv    *worlds.Inventory
	logger *slog.Logger
}

func NewWriter(inv *worlds.Inventory, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{inv: inv, logger: logger}
}

// WriteArchive compresses the world into destination and returns the
// destination path. The number of files to write is published to tracker
// before any data is written; tracker then advances once per file. A failed
// run leaves whatever was already written at destination.
func (w *Writer) WriteArchive(worldName, destination string, opts Options, tracker *progress.Tracker) (string, error) {
	if !isWorldName(worldName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWorldName, worldName)
	}

	source := w.inv.WorldPath(worldName)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrWorldNotFound, worldName)
	}

	// The destination may live inside the world; it must not archive itself.
	self, _ := filepath.Abs(destination)

	total := countFiles(source, self, opts)
	tracker.SetTotal(total)

	logger := w.logger.With("world", worldName, "destination", destination)
	logger.Debug("writing archive", "files", total,
		"include_logs", opts.IncludeLogs, "include_backups", opts.IncludeBackups)

	out, err := os.Create(destination)
	if err != nil {
		return "", wrap(OpCreate, destination, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return wrap(OpWalk, path, err)
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return wrap(OpWalk, path, err)
		}
		if rel == "." || isPath(path, self) {
			return nil
		}
		name := filepath.ToSlash(rel)

		if !opts.Includes(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			return addDirectory(zw, d, name)
		case d.Type().IsRegular():
			tracker.Advance(name)
			return addFile(zw, path, d, name)
		default:
			logger.Debug("skipping non-regular entry", "entry", name)
			return nil
		}
	})
	if err != nil {
		return "", err
	}

	if err := zw.Close(); err != nil {
		return "", wrap(OpFinalize, destination, err)
	}
	if err := out.Close(); err != nil {
		return "", wrap(OpFinalize, destination, err)
	}

	logger.Info("archive written", "files", total)
	return destination, nil
}

// countFiles is the first pass: it counts the regular files the second pass
// will write. Unreadable entries are left for the writing pass to report.
func countFiles(source, self string, opts Options) int {
	count := 0
	filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil || rel == "." {
			return nil
		}
		if !opts.Includes(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !isPath(path, self) {
			count++
		}
		return nil
	})
	return count
}

func addDirectory(zw *zip.Writer, d fs.DirEntry, name string) error {
	info, err := d.Info()
	if err != nil {
		return wrap(OpWalk, name, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return wrap(OpAdd, name, err)
	}
	header.Name = name + "/"

	if _, err := zw.CreateHeader(header); err != nil {
		return wrap(OpAdd, name, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string, d fs.DirEntry, name string) error {
	info, err := d.Info()
	if err != nil {
		return wrap(OpRead, name, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return wrap(OpAdd, name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return wrap(OpAdd, name, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return wrap(OpRead, name, err)
	}
	if _, err := entry.Write(content); err != nil {
		return wrap(OpWrite, name, err)
	}
	return nil
}

func isPath(path, abs string) bool {
	if abs == "" {
		return false
	}
	p, err := filepath.Abs(path)
	return err == nil && p == abs
}

// isWorldName accepts a single, local path element.
func isWorldName(name string) bool {
	return name != "" && name != "." && filepath.IsLocal(name) && filepath.Base(name) == name
}
