package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"hytalebackup/internal/worlds"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Importer rebuilds worlds from zip backups.
type Importer struct {
	inv    *worlds.Inventory
	logger *slog.Logger
}

func NewImporter(inv *worlds.Inventory, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{inv: inv, logger: logger}
}

// ImportArchive replaces the world named target with the contents of the
// archive at source. An existing world of that name is deleted without a
// backup. Entries whose names would resolve outside the world are skipped.
func (im *Importer) ImportArchive(source, target string) error {
	if !isWorldName(target) {
		return fmt.Errorf("%w: %q", ErrInvalidWorldName, target)
	}

	r, err := zip.OpenReader(source)
	// ErrInsecurePath still returns a usable reader; names are checked below.
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && r != nil) {
		return wrap(OpOpen, source, err)
	}
	defer r.Close()

	worldPath := im.inv.WorldPath(target)
	logger := im.logger.With("archive", source, "world", target)

	if _, err := os.Lstat(worldPath); err == nil {
		logger.Info("replacing existing world")
		if err := os.RemoveAll(worldPath); err != nil {
			return wrap(OpDelete, worldPath, err)
		}
	}
	if err := os.MkdirAll(worldPath, 0755); err != nil {
		return wrap(OpMkdir, worldPath, err)
	}

	written := 0
	for i := range r.File {
		f := r.File[i]

		rel, ok := entryPath(f.Name)
		if !ok {
			logger.Warn("skipping archive entry outside the world", "entry", f.Name)
			continue
		}
		out := filepath.Join(worldPath, rel)

		if isDirectoryEntry(f) {
			if err := os.MkdirAll(out, 0755); err != nil {
				return wrap(OpMkdir, out, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return wrap(OpMkdir, filepath.Dir(out), err)
		}
		if err := extractFile(f, out); err != nil {
			return err
		}
		written++
	}

	logger.Info("world imported", "files", written)
	return nil
}

// extractFile reads the whole entry into memory and writes it in one call.
func extractFile(f *zip.File, out string) error {
	rc, err := f.Open()
	if err != nil {
		return wrap(OpExtract, f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return wrap(OpExtract, f.Name, err)
	}

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	if err := os.WriteFile(out, content, perm|0600); err != nil {
		return wrap(OpOutput, out, err)
	}
	return nil
}

func isDirectoryEntry(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || strings.HasSuffix(f.Name, `\`)
}

// entryPath converts an archive entry name into a relative OS path confined
// to the extraction directory. Absolute names, parent references that escape
// and empty names are rejected.
func entryPath(name string) (string, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimRight(name, "/")
	if name == "" {
		return "", false
	}

	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", false
	}
	return filepath.Clean(local), true
}

// Summary describes the contents of an existing archive.
type Summary struct {
	Files            int
	Directories      int
	UncompressedSize int64
	CompressedSize   int64
	Names            []string
}

// Inspect reads the central directory of the archive at path.
func Inspect(path string) (*Summary, error) {
	r, err := zip.OpenReader(path)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && r != nil) {
		return nil, wrap(OpOpen, path, err)
	}
	defer r.Close()

	info, err := os.Stat(path)
	if err != nil {
		return nil, wrap(OpOpen, path, err)
	}

	summary := &Summary{CompressedSize: info.Size()}
	for _, f := range r.File {
		summary.Names = append(summary.Names, f.Name)
		if isDirectoryEntry(f) {
			summary.Directories++
			continue
		}
		summary.Files++
		summary.UncompressedSize += int64(f.UncompressedSize64)
	}
	return summary, nil
}
