package worlds

import (
	"errors"
	"fmt"
	"hytalebackup/internal/models"
	"hytalebackup/pkg/utils"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	LogsDirName   = "logs"
	BackupDirName = "backup"

	logExtension       = ".log"
	logTimestampLayout = "2006-01-02_15-04-05"
	lastPlayedLayout   = "2006-01-02 15:04:05"

	// UnreadableLogContent replaces log bodies that cannot be read as text.
	UnreadableLogContent = "Could not read log file"
)

var ErrInvalidBackupName = errors.New("invalid backup file name")

// housekeepingPrefixes are file manager metadata files that never count as backups.
var housekeepingPrefixes = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	"._",
}

// Inventory reads world directories below a saves root. Every listing is a
// fresh snapshot; nothing is cached between calls.
type Inventory struct {
	root   string
	logger *slog.Logger
}

func NewInventory(root string, logger *slog.Logger) *Inventory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inventory{root: root, logger: logger}
}

func (inv *Inventory) Root() string {
	return inv.root
}

// WorldPath joins name onto the saves root without checking existence.
func (inv *Inventory) WorldPath(name string) string {
	return filepath.Join(inv.root, name)
}

// ListWorlds returns one entry per immediate subdirectory of the root, sorted
// by name. A missing or unreadable root yields an empty list, and entries
// whose metadata cannot be read are skipped: partial results are the contract.
func (inv *Inventory) ListWorlds() []models.WorldInfo {
	worlds := []models.WorldInfo{}

	entries, err := os.ReadDir(inv.root)
	if err != nil {
		inv.logger.Debug("worlds root not readable", "root", inv.root, "error", err)
		return worlds
	}

	for _, entry := range entries {
		path := filepath.Join(inv.root, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			inv.logger.Debug("skipping world entry", "path", path, "error", err)
			continue
		}
		if !info.IsDir() {
			continue
		}
		worlds = append(worlds, describeWorld(entry.Name(), path))
	}

	return worlds
}

// World describes a single world, reporting false when it is not a directory.
func (inv *Inventory) World(name string) (*models.WorldInfo, bool) {
	path := inv.WorldPath(name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, false
	}
	world := describeWorld(name, path)
	return &world, true
}

func describeWorld(name, path string) models.WorldInfo {
	size := DirectorySize(path)
	world := models.WorldInfo{
		Name:      name,
		Path:      path,
		SizeBytes: size,
		SizeHuman: utils.FormatSize(size),
	}
	if lastPlayed, ok := LastPlayed(path); ok {
		world.LastPlayed = &lastPlayed
	}
	return world
}

// DirectorySize sums the length of every regular file below path. Unreadable
// entries contribute nothing.
func DirectorySize(path string) uint64 {
	var size uint64
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += uint64(info.Size())
		return nil
	})
	return size
}

// LastPlayed derives a "YYYY-MM-DD HH:MM:SS" timestamp from the newest log
// file name under <world>/logs.
func LastPlayed(worldPath string) (string, bool) {
	name, ok := latestLogName(worldPath)
	if !ok || len(name) < len(logTimestampLayout) {
		return "", false
	}
	ts, err := time.Parse(logTimestampLayout, name[:len(logTimestampLayout)])
	if err != nil {
		return "", false
	}
	return ts.Format(lastPlayedLayout), true
}

// LatestLog loads the log whose name sorts last. Unreadable or non UTF-8
// content is replaced by UnreadableLogContent.
func LatestLog(worldPath string) (*models.LogEntry, bool) {
	name, ok := latestLogName(worldPath)
	if !ok {
		return nil, false
	}
	path := filepath.Join(worldPath, LogsDirName, name)

	content := UnreadableLogContent
	if data, err := os.ReadFile(path); err == nil && utf8.Valid(data) {
		content = string(data)
	}

	return &models.LogEntry{Name: name, Path: path, Content: content}, true
}

// latestLogName picks the greatest .log file name; names start with a
// sortable timestamp so this is the most recent session.
func latestLogName(worldPath string) (string, bool) {
	entries, err := os.ReadDir(filepath.Join(worldPath, LogsDirName))
	if err != nil {
		return "", false
	}

	latest := ""
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != logExtension {
			continue
		}
		if entry.Name() > latest {
			latest = entry.Name()
		}
	}
	return latest, latest != ""
}

// ListBackups returns the regular files directly under <world>/backup,
// ignoring file manager housekeeping files.
func ListBackups(worldPath string) []models.BackupEntry {
	backups := []models.BackupEntry{}

	dir := filepath.Join(worldPath, BackupDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return backups
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || isHousekeepingFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		size := uint64(info.Size())
		backups = append(backups, models.BackupEntry{
			Name:      entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			SizeBytes: size,
			SizeHuman: utils.FormatSize(size),
		})
	}

	return backups
}

// DeleteBackup removes a single file from <world>/backup. The name must be a
// bare file name.
func DeleteBackup(worldPath, name string) error {
	if name == "" || name != filepath.Base(name) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidBackupName, name)
	}

	path := filepath.Join(worldPath, BackupDirName, name)
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("failed to stat backup %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q is not a regular file", ErrInvalidBackupName, name)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete backup %s: %w", name, err)
	}
	return nil
}

func isHousekeepingFile(name string) bool {
	for _, prefix := range housekeepingPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
