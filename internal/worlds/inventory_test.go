package worlds

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestListWorlds(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "Beta", "universe", "chunk.bin"), make([]byte, 1000))
	writeFile(t, filepath.Join(root, "Beta", "config.json"), make([]byte, 24))
	writeFile(t, filepath.Join(root, "Beta", "logs", "2026-01-01_00-00-00_server.log"), []byte("old"))
	writeFile(t, filepath.Join(root, "Beta", "logs", "2026-01-13_19-35-06_server.log"), []byte("new"))
	if err := os.MkdirAll(filepath.Join(root, "Alpha"), 0755); err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	writeFile(t, filepath.Join(root, "stray-file.txt"), []byte("not a world"))

	inv := NewInventory(root, testLogger())
	worlds := inv.ListWorlds()

	if len(worlds) != 2 {
		t.Fatalf("ListWorlds() returned %d worlds, want 2", len(worlds))
	}

	if worlds[0].Name != "Alpha" || worlds[1].Name != "Beta" {
		t.Errorf("ListWorlds() names = %s, %s, want Alpha, Beta", worlds[0].Name, worlds[1].Name)
	}

	alpha := worlds[0]
	if alpha.SizeBytes != 0 {
		t.Errorf("Alpha SizeBytes = %d, want 0", alpha.SizeBytes)
	}
	if alpha.LastPlayed != nil {
		t.Errorf("Alpha LastPlayed = %s, want nil", *alpha.LastPlayed)
	}

	beta := worlds[1]
	expectedSize := uint64(1000 + 24 + 3 + 3)
	if beta.SizeBytes != expectedSize {
		t.Errorf("Beta SizeBytes = %d, want %d", beta.SizeBytes, expectedSize)
	}
	if beta.SizeHuman != "1.01 KB" {
		t.Errorf("Beta SizeHuman = %s, want 1.01 KB", beta.SizeHuman)
	}
	if beta.LastPlayed == nil || *beta.LastPlayed != "2026-01-13 19:35:06" {
		t.Errorf("Beta LastPlayed = %v, want 2026-01-13 19:35:06", beta.LastPlayed)
	}
	if beta.Path != filepath.Join(root, "Beta") {
		t.Errorf("Beta Path = %s, want %s", beta.Path, filepath.Join(root, "Beta"))
	}
}

func TestListWorldsMissingRoot(t *testing.T) {
	inv := NewInventory(filepath.Join(t.TempDir(), "does-not-exist"), testLogger())

	worlds := inv.ListWorlds()
	if worlds == nil {
		t.Fatalf("ListWorlds() = nil, want empty slice")
	}
	if len(worlds) != 0 {
		t.Errorf("ListWorlds() returned %d worlds, want 0", len(worlds))
	}
}

func TestWorld(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Gamma", "a.txt"), []byte("abc"))

	inv := NewInventory(root, testLogger())

	world, ok := inv.World("Gamma")
	if !ok {
		t.Fatalf("World() found = false, want true")
	}
	if world.SizeBytes != 3 {
		t.Errorf("World() SizeBytes = %d, want 3", world.SizeBytes)
	}

	if _, ok := inv.World("Missing"); ok {
		t.Errorf("World() found = true for missing world")
	}
}

func TestLastPlayed(t *testing.T) {
	tests := []struct {
		name     string
		logs     []string
		expected string
		found    bool
	}{
		{
			name:     "Greatest filename wins",
			logs:     []string{"2026-01-13_19-35-06_server.log", "2026-01-01_00-00-00_server.log"},
			expected: "2026-01-13 19:35:06",
			found:    true,
		},
		{
			name:     "Non log files are ignored",
			logs:     []string{"2025-05-05_05-05-05_server.log", "2099-01-01_00-00-00_server.txt"},
			expected: "2025-05-05 05:05:05",
			found:    true,
		},
		{
			name:  "Name too short",
			logs:  []string{"short.log"},
			found: false,
		},
		{
			name:  "Name without timestamp",
			logs:  []string{"server-output-for-today.log"},
			found: false,
		},
		{
			name:  "No logs",
			logs:  nil,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := t.TempDir()
			for _, name := range tt.logs {
				writeFile(t, filepath.Join(world, LogsDirName, name), []byte("x"))
			}

			result, ok := LastPlayed(world)
			if ok != tt.found {
				t.Fatalf("LastPlayed() found = %v, want %v", ok, tt.found)
			}
			if result != tt.expected {
				t.Errorf("LastPlayed() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestLatestLog(t *testing.T) {
	world := t.TempDir()
	writeFile(t, filepath.Join(world, LogsDirName, "2026-01-01_00-00-00_server.log"), []byte("old session"))
	writeFile(t, filepath.Join(world, LogsDirName, "2026-01-13_19-35-06_server.log"), []byte("[ERROR] new session"))

	entry, ok := LatestLog(world)
	if !ok {
		t.Fatalf("LatestLog() found = false, want true")
	}
	if entry.Name != "2026-01-13_19-35-06_server.log" {
		t.Errorf("LatestLog() Name = %s", entry.Name)
	}
	if entry.Content != "[ERROR] new session" {
		t.Errorf("LatestLog() Content = %q", entry.Content)
	}

	if _, ok := LatestLog(t.TempDir()); ok {
		t.Errorf("LatestLog() found = true for world without logs")
	}
}

func TestLatestLogInvalidUTF8(t *testing.T) {
	world := t.TempDir()
	writeFile(t, filepath.Join(world, LogsDirName, "2026-01-13_19-35-06_server.log"), []byte{0xff, 0xfe, 0xfd})

	entry, ok := LatestLog(world)
	if !ok {
		t.Fatalf("LatestLog() found = false, want true")
	}
	if entry.Content != UnreadableLogContent {
		t.Errorf("LatestLog() Content = %q, want %q", entry.Content, UnreadableLogContent)
	}
}

func TestListBackups(t *testing.T) {
	world := t.TempDir()
	backupDir := filepath.Join(world, BackupDirName)
	writeFile(t, filepath.Join(backupDir, "2026-01-13_19-35-06.zip"), make([]byte, 2048))
	writeFile(t, filepath.Join(backupDir, ".DS_Store"), []byte("meta"))
	writeFile(t, filepath.Join(backupDir, "Thumbs.db"), []byte("meta"))
	writeFile(t, filepath.Join(backupDir, "desktop.ini"), []byte("meta"))
	writeFile(t, filepath.Join(backupDir, "._2026-01-13_19-35-06.zip"), []byte("meta"))
	if err := os.MkdirAll(filepath.Join(backupDir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	backups := ListBackups(world)
	if len(backups) != 1 {
		t.Fatalf("ListBackups() returned %d entries, want 1: %+v", len(backups), backups)
	}
	if backups[0].Name != "2026-01-13_19-35-06.zip" {
		t.Errorf("ListBackups() Name = %s", backups[0].Name)
	}
	if backups[0].SizeBytes != 2048 || backups[0].SizeHuman != "2.00 KB" {
		t.Errorf("ListBackups() size = %d (%s), want 2048 (2.00 KB)", backups[0].SizeBytes, backups[0].SizeHuman)
	}

	empty := ListBackups(t.TempDir())
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListBackups() without backup dir = %v, want empty slice", empty)
	}
}

func TestDeleteBackup(t *testing.T) {
	world := t.TempDir()
	target := filepath.Join(world, BackupDirName, "old.zip")
	writeFile(t, target, []byte("zip"))
	outside := filepath.Join(world, "keep.txt")
	writeFile(t, outside, []byte("keep"))

	for _, name := range []string{"", "..", "../keep.txt", "nested/old.zip"} {
		if err := DeleteBackup(world, name); !errors.Is(err, ErrInvalidBackupName) {
			t.Errorf("DeleteBackup(%q) error = %v, want ErrInvalidBackupName", name, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside backup dir was touched: %v", err)
	}

	if err := DeleteBackup(world, "old.zip"); err != nil {
		t.Fatalf("DeleteBackup() error = %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("backup still exists after DeleteBackup(): %v", err)
	}

	if err := DeleteBackup(world, "old.zip"); err == nil {
		t.Errorf("DeleteBackup() on missing file should return error")
	}
}
