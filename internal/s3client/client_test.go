package s3client

import (
	"context"
	"hytalebackup/config"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildRemotePath(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		filename    string
		expected    string
	}{
		{"Bucket root", "", "world.zip", "world.zip"},
		{"Folder without slash", "backups", "world.zip", "backups/world.zip"},
		{"Folder with slash", "backups/", "world.zip", "backups/world.zip"},
		{"Leading slash removed", "/backups/2026", "world.zip", "backups/2026/world.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildRemotePath(tt.destination, tt.filename); got != tt.expected {
				t.Errorf("buildRemotePath() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	if got := detectContentType("World_2026-01-13_19-35-06.zip"); got != "application/zip" {
		t.Errorf("detectContentType(zip) = %s", got)
	}
	if got := detectContentType("notes.txt"); got != "application/octet-stream" {
		t.Errorf("detectContentType(txt) = %s", got)
	}
}

// Integration tests for the S3 mirror
// These tests require a real S3 connection and are skipped by default
// To run these tests, set the environment variable S3_INTEGRATION_TEST=true

func integrationConfig(t *testing.T) *config.Config {
	t.Helper()
	if os.Getenv("S3_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set S3_INTEGRATION_TEST=true to run")
	}
	return &config.Config{
		BucketName: os.Getenv("TEST_BUCKET_NAME"),
		Region:     os.Getenv("TEST_REGION"),
		ApiURL:     os.Getenv("TEST_API_URL"),
		AccessKey:  os.Getenv("TEST_ACCESS_KEY"),
		SecretKey:  os.Getenv("TEST_SECRET_KEY"),
	}
}

func TestUploadAndDownloadArchive(t *testing.T) {
	cfg := integrationConfig(t)

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	local := filepath.Join(t.TempDir(), "Integration_2026-01-13_19-35-06.zip")
	if err := os.WriteFile(local, []byte("PK\x05\x06"+string(make([]byte, 18))), 0644); err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}

	uploaded, err := client.UploadArchive(context.Background(), local, "test-hytalebackup")
	if err != nil {
		t.Fatalf("UploadArchive() error = %v", err)
	}
	if uploaded.RemotePath != "test-hytalebackup/Integration_2026-01-13_19-35-06.zip" {
		t.Errorf("RemotePath = %s", uploaded.RemotePath)
	}

	downloaded, err := client.DownloadLatestArchive(context.Background(), "test-hytalebackup", t.TempDir())
	if err != nil {
		t.Fatalf("DownloadLatestArchive() error = %v", err)
	}
	if downloaded.Size != uploaded.Size {
		t.Errorf("downloaded size = %d, want %d", downloaded.Size, uploaded.Size)
	}
}

func TestDeleteOldArchivesDryRun(t *testing.T) {
	cfg := integrationConfig(t)

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	result, err := client.DeleteOldArchives(context.Background(), "test-hytalebackup", 30, true)
	if err != nil {
		t.Fatalf("DeleteOldArchives() error = %v", err)
	}

	if result.BucketName != cfg.BucketName {
		t.Errorf("BucketName = %s, want %s", result.BucketName, cfg.BucketName)
	}
	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d in dry run, want 0", result.DeletedCount)
	}
}
