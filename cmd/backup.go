package cmd

import (
	"context"
	"errors"
	"fmt"
	"hytalebackup/internal/archive"
	"hytalebackup/internal/models"
	"hytalebackup/internal/progress"
	"hytalebackup/internal/s3client"
	"hytalebackup/pkg/utils"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [world]",
	Short: "Write a zip backup of a world",
	Long: `Write a deflate-compressed zip archive of a world.

The world's logs and backup folders are left out unless --include-logs or
--include-backups is given. Progress is shown while the archive is written.

By default the archive is named <world>_<YYYY-MM-DD_HH-MM-SS>.zip and written
to your Downloads folder (or the current directory when there is none).
With --upload the finished archive is also copied to the configured bucket.`,
	Example: `  # Back up a world to the Downloads folder
  hytalebackup backup "My World"

  # Back up including logs to a specific file
  hytalebackup backup "My World" --include-logs -o /backups/world.zip

  # Back up and mirror to S3
  hytalebackup backup "My World" --upload --destination "hytale/my-world"

  # Back up and show the archive in the file manager
  hytalebackup backup "My World" --reveal`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBackup(cmd, args[0])
	},
}

func runBackup(cmd *cobra.Command, worldName string) {
	output, _ := cmd.Flags().GetString("output")
	includeLogs, _ := cmd.Flags().GetBool("include-logs")
	includeBackups, _ := cmd.Flags().GetBool("include-backups")
	upload, _ := cmd.Flags().GetBool("upload")
	destination, _ := cmd.Flags().GetString("destination")
	reveal, _ := cmd.Flags().GetBool("reveal")
	quiet, _ := cmd.Flags().GetBool("quiet")

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "backup")
		return
	}

	if upload && !cfg.RemoteEnabled() {
		utils.PrintError(errors.New("--upload needs BUCKET_NAME and REGION to be configured"), "backup")
		return
	}

	output, err = resolveBackupPath(output, worldName, time.Now())
	if err != nil {
		utils.PrintError(err, "backup")
		return
	}

	opts := archive.Options{IncludeLogs: includeLogs, IncludeBackups: includeBackups}
	writer := archive.NewWriter(inv, slog.Default())
	tracker := progress.NewTracker(slog.Default())

	repaint := make(chan struct{}, 1)
	tracker.OnUpdate = func() {
		select {
		case repaint <- struct{}{}:
		default:
		}
	}

	if isVerbose(cmd) {
		cmd.PrintErrf("Starting backup of %s to %s\n", worldName, output)
	}

	createdAt := time.Now()
	transferID, done, err := tracker.Go(func(t *progress.Tracker) (string, error) {
		return writer.WriteArchive(worldName, output, opts, t)
	})
	if err != nil {
		utils.PrintError(err, "backup")
		return
	}

	if quiet {
		<-done
	} else {
		pollTransfer(tracker, done, repaint, newProgressView(cmd.ErrOrStderr(), "Backing up"))
	}

	outcome, ok := tracker.TakeOutcome()
	if !ok {
		utils.PrintError(errors.New("backup finished without a result"), "backup")
		return
	}
	if !outcome.Succeeded() {
		utils.PrintError(fmt.Errorf("backup failed: %s", outcome.Err), "backup")
		return
	}

	info, err := describeArchive(outcome.Path)
	if err != nil {
		utils.PrintError(err, "backup")
		return
	}
	info.TransferID = transferID
	info.WorldName = worldName
	info.IncludeLogs = includeLogs
	info.IncludeBackups = includeBackups
	info.CreatedAt = createdAt

	if upload {
		timeout, _ := cmd.Flags().GetInt("timeout")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()

		client, err := s3client.New(cfg)
		if err != nil {
			utils.PrintError(err, "backup")
			return
		}
		if isVerbose(cmd) {
			cmd.PrintErrf("Uploading %s to bucket %s\n", outcome.Path, cfg.BucketName)
		}
		item, err := client.UploadArchive(ctx, outcome.Path, destination)
		if err != nil {
			utils.PrintError(err, "backup")
			return
		}
		info.Upload = item
	}

	if reveal {
		utils.Reveal(outcome.Path)
	}

	if err := utils.PrintJSON(info); err != nil {
		utils.PrintError(err, "backup")
	}
}

// resolveBackupPath turns the --output flag into the archive path. An empty
// flag or an existing directory gets the suggested backup file name.
func resolveBackupPath(output, worldName string, now time.Time) (string, error) {
	fileName := utils.BackupFileName(worldName, now)

	if output == "" {
		return filepath.Join(defaultBackupDir(), fileName), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, fileName), nil
	}
	if !utils.IsZipFile(output) {
		return "", fmt.Errorf("output must be a .zip file or a directory: %s", output)
	}
	return output, nil
}

// defaultBackupDir prefers ~/Downloads and falls back to the working directory.
func defaultBackupDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	return "."
}

func describeArchive(path string) (*models.ArchiveInfo, error) {
	summary, err := archive.Inspect(path)
	if err != nil {
		return nil, err
	}

	ratio := 0.0
	if summary.UncompressedSize > 0 {
		ratio = float64(summary.CompressedSize) / float64(summary.UncompressedSize)
	}

	return &models.ArchiveInfo{
		ArchivePath:      path,
		FileCount:        summary.Files,
		CompressedSize:   summary.CompressedSize,
		CompressedHuman:  utils.FormatSize(uint64(summary.CompressedSize)),
		OriginalSize:     summary.UncompressedSize,
		CompressionRatio: ratio,
	}, nil
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "Archive path or directory (default: Downloads folder)")
	backupCmd.Flags().Bool("include-logs", false, "Include the world's logs folder")
	backupCmd.Flags().Bool("include-backups", false, "Include the world's backup folder")
	backupCmd.Flags().Bool("upload", false, "Upload the archive to the configured bucket")
	backupCmd.Flags().StringP("destination", "d", "", "Destination folder in the bucket (with --upload)")
	backupCmd.Flags().Bool("reveal", false, "Show the archive in the file manager when done")
	backupCmd.Flags().BoolP("quiet", "q", false, "Do not draw a progress bar")
	backupCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the upload (default: 1 hour)")
}
