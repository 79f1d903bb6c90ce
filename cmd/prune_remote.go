package cmd

import (
	"context"
	"errors"
	"fmt"
	"hytalebackup/internal/s3client"
	"hytalebackup/pkg/utils"
	"time"

	"github.com/spf13/cobra"
)

var pruneRemoteCmd = &cobra.Command{
	Use:   "prune-remote",
	Short: "Delete remote backups older than specified days",
	Long: `Delete zip backups in the configured bucket that are older than the
specified number of days.

The command will:
- List all archives in the specified folder (or entire bucket if no folder specified)
- Filter archives older than the cutoff date
- Delete matching archives in batches
- Return detailed information about the deletion operation

WARNING: This operation is irreversible. Deleted backups cannot be recovered.`,
	Example: `  # Delete backups older than 30 days from the entire bucket
  hytalebackup prune-remote --days 30

  # Preview what would be deleted for one world
  hytalebackup prune-remote --days 7 --folder "hytale/my-world" --dry-run

  # Delete without asking
  hytalebackup prune-remote --days 30 --folder "hytale" --confirm`,
	Run: func(cmd *cobra.Command, args []string) {
		runPruneRemote(cmd)
	},
}

func runPruneRemote(cmd *cobra.Command) {
	days, _ := cmd.Flags().GetInt("days")
	folder, _ := cmd.Flags().GetString("folder")
	confirm, _ := cmd.Flags().GetBool("confirm")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if days <= 0 {
		utils.PrintError(fmt.Errorf("days must be greater than 0"), "prune-remote")
		return
	}
	if !cfg.RemoteEnabled() {
		utils.PrintError(errors.New("BUCKET_NAME and REGION must be configured"), "prune-remote")
		return
	}

	if !confirm && !dryRun {
		cutoffDate := time.Now().AddDate(0, 0, -days)

		fmt.Printf("WARNING: This will permanently delete backups older than %d days (%s) from bucket '%s'",
			days, cutoffDate.Format("2006-01-02"), cfg.BucketName)
		if folder != "" {
			fmt.Printf(" in folder '%s'", folder)
		}
		fmt.Println()

		if !askConfirmation("Are you sure?") {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	client, err := s3client.New(cfg)
	if err != nil {
		utils.PrintError(err, "prune-remote")
		return
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.PrintErrf("Deleting backups older than %d days from bucket: %s\n", days, cfg.BucketName)
		if dryRun {
			cmd.PrintErrln("DRY RUN MODE: No backups will actually be deleted")
		}
	}

	result, err := client.DeleteOldArchives(ctx, folder, days, dryRun)
	if err != nil {
		utils.PrintError(err, "prune-remote")
		return
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "prune-remote")
	}
}

func init() {
	pruneRemoteCmd.Flags().IntP("days", "d", 0, "Delete backups older than this many days (required)")
	if err := pruneRemoteCmd.MarkFlagRequired("days"); err != nil {
		utils.PrintError(err, "prune-remote")
		return
	}

	pruneRemoteCmd.Flags().StringP("folder", "f", "", "Folder/prefix to search in (optional, searches entire bucket if not specified)")
	pruneRemoteCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	pruneRemoteCmd.Flags().Bool("dry-run", false, "Show what would be deleted without actually deleting")
	pruneRemoteCmd.Flags().Int("timeout", 1800, "Timeout in seconds for the operation (default: 30 minutes)")
}
