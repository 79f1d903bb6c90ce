package cmd

import (
	"context"
	"errors"
	"fmt"
	"hytalebackup/internal/s3client"
	"hytalebackup/pkg/utils"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull [folder]",
	Short: "Download the latest remote backup and import it",
	Long: `Download the most recent zip backup from a folder in the configured bucket
and import it into the saves directory.

The archive is downloaded to a temporary directory that is removed afterwards.
The world name is inferred from the archive name unless --name is given.

WARNING: an existing world with the same name is deleted and replaced.`,
	Example: `  # Restore the newest backup of a world
  hytalebackup pull "hytale/my-world"

  # Restore under another name without asking
  hytalebackup pull "hytale/my-world" --name "My World (remote)" --confirm`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runPull(cmd, args[0])
	},
}

func runPull(cmd *cobra.Command, folder string) {
	name, _ := cmd.Flags().GetString("name")
	confirm, _ := cmd.Flags().GetBool("confirm")
	timeout, _ := cmd.Flags().GetInt("timeout")

	if !cfg.RemoteEnabled() {
		utils.PrintError(errors.New("BUCKET_NAME and REGION must be configured"), "pull")
		return
	}

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "pull")
		return
	}

	client, err := s3client.New(cfg)
	if err != nil {
		utils.PrintError(err, "pull")
		return
	}

	tempDir, err := os.MkdirTemp("", "hytalebackup-pull-*")
	if err != nil {
		utils.PrintError(fmt.Errorf("failed to create temporary directory: %w", err), "pull")
		return
	}
	defer os.RemoveAll(tempDir)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.PrintErrf("Looking for the latest backup in %s/%s\n", cfg.BucketName, folder)
	}

	item, err := client.DownloadLatestArchive(ctx, folder, tempDir)
	if err != nil {
		utils.PrintError(err, "pull")
		return
	}

	if isVerbose(cmd) {
		cmd.PrintErrf("Downloaded %s (%s)\n", item.RemotePath, utils.FormatSize(uint64(item.Size)))
	}

	result, err := importWorld(cmd, inv, item.LocalPath, name, confirm)
	if errors.Is(err, errImportCancelled) {
		fmt.Println("Pull cancelled.")
		return
	}
	if err != nil {
		utils.PrintError(err, "pull")
		return
	}
	result.ArchivePath = item.RemotePath

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "pull")
	}
}

func init() {
	pullCmd.Flags().StringP("name", "n", "", "World name to import as (default: inferred from the archive name)")
	pullCmd.Flags().Bool("confirm", false, "Replace an existing world without asking")
	pullCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the download (default: 1 hour)")
}
