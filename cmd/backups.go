package cmd

import (
	"fmt"
	"hytalebackup/internal/worlds"
	"hytalebackup/pkg/utils"

	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups [world]",
	Short: "List the backups Hytale keeps inside a world",
	Long: `List the files in a world's backup folder. File manager metadata such as
.DS_Store, Thumbs.db and desktop.ini is ignored.`,
	Example: `  # List in-world backups
  hytalebackup backups "My World"

  # Delete one of them
  hytalebackup backups delete "My World" 2026-01-13_19-35-06.zip`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBackups(cmd, args[0])
	},
}

var backupsDeleteCmd = &cobra.Command{
	Use:   "delete [world] [file]",
	Short: "Delete a backup file from a world",
	Long: `Delete a single file from a world's backup folder.

WARNING: This operation is irreversible.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runBackupsDelete(cmd, args[0], args[1])
	},
}

func runBackups(cmd *cobra.Command, worldName string) {
	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "backups")
		return
	}

	world, ok := inv.World(worldName)
	if !ok {
		utils.PrintError(fmt.Errorf("world not found: %s", worldName), "backups")
		return
	}

	if err := utils.PrintJSON(worlds.ListBackups(world.Path)); err != nil {
		utils.PrintError(err, "backups")
	}
}

func runBackupsDelete(cmd *cobra.Command, worldName, fileName string) {
	confirm, _ := cmd.Flags().GetBool("confirm")

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "backups delete")
		return
	}

	world, ok := inv.World(worldName)
	if !ok {
		utils.PrintError(fmt.Errorf("world not found: %s", worldName), "backups delete")
		return
	}

	if !confirm && !askConfirmation(fmt.Sprintf("Delete backup '%s' of world '%s'?", fileName, worldName)) {
		fmt.Println("Delete cancelled.")
		return
	}

	if err := worlds.DeleteBackup(world.Path, fileName); err != nil {
		utils.PrintError(err, "backups delete")
		return
	}

	if isVerbose(cmd) {
		cmd.PrintErrf("Deleted backup %s\n", fileName)
	}

	if err := utils.PrintJSON(worlds.ListBackups(world.Path)); err != nil {
		utils.PrintError(err, "backups delete")
	}
}

func init() {
	backupsCmd.AddCommand(backupsDeleteCmd)
	backupsDeleteCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
}
