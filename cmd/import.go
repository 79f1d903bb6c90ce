package cmd

import (
	"errors"
	"fmt"
	"hytalebackup/internal/archive"
	"hytalebackup/internal/models"
	"hytalebackup/internal/worlds"
	"hytalebackup/pkg/utils"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// errImportCancelled is returned when the user declines to replace a world.
var errImportCancelled = errors.New("import cancelled")

var importCmd = &cobra.Command{
	Use:   "import [archive.zip]",
	Short: "Import a world backup into the saves directory",
	Long: `Import a zip backup as a world in the saves directory.

The world name is taken from the archive file name with the backup timestamp
removed, so "My World_2025-01-13_14-30-00.zip" imports as "My World".
Use --name to choose another name.

WARNING: an existing world with the same name is deleted and replaced.`,
	Example: `  # Import a backup, asking before replacing an existing world
  hytalebackup import "~/Downloads/My World_2025-01-13_14-30-00.zip"

  # Import under a different name without asking
  hytalebackup import backup.zip --name "Restored World" --confirm`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, args[0])
	},
}

func runImport(cmd *cobra.Command, archivePath string) {
	name, _ := cmd.Flags().GetString("name")
	confirm, _ := cmd.Flags().GetBool("confirm")

	if err := utils.ValidatePaths([]string{archivePath}); err != nil {
		utils.PrintError(err, "import")
		return
	}
	if !utils.IsZipFile(archivePath) {
		utils.PrintError(fmt.Errorf("not a zip archive: %s", archivePath), "import")
		return
	}

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "import")
		return
	}

	result, err := importWorld(cmd, inv, archivePath, name, confirm)
	if errors.Is(err, errImportCancelled) {
		fmt.Println("Import cancelled.")
		return
	}
	if err != nil {
		utils.PrintError(err, "import")
		return
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "import")
	}
}

// importWorld extracts archivePath into the world called name, or the name
// inferred from the archive file name when name is empty.
func importWorld(cmd *cobra.Command, inv *worlds.Inventory, archivePath, name string, confirm bool) (*models.ImportResult, error) {
	if name == "" {
		name = utils.InferWorldName(filepath.Base(archivePath))
	}

	if _, exists := inv.World(name); exists && !confirm {
		fmt.Printf("World '%s' already exists in %s and will be replaced.\n", name, inv.Root())
		if !askConfirmation("Continue with import?") {
			return nil, errImportCancelled
		}
	}

	if isVerbose(cmd) {
		cmd.PrintErrf("Importing %s as %s\n", archivePath, name)
	}

	start := time.Now()
	importer := archive.NewImporter(inv, slog.Default())
	if err := importer.ImportArchive(archivePath, name); err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		ArchivePath:   archivePath,
		WorldName:     name,
		OperationTime: utils.FormatTime(start),
		Duration:      time.Since(start).Round(time.Millisecond).String(),
	}
	if world, ok := inv.World(name); ok {
		result.World = world
	}
	return result, nil
}

func init() {
	importCmd.Flags().StringP("name", "n", "", "World name to import as (default: inferred from the file name)")
	importCmd.Flags().Bool("confirm", false, "Replace an existing world without asking")
}
