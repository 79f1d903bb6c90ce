package cmd

import (
	"hytalebackup/pkg/utils"

	"github.com/spf13/cobra"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List Hytale worlds",
	Long: `List every world directory in the Hytale saves folder together with its
total size and the time it was last played, derived from the newest log file.

A missing saves folder is not an error: the list is simply empty.`,
	Example: `  # List worlds in the default saves folder
  hytalebackup worlds

  # List worlds in another saves folder
  hytalebackup worlds --root /srv/hytale/Saves`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWorlds(cmd)
	},
}

func runWorlds(cmd *cobra.Command) {
	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "worlds")
		return
	}

	if isVerbose(cmd) {
		cmd.PrintErrf("Listing worlds in: %s\n", inv.Root())
	}

	if err := utils.PrintJSON(inv.ListWorlds()); err != nil {
		utils.PrintError(err, "worlds")
	}
}
