package cmd

import (
	"context"
	"hytalebackup/internal/worlds"
	"hytalebackup/pkg/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the world list whenever the saves directory changes",
	Long: `Print the world list as JSON, then print it again every time a world is
added, removed or written to. Stop with Ctrl+C.`,
	Example: `  hytalebackup watch
  hytalebackup watch --settle 2s`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWatch(cmd)
	},
}

func runWatch(cmd *cobra.Command) {
	settle, _ := cmd.Flags().GetDuration("settle")

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "watch")
		return
	}

	watcher, err := worlds.NewWatcher(inv, settle)
	if err != nil {
		utils.PrintError(err, "watch")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printWorlds := func() {
		if err := utils.PrintJSON(inv.ListWorlds()); err != nil {
			utils.PrintError(err, "watch")
		}
	}

	printWorlds()
	if err := watcher.Run(ctx, printWorlds); err != nil {
		utils.PrintError(err, "watch")
	}
}

func init() {
	watchCmd.Flags().Duration("settle", 500*time.Millisecond, "Quiet period before a burst of changes is reported")
}
