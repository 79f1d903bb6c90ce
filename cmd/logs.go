package cmd

import (
	"fmt"
	"hytalebackup/internal/logfilter"
	"hytalebackup/internal/worlds"
	"hytalebackup/pkg/utils"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errorLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	warningLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	infoLineStyle    = lipgloss.NewStyle()
	lineNumberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
)

var logsCmd = &cobra.Command{
	Use:   "logs [world]",
	Short: "Show the latest server log of a world",
	Long: `Show the newest log file from a world's logs folder.

Lines are colored by severity. With --errors-only, INFO lines and the
Setup / Shutdown Modules progress lines are hidden.`,
	Example: `  # Show the latest log
  hytalebackup logs "My World"

  # Only warnings and errors, without colors
  hytalebackup logs "My World" --errors-only --plain

  # Raw log entry as JSON
  hytalebackup logs "My World" --json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLogs(cmd, args[0])
	},
}

func runLogs(cmd *cobra.Command, worldName string) {
	errorsOnly, _ := cmd.Flags().GetBool("errors-only")
	plain, _ := cmd.Flags().GetBool("plain")
	asJSON, _ := cmd.Flags().GetBool("json")

	inv, err := newInventory(cmd)
	if err != nil {
		utils.PrintError(err, "logs")
		return
	}

	world, ok := inv.World(worldName)
	if !ok {
		utils.PrintError(fmt.Errorf("world not found: %s", worldName), "logs")
		return
	}

	entry, ok := worlds.LatestLog(world.Path)
	if !ok {
		utils.PrintError(fmt.Errorf("no log files found for world %s", worldName), "logs")
		return
	}

	if asJSON {
		if err := utils.PrintJSON(entry); err != nil {
			utils.PrintError(err, "logs")
		}
		return
	}

	renderLog(cmd.OutOrStdout(), entry.Name, logfilter.Filter(entry.Content, errorsOnly), plain)
}

func renderLog(w io.Writer, name string, lines []logfilter.Line, plain bool) {
	style := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintln(w, style(headerStyle, name))
	for _, line := range lines {
		number := style(lineNumberStyle, fmt.Sprintf("%5d", line.Number))
		fmt.Fprintf(w, "%s  %s\n", number, style(levelStyle(line.Level), line.Text))
	}
}

func levelStyle(level logfilter.Level) lipgloss.Style {
	switch level {
	case logfilter.Error:
		return errorLineStyle
	case logfilter.Warning:
		return warningLineStyle
	default:
		return infoLineStyle
	}
}

func init() {
	logsCmd.Flags().BoolP("errors-only", "e", false, "Hide INFO and startup/shutdown progress lines")
	logsCmd.Flags().Bool("plain", false, "Disable colors")
	logsCmd.Flags().Bool("json", false, "Print the log entry as JSON")
}
