package cmd

import (
	"bufio"
	"fmt"
	"hytalebackup/config"
	"hytalebackup/internal/worlds"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hytalebackup",
	Short: "Back up and restore Hytale worlds",
	Long: `hytalebackup discovers Hytale world saves, writes compressed backups of a
world and imports backups back into the saves directory.

Backups can optionally be mirrored to an S3 compatible bucket.
Configuration is loaded from .env file or environment variables`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pruneRemoteCmd)
	rootCmd.AddCommand(watchCmd)

	rootCmd.PersistentFlags().String("root", "", "Override the Hytale saves directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.SetUsageTemplate(usageTemplate)
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if cfg != nil {
		level = cfg.SlogLevel()
	}
	if isVerbose(cmd) {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func getWorldsRoot(cmd *cobra.Command) (string, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" && cfg != nil {
		root = cfg.WorldsRoot
	}
	return worlds.ResolveRootWithOverride(root)
}

func newInventory(cmd *cobra.Command) (*worlds.Inventory, error) {
	root, err := getWorldsRoot(cmd)
	if err != nil {
		return nil, err
	}
	return worlds.NewInventory(root, slog.Default()), nil
}

// askConfirmation prints prompt and reads a yes/no answer from stdin.
func askConfirmation(prompt string) bool {
	fmt.Print(prompt + " (y/N): ")
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return slices.Contains([]string{"y", "yes"}, strings.ToLower(strings.TrimSpace(response)))
}

const usageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
