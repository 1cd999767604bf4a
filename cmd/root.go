package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug  bool
	dryRun bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "storetrim",
	Short: "Keep a service-owned datastore from filling its disk",
	Long: `Storetrim - threshold-triggered datastore cleanup.

Measures a background service's datastore and, when it grows past a
configured threshold, stops the service, reclaims the disposable
subdirectories (coverage output, archived logs, stale projects),
re-measures, and restarts the service. Every step lands in an
append-only audit log.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	// Register all subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(versionCmd)
}
