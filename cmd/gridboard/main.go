package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridboard",
	Short: "Gridboard - grid workflow error monitoring and remediation dashboard",
	Long: `Gridboard serves a dashboard over the aggregated error data of
batch-processing workflows running on a distributed computing grid.

Operators inspect per-workflow error tables, pick a remediation action
(clone, recover, investigate), fill in the action's parameters, and
submit it. Submitted actions are kept in a local history database that
can be exported for downstream reporting.`,
	Version: Version,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Gridboard version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dumpHistoryCmd)
}
