package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/storage"
)

var dumpHistoryCmd = &cobra.Command{
	Use:   "dump-history <output-file>",
	Short: "Export the stored action history to a JSON file",
	Long: `Export the stored remediation actions, merged by workflow, into a
single JSON document for downstream reporting.`,
	Args: cobra.ExactArgs(1),
	RunE: runDumpHistory,
}

func init() {
	dumpHistoryCmd.Flags().StringP("config", "c", "", "path to the YAML configuration file")
}

func runDumpHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:  log.Level(cfg.Log.Level),
		Output: os.Stderr,
	})

	store, err := storage.NewBoltStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	if err := storage.DumpHistory(store, args[0]); err != nil {
		return err
	}

	fmt.Printf("History written to %s\n", args[0])
	return nil
}
