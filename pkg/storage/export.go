package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gridboard/gridboard/pkg/types"
)

// HistoryDump is the exported action history: every stored record
// grouped by workflow, in submission order.
type HistoryDump map[string][]*types.ActionRecord

// BuildHistory merges the stored action records into a HistoryDump.
func BuildHistory(s Store) (HistoryDump, error) {
	records, err := s.ListActions()
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}

	dump := make(HistoryDump)
	for _, record := range records {
		dump[record.Workflow] = append(dump[record.Workflow], record)
	}
	return dump, nil
}

// DumpHistory writes the merged action history to a JSON file.
func DumpHistory(s Store, path string) error {
	dump, err := BuildHistory(s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
