/*
Package storage provides persistent storage for submitted remediation
actions and canned reasons.

The Store interface is implemented by BoltStore, a BoltDB-backed store
holding two buckets: actions (keyed by record ID) and reasons (keyed by
their short name). Records are stored as JSON. ListActions returns
records ordered by submission time.

DumpHistory exports the full action history grouped by workflow into a
single JSON file, the document consumed by downstream reporting.

# Usage

	store, err := storage.NewBoltStore("/var/lib/gridboard")
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveAction(record); err != nil {
		return err
	}

	err = storage.DumpHistory(store, "history.json")
*/
package storage
