package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/gridboard/gridboard/pkg/types"
)

var (
	// Bucket names
	bucketActions = []byte("actions")
	bucketReasons = []byte("reasons")
)

// BoltStore implements Store interface using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "gridboard.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketActions,
			bucketReasons,
		}

		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Action operations
func (s *BoltStore) SaveAction(record *types.ActionRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketActions)
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(record.ID), data)
	})
}

func (s *BoltStore) GetAction(id string) (*types.ActionRecord, error) {
	var record types.ActionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketActions)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("action not found: %s", id)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *BoltStore) ListActions() ([]*types.ActionRecord, error) {
	var records []*types.ActionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketActions)
		return b.ForEach(func(k, v []byte) error {
			var record types.ActionRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(a, b int) bool {
		return records[a].SubmittedAt.Before(records[b].SubmittedAt)
	})
	return records, nil
}

func (s *BoltStore) ListActionsByWorkflow(workflow string) ([]*types.ActionRecord, error) {
	all, err := s.ListActions()
	if err != nil {
		return nil, err
	}

	var records []*types.ActionRecord
	for _, record := range all {
		if record.Workflow == workflow {
			records = append(records, record)
		}
	}
	return records, nil
}

// Reason operations
func (s *BoltStore) SaveReason(reason *types.Reason) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReasons)
		data, err := json.Marshal(reason)
		if err != nil {
			return err
		}
		return b.Put([]byte(reason.Short), data)
	})
}

func (s *BoltStore) GetReason(short string) (*types.Reason, error) {
	var reason types.Reason
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReasons)
		data := b.Get([]byte(short))
		if data == nil {
			return fmt.Errorf("reason not found: %s", short)
		}
		return json.Unmarshal(data, &reason)
	})
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

func (s *BoltStore) ListReasons() ([]*types.Reason, error) {
	var reasons []*types.Reason
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReasons)
		return b.ForEach(func(k, v []byte) error {
			var reason types.Reason
			if err := json.Unmarshal(v, &reason); err != nil {
				return err
			}
			reasons = append(reasons, &reason)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return reasons, nil
}
