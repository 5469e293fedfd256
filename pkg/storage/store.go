package storage

import (
	"github.com/gridboard/gridboard/pkg/types"
)

// Store defines the interface for action history and reason storage
type Store interface {
	// Actions
	SaveAction(record *types.ActionRecord) error
	GetAction(id string) (*types.ActionRecord, error)
	ListActions() ([]*types.ActionRecord, error)
	ListActionsByWorkflow(workflow string) ([]*types.ActionRecord, error)

	// Reasons
	SaveReason(reason *types.Reason) error
	GetReason(short string) (*types.Reason, error)
	ListReasons() ([]*types.Reason, error)

	// Utility
	Close() error
}
