package sqlite

import "errors"

var (
	// ErrEmptyDBPath indicates New was called without a database path.
	ErrEmptyDBPath = errors.New("sqlite storage: db path cannot be empty")
	// ErrInvalidItem indicates an item failed validation before being stored.
	ErrInvalidItem = errors.New("invalid catalog item")
	// ErrDuplicateItemID indicates two items share an id.
	ErrDuplicateItemID = errors.New("duplicate item id")
)
