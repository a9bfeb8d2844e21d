// Package storage loads catalog snapshots from files or SQLite.
package storage

import (
	"context"
	"errors"
	"os"

	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/storage/sqlite"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

var (
	// ErrEmptyPath indicates a file provider was built without any catalog path.
	ErrEmptyPath = errors.New("catalog path cannot be empty")
	// ErrUnsupportedFormat indicates a catalog file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrDuplicateItemID indicates two items in one snapshot share an id.
	ErrDuplicateItemID = sqlite.ErrDuplicateItemID
	// ErrInvalidItem indicates an item failed validation.
	ErrInvalidItem = sqlite.ErrInvalidItem
)

// Provider returns whole catalog snapshots.
type Provider interface {
	// Snapshot returns the full catalog in source order.
	Snapshot(ctx context.Context) ([]domain.Item, error)
	// Name identifies the provider in logs and messages.
	Name() string
}

// Writer replaces a stored catalog.
type Writer interface {
	Save(ctx context.Context, items []domain.Item) error
}

var (
	_ Provider = (*FileProvider)(nil)
	_ Writer   = (*FileProvider)(nil)
	_ Provider = (*sqlite.Storage)(nil)
	_ Writer   = (*sqlite.Storage)(nil)
)
