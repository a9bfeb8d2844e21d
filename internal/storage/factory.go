package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/storage/sqlite"
)

const (
	// BackendFile selects catalog files (JSON, YAML, TOML).
	BackendFile = "file"
	// BackendSQLite selects the imported SQLite catalog.
	BackendSQLite = "sqlite"

	catalogDBFileName = "catalog.db"
)

// NewFromConfig creates a catalog provider based on configuration.
func NewFromConfig() (Provider, error) {
	config.Load()
	backend := config.Get("catalog_backend", BackendFile)
	return NewForBackend(backend, config.GetList("catalog_paths"))
}

// NewForBackend creates a catalog provider for the backend name. When the
// SQLite database cannot be opened and catalog files are known, it warns
// and falls back to the files.
func NewForBackend(backend string, paths []string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileProvider(paths...)
	case BackendSQLite:
		db, err := OpenCatalogDB()
		if err != nil {
			if len(paths) == 0 {
				return nil, err
			}
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to files: %v", err))
			return NewFileProvider(paths...)
		}
		return db, nil
	default:
		colors.Warning(fmt.Sprintf("unknown catalog backend %q, using %s", backend, BackendFile))
		return NewFileProvider(paths...)
	}
}

// OpenCatalogDB opens the SQLite catalog under the state directory.
func OpenCatalogDB() (*sqlite.Storage, error) {
	dir := StateDir()
	if dir == "" {
		return nil, fmt.Errorf("storage initialization failed: state_dir not configured")
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return sqlite.New(filepath.Join(dir, catalogDBFileName))
}

// StateDir returns the configured state directory.
func StateDir() string {
	config.Load()
	return config.Get("state_dir", "")
}
