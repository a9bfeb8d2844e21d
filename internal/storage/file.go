package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/logging"
	"golang.org/x/sync/errgroup"
)

// FileProvider reads a catalog from one or more JSON, YAML or TOML files.
// Snapshots concatenate the files in argument order.
type FileProvider struct {
	paths   []string
	formats []Format
}

// NewFileProvider validates the paths and their formats up front.
func NewFileProvider(paths ...string) (*FileProvider, error) {
	p := &FileProvider{}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		format, err := DetectFormat(path)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		p.paths = append(p.paths, filepath.Clean(path))
		p.formats = append(p.formats, format)
	}
	if len(p.paths) == 0 {
		return nil, ErrEmptyPath
	}
	return p, nil
}

// Name identifies the provider in logs.
func (p *FileProvider) Name() string {
	return "file:" + strings.Join(p.paths, ",")
}

// Paths returns the catalog file paths.
func (p *FileProvider) Paths() []string {
	return append([]string(nil), p.paths...)
}

// Snapshot decodes every file concurrently, then validates the combined
// catalog. Any failure discards the whole snapshot.
func (p *FileProvider) Snapshot(ctx context.Context) ([]domain.Item, error) {
	start := time.Now()
	parts := make([][]domain.Item, len(p.paths))

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range p.paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			items, err := readCatalogFile(p.paths[i], p.formats[i])
			if err != nil {
				return err
			}
			parts[i] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		colors.Structured("storage", "snapshot", "failed", err, colors.Since(start))
		return nil, err
	}

	items := make([]domain.Item, 0)
	for _, part := range parts {
		items = append(items, part...)
	}
	if err := validateCatalog(items); err != nil {
		colors.Structured("storage", "snapshot", "failed", err, colors.Since(start))
		return nil, err
	}

	fields := colors.Since(start)
	fields["items"] = len(items)
	fields["files"] = len(p.paths)
	colors.Structured("storage", "snapshot", "completed", nil, fields)
	logging.Debug("catalog snapshot loaded", "provider", p.Name(), "items", len(items))
	return items, nil
}

// Save writes items to the provider's file. Only single-file providers
// can be written, since a split catalog has no owner per item.
func (p *FileProvider) Save(ctx context.Context, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p.paths) != 1 {
		return fmt.Errorf("cannot save to %d catalog files, need exactly one", len(p.paths))
	}
	if err := validateCatalog(items); err != nil {
		return err
	}
	data, err := Encode(p.formats[0], items)
	if err != nil {
		return err
	}
	path := p.paths[0]
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FileModeFile); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// ReadFile decodes a single catalog file without validating its items,
// so callers can repair them (e.g. assign missing ids) before saving.
func ReadFile(path string) ([]domain.Item, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return readCatalogFile(path, format)
}

func readCatalogFile(path string, format Format) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	items, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

func validateCatalog(items []domain.Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
