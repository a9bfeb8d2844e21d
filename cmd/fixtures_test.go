package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/storage"
	"github.com/stretchr/testify/require"
)

// setupCmdTest isolates configuration and state under a temp dir and
// silences console output.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("FACETQ_CONFIG_PATH", filepath.Join(dir, "config", "facetq", "config.toml"))
	t.Setenv("FACETQ_STATE_DIR", filepath.Join(dir, "state", "facetq"))
	restore := colors.SetOutput(io.Discard, io.Discard)
	t.Cleanup(restore)
	config.Load()
	return dir
}

func testCatalog() []domain.Item {
	return []domain.Item{
		{ID: "t1", Name: "Aurora Headphones", Category: "Audio", Brand: "Sonic", Tags: []string{"wireless"}, Price: 199, Availability: domain.AvailabilityInStock, IsFeatured: true},
		{ID: "t2", Name: "Pulse Earbuds", Category: "Audio", Brand: "Sonic", Tags: []string{"wireless"}, Price: 79, Availability: domain.AvailabilityLowStock, IsOnSale: true, IsNew: true},
		{ID: "t3", Name: "Nebula Console", Category: "Gaming", Brand: "Vortex", Price: 499, Availability: domain.AvailabilityInStock, IsNew: true},
		{ID: "t4", Name: "Strike Controller", Category: "Gaming", Brand: "Vortex", Tags: []string{"wireless"}, Price: 59, Availability: domain.AvailabilityInStock, IsOnSale: true},
		{ID: "t5", Name: "Lumen Lamp", Category: "Home", Brand: "Brightside", Price: 39, Availability: domain.AvailabilityOutOfStock},
	}
}

// staticProvider serves a fixed snapshot.
type staticProvider struct {
	items []domain.Item
	err   error
}

func (p *staticProvider) Snapshot(ctx context.Context) ([]domain.Item, error) {
	if p.err != nil {
		return nil, p.err
	}
	return append([]domain.Item(nil), p.items...), nil
}

func (p *staticProvider) Name() string { return "static" }

// recordingOpener returns an opener serving provider and the backend and
// paths it was called with.
type recordingOpener struct {
	provider storage.Provider
	err      error
	backend  string
	paths    []string
}

func (o *recordingOpener) open(backend string, paths []string) (storage.Provider, error) {
	o.backend = backend
	o.paths = paths
	if o.err != nil {
		return nil, o.err
	}
	return o.provider, nil
}

func staticOpener() *recordingOpener {
	return &recordingOpener{provider: &staticProvider{items: testCatalog()}}
}

// execute runs c with args and returns what it wrote to stdout.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const catalogJSON = `{"items": [
  {"id": "f1", "name": "Field Jacket", "category": "Apparel", "brand": "Northline", "price": 120, "availability": "in-stock", "isFeatured": true},
  {"id": "f2", "name": "Rain Shell", "category": "Apparel", "brand": "Northline", "price": 85, "availability": "low-stock", "isOnSale": true}
]}`
