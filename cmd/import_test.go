package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore captures what import saves.
type memoryStore struct {
	items  []domain.Item
	closed bool
	err    error
}

func (s *memoryStore) Save(ctx context.Context, items []domain.Item) error {
	if s.err != nil {
		return s.err
	}
	s.items = append([]domain.Item(nil), items...)
	return nil
}

func (s *memoryStore) Name() string { return "memory" }

func (s *memoryStore) Close() error {
	s.closed = true
	return nil
}

func storeOf(s *memoryStore) storeOpener {
	return func() (catalogStore, error) { return s, nil }
}

func fixedIDs(t *testing.T) {
	t.Helper()
	n := 0
	orig := newItemID
	newItemID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	t.Cleanup(func() { newItemID = orig })
}

const importYAML = `- name: Canvas Tote
  category: Bags
  brand: Northline
  price: 30
  availability: in-stock
- id: y2
  name: Day Pack
  category: Bags
  brand: Northline
  price: 60
  availability: out-of-stock
`

func TestImportAssignsMissingIDs(t *testing.T) {
	dir := setupCmdTest(t)
	fixedIDs(t)
	a := writeFile(t, filepath.Join(dir, "a.json"), catalogJSON)
	b := writeFile(t, filepath.Join(dir, "b.yaml"), importYAML)
	store := &memoryStore{}

	_, err := execute(t, NewImportCmd(storeOf(store)), a, b)
	require.NoError(t, err)
	assert.True(t, store.closed)

	var got []string
	for _, it := range store.items {
		got = append(got, it.ID)
	}
	assert.Equal(t, []string{"f1", "f2", "gen-1", "y2"}, got)
}

func TestImportDryRun(t *testing.T) {
	dir := setupCmdTest(t)
	fixedIDs(t)
	b := writeFile(t, filepath.Join(dir, "b.yaml"), importYAML)
	store := &memoryStore{}

	out, err := execute(t, NewImportCmd(storeOf(store)), "--dry-run", b)
	require.NoError(t, err)
	assert.Equal(t, "2 items ready to import (1 ids generated)\n", out)
	assert.Nil(t, store.items)
}

func TestImportRejectsBadCatalogs(t *testing.T) {
	dir := setupCmdTest(t)
	dup := writeFile(t, filepath.Join(dir, "dup.json"), catalogJSON)
	invalid := writeFile(t, filepath.Join(dir, "bad.json"), `[{"id": "x", "availability": "sold"}]`)
	store := &memoryStore{}

	_, err := execute(t, NewImportCmd(storeOf(store)), dup, dup)
	assert.ErrorIs(t, err, storage.ErrDuplicateItemID)

	_, err = execute(t, NewImportCmd(storeOf(store)), invalid)
	assert.ErrorIs(t, err, storage.ErrInvalidItem)

	nan := writeFile(t, filepath.Join(dir, "nan.yaml"), "- id: n1\n  price: .nan\n  availability: in-stock\n")
	_, err = execute(t, NewImportCmd(storeOf(store)), nan)
	assert.ErrorIs(t, err, storage.ErrInvalidItem)

	_, err = execute(t, NewImportCmd(storeOf(store)), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = execute(t, NewImportCmd(storeOf(store)))
	assert.Error(t, err, "at least one file is required")

	assert.Nil(t, store.items)
}

func TestImportReportsStoreErrors(t *testing.T) {
	dir := setupCmdTest(t)
	a := writeFile(t, filepath.Join(dir, "a.json"), catalogJSON)

	failing := func() (catalogStore, error) { return nil, errors.New("locked") }
	_, err := execute(t, NewImportCmd(failing), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog store: locked")

	store := &memoryStore{err: errors.New("disk full")}
	_, err = execute(t, NewImportCmd(storeOf(store)), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import into memory: disk full")
	assert.True(t, store.closed)
}

func TestImportIntoSQLiteThenQuery(t *testing.T) {
	dir := setupCmdTest(t)
	a := writeFile(t, filepath.Join(dir, "a.json"), catalogJSON)

	_, err := execute(t, NewImportCmd(openCatalogStore), a)
	require.NoError(t, err)

	out, err := execute(t, NewQueryCmd(openCatalog), "--backend", "sqlite", "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Field Jacket\nRain Shell\n", out)
}
