// Package sqlite provides a SQLite-backed catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	position     INTEGER PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	brand        TEXT NOT NULL DEFAULT '',
	tags         TEXT NOT NULL DEFAULT '[]',
	price        REAL NOT NULL DEFAULT 0,
	availability TEXT NOT NULL,
	rating       REAL,
	is_new       INTEGER NOT NULL DEFAULT 0,
	is_featured  INTEGER NOT NULL DEFAULT 0,
	is_on_sale   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
`

const selectItemsSQL = `
SELECT id, name, category, brand, tags, price, availability, rating, is_new, is_featured, is_on_sale
FROM items
ORDER BY position`

const insertItemSQL = `
INSERT INTO items (position, id, name, category, brand, tags, price, availability, rating, is_new, is_featured, is_on_sale)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Storage keeps a catalog in a single SQLite table. Rows carry their
// source position so snapshots come back in import order.
type Storage struct {
	db   *sql.DB
	path string
}

// New opens (and creates if needed) a catalog database at dbPath.
func New(dbPath string) (*Storage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrEmptyDBPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	s := &Storage{db: db, path: dbPath}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: apply schema: %w", err)
	}
	return nil
}

// Name identifies the backend in logs.
func (s *Storage) Name() string {
	return "sqlite:" + s.path
}

// Path returns the database file path.
func (s *Storage) Path() string {
	return s.path
}

// Close closes the underlying SQLite connection.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Snapshot returns every stored item in source order.
func (s *Storage) Snapshot(ctx context.Context) ([]domain.Item, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, selectItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: query items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: iterate items: %w", err)
	}

	fields := colors.Since(start)
	fields["items"] = len(items)
	colors.Structured("sqlite", "snapshot", "completed", nil, fields)
	return items, nil
}

// Save replaces the stored catalog with items in one transaction.
// Either every item is written or the previous catalog stays intact.
func (s *Storage) Save(ctx context.Context, items []domain.Item) (err error) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if verr := it.Validate(); verr != nil {
			return fmt.Errorf("%w: %v", ErrInvalidItem, verr)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
		}
		seen[it.ID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("sqlite storage: clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertItemSQL)
	if err != nil {
		return fmt.Errorf("sqlite storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		tags, merr := json.Marshal(nonNilTags(it.Tags))
		if merr != nil {
			err = fmt.Errorf("sqlite storage: encode tags for %s: %w", it.ID, merr)
			return err
		}
		var rating sql.NullFloat64
		if it.Rating != nil {
			rating = sql.NullFloat64{Float64: *it.Rating, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, i, it.ID, it.Name, it.Category, it.Brand, string(tags),
			it.Price, string(it.Availability), rating, boolToInt(it.IsNew), boolToInt(it.IsFeatured),
			boolToInt(it.IsOnSale)); err != nil {
			return fmt.Errorf("sqlite storage: insert item %s: %w", it.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite storage: commit: %w", err)
	}
	colors.Structured("sqlite", "save", "completed", nil, map[string]any{"items": len(items)})
	return nil
}

// Count returns the number of stored items.
func (s *Storage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count items: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (domain.Item, error) {
	var (
		it                      domain.Item
		tags, availability      string
		rating                  sql.NullFloat64
		isNew, featured, onSale int
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Brand, &tags, &it.Price,
		&availability, &rating, &isNew, &featured, &onSale); err != nil {
		return domain.Item{}, fmt.Errorf("sqlite storage: scan item: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
		return domain.Item{}, fmt.Errorf("sqlite storage: decode tags for %s: %w", it.ID, err)
	}
	if len(it.Tags) == 0 {
		it.Tags = nil
	}
	it.Availability = domain.Availability(availability)
	if rating.Valid {
		r := rating.Float64
		it.Rating = &r
	}
	it.IsNew = isNew != 0
	it.IsFeatured = featured != 0
	it.IsOnSale = onSale != 0
	return it, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
