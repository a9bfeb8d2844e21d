// Package filterstore holds the single mutable FilterState of a catalog
// view. Every mutation returns the normalized state so the caller can
// re-run the query pipeline with it.
package filterstore

import (
	"strings"
	"sync"

	"github.com/storefront-kit/facetq/internal/domain"
)

// Store is a thread-safe FilterState holder. The catalog watcher refreshes
// price bounds from its own goroutine while the view reads and writes.
type Store struct {
	mu        sync.RWMutex
	state     domain.FilterState
	bounds    domain.PriceRange
	hasBounds bool
}

// New creates a store whose price bounds are observed from items. The
// optional seed (e.g. decoded from a route) replaces the defaults.
func New(items []domain.Item, seed ...domain.FilterState) *Store {
	bounds, ok := domain.ObservedPriceRange(items)
	return NewWithBounds(bounds, ok, seed...)
}

// NewWithBounds creates a store with explicit price bounds.
func NewWithBounds(bounds domain.PriceRange, hasBounds bool, seed ...domain.FilterState) *Store {
	state := domain.DefaultFilterState()
	if len(seed) > 0 {
		state = seed[0].Clone()
	}
	s := &Store{bounds: bounds, hasBounds: hasBounds}
	s.state = s.normalize(state)
	return s
}

// Get returns a copy of the current state.
func (s *Store) Get() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Bounds returns the observed price bounds of the current catalog.
func (s *Store) Bounds() (domain.PriceRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.hasBounds
}

// Set shallow-merges p into the state and normalizes the result. When a
// filtering constraint or the sort key changes the page returns to 1,
// whatever page p carries.
func (s *Store) Set(p Partial) domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.IsEmpty() {
		return s.state.Clone()
	}
	return s.replace(p.apply(s.state))
}

// Clear returns the state to its defaults.
func (s *Store) Clear() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.normalize(domain.DefaultFilterState())
	return s.state.Clone()
}

// Remove drops a single selected value, as a filter badge does. For brand
// and tag only value is removed from the set; the category is cleared
// when value is empty or names it. Every other dimension is cleared
// outright and value is ignored.
func (s *Store) Remove(dim domain.Dimension, value string) domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	switch dim {
	case domain.DimensionBrand:
		next.Brands = without(next.Brands, value)
	case domain.DimensionTag:
		next.Tags = without(next.Tags, value)
	case domain.DimensionCategory:
		if value == "" || domain.Slug(value) == domain.Slug(next.Category) {
			next.Category = ""
		}
	default:
		next = next.Without(dim)
	}
	return s.replace(next)
}

// SetCatalog recomputes the price bounds from a refreshed catalog and
// re-normalizes the state against them. Selections that no longer exist
// in the catalog are kept; they simply match nothing.
func (s *Store) SetCatalog(items []domain.Item) domain.FilterState {
	bounds, ok := domain.ObservedPriceRange(items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds, s.hasBounds = bounds, ok
	return s.replace(s.state)
}

// ClampPage clamps the stored page into [1, TotalPages] for the given
// result size. Call it after running the pipeline.
func (s *Store) ClampPage(totalCount, pageSize int) domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = domain.ClampPage(s.state.Page, totalCount, pageSize)
	return s.state.Clone()
}

// replace installs next, resetting the page when the query changed.
// Callers must hold the write lock.
func (s *Store) replace(next domain.FilterState) domain.FilterState {
	prev := s.state
	next = s.normalize(next)
	if !next.SameConstraints(prev) || next.SortKey != prev.SortKey {
		next.Page = 1
	}
	s.state = next
	return s.state.Clone()
}

func (s *Store) normalize(state domain.FilterState) domain.FilterState {
	return state.Normalize(s.bounds, s.hasBounds)
}

func without(values []string, value string) []string {
	value = strings.TrimSpace(value)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
