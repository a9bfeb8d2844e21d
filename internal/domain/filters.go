package domain

import (
	"sort"
	"strings"
)

// PriceRange is an inclusive [Min, Max] price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies inside the range, both ends inclusive.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Flags holds the boolean availability constraints.
// A false flag means "no constraint", never "require false".
type Flags struct {
	OnSale      bool `json:"onSale"`
	InStock     bool `json:"inStock"`
	NewArrivals bool `json:"newArrivals"`
}

// IsEmpty returns true if no flag is required.
func (f Flags) IsEmpty() bool {
	return !f.OnSale && !f.InStock && !f.NewArrivals
}

// FilterState is the current catalog query. It is a plain value: two
// states with identical fields always produce identical results.
type FilterState struct {
	// SearchText is matched as a case-insensitive substring. Empty means no filter.
	SearchText string `json:"searchText"`

	// Category is a single selection compared by slug. Empty means no filter.
	Category string `json:"category"`

	// Brands is a multi-select set (OR within the set). Empty means no filter.
	Brands []string `json:"brands"`

	// Tags is a multi-select set; an item matches if any of its tags is selected.
	Tags []string `json:"tags"`

	// PriceRange is nil when the full observed range is selected.
	PriceRange *PriceRange `json:"priceRange,omitempty"`

	Flags   Flags   `json:"flags"`
	SortKey SortKey `json:"sortKey"`

	// Page is 1-based.
	Page int `json:"page"`

	// Limit is the window size for non-paginated views. Zero means the
	// caller's page size is used.
	Limit int `json:"limit,omitempty"`
}

// DefaultFilterState returns a state with no constraints, featured sort, page 1.
func DefaultFilterState() FilterState {
	return FilterState{
		SortKey: SortFeatured,
		Page:    1,
	}
}

// Normalize returns a corrected copy of the state. Malformed values are
// fixed rather than rejected: min and max are swapped when inverted and
// clamped into bounds, page is raised to 1, unknown sort keys fall back
// to featured. A range covering all of bounds collapses to nil.
func (s FilterState) Normalize(bounds PriceRange, hasBounds bool) FilterState {
	out := s
	out.SearchText = strings.TrimSpace(s.SearchText)
	out.Category = strings.TrimSpace(s.Category)
	out.Brands = normalizeSet(s.Brands)
	out.Tags = normalizeSet(s.Tags)
	out.PriceRange = normalizePriceRange(s.PriceRange, bounds, hasBounds)
	if !out.SortKey.IsValid() {
		out.SortKey = SortFeatured
	}
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 0 {
		out.Limit = 0
	}
	return out
}

// normalizeSet trims, drops empty values, de-duplicates and orders a selection.
func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func normalizePriceRange(r *PriceRange, bounds PriceRange, hasBounds bool) *PriceRange {
	if r == nil {
		return nil
	}
	out := *r
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	if out.Min < 0 {
		out.Min = 0
	}
	if out.Max < 0 {
		out.Max = 0
	}
	if !hasBounds {
		return &out
	}
	out.Min = clampFloat(out.Min, bounds.Min, bounds.Max)
	out.Max = clampFloat(out.Max, bounds.Min, bounds.Max)
	if out == bounds {
		return nil
	}
	return &out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsUnconstrained returns true if no dimension restricts the result.
func (s FilterState) IsUnconstrained() bool {
	return strings.TrimSpace(s.SearchText) == "" &&
		Slug(s.Category) == "" &&
		len(s.Brands) == 0 &&
		len(s.Tags) == 0 &&
		s.PriceRange == nil &&
		s.Flags.IsEmpty()
}

// SameConstraints reports whether both states filter identically.
// Sort key, page and limit are ignored.
func (s FilterState) SameConstraints(other FilterState) bool {
	if s.SearchText != other.SearchText || s.Category != other.Category || s.Flags != other.Flags {
		return false
	}
	if !equalSets(s.Brands, other.Brands) || !equalSets(s.Tags, other.Tags) {
		return false
	}
	switch {
	case s.PriceRange == nil && other.PriceRange == nil:
		return true
	case s.PriceRange == nil || other.PriceRange == nil:
		return false
	default:
		return *s.PriceRange == *other.PriceRange
	}
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Without returns a copy of the state with the constraint of dim removed.
func (s FilterState) Without(dim Dimension) FilterState {
	out := s
	switch dim {
	case DimensionSearch:
		out.SearchText = ""
	case DimensionCategory:
		out.Category = ""
	case DimensionBrand:
		out.Brands = nil
	case DimensionTag:
		out.Tags = nil
	case DimensionPrice:
		out.PriceRange = nil
	case DimensionOnSale:
		out.Flags.OnSale = false
	case DimensionInStock:
		out.Flags.InStock = false
	case DimensionNewArrivals:
		out.Flags.NewArrivals = false
	}
	return out
}

// Clone returns a deep copy so callers can mutate slices safely.
func (s FilterState) Clone() FilterState {
	out := s
	if s.Brands != nil {
		out.Brands = append([]string(nil), s.Brands...)
	}
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	if s.PriceRange != nil {
		r := *s.PriceRange
		out.PriceRange = &r
	}
	return out
}
