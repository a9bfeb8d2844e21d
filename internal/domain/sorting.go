package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey specifies how a result set is ordered.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortRating    SortKey = "rating"
	// SortNewest orders by the IsNew flag; there is no creation timestamp
	// in the catalog data, so ties keep source order.
	SortNewest SortKey = "newest"
)

// SortKeys returns every sort key in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortRating, SortNewest}
}

// IsValid checks if the sort key is valid.
func (k SortKey) IsValid() bool {
	switch k {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort key.
func (k SortKey) String() string {
	return string(k)
}

// Next returns the following sort key in menu order, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return SortFeatured
}

// ParseSortKey parses a string into a SortKey. Besides the canonical
// names it accepts kebab and snake case ("price-asc", "price_desc").
func ParseSortKey(value string) (SortKey, error) {
	compact := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range SortKeys() {
		if strings.ToLower(k.String()) == compact {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key: %s", value)
}

// SortItems returns a stably sorted copy of items. Equal keys keep their
// relative input order, so sorting twice by the same key is a no-op.
// An invalid key sorts as featured.
func SortItems(items []Item, key SortKey) []Item {
	if !key.IsValid() {
		key = SortFeatured
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	if len(sorted) < 2 {
		return sorted
	}

	less := lessFor(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFor(key SortKey) func(a, b Item) bool {
	switch key {
	case SortPriceAsc:
		return func(a, b Item) bool { return a.Price < b.Price }
	case SortPriceDesc:
		return func(a, b Item) bool { return a.Price > b.Price }
	case SortRating:
		return ratingLess
	case SortNewest:
		return func(a, b Item) bool { return a.IsNew && !b.IsNew }
	default:
		return func(a, b Item) bool { return a.IsFeatured && !b.IsFeatured }
	}
}

// ratingLess orders rated items by descending rating, then unrated items.
func ratingLess(a, b Item) bool {
	switch {
	case a.Rating == nil:
		return false
	case b.Rating == nil:
		return true
	default:
		return *a.Rating > *b.Rating
	}
}
