package domain

import (
	"sort"
	"strings"
)

// FacetValue is one selectable option of a facet with its live count.
type FacetValue struct {
	// Value is what a filter selection stores (slug for categories).
	Value string `json:"value"`
	// Label is the display text.
	Label string `json:"label"`
	// Count is the number of items that would match if this value were
	// selected, holding every other dimension fixed. Zero counts are kept
	// so the option can be rendered disabled.
	Count    int  `json:"count"`
	Selected bool `json:"selected"`
}

// FlagCounts holds per-flag counts, each computed with its own flag relaxed.
type FlagCounts struct {
	OnSale      int `json:"onSale"`
	InStock     int `json:"inStock"`
	NewArrivals int `json:"newArrivals"`
}

// FacetCounts is the facet annotation of one query.
type FacetCounts struct {
	Categories   []FacetValue `json:"categories"`
	Brands       []FacetValue `json:"brands"`
	Tags         []FacetValue `json:"tags"`
	Availability []FacetValue `json:"availability"`
	Flags        FlagCounts   `json:"flags"`

	// PriceBounds is the observed price range of items matching every
	// constraint except price. HasPriceBounds is false when none match.
	PriceBounds    PriceRange `json:"priceBounds"`
	HasPriceBounds bool       `json:"hasPriceBounds"`
}

// CountFacets computes counts for every facet. The value universe of each
// facet comes from the full items snapshot, so values that no longer
// match report 0 instead of disappearing.
func CountFacets(items []Item, state FilterState, opts ...Option) FacetCounts {
	fc := FacetCounts{
		Categories:   CountFacet(items, state, DimensionCategory, opts...),
		Brands:       CountFacet(items, state, DimensionBrand, opts...),
		Tags:         CountFacet(items, state, DimensionTag, opts...),
		Availability: countAvailability(items, state, opts...),
		Flags: FlagCounts{
			OnSale:      countWhere(FilterItemsExcept(items, state, DimensionOnSale, opts...), func(it Item) bool { return it.IsOnSale }),
			InStock:     countWhere(FilterItemsExcept(items, state, DimensionInStock, opts...), Item.InStock),
			NewArrivals: countWhere(FilterItemsExcept(items, state, DimensionNewArrivals, opts...), func(it Item) bool { return it.IsNew }),
		},
	}
	fc.PriceBounds, fc.HasPriceBounds = ObservedPriceRange(FilterItemsExcept(items, state, DimensionPrice, opts...))
	return fc
}

// CountFacet computes the counts of a single multi-value dimension
// (category, brand or tag). Other dimensions return nil.
func CountFacet(items []Item, state FilterState, dim Dimension, opts ...Option) []FacetValue {
	var keys func(Item) []facetKey
	var selected []string

	switch dim {
	case DimensionCategory:
		keys = func(it Item) []facetKey {
			return []facetKey{{value: it.CategorySlug(), label: it.Category}}
		}
		if slug := Slug(state.Category); slug != "" {
			selected = []string{slug}
		}
	case DimensionBrand:
		keys = func(it Item) []facetKey {
			return []facetKey{{value: it.Brand, label: it.Brand}}
		}
		selected = state.Brands
	case DimensionTag:
		keys = func(it Item) []facetKey {
			out := make([]facetKey, 0, len(it.Tags))
			seen := make(map[string]bool, len(it.Tags))
			for _, t := range it.Tags {
				if seen[t] {
					continue
				}
				seen[t] = true
				out = append(out, facetKey{value: t, label: t})
			}
			return out
		}
		selected = state.Tags
	default:
		return nil
	}

	// Universe from the full snapshot, first label wins.
	labels := make(map[string]string)
	for _, it := range items {
		for _, k := range keys(it) {
			if k.value == "" {
				continue
			}
			if _, ok := labels[k.value]; !ok {
				labels[k.value] = k.label
			}
		}
	}
	selectedSet := make(map[string]bool, len(selected))
	for _, v := range selected {
		selectedSet[v] = true
		if _, ok := labels[v]; !ok {
			label := v
			if dim == DimensionCategory {
				label = state.Category
			}
			labels[v] = label
		}
	}

	counts := make(map[string]int, len(labels))
	for _, it := range FilterItemsExcept(items, state, dim, opts...) {
		for _, k := range keys(it) {
			if k.value != "" {
				counts[k.value]++
			}
		}
	}

	values := make([]FacetValue, 0, len(labels))
	for value, label := range labels {
		values = append(values, FacetValue{
			Value:    value,
			Label:    label,
			Count:    counts[value],
			Selected: selectedSet[value],
		})
	}
	sortFacetValues(values)
	return values
}

type facetKey struct {
	value string
	label string
}

func countAvailability(items []Item, state FilterState, opts ...Option) []FacetValue {
	counts := make(map[Availability]int, 3)
	for _, it := range FilterItemsExcept(items, state, DimensionInStock, opts...) {
		counts[it.Availability]++
	}
	values := make([]FacetValue, 0, 3)
	for _, a := range Availabilities() {
		values = append(values, FacetValue{
			Value:    a.String(),
			Label:    a.String(),
			Count:    counts[a],
			Selected: state.Flags.InStock && a != AvailabilityOutOfStock,
		})
	}
	return values
}

func countWhere(items []Item, pred Predicate) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

func sortFacetValues(values []FacetValue) {
	sort.Slice(values, func(i, j int) bool {
		li, lj := strings.ToLower(values[i].Label), strings.ToLower(values[j].Label)
		if li != lj {
			return li < lj
		}
		return values[i].Value < values[j].Value
	})
}

// Lookup returns the facet value with the given value.
func Lookup(values []FacetValue, value string) (FacetValue, bool) {
	for _, v := range values {
		if v.Value == value {
			return v, true
		}
	}
	return FacetValue{}, false
}
