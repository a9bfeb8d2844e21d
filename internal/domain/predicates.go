package domain

import (
	"fmt"
	"strings"
)

// Dimension names one filterable facet of an item.
type Dimension string

const (
	DimensionSearch      Dimension = "search"
	DimensionCategory    Dimension = "category"
	DimensionBrand       Dimension = "brand"
	DimensionTag         Dimension = "tag"
	DimensionPrice       Dimension = "price"
	DimensionOnSale      Dimension = "onSale"
	DimensionInStock     Dimension = "inStock"
	DimensionNewArrivals Dimension = "newArrivals"
)

// AllDimensions returns every dimension in canonical evaluation order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionSearch,
		DimensionCategory,
		DimensionBrand,
		DimensionTag,
		DimensionPrice,
		DimensionOnSale,
		DimensionInStock,
		DimensionNewArrivals,
	}
}

// IsValid checks if the dimension is valid.
func (d Dimension) IsValid() bool {
	for _, known := range AllDimensions() {
		if d == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the dimension.
func (d Dimension) String() string {
	return string(d)
}

// ParseDimension parses a string into a Dimension.
func ParseDimension(value string) (Dimension, error) {
	d := Dimension(value)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid dimension: %s", value)
	}
	return d, nil
}

// Predicate is a pure boolean test of one item for one facet.
type Predicate func(Item) bool

// TextMatcher decides whether an item matches a non-empty search query.
type TextMatcher func(item Item, query string) bool

// DimensionPredicate pairs an active predicate with the dimension it constrains.
type DimensionPredicate struct {
	Dimension Dimension
	Predicate Predicate
}

func matchAll(Item) bool { return true }

// CategoryPredicate matches items whose category slug equals the slug of category.
func CategoryPredicate(category string) Predicate {
	want := Slug(category)
	if want == "" {
		return matchAll
	}
	return func(it Item) bool {
		return it.CategorySlug() == want
	}
}

// BrandPredicate matches items whose brand is one of brands.
func BrandPredicate(brands []string) Predicate {
	if len(brands) == 0 {
		return matchAll
	}
	set := toSet(brands)
	return func(it Item) bool {
		return set[it.Brand]
	}
}

// TagPredicate matches items carrying at least one of tags.
func TagPredicate(tags []string) Predicate {
	if len(tags) == 0 {
		return matchAll
	}
	set := toSet(tags)
	return func(it Item) bool {
		for _, t := range it.Tags {
			if set[t] {
				return true
			}
		}
		return false
	}
}

// PricePredicate matches items priced inside r. A nil range matches everything.
func PricePredicate(r *PriceRange) Predicate {
	if r == nil {
		return matchAll
	}
	bounds := *r
	return func(it Item) bool {
		return bounds.Contains(it.Price)
	}
}

// OnSalePredicate requires IsOnSale when required is true.
func OnSalePredicate(required bool) Predicate {
	if !required {
		return matchAll
	}
	return func(it Item) bool { return it.IsOnSale }
}

// InStockPredicate requires an availability other than out-of-stock when required is true.
func InStockPredicate(required bool) Predicate {
	if !required {
		return matchAll
	}
	return func(it Item) bool { return it.InStock() }
}

// NewArrivalsPredicate requires IsNew when required is true.
func NewArrivalsPredicate(required bool) Predicate {
	if !required {
		return matchAll
	}
	return func(it Item) bool { return it.IsNew }
}

// SearchPredicate matches items for which match accepts query.
// An empty query matches everything. A nil matcher uses ConcatTextMatcher.
func SearchPredicate(query string, match TextMatcher) Predicate {
	query = strings.TrimSpace(query)
	if query == "" {
		return matchAll
	}
	if match == nil {
		match = ConcatTextMatcher
	}
	return func(it Item) bool {
		return match(it, query)
	}
}

// ConcatTextMatcher is a case-insensitive substring search over the
// non-empty name, brand and category joined by single spaces.
func ConcatTextMatcher(it Item, query string) bool {
	fields := make([]string, 0, 3)
	for _, f := range []string{it.Name, it.Brand, it.Category} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	text := strings.Join(fields, " ")
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// And combines predicates with logical AND.
func And(preds ...Predicate) Predicate {
	return func(it Item) bool {
		for _, p := range preds {
			if !p(it) {
				return false
			}
		}
		return true
	}
}

// Predicates returns the active predicates of the state in canonical
// dimension order. Dimensions without a constraint are omitted.
func (s FilterState) Predicates(match TextMatcher) []DimensionPredicate {
	preds := make([]DimensionPredicate, 0, len(AllDimensions()))
	for _, dim := range AllDimensions() {
		if p, ok := s.PredicateFor(dim, match); ok {
			preds = append(preds, DimensionPredicate{Dimension: dim, Predicate: p})
		}
	}
	return preds
}

// PredicateFor returns the predicate for one dimension and whether that
// dimension is constrained by the state.
func (s FilterState) PredicateFor(dim Dimension, match TextMatcher) (Predicate, bool) {
	switch dim {
	case DimensionSearch:
		if strings.TrimSpace(s.SearchText) == "" {
			return matchAll, false
		}
		return SearchPredicate(s.SearchText, match), true
	case DimensionCategory:
		if Slug(s.Category) == "" {
			return matchAll, false
		}
		return CategoryPredicate(s.Category), true
	case DimensionBrand:
		return BrandPredicate(s.Brands), len(s.Brands) > 0
	case DimensionTag:
		return TagPredicate(s.Tags), len(s.Tags) > 0
	case DimensionPrice:
		return PricePredicate(s.PriceRange), s.PriceRange != nil
	case DimensionOnSale:
		return OnSalePredicate(s.Flags.OnSale), s.Flags.OnSale
	case DimensionInStock:
		return InStockPredicate(s.Flags.InStock), s.Flags.InStock
	case DimensionNewArrivals:
		return NewArrivalsPredicate(s.Flags.NewArrivals), s.Flags.NewArrivals
	default:
		return matchAll, false
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
