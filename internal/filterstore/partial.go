package filterstore

import "github.com/storefront-kit/facetq/internal/domain"

// Partial is a shallow update of a FilterState. Nil fields are left
// untouched. To drop a price constraint pass the observed bounds (they
// collapse to no constraint) or call Store.Remove(domain.DimensionPrice, "").
type Partial struct {
	SearchText  *string
	Category    *string
	Brands      *[]string
	Tags        *[]string
	PriceRange  *domain.PriceRange
	OnSale      *bool
	InStock     *bool
	NewArrivals *bool
	SortKey     *domain.SortKey
	Page        *int
	Limit       *int
}

// Ptr returns a pointer to v, for building Partial literals.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty returns true if the partial changes nothing.
func (p Partial) IsEmpty() bool {
	return p == Partial{}
}

// apply merges p onto state without normalizing.
func (p Partial) apply(state domain.FilterState) domain.FilterState {
	out := state.Clone()
	if p.SearchText != nil {
		out.SearchText = *p.SearchText
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Brands != nil {
		out.Brands = append([]string(nil), (*p.Brands)...)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.PriceRange != nil {
		r := *p.PriceRange
		out.PriceRange = &r
	}
	if p.OnSale != nil {
		out.Flags.OnSale = *p.OnSale
	}
	if p.InStock != nil {
		out.Flags.InStock = *p.InStock
	}
	if p.NewArrivals != nil {
		out.Flags.NewArrivals = *p.NewArrivals
	}
	if p.SortKey != nil {
		out.SortKey = *p.SortKey
	}
	if p.Page != nil {
		out.Page = *p.Page
	}
	if p.Limit != nil {
		out.Limit = *p.Limit
	}
	return out
}
