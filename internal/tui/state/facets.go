package state

import (
	"fmt"

	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/filterstore"
	"github.com/storefront-kit/facetq/internal/tui/render"
)

type facetRow = render.FacetRow

func sidebarWidth() int {
	return render.FacetPanelWidth()
}

// buildFacetRows flattens the facet counts into the sidebar's selectable rows.
func buildFacetRows(fc domain.FacetCounts) []facetRow {
	var rows []facetRow
	add := func(section string, dim domain.Dimension, values []domain.FacetValue) {
		for i, v := range values {
			row := facetRow{Dimension: dim, Value: v.Value, Label: v.Label, Count: v.Count, Selected: v.Selected}
			if i == 0 {
				row.Section = section
			}
			rows = append(rows, row)
		}
	}
	add("Category", domain.DimensionCategory, fc.Categories)
	add("Brand", domain.DimensionBrand, fc.Brands)
	add("Tag", domain.DimensionTag, fc.Tags)
	return rows
}

// flagRows appends the boolean filters, whose selection comes from the state.
func flagRows(fc domain.FacetCounts, state domain.FilterState) []facetRow {
	return []facetRow{
		{Dimension: domain.DimensionOnSale, Label: "On sale", Count: fc.Flags.OnSale, Selected: state.Flags.OnSale, Section: "Flags"},
		{Dimension: domain.DimensionInStock, Label: "In stock", Count: fc.Flags.InStock, Selected: state.Flags.InStock},
		{Dimension: domain.DimensionNewArrivals, Label: "New arrivals", Count: fc.Flags.NewArrivals, Selected: state.Flags.NewArrivals},
	}
}

// toggleFacet selects or deselects the value of row.
func (m *Model) toggleFacet(row facetRow) {
	state := m.store.Get()
	switch row.Dimension {
	case domain.DimensionCategory:
		if row.Selected {
			m.store.Remove(domain.DimensionCategory, row.Value)
		} else {
			m.store.Set(filterstore.Partial{Category: filterstore.Ptr(row.Value)})
		}
	case domain.DimensionBrand:
		if row.Selected {
			m.store.Remove(domain.DimensionBrand, row.Value)
		} else {
			m.store.Set(filterstore.Partial{Brands: filterstore.Ptr(append(state.Brands, row.Value))})
		}
	case domain.DimensionTag:
		if row.Selected {
			m.store.Remove(domain.DimensionTag, row.Value)
		} else {
			m.store.Set(filterstore.Partial{Tags: filterstore.Ptr(append(state.Tags, row.Value))})
		}
	case domain.DimensionOnSale:
		m.store.Set(filterstore.Partial{OnSale: filterstore.Ptr(!state.Flags.OnSale)})
	case domain.DimensionInStock:
		m.store.Set(filterstore.Partial{InStock: filterstore.Ptr(!state.Flags.InStock)})
	case domain.DimensionNewArrivals:
		m.store.Set(filterstore.Partial{NewArrivals: filterstore.Ptr(!state.Flags.NewArrivals)})
	}
	m.recompute()
}

// priceLine describes the price constraint and the bounds available for it.
func priceLine(fc domain.FacetCounts, state domain.FilterState) string {
	if !fc.HasPriceBounds {
		return "no prices"
	}
	line := fmt.Sprintf("%.2f - %.2f", fc.PriceBounds.Min, fc.PriceBounds.Max)
	if state.PriceRange != nil {
		line = fmt.Sprintf("%.2f - %.2f of %s", state.PriceRange.Min, state.PriceRange.Max, line)
	}
	return line
}
