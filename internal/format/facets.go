package format

import (
	"fmt"
	"io"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
)

// facetStyle decorates facet text. Zero-count values are still listed so
// a renderer can show them disabled.
type facetStyle struct {
	header func(string) string
	zero   func(string) string
}

var plainStyle = facetStyle{
	header: func(s string) string { return s },
	zero:   func(s string) string { return s },
}

var colorStyle = facetStyle{
	header: func(s string) string { return colors.Blue + s + colors.Reset },
	zero:   colors.Dim,
}

func writeFacets(facets domain.FacetCounts, writer io.Writer, style facetStyle) error {
	groups := []struct {
		title  string
		values []domain.FacetValue
	}{
		{"Category", facets.Categories},
		{"Brand", facets.Brands},
		{"Tag", facets.Tags},
		{"Availability", facets.Availability},
	}
	for _, g := range groups {
		if len(g.values) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(writer, style.header(g.title)); err != nil {
			return err
		}
		for _, v := range g.values {
			mark := "[ ]"
			if v.Selected {
				mark = "[x]"
			}
			line := fmt.Sprintf("  %s %s (%d)", mark, v.Label, v.Count)
			if v.Count == 0 {
				line = style.zero(line)
			}
			if _, err := fmt.Fprintln(writer, line); err != nil {
				return err
			}
		}
	}

	price := "none"
	if facets.HasPriceBounds {
		price = formatPrice(facets.PriceBounds.Min) + " - " + formatPrice(facets.PriceBounds.Max)
	}
	if _, err := fmt.Fprintf(writer, "%s  %s\n", style.header("Price"), price); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "%s  on sale (%d)  in stock (%d)  new (%d)\n", style.header("Flags"),
		facets.Flags.OnSale, facets.Flags.InStock, facets.Flags.NewArrivals)
	return err
}
