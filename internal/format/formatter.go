// Package format renders query views and facet counts for CLI output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatView writes one page of results with its paging footer.
	FormatView(view domain.View, writer io.Writer) error

	// FormatFacets writes the facet counts of a query.
	FormatFacets(facets domain.FacetCounts, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one line per item with id, name, price and availability.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays items in aligned columns with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays item names only.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays the view as JSON.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes returns every formatter type.
func FormatterTypes() []FormatterType {
	return []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeCompact, FormatterTypeJSON}
}

// ParseFormatterType parses a --format value.
func ParseFormatterType(value string) (FormatterType, error) {
	v := FormatterType(strings.ToLower(strings.TrimSpace(value)))
	if v == "" {
		return FormatterTypeSimple, nil
	}
	for _, t := range FormatterTypes() {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: expected one of simple, table, compact, json", value)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// formatPrice renders a price with two decimals.
func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// formatRating renders a rating or "-" when unrated.
func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

// badges lists the merchandising flags of an item.
func badges(it domain.Item) string {
	var parts []string
	if it.IsFeatured {
		parts = append(parts, "featured")
	}
	if it.IsOnSale {
		parts = append(parts, "sale")
	}
	if it.IsNew {
		parts = append(parts, "new")
	}
	return strings.Join(parts, ",")
}

// pageFooter summarizes paging state.
func pageFooter(view domain.View) string {
	if view.TotalCount == 0 {
		return "no matching items"
	}
	noun := "items"
	if view.TotalCount == 1 {
		noun = "item"
	}
	return fmt.Sprintf("page %d of %d (%d %s, sorted by %s)",
		view.Page, view.TotalPages, view.TotalCount, noun, view.SortKey)
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
