package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/storefront-kit/facetq/internal/domain"
)

// SimpleFormatter formats items one per line.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatView formats the page in simple format.
func (f *SimpleFormatter) FormatView(view domain.View, writer io.Writer) error {
	for _, it := range view.PageItems {
		line := fmt.Sprintf("%-10s  %-32s  %10s  %s", it.ID, truncateString(it.Name, 32), formatPrice(it.Price), it.Availability)
		if b := badges(it); b != "" {
			line += "  [" + b + "]"
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer, pageFooter(view))
	return err
}

// FormatFacets formats facet counts as plain text.
func (f *SimpleFormatter) FormatFacets(facets domain.FacetCounts, writer io.Writer) error {
	return writeFacets(facets, writer, plainStyle)
}

// CompactFormatter formats item names only.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatView writes one name per line and no footer.
func (f *CompactFormatter) FormatView(view domain.View, writer io.Writer) error {
	for _, it := range view.PageItems {
		if _, err := fmt.Fprintln(writer, truncateString(it.Name, 60)); err != nil {
			return err
		}
	}
	return nil
}

// FormatFacets writes "dimension value count" triples, one per line.
func (f *CompactFormatter) FormatFacets(facets domain.FacetCounts, writer io.Writer) error {
	groups := []struct {
		name   string
		values []domain.FacetValue
	}{
		{"category", facets.Categories},
		{"brand", facets.Brands},
		{"tag", facets.Tags},
		{"availability", facets.Availability},
	}
	for _, g := range groups {
		for _, v := range g.values {
			if _, err := fmt.Fprintf(writer, "%s\t%s\t%d\n", g.name, v.Value, v.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

// JSONFormatter formats views and facets as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatView writes the whole view, facets included.
func (f *JSONFormatter) FormatView(view domain.View, writer io.Writer) error {
	return writeJSON(view, writer)
}

// FormatFacets writes the facet counts only.
func (f *JSONFormatter) FormatFacets(facets domain.FacetCounts, writer io.Writer) error {
	return writeJSON(facets, writer)
}

func writeJSON(v any, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
