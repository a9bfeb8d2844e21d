package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":       10,
			"Name":     28,
			"Brand":    12,
			"Category": 14,
			"Price":    10,
			"Rating":   6,
			"Stock":    12,
		},
		ColumnAlignments: map[string]string{
			"Price":  "right",
			"Rating": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the raw cell value from an item.
	Extractor func(domain.Item) string
}

// TableFormatter renders items in aligned columns.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return NewTableFormatterWithConfig(DefaultTableConfig())
}

// NewTableFormatterWithConfig creates a TableFormatter using config for
// widths and alignments.
func NewTableFormatterWithConfig(config *TableConfig) *TableFormatter {
	column := func(name string, extract func(domain.Item) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	return &TableFormatter{
		config: config,
		columns: []TableColumn{
			column("ID", func(it domain.Item) string { return it.ID }),
			column("Name", func(it domain.Item) string { return it.Name }),
			column("Brand", func(it domain.Item) string { return it.Brand }),
			column("Category", func(it domain.Item) string { return it.Category }),
			column("Price", func(it domain.Item) string { return formatPrice(it.Price) }),
			column("Rating", func(it domain.Item) string { return formatRating(it.Rating) }),
			column("Stock", func(it domain.Item) string { return it.Availability.String() }),
		},
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatView formats the page as a table followed by the paging footer.
func (f *TableFormatter) FormatView(view domain.View, writer io.Writer) error {
	if len(view.PageItems) > 0 {
		if f.config.ShowHeaders {
			if err := f.writeHeader(writer); err != nil {
				return err
			}
			if err := f.writeSeparator(writer); err != nil {
				return err
			}
		}
		for _, it := range view.PageItems {
			if err := f.writeRow(it, writer); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer, pageFooter(view))
	return err
}

// FormatFacets formats facet counts with colored headers and dimmed zero counts.
func (f *TableFormatter) FormatFacets(facets domain.FacetCounts, writer io.Writer) error {
	return writeFacets(facets, writer, colorStyle)
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Name, col.Width, "left")
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = strings.Repeat("-", col.Width)
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

func (f *TableFormatter) writeRow(it domain.Item, writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(truncateString(col.Extractor(it), col.Width), col.Width, col.Alignment)
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// formatString pads s to width with the given alignment.
func formatString(s string, width int, alignment string) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}
