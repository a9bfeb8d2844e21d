// Package render draws the rows, facet panel and chrome of the catalog browser.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
)

const (
	idWidth              = 8
	brandWidth           = 12
	priceWidth           = 9
	stockWidth           = 12
	badgeWidth           = 4
	spacesBetweenColumns = 10
	defaultNameWidth     = 30
	minNameWidth         = 10
	facetPanelWidth      = 30
)

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	SearchMode  bool
	SearchInput string
	FacetFocus  bool
}

// RowState defines the inputs needed to render an item row.
type RowState struct {
	Item     domain.Item
	Width    int
	Selected bool
}

// FacetRow is one selectable line of the facet panel.
type FacetRow struct {
	Dimension domain.Dimension
	Value     string
	Label     string
	Count     int
	Selected  bool
	// Section is non-empty on the first row of a facet group.
	Section string
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ansiColorNumber(colors.Blue))).
			Foreground(lipgloss.Color("0"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FacetPanelWidth is the fixed width of the facet sidebar.
func FacetPanelWidth() int {
	return facetPanelWidth
}

// Header renders the item table header.
func Header(width int) string {
	nameWidth := calculateNameWidth(width)
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %-*s  %-*s",
		idWidth, "ID",
		nameWidth, "NAME",
		brandWidth, "BRAND",
		priceWidth, "PRICE",
		stockWidth, "STOCK",
		badgeWidth, "",
	)
	return headerStyle.Render(strings.TrimRight(header, " "))
}

// Row renders a single item row.
func Row(state RowState) string {
	nameWidth := calculateNameWidth(state.Width)
	row := fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %-*s  %-*s",
		idWidth, truncate(state.Item.ID, idWidth),
		nameWidth, truncate(state.Item.Name, nameWidth),
		brandWidth, truncate(state.Item.Brand, brandWidth),
		priceWidth, fmt.Sprintf("%.2f", state.Item.Price),
		stockWidth, state.Item.Availability.String(),
		badgeWidth, badgeIcons(state.Item),
	)
	if state.Selected {
		return selectedStyle.Render(row)
	}
	return row
}

// FacetPanel renders the facet sidebar. Zero-count values stay visible
// but muted, since selecting them would empty the result.
func FacetPanel(rows []FacetRow, cursor int, focused bool, priceLine string) string {
	var b strings.Builder
	for i, row := range rows {
		if row.Section != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(headerStyle.Render(row.Section))
			b.WriteString("\n")
		}
		mark := "[ ]"
		if row.Selected {
			mark = "[x]"
		}
		line := truncate(fmt.Sprintf(" %s %s (%d)", mark, row.Label, row.Count), facetPanelWidth)
		switch {
		case focused && i == cursor:
			line = selectedStyle.Render(line)
		case row.Count == 0 && !row.Selected:
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if priceLine != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Price"))
		b.WriteString("\n ")
		b.WriteString(priceLine)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Status renders the result summary line.
func Status(view domain.View, state domain.FilterState) string {
	var parts []string
	if view.TotalCount == 0 {
		parts = append(parts, "no matching items")
	} else {
		parts = append(parts, fmt.Sprintf("%d items", view.TotalCount),
			fmt.Sprintf("page %d/%d", view.Page, view.TotalPages))
	}
	parts = append(parts, "sort: "+view.SortKey.String())
	if state.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search: %q", state.SearchText))
	}
	return headerStyle.Render(strings.Join(parts, "  |  "))
}

// Message renders a transient status message.
func Message(text string, isError bool) string {
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
	if isError {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	}
	return style.Render(text)
}

// Empty renders the placeholder shown when nothing matches.
func Empty() string {
	return mutedStyle.Render("No items match the current filters (c: clear)")
}

// Footer renders the footer with help text.
func Footer(state FooterState) string {
	var help []string
	if state.SearchMode {
		help = append(help, "Enter: apply", "ESC: cancel", fmt.Sprintf("Search: %s", state.SearchInput))
		return mutedStyle.Render(strings.Join(help, "  |  "))
	}
	help = append(help, "j/k: move", "tab: facets")
	if state.FacetFocus {
		help = append(help, "space: toggle")
	}
	help = append(help, "/: search", "s: sort", "h/l: page", "o/i/n: flags", "c: clear", "q: quit")
	return mutedStyle.Render(strings.Join(help, "  |  "))
}

func calculateNameWidth(width int) int {
	if width <= 0 {
		return defaultNameWidth
	}
	fixed := idWidth + brandWidth + priceWidth + stockWidth + badgeWidth
	nameWidth := width - fixed - spacesBetweenColumns
	if nameWidth < minNameWidth {
		return minNameWidth
	}
	return nameWidth
}

func badgeIcons(it domain.Item) string {
	var b strings.Builder
	if it.IsFeatured {
		b.WriteString("★")
	}
	if it.IsOnSale {
		b.WriteString("%")
	}
	if it.IsNew {
		b.WriteString("+")
	}
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
