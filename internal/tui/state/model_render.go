package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/storefront-kit/facetq/internal/errors"
	"github.com/storefront-kit/facetq/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.uiState.GetViewport().Height <= 0 {
		m.uiState.UpdateViewportSize(sidebarWidth())
		m.updateViewportContent()
	}

	state := m.store.Get()

	var s strings.Builder
	s.WriteString(render.Status(m.view, state))
	s.WriteString("\n")
	s.WriteString(render.Header(m.uiState.GetViewport().Width))
	s.WriteString("\n")

	sidebar := lipgloss.NewStyle().Width(sidebarWidth()).Render(
		render.FacetPanel(m.facets, m.uiState.GetFacetCursor(), m.uiState.FacetsFocused(), priceLine(m.view.Facets, state)),
	)
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.uiState.GetViewport().View(), " ", sidebar))
	s.WriteString("\n")

	if m.uiState.IsSearchMode() {
		s.WriteString(m.uiState.SearchInput().View())
	} else {
		s.WriteString(render.Message(m.StatusMessage(), m.statusMessageType == errors.MessageTypeError))
	}
	s.WriteString("\n")
	s.WriteString(render.Footer(render.FooterState{
		SearchMode:  m.uiState.IsSearchMode(),
		SearchInput: m.uiState.SearchInput().Value(),
		FacetFocus:  m.uiState.FacetsFocused(),
	}))
	return s.String()
}

// updateViewportContent renders the current page into the viewport.
func (m *Model) updateViewportContent() {
	vp := m.uiState.GetViewport()
	if len(m.view.PageItems) == 0 {
		vp.SetContent(render.Empty())
		return
	}

	var content strings.Builder
	cursor := m.uiState.GetCursor()
	for i, it := range m.view.PageItems {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(render.Row(render.RowState{
			Item:     it,
			Width:    vp.Width,
			Selected: i == cursor && !m.uiState.FacetsFocused(),
		}))
	}
	vp.SetContent(content.String())

	if cursor < vp.YOffset {
		vp.SetYOffset(cursor)
	} else if vp.Height > 0 && cursor >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursor - vp.Height + 1)
	}
}
