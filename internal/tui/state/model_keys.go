package state

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/storefront-kit/facetq/internal/filterstore"
)

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.uiState.IsSearchMode() {
		return m.handleSearchKey(msg)
	}

	switch msg.Type {
	case tea.KeyTab:
		m.uiState.ToggleFocus()
		m.updateViewportContent()
		return m, nil
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	case tea.KeyLeft:
		m.changePage(-1)
		return m, nil
	case tea.KeyRight:
		m.changePage(1)
		return m, nil
	case tea.KeyEnter, tea.KeySpace:
		m.activate()
		return m, nil
	case tea.KeyEsc:
		if m.uiState.FacetsFocused() {
			m.uiState.ToggleFocus()
			m.updateViewportContent()
		}
		return m, nil
	case tea.KeyRunes:
		return m.handleRunes(msg.String())
	}
	return m, nil
}

func (m *Model) handleRunes(key string) (tea.Model, tea.Cmd) {
	state := m.store.Get()
	switch key {
	case "q":
		return m, tea.Quit
	case "j":
		m.moveCursor(1)
	case "k":
		m.moveCursor(-1)
	case "h":
		m.changePage(-1)
	case "l":
		m.changePage(1)
	case "g":
		m.apply(filterstore.Partial{Page: filterstore.Ptr(1)})
	case "G":
		m.apply(filterstore.Partial{Page: filterstore.Ptr(m.view.TotalPages)})
	case "/":
		m.uiState.StartSearch(state.SearchText)
	case "s":
		m.apply(filterstore.Partial{SortKey: filterstore.Ptr(m.view.SortKey.Next())})
	case "o":
		m.apply(filterstore.Partial{OnSale: filterstore.Ptr(!state.Flags.OnSale)})
	case "i":
		m.apply(filterstore.Partial{InStock: filterstore.Ptr(!state.Flags.InStock)})
	case "n":
		m.apply(filterstore.Partial{NewArrivals: filterstore.Ptr(!state.Flags.NewArrivals)})
	case "c":
		m.store.Clear()
		m.recompute()
		m.errorHandler.Info("filters cleared")
		return m, clearStatusAfter(errorClearDuration)
	}
	return m, nil
}

// handleSearchKey routes keys to the search input. The query is applied
// on Enter only.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := m.uiState.SearchInput()
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(input.Value())
		m.uiState.StopSearch()
		m.apply(filterstore.Partial{SearchText: filterstore.Ptr(query)})
		return m, nil
	case tea.KeyEsc:
		m.uiState.StopSearch()
		return m, nil
	}
	updated, cmd := input.Update(msg)
	*input = updated
	return m, cmd
}

// moveCursor moves the cursor of the focused pane.
func (m *Model) moveCursor(delta int) {
	if m.uiState.FacetsFocused() {
		m.uiState.SetFacetCursor(m.uiState.GetFacetCursor()+delta, len(m.facets))
	} else {
		m.uiState.SetCursor(m.uiState.GetCursor()+delta, len(m.view.PageItems))
	}
	m.updateViewportContent()
}

// changePage moves by delta pages; the store clamps out of range pages.
func (m *Model) changePage(delta int) {
	next := m.view.Page + delta
	if next < 1 || (m.view.TotalPages > 0 && next > m.view.TotalPages) {
		return
	}
	m.apply(filterstore.Partial{Page: filterstore.Ptr(next)})
	m.uiState.SetCursor(0, len(m.view.PageItems))
	m.updateViewportContent()
}

// activate toggles the facet under the cursor when the sidebar has focus.
func (m *Model) activate() {
	if !m.uiState.FacetsFocused() || len(m.facets) == 0 {
		return
	}
	m.toggleFacet(m.facets[m.uiState.GetFacetCursor()])
}
