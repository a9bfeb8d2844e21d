package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// focusPane identifies which pane receives navigation keys.
type focusPane int

const (
	focusItems focusPane = iota
	focusFacets
)

// UIState manages all UI-specific state for the TUI: viewport, cursors,
// search input and focus. Filter state lives in the filter store.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int

	cursor      int
	facetCursor int
	focus       focusPane

	searchMode  bool
	searchInput textinput.Model
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search name, brand, category"
	input.CharLimit = 128

	return &UIState{
		viewport:    viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:       defaultViewportWidth,
		height:      defaultViewportHeight,
		searchInput: input,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// UpdateViewportSize resizes the item viewport to the space left by the
// chrome and the facet sidebar.
func (u *UIState) UpdateViewportSize(sidebarWidth int) {
	height := u.height - chromeLines
	if height < 1 {
		height = 1
	}
	width := u.width - sidebarWidth - 1
	if width < 20 {
		width = 20
	}
	u.viewport.Width = width
	u.viewport.Height = height
}

// GetCursor returns the item cursor.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor sets the item cursor clamped to [0, listLen).
func (u *UIState) SetCursor(cursor, listLen int) {
	u.cursor = clampCursor(cursor, listLen)
}

// GetFacetCursor returns the facet cursor.
func (u *UIState) GetFacetCursor() int {
	return u.facetCursor
}

// SetFacetCursor sets the facet cursor clamped to [0, listLen).
func (u *UIState) SetFacetCursor(cursor, listLen int) {
	u.facetCursor = clampCursor(cursor, listLen)
}

// FacetsFocused reports whether the facet panel has focus.
func (u *UIState) FacetsFocused() bool {
	return u.focus == focusFacets
}

// ToggleFocus switches focus between the item list and the facet panel.
func (u *UIState) ToggleFocus() {
	if u.focus == focusItems {
		u.focus = focusFacets
		return
	}
	u.focus = focusItems
}

// IsSearchMode returns whether the search input is active.
func (u *UIState) IsSearchMode() bool {
	return u.searchMode
}

// StartSearch opens the search input prefilled with the current query.
func (u *UIState) StartSearch(current string) {
	u.searchMode = true
	u.searchInput.SetValue(current)
	u.searchInput.CursorEnd()
	u.searchInput.Focus()
}

// StopSearch closes the search input.
func (u *UIState) StopSearch() {
	u.searchMode = false
	u.searchInput.Blur()
}

// SearchInput returns the search input model.
func (u *UIState) SearchInput() *textinput.Model {
	return &u.searchInput
}

func clampCursor(cursor, listLen int) int {
	if listLen <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= listLen {
		return listLen - 1
	}
	return cursor
}
