package state

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/errors"
	"github.com/storefront-kit/facetq/internal/filterstore"
	"github.com/storefront-kit/facetq/internal/logging"
)

const (
	chromeLines           = 5
	defaultViewportWidth  = 100
	defaultViewportHeight = 24
	defaultPageSize       = 12
	errorClearDuration    = 5 * time.Second
)

// Options configures a browser model.
type Options struct {
	// Items is the initial catalog snapshot.
	Items []domain.Item
	// Seed is the initial filter state, e.g. parsed from a route URL.
	Seed *domain.FilterState
	// PageSize is the number of items per page.
	PageSize int
	// Matcher overrides the default search matcher.
	Matcher domain.TextMatcher
}

// Model represents the TUI model for bubbletea.
type Model struct {
	uiState           *UIState
	errorHandler      *errors.TUIHandler
	statusMessage     string
	statusMessageType errors.MessageType
	hasStatusMessage  bool

	store    *filterstore.Store
	items    []domain.Item
	view     domain.View
	facets   []facetRow
	pageSize int
	opts     []domain.Option
}

// NewModel creates a browser over opts.Items and computes the first view.
func NewModel(opts Options) *Model {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var store *filterstore.Store
	if opts.Seed != nil {
		store = filterstore.New(opts.Items, *opts.Seed)
	} else {
		store = filterstore.New(opts.Items)
	}

	m := &Model{
		uiState:  NewUIState(),
		store:    store,
		items:    opts.Items,
		pageSize: pageSize,
	}
	if opts.Matcher != nil {
		m.opts = append(m.opts, domain.WithTextMatcher(opts.Matcher))
	}

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusMessageType = msg.Type
		m.hasStatusMessage = msg.Text != ""
	})

	m.uiState.UpdateViewportSize(sidebarWidth())
	m.recompute()
	return m
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.uiState.SetWidth(msg.Width)
		m.uiState.SetHeight(msg.Height)
		m.uiState.UpdateViewportSize(sidebarWidth())
		m.updateViewportContent()
		return m, nil
	case CatalogReloadedMsg:
		return m, m.handleCatalogReload(msg.Items)
	case CatalogErrorMsg:
		m.errorHandler.Error(fmt.Sprintf("catalog reload failed: %v", msg.Err))
		return m, clearStatusAfter(errorClearDuration)
	case clearStatusMsg:
		if _, ok := m.errorHandler.LatestWithin(errorClearDuration); !ok {
			m.statusMessage = ""
			m.hasStatusMessage = false
		}
		return m, nil
	}
	return m, nil
}

// State returns the current filter state.
func (m *Model) State() domain.FilterState {
	return m.store.Get()
}

// CurrentView returns the view computed for the current state.
func (m *Model) CurrentView() domain.View {
	return m.view
}

// StatusMessage returns the visible status message.
func (m *Model) StatusMessage() string {
	if !m.hasStatusMessage {
		return ""
	}
	return m.statusMessage
}

func (m *Model) handleCatalogReload(items []domain.Item) tea.Cmd {
	m.items = items
	m.store.SetCatalog(items)
	m.recompute()
	logging.Info("catalog reloaded", "items", len(items))
	m.errorHandler.Success(fmt.Sprintf("catalog reloaded: %d items", len(items)))
	return clearStatusAfter(errorClearDuration)
}

// recompute runs the whole query pipeline for the current state. Every
// state change goes through here before the next render.
func (m *Model) recompute() {
	state := m.store.Get()
	view := domain.Run(m.items, state, m.pageSize, m.opts...)
	if view.Page != state.Page {
		m.store.ClampPage(view.TotalCount, view.PageSize)
	}
	m.view = view
	m.facets = append(buildFacetRows(view.Facets), flagRows(view.Facets, state)...)

	m.uiState.SetCursor(m.uiState.GetCursor(), len(view.PageItems))
	m.uiState.SetFacetCursor(m.uiState.GetFacetCursor(), len(m.facets))
	m.updateViewportContent()
}

// apply sets a partial update on the store and recomputes.
func (m *Model) apply(p filterstore.Partial) {
	m.store.Set(p)
	m.recompute()
}
