// Package state holds the bubbletea model of the catalog browser.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/storefront-kit/facetq/internal/domain"
)

// CatalogReloadedMsg carries a complete new catalog snapshot.
type CatalogReloadedMsg struct {
	Items []domain.Item
}

// CatalogErrorMsg reports a failed catalog reload. The previous snapshot
// stays in use.
type CatalogErrorMsg struct {
	Err error
}

// clearStatusMsg asks the model to drop an expired status message.
type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
