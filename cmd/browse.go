package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/logging"
	"github.com/storefront-kit/facetq/internal/storage"
	tuistate "github.com/storefront-kit/facetq/internal/tui/state"
)

const browseCommandLong = `Browse the catalog interactively.

USAGE:
    facetq browse [OPTIONS]

OPTIONS:
    Accepts the catalog and filter options of "facetq query" as the
    starting state.
    --page-size <n>        Items per page (default from config)
    --watch                Reload when catalog files change
    -h, --help             Show this help

KEYS:
    j/k, up/down    Move the cursor
    h/l, left/right Previous and next page; g/G first and last page
    tab             Switch between items and facets
    space, enter    Toggle the facet under the cursor
    /               Search (applied on enter)
    s               Next sort order
    o/i/n           Toggle on sale, in stock, new arrivals
    c               Clear every filter
    q, ctrl+c       Quit`

// program is the part of tea.Program the browse command drives.
type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

// newProgram creates the terminal program. Replaced in tests.
var newProgram = func(model tea.Model) program {
	return tea.NewProgram(model, tea.WithAltScreen())
}

type browseOptions struct {
	catalog  catalogFlags
	filters  filterFlags
	pageSize int
	watch    bool
}

// NewBrowseCmd creates the browse command with explicit dependencies.
func NewBrowseCmd(open catalogOpener) *cobra.Command {
	if open == nil {
		panic("NewBrowseCmd: catalog opener cannot be nil")
	}

	var opts browseOptions
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long:  browseCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, open, &opts)
		},
	}

	opts.catalog.register(browseCmd)
	opts.filters.register(browseCmd)
	browseCmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Items per page (default from config)")
	browseCmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload when catalog files change")

	return browseCmd
}

func runBrowse(cmd *cobra.Command, open catalogOpener, opts *browseOptions) error {
	size, err := pageSize(opts.pageSize)
	if err != nil {
		return err
	}
	seed, err := opts.filters.state(cmd)
	if err != nil {
		return err
	}
	matcher, err := opts.filters.matcher()
	if err != nil {
		return err
	}
	items, provider, err := opts.catalog.load(cmd.Context(), open)
	if err != nil {
		return err
	}

	model := tuistate.NewModel(tuistate.Options{
		Items:    items,
		Seed:     &seed,
		PageSize: size,
		Matcher:  domain.TextMatcher(matcher.Match),
	})
	p := newProgram(model)

	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	if opts.watch {
		stop, err := watchCatalog(cmd.Context(), provider, p)
		if err != nil {
			return err
		}
		defer stop()
	}

	logging.Info("browser started", "items", len(items), "watch", opts.watch)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// watchCatalog forwards every reloaded snapshot, or reload error, to the
// running program. Only catalog files can be watched.
func watchCatalog(ctx context.Context, provider storage.Provider, p program) (func(), error) {
	files, ok := provider.(*storage.FileProvider)
	if !ok {
		colors.Warning(fmt.Sprintf("--watch needs catalog files, %s cannot be watched", provider.Name()))
		return func() {}, nil
	}

	watcher, err := storage.NewWatcher(files,
		func(items []domain.Item) {
			p.Send(tuistate.CatalogReloadedMsg{Items: items})
		},
		storage.WithDebounce(config.GetDuration("watch_debounce_ms", storage.DefaultDebounce)),
		storage.WithErrorHandler(func(err error) {
			logging.Warn("catalog reload failed", "error", err)
			p.Send(tuistate.CatalogErrorMsg{Err: err})
		}),
	)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	return watcher.Stop, nil
}

// browseCmd represents the browse command
var browseCmd = NewBrowseCmd(openCatalog)

func init() {
	rootCmd.AddCommand(browseCmd)
}
