package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/filterstore"
	"github.com/storefront-kit/facetq/internal/format"
	"github.com/storefront-kit/facetq/internal/formatter"
	"github.com/storefront-kit/facetq/internal/logging"
)

const queryCommandLong = `Run a catalog query and print one page of results.

USAGE:
    facetq query [OPTIONS]

OPTIONS:
    --catalog <file>       Catalog file (json, yaml, toml); repeatable
    --backend <name>       Catalog backend: file, sqlite
    --url <link>           Seed the query from a catalog link
    --search <text>        Search name, brand and category
    --search-mode <mode>   Search strategy: substring, token, regex
    --category <name>      Select a category
    --brand <name>         Select a brand; repeatable
    --tag <name>           Select a tag; repeatable
    --min-price <n>        Lowest price to include
    --max-price <n>        Highest price to include
    --on-sale              Only items on sale
    --in-stock             Only items that can be bought
    --new                  Only new arrivals
    --sort <key>           featured, priceAsc, priceDesc, rating, newest
    --page <n>             Page number, 1-based
    --page-size <n>        Items per page (default from config)
    --limit <n>            Show a window of N items instead of a page
    --window               Show a window of window_size items
    --offset <n>           Start the window at item n (0-based); implies --window
    --facets               Also print facet counts
    --format <format>      Output format: simple (default), table, compact, json
    --summary <preset>     Print a summary line: preset name or ${variable} template
    --print-url            Print the query string for the normalized state
    -h, --help             Show this help`

type queryOptions struct {
	catalog  catalogFlags
	filters  filterFlags
	pageSize int
	window   bool
	offset   int
	facets   bool
	format   string
	summary  string
	printURL bool
}

// NewQueryCmd creates the query command with explicit dependencies.
func NewQueryCmd(open catalogOpener) *cobra.Command {
	if open == nil {
		panic("NewQueryCmd: catalog opener cannot be nil")
	}

	var opts queryOptions
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Run a catalog query and print one page of results",
		Long:  queryCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCmd(cmd, open, &opts)
		},
	}

	opts.catalog.register(queryCmd)
	opts.filters.register(queryCmd)
	queryCmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Items per page (default from config)")
	queryCmd.Flags().BoolVar(&opts.window, "window", false, "Show a window of window_size items")
	queryCmd.Flags().IntVar(&opts.offset, "offset", 0, "Start the window at item n (0-based); implies --window")
	queryCmd.Flags().BoolVar(&opts.facets, "facets", false, "Also print facet counts")
	queryCmd.Flags().StringVar(&opts.format, "format", "simple", "Output format: simple (default), table, compact, json")
	queryCmd.Flags().StringVar(&opts.summary, "summary", "", "Print a summary line: preset name or ${variable} template")
	queryCmd.Flags().BoolVar(&opts.printURL, "print-url", false, "Print the query string for the normalized state")

	return queryCmd
}

func runQueryCmd(cmd *cobra.Command, open catalogOpener, opts *queryOptions) error {
	formatterType, err := format.ParseFormatterType(opts.format)
	if err != nil {
		return err
	}
	size, err := pageSize(opts.pageSize)
	if err != nil {
		return err
	}
	requested, err := opts.filters.state(cmd)
	if err != nil {
		return err
	}
	carousel := cmd.Flags().Changed("offset")
	if carousel && opts.offset < 0 {
		return fmt.Errorf("invalid offset: %d (must not be negative)", opts.offset)
	}
	if (opts.window || carousel) && requested.Limit == 0 {
		requested.Limit = config.GetInt("window_size", 4)
	}
	provider, err := opts.filters.matcher()
	if err != nil {
		return err
	}

	items, _, err := opts.catalog.load(cmd.Context(), open)
	if err != nil {
		return err
	}

	var view domain.View
	var state domain.FilterState
	if carousel {
		view, state = runWindow(items, requested, opts.offset, provider)
	} else {
		view, state = runQuery(items, requested, size, provider)
	}
	logging.Info("query executed",
		"items", len(items),
		"matches", view.TotalCount,
		"page", view.Page,
		"sort", view.SortKey.String(),
		"search_mode", provider.Name())

	return printQuery(cmd.OutOrStdout(), view, state, formatterType, opts)
}

func printQuery(w io.Writer, view domain.View, state domain.FilterState, formatterType format.FormatterType, opts *queryOptions) error {
	f := format.NewFormatter(formatterType)
	if err := f.FormatView(view, w); err != nil {
		return err
	}
	// The json view already carries its facet counts.
	if opts.facets && formatterType != format.FormatterTypeJSON {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := f.FormatFacets(view.Facets, w); err != nil {
			return err
		}
	}
	if opts.summary != "" {
		line, err := formatter.Render(formatter.NewPresetRegistry(), opts.summary, formatter.NewVariableContext(view, state))
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if opts.printURL {
		query := filterstore.ToQuery(state).Encode()
		if query != "" {
			query = "?" + query
		}
		if _, err := fmt.Fprintln(w, query); err != nil {
			return err
		}
	}
	return nil
}

// queryCmd represents the query command
var queryCmd = NewQueryCmd(openCatalog)

func init() {
	rootCmd.AddCommand(queryCmd)
}
