package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/format"
	"github.com/storefront-kit/facetq/internal/logging"
)

const facetsCommandLong = `Print the facet counts of a catalog query.

Each count is the number of items that would match if that value were
selected, with every other filter held fixed. Values that match nothing
are listed with a count of 0.

USAGE:
    facetq facets [OPTIONS]

OPTIONS:
    Accepts the catalog and filter options of "facetq query".
    --format <format>      Output format: simple (default), table, compact, json
    -h, --help             Show this help`

type facetsOptions struct {
	catalog catalogFlags
	filters filterFlags
	format  string
}

// NewFacetsCmd creates the facets command with explicit dependencies.
func NewFacetsCmd(open catalogOpener) *cobra.Command {
	if open == nil {
		panic("NewFacetsCmd: catalog opener cannot be nil")
	}

	var opts facetsOptions
	facetsCmd := &cobra.Command{
		Use:   "facets",
		Short: "Print facet counts for a catalog query",
		Long:  facetsCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := format.ParseFormatterType(opts.format)
			if err != nil {
				return err
			}
			requested, err := opts.filters.state(cmd)
			if err != nil {
				return err
			}
			provider, err := opts.filters.matcher()
			if err != nil {
				return err
			}
			items, _, err := opts.catalog.load(cmd.Context(), open)
			if err != nil {
				return err
			}

			size, err := pageSize(0)
			if err != nil {
				return err
			}
			view, _ := runQuery(items, requested, size, provider)
			logging.Info("facets counted", "items", len(items), "matches", view.TotalCount)
			return format.NewFormatter(formatterType).FormatFacets(view.Facets, cmd.OutOrStdout())
		},
	}

	opts.catalog.register(facetsCmd)
	opts.filters.register(facetsCmd)
	facetsCmd.Flags().StringVar(&opts.format, "format", "simple", "Output format: simple (default), table, compact, json")

	return facetsCmd
}

// facetsCmd represents the facets command
var facetsCmd = NewFacetsCmd(openCatalog)

func init() {
	rootCmd.AddCommand(facetsCmd)
}
