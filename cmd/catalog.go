package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/filterstore"
	"github.com/storefront-kit/facetq/internal/search"
	"github.com/storefront-kit/facetq/internal/storage"
)

// catalogOpener resolves the catalog provider for a backend and a list of
// catalog files. Commands take it as a dependency so tests can serve a
// fixed snapshot.
type catalogOpener func(backend string, paths []string) (storage.Provider, error)

// openCatalog is the default opener. Flags win over configuration;
// explicit files imply the file backend.
func openCatalog(backend string, paths []string) (storage.Provider, error) {
	if backend == "" && len(paths) == 0 {
		return storage.NewFromConfig()
	}
	if backend == "" {
		backend = storage.BackendFile
	}
	if len(paths) == 0 {
		paths = config.GetList("catalog_paths")
	}
	return storage.NewForBackend(backend, paths)
}

// catalogFlags are the flags shared by every command that reads the catalog.
type catalogFlags struct {
	paths   []string
	backend string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.paths, "catalog", nil, "Catalog file (json, yaml, toml); repeatable")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Catalog backend: file, sqlite (default from config)")
}

// load opens the provider and takes one snapshot of it.
func (f *catalogFlags) load(ctx context.Context, open catalogOpener) ([]domain.Item, storage.Provider, error) {
	provider, err := open(f.backend, f.paths)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	if closer, ok := provider.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				colors.Debug(fmt.Sprintf("failed to close catalog %s: %v", provider.Name(), err))
			}
		}()
	}

	start := time.Now()
	items, err := provider.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog %s: %w", provider.Name(), err)
	}
	fields := colors.Since(start)
	fields["provider"] = provider.Name()
	fields["items"] = len(items)
	colors.Structured("cmd", "load_catalog", "completed", nil, fields)
	return items, provider, nil
}

// filterFlags maps every FilterState field to a flag. Only flags the user
// set override the route given with --url.
type filterFlags struct {
	url         string
	search      string
	category    string
	brands      []string
	tags        []string
	minPrice    float64
	maxPrice    float64
	onSale      bool
	inStock     bool
	newArrivals bool
	sort        string
	page        int
	limit       int
	searchMode  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", "", "Seed the query from a catalog link, e.g. /category/audio?brand=Sonic")
	flags.StringVar(&f.search, "search", "", "Case-insensitive search over name, brand and category")
	flags.StringVar(&f.category, "category", "", "Select a category (name or slug)")
	flags.StringArrayVar(&f.brands, "brand", nil, "Select a brand; repeatable")
	flags.StringArrayVar(&f.tags, "tag", nil, "Select a tag; repeatable")
	flags.Float64Var(&f.minPrice, "min-price", 0, "Lowest price to include")
	flags.Float64Var(&f.maxPrice, "max-price", 0, "Highest price to include")
	flags.BoolVar(&f.onSale, "on-sale", false, "Only items on sale")
	flags.BoolVar(&f.inStock, "in-stock", false, "Only items that can be bought")
	flags.BoolVar(&f.newArrivals, "new", false, "Only new arrivals")
	flags.StringVar(&f.sort, "sort", "", "Sort: featured, priceAsc, priceDesc, rating, newest (default from config)")
	flags.IntVar(&f.page, "page", 1, "Page number, 1-based")
	flags.IntVar(&f.limit, "limit", 0, "Show a window of N items instead of a page")
	flags.StringVar(&f.searchMode, "search-mode", "", "Search strategy: substring, token, regex (default from config)")
}

// state builds the requested FilterState. It is not normalized; the
// filter store corrects it against the catalog.
func (f *filterFlags) state(cmd *cobra.Command) (domain.FilterState, error) {
	state := domain.DefaultFilterState()
	routeSort := false
	if f.url != "" {
		seeded, err := filterstore.FromURL(f.url)
		if err != nil {
			return domain.FilterState{}, err
		}
		state = seeded
		routeSort = seeded.SortKey != domain.SortFeatured
	}
	if !routeSort {
		if key, err := domain.ParseSortKey(config.Get("default_sort", "featured")); err == nil {
			state.SortKey = key
		}
	}

	changed := cmd.Flags().Changed
	if changed("search") {
		state.SearchText = f.search
	}
	if changed("category") {
		state.Category = f.category
	}
	if changed("brand") {
		state.Brands = f.brands
	}
	if changed("tag") {
		state.Tags = f.tags
	}
	if changed("min-price") || changed("max-price") {
		r := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
		if state.PriceRange != nil {
			r = *state.PriceRange
		}
		if changed("min-price") {
			r.Min = f.minPrice
		}
		if changed("max-price") {
			r.Max = f.maxPrice
		}
		state.PriceRange = &r
	}
	if changed("on-sale") {
		state.Flags.OnSale = f.onSale
	}
	if changed("in-stock") {
		state.Flags.InStock = f.inStock
	}
	if changed("new") {
		state.Flags.NewArrivals = f.newArrivals
	}
	if changed("sort") {
		key, err := domain.ParseSortKey(f.sort)
		if err != nil {
			return domain.FilterState{}, err
		}
		state.SortKey = key
	}
	if changed("page") {
		if f.page < 1 {
			return domain.FilterState{}, fmt.Errorf("invalid page: %d (must be 1 or greater)", f.page)
		}
		state.Page = f.page
	}
	if changed("limit") {
		if f.limit < 0 {
			return domain.FilterState{}, fmt.Errorf("invalid limit: %d (must not be negative)", f.limit)
		}
		state.Limit = f.limit
	}
	return state, nil
}

// matcher returns the configured search strategy.
func (f *filterFlags) matcher() (search.Provider, error) {
	mode := f.searchMode
	if mode == "" {
		mode = config.Get("search_mode", search.ModeSubstring)
	}
	return search.NewProvider(mode)
}

// pageSize returns the flag value, or page_size from config when unset.
func pageSize(flagValue int) (int, error) {
	if flagValue < 0 {
		return 0, fmt.Errorf("invalid page size: %d (must be positive)", flagValue)
	}
	if flagValue == 0 {
		return config.GetInt("page_size", 12), nil
	}
	return flagValue, nil
}

// runQuery executes one query against a snapshot. The store normalizes
// the requested state and the page is clamped to the result.
func runQuery(items []domain.Item, requested domain.FilterState, size int, provider search.Provider) (domain.View, domain.FilterState) {
	store := filterstore.New(items, requested)
	state := store.Get()
	view := domain.Run(items, state, size, domain.WithTextMatcher(provider.Match))
	if view.Page != state.Page {
		state = store.ClampPage(view.TotalCount, view.PageSize)
	}
	return view, state
}

// runWindow runs a carousel query of requested.Limit items starting at offset.
func runWindow(items []domain.Item, requested domain.FilterState, offset int, provider search.Provider) (domain.View, domain.FilterState) {
	state := filterstore.New(items, requested).Get()
	return domain.RunWindow(items, state, offset, state.Limit, domain.WithTextMatcher(provider.Match)), state
}
