package domain

// View is everything a listing needs to render one query.
type View struct {
	PageItems  []Item      `json:"pageItems"`
	Facets     FacetCounts `json:"facetCounts"`
	TotalCount int         `json:"totalCount"`
	TotalPages int         `json:"totalPages"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	SortKey    SortKey     `json:"sortKey"`
}

// Run executes the full pipeline against a consistent snapshot:
// filter, then facet counts from the filter inputs, then sort and paginate.
// A positive state.Limit overrides pageSize for window views.
// Run holds no state, so concurrent calls are safe.
func Run(items []Item, state FilterState, pageSize int, opts ...Option) View {
	size := pageSize
	if state.Limit > 0 {
		size = state.Limit
	}

	filtered := FilterItems(items, state, opts...)
	sorted := SortItems(filtered, state.SortKey)
	page := Paginate(sorted, state.Page, size)

	key := state.SortKey
	if !key.IsValid() {
		key = SortFeatured
	}

	return View{
		PageItems:  page.Items,
		Facets:     CountFacets(items, state, opts...),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   size,
		SortKey:    key,
	}
}

// RunWindow is Run for carousel views. Instead of a page it returns a
// window of size items starting at offset over the sorted result; Page
// reports the page the window starts on.
func RunWindow(items []Item, state FilterState, offset, size int, opts ...Option) View {
	filtered := FilterItems(items, state, opts...)
	sorted := SortItems(filtered, state.SortKey)
	window := Window(sorted, offset, size)

	key := state.SortKey
	if !key.IsValid() {
		key = SortFeatured
	}

	start := min(offset, len(sorted)-size)
	start = max(start, 0)

	return View{
		PageItems:  window,
		Facets:     CountFacets(items, state, opts...),
		TotalCount: len(sorted),
		TotalPages: TotalPages(len(sorted), size),
		Page:       ClampPage(start/size+1, len(sorted), size),
		PageSize:   size,
		SortKey:    key,
	}
}
