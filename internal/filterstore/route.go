package filterstore

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// Query parameter names understood by FromURL and written by ToQuery.
const (
	ParamSearch      = "search"
	ParamSearchShort = "q"
	ParamCategory    = "category"
	ParamBrand       = "brand"
	ParamTag         = "tag"
	ParamMin         = "min"
	ParamMax         = "max"
	ParamSort        = "sort"
	ParamPage        = "page"
	ParamLimit       = "limit"
	ParamOnSale      = "onSale"
	ParamInStock     = "inStock"
	ParamNew         = "new"
)

// FromURL seeds a FilterState from a catalog link such as
// "/category/audio?brand=Sonic&min=50&sort=price-asc".
//
// A "category" or "categories" path segment followed by a slug selects
// that category; a category query parameter takes precedence. Brand and
// tag accept repeated parameters or comma separated lists. Malformed
// values are ignored rather than rejected, matching how the store
// corrects user input. Only an unparsable URL is an error.
func FromURL(raw string) (domain.FilterState, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.FilterState{}, fmt.Errorf("parse catalog url: %w", err)
	}

	state := domain.DefaultFilterState()
	state.Category = categoryFromPath(u.Path)

	q := u.Query()
	if v := firstNonEmpty(q.Get(ParamSearch), q.Get(ParamSearchShort)); v != "" {
		state.SearchText = v
	}
	if v := q.Get(ParamCategory); v != "" {
		state.Category = v
	}
	state.Brands = splitList(q[ParamBrand])
	state.Tags = splitList(q[ParamTag])
	state.PriceRange = priceFromQuery(q)

	if v := q.Get(ParamSort); v != "" {
		if key, err := domain.ParseSortKey(v); err == nil {
			state.SortKey = key
		}
	}
	if n, ok := intParam(q, ParamPage); ok {
		state.Page = n
	}
	if n, ok := intParam(q, ParamLimit); ok {
		state.Limit = n
	}

	state.Flags.OnSale = boolParam(q, ParamOnSale)
	state.Flags.InStock = boolParam(q, ParamInStock)
	state.Flags.NewArrivals = boolParam(q, ParamNew)
	return state, nil
}

// ToQuery reflects a state back into query parameters. Defaults are
// omitted so an unconstrained state yields an empty query.
func ToQuery(state domain.FilterState) url.Values {
	q := url.Values{}
	if state.SearchText != "" {
		q.Set(ParamSearch, state.SearchText)
	}
	if state.Category != "" {
		q.Set(ParamCategory, domain.Slug(state.Category))
	}
	for _, b := range state.Brands {
		q.Add(ParamBrand, b)
	}
	for _, t := range state.Tags {
		q.Add(ParamTag, t)
	}
	if r := state.PriceRange; r != nil {
		q.Set(ParamMin, formatPrice(r.Min))
		if r.Max < math.MaxFloat64 {
			q.Set(ParamMax, formatPrice(r.Max))
		}
	}
	if state.SortKey.IsValid() && state.SortKey != domain.SortFeatured {
		q.Set(ParamSort, state.SortKey.String())
	}
	if state.Page > 1 {
		q.Set(ParamPage, strconv.Itoa(state.Page))
	}
	if state.Limit > 0 {
		q.Set(ParamLimit, strconv.Itoa(state.Limit))
	}
	if state.Flags.OnSale {
		q.Set(ParamOnSale, "true")
	}
	if state.Flags.InStock {
		q.Set(ParamInStock, "true")
	}
	if state.Flags.NewArrivals {
		q.Set(ParamNew, "true")
	}
	return q
}

func categoryFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		switch strings.ToLower(segments[i]) {
		case "category", "categories":
			if slug, err := url.PathUnescape(segments[i+1]); err == nil && slug != "" {
				return slug
			}
		}
	}
	return ""
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// priceFromQuery builds a range from min and max. A missing bound is left
// open and later clamped to the observed bounds by the store.
func priceFromQuery(q url.Values) *domain.PriceRange {
	lo, hasMin := floatParam(q, ParamMin)
	hi, hasMax := floatParam(q, ParamMax)
	if !hasMin && !hasMax {
		return nil
	}
	r := &domain.PriceRange{Min: 0, Max: math.MaxFloat64}
	if hasMin {
		r.Min = lo
	}
	if hasMax {
		r.Max = hi
	}
	return r
}

func floatParam(q url.Values, name string) (float64, bool) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func intParam(q url.Values, name string) (int, bool) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// boolParam treats a bare flag ("?onSale") as true.
func boolParam(q url.Values, name string) bool {
	values, ok := q[name]
	if !ok {
		return false
	}
	v := strings.TrimSpace(values[0])
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
