package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// VariableContext contains all data needed for template variable resolution.
type VariableContext struct {
	// Count variables
	TotalCount   int
	PageCount    int
	Page         int
	TotalPages   int
	PageSize     int
	OnSaleCount  int
	InStockCount int
	NewCount     int

	// Query variables
	SortKey       string
	SearchText    string
	Category      string
	CategoryLabel string
	Brands        []string
	Tags          []string
	PriceRange    *domain.PriceRange
	ActiveFilters int
	Constrained   bool

	// Content variables
	FirstItem string
}

// NewVariableContext collects the variables of one executed query.
func NewVariableContext(view domain.View, state domain.FilterState) VariableContext {
	ctx := VariableContext{
		TotalCount:    view.TotalCount,
		PageCount:     len(view.PageItems),
		Page:          view.Page,
		TotalPages:    view.TotalPages,
		PageSize:      view.PageSize,
		OnSaleCount:   view.Facets.Flags.OnSale,
		InStockCount:  view.Facets.Flags.InStock,
		NewCount:      view.Facets.Flags.NewArrivals,
		SortKey:       view.SortKey.String(),
		SearchText:    state.SearchText,
		Category:      state.Category,
		Brands:        state.Brands,
		Tags:          state.Tags,
		PriceRange:    state.PriceRange,
		ActiveFilters: len(state.Predicates(domain.ConcatTextMatcher)),
		Constrained:   !state.IsUnconstrained(),
	}
	if slug := domain.Slug(state.Category); slug != "" {
		if v, ok := domain.Lookup(view.Facets.Categories, slug); ok {
			ctx.CategoryLabel = v.Label
		}
	}
	if len(view.PageItems) > 0 {
		ctx.FirstItem = view.PageItems[0].Name
	}
	return ctx
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	// Resolve returns the string value for a given variable name and context.
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	// Count variables
	case "total-count":
		return strconv.Itoa(ctx.TotalCount), nil
	case "page-count":
		return strconv.Itoa(ctx.PageCount), nil
	case "page":
		return strconv.Itoa(ctx.Page), nil
	case "total-pages":
		return strconv.Itoa(ctx.TotalPages), nil
	case "page-size":
		return strconv.Itoa(ctx.PageSize), nil
	case "on-sale-count":
		return strconv.Itoa(ctx.OnSaleCount), nil
	case "in-stock-count":
		return strconv.Itoa(ctx.InStockCount), nil
	case "new-count":
		return strconv.Itoa(ctx.NewCount), nil
	case "active-filters":
		return strconv.Itoa(ctx.ActiveFilters), nil

	// Query variables
	case "sort":
		return ctx.SortKey, nil
	case "search":
		return ctx.SearchText, nil
	case "category":
		return ctx.Category, nil
	case "category-label":
		return ctx.CategoryLabel, nil
	case "brands":
		return strings.Join(ctx.Brands, ","), nil
	case "tags":
		return strings.Join(ctx.Tags, ","), nil
	case "price-range":
		if ctx.PriceRange == nil {
			return "any", nil
		}
		return fmt.Sprintf("%.2f-%.2f", ctx.PriceRange.Min, ctx.PriceRange.Max), nil

	// Boolean variables (as strings)
	case "has-results":
		return strconv.FormatBool(ctx.TotalCount > 0), nil
	case "has-filters":
		return strconv.FormatBool(ctx.Constrained), nil

	// Content variables
	case "first-item":
		return ctx.FirstItem, nil

	default:
		return "", fmt.Errorf("unknown variable: %s (available: %s)", varName, strings.Join(Variables(), ", "))
	}
}

// Variables lists every supported variable name, sorted.
func Variables() []string {
	names := []string{
		"total-count", "page-count", "page", "total-pages", "page-size",
		"on-sale-count", "in-stock-count", "new-count", "active-filters",
		"sort", "search", "category", "category-label", "brands", "tags", "price-range",
		"has-results", "has-filters", "first-item",
	}
	sort.Strings(names)
	return names
}
