// Package search provides the text matching strategies behind the catalog
// search box. Every strategy implements Provider and plugs into the filter
// pipeline through domain.WithTextMatcher(provider.Match).
package search

import (
	"fmt"
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex, token-based)
// to match items against search queries.
type Provider interface {
	// Match returns true if the item matches the search query.
	Match(item domain.Item, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Search modes accepted by NewProvider and the search_mode config key.
const (
	ModeSubstring = "substring"
	ModeToken     = "token"
	ModeRegex     = "regex"
)

// Modes returns every supported search mode.
func Modes() []string {
	return []string{ModeSubstring, ModeToken, ModeRegex}
}

// Searchable item fields.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldBrand    = "brand"
	FieldCategory = "category"
	FieldTags     = "tags"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in, joined by spaces
}

// DefaultOptions returns the default search options: a case-insensitive
// search over name, brand and category.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldName, FieldBrand, FieldCategory},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "id", "name", "brand", "category", "tags".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewProvider returns the provider for mode. An empty mode selects substring.
func NewProvider(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeSubstring:
		return NewSubstringProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q (expected one of: %s)", mode, strings.Join(Modes(), ", "))
	}
}

// fieldValues returns the non-empty values of the configured fields.
func fieldValues(item domain.Item, fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case FieldID:
			values = append(values, item.ID)
		case FieldName:
			values = append(values, item.Name)
		case FieldBrand:
			values = append(values, item.Brand)
		case FieldCategory:
			values = append(values, item.Category)
		case FieldTags:
			values = append(values, item.Tags...)
		}
	}
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// searchText joins the configured fields so a query may span field boundaries.
func searchText(item domain.Item, opts Options) string {
	text := strings.Join(fieldValues(item, opts.Fields), " ")
	if opts.CaseInsensitive {
		text = strings.ToLower(text)
	}
	return text
}
