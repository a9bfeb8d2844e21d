package search

import (
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// SubstringProvider provides substring-based search.
// Matches if the joined field text contains the query as a substring.
// With default options it behaves exactly like domain.ConcatTextMatcher.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if the joined field text contains the query substring.
func (p *SubstringProvider) Match(item domain.Item, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}
	return strings.Contains(searchText(item, p.opts), query)
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return ModeSubstring
}
