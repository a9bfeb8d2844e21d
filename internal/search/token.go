package search

import (
	"strings"

	"github.com/storefront-kit/facetq/internal/domain"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Special tokens: "sale" (match only on-sale items), "new" (match only new arrivals).
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all text tokens match at least one field
// and the item carries every flag named by a special token.
func (p *TokenProvider) Match(item domain.Item, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	saleFilter := false
	newFilter := false
	textTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "sale":
			saleFilter = true
		case "new":
			newFilter = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			textTokens = append(textTokens, token)
		}
	}

	if saleFilter && !item.IsOnSale {
		return false
	}
	if newFilter && !item.IsNew {
		return false
	}

	values := fieldValues(item, p.opts.Fields)
	if p.opts.CaseInsensitive {
		for i, v := range values {
			values[i] = strings.ToLower(v)
		}
	}

	// Each token must match at least one field (AND logic)
	for _, token := range textTokens {
		if !containsAny(values, token) {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return ModeToken
}

func containsAny(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}
