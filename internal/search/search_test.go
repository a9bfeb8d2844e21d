package search

import (
	"testing"

	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItem = domain.Item{
	ID:           "sku-1",
	Name:         "Aurora Headphones",
	Category:     "Audio",
	Brand:        "Sonic",
	Tags:         []string{"wireless", "noise-cancelling"},
	Price:        199,
	Availability: domain.AvailabilityInStock,
	IsNew:        true,
}

var testItemOnSale = domain.Item{
	ID:           "sku-2",
	Name:         "Strike Controller",
	Category:     "Gaming",
	Brand:        "Vortex",
	Price:        59,
	Availability: domain.AvailabilityLowStock,
	IsOnSale:     true,
}

// TestDefaultOptions verifies default option values.
func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.CaseInsensitive, "default should be case-insensitive")
	assert.Equal(t, []string{"name", "brand", "category"}, opts.Fields)
}

// TestOptions verifies option application.
func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	WithCaseInsensitive(false)(&opts)
	WithFields([]string{"name", "tags"})(&opts)

	assert.False(t, opts.CaseInsensitive)
	assert.Equal(t, []string{"name", "tags"}, opts.Fields)
}

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		query    string
		expected bool
	}{
		{"empty query matches all", NewSubstringProvider(), "", true},
		{"whitespace query matches all", NewSubstringProvider(), "   ", true},
		{"substring in name", NewSubstringProvider(), "head", true},
		{"substring in brand", NewSubstringProvider(), "SONIC", true},
		{"substring in category", NewSubstringProvider(), "aud", true},
		{"spans field boundary", NewSubstringProvider(), "headphones sonic", true},
		{"substring not found", NewSubstringProvider(), "keyboard", false},
		{"tags not searched by default", NewSubstringProvider(), "wireless", false},
		{"tags searched when configured", NewSubstringProvider(WithFields([]string{"tags"})), "wire", true},
		{"case-sensitive miss", NewSubstringProvider(WithCaseInsensitive(false)), "sonic", false},
		{"case-sensitive hit", NewSubstringProvider(WithCaseInsensitive(false)), "Sonic", true},
		{"id field", NewSubstringProvider(WithFields([]string{"id"})), "sku-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Match(testItem, tt.query))
		})
	}
}

// TestSubstringProviderAgreesWithEngineDefault checks the default provider
// is interchangeable with the pipeline's built-in matcher.
func TestSubstringProviderAgreesWithEngineDefault(t *testing.T) {
	provider := NewSubstringProvider()
	noBrand := domain.Item{ID: "no-brand", Name: "a", Category: "audio", Availability: domain.AvailabilityInStock}
	items := []domain.Item{testItem, testItemOnSale, noBrand}
	for _, q := range []string{"a", "sonic", "O H", "gaming", "vortex strike", "zzz", "audio", "a a", "a  a"} {
		for _, it := range items {
			assert.Equal(t, domain.ConcatTextMatcher(it, q), provider.Match(it, q), "query %q item %s", q, it.ID)
		}
	}
}

func TestTokenProvider(t *testing.T) {
	tests := []struct {
		name     string
		item     domain.Item
		query    string
		expected bool
	}{
		{"empty query matches all", testItem, "", true},
		{"single token", testItem, "aurora", true},
		{"all tokens must match", testItem, "sonic audio", true},
		{"tokens in any order", testItem, "audio aurora", true},
		{"one token misses", testItem, "sonic gaming", false},
		{"sale token requires on sale", testItem, "sale", false},
		{"sale token on sale item", testItemOnSale, "sale", true},
		{"sale token with text", testItemOnSale, "sale vortex", true},
		{"new token", testItem, "new sonic", true},
		{"new token misses", testItemOnSale, "new", false},
		{"sale and new both required", testItemOnSale, "sale new", false},
	}

	provider := NewTokenProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, provider.Match(tt.item, tt.query))
		})
	}
}

func TestTokenProviderFieldFiltering(t *testing.T) {
	provider := NewTokenProvider(WithFields([]string{"tags"}))
	assert.True(t, provider.Match(testItem, "wireless noise"))
	assert.False(t, provider.Match(testItem, "aurora"))
}

func TestRegexProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		query    string
		expected bool
	}{
		{"empty query matches all", NewRegexProvider(), "", true},
		{"simple match", NewRegexProvider(), "head", true},
		{"pattern across fields", NewRegexProvider(), "^aurora.*audio$", true},
		{"anchored miss", NewRegexProvider(), "^sonic", false},
		{"case-sensitive option", NewRegexProvider(WithCaseInsensitive(false)), "aurora", false},
		{"inline flag", NewRegexProvider(WithCaseInsensitive(false)), "(?i)aurora", true},
		{"invalid regex returns false", NewRegexProvider(), "[invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Match(testItem, tt.query))
		})
	}
}

func TestRegexProviderCachesCompiledPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	p.Match(testItem, "sonic")
	p.Match(testItemOnSale, "sonic")
	p.Match(testItem, "[invalid")

	assert.Len(t, p.cache, 1)
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "substring", NewSubstringProvider().Name())
	assert.Equal(t, "token", NewTokenProvider().Name())
	assert.Equal(t, "regex", NewRegexProvider().Name())
}

func TestNewProvider(t *testing.T) {
	for _, mode := range append(Modes(), "", " Token ") {
		p, err := NewProvider(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, p)
	}

	p, err := NewProvider("")
	require.NoError(t, err)
	assert.Equal(t, ModeSubstring, p.Name())

	_, err = NewProvider("fuzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search mode")
}

func TestProviderPlugsIntoPipeline(t *testing.T) {
	items := []domain.Item{testItem, testItemOnSale}
	state := domain.FilterState{SearchText: "sale"}

	bySubstring := domain.FilterItems(items, state, domain.WithTextMatcher(NewSubstringProvider().Match))
	assert.Empty(t, bySubstring)

	byToken := domain.FilterItems(items, state, domain.WithTextMatcher(NewTokenProvider().Match))
	require.Len(t, byToken, 1)
	assert.Equal(t, "sku-2", byToken[0].ID)
}
