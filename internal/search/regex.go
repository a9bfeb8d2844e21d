package search

import (
	"regexp"
	"sync"

	"github.com/storefront-kit/facetq/internal/domain"
)

// RegexProvider provides regex-based search over the joined field text.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if the joined field text matches the regex pattern.
// If the query is not a valid regex, it returns false for all items.
func (p *RegexProvider) Match(item domain.Item, query string) bool {
	if query == "" {
		return true
	}

	re, err := p.getRegex(query)
	if err != nil {
		return false
	}

	text := joinRaw(item, p.opts.Fields)
	return re.MatchString(text)
}

// getRegex returns a compiled regex for the given pattern, using cache.
// Providers are shared across concurrent queries, hence the lock.
func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = compiled
	p.cacheMu.Unlock()

	return compiled, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return ModeRegex
}

// joinRaw joins field values without case folding; the (?i) flag handles case.
func joinRaw(item domain.Item, fields []string) string {
	return searchText(item, Options{Fields: fields})
}
