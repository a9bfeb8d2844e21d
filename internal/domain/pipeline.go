package domain

// Options configures the filter pipeline.
type Options struct {
	// Matcher decides search matches. Defaults to ConcatTextMatcher.
	Matcher TextMatcher
}

// Option is a function that modifies pipeline options.
type Option func(*Options)

// WithTextMatcher sets the search matcher used by the search predicate.
func WithTextMatcher(match TextMatcher) Option {
	return func(o *Options) {
		o.Matcher = match
	}
}

func applyOptions(opts []Option) Options {
	o := Options{Matcher: ConcatTextMatcher}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Matcher == nil {
		o.Matcher = ConcatTextMatcher
	}
	return o
}

// FilterItems returns the items matching every active constraint of
// state, in source order. The input slice is never modified.
func FilterItems(items []Item, state FilterState, opts ...Option) []Item {
	o := applyOptions(opts)
	return applyPredicates(items, state.Predicates(o.Matcher))
}

// FilterItemsExcept filters like FilterItems with the constraint of dim relaxed.
func FilterItemsExcept(items []Item, state FilterState, dim Dimension, opts ...Option) []Item {
	return FilterItems(items, state.Without(dim), opts...)
}

func applyPredicates(items []Item, preds []DimensionPredicate) []Item {
	result := make([]Item, 0, len(items))
	if len(preds) == 0 {
		return append(result, items...)
	}
	for _, it := range items {
		if matchesAll(it, preds) {
			result = append(result, it)
		}
	}
	return result
}

func matchesAll(it Item, preds []DimensionPredicate) bool {
	for _, p := range preds {
		if !p.Predicate(it) {
			return false
		}
	}
	return true
}
