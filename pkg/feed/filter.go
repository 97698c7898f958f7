package feed

import "strings"

// Filter holds include/exclude keyword lists applied at fetch time.
// An empty include list accepts everything not excluded.
type Filter struct {
	keywords []string
	exclude  []string
}

// NewFilter creates a filter with lower-cased keyword lists for
// case-insensitive matching.
func NewFilter(keywords, exclude []string) *Filter {
	lower := func(in []string) []string {
		out := make([]string, len(in))
		for i, kw := range in {
			out[i] = strings.ToLower(kw)
		}
		return out
	}
	return &Filter{keywords: lower(keywords), exclude: lower(exclude)}
}

// Matches reports whether text passes the filter.
func (f *Filter) Matches(text string) bool {
	lower := strings.ToLower(text)

	for _, ex := range f.exclude {
		if strings.Contains(lower, ex) {
			return false
		}
	}

	if len(f.keywords) == 0 {
		return true
	}
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
