package search

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/tqc04/basket/internal/product"
	"github.com/tqc04/basket/internal/shopapi"
)

const (
	// MinQueryLength is the shortest query worth sending to the server.
	// One-rune queries match too much to be useful suggestions.
	MinQueryLength = 2

	// SuggestionLimit caps how many suggestions a single query requests.
	SuggestionLimit = 5
)

// Suggester fetches typeahead suggestions for the search box.
type Suggester struct {
	backend shopapi.Backend
	logf    func(format string, args ...any)
}

// NewSuggester builds a suggester over the given backend.
func NewSuggester(backend shopapi.Backend) *Suggester {
	return &Suggester{backend: backend, logf: log.Printf}
}

// Eligible reports whether a query is long enough to search for.
func Eligible(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}

// Suggest returns up to SuggestionLimit suggestions for the query.
// Queries below MinQueryLength return nil without a network call, and a
// backend failure degrades to no suggestions: typeahead is decoration,
// never worth an error toast mid-keystroke.
func (s *Suggester) Suggest(ctx context.Context, query string) []product.Summary {
	if !Eligible(query) {
		return nil
	}
	raw, err := s.backend.Autocomplete(ctx, query, SuggestionLimit)
	if err != nil {
		s.logf("autocomplete %q failed: %v", query, err)
		return nil
	}
	out := make([]product.Summary, 0, len(raw))
	for _, sug := range raw {
		out = append(out, product.FromSuggestion(sug))
	}
	return out
}
