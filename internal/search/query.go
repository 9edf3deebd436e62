package search

import (
	"net/url"
	"strings"

	"github.com/socialchef/recipedesk/internal/errors"
)

// SearchQuery is a validated search: trimmed, non-empty free text plus filters.
type SearchQuery struct {
	FreeText string
	Filters  FilterSelection
}

// BuildQuery validates freeText and combines it with filters.
// Whitespace-only text fails with a validation error.
func BuildQuery(freeText string, filters FilterSelection) (SearchQuery, error) {
	text := strings.TrimSpace(freeText)
	if text == "" {
		return SearchQuery{}, errors.NewValidationError(
			"Please enter a recipe name or ingredients.",
			"EMPTY_QUERY",
			"Type at least one word to search for.",
		)
	}
	return SearchQuery{FreeText: text, Filters: filters}, nil
}

// Params returns the search parameters. None filters are omitted.
func (q SearchQuery) Params() url.Values {
	params := url.Values{}
	params.Set("query", q.FreeText)
	if p := q.Filters.Cuisine.Param(); p != "" {
		params.Set("cuisine", p)
	}
	if p := q.Filters.Diet.Param(); p != "" {
		params.Set("diet", p)
	}
	return params
}
