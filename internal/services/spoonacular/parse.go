package spoonacular

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/socialchef/recipedesk/internal/search"
)

// MaxResults is the number of recipes requested per search and the cap
// applied to whatever the service returns.
const MaxResults = 10

type rawResult struct {
	ID    *int            `json:"id"`
	Title *string         `json:"title"`
	Image json.RawMessage `json:"image"`
}

// ParseSearchResponse turns a complexSearch body into recipe summaries.
//
// A missing or non-array "results" field yields an empty slice. Entries without
// a positive integer id or a non-blank title are skipped. "image" is optional
// and ignored unless it is a string. Only a body that is not a JSON object is
// an error.
func ParseSearchResponse(body []byte) ([]search.RecipeSummary, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	raw, ok := envelope["results"]
	if !ok {
		return []search.RecipeSummary{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("Search response results is not an array", "error", err)
		return []search.RecipeSummary{}, nil
	}

	summaries := make([]search.RecipeSummary, 0, min(len(entries), MaxResults))
	for i, entry := range entries {
		if len(summaries) == MaxResults {
			break
		}
		summary, ok := parseResult(entry)
		if !ok {
			slog.Warn("Skipping malformed search result", "index", i)
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func parseResult(entry json.RawMessage) (search.RecipeSummary, bool) {
	var r rawResult
	if err := json.Unmarshal(entry, &r); err != nil {
		return search.RecipeSummary{}, false
	}
	if r.ID == nil || *r.ID <= 0 {
		return search.RecipeSummary{}, false
	}
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return search.RecipeSummary{}, false
	}

	var image string
	if len(r.Image) > 0 {
		// non-string images are dropped, the card renders without one
		_ = json.Unmarshal(r.Image, &image)
	}

	return search.RecipeSummary{
		ID:       *r.ID,
		Title:    *r.Title,
		ImageURL: strings.TrimSpace(image),
	}, true
}
