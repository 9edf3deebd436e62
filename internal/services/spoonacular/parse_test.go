package spoonacular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialchef/recipedesk/internal/search"
)

func TestParseSearchResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []search.RecipeSummary
	}{
		{
			name: "empty results",
			body: `{"results": []}`,
			want: []search.RecipeSummary{},
		},
		{
			name: "missing results",
			body: `{"offset": 0}`,
			want: []search.RecipeSummary{},
		},
		{
			name: "results not an array",
			body: `{"results": "nope"}`,
			want: []search.RecipeSummary{},
		},
		{
			name: "image optional",
			body: `{"results":[{"id":7,"title":"Plain Rice"}]}`,
			want: []search.RecipeSummary{{ID: 7, Title: "Plain Rice"}},
		},
		{
			name: "non-string image ignored",
			body: `{"results":[{"id":7,"title":"Plain Rice","image":42}]}`,
			want: []search.RecipeSummary{{ID: 7, Title: "Plain Rice"}},
		},
		{
			name: "malformed entries skipped",
			body: `{"results":[
				{"title":"No Id"},
				{"id":"12","title":"String Id"},
				{"id":-3,"title":"Negative"},
				{"id":4,"title":"   "},
				{"id":5},
				"not an object",
				{"id":6,"title":"Kept","image":"http://img/6.jpg"}
			]}`,
			want: []search.RecipeSummary{{ID: 6, Title: "Kept", ImageURL: "http://img/6.jpg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSearchResponse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSearchResponse_PreservesOrderAndCaps(t *testing.T) {
	var entries []string
	for i := 1; i <= 15; i++ {
		entries = append(entries, fmt.Sprintf(`{"id":%d,"title":"Recipe %d"}`, i, i))
	}
	body := `{"results":[` + strings.Join(entries, ",") + `]}`

	got, err := ParseSearchResponse([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, MaxResults)
	for i, r := range got {
		assert.Equal(t, i+1, r.ID)
	}
}

func TestParseSearchResponse_NotJSON(t *testing.T) {
	_, err := ParseSearchResponse([]byte("<html>"))
	assert.Error(t, err)

	_, err = ParseSearchResponse([]byte(`[1,2,3]`))
	assert.Error(t, err, "top-level array is not a search response")
}
