package links

import (
	"errors"
	"testing"

	"github.com/socialchef/recipedesk/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestDetailURL(t *testing.T) {
	tests := []struct {
		recipe search.RecipeSummary
		want   string
	}{
		{search.RecipeSummary{ID: 1, Title: "Tomato Soup"}, "https://spoonacular.com/recipes/tomato-soup-1"},
		{search.RecipeSummary{ID: 715538, Title: "Pasta With Garlic"}, "https://spoonacular.com/recipes/pasta-with-garlic-715538"},
		{search.RecipeSummary{ID: 9, Title: "Chili"}, "https://spoonacular.com/recipes/chili-9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetailURL(tt.recipe))
	}
}

type recordingLauncher struct {
	opened []string
	err    error
}

func (r *recordingLauncher) Open(url string) error {
	r.opened = append(r.opened, url)
	return r.err
}

func TestOpen_SwallowsErrors(t *testing.T) {
	l := &recordingLauncher{err: errors.New("no display")}
	assert.False(t, Open(l, "https://example.com"))
	assert.Equal(t, []string{"https://example.com"}, l.opened)

	assert.False(t, Open(nil, "https://example.com"))
	assert.False(t, Open(NoopLauncher{}, "https://example.com"))
	assert.True(t, Open(&recordingLauncher{}, "https://example.com"))
}

func TestNewLauncher(t *testing.T) {
	assert.IsType(t, BrowserLauncher{}, NewLauncher(true))
	assert.IsType(t, NoopLauncher{}, NewLauncher(false))
	assert.ErrorIs(t, NoopLauncher{}.Open("x"), ErrLaunchDisabled)
}
