package api

import (
	"context"

	"github.com/socialchef/recipedesk/internal/links"
	"github.com/socialchef/recipedesk/internal/search"
	"golang.org/x/sync/errgroup"
)

// maxThumbnailFetches bounds concurrent image downloads per response.
const maxThumbnailFetches = 4

// Card is one rendered recipe.
type Card struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// cards renders recipes in order. Thumbnails are fetched concurrently and a
// failed fetch only leaves that card without an image.
func (s *Server) cards(ctx context.Context, recipes []search.RecipeSummary) []Card {
	if len(recipes) == 0 {
		return nil
	}

	out := make([]Card, len(recipes))
	var g errgroup.Group
	g.SetLimit(maxThumbnailFetches)

	for i, recipe := range recipes {
		out[i] = Card{ID: recipe.ID, Title: recipe.Title, URL: links.DetailURL(recipe)}
		if !recipe.HasImage() || s.thumbnails == nil {
			continue
		}

		imageURL := recipe.ImageURL
		g.Go(func() error {
			out[i].Thumbnail = s.thumbnails.DataURI(ctx, imageURL)
			return nil
		})
	}

	_ = g.Wait()
	return out
}
