package search

// RecipeSummary is the minimal recipe record returned by the search service.
// ImageURL is empty when the service sent no image.
type RecipeSummary struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image,omitempty"`
}

// HasImage reports whether a thumbnail can be fetched for the recipe.
func (r RecipeSummary) HasImage() bool {
	return r.ImageURL != ""
}
