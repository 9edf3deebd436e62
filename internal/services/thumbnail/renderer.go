package thumbnail

import (
	"context"
	"encoding/base64"
	"log/slog"
)

// Renderer turns an image URL into an inline thumbnail for a recipe card.
type Renderer struct {
	fetcher *Fetcher
	size    int
}

// NewRenderer creates a Renderer producing size×size thumbnails.
func NewRenderer(fetcher *Fetcher, size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{fetcher: fetcher, size: size}
}

// DataURI fetches, scales and encodes the image at imageURL as a PNG data URI.
// Any failure yields "" and the card renders without an image.
func (r *Renderer) DataURI(ctx context.Context, imageURL string) string {
	if r == nil || imageURL == "" {
		return ""
	}

	raw, err := r.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		slog.DebugContext(ctx, "Thumbnail fetch failed", "url", imageURL, "error", err)
		return ""
	}

	img, err := Scale(raw, r.size)
	if err != nil {
		slog.DebugContext(ctx, "Thumbnail decode failed", "url", imageURL, "error", err)
		return ""
	}

	encoded, err := EncodePNG(img)
	if err != nil {
		slog.DebugContext(ctx, "Thumbnail encode failed", "url", imageURL, "error", err)
		return ""
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded)
}
