// Package links builds recipe detail URLs and opens them in the user's browser.
package links

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/browser"
	"github.com/socialchef/recipedesk/internal/search"
)

const detailBaseURL = "https://spoonacular.com/recipes/"

// DetailURL returns the public Spoonacular page for recipe.
func DetailURL(recipe search.RecipeSummary) string {
	slug := strings.ReplaceAll(strings.ToLower(recipe.Title), " ", "-")
	return fmt.Sprintf("%s%s-%d", detailBaseURL, slug, recipe.ID)
}

// Launcher opens a URL outside the application.
type Launcher interface {
	Open(url string) error
}

// BrowserLauncher opens URLs in the system default browser.
type BrowserLauncher struct{}

func (BrowserLauncher) Open(url string) error {
	return browser.OpenURL(url)
}

// NoopLauncher never opens anything. Used for headless runs.
type NoopLauncher struct{}

func (NoopLauncher) Open(string) error { return ErrLaunchDisabled }

// ErrLaunchDisabled is returned by NoopLauncher; the caller opens the link itself.
var ErrLaunchDisabled = errors.New("browser launch disabled")

// NewLauncher picks a launcher from the BROWSER_LAUNCH setting.
func NewLauncher(enabled bool) Launcher {
	if enabled {
		return BrowserLauncher{}
	}
	return NoopLauncher{}
}

// Open launches url and logs, rather than returns, any failure.
// It reports whether a browser was actually launched.
func Open(l Launcher, url string) bool {
	if l == nil {
		return false
	}
	err := l.Open(url)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrLaunchDisabled):
	default:
		slog.Warn("Failed to open browser", "url", url, "error", err)
	}
	return false
}
