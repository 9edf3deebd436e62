package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/socialchef/recipedesk/internal/middleware"
	"github.com/socialchef/recipedesk/internal/search"
	"github.com/socialchef/recipedesk/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type option struct {
	Value    string
	Label    string
	Selected bool
}

// pageCard marks the thumbnail as a trusted data URI so the template keeps it.
type pageCard struct {
	Card
	Image template.URL
}

type pageData struct {
	Title      string
	View       session.View
	Cuisines   []option
	Diets      []option
	Cards      []pageCard
	Notice     *session.Notice
	Transcript []session.TranscriptEntry
}

// HandleIndex renders the recipe desk page. ?view=favorites or ?view=meal_plan
// shows a store instead of the current results.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	snapshot := sess.Snapshot()
	data := pageData{
		Title:      "Recipe Finder",
		View:       session.ViewResults,
		Cuisines:   cuisineOptions(snapshot.Filters.Cuisine),
		Diets:      dietOptions(snapshot.Filters.Diet),
		Transcript: sess.Transcript(),
	}

	recipes := snapshot.Recipes
	switch session.View(r.URL.Query().Get("view")) {
	case session.ViewFavorites:
		out := sess.Dispatch(r.Context(), session.Event{Action: session.ActionShowFavorites})
		data.Title, data.View, data.Notice, recipes = "Favorites", session.ViewFavorites, out.Notice, out.Recipes
	case session.ViewMealPlan:
		out := sess.Dispatch(r.Context(), session.Event{Action: session.ActionShowMealPlan})
		data.Title, data.View, data.Notice, recipes = "Meal Plan", session.ViewMealPlan, out.Notice, out.Recipes
	}
	for _, c := range s.cards(r.Context(), recipes) {
		data.Cards = append(data.Cards, pageCard{Card: c, Image: template.URL(c.Thumbnail)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "error", err)
	}
}

func cuisineOptions(selected search.Cuisine) []option {
	opts := make([]option, 0, len(search.Cuisines))
	for _, c := range search.Cuisines {
		opts = append(opts, option{Value: c.Label(), Label: c.Label(), Selected: c == selected})
	}
	return opts
}

func dietOptions(selected search.Diet) []option {
	opts := make([]option, 0, len(search.Diets))
	for _, d := range search.Diets {
		opts = append(opts, option{Value: d.Label(), Label: d.Label(), Selected: d == selected})
	}
	return opts
}
