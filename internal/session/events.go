package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/socialchef/recipedesk/internal/search"
)

// Action names a user interaction.
type Action string

const (
	ActionSearch        Action = "search"
	ActionSetFilters    Action = "set_filters"
	ActionAddFavorite   Action = "add_favorite"
	ActionAddMealPlan   Action = "add_meal_plan"
	ActionOpenRecipe    Action = "open_recipe"
	ActionAsk           Action = "ask"
	ActionShowFavorites Action = "show_favorites"
	ActionShowMealPlan  Action = "show_meal_plan"
)

// Event is a single user interaction routed to Session.Dispatch.
type Event struct {
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SearchPayload carries the search form. Nil filters keep the session's current selection.
type SearchPayload struct {
	Query   string  `json:"query"`
	Cuisine *string `json:"cuisine,omitempty"`
	Diet    *string `json:"diet,omitempty"`
}

type FilterPayload struct {
	Cuisine string `json:"cuisine"`
	Diet    string `json:"diet"`
}

// RecipePayload references a recipe the session has already received from a search.
type RecipePayload struct {
	RecipeID int `json:"recipe_id"`
}

type AskPayload struct {
	Message string `json:"message"`
}

// NewEvent builds an Event with payload encoded as JSON. A nil payload is omitted.
func NewEvent(action Action, payload any) (Event, error) {
	ev := Event{Action: action}
	if payload == nil {
		return ev, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", action, err)
	}
	ev.Payload = raw
	return ev, nil
}

// NoticeKind separates informational notices from errors.
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a one-off message for the user.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// View tells the presentation which list Outcome.Recipes holds.
type View string

const (
	ViewResults   View = "results"
	ViewFavorites View = "favorites"
	ViewMealPlan  View = "meal_plan"
)

// Outcome is what the presentation renders after an event.
type Outcome struct {
	Notice     *Notice                `json:"notice,omitempty"`
	View       View                   `json:"view,omitempty"`
	Recipes    []search.RecipeSummary `json:"recipes,omitempty"`
	Filters    search.FilterSelection `json:"filters"`
	Transcript []TranscriptEntry      `json:"transcript,omitempty"`
	URL        string                 `json:"url,omitempty"`
	// Opened is true when URL was already launched in a browser on the host.
	Opened bool `json:"opened,omitempty"`

	// Status is the HTTP status the presentation should answer with.
	Status int `json:"-"`
}

func infoOutcome(title, message string) Outcome {
	return Outcome{
		Notice: &Notice{Kind: NoticeInfo, Title: title, Message: message},
		Status: http.StatusOK,
	}
}
