// Package session owns the per-user state of the recipe desk and turns user
// events into outcomes for the presentation layer.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/socialchef/recipedesk/internal/errors"
	"github.com/socialchef/recipedesk/internal/links"
	"github.com/socialchef/recipedesk/internal/logger"
	"github.com/socialchef/recipedesk/internal/metrics"
	"github.com/socialchef/recipedesk/internal/search"
	"github.com/socialchef/recipedesk/internal/store"
	"github.com/socialchef/recipedesk/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Searcher runs a recipe search.
type Searcher interface {
	Search(ctx context.Context, q search.SearchQuery) ([]search.RecipeSummary, error)
}

// Assistant answers a chat message. ok is false when the message was ignored.
type Assistant interface {
	Ask(ctx context.Context, message string) (reply string, ok bool)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Searcher        Searcher
	Assistant       Assistant
	Launcher        links.Launcher
	TranscriptLimit int
}

// Session holds one user's filters, current results, stores and transcript.
// Dispatch handles one event at a time.
type Session struct {
	id   string
	deps Deps

	// lastSeen is unix nanoseconds, readable while an event is in flight.
	lastSeen atomic.Int64

	mu         sync.Mutex
	filters    search.FilterSelection
	results    []search.RecipeSummary
	favorites  *store.Store
	mealPlan   *store.Store
	transcript *Transcript
}

// New creates an empty session.
func New(id string, deps Deps) *Session {
	s := &Session{
		id:         id,
		deps:       deps,
		favorites:  store.NewFavorites(),
		mealPlan:   store.NewMealPlan(),
		transcript: NewTranscript(deps.TranscriptLimit),
	}
	s.touch(time.Now())
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Favorites() *store.Store { return s.favorites }

func (s *Session) MealPlan() *store.Store { return s.mealPlan }

func (s *Session) Transcript() []TranscriptEntry { return s.transcript.Entries() }

// LastSeen is when the session last received an event. It never blocks on
// an event being handled.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(t time.Time) { s.lastSeen.Store(t.UnixNano()) }

// Snapshot returns the current filters and result set without dispatching anything.
func (s *Session) Snapshot() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome(Outcome{View: ViewResults, Recipes: s.currentResults(), Status: http.StatusOK})
}

// Dispatch applies ev to the session and reports what to render.
func (s *Session) Dispatch(ctx context.Context, ev Event) Outcome {
	ctx, span := telemetry.Tracer("recipedesk/session").Start(ctx, "session."+string(ev.Action),
		trace.WithAttributes(attribute.String("session.id", s.id)))
	defer span.End()

	s.touch(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out Outcome
		err error
	)
	switch ev.Action {
	case ActionSearch:
		out, err = s.handleSearch(ctx, ev.Payload)
	case ActionSetFilters:
		out, err = s.handleSetFilters(ev.Payload)
	case ActionAddFavorite:
		out, err = s.handleAdd(ctx, ev.Payload, s.favorites, "favorites")
	case ActionAddMealPlan:
		out, err = s.handleAdd(ctx, ev.Payload, s.mealPlan, "meal plan")
	case ActionOpenRecipe:
		out, err = s.handleOpen(ev.Payload)
	case ActionAsk:
		out, err = s.handleAsk(ctx, ev.Payload)
	case ActionShowFavorites:
		out = s.showStore(s.favorites, ViewFavorites)
	case ActionShowMealPlan:
		out = s.showStore(s.mealPlan, ViewMealPlan)
	default:
		err = errors.NewValidationError(fmt.Sprintf("Unknown action %q", ev.Action), "UNKNOWN_ACTION", "")
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		out = s.errorOutcome(ctx, ev.Action, err)
	}
	return s.outcome(out)
}

// outcome fills the fields every response carries.
func (s *Session) outcome(out Outcome) Outcome {
	out.Filters = s.filters
	if out.Status == 0 {
		out.Status = http.StatusOK
	}
	return out
}

func (s *Session) errorOutcome(ctx context.Context, action Action, err error) Outcome {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError("Something went wrong. Please try again.", err)
	}
	status := appErr.StatusCode
	message := appErr.Error()
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeNotFound, errors.ErrorTypeInternal:
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Event failed", "session_id", s.id, "action", action, "error", err, logger.WithTraceContext(ctx))
	} else {
		slog.InfoContext(ctx, "Event rejected", "session_id", s.id, "action", action, "error", err)
	}

	return Outcome{
		Notice: &Notice{Kind: NoticeError, Title: "Error", Message: message},
		Status: status,
	}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.NewValidationError("Invalid event payload", "INVALID_PAYLOAD", "Check the request body.")
	}
	return nil
}

func (s *Session) handleSearch(ctx context.Context, raw json.RawMessage) (Outcome, error) {
	var p SearchPayload
	if err := decodePayload(raw, &p); err != nil {
		return Outcome{}, err
	}

	filters := s.filters
	if p.Cuisine != nil {
		c, err := search.ParseCuisine(*p.Cuisine)
		if err != nil {
			return Outcome{}, err
		}
		filters.Cuisine = c
	}
	if p.Diet != nil {
		d, err := search.ParseDiet(*p.Diet)
		if err != nil {
			return Outcome{}, err
		}
		filters.Diet = d
	}

	q, err := search.BuildQuery(p.Query, filters)
	if err != nil {
		return Outcome{}, err
	}

	recipes, err := s.deps.Searcher.Search(ctx, q)
	if err != nil {
		metrics.RecipeSearchesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		return Outcome{}, err
	}

	attrs := metric.WithAttributes(
		attribute.String("cuisine", filters.Cuisine.Param()),
		attribute.String("diet", filters.Diet.Param()),
	)
	metrics.RecipeSearchesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "ok")))
	metrics.RecipeSearchResults.Record(ctx, int64(len(recipes)), attrs)

	s.filters = filters
	s.results = recipes
	if len(recipes) == 0 {
		return infoOutcome("No Results", "No recipes found."), nil
	}
	return Outcome{View: ViewResults, Recipes: s.currentResults()}, nil
}

func (s *Session) handleSetFilters(raw json.RawMessage) (Outcome, error) {
	var p FilterPayload
	if err := decodePayload(raw, &p); err != nil {
		return Outcome{}, err
	}
	filters, err := search.ParseFilters(p.Cuisine, p.Diet)
	if err != nil {
		return Outcome{}, err
	}
	s.filters = filters
	return Outcome{View: ViewResults, Recipes: s.currentResults()}, nil
}

func (s *Session) handleAdd(ctx context.Context, raw json.RawMessage, st *store.Store, label string) (Outcome, error) {
	recipe, err := s.resolveRecipe(raw)
	if err != nil {
		return Outcome{}, err
	}

	st.Add(recipe)
	metrics.StoreAdditionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("store", st.Name())))
	slog.DebugContext(ctx, "Recipe stored", "session_id", s.id, "store", st.Name(), "recipe_id", recipe.ID)

	return infoOutcome(st.Name(), fmt.Sprintf("%s has been added to %s!", recipe.Title, label)), nil
}

func (s *Session) handleOpen(raw json.RawMessage) (Outcome, error) {
	recipe, err := s.resolveRecipe(raw)
	if err != nil {
		return Outcome{}, err
	}

	url := links.DetailURL(recipe)
	opened := links.Open(s.deps.Launcher, url)
	return Outcome{URL: url, Opened: opened}, nil
}

func (s *Session) handleAsk(ctx context.Context, raw json.RawMessage) (Outcome, error) {
	var p AskPayload
	if err := decodePayload(raw, &p); err != nil {
		return Outcome{}, err
	}

	if s.deps.Assistant != nil {
		if reply, ok := s.deps.Assistant.Ask(ctx, p.Message); ok {
			s.transcript.Append(SpeakerUser, strings.TrimSpace(p.Message))
			s.transcript.Append(SpeakerAssistant, reply)
		}
	}
	return Outcome{Transcript: s.transcript.Entries()}, nil
}

func (s *Session) showStore(st *store.Store, view View) Outcome {
	if st.IsEmpty() {
		return infoOutcome(st.Name(), fmt.Sprintf("No %s added yet!", strings.ToLower(st.Name())))
	}
	return Outcome{View: view, Recipes: st.List()}
}

// resolveRecipe maps a payload's recipe_id onto a summary this session already
// received, looking at the current results first and then both stores.
func (s *Session) resolveRecipe(raw json.RawMessage) (search.RecipeSummary, error) {
	var p RecipePayload
	if err := decodePayload(raw, &p); err != nil {
		return search.RecipeSummary{}, err
	}

	for _, r := range s.results {
		if r.ID == p.RecipeID {
			return r, nil
		}
	}
	for _, st := range []*store.Store{s.favorites, s.mealPlan} {
		if r, ok := st.Find(p.RecipeID); ok {
			return r, nil
		}
	}
	return search.RecipeSummary{}, errors.NewNotFoundError(
		fmt.Sprintf("Recipe %d is not in the current results", p.RecipeID),
		"UNKNOWN_RECIPE",
		"Search again and pick a recipe from the results.",
	)
}

func (s *Session) currentResults() []search.RecipeSummary {
	out := make([]search.RecipeSummary, len(s.results))
	copy(out, s.results)
	return out
}
