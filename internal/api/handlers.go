package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/socialchef/recipedesk/internal/config"
	"github.com/socialchef/recipedesk/internal/middleware"
	"github.com/socialchef/recipedesk/internal/session"
)

// ThumbnailRenderer turns an image URL into an inline data URI, or "" when it cannot.
type ThumbnailRenderer interface {
	DataURI(ctx context.Context, imageURL string) string
}

type Server struct {
	cfg        *config.Config
	thumbnails ThumbnailRenderer
}

func NewServer(cfg *config.Config, thumbnails ThumbnailRenderer) *Server {
	return &Server{
		cfg:        cfg,
		thumbnails: thumbnails,
	}
}

// EventResponse is the JSON form of a session.Outcome.
type EventResponse struct {
	Notice     *session.Notice           `json:"notice,omitempty"`
	View       session.View              `json:"view,omitempty"`
	Cards      []Card                    `json:"cards,omitempty"`
	Filters    FiltersResponse           `json:"filters"`
	Transcript []session.TranscriptEntry `json:"transcript,omitempty"`
	URL        string                    `json:"url,omitempty"`
	Opened     bool                      `json:"opened,omitempty"`
}

type FiltersResponse struct {
	Cuisine string `json:"cuisine"`
	Diet    string `json:"diet"`
}

// HandleEvent dispatches an event record posted as JSON.
func (s *Server) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var ev session.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeNotice(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if ev.Action == "" {
		writeNotice(w, http.StatusBadRequest, "action is required")
		return
	}
	s.dispatch(w, r, ev)
}

// HandleSearch is GET /api/search?query=&cuisine=&diet=. Omitted filters keep
// the session's current selection.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	payload := session.SearchPayload{Query: q.Get("query")}
	if q.Has("cuisine") {
		v := q.Get("cuisine")
		payload.Cuisine = &v
	}
	if q.Has("diet") {
		v := q.Get("diet")
		payload.Diet = &v
	}
	s.dispatchPayload(w, r, session.ActionSearch, payload)
}

func (s *Server) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, session.Event{Action: session.ActionShowFavorites})
}

func (s *Server) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, session.Event{Action: session.ActionShowMealPlan})
}

// HandleAssistant takes {"message": "..."} and answers with the transcript.
func (s *Server) HandleAssistant(w http.ResponseWriter, r *http.Request) {
	var req session.AskPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNotice(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.dispatchPayload(w, r, session.ActionAsk, req)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) dispatchPayload(w http.ResponseWriter, r *http.Request, action session.Action, payload any) {
	ev, err := session.NewEvent(action, payload)
	if err != nil {
		writeNotice(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.dispatch(w, r, ev)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev session.Event) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		writeNotice(w, http.StatusInternalServerError, "Session unavailable")
		return
	}

	out := sess.Dispatch(r.Context(), ev)
	slog.DebugContext(r.Context(), "Event handled",
		"session_id", sess.ID(),
		"action", ev.Action,
		"status", out.Status)

	writeJSON(w, out.Status, s.toResponse(r.Context(), out))
}

func (s *Server) toResponse(ctx context.Context, out session.Outcome) EventResponse {
	return EventResponse{
		Notice:     out.Notice,
		View:       out.View,
		Cards:      s.cards(ctx, out.Recipes),
		Filters:    FiltersResponse{Cuisine: out.Filters.Cuisine.Label(), Diet: out.Filters.Diet.Label()},
		Transcript: out.Transcript,
		URL:        out.URL,
		Opened:     out.Opened,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeNotice(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, EventResponse{
		Notice: &session.Notice{Kind: session.NoticeError, Title: "Error", Message: message},
	})
}
