package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/socialchef/recipedesk/internal/config"
	apperrors "github.com/socialchef/recipedesk/internal/errors"
	"github.com/socialchef/recipedesk/internal/middleware"
	"github.com/socialchef/recipedesk/internal/search"
	"github.com/socialchef/recipedesk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	results []search.RecipeSummary
	err     error
	last    search.SearchQuery
}

func (s *stubSearcher) Search(_ context.Context, q search.SearchQuery) ([]search.RecipeSummary, error) {
	s.last = q
	return s.results, s.err
}

type stubAssistant struct{}

func (stubAssistant) Ask(_ context.Context, message string) (string, bool) {
	if strings.TrimSpace(message) == "" {
		return "", false
	}
	return "Error: timeout", true
}

type stubThumbnails struct{}

func (stubThumbnails) DataURI(_ context.Context, imageURL string) string {
	if strings.Contains(imageURL, "broken") {
		return ""
	}
	return "data:image/png;base64,AAAA"
}

var testRecipes = []search.RecipeSummary{
	{ID: 1, Title: "Tomato Soup", ImageURL: "http://x/y.png"},
	{ID: 2, Title: "Pasta Carbonara", ImageURL: "http://x/broken.png"},
	{ID: 3, Title: "Plain Rice"},
}

func newTestServer(searcher *stubSearcher) (*Server, *session.Session) {
	sess := session.New("test-session", session.Deps{
		Searcher:  searcher,
		Assistant: stubAssistant{},
		Launcher:  nil,
	})
	return NewServer(&config.Config{}, stubThumbnails{}), sess
}

func withSession(r *http.Request, s *session.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, s))
}

func postEvent(t *testing.T, srv *Server, sess *session.Session, action session.Action, payload any) (*httptest.ResponseRecorder, EventResponse) {
	t.Helper()
	ev, err := session.NewEvent(action, payload)
	require.NoError(t, err)
	body, _ := json.Marshal(ev)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body)), sess)
	rr := httptest.NewRecorder()
	srv.HandleEvent(rr, req)

	var resp EventResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestHandleEvent_SearchRendersCards(t *testing.T) {
	searcher := &stubSearcher{results: testRecipes}
	srv, sess := newTestServer(searcher)

	rr, resp := postEvent(t, srv, sess, session.ActionSearch, map[string]string{"query": "dinner", "cuisine": "Italian"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Len(t, resp.Cards, 3)
	assert.Equal(t, Card{ID: 1, Title: "Tomato Soup", URL: "https://spoonacular.com/recipes/tomato-soup-1", Thumbnail: "data:image/png;base64,AAAA"}, resp.Cards[0])
	assert.Empty(t, resp.Cards[1].Thumbnail, "failed thumbnail leaves the card without an image")
	assert.Equal(t, "Pasta Carbonara", resp.Cards[1].Title)
	assert.Empty(t, resp.Cards[2].Thumbnail)
	assert.Equal(t, "Italian", resp.Filters.Cuisine)
	assert.Equal(t, "None", resp.Filters.Diet)
}

func TestHandleEvent_ValidationError(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{})

	rr, resp := postEvent(t, srv, sess, session.ActionSearch, map[string]string{"query": "  "})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, session.NoticeError, resp.Notice.Kind)
	assert.Equal(t, "Please enter a recipe name or ingredients.", resp.Notice.Message)
}

func TestHandleEvent_FetchError(t *testing.T) {
	searcher := &stubSearcher{err: apperrors.NewFetchError("Failed to fetch recipes", "RECIPE_FETCH_FAILED", 0, errors.New("boom"))}
	srv, sess := newTestServer(searcher)

	rr, resp := postEvent(t, srv, sess, session.ActionSearch, map[string]string{"query": "soup"})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, "Failed to fetch recipes: boom", resp.Notice.Message)
}

func TestHandleEvent_AddFavoriteThenList(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{results: testRecipes})
	postEvent(t, srv, sess, session.ActionSearch, map[string]string{"query": "dinner"})

	_, resp := postEvent(t, srv, sess, session.ActionAddFavorite, session.RecipePayload{RecipeID: 3})
	require.NotNil(t, resp.Notice)
	assert.Equal(t, "Plain Rice has been added to favorites!", resp.Notice.Message)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/favorites", nil), sess)
	rr := httptest.NewRecorder()
	srv.HandleFavorites(rr, req)

	var list EventResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, session.ViewFavorites, list.View)
	require.Len(t, list.Cards, 1)
	assert.Equal(t, 3, list.Cards[0].ID)
}

func TestHandleEvent_InvalidBody(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{})

	for _, body := range []string{"not json", `{"payload":{}}`} {
		req := withSession(httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body)), sess)
		rr := httptest.NewRecorder()
		srv.HandleEvent(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestHandleEvent_NoSession(t *testing.T) {
	srv, _ := newTestServer(&stubSearcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"action":"show_favorites"}`))
	rr := httptest.NewRecorder()
	srv.HandleEvent(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleSearch_QueryParams(t *testing.T) {
	searcher := &stubSearcher{results: testRecipes[:1]}
	srv, sess := newTestServer(searcher)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/search?query=pasta&cuisine=Italian&diet=None", nil), sess)
	rr := httptest.NewRecorder()
	srv.HandleSearch(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cuisine=italian&query=pasta", searcher.last.Params().Encode())
}

func TestHandleMealPlan_Empty(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/meal-plan", nil), sess)
	rr := httptest.NewRecorder()
	srv.HandleMealPlan(rr, req)

	var resp EventResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, session.NoticeInfo, resp.Notice.Kind)
	assert.Equal(t, "No meal plan added yet!", resp.Notice.Message)
}

func TestHandleAssistant(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(`{"message":"how long to boil an egg?"}`)), sess)
	rr := httptest.NewRecorder()
	srv.HandleAssistant(rr, req)

	var resp EventResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []session.TranscriptEntry{
		{Speaker: "You", Text: "how long to boil an egg?"},
		{Speaker: "Chatbot", Text: "Error: timeout"},
	}, resp.Transcript)
}

func TestHandleIndex(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{results: testRecipes})
	postEvent(t, srv, sess, session.ActionSearch, map[string]string{"query": "dinner"})

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil), sess)
	rr := httptest.NewRecorder()
	srv.HandleIndex(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Tomato Soup")
	assert.Contains(t, body, "Add to Favorites")
	assert.Contains(t, body, `src="data:image/png;base64,AAAA"`)
	assert.Contains(t, body, `<option value="Gluten Free">Gluten Free</option>`)
}

func TestHandleIndex_EmptyFavorites(t *testing.T) {
	srv, sess := newTestServer(&stubSearcher{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/?view=favorites", nil), sess)
	rr := httptest.NewRecorder()
	srv.HandleIndex(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No favorites added yet!")
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(&stubSearcher{})
	rr := httptest.NewRecorder()
	srv.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}
