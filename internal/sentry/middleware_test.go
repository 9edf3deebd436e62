package sentry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "Something went wrong"))
}

func TestHTTPMiddleware_PassThrough(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestInit_EmptyDSN(t *testing.T) {
	assert.NoError(t, Init("", "test", "recipedesk", "1.0.0"))
}
