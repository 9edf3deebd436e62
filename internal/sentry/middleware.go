package sentry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
)

// HTTPMiddleware recovers panics in handlers, reports them and answers with a
// 500 error notice so the server keeps serving.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}
		hub.Scope().SetRequest(r)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		ctx := sentry.SetHubOnContext(r.Context(), hub)

		defer func() {
			if err := recover(); err != nil {
				hub.Recover(err)
				slog.ErrorContext(ctx, "Recovered from handler panic",
					"panic", fmt.Sprint(err),
					"path", r.URL.Path)
				if !wrapped.wroteHeader {
					wrapped.Header().Set("Content-Type", "application/json")
					wrapped.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(wrapped).Encode(map[string]any{
						"notice": map[string]string{
							"kind":    "error",
							"title":   "Error",
							"message": "Something went wrong. Please try again.",
						},
					})
				}
			}
		}()

		next.ServeHTTP(wrapped, r.WithContext(ctx))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
