package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTransport is the base transport used by instrumented clients.
var DefaultTransport = http.DefaultTransport

// UserAgent is sent on every outbound request.
const UserAgent = "recipedesk/1.0"

type contextKey string

const providerKey contextKey = "httpclient.provider"

// WithProvider adds a provider name to the context for tracing.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, providerKey, provider)
}

// Provider returns the provider name stored by WithProvider.
func Provider(ctx context.Context) string {
	provider, _ := ctx.Value(providerKey).(string)
	return provider
}

// urlFullKey is the semconv attribute otelhttp records the request URL under.
const urlFullKey = attribute.Key("url.full")

// providerTransport tags the current span with the provider and marks 4xx/5xx
// as errors. It runs inside the otelhttp span and overwrites the recorded URL
// with a redacted one.
type providerTransport struct {
	base http.RoundTripper
}

func (t *providerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	span := trace.SpanFromContext(req.Context())
	if span.IsRecording() {
		span.SetAttributes(urlFullKey.String(RedactURL(req.URL)))
	}
	if provider := Provider(req.Context()); provider != "" {
		span.SetAttributes(attribute.String("provider", provider))
	}
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		recorded := RedactError(err)
		span.RecordError(recorded)
		span.SetStatus(codes.Error, recorded.Error())
		return nil, err
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	}
	return resp, nil
}

func newOtelTransport(base http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(&providerTransport{base: base},
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			if provider := Provider(r.Context()); provider != "" {
				return fmt.Sprintf("%s: %s %s", provider, r.Method, r.URL.Path)
			}
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)
}

// New returns an http.Client with OpenTelemetry instrumentation.
// A zero timeout means the client waits until the request context ends.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: newOtelTransport(DefaultTransport),
		Timeout:   timeout,
	}
}
