package spoonacular

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/socialchef/recipedesk/internal/errors"
	"github.com/socialchef/recipedesk/internal/httpclient"
	"github.com/socialchef/recipedesk/internal/metrics"
	"github.com/socialchef/recipedesk/internal/search"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	searchPath     = "/recipes/complexSearch"
	providerName   = "Spoonacular"
)

// Client talks to the Spoonacular recipe search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Spoonacular client. An empty baseURL selects the public API.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SearchURL returns the full request URL for q, API key included.
func (c *Client) SearchURL(q search.SearchQuery) string {
	params := q.Params()
	params.Set("number", strconv.Itoa(MaxResults))
	params.Set("apiKey", c.apiKey)
	return c.baseURL + searchPath + "?" + params.Encode()
}

// Search runs q against the recipe service.
// Zero matches is an empty slice and a nil error; transport failures,
// non-2xx statuses and undecodable bodies are fetch errors.
func (c *Client) Search(ctx context.Context, q search.SearchQuery) ([]search.RecipeSummary, error) {
	startTime := time.Now()
	status := "error"
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "spoonacular"), attribute.String("status", status)}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, providerName), http.MethodGet, c.SearchURL(q), nil)
	if err != nil {
		return nil, errors.NewFetchError("Failed to fetch recipes", "RECIPE_FETCH_FAILED", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError("Failed to fetch recipes", "RECIPE_FETCH_FAILED", 0, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchError("Failed to fetch recipes", "RECIPE_FETCH_FAILED", 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchError("Failed to fetch recipes", "RECIPE_FETCH_FAILED", resp.StatusCode,
			fmt.Errorf("Spoonacular API error: status %d: %s", resp.StatusCode, snippet(body)))
	}

	recipes, err := ParseSearchResponse(body)
	if err != nil {
		return nil, errors.NewFetchError("Failed to read recipe results", "RECIPE_RESPONSE_INVALID", 0, err)
	}

	status = "ok"
	slog.DebugContext(ctx, "Recipe search completed",
		"query", q.FreeText,
		"cuisine", q.Filters.Cuisine.Param(),
		"diet", q.Filters.Diet.Param(),
		"results", len(recipes))
	return recipes, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// redactKey strips the API key from transport errors, which quote the URL.
func redactKey(err error, key string) error {
	err = httpclient.RedactError(err)
	if key == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, key) && !strings.Contains(msg, url.QueryEscape(key)) {
		return err
	}
	msg = strings.ReplaceAll(msg, key, "REDACTED")
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
	return fmt.Errorf("%s", msg)
}
