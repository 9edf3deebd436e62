package thumbnail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/socialchef/recipedesk/internal/cache"
	"github.com/socialchef/recipedesk/internal/httpclient"
	"github.com/socialchef/recipedesk/internal/metrics"
	"github.com/socialchef/recipedesk/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 8 << 20

// Fetcher downloads raw image bytes, consulting a cache first.
type Fetcher struct {
	httpClient *http.Client
	cache      cache.ByteCache
	cacheTTL   time.Duration
	retry      utils.RetryConfig
}

// NewFetcher creates a Fetcher. A nil cache disables caching.
func NewFetcher(httpClient *http.Client, c cache.ByteCache, cacheTTL time.Duration, maxAttempts int) *Fetcher {
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Fetcher{
		httpClient: httpClient,
		cache:      c,
		cacheTTL:   cacheTTL,
		retry:      utils.ThumbnailRetryConfig(maxAttempts),
	}
}

// Fetch returns the bytes at imageURL.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if data, ok := f.cache.Get(ctx, imageURL); ok {
		return data, nil
	}

	data, err := utils.WithRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return f.download(ctx, imageURL)
	}, f.retry)
	if err != nil {
		return nil, err
	}

	f.cache.Set(ctx, imageURL, data, f.cacheTTL)
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, imageURL string) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		attrs := []attribute.KeyValue{attribute.String("provider", "image")}
		metrics.ExternalAPIDuration.Record(ctx, time.Since(startTime).Seconds(), metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "RecipeImage"), http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image fetch: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("image read: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}
	return data, nil
}
