package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/socialchef/recipedesk/internal/errors"
	"github.com/socialchef/recipedesk/internal/httpclient"
	"github.com/socialchef/recipedesk/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatEndpoint is an OpenAI-compatible chat completions API.
type chatEndpoint struct {
	name       string // provider label for metrics and errors
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func (e *chatEndpoint) complete(ctx context.Context, system, user string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", e.name)}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, e.name), http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errors.NewRateLimitError(
			fmt.Sprintf("%s rate limit", e.name),
			"ASSISTANT_RATE_LIMITED",
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(respBody), 200)),
		)
	}

	if resp.StatusCode >= 400 {
		return "", errors.NewAssistantError(
			fmt.Sprintf("%s API error", e.name),
			"ASSISTANT_API_ERROR",
			resp.StatusCode,
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(respBody), 200)),
		)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%s returned invalid JSON: %w", e.name, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w from %s", ErrNoResponse, e.name)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
