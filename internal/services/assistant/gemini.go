package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/socialchef/recipedesk/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider talks to Google Gemini. The SDK client is created on first
// use and outlives the request that created it; a failed attempt is retried
// on the next call.
type GeminiProvider struct {
	apiKey string
	model  string

	// newClient is genai.NewClient, swapped in tests.
	newClient func(ctx context.Context, opts ...option.ClientOption) (*genai.Client, error)

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a Gemini provider. An empty model selects DefaultGeminiModel.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model, newClient: genai.NewClient}
}

func (p *GeminiProvider) connect() (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	client, err := p.newClient(context.Background(), option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, system, user string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "Gemini")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	client, err := p.connect()
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w from Gemini", ErrNoResponse)
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("%w from Gemini", ErrNoResponse)
	}
	return reply.String(), nil
}

// Close releases the SDK client, if one was created.
func (p *GeminiProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
