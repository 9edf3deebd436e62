package assistant

import (
	"context"
	"net/http"

	"github.com/socialchef/recipedesk/internal/httpclient"
)

const (
	groqChatURL      = "https://api.groq.com/openai/v1/chat/completions"
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqProvider talks to Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	endpoint chatEndpoint
}

// NewGroqProvider creates a Groq provider. An empty model selects DefaultGroqModel.
func NewGroqProvider(apiKey, model string, httpClient *http.Client) *GroqProvider {
	if model == "" {
		model = DefaultGroqModel
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &GroqProvider{endpoint: chatEndpoint{
		name:       "Groq",
		url:        groqChatURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}}
}

func (p *GroqProvider) Chat(ctx context.Context, system, user string) (string, error) {
	return p.endpoint.complete(ctx, system, user)
}
