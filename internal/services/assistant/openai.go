package assistant

import (
	"context"
	"net/http"

	"github.com/socialchef/recipedesk/internal/httpclient"
)

const (
	openAIChatURL      = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// OpenAIProvider talks to the OpenAI chat completions API.
type OpenAIProvider struct {
	endpoint chatEndpoint
}

// NewOpenAIProvider creates an OpenAI provider. An empty model selects DefaultOpenAIModel.
func NewOpenAIProvider(apiKey, model string, httpClient *http.Client) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &OpenAIProvider{endpoint: chatEndpoint{
		name:       "OpenAI",
		url:        openAIChatURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}}
}

func (p *OpenAIProvider) Chat(ctx context.Context, system, user string) (string, error) {
	return p.endpoint.complete(ctx, system, user)
}
