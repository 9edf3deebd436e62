package assistant

import (
	"net/http"

	"github.com/socialchef/recipedesk/internal/config"
)

// Credentials carries the API keys for every provider plus the shared HTTP client.
type Credentials struct {
	OpenAIKey string
	GroqKey   string
	GeminiKey string

	HTTPClient *http.Client
}

// NewProvider builds the configured provider, wrapped in a FallbackProvider when
// fallback is enabled. cfg.Model applies to the primary only.
func NewProvider(cfg config.AssistantConfig, creds Credentials) Provider {
	primary := newProvider(ProviderType(cfg.Provider), cfg.Model, creds)

	if cfg.FallbackEnabled {
		fallbackType := ProviderType(cfg.FallbackProvider)
		if fallbackType == "" {
			fallbackType = ProviderGroq
		}
		return NewFallbackProvider(primary, newProvider(fallbackType, "", creds))
	}

	return primary
}

func newProvider(kind ProviderType, model string, creds Credentials) Provider {
	switch kind {
	case ProviderGroq:
		return NewGroqProvider(creds.GroqKey, model, creds.HTTPClient)
	case ProviderGemini:
		return NewGeminiProvider(creds.GeminiKey, model)
	default:
		return NewOpenAIProvider(creds.OpenAIKey, model, creds.HTTPClient)
	}
}
