package assistant

import (
	"context"
	"io"
)

// ProviderType names a language-model backend.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
	ProviderGemini ProviderType = "gemini"
)

// Provider sends one system instruction and one user message to a language model
// and returns the first reply.
type Provider interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Close releases whatever p holds open. Providers without resources are left alone.
func Close(p Provider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
