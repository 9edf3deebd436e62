package assistant

import (
	stderrors "errors"
	"strings"

	"github.com/socialchef/recipedesk/internal/errors"
)

// ErrNoResponse is returned when a provider answers without any choices.
var ErrNoResponse = stderrors.New("no response")

// Classification of provider failures.
const (
	ErrorRateLimit       = "rate_limit"
	ErrorCreditExhausted = "credit_exhausted"
	ErrorServer          = "server_error"
	ErrorClient          = "client_error"
	ErrorUnknown         = "unknown"
)

// ProviderError is a classified provider failure.
type ProviderError struct {
	Type     string
	Message  string
	Provider string
}

func (e *ProviderError) Error() string {
	return e.Message
}

var (
	rateLimitMarkers = []string{"status 429", "http 429", "rate limit", "too many requests", "resource exhausted"}
	creditMarkers    = []string{"status 402", "http 402", "insufficient credit", "insufficient_quota", "credit exhausted", "billing"}
	serverMarkers    = []string{"status 5", "http 5", "server error", "internal error", "unavailable"}
	clientMarkers    = []string{"status 4", "http 4", "bad request", "unauthorized", "forbidden", "invalid api key"}
)

// ClassifyError sorts err into one of the Error* categories.
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(kind string) *ProviderError {
		return &ProviderError{Type: kind, Message: msg, Provider: provider}
	}

	switch {
	case containsAny(msg, rateLimitMarkers):
		return classified(ErrorRateLimit)
	case containsAny(msg, creditMarkers):
		return classified(ErrorCreditExhausted)
	}

	if appErr, ok := errors.As(err); ok {
		switch {
		case appErr.StatusCode >= 500:
			return classified(ErrorServer)
		case appErr.StatusCode >= 400:
			return classified(ErrorClient)
		}
	}

	switch {
	case containsAny(msg, serverMarkers):
		return classified(ErrorServer)
	case containsAny(msg, clientMarkers):
		return classified(ErrorClient)
	}
	return classified(ErrorUnknown)
}

// IsRetryableError reports whether another provider might succeed where this one failed.
// Exhausted credit is provider specific, so it always moves on to the next provider.
func IsRetryableError(err error) bool {
	providerErr := ClassifyError(err, "")
	if providerErr == nil {
		return false
	}
	if providerErr.Type == ErrorCreditExhausted {
		return true
	}
	if appErr, ok := errors.As(err); ok {
		return appErr.IsRetryable()
	}
	switch providerErr.Type {
	case ErrorRateLimit, ErrorCreditExhausted, ErrorServer:
		return true
	default:
		return false
	}
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
