package assistant

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/socialchef/recipedesk/internal/errors"
	"github.com/socialchef/recipedesk/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackProvider asks the secondary provider when the primary fails with a retryable error.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
	}
}

func (f *FallbackProvider) Chat(ctx context.Context, system, user string) (string, error) {
	reply, err := f.primary.Chat(ctx, system, user)
	if err == nil {
		return reply, nil
	}

	providerErr := ClassifyError(err, "primary")
	if !IsRetryableError(err) {
		slog.InfoContext(ctx, "Primary assistant provider failed with non-retryable error",
			"error_type", providerErr.Type,
			"error", err.Error())
		return "", err
	}

	slog.InfoContext(ctx, "Primary assistant provider failed, attempting fallback",
		"error_type", providerErr.Type,
		"error", err.Error())

	metrics.AssistantFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_provider", providerErr.Provider),
		attribute.String("to_provider", "secondary"),
		attribute.String("reason", providerErr.Type),
	))

	reply, fallbackErr := f.secondary.Chat(ctx, system, user)
	if fallbackErr == nil {
		slog.InfoContext(ctx, "Fallback assistant provider succeeded", "primary_error_type", providerErr.Type)
		return reply, nil
	}

	fallbackProviderErr := ClassifyError(fallbackErr, "secondary")
	slog.ErrorContext(ctx, "Both assistant providers failed",
		"primary_error_type", providerErr.Type,
		"primary_error", err.Error(),
		"fallback_error_type", fallbackProviderErr.Type,
		"fallback_error", fallbackErr.Error())

	return "", errors.NewAssistantError(
		"both primary and secondary providers failed",
		"PROVIDER_FALLBACK_FAILED",
		0,
		fallbackErr,
	)
}

// Close releases both providers.
func (f *FallbackProvider) Close() error {
	return stderrors.Join(Close(f.primary), Close(f.secondary))
}
