// Package assistant answers free-form cooking questions through a language model.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/socialchef/recipedesk/internal/metrics"
	"github.com/socialchef/recipedesk/internal/sentry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SystemInstruction frames every conversation turn.
const SystemInstruction = "You are a helpful cooking assistant."

// ErrorPrefix starts the reply text shown when the model could not be reached.
const ErrorPrefix = "Error: "

// Client turns a user message into a reply line. It never fails: provider errors
// and panics become "Error: <cause>" replies.
type Client struct {
	provider Provider
}

func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Ask sends message to the model. An empty or whitespace-only message is ignored
// and ok is false.
func (c *Client) Ask(ctx context.Context, message string) (reply string, ok bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			slog.ErrorContext(ctx, "Assistant provider panicked", "panic", r)
			sentry.CaptureError(err)
			reply, ok = ErrorPrefix+err.Error(), true
			recordReply(ctx, "panic")
		}
	}()

	reply, err := c.provider.Chat(ctx, SystemInstruction, message)
	if err != nil {
		slog.WarnContext(ctx, "Assistant request failed", "error", err)
		recordReply(ctx, "error")
		return ErrorPrefix + err.Error(), true
	}

	recordReply(ctx, "ok")
	return reply, true
}

func recordReply(ctx context.Context, status string) {
	metrics.AssistantRepliesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
