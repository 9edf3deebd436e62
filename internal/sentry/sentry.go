package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init initializes Sentry with the provided configuration.
// If DSN is empty, Sentry initialization is skipped and nil is returned.
func Init(dsn, env, serviceName, serviceVersion string) error {
	if dsn == "" {
		return nil
	}

	options := sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		ServerName:       serviceName,
		Release:          serviceVersion,
		AttachStacktrace: true,
		TracesSampleRate: 0.0, // tracing goes through OpenTelemetry
	}

	if err := sentry.Init(options); err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	return nil
}

// Flush waits for all pending Sentry events to be sent.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Recover captures a panic and forwards it to Sentry.
// Should be used with defer.
func Recover() {
	if err := recover(); err != nil {
		sentry.CurrentHub().Recover(err)
		sentry.Flush(2 * time.Second)
		panic(err)
	}
}

// CaptureError reports a handled error that still deserves attention.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
