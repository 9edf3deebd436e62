package utils

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"
)

// RetryConfig holds the configuration for the retry mechanism.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	// Timeout bounds each attempt; zero leaves the caller's context alone.
	Timeout         time.Duration
	RetryableErrors []string
}

// RetryableFunc defines the signature for operations that can be retried.
type RetryableFunc[T any] func(ctx context.Context) (T, error)

// DefaultRetryConfig returns a RetryConfig with sensible default values.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		Timeout:       30 * time.Second,
		RetryableErrors: []string{
			"timeout",
			"connection reset",
			"connection refused",
			"rate limit",
			"eof",
			"status 5", // 5xx responses
		},
	}
}

// ThumbnailRetryConfig is DefaultRetryConfig sized for image downloads.
// One attempt means no retry at all.
func ThumbnailRetryConfig(attempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	if attempts < 1 {
		attempts = 1
	}
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = 200 * time.Millisecond
	cfg.MaxDelay = time.Second
	cfg.Timeout = 0
	return cfg
}

// IsRetryableError checks if the given error is retryable based on defined patterns.
func IsRetryableError(err error, patterns []string) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	for _, pattern := range patterns {
		if strings.Contains(errMsg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// backoff returns the wait before the attempt following attempt n (1-based), without jitter.
func backoff(config RetryConfig, n int) time.Duration {
	delay := time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(n-1)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	return delay
}

// WithRetry executes the given operation with retries based on the provided config.
func WithRetry[T any](ctx context.Context, operation RetryableFunc[T], config RetryConfig) (T, error) {
	var lastErr error
	var zero T

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if config.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, config.Timeout)
		}

		result, err := operation(attemptCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == config.MaxAttempts || !IsRetryableError(err, config.RetryableErrors) {
			break
		}

		delay := backoff(config, attempt)
		// Up to 10% jitter
		if jitterRange := int64(delay) / 10; jitterRange > 0 {
			delay += time.Duration(rand.Int63n(jitterRange))
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
