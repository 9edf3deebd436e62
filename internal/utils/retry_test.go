package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	patterns := []string{"timeout", "rate limit"}

	tests := []struct {
		err      error
		expected bool
	}{
		{errors.New("request timeout"), true},
		{errors.New("Rate Limit exceeded"), true},
		{errors.New("not found"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.err, patterns); got != tt.expected {
			t.Errorf("IsRetryableError(%v) = %v; want %v", tt.err, got, tt.expected)
		}
	}
}

func TestWithRetry_Success(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialDelay = 1 * time.Millisecond

	attempts := 0
	result, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "success", nil
	}, config)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("Expected result 'success', got %v", result)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_RetrySuccess(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialDelay = 1 * time.Millisecond
	config.MaxAttempts = 3

	attempts := 0
	result, err := WithRetry(context.Background(), func(ctx context.Context) ([]byte, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("image fetch: status 503")
		}
		return []byte("png"), nil
	}, config)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(result) != "png" {
		t.Errorf("Expected result 'png', got %q", result)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_NonRetryableError(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialDelay = 1 * time.Millisecond

	attempts := 0
	expectedErr := errors.New("image fetch: status 404")
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", expectedErr
	}, config)
	if err != expectedErr {
		t.Fatalf("Expected error %v, got %v", expectedErr, err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for non-retryable error, got %d", attempts)
	}
}

func TestWithRetry_SingleAttemptConfig(t *testing.T) {
	config := ThumbnailRetryConfig(0)
	if config.MaxAttempts != 1 {
		t.Fatalf("Expected attempts clamped to 1, got %d", config.MaxAttempts)
	}

	attempts := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("timeout")
	}, config)
	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := DefaultRetryConfig()
	config.InitialDelay = 50 * time.Millisecond

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, func(ctx context.Context) (string, error) {
		return "", errors.New("timeout")
	}, config)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestWithRetry_TimeoutPerAttempt(t *testing.T) {
	config := DefaultRetryConfig()
	config.Timeout = 10 * time.Millisecond
	config.InitialDelay = 1 * time.Millisecond

	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return "done", nil
		}
	}, config)
	if err == nil || !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("Expected deadline exceeded error, got %v", err)
	}
}

func TestBackoffCapped(t *testing.T) {
	config := RetryConfig{InitialDelay: 100 * time.Millisecond, BackoffFactor: 2, MaxDelay: 300 * time.Millisecond}
	if got := backoff(config, 1); got != 100*time.Millisecond {
		t.Errorf("attempt 1: got %v", got)
	}
	if got := backoff(config, 2); got != 200*time.Millisecond {
		t.Errorf("attempt 2: got %v", got)
	}
	if got := backoff(config, 3); got != 300*time.Millisecond {
		t.Errorf("attempt 3: got %v", got)
	}
}
