package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return false }

func TestDo_RetriesOnRetryableError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Config{MaxAttempts: 3}, IsRetryable, func() error {
		attempts++
		return testNetError{timeout: true}
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_NoRetryOnNonRetryable(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Config{MaxAttempts: 3}, IsRetryable, func() error {
		attempts++
		return errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SucceedsAfterServerError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Config{MaxAttempts: 3}, IsRetryable, func() error {
		attempts++
		if attempts == 1 {
			return &StatusError{Code: http.StatusServiceUnavailable}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, Config{MaxAttempts: 3}, IsRetryable, func() error {
		attempts++
		return testNetError{timeout: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"net timeout", testNetError{timeout: true}, true},
		{"net other", testNetError{}, false},
		{"503", &StatusError{Code: http.StatusServiceUnavailable}, true},
		{"429", &StatusError{Code: http.StatusTooManyRequests}, true},
		{"401", &StatusError{Code: http.StatusUnauthorized}, false},
		{"wrapped 502", fmt.Errorf("auth: %w", &StatusError{Code: http.StatusBadGateway}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBackoffDelay_NoBaseDelay(t *testing.T) {
	if delay := backoffDelay(0, time.Second, 1); delay != 0 {
		t.Fatalf("expected zero delay, got %v", delay)
	}
}

func TestBackoffDelay_CappedAtMax(t *testing.T) {
	for i := 0; i < 20; i++ {
		if delay := backoffDelay(time.Second, 2*time.Second, 5); delay > 2*time.Second {
			t.Fatalf("delay %v exceeds max", delay)
		}
	}
}
