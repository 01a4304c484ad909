package retry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/loykin/apicall/internal/transport"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:      3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		RetryableErrors: []string{"connection refused"},
	}
}

func TestTransport_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	inner := transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return transport.NewResponse(200, nil, []byte("ok")), nil
	})

	resp, err := Transport(inner, fastConfig()).Send(context.Background(), &transport.Request{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode() != 200 || attempts != 3 {
		t.Fatalf("expected success on attempt 3, got status %d after %d attempts", resp.StatusCode(), attempts)
	}
}

func TestTransport_NonRetryableFailsImmediately(t *testing.T) {
	attempts := 0
	boom := errors.New("certificate has expired")
	inner := transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		attempts++
		return nil, boom
	})

	_, err := Transport(inner, fastConfig()).Send(context.Background(), &transport.Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestTransport_ExhaustsRetries(t *testing.T) {
	attempts := 0
	inner := transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		attempts++
		return nil, errors.New("connection refused")
	})

	cfg := fastConfig()
	_, err := Transport(inner, cfg).Send(context.Background(), &transport.Request{})
	if err == nil || !strings.Contains(err.Error(), "after 4 attempts") {
		t.Fatalf("expected exhaustion error, got %v", err)
	}
	if attempts != cfg.MaxRetries+1 {
		t.Fatalf("expected %d attempts, got %d", cfg.MaxRetries+1, attempts)
	}
}

func TestTransport_StatusCodesAreNotRetried(t *testing.T) {
	attempts := 0
	inner := transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		attempts++
		return transport.NewResponse(503, nil, nil), nil
	})

	resp, err := Transport(inner, fastConfig()).Send(context.Background(), &transport.Request{})
	if err != nil || resp.StatusCode() != 503 {
		t.Fatalf("expected the 503 exchange returned as-is, got %v %v", resp, err)
	}
	if attempts != 1 {
		t.Fatalf("a completed exchange must not be retried, got %d attempts", attempts)
	}
}

func TestConfig_isRetryableError(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("connection refused"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"timeout", errors.New("request timeout"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"non-retryable", errors.New("certificate has expired"), false},
		{"case insensitive", errors.New("CONNECTION REFUSED"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.isRetryableError(tt.err); got != tt.expected {
				t.Errorf("isRetryableError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestConfig_calculateDelay(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{7, 5 * time.Second},
		{-1, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := cfg.calculateDelay(tt.attempt); got != tt.expected {
			t.Errorf("calculateDelay(%d) = %v, expected %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	got := withDefaults(nil)
	if got.MaxRetries != 3 || got.BackoffFactor != 2.0 {
		t.Fatalf("nil config must yield defaults, got %+v", got)
	}
	partial := withDefaults(&Config{MaxRetries: 7})
	if partial.MaxRetries != 7 || partial.InitialDelay != 100*time.Millisecond {
		t.Fatalf("partial config must keep set fields and fill the rest, got %+v", partial)
	}
}
