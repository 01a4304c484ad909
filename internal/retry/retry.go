package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/loykin/apicall/internal/common"
	"github.com/loykin/apicall/internal/transport"
)

// Config holds configuration for transport send retries. Retrying is a
// caller-side policy: the dispatcher and the poll driver never retry on
// their own.
type Config struct {
	MaxRetries      int           // Maximum number of retry attempts
	InitialDelay    time.Duration // Initial delay before first retry
	MaxDelay        time.Duration // Maximum delay between retries
	BackoffFactor   float64       // Multiplier for exponential backoff
	RetryableErrors []string      // Error strings that trigger retries
}

// DefaultConfig returns a sensible default retry configuration
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		RetryableErrors: []string{
			"connection refused",
			"connection reset",
			"timeout",
			"temporary failure",
			"no such host",
			"broken pipe",
			"eof",
		},
	}
}

// withDefaults fills unset fields from DefaultConfig.
func withDefaults(config *Config) *Config {
	def := DefaultConfig()
	if config == nil {
		return def
	}
	out := *config
	if out.MaxRetries <= 0 {
		out.MaxRetries = def.MaxRetries
	}
	if out.InitialDelay <= 0 {
		out.InitialDelay = def.InitialDelay
	}
	if out.MaxDelay <= 0 {
		out.MaxDelay = def.MaxDelay
	}
	if out.BackoffFactor <= 0 {
		out.BackoffFactor = def.BackoffFactor
	}
	if len(out.RetryableErrors) == 0 {
		out.RetryableErrors = def.RetryableErrors
	}
	return &out
}

// isRetryableError checks if an error should trigger a retry
func (rc *Config) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for context cancellation - don't retry these
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, retryableErr := range rc.RetryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// calculateDelay calculates the delay for a given retry attempt using exponential backoff
func (rc *Config) calculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return rc.InitialDelay
	}

	delay := time.Duration(float64(rc.InitialDelay) * math.Pow(rc.BackoffFactor, float64(attempt-1)))
	if delay > rc.MaxDelay {
		delay = rc.MaxDelay
	}
	return delay
}

// Transport wraps an inner transport and retries failed sends according to
// its Config. Only transport-level failures are retried; a response with an
// unexpected status code is a completed exchange, not a retry trigger.
func Transport(inner transport.Transport, config *Config) transport.Transport {
	config = withDefaults(config)
	return transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		logger := common.GetLogger().WithComponent("transport-retry")

		var lastErr error
		for attempt := 0; attempt <= config.MaxRetries; attempt++ {
			resp, err := inner.Send(ctx, req)
			if err == nil {
				if attempt > 0 {
					logger.Info("send succeeded after retry",
						"attempt", attempt+1,
						"total_attempts", config.MaxRetries+1)
				}
				return resp, nil
			}

			lastErr = err

			if attempt == config.MaxRetries {
				break
			}

			if !config.isRetryableError(err) {
				logger.Debug("send failed with non-retryable error",
					"error", err,
					"attempt", attempt+1)
				return nil, err
			}

			delay := config.calculateDelay(attempt)
			logger.Warn("send failed, retrying",
				"error", err,
				"attempt", attempt+1,
				"max_attempts", config.MaxRetries+1,
				"retry_delay", delay)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("send cancelled during retry: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		logger.Error("send failed after all retry attempts",
			"error", lastErr,
			"attempts", config.MaxRetries+1)

		return nil, fmt.Errorf("send failed after %d attempts: %w", config.MaxRetries+1, lastErr)
	})
}
