package translator

import (
	"context"
	"time"
)

// RetryConfig bounds the retry behavior of a wrapped service.
type RetryConfig struct {
	// MaxAttempts is the total number of tries including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig returns sensible defaults for a flaky HTTP backend.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// RetryableService wraps a TranslationService with bounded exponential
// backoff and enforces the configured per-call timeout on every attempt.
// Retry lives here, at the capability-adapter boundary; the driver above
// it still performs exactly one logical call per unit.
type RetryableService struct {
	inner TranslationService
	cfg   RetryConfig
}

func WithRetry(inner TranslationService, cfg RetryConfig) *RetryableService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	return &RetryableService{inner: inner, cfg: cfg}
}

func (s *RetryableService) Name() string {
	return s.inner.Name()
}

func (s *RetryableService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	var lastResult *ServiceResult
	var lastErr error

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return lastResult, ctx.Err()
		default:
		}

		result, err := s.translateOnce(ctx, cfg, req)
		if err == nil {
			return result, nil
		}
		lastResult, lastErr = result, err

		// Caller cancellation propagates immediately. A per-attempt
		// timeout is an ordinary attempt failure (the next attempt gets
		// a fresh deadline), so it stays retryable.
		if ctx.Err() != nil {
			return lastResult, ctx.Err()
		}

		if attempt < s.cfg.MaxAttempts-1 {
			delay := s.cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > s.cfg.MaxDelay {
				delay = s.cfg.MaxDelay
			}
			select {
			case <-ctx.Done():
				return lastResult, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastResult, lastErr
}

// translateOnce runs a single attempt, bounded by the configured per-call
// timeout when one is set. A hung backend call can then stall one attempt
// at most, never the whole document pass.
func (s *RetryableService) translateOnce(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return s.inner.Translate(ctx, cfg, req)
}

func (s *RetryableService) IsAvailable(ctx context.Context) error {
	return s.inner.IsAvailable(ctx)
}
