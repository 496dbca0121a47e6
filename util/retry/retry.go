// Package retry repeats fallible calls with a linear backoff.
package retry

import (
	"context"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/ulogger"
)

type options struct {
	attempts          int
	backoffMultiplier int
	backoffUnit       time.Duration
	retryable         func(error) bool
	message           string
}

type Option func(*options)

// WithAttempts sets the total number of calls, including the first. Values below 1 are
// treated as 1.
func WithAttempts(n int) Option {
	return func(o *options) {
		o.attempts = n
	}
}

func WithBackoff(multiplier int, unit time.Duration) Option {
	return func(o *options) {
		o.backoffMultiplier = multiplier
		o.backoffUnit = unit
	}
}

// WithRetryable limits retries to errors for which fn returns true.
func WithRetryable(fn func(error) bool) Option {
	return func(o *options) {
		o.retryable = fn
	}
}

func WithMessage(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

// Retry calls f until it succeeds, returns a non retryable error, or the attempts run out.
// The last error is returned. Context errors are never retried.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Option) (T, error) {
	o := &options{
		attempts:          3,
		backoffMultiplier: 1,
		backoffUnit:       time.Second,
		message:           "retrying",
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.attempts < 1 {
		o.attempts = 1
	}

	var (
		result T
		err    error
	)

	for i := 0; i < o.attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, errors.NewContextCanceledError("%s: context done", o.message, ctxErr)
		}

		result, err = f()
		if err == nil {
			return result, nil
		}

		if errors.IsContextError(err) || (o.retryable != nil && !o.retryable(err)) {
			return result, err
		}

		if i == o.attempts-1 {
			break
		}

		logger.Warnf("%s (attempt %d of %d): %v", o.message, i+1, o.attempts, err)

		if sleepErr := BackoffAndSleep(ctx, i, o.backoffMultiplier, o.backoffUnit); sleepErr != nil {
			return result, errors.NewContextCanceledError("%s: context done", o.message, sleepErr)
		}
	}

	return result, err
}
