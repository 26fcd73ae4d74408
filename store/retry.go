package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/arloliu/registrar/types"
)

// RetryPolicy controls retries of transient store failures.
//
// Only results whose code reports Transient() are retried: connection
// errors, resource errors, unavailability, and timeouts. NotApplied and
// NotFound are never retried; both are statements about current state and a
// retry would mask the signal.
//
// The zero value disables retries, matching the historical behavior of the
// system (every transient failure surfaced immediately).
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Zero disables retrying.
	MaxRetries uint64

	// InitialInterval is the first backoff delay. Defaults to 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the backoff delay. Defaults to 2s.
	MaxInterval time.Duration
}

// errTransient is the internal marker driven through the backoff loop.
var errTransient = errors.New("store: transient failure")

// withRetry runs op, retrying transient results per the policy.
func (c *Conn) withRetry(ctx context.Context, op string, fn func() types.Result) types.Result {
	if c.retry.MaxRetries == 0 {
		return fn()
	}

	exp := backoff.NewExponentialBackOff()
	if c.retry.InitialInterval > 0 {
		exp.InitialInterval = c.retry.InitialInterval
	}
	if c.retry.MaxInterval > 0 {
		exp.MaxInterval = c.retry.MaxInterval
	}

	var res types.Result
	attempt := 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, c.retry.MaxRetries), ctx)

	// The returned error is ignored: the outcome of interest is the last
	// Result, transient or not.
	_ = backoff.Retry(func() error {
		if attempt > 0 {
			c.metrics.IncRetryTotal(op)
			c.logger.Warnw("retrying transient store failure",
				"op", op,
				"attempt", attempt,
				"result", res.String(),
			)
		}
		attempt++

		res = fn()
		if res.Code.Transient() {
			return errTransient
		}

		return nil
	}, policy)

	return res
}
