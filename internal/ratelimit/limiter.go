// Package ratelimit caps complaint submissions per client address over
// a trailing window. The limiter is advisory: concurrent submissions
// from one address may both read the same pre-update count, which the
// design tolerates.
package ratelimit

import (
	"context"
	"time"
)

// UnknownClient is used when the client address cannot be determined.
const UnknownClient = "unknown"

// Store persists submission timestamps per client key. Count uses a
// strict lower bound: a timestamp exactly window-old is expired. Append
// records the attempt and may prune entries older than the window.
type Store interface {
	Count(ctx context.Context, key string, since time.Time) (int64, error)
	Append(ctx context.Context, key string, at time.Time, window time.Duration) error
}

type Limiter struct {
	store  Store
	window time.Duration
	max    int64
	now    func() time.Time
}

func NewLimiter(store Store, window time.Duration, max int64) *Limiter {
	return &Limiter{
		store:  store,
		window: window,
		max:    max,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow decides admit/reject for one submission attempt. Admitted
// attempts are recorded; rejected ones are not.
func (l *Limiter) Allow(ctx context.Context, clientID string) (bool, error) {
	if clientID == "" {
		clientID = UnknownClient
	}

	now := l.now()
	count, err := l.store.Count(ctx, clientID, now.Add(-l.window))
	if err != nil {
		return false, err
	}
	if count >= l.max {
		return false, nil
	}

	if err := l.store.Append(ctx, clientID, now, l.window); err != nil {
		return false, err
	}
	return true, nil
}
