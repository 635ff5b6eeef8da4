package server

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when every decode slot stays occupied for the whole
// wait period. Clients should retry after a short delay.
var ErrBusy = errors.New("all decode slots are busy, please try again later")

// limiter bounds the number of decodes running at once.
type limiter struct {
	sem     *semaphore.Weighted
	max     int64
	maxWait time.Duration
	active  atomic.Int64
}

func newLimiter(maxConcurrent int, maxWait time.Duration) *limiter {
	return &limiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		max:     int64(maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire waits up to maxWait for a slot. The caller must call release
// after a nil return.
func (l *limiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
	l.active.Add(1)
	return nil
}

func (l *limiter) release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// drain blocks until every slot is free or ctx is done. Slots taken by
// drain are returned before it exits.
func (l *limiter) drain(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, l.max); err != nil {
		return err
	}
	l.sem.Release(l.max)
	return nil
}

// limiterStatus is a snapshot of the limiter state.
type limiterStatus struct {
	Active        int64 `json:"active"`
	MaxConcurrent int64 `json:"max_concurrent"`
}

func (l *limiter) status() limiterStatus {
	return limiterStatus{Active: l.active.Load(), MaxConcurrent: l.max}
}
