// Package ratelimit provides a fixed-window admission gate for outbound
// registry calls.
//
// The limiter is a counting permit pool: at most capacity Acquire calls
// complete within any single window. A background replenisher tops the pool
// back up to capacity once per window, measured from construction. Permits
// taken but not yet used survive window boundaries; the limiter never
// reclaims a granted permit.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrStopped is returned by Acquire when the limiter has been stopped and
// no permits remain in the pool.
var ErrStopped = errors.New("rate limiter stopped")

// Limiter grants at most capacity permits per fixed window.
// Safe for concurrent use by multiple goroutines sharing one client.
type Limiter struct {
	capacity int
	window   time.Duration

	permits  chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a limiter allowing at most capacity acquisitions per window
// and starts its background replenisher. The first replenishment tick fires
// one window after construction, not after the first call.
// Callers must Stop the limiter when done with it.
func New(capacity int, window time.Duration) (*Limiter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ratelimit: capacity must be positive, got %d", capacity)
	}
	if window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %v", window)
	}

	l := &Limiter{
		capacity: capacity,
		window:   window,
		permits:  make(chan struct{}, capacity),
		stopChan: make(chan struct{}),
	}
	for i := 0; i < capacity; i++ {
		l.permits <- struct{}{}
	}

	l.wg.Add(1)
	go l.replenish()

	return l, nil
}

// Acquire blocks until a permit for the current window is available and
// consumes it. It returns ctx.Err() when the wait is cancelled, leaving the
// pool untouched, or ErrStopped when the limiter was stopped and the pool
// has drained. Waiters are served in arrival order.
func (l *Limiter) Acquire(ctx context.Context) error {
	// Outstanding permits remain grantable even after Stop.
	select {
	case <-l.permits:
		return nil
	default:
	}

	select {
	case <-l.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopChan:
		return ErrStopped
	}
}

// Available reports the number of unconsumed permits in the current window.
func (l *Limiter) Available() int {
	return len(l.permits)
}

// Capacity reports the maximum number of permits per window.
func (l *Limiter) Capacity() int {
	return l.capacity
}

// Stop halts the background replenisher and waits for it to exit. It is
// idempotent and never waits for goroutines blocked in Acquire; those either
// drain the remaining permits or fail with ErrStopped.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	l.wg.Wait()
}

// replenish tops the pool back up to capacity once per window.
func (l *Limiter) replenish() {
	defer l.wg.Done()
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.topUp()
		}
	}
}

// topUp restores only the deficit (capacity - available): permits held over
// from a quiet window are preserved, and the pool never exceeds capacity.
func (l *Limiter) topUp() {
	for {
		select {
		case l.permits <- struct{}{}:
		default:
			return
		}
	}
}
