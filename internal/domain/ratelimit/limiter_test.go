package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestNew_InvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		capacity int
		window   time.Duration
	}{
		{"zero capacity", 0, time.Second},
		{"negative capacity", -3, time.Second},
		{"zero window", 5, 0},
		{"negative window", 5, -time.Second},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.capacity, tt.window); err == nil {
				t.Errorf("New(%d, %v) expected error, got nil", tt.capacity, tt.window)
			}
		})
	}
}

func TestLimiter_CapacityPlusOneWaitsForNextWindow(t *testing.T) {
	t.Parallel()

	const capacity = 3
	window := 200 * time.Millisecond

	limiter, err := New(capacity, window)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer limiter.Stop()

	ctx := context.Background()
	start := time.Now()

	// First capacity acquisitions complete immediately.
	for i := 0; i < capacity; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > window/2 {
		t.Errorf("first %d acquisitions took %v, expected immediate", capacity, elapsed)
	}
	if got := limiter.Available(); got != 0 {
		t.Errorf("Available() = %d after draining pool, want 0", got)
	}

	// The capacity+1-th acquisition only returns after the window tick.
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire after exhaustion error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < window/2 {
		t.Errorf("acquisition beyond capacity returned after %v, expected to wait for the next window", elapsed)
	}
}

func TestLimiter_NeverOversubscribesWindow(t *testing.T) {
	t.Parallel()

	const capacity = 5
	window := 150 * time.Millisecond

	limiter, err := New(capacity, window)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer limiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), window/2)
	defer cancel()

	// Hammer the limiter from many goroutines within a single window.
	var granted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < capacity*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(ctx); err == nil {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := granted.Load(); got != capacity {
		t.Errorf("granted %d permits within one window, want exactly %d", got, capacity)
	}
}

func TestLimiter_UnusedPermitsDoNotAccumulate(t *testing.T) {
	t.Parallel()

	const capacity = 4
	window := 80 * time.Millisecond

	limiter, err := New(capacity, window)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer limiter.Stop()

	// Sit out two full windows without acquiring anything.
	time.Sleep(2*window + window/2)

	if got := limiter.Available(); got != capacity {
		t.Errorf("Available() = %d after quiet windows, want %d (top-up must restore the deficit only)", got, capacity)
	}
}

func TestLimiter_ReplenishRestoresDeficit(t *testing.T) {
	t.Parallel()

	const capacity = 3
	window := 100 * time.Millisecond

	limiter, err := New(capacity, window)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer limiter.Stop()

	ctx := context.Background()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if got := limiter.Available(); got != capacity-1 {
		t.Fatalf("Available() = %d, want %d", got, capacity-1)
	}

	time.Sleep(window + window/2)

	if got := limiter.Available(); got != capacity {
		t.Errorf("Available() = %d after tick, want %d", got, capacity)
	}
}

func TestLimiter_AcquireCancellation(t *testing.T) {
	t.Parallel()

	limiter, err := New(1, time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer limiter.Stop()

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- limiter.Acquire(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Acquire() after cancel = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled Acquire did not return")
	}

	// The aborted wait must not have corrupted the pool.
	if got := limiter.Available(); got != 0 {
		t.Errorf("Available() = %d after cancelled wait, want 0", got)
	}
}

func TestLimiter_StopIsIdempotentAndLeakFree(t *testing.T) {
	defer goleak.VerifyNone(t)

	limiter, err := New(2, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	limiter.Stop()
	limiter.Stop()
}

func TestLimiter_AcquireAfterStop(t *testing.T) {
	t.Parallel()

	limiter, err := New(2, time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	limiter.Stop()

	ctx := context.Background()

	// Outstanding permits remain grantable after shutdown.
	for i := 0; i < 2; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d after Stop error: %v", i, err)
		}
	}

	// With the pool drained and no replenisher, Acquire must not deadlock.
	if err := limiter.Acquire(ctx); !errors.Is(err, ErrStopped) {
		t.Errorf("Acquire() on drained stopped limiter = %v, want ErrStopped", err)
	}
}
