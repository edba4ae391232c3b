package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestGo_ReturnsValue(t *testing.T) {
	f := Go(context.Background(), 0, func() (int, error) { return 42, nil })

	v, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestGo_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	f := Go(context.Background(), 0, func() (string, error) { return "", boom })

	if _, err := f.Await(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestGo_WaitsForDelay(t *testing.T) {
	start := time.Now()
	f := Go(context.Background(), 20*time.Millisecond, func() (bool, error) { return true, nil })

	if _, err := f.Await(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("completed after %v, expected at least 20ms", elapsed)
	}
}

func TestGo_CancelledBeforeStart(t *testing.T) {
	var ran atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())

	f := Go(ctx, time.Hour, func() (int, error) {
		ran.Store(true)
		return 1, nil
	})
	cancel()

	<-f.Done()
	if _, err := f.Await(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if ran.Load() {
		t.Error("operation should not run after cancellation")
	}
}

func TestAwait_ContextDone(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	f := Go(context.Background(), 0, func() (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestResolved(t *testing.T) {
	f := Resolved("ok", nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("expected resolved future to be done")
	}
	v, err := f.Await(context.Background())
	if err != nil || v != "ok" {
		t.Errorf("expected (ok, nil), got (%q, %v)", v, err)
	}
}
