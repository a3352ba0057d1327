package main

// Notes:
// - notifyContext: we only test the observable behavior (cancellation via
//   stop() and parent propagation). OS signal delivery is not exercised.

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts not cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		defer stop()

		if ctx.Err() != nil {
			t.Fatalf("ctx.Err() = %v, want nil", ctx.Err())
		}
	})

	t.Run("stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		stop()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be cancelled after stop()")
		}
	})

	t.Run("inherits parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be cancelled when parent is cancelled")
		}
	})
}
