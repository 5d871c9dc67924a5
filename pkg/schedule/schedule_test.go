package schedule_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/schedule"
)

func TestManual_RunsOnlyDueCallbacks(t *testing.T) {
	clock := schedule.NewManual(time.Unix(0, 0))
	var fired []string

	clock.After(2*time.Second, func() { fired = append(fired, "reset") })
	clock.After(500*time.Millisecond, func() { fired = append(fired, "early") })

	clock.Advance(1999 * time.Millisecond)
	if diff := cmp.Diff([]string{"early"}, fired); diff != "" {
		t.Fatalf("fired mismatch before deadline (-want +got):\n%s", diff)
	}
	if got := clock.Pending(); got != 1 {
		t.Fatalf("expected one pending callback, got %d", got)
	}

	clock.Advance(time.Millisecond)
	if diff := cmp.Diff([]string{"early", "reset"}, fired); diff != "" {
		t.Fatalf("fired mismatch at deadline (-want +got):\n%s", diff)
	}
	if got := clock.Now(); !got.Equal(time.Unix(2, 0)) {
		t.Fatalf("clock now = %v, want %v", got, time.Unix(2, 0))
	}
}

func TestManual_TiesKeepRegistrationOrder(t *testing.T) {
	clock := schedule.NewManual(time.Unix(0, 0))
	var fired []int
	for i := 0; i < 3; i++ {
		i := i
		clock.After(time.Second, func() { fired = append(fired, i) })
	}

	clock.Advance(time.Second)
	if diff := cmp.Diff([]int{0, 1, 2}, fired); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestManual_CallbackScheduledWhileAdvancing(t *testing.T) {
	clock := schedule.NewManual(time.Unix(0, 0))
	var fired []string

	clock.After(time.Second, func() {
		fired = append(fired, "first")
		clock.After(time.Second, func() { fired = append(fired, "second") })
	})

	clock.Advance(3 * time.Second)
	if diff := cmp.Diff([]string{"first", "second"}, fired); diff != "" {
		t.Fatalf("fired mismatch (-want +got):\n%s", diff)
	}
}

func TestImmediate_RunsSynchronously(t *testing.T) {
	ran := false
	schedule.Immediate().After(time.Hour, func() { ran = true })
	if !ran {
		t.Fatalf("expected immediate scheduler to run callback inline")
	}
}

func TestRealtime_FiresAfterDelay(t *testing.T) {
	done := make(chan struct{})
	schedule.Realtime().After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("realtime callback did not fire")
	}
}

func TestFunc_ForwardsDelay(t *testing.T) {
	var got time.Duration
	var scheduler schedule.Scheduler = schedule.Func(func(d time.Duration, fn func()) {
		got = d
		fn()
	})

	ran := false
	scheduler.After(2*time.Second, func() { ran = true })
	if got != 2*time.Second || !ran {
		t.Fatalf("func scheduler got delay %v ran %v", got, ran)
	}
}
