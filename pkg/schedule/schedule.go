// Package schedule provides the delayed-callback capability the orchestrator
// uses for its post-submission reset. Callbacks are fire-and-forget; there is
// no cancellation path.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts a plain function into a Scheduler.
type Func func(d time.Duration, fn func())

// After calls the underlying function.
func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}

type realtime struct{}

// Realtime returns a Scheduler backed by time.AfterFunc. Callbacks run on
// their own goroutine.
func Realtime() Scheduler {
	return realtime{}
}

func (realtime) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	time.AfterFunc(d, fn)
}

// Immediate runs callbacks synchronously, ignoring the delay.
func Immediate() Scheduler {
	return Func(func(_ time.Duration, fn func()) {
		if fn != nil {
			fn()
		}
	})
}

type pending struct {
	due time.Time
	seq int
	fn  func()
}

// Manual is a simulated clock for tests. Time only moves when Advance is
// called; due callbacks run synchronously on the caller's goroutine in due
// order, ties broken by registration order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	queue []pending
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now reports the simulated time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After queues fn to run once the clock has advanced by d.
func (m *Manual) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.queue = append(m.queue, pending{due: m.now.Add(d), seq: m.seq, fn: fn})
}

// Pending reports how many callbacks have not fired yet.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Advance moves the clock forward by d and runs every callback that became
// due. Callbacks scheduled while advancing run too if they fall inside the
// window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next, ok := m.popDue(target)
		if !ok {
			m.now = target
			m.mu.Unlock()
			return
		}
		if next.due.After(m.now) {
			m.now = next.due
		}
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) popDue(target time.Time) (pending, bool) {
	if len(m.queue) == 0 {
		return pending{}, false
	}
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due.Equal(m.queue[j].due) {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due.Before(m.queue[j].due)
	})
	head := m.queue[0]
	if head.due.After(target) {
		return pending{}, false
	}
	m.queue = m.queue[1:]
	return head, true
}
