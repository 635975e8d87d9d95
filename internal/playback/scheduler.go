// Package playback drives cine playback: a single repeating task that can be
// cancelled deterministically.
package playback

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"
)

// DefaultFrameInterval is the playback period (10 frames per second).
const DefaultFrameInterval = 100 * time.Millisecond

// Task is a handle on a scheduled repeating callback.
type Task interface {
	// Stop cancels the task. Once Stop returns the scheduler starts no
	// further calls for it. A call already in progress (Stop called from
	// inside the callback, or racing with it) runs to completion. Stop is
	// idempotent.
	Stop()
}

// Scheduler runs fn every interval until the returned Task is stopped.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// PostFunc hands a tick to the host's event loop. It must not block on the
// event loop itself.
type PostFunc func(fn func())

// ClockScheduler schedules tasks on a clock.WithTicker, one goroutine per
// live task. Each tick is delivered through post so the host can serialize it
// with its other events.
type ClockScheduler struct {
	clock clock.WithTicker
	post  PostFunc
}

// NewClockScheduler returns a scheduler on c. A nil post runs ticks directly
// on the task goroutine.
func NewClockScheduler(c clock.WithTicker, post PostFunc) *ClockScheduler {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &ClockScheduler{clock: c, post: post}
}

// NewRealScheduler returns a scheduler on the wall clock.
func NewRealScheduler(post PostFunc) *ClockScheduler {
	return NewClockScheduler(clock.RealClock{}, post)
}

// Every implements Scheduler.
func (s *ClockScheduler) Every(interval time.Duration, fn func()) Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &clockTask{cancel: cancel, done: make(chan struct{})}
	ticker := s.clock.NewTicker(interval)

	// inFlight is raised before the cancellation check so that Stop either
	// sees the call or the call sees the cancellation.
	deliver := func() {
		t.inFlight.Add(1)
		defer t.inFlight.Add(-1)
		if ctx.Err() != nil {
			return
		}
		fn()
	}

	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				s.post(deliver)
			}
		}
	}()
	return t
}

type clockTask struct {
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	inFlight atomic.Int32
}

// Stop cancels the task and waits for its goroutine to exit. When a call is
// in flight the goroutine may be the caller, so Stop returns after the
// cancel and the goroutine exits once that call finishes.
func (t *clockTask) Stop() {
	t.once.Do(t.cancel)
	if t.inFlight.Load() > 0 {
		return
	}
	<-t.done
}
