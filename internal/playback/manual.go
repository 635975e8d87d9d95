package playback

import (
	"time"
)

// ManualScheduler runs tasks on simulated time advanced explicitly with
// Advance. Callbacks run synchronously on the caller's goroutine.
type ManualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

func (t *manualTask) Stop() { t.stopped = true }

// NewManualScheduler returns a scheduler at simulated time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	t := &manualTask{interval: interval, next: m.now + interval, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves simulated time forward by d and fires every tick that falls
// due, in time order. It returns the number of callbacks run.
func (m *ManualScheduler) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0
	for {
		m.prune()
		var due *manualTask
		for _, t := range m.tasks {
			if t.next <= target && (due == nil || t.next < due.next) {
				due = t
			}
		}
		if due == nil {
			break
		}
		m.now = due.next
		due.next += due.interval
		due.fn()
		fired++
	}
	m.now = target
	return fired
}

// Active returns the number of tasks that have not been stopped.
func (m *ManualScheduler) Active() int {
	m.prune()
	return len(m.tasks)
}

// Now returns the simulated time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration { return m.now }

func (m *ManualScheduler) prune() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.tasks = live
}
