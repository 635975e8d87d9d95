package playback

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	testclock "k8s.io/utils/clock/testing"
)

func TestManualScheduler_FiresInOrder(t *testing.T) {
	m := NewManualScheduler()
	var got []string
	m.Every(100*time.Millisecond, func() { got = append(got, "a") })
	m.Every(250*time.Millisecond, func() { got = append(got, "b") })

	if n := m.Advance(500 * time.Millisecond); n != 7 {
		t.Errorf("Expected 7 ticks, got %d", n)
	}
	// at 500ms both are due; the earlier registration fires first
	want := []string{"a", "a", "b", "a", "a", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tick %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestManualScheduler_StopInsideCallback(t *testing.T) {
	m := NewManualScheduler()
	count := 0
	var task Task
	task = m.Every(100*time.Millisecond, func() {
		count++
		if count == 3 {
			task.Stop()
		}
	})

	m.Advance(time.Second)
	if count != 3 {
		t.Errorf("Expected 3 ticks before stop, got %d", count)
	}
	if m.Active() != 0 {
		t.Errorf("Expected no active tasks, got %d", m.Active())
	}
}

func TestPlayer_PlayIsIdempotent(t *testing.T) {
	m := NewManualScheduler()
	p := NewPlayer(m, 0)
	ticks := 0

	if !p.Play(func() { ticks++ }) {
		t.Fatal("Expected first Play to start playback")
	}
	if p.Play(func() { ticks++ }) {
		t.Error("Expected second Play to be a no-op")
	}
	if m.Active() != 1 {
		t.Errorf("Expected exactly one scheduled task, got %d", m.Active())
	}

	m.Advance(time.Second)
	if ticks != 10 {
		t.Errorf("Expected 10 ticks in one second at 10fps, got %d", ticks)
	}
}

func TestPlayer_PauseStopsTicks(t *testing.T) {
	m := NewManualScheduler()
	p := NewPlayer(m, 100*time.Millisecond)
	ticks := 0
	p.Play(func() { ticks++ })
	m.Advance(300 * time.Millisecond)

	if !p.Pause() {
		t.Fatal("Expected Pause to stop playback")
	}
	if p.Pause() {
		t.Error("Expected second Pause to be a no-op")
	}
	m.Advance(time.Second)

	if ticks != 3 {
		t.Errorf("Expected 3 ticks, got %d", ticks)
	}
	if p.State().IsPlaying {
		t.Error("Expected player to report paused")
	}
	if m.Active() != 0 {
		t.Errorf("Expected no active tasks, got %d", m.Active())
	}
}

// queuedScheduler captures task callbacks so a test can fire a tick that was
// queued before Pause.
type queuedScheduler struct {
	fns []func()
}

type nopTask struct{}

func (nopTask) Stop() {}

func (q *queuedScheduler) Every(_ time.Duration, fn func()) Task {
	q.fns = append(q.fns, fn)
	return nopTask{}
}

func TestPlayer_DropsStaleTicks(t *testing.T) {
	q := &queuedScheduler{}
	p := NewPlayer(q, 0)
	ticks := 0
	p.Play(func() { ticks++ })
	p.Pause()

	q.fns[0]()
	if ticks != 0 {
		t.Errorf("Expected tick after pause to be dropped, got %d", ticks)
	}

	p.Play(func() { ticks++ })
	q.fns[0]()
	if ticks != 0 {
		t.Errorf("Expected tick from previous play to be dropped, got %d", ticks)
	}
	q.fns[1]()
	if ticks != 1 {
		t.Errorf("Expected current tick to run, got %d", ticks)
	}
}

func TestPlayer_Toggle(t *testing.T) {
	p := NewPlayer(NewManualScheduler(), 0)
	if !p.Toggle(func() {}) {
		t.Error("Expected toggle to start playback")
	}
	if p.Toggle(func() {}) {
		t.Error("Expected toggle to pause playback")
	}
	if got := p.State().FrameInterval; got != DefaultFrameInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultFrameInterval, got)
	}
}

func TestClockScheduler_FakeClock(t *testing.T) {
	fc := testclock.NewFakeClock(time.Date(2024, 1, 15, 14, 32, 0, 0, time.UTC))
	ticks := make(chan struct{}, 16)
	s := NewClockScheduler(fc, nil)

	task := s.Every(100*time.Millisecond, func() { ticks <- struct{}{} })
	if !fc.HasWaiters() {
		t.Fatal("Expected the ticker to be registered")
	}

	fc.Step(100 * time.Millisecond)
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a tick after stepping one interval")
	}

	task.Stop()
	task.Stop()

	fc.Step(time.Second)
	select {
	case <-ticks:
		t.Error("Expected no tick after Stop returned")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClockScheduler_PostReceivesTicks(t *testing.T) {
	fc := testclock.NewFakeClock(time.Now())
	posted := make(chan func(), 4)
	s := NewClockScheduler(fc, func(fn func()) { posted <- fn })

	ran := false
	task := s.Every(DefaultFrameInterval, func() { ran = true })
	defer task.Stop()

	fc.Step(DefaultFrameInterval)
	select {
	case fn := <-posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("Expected tick to be posted")
	}
	if !ran {
		t.Error("Expected posted callback to run the task function")
	}
}

func TestClockScheduler_StopInsideCallback(t *testing.T) {
	fc := testclock.NewFakeClock(time.Date(2024, 1, 15, 14, 32, 0, 0, time.UTC))
	s := NewClockScheduler(fc, nil)

	var calls atomic.Int32
	var once sync.Once
	taskc := make(chan Task, 1)
	stopped := make(chan struct{})

	task := s.Every(100*time.Millisecond, func() {
		calls.Add(1)
		once.Do(func() {
			(<-taskc).Stop()
			close(stopped)
		})
	})
	taskc <- task

	fc.Step(100 * time.Millisecond)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Stop called from the callback to return")
	}

	// the outer Stop waits for the task goroutine, which has now exited
	done := make(chan struct{})
	go func() {
		task.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Stop after an inner Stop to return")
	}

	fc.Step(time.Second)
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
}
