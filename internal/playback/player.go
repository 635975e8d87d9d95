package playback

import (
	"time"
)

// State describes playback for display.
type State struct {
	IsPlaying     bool
	FrameInterval time.Duration
}

// Player owns at most one live playback task.
//
// Ticks are delivered through the scheduler and must be serialized with the
// calls to Play and Pause. A tick that was already queued when Pause ran is
// dropped.
type Player struct {
	sched    Scheduler
	interval time.Duration
	task     Task
	gen      uint64
}

// NewPlayer returns a paused player. A non-positive interval selects
// DefaultFrameInterval.
func NewPlayer(sched Scheduler, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Player{sched: sched, interval: interval}
}

// Play starts calling tick every frame interval. Calling Play while already
// playing does nothing and returns false.
func (p *Player) Play(tick func()) bool {
	if p.task != nil {
		return false
	}
	p.gen++
	gen := p.gen
	p.task = p.sched.Every(p.interval, func() {
		if p.task == nil || p.gen != gen {
			return
		}
		tick()
	})
	return true
}

// Pause cancels the playback task. It returns false if nothing was playing.
func (p *Player) Pause() bool {
	if p.task == nil {
		return false
	}
	p.task.Stop()
	p.task = nil
	p.gen++
	return true
}

// Toggle pauses when playing and plays otherwise. It returns the new playing
// state.
func (p *Player) Toggle(tick func()) bool {
	if p.Pause() {
		return false
	}
	return p.Play(tick)
}

// IsPlaying reports whether a playback task is live.
func (p *Player) IsPlaying() bool { return p.task != nil }

// State returns the current playback state.
func (p *Player) State() State {
	return State{IsPlaying: p.task != nil, FrameInterval: p.interval}
}
