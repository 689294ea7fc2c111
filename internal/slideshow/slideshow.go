// Package slideshow steps the open lightbox forward on a timer.
package slideshow

import (
	"sync"
	"time"
)

const defaultInterval = 3 * time.Second

// Player calls step once per interval while playing. It starts paused.
type Player struct {
	mu                 sync.Mutex
	interval           time.Duration
	paused             bool
	wasPlayingBeforeOp bool // set by Pause(true) when playback was interrupted
	gen                uint64
	stop               chan struct{}

	dispatch func(func())
	step     func()

	// OnStateChange, when set, runs on the dispatcher after play or pause.
	OnStateChange func(playing bool)
}

// NewPlayer creates a paused player. step runs through dispatch so it lands
// on the UI goroutine.
func NewPlayer(interval time.Duration, dispatch func(func()), step func()) *Player {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Player{
		interval: interval,
		paused:   true,
		dispatch: dispatch,
		step:     step,
	}
}

// Play starts stepping. A running player is left alone.
func (p *Player) Play() {
	p.mu.Lock()
	p.wasPlayingBeforeOp = false
	changed := p.startLocked()
	p.mu.Unlock()
	p.notify(changed, true)
}

// Pause stops stepping. If forOperation is true, ResumeAfterOperation picks
// playback up again when it was running.
func (p *Player) Pause(forOperation bool) {
	p.mu.Lock()
	if forOperation {
		p.wasPlayingBeforeOp = !p.paused
	} else {
		p.wasPlayingBeforeOp = false
	}
	changed := p.stopLocked()
	p.mu.Unlock()
	p.notify(changed, false)
}

// ResumeAfterOperation restarts playback paused by Pause(true).
func (p *Player) ResumeAfterOperation() {
	p.mu.Lock()
	changed := false
	if p.wasPlayingBeforeOp {
		changed = p.startLocked()
	}
	p.wasPlayingBeforeOp = false
	p.mu.Unlock()
	p.notify(changed, true)
}

// Toggle flips between playing and paused and reports whether it now plays.
func (p *Player) Toggle() bool {
	if p.IsPaused() {
		p.Play()
		return true
	}
	p.Pause(false)
	return false
}

// IsPaused reports whether the player is stopped.
func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Interval returns the time between steps.
func (p *Player) Interval() time.Duration {
	return p.interval
}

func (p *Player) startLocked() bool {
	if !p.paused {
		return false
	}
	p.paused = false
	p.gen++
	p.stop = make(chan struct{})
	go p.run(p.gen, p.stop)
	return true
}

func (p *Player) stopLocked() bool {
	if p.paused {
		return false
	}
	p.paused = true
	close(p.stop)
	p.stop = nil
	return true
}

func (p *Player) run(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.dispatch(func() {
				// A tick queued before Pause must not step.
				if p.playing(gen) {
					p.step()
				}
			})
		}
	}
}

func (p *Player) playing(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.paused && p.gen == gen
}

func (p *Player) notify(changed, playing bool) {
	if !changed || p.OnStateChange == nil {
		return
	}
	p.dispatch(func() { p.OnStateChange(playing) })
}
