package game

// TimerMode selects whether a Timer stops or wraps when it reaches its duration.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer is a duration counter advanced explicitly by the tick loop.
//
// A Once timer latches Finished after elapsed reaches the duration. A
// Repeating timer wraps elapsed on every crossing and reports Finished only on
// the tick it crossed, so callers test JustFinished to fire once per period.
type Timer struct {
	duration     float64
	elapsed      float64
	mode         TimerMode
	paused       bool
	finished     bool
	justFinished bool
	times        int // crossings during the last Tick (repeating only)
}

// NewTimer returns a running timer of d seconds.
func NewTimer(d float64, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by dt seconds. A paused timer does not advance.
func (t *Timer) Tick(dt float64) {
	t.justFinished = false
	t.times = 0
	if t.paused || dt <= 0 {
		if t.mode == TimerRepeating {
			t.finished = false
		}
		return
	}

	switch t.mode {
	case TimerOnce:
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.justFinished = true
		}
	case TimerRepeating:
		t.elapsed += dt
		t.finished = false
		if t.duration <= 0 {
			t.finished = true
			t.justFinished = true
			t.times = 1
			t.elapsed = 0
			return
		}
		for t.elapsed >= t.duration {
			t.elapsed -= t.duration
			t.times++
		}
		if t.times > 0 {
			t.finished = true
			t.justFinished = true
		}
	}
}

// Finished reports whether the timer has reached its duration. For repeating
// timers this is only true on the crossing tick.
func (t *Timer) Finished() bool { return t.finished }

// JustFinished is true only on the tick the timer crossed its duration.
func (t *Timer) JustFinished() bool { return t.justFinished }

// TimesFinished is the number of period crossings during the last Tick.
func (t *Timer) TimesFinished() int { return t.times }

// Reset zeroes elapsed time and clears the finished latch. The duration and
// pause state are kept.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
	t.times = 0
}

// SetDuration changes the period without touching elapsed progress.
func (t *Timer) SetDuration(d float64) { t.duration = d }

func (t *Timer) Duration() float64 { return t.duration }
func (t *Timer) Elapsed() float64  { return t.elapsed }

// Remaining returns the seconds left until the timer finishes.
func (t *Timer) Remaining() float64 {
	r := t.duration - t.elapsed
	if r < 0 {
		return 0
	}
	return r
}

// FractionRemaining is Remaining/Duration in [0,1].
func (t *Timer) FractionRemaining() float64 {
	if t.duration <= 0 {
		return 0
	}
	return t.Remaining() / t.duration
}

func (t *Timer) Pause()       { t.paused = true }
func (t *Timer) Unpause()     { t.paused = false }
func (t *Timer) Paused() bool { return t.paused }
