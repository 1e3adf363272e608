package game

import "math"

// Combo is the kill-streak score multiplier. Each kill re-arms the decay
// timer; when the timer finishes without a kill the streak drops to zero and
// the timer idles until the next kill.
type Combo struct {
	streak     uint32
	multiplier float64
	step       float64
	timer      Timer
}

// NewCombo returns an idle combo.
func NewCombo(step float64) Combo {
	c := Combo{step: step}
	c.Reset()
	return c
}

// RegisterKill extends the streak and returns the score award.
func (c *Combo) RegisterKill(window float64, baseScore uint32) uint32 {
	c.timer.SetDuration(window)
	c.timer.Reset()
	c.timer.Unpause()
	c.streak++
	c.multiplier = 1 + float64(c.streak-1)*c.step
	return uint32(math.Round(float64(baseScore) * c.multiplier))
}

// Tick advances the decay timer. It reports whether the streak just expired.
func (c *Combo) Tick(dt float64) bool {
	if c.timer.Paused() {
		return false
	}
	c.timer.Tick(dt)
	if c.timer.JustFinished() {
		c.Reset()
		return true
	}
	return false
}

// Reset returns to streak 0, multiplier 1 with the timer idle.
func (c *Combo) Reset() {
	c.streak = 0
	c.multiplier = 1
	c.timer.Reset()
	c.timer.Pause()
}

func (c *Combo) Streak() uint32      { return c.streak }
func (c *Combo) Multiplier() float64 { return c.multiplier }
func (c *Combo) Idle() bool          { return c.timer.Paused() }
func (c *Combo) Remaining() float64  { return c.timer.Remaining() }

func (c *Combo) WindowFraction() float64 {
	if c.Idle() {
		return 0
	}
	return c.timer.FractionRemaining()
}

// --- Score ---

// Score is the run score plus the best value reached this session.
type Score struct {
	Current uint32
	Best    uint32
}

// Add credits points, saturating, and tracks the best.
func (s *Score) Add(points uint32) {
	if s.Current > math.MaxUint32-points {
		s.Current = math.MaxUint32
	} else {
		s.Current += points
	}
	if s.Current > s.Best {
		s.Best = s.Current
	}
}

// Penalize subtracts points, stopping at zero.
func (s *Score) Penalize(points uint32) {
	if points >= s.Current {
		s.Current = 0
		return
	}
	s.Current -= points
}
