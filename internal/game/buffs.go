package game

import "math"

// --- Timed buffs ---

// Buff is an on/off status backed by a Once timer. Re-arming restarts the
// countdown with the new duration.
type Buff struct {
	timer  Timer
	active bool
}

// Arm (re)starts the buff for d seconds.
func (b *Buff) Arm(d float64) {
	b.timer = NewTimer(d, TimerOnce)
	b.active = d > 0
}

// Tick counts the buff down and deactivates it when the timer finishes.
func (b *Buff) Tick(dt float64) {
	if !b.active {
		return
	}
	b.timer.Tick(dt)
	if b.timer.Finished() {
		b.active = false
	}
}

// Clear deactivates the buff immediately.
func (b *Buff) Clear() {
	b.active = false
	b.timer = Timer{}
}

func (b *Buff) Active() bool { return b.active }

// Remaining is zero while inactive.
func (b *Buff) Remaining() float64 {
	if !b.active {
		return 0
	}
	return b.timer.Remaining()
}

// Fraction is the remaining share of the armed duration, for HUD bars.
func (b *Buff) Fraction() float64 {
	if !b.active {
		return 0
	}
	return b.timer.FractionRemaining()
}

// --- Trauma ---

// Trauma drives screen shake. It is added on impacts, clamped to [0,1] and
// decays linearly. The presentation shakes by Trauma².
type Trauma struct {
	value float64
}

func (t *Trauma) Add(amount float64) {
	t.value = math.Min(1, t.value+amount)
}

func (t *Trauma) Decay(rate, dt float64) {
	t.value = math.Max(0, t.value-rate*dt)
}

func (t *Trauma) Value() float64 { return t.value }

func (t *Trauma) Reset() { t.value = 0 }

// Shake is the presentation offset scale.
func (t *Trauma) Shake(mult float64) float64 {
	return t.value * t.value * math.Max(0, mult)
}
