package game

import "math"

// --- Health ---

// Health is a saturating hit-point counter. Current never exceeds Max.
type Health struct {
	Current uint32
	Max     uint32
}

// NewHealth returns full health.
func NewHealth(max uint32) Health {
	return Health{Current: max, Max: max}
}

// Damage subtracts amount, stopping at zero.
func (h *Health) Damage(amount uint32) {
	if amount >= h.Current {
		h.Current = 0
		return
	}
	h.Current -= amount
}

// Heal adds amount, capped at Max.
func (h *Health) Heal(amount uint32) {
	if h.Max-h.Current <= amount {
		h.Current = h.Max
		return
	}
	h.Current += amount
}

// SetMax changes the ceiling, pulling Current down if it now exceeds it.
func (h *Health) SetMax(max uint32) {
	h.Max = max
	if h.Current > max {
		h.Current = max
	}
}

// Refill restores Current to Max.
func (h *Health) Refill() { h.Current = h.Max }

func (h Health) IsDead() bool { return h.Current == 0 }

// Fraction is Current/Max in [0,1].
func (h Health) Fraction() float64 {
	if h.Max == 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// --- Weapon ---

// WeaponMode is derived each tick from the wave-blast buff.
type WeaponMode int

const (
	WeaponTrail WeaponMode = iota
	WeaponWave
)

func (w WeaponMode) String() string {
	switch w {
	case WeaponTrail:
		return "trail"
	case WeaponWave:
		return "wave"
	default:
		return "unknown"
	}
}

// --- Combat stats ---

// CombatStats carries the player's run-local weapon state.
type CombatStats struct {
	BaseTrailDamage float64
	AccuracyStacks  uint32
}

// AddAccuracy adds one stack up to maxStacks.
func (c *CombatStats) AddAccuracy(maxStacks uint32) bool {
	if c.AccuracyStacks >= maxStacks {
		return false
	}
	c.AccuracyStacks++
	return true
}

// DamageMultiplier is the accuracy bonus applied to trail damage.
func (c CombatStats) DamageMultiplier(step float64) float64 {
	return 1 + step*float64(c.AccuracyStacks)
}

// MoveMultiplier is the accuracy bonus applied to player movement.
func (c CombatStats) MoveMultiplier(step, capBonus float64) float64 {
	return 1 + math.Min(step*float64(c.AccuracyStacks), capBonus)
}
