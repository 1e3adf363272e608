package game

import "math/rand"

// PowerUpKind identifies a collectible.
type PowerUpKind int

// Drop-table order. The weighted roll walks kinds in this order.
const (
	PowerUpHealth PowerUpKind = iota
	PowerUpShield
	PowerUpCurrency
	PowerUpAccuracy
	PowerUpWaveBlast

	powerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpShield:
		return "shield"
	case PowerUpCurrency:
		return "currency"
	case PowerUpAccuracy:
		return "accuracy"
	case PowerUpWaveBlast:
		return "wave_blast"
	default:
		return "unknown"
	}
}

// pickWeighted maps a uniform roll in [0,1) onto weights. The weights are
// normalised; a roll landing exactly on a cumulative boundary selects the
// next kind. Non-positive weights never win. ok is false when every weight
// is non-positive.
func pickWeighted(weights [powerUpKindCount]float64, roll float64) (PowerUpKind, bool) {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, false
	}
	target := roll * total
	cum := 0.0
	last := PowerUpKind(-1)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = PowerUpKind(i)
		if target < cum {
			return last, true
		}
	}
	// roll rounding past the final boundary lands on the last positive kind
	return last, true
}

// rollDrop decides whether a kill drops a power-up and which one.
func rollDrop(rng *rand.Rand, cfg Config) (PowerUpKind, bool) {
	if rng.Float64() >= cfg.PowerUpDropChance { // #nosec G404 -- gameplay randomness
		return 0, false
	}
	return pickWeighted(cfg.PowerUpWeights, rng.Float64()) // #nosec G404 -- gameplay randomness
}
