package game

import "math"

// Arena is the playable region. Positions are clamped into it (no wraparound).
// A rectangular arena is centred on the origin; an unbounded arena leaves
// positions untouched.
type Arena struct {
	HalfW, HalfH float64
	Unbounded    bool
}

// NewArena returns a w×h rectangle centred on the origin.
func NewArena(w, h float64) Arena {
	return Arena{HalfW: w / 2, HalfH: h / 2}
}

// UnboundedArena never clamps.
func UnboundedArena() Arena {
	return Arena{HalfW: math.Inf(1), HalfH: math.Inf(1), Unbounded: true}
}

// Clamp returns p moved onto the nearest point inside the arena.
func (a Arena) Clamp(p Vec2) Vec2 {
	if a.Unbounded {
		return p
	}
	return Vec2{
		X: clampF(p.X, -a.HalfW, a.HalfW),
		Y: clampF(p.Y, -a.HalfH, a.HalfH),
	}
}

// Contains reports whether p lies inside the arena (edges inclusive).
func (a Arena) Contains(p Vec2) bool {
	if a.Unbounded {
		return true
	}
	return p.X >= -a.HalfW && p.X <= a.HalfW && p.Y >= -a.HalfH && p.Y <= a.HalfH
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
