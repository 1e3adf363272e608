package game

import "math"

// Vec2 is a 2D world-space vector. Y grows upward in world space; the
// presentation layer flips it when drawing.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2  { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64        { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64          { return math.Hypot(a.X, a.Y) }
func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).LenSq() }
func (a Vec2) IsZero() bool          { return a.X == 0 && a.Y == 0 }

// Perp returns the vector rotated 90° counter-clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Normalize returns the unit vector, or zero for a zero-length input.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Lerp moves a toward b by fraction t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// ClampLen limits the magnitude to max, preserving direction.
func (a Vec2) ClampLen(max float64) Vec2 {
	lsq := a.LenSq()
	if lsq <= max*max || lsq == 0 {
		return a
	}
	return a.Scale(max / math.Sqrt(lsq))
}

// FromAngle returns the unit vector at angle radians.
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// within reports whether a and b are no further apart than radius.
func within(a, b Vec2, radius float64) bool {
	return a.DistSq(b) <= radius*radius
}
