package client

import (
	"math"
	"math/rand"

	"github.com/Garsondee/threadweaver/internal/game"
)

// maxShake is the screen offset in pixels at full shake.
const maxShake = 14.0

// Camera follows the player and maps world space to screen space. The world
// origin is the arena centre; screen Y grows downward like world Y.
type Camera struct {
	Center game.Vec2
	Zoom   float64
	ViewW  float64
	ViewH  float64

	shake game.Vec2
	rng   *rand.Rand
}

// NewCamera returns a camera for a view of w by h pixels.
func NewCamera(w, h int, seed int64) *Camera {
	return &Camera{
		Zoom:  1,
		ViewW: float64(w),
		ViewH: float64(h),
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
	}
}

// Follow eases the centre toward focus and rolls a fresh shake offset.
func (c *Camera) Follow(focus game.Vec2, shake float64) {
	c.Center = c.Center.Lerp(focus, 0.15)
	if shake <= 0 {
		c.shake = game.Vec2{}
		return
	}
	angle := c.rng.Float64() * 2 * math.Pi // #nosec G404 -- cosmetic only
	c.shake = game.FromAngle(angle).Scale(shake * maxShake)
}

// Snap moves the centre without easing.
func (c *Camera) Snap(focus game.Vec2) { c.Center = focus }

func (c *Camera) WorldToScreen(p game.Vec2) (float32, float32) {
	x := (p.X-c.Center.X)*c.Zoom + c.ViewW/2 + c.shake.X
	y := (p.Y-c.Center.Y)*c.Zoom + c.ViewH/2 + c.shake.Y
	return float32(x), float32(y)
}

// ScreenToWorld inverts WorldToScreen, ignoring shake so input stays steady.
func (c *Camera) ScreenToWorld(x, y float64) game.Vec2 {
	return game.V(
		(x-c.ViewW/2)/c.Zoom+c.Center.X,
		(y-c.ViewH/2)/c.Zoom+c.Center.Y,
	)
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(l float64) float32 { return float32(l * c.Zoom) }
