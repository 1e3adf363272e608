package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_ClampRectangle(t *testing.T) {
	a := NewArena(100, 50)
	assert.Equal(t, V(50, -25), a.Clamp(V(80, -90)))
	assert.Equal(t, V(10, 10), a.Clamp(V(10, 10)))
	assert.True(t, a.Contains(V(50, 25)))
	assert.False(t, a.Contains(V(50.1, 0)))
}

func TestArena_Unbounded(t *testing.T) {
	a := UnboundedArena()
	far := V(1e9, -1e9)
	assert.Equal(t, far, a.Clamp(far))
	assert.True(t, a.Contains(far))
}

func TestConfig_ArenaSize(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 2500.0, cfg.arena().HalfW, 1e-9)

	cfg.ArenaSize = 0
	assert.True(t, cfg.arena().Unbounded)
}

func TestVec2_Helpers(t *testing.T) {
	v := V(3, 4)
	assert.InDelta(t, 5.0, v.Len(), 1e-9)
	assert.InDelta(t, 1.0, v.Normalize().Len(), 1e-9)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.Equal(t, V(-4, 3), v.Perp())
	assert.InDelta(t, 2.5, v.ClampLen(2.5).Len(), 1e-9)
	assert.Equal(t, v, v.ClampLen(10))
	assert.Equal(t, V(1.5, 2), Vec2{}.Lerp(v, 0.5))

	u := FromAngle(math.Pi / 2)
	assert.InDelta(t, 0.0, u.X, 1e-9)
	assert.InDelta(t, 1.0, u.Y, 1e-9)

	assert.True(t, within(V(0, 0), V(3, 4), 5))
	assert.False(t, within(V(0, 0), V(3, 4), 4.99))
}
