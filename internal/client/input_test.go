package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Garsondee/threadweaver/internal/game"
)

func TestInputFuser_PointerClamps(t *testing.T) {
	f := NewInputFuser(game.NewArena(1000, 1000))
	f.Pointer(game.V(120, -80))
	assert.Equal(t, game.V(120, -80), f.Target())

	f.Pointer(game.V(9000, -9000))
	assert.Equal(t, game.V(500, -500), f.Target())
}

func TestInputFuser_TouchDeadzone(t *testing.T) {
	f := NewInputFuser(game.NewArena(1000, 1000))
	f.Touch(game.V(5, 5))
	assert.Equal(t, game.Vec2{}, f.Target(), "inside the drag deadzone")

	f.Touch(game.V(30, 0))
	assert.Equal(t, game.V(30, 0), f.Target())

	f.Touch(game.V(2000, 0))
	assert.Equal(t, game.V(500, 0), f.Target())
}

func TestInputFuser_StickIntegrates(t *testing.T) {
	f := NewInputFuser(game.NewArena(1000, 1000))
	f.Stick(1, 0)
	f.Stick(1, 0)
	assert.InDelta(t, 2*stickStep, f.Target().X, 1e-9)

	f.Stick(0.1, -0.1)
	assert.InDelta(t, 2*stickStep, f.Target().X, 1e-9, "deflection below the deadzone is ignored")
	assert.Zero(t, f.Target().Y)

	for i := 0; i < 100; i++ {
		f.Stick(0, 1)
	}
	assert.Equal(t, 500.0, f.Target().Y)
}

func TestInputFuser_Reset(t *testing.T) {
	f := NewInputFuser(game.UnboundedArena())
	f.Pointer(game.V(1e5, 1e5))
	assert.Equal(t, game.V(1e5, 1e5), f.Target())

	f.lastCursorX, f.lastCursorY = 10, 10
	f.Reset()
	assert.Equal(t, game.Vec2{}, f.Target())
	assert.Equal(t, noCursorSentinel, f.lastCursorX)
}
