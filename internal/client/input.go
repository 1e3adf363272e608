package client

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/threadweaver/internal/game"
)

const (
	touchDeadzone    = 12.0 // world units a touch must move before the target follows
	stickStep        = 12.0 // world units per tick at full deflection
	stickDeadzone    = 0.15
	stickAxisX       = 0
	stickAxisY       = 1
	noCursorSentinel = -1 << 30
)

// InputFuser folds cursor, touch and gamepad input into the single world
// target the simulation steers toward. The target is always inside the arena.
type InputFuser struct {
	arena  game.Arena
	target game.Vec2

	lastCursorX, lastCursorY int
	touchIDs                 []ebiten.TouchID
	gamepadIDs               []ebiten.GamepadID
}

// NewInputFuser starts with the target at the arena centre.
func NewInputFuser(arena game.Arena) *InputFuser {
	return &InputFuser{
		arena:       arena,
		lastCursorX: noCursorSentinel,
		lastCursorY: noCursorSentinel,
	}
}

func (f *InputFuser) Target() game.Vec2 { return f.target }

// Reset recentres the target and forgets the last cursor position so a
// stationary mouse does not yank the player on the next run.
func (f *InputFuser) Reset() {
	f.target = game.Vec2{}
	f.lastCursorX, f.lastCursorY = noCursorSentinel, noCursorSentinel
}

// Pointer moves the target to p.
func (f *InputFuser) Pointer(p game.Vec2) {
	f.target = f.arena.Clamp(p)
}

// Touch follows p once it is more than the drag deadzone from the target.
func (f *InputFuser) Touch(p game.Vec2) {
	if p.DistSq(f.target) > touchDeadzone*touchDeadzone {
		f.target = p
	}
	f.target = f.arena.Clamp(f.target)
}

// Stick integrates a left-stick deflection into the target.
func (f *InputFuser) Stick(ax, ay float64) {
	if math.Abs(ax) < stickDeadzone {
		ax = 0
	}
	if math.Abs(ay) < stickDeadzone {
		ay = 0
	}
	f.target = f.arena.Clamp(f.target.Add(game.V(ax, ay).Scale(stickStep)))
}

// Poll samples every device for this frame. Cursor input only counts when
// the cursor actually moved, so touch and gamepad are not overridden by a
// resting mouse.
func (f *InputFuser) Poll(cam *Camera) {
	cx, cy := ebiten.CursorPosition()
	if cx != f.lastCursorX || cy != f.lastCursorY {
		if f.lastCursorX != noCursorSentinel {
			f.Pointer(cam.ScreenToWorld(float64(cx), float64(cy)))
		}
		f.lastCursorX, f.lastCursorY = cx, cy
	}

	f.touchIDs = ebiten.AppendTouchIDs(f.touchIDs[:0])
	for _, id := range f.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		f.Touch(cam.ScreenToWorld(float64(tx), float64(ty)))
	}

	f.gamepadIDs = ebiten.AppendGamepadIDs(f.gamepadIDs[:0])
	for _, id := range f.gamepadIDs {
		f.Stick(ebiten.GamepadAxisValue(id, stickAxisX), ebiten.GamepadAxisValue(id, stickAxisY))
	}
}
