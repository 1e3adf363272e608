// Package client is the ebiten presentation layer: it fuses input into a
// target, ticks the simulation once per frame and draws its snapshot.
package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/threadweaver/internal/game"
)

// feedPanelWidth is the event feed column on the right of the window.
const feedPanelWidth = 300

// noticeTicks is how long a shop or clipboard notice stays on screen.
const noticeTicks = 120

type Game struct {
	sim      *game.Sim
	input    *InputFuser
	cam      *Camera
	reporter *game.SimReporter
	snap     game.Snapshot

	width  int
	height int

	shopCursor  int
	notice      string
	noticeTimer int
	showReport  bool

	copyText func(string) error
}

// New wraps sim for a window of width by height pixels.
func New(sim *game.Sim, width, height int, seed int64) *Game {
	g := &Game{
		sim:      sim,
		input:    NewInputFuser(sim.Arena()),
		cam:      NewCamera(width-feedPanelWidth, height, seed),
		reporter: game.NewSimReporter(0),
		width:    width,
		height:   height,
		copyText: copyToClipboard,
	}
	g.snap = sim.Snapshot()
	return g
}

func (g *Game) Update() error {
	g.handleKeys()

	if g.sim.Run().Running() {
		g.input.Poll(g.cam)
	}
	g.sim.Tick(1/float64(ebiten.TPS()), g.input.Target())
	g.snap = g.sim.Snapshot()

	// Hit freeze holds the camera for a few frames; the sim keeps going.
	if !g.snap.HitFreeze {
		g.cam.Follow(g.snap.Player.Pos, g.snap.Shake)
	}

	if g.snap.Tick%60 == 0 {
		g.reporter.Collect(g.sim)
	}
	if g.noticeTimer > 0 {
		g.noticeTimer--
	}
	return nil
}

// handleKeys processes edge-triggered keyboard and gamepad commands.
func (g *Game) handleKeys() {
	run := g.sim.Run()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if g.sim.ShopOpen() {
			g.sim.CloseShop()
		} else {
			g.sim.OpenShop()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) || g.gamepadJustPressed(ebiten.StandardGamepadButtonCenterRight) {
		if g.sim.ShopOpen() {
			g.sim.CloseShop()
		} else {
			g.sim.TogglePause()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) || (!run.Active() && g.gamepadJustPressed(ebiten.StandardGamepadButtonRightBottom)) {
		g.restart()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showReport = !g.showReport
	}

	if !run.Active() && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySummary()
	}

	if g.sim.ShopOpen() {
		g.handleShopKeys()
	}
}

func (g *Game) handleShopKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.shopCursor = stepShopCursor(g.shopCursor, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.shopCursor = stepShopCursor(g.shopCursor, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.cycleColor(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.cycleColor(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace):
		item := game.ShopItems[g.shopCursor]
		res := g.sim.Purchase(item.Kind)
		g.setNotice(purchaseNotice(item, res, g.sim.Ledger().Level(item.Kind)))
	}
}

func (g *Game) gamepadJustPressed(b ebiten.StandardGamepadButton) bool {
	for _, id := range g.input.gamepadIDs {
		if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
			return true
		}
	}
	return false
}

func (g *Game) restart() {
	g.sim.Restart()
	g.input.Reset()
	g.cam.Snap(game.Vec2{})
	g.reporter = game.NewSimReporter(0)
}

func (g *Game) cycleColor(delta int) {
	levels := g.sim.Ledger().Levels()
	next := nextUnlockedColor(levels, delta)
	if next != levels.SelectedColor && g.sim.SelectColor(next) {
		g.setNotice(fmt.Sprintf("colour: %s", next))
	}
}

func (g *Game) copySummary() {
	summary := game.DetermineRunOutcome(g.sim).Summary()
	if err := g.copyText(summary); err != nil {
		g.setNotice(fmt.Sprintf("copy failed: %v", err))
		return
	}
	g.setNotice("run summary copied")
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTimer = noticeTicks
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// --- Shop helpers ---

// stepShopCursor moves the shop selection, wrapping at both ends.
func stepShopCursor(cur, delta int) int {
	n := len(game.ShopItems)
	return ((cur+delta)%n + n) % n
}

// nextUnlockedColor returns the unlocked colour delta steps from the
// selected one, in unlock order.
func nextUnlockedColor(levels game.UpgradeLevels, delta int) game.PlayerColor {
	colors := levels.UnlockedColors
	if len(colors) == 0 {
		return game.ColorDefault
	}
	idx := 0
	for i, c := range colors {
		if c == levels.SelectedColor {
			idx = i
			break
		}
	}
	n := len(colors)
	return colors[((idx+delta)%n+n)%n]
}

func purchaseNotice(item game.ShopItem, res game.PurchaseResult, level uint32) string {
	switch res {
	case game.PurchaseOK:
		return fmt.Sprintf("bought %s (level %d)", item.Name, level)
	case game.PurchaseMaxed:
		return fmt.Sprintf("%s is maxed", item.Name)
	case game.PurchaseInsufficientFunds:
		return fmt.Sprintf("not enough threads for %s", item.Name)
	default:
		return "unknown item"
	}
}
