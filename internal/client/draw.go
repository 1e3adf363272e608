package client

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/threadweaver/internal/game"
)

const (
	gridSpacing      = 100.0
	hostileRadius    = 12.0
	trailRadius      = 5.0
	projectileRadius = 4.0
	powerUpRadius    = 9.0
	particleRadius   = 2.5
)

// Draw renders the world, then the HUD and any overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawWorld(screen)
	g.drawHUD(screen)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	snap := &g.snap
	g.drawArena(screen)

	for _, t := range snap.Trail {
		x, y := g.cam.WorldToScreen(t.Pos)
		vector.FillCircle(screen, x, y, g.cam.Scale(trailRadius), fade(colorTrail, t.Fraction), true)
	}

	for _, p := range snap.PowerUps {
		x, y := g.cam.WorldToScreen(p.Pos)
		col := powerUpTint(p.Kind)
		// Blink through the last quarter of the lifetime.
		if p.Fraction < 0.25 && (snap.Tick/6)%2 == 0 {
			col = fade(col, 0.35)
		}
		r := g.cam.Scale(powerUpRadius)
		vector.FillCircle(screen, x, y, r, col, true)
		vector.StrokeCircle(screen, x, y, r+3, 1.5, fade(col, 0.6), true)
	}

	for _, p := range snap.Projectiles {
		x, y := g.cam.WorldToScreen(p.Pos)
		vector.FillCircle(screen, x, y, g.cam.Scale(projectileRadius), colorProjectile, true)
	}

	flash := snap.HitFreeze && (snap.Tick%2 == 0)
	for _, h := range snap.Hostiles {
		x, y := g.cam.WorldToScreen(h.Pos)
		col := colorHostile
		if flash {
			col = colorHostileHit
		}
		vector.FillCircle(screen, x, y, g.cam.Scale(hostileRadius), col, true)
	}

	for _, p := range snap.Particles {
		x, y := g.cam.WorldToScreen(p.Pos)
		vector.FillCircle(screen, x, y, g.cam.Scale(particleRadius), fade(particleTint(p.Tint), p.Fraction), false)
	}

	g.drawPlayer(screen)
}

// drawArena fills the play area and overlays a world-aligned grid.
func (g *Game) drawArena(screen *ebiten.Image) {
	arena := g.sim.Arena()
	viewW, viewH := float32(g.cam.ViewW), float32(g.cam.ViewH)

	left, top := float32(0), float32(0)
	right, bottom := viewW, viewH
	if !arena.Unbounded {
		x0, y0 := g.cam.WorldToScreen(game.V(-arena.HalfW, -arena.HalfH))
		x1, y1 := g.cam.WorldToScreen(game.V(arena.HalfW, arena.HalfH))
		left, top = max(left, x0), max(top, y0)
		right, bottom = min(right, x1), min(bottom, y1)
	}
	if right <= left || bottom <= top {
		return
	}
	vector.FillRect(screen, left, top, right-left, bottom-top, colorArenaFloor, false)

	// Grid lines start at the first multiple of gridSpacing inside the view.
	tl := g.cam.ScreenToWorld(float64(left), float64(top))
	br := g.cam.ScreenToWorld(float64(right), float64(bottom))
	for wx := math.Ceil(tl.X/gridSpacing) * gridSpacing; wx <= br.X; wx += gridSpacing {
		sx, _ := g.cam.WorldToScreen(game.V(wx, 0))
		vector.StrokeLine(screen, sx, top, sx, bottom, 1, colorGrid, false)
	}
	for wy := math.Ceil(tl.Y/gridSpacing) * gridSpacing; wy <= br.Y; wy += gridSpacing {
		_, sy := g.cam.WorldToScreen(game.V(0, wy))
		vector.StrokeLine(screen, left, sy, right, sy, 1, colorGrid, false)
	}

	if !arena.Unbounded {
		x0, y0 := g.cam.WorldToScreen(game.V(-arena.HalfW, -arena.HalfH))
		x1, y1 := g.cam.WorldToScreen(game.V(arena.HalfW, arena.HalfH))
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 3, colorBorder, false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.snap.Player
	if !p.Present {
		return
	}
	x, y := g.cam.WorldToScreen(p.Pos)
	r := g.cam.Scale(g.sim.Config().PlayerRadius)
	col := playerTint(p.Color)
	if !g.snap.Active {
		col = fade(col, 0.4)
	}
	vector.FillCircle(screen, x, y, r, col, true)

	// Heading tick along the velocity.
	if v := p.Vel; v.LenSq() > 1 {
		tip := p.Pos.Add(v.Normalize().Scale(g.sim.Config().PlayerRadius * 1.8))
		tx, ty := g.cam.WorldToScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 2, col, true)
	}

	if g.snap.ShieldActive {
		ring := fade(colorShield, 0.4+0.6*g.snap.ShieldFraction)
		vector.StrokeCircle(screen, x, y, r+6, 2.5, ring, true)
	}
	if g.snap.WaveBlastRemaining > 0 {
		vector.StrokeCircle(screen, x, y, r+11, 1.5, fade(colorProjectile, g.snap.WaveBlastFraction), true)
	}

	// Target marker.
	tx, ty := g.cam.WorldToScreen(g.snap.Target)
	vector.StrokeLine(screen, tx-5, ty, tx+5, ty, 1, colorDim, false)
	vector.StrokeLine(screen, tx, ty-5, tx, ty+5, 1, colorDim, false)
}

// barColor shades a fill fraction from warn to good.
func barColor(f float64) color.RGBA {
	switch {
	case f > 0.6:
		return colorGood
	case f > 0.3:
		return colorProjectile
	default:
		return colorWarn
	}
}
