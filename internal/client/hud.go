package client

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/threadweaver/internal/game"
)

const (
	lineHeight    = 16
	feedTitleH    = 18
	feedHighlight = 3 // newest entries drawn on a highlighted row
)

// drawText uses the fixed 7x13 face; y is the baseline.
func drawText(img *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(img, s, basicfont.Face7x13, x, y, col)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := &g.snap
	g.drawStatus(screen)
	g.drawFeed(screen)

	switch {
	case snap.ShopOpen:
		g.drawShop(screen)
	case !snap.Active:
		g.drawGameOver(screen)
	case snap.Paused:
		g.drawBanner(screen, "PAUSED", "[Esc] resume  [Tab] shop  [R] restart")
	}

	if g.noticeTimer > 0 && g.notice != "" {
		f := float64(g.noticeTimer) / noticeTicks
		drawText(screen, g.notice, 12, g.height-12, fade(colorText, min(1, f*2)))
	}
}

// drawStatus is the top-left block: health, score, combo and buffs.
func (g *Game) drawStatus(screen *ebiten.Image) {
	snap := &g.snap
	x, y := 12, 10

	hp := snap.Player.Health
	vector.FillRect(screen, float32(x), float32(y), 160, 10, colorPanel, false)
	if hp.Max > 0 {
		f := float64(hp.Current) / float64(hp.Max)
		vector.FillRect(screen, float32(x), float32(y), float32(160*f), 10, barColor(f), false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), 160, 10, 1, colorPanelEdge, false)
	drawText(screen, fmt.Sprintf("%d/%d", hp.Current, hp.Max), x+168, y+10, colorText)
	y += 14 + lineHeight

	drawText(screen, fmt.Sprintf("score %d   best %d", snap.Score, snap.BestScore), x, y, colorText)
	y += lineHeight
	drawText(screen, fmt.Sprintf("threads %d", snap.Currency), x, y, colorProjectile)
	y += lineHeight

	if snap.ComboStreak > 1 {
		drawText(screen, fmt.Sprintf("combo x%d  (%.1fx)", snap.ComboStreak, snap.ComboMultiplier), x, y, colorProjectile)
		vector.FillRect(screen, float32(x), float32(y+3), float32(120*snap.ComboFraction), 3, colorProjectile, false)
		y += lineHeight
	}
	if snap.ShieldActive {
		drawText(screen, fmt.Sprintf("shield %.1fs", snap.ShieldRemaining), x, y, colorShield)
		y += lineHeight
	}
	if snap.WaveBlastRemaining > 0 {
		drawText(screen, fmt.Sprintf("wave blast %.1fs", snap.WaveBlastRemaining), x, y, colorProjectile)
		y += lineHeight
	}
	if snap.Player.AccuracyStacks > 0 {
		drawText(screen, fmt.Sprintf("accuracy +%d", snap.Player.AccuracyStacks), x, y, colorDim)
		y += lineHeight
	}

	if g.showReport {
		y += lineHeight / 2
		for _, line := range strings.Split(strings.TrimRight(g.reporter.WindowSummary().Format(), "\n"), "\n") {
			drawText(screen, line, x, y, colorDim)
			y += lineHeight
		}
	}
}

// drawFeed renders the event feed column on the right, newest at the bottom.
func (g *Game) drawFeed(screen *ebiten.Image) {
	panelX := g.width - feedPanelWidth
	px, ph := float32(panelX), float32(g.height)

	vector.FillRect(screen, px, 0, feedPanelWidth, ph, colorPanel, false)
	vector.StrokeLine(screen, px, 0, px, ph, 1, colorPanelEdge, false)
	vector.FillRect(screen, px, 0, feedPanelWidth, feedTitleH, colorHighlight, false)
	drawText(screen, "EVENTS", panelX+8, 13, colorText)
	vector.StrokeLine(screen, px, feedTitleH, px+feedPanelWidth, feedTitleH, 1, colorPanelEdge, false)

	entries := g.sim.Feed().Recent()
	maxVisible := (g.height - feedTitleH - 8) / lineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := feedTitleH + 4
	for i, e := range entries {
		recent := i >= len(entries)-feedHighlight
		if recent {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, lineHeight, colorHighlight, false)
		}
		col := feedTint(e.Kind)
		vector.FillRect(screen, px+5, float32(y+5), 3, 6, col, false)
		if !recent {
			col = fade(col, 0.6)
		}
		drawText(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y+12, col)
		y += lineHeight
	}
}

func (g *Game) drawShop(screen *ebiten.Image) {
	const w, rowH = 620, 20
	items := game.ShopItems
	h := feedTitleH + len(items)*rowH + 3*lineHeight
	viewW := g.width - feedPanelWidth
	x, y := (viewW-w)/2, (g.height-h)/2

	vector.FillRect(screen, float32(x), float32(y), w, float32(h), colorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), w, float32(h), 1, colorPanelEdge, false)
	drawText(screen, fmt.Sprintf("SHOP   threads %d", g.snap.Currency), x+10, y+14, colorText)

	ledger := g.sim.Ledger()
	rowY := y + feedTitleH + 4
	for i, item := range items {
		if i == g.shopCursor {
			vector.FillRect(screen, float32(x+2), float32(rowY), w-4, rowH, colorHighlight, false)
		}
		level := ledger.Level(item.Kind)
		price := fmt.Sprintf("%d", ledger.Cost(item.Kind))
		col := colorText
		switch {
		case ledger.IsMaxed(item.Kind):
			price, col = "max", colorDim
		case ledger.Cost(item.Kind) > g.snap.Currency:
			col = colorDim
		}
		line := fmt.Sprintf("%-16s %d/%d  %5s  %s", item.Name, level, item.MaxLevel, price, item.Description)
		drawText(screen, line, x+10, rowY+14, col)
		rowY += rowH
	}

	sel := g.snap.Levels.SelectedColor
	drawText(screen, fmt.Sprintf("colour: %s  (%d unlocked)", sel, len(g.snap.Levels.UnlockedColors)), x+10, rowY+lineHeight, playerTint(sel))
	drawText(screen, "[Up/Down] select  [Enter] buy  [Left/Right] colour  [Tab] close", x+10, rowY+2*lineHeight, colorDim)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	out := game.DetermineRunOutcome(g.sim)
	lines := []string{
		fmt.Sprintf("%s   grade %s (%.0f)", strings.ToUpper(strings.ReplaceAll(out.Result.String(), "_", " ")), out.Grade, out.Rating),
		fmt.Sprintf("score %d   best %d", out.Score, out.Best),
		fmt.Sprintf("kills %d   best streak %d", out.Kills, out.BestStreak),
		fmt.Sprintf("threads earned %d   balance %d", out.CurrencyEarned, out.Balance),
		"",
		"[R] restart  [Tab] shop  [C] copy summary",
	}
	g.drawPanel(screen, lines, colorWarn)
}

func (g *Game) drawBanner(screen *ebiten.Image, title, hint string) {
	g.drawPanel(screen, []string{title, "", hint}, colorText)
}

// drawPanel centres a bordered text block over the play view. The first line
// is drawn in titleCol.
func (g *Game) drawPanel(screen *ebiten.Image, lines []string, titleCol color.Color) {
	const padX, padY, charW = 14, 10, 7
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := maxLen*charW + padX*2
	h := len(lines)*lineHeight + padY*2
	viewW := g.width - feedPanelWidth
	x, y := (viewW-w)/2, (g.height-h)/2

	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), colorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colorPanelEdge, false)
	for i, l := range lines {
		var col color.Color = colorText
		if i == 0 {
			col = titleCol
		}
		drawText(screen, l, x+padX, y+padY+12+i*lineHeight, col)
	}
}
