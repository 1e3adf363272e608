package client

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/Garsondee/threadweaver/internal/game"
)

var (
	colorBackground = color.RGBA{R: 10, G: 12, B: 16, A: 255}
	colorArenaFloor = color.RGBA{R: 16, G: 20, B: 26, A: 255}
	colorGrid       = color.RGBA{R: 30, G: 38, B: 48, A: 255}
	colorBorder     = color.RGBA{R: 70, G: 90, B: 120, A: 255}
	colorPanel      = color.RGBA{R: 8, G: 10, B: 14, A: 230}
	colorPanelEdge  = color.RGBA{R: 50, G: 70, B: 90, A: 255}
	colorHighlight  = color.RGBA{R: 30, G: 42, B: 56, A: 200}
	colorDim        = color.RGBA{R: 140, G: 150, B: 160, A: 255}

	colorHostile    = colornames.Crimson
	colorHostileHit = colornames.Lightcoral
	colorTrail      = colornames.Aqua
	colorProjectile = colornames.Gold
	colorShield     = colornames.Deepskyblue
	colorText       = colornames.Whitesmoke
	colorWarn       = colornames.Orangered
	colorGood       = colornames.Palegreen
)

// playerColors maps each cosmetic unlock to its tint.
var playerColors = map[game.PlayerColor]color.RGBA{
	game.ColorDefault: colornames.White,
	game.ColorRed:     colornames.Tomato,
	game.ColorBlue:    colornames.Dodgerblue,
	game.ColorPurple:  colornames.Mediumpurple,
}

func playerTint(c game.PlayerColor) color.RGBA {
	if rgba, ok := playerColors[c]; ok {
		return rgba
	}
	return colornames.White
}

func powerUpTint(k game.PowerUpKind) color.RGBA {
	switch k {
	case game.PowerUpHealth:
		return colornames.Limegreen
	case game.PowerUpShield:
		return colornames.Deepskyblue
	case game.PowerUpCurrency:
		return colornames.Gold
	case game.PowerUpAccuracy:
		return colornames.Orchid
	case game.PowerUpWaveBlast:
		return colornames.Orange
	default:
		return colornames.Gray
	}
}

func particleTint(t game.ParticleTint) color.RGBA {
	switch t {
	case game.TintDeath:
		return colornames.Salmon
	case game.TintPickup:
		return colornames.Khaki
	default:
		return colornames.Lightyellow
	}
}

func feedTint(k game.FeedKind) color.RGBA {
	switch k {
	case game.FeedCombo:
		return colornames.Gold
	case game.FeedPickup:
		return colornames.Palegreen
	case game.FeedShop:
		return colornames.Lightskyblue
	default:
		return colornames.Whitesmoke
	}
}

// fade scales a premultiplied colour by f in [0,1].
func fade(c color.RGBA, f float64) color.RGBA {
	if f <= 0 {
		return color.RGBA{}
	}
	if f >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
