package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickWeighted_WalksInOrder(t *testing.T) {
	w := DefaultConfig().PowerUpWeights // 0.35 0.25 0.15 0.15 0.10

	cases := []struct {
		roll float64
		want PowerUpKind
	}{
		{0.0, PowerUpHealth},
		{0.34, PowerUpHealth},
		{0.36, PowerUpShield},
		{0.59, PowerUpShield},
		{0.61, PowerUpCurrency},
		{0.76, PowerUpAccuracy},
		{0.91, PowerUpWaveBlast},
		{0.999, PowerUpWaveBlast},
	}
	for _, tc := range cases {
		got, ok := pickWeighted(w, tc.roll)
		require.True(t, ok)
		assert.Equal(t, tc.want, got, "roll %.3f", tc.roll)
	}
}

func TestPickWeighted_BoundaryGoesToNextKind(t *testing.T) {
	w := [powerUpKindCount]float64{1, 1, 1, 1, 0}
	got, ok := pickWeighted(w, 0.25)
	require.True(t, ok)
	assert.Equal(t, PowerUpShield, got)

	got, _ = pickWeighted(w, 0.5)
	assert.Equal(t, PowerUpCurrency, got)
}

func TestPickWeighted_NormalisesAndSkipsZero(t *testing.T) {
	w := [powerUpKindCount]float64{0, 2, 0, 0, 6}
	got, _ := pickWeighted(w, 0.2)
	assert.Equal(t, PowerUpShield, got)
	got, _ = pickWeighted(w, 0.3)
	assert.Equal(t, PowerUpWaveBlast, got)

	_, ok := pickWeighted([powerUpKindCount]float64{}, 0.5)
	assert.False(t, ok)
}

func TestRollDrop_RespectsChance(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test

	cfg.PowerUpDropChance = 0
	for i := 0; i < 100; i++ {
		_, ok := rollDrop(rng, cfg)
		require.False(t, ok)
	}

	cfg.PowerUpDropChance = 1
	for i := 0; i < 100; i++ {
		_, ok := rollDrop(rng, cfg)
		require.True(t, ok)
	}
}
