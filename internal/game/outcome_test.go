package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfLetterGrade(t *testing.T) {
	cases := map[float64]string{100: "A+", 90: "A", 80: "B+", 72: "B", 65: "C+", 56: "C", 50: "D", 10: "F"}
	for score, want := range cases {
		assert.Equal(t, want, PerfLetterGrade(score), "score %.0f", score)
	}
}

func TestRunOutcome_InProgressFreshRun(t *testing.T) {
	ts := NewTestSim(WithoutSpawns())
	ts.RunTicks(60)

	o := DetermineRunOutcome(ts.Sim)
	assert.Equal(t, ResultInProgress, o.Result)
	assert.InDelta(t, 1.0, o.Survived, 1e-6)
	// 40*(1/180) for time plus full resilience.
	assert.InDelta(t, 40.0/180+15, o.Rating, 1e-6)
	assert.Equal(t, "F", o.Grade)
}

func TestRunOutcome_EarlyOverrun(t *testing.T) {
	ts := NewTestSim(
		WithoutSpawns(),
		WithTuning(func(c *Config) { c.PlayerMaxHealth = 1 }),
		WithHostileAt(10, 0, 0, 3),
	)
	ts.RunTicks(1)

	o := DetermineRunOutcome(ts.Sim)
	assert.Equal(t, ResultOverrunEarly, o.Result)
	assert.Equal(t, uint32(1), o.DamageTaken)
	assert.Contains(t, o.Summary(), "overrun_early")
}

func TestRunOutcome_SurvivedAfterTarget(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithoutTrail())
	ts.DT = 1
	ts.RunTicks(181)

	o := DetermineRunOutcome(ts.Sim)
	require.Equal(t, ResultSurvived, o.Result)
	assert.InDelta(t, 55.0, o.Rating, 1e-9)
	assert.Equal(t, "C", o.Grade)
	assert.Contains(t, o.Summary(), "survived 3:01")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "2:05", formatDuration(125.9))
}
