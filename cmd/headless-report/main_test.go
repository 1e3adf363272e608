package main

import (
	"testing"

	"github.com/Garsondee/threadweaver/internal/game"
)

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "powerup", Key: "pickup", Value: "shield"},
		{Tick: 9, Category: "powerup", Key: "pickup", Value: "wave_blast"},
		{Tick: 12, Category: "combat", Key: "kill", Value: "trail"},
	}
	if got := firstTick(entries, "powerup", "pickup", ""); got != 3 {
		t.Fatalf("expected first pickup at 3, got %d", got)
	}
	if got := firstTick(entries, "powerup", "pickup", "wave"); got != 9 {
		t.Fatalf("expected first wave pickup at 9, got %d", got)
	}
	if got := firstTick(entries, "run", "end", ""); got != -1 {
		t.Fatalf("expected -1 for a missing event, got %d", got)
	}
}

func TestResultCounts(t *testing.T) {
	all := []runStats{
		{outcome: game.RunOutcome{Result: game.ResultOverrun}},
		{outcome: game.RunOutcome{Result: game.ResultOverrun}},
		{outcome: game.RunOutcome{Result: game.ResultSurvived}},
	}
	if got := joinCounts(resultCounts(all)); got != "overrun=2,survived=1" {
		t.Fatalf("unexpected result counts: %s", got)
	}
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("expected none for empty counts, got %s", got)
	}
}

func TestAvgHelpers(t *testing.T) {
	if avg(10, 0) != 0 {
		t.Fatalf("avg over zero runs must be 0")
	}
	if avg(9, 2) != 4.5 {
		t.Fatalf("expected 4.5, got %.2f", avg(9, 2))
	}
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	if got := avgTickString([]int{60, 90}); got != "75.0" {
		t.Fatalf("expected 75.0, got %s", got)
	}
}

func TestRunSession_Deterministic(t *testing.T) {
	a, _ := runSession(1, 42, 600, true, false)
	b, _ := runSession(1, 42, 600, true, false)
	if a.kills != b.kills || a.spawned != b.spawned || a.score != b.score || a.damageTaken != b.damageTaken {
		t.Fatalf("same seed diverged: %+v vs %+v", a.outcome, b.outcome)
	}
	if a.spawned == 0 {
		t.Fatalf("expected hostiles within ten seconds")
	}
	if a.windowSummary == nil {
		t.Fatalf("expected reporter samples")
	}
}

func TestRunSession_StationaryStopsAtRunEnd(t *testing.T) {
	rs, ts := runSession(1, 5, 7200, false, false)
	if ts.Sim.Run().Active() {
		t.Skip("stationary player survived the full session")
	}
	if rs.endTick < 0 {
		t.Fatalf("ended run has no end marker")
	}
	if ts.CurrentTick() != rs.endTick {
		t.Fatalf("session kept ticking past the end: now=%d end=%d", ts.CurrentTick(), rs.endTick)
	}
}
