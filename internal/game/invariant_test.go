package game

import (
	"testing"

	"github.com/yohamta/donburi"
)

// --- Invariant helpers ---

// checkHealthBounded verifies current health never exceeds max.
func checkHealthBounded(t *testing.T, ts *TestSim) bool {
	t.Helper()
	hp := ts.PlayerData().Health
	if hp.Current > hp.Max {
		t.Errorf("T=%d health %d exceeds max %d", ts.CurrentTick(), hp.Current, hp.Max)
		return false
	}
	return true
}

// checkSinglePlayer verifies exactly one player entity exists.
func checkSinglePlayer(t *testing.T, ts *TestSim) bool {
	t.Helper()
	if n := playerQuery.Count(ts.Sim.world); n != 1 {
		t.Errorf("T=%d expected one player, found %d", ts.CurrentTick(), n)
		return false
	}
	return true
}

// checkTrailAlive verifies no expired trail segment survives a tick.
func checkTrailAlive(t *testing.T, ts *TestSim) bool {
	t.Helper()
	ok := true
	trailQuery.Each(ts.Sim.world, func(entry *donburi.Entry) {
		if tr := Trail.Get(entry); ok && tr.Remaining <= 0 {
			t.Errorf("T=%d trail segment with remaining %.4f still present", ts.CurrentTick(), tr.Remaining)
			ok = false
		}
	})
	return ok
}

// checkProjectilesYoung verifies every projectile is younger than its lifetime.
func checkProjectilesYoung(t *testing.T, ts *TestSim) bool {
	t.Helper()
	ok := true
	projectileQuery.Each(ts.Sim.world, func(entry *donburi.Entry) {
		if p := Projectile.Get(entry); ok && p.Age >= p.Lifetime {
			t.Errorf("T=%d projectile age %.3f >= lifetime %.3f", ts.CurrentTick(), p.Age, p.Lifetime)
			ok = false
		}
	})
	return ok
}

// checkSpawnFloor verifies the ramp never drops below its floor.
func checkSpawnFloor(t *testing.T, ts *TestSim) bool {
	t.Helper()
	floor := ts.Sim.Config().EnemySpawnMin
	if iv := ts.Sim.SpawnInterval(); iv < floor {
		t.Errorf("T=%d spawn interval %.4f below floor %.4f", ts.CurrentTick(), iv, floor)
		return false
	}
	return true
}

// checkInsideArena verifies the player never leaves the play area.
func checkInsideArena(t *testing.T, ts *TestSim) bool {
	t.Helper()
	pos := ts.PlayerPos()
	if !ts.Sim.Arena().Contains(pos) {
		t.Errorf("T=%d player at %s outside arena", ts.CurrentTick(), formatVec(pos))
		return false
	}
	return true
}

// runChecked advances ts for ticks, running every invariant after each tick
// and stopping at the first violation.
func runChecked(t *testing.T, ts *TestSim, ticks int) {
	t.Helper()
	lastBalance := ts.Sim.Ledger().Balance()
	for i := 0; i < ticks; i++ {
		ts.RunTicks(1)
		ok := checkHealthBounded(t, ts) &&
			checkSinglePlayer(t, ts) &&
			checkTrailAlive(t, ts) &&
			checkProjectilesYoung(t, ts) &&
			checkSpawnFloor(t, ts) &&
			checkInsideArena(t, ts)
		if !ok {
			return
		}
		bal := ts.Sim.Ledger().Balance()
		if bal < lastBalance {
			t.Errorf("T=%d balance fell from %d to %d without a purchase", ts.CurrentTick(), lastBalance, bal)
			return
		}
		lastBalance = bal
	}
}

// --- Invariant scenarios ---

func TestInvariant_AutopilotRuns(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		ts := NewTestSim(WithSeed(seed), WithAutopilot())
		runChecked(t, ts, 3600)
		st := ts.Sim.Stats()
		t.Logf("seed %d: kills=%d spawned=%d damage=%d active=%v",
			seed, st.Kills, st.HostilesSpawned, st.DamageTaken, ts.Sim.Run().Active())
	}
}

func TestInvariant_WaveBlastRun(t *testing.T) {
	ts := NewTestSim(WithSeed(9), WithAutopilot(), WithShield(60), WithWaveBlast(30))
	runChecked(t, ts, 1800)
	if ts.Sim.Stats().VolleysFired == 0 {
		t.Errorf("expected volleys while the wave blast was armed")
	}
}

func TestInvariant_StationaryPlayerOverrun(t *testing.T) {
	ts := NewTestSim(WithSeed(5), WithoutTrail())
	runChecked(t, ts, 3600)
	if ts.Sim.Run().Active() {
		t.Errorf("a defenceless stationary player should be overrun within a minute")
	}
	if hp := ts.PlayerData().Health; hp.Current != 0 {
		t.Errorf("overrun run ended with health %d", hp.Current)
	}
}

func TestInvariant_HostilesStayDeadOnceRemoved(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithoutDrops(),
		WithHostileAt(200, 0, 0, 3),
		WithTrailAt(200, 0, 10, 3),
	)
	entry, _ := hostileQuery.First(ts.Sim.world)
	e := entry.Entity()
	ts.RunTicks(1)
	if ts.Sim.world.Valid(e) {
		t.Fatalf("killed hostile entity is still valid")
	}
	ts.RunTicks(120)
	if ts.HostileCount() != 0 {
		t.Errorf("expected no hostiles, found %d", ts.HostileCount())
	}
}
