package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quiet is the common baseline for scripted combat: no ramp, no trail from
// the player, no random drops.
func quiet(opts ...SimOption) *TestSim {
	base := []SimOption{WithoutSpawns(), WithoutTrail(), WithoutDrops()}
	return NewTestSim(append(base, opts...)...)
}

func firstHostile(t *testing.T, ts *TestSim) (pos, kb Vec2) {
	t.Helper()
	entry, ok := hostileQuery.First(ts.Sim.world)
	require.True(t, ok, "expected a live hostile")
	return *Position.Get(entry), *Knockback.Get(entry)
}

// --- Weapon hits ---

func TestCombat_TrailKillAwardsAndBursts(t *testing.T) {
	ts := quiet(
		WithHostileAt(200, 0, 0, 3),
		WithTrailAt(200, 0, 10, 3),
	)
	ts.RunTicks(1)

	assert.Zero(t, ts.HostileCount())
	snap := ts.Sim.Snapshot()
	assert.Equal(t, uint32(10), snap.Score)
	assert.Equal(t, uint32(1), snap.Currency)
	assert.Equal(t, uint32(1), snap.ComboStreak)
	assert.Equal(t, 20, ts.ParticleCount(), "death burst")
	assert.True(t, snap.HitFreeze)
	assert.InDelta(t, 0.25-3.0/60, snap.Trauma, 1e-9)
	assert.Equal(t, 1, snap.Stats.Kills)
	assert.True(t, ts.SimLog.HasEntry("combat", "kill", "trail"))
}

func TestCombat_OneSourcePerHostilePerTick(t *testing.T) {
	ts := quiet(
		WithHostileAt(200, 0, 0, 5),
		WithTrailAt(200, 0, 10, 1),
		WithTrailAt(205, 0, 10, 1),
		WithTrailAt(195, 0, 10, 1),
	)
	ts.RunTicks(1)

	hs := ts.Hostiles()
	require.Len(t, hs, 1)
	assert.InDelta(t, 4.0, hs[0].Health, 1e-9)
	assert.Equal(t, 1, ts.Sim.Stats().Hits)
	assert.Equal(t, 3, ts.ParticleCount(), "hit sparks")
}

func TestCombat_KnockbackSetAwayFromSource(t *testing.T) {
	levels := DefaultUpgradeLevels()
	levels.EnemyKnockback = 1
	ts := quiet(
		WithUpgrades(levels),
		WithHostileAt(200, 0, 0, 10),
		WithTrailAt(200, -5, 10, 3),
	)
	ts.RunTicks(1)

	_, kb := firstHostile(t, ts)
	assert.InDelta(t, 0.0, kb.X, 1e-9)
	assert.InDelta(t, 375.0, kb.Y, 1e-9)
	assert.InDelta(t, 7.0, ts.Hostiles()[0].Health, 1e-9)
}

func TestCombat_WaveProjectileKill(t *testing.T) {
	ts := quiet(WithHostileAt(0, 300, 0, 2))
	spawnProjectile(ts.Sim.world, V(0, 300), Vec2{}, 2, 2, 0)
	ts.RunTicks(1)

	assert.Zero(t, ts.HostileCount())
	assert.Equal(t, 1, ts.ProjectileCount(), "projectiles pierce")
	assert.True(t, ts.SimLog.HasEntry("combat", "kill", "wave"))
}

func TestCombat_SimultaneousKillsChainCombo(t *testing.T) {
	ts := quiet(
		WithHostileAt(200, 0, 0, 3),
		WithHostileAt(0, 200, 0, 3),
		WithHostileAt(-200, 0, 0, 3),
		WithTrailAt(200, 0, 10, 3),
		WithTrailAt(0, 200, 10, 3),
		WithTrailAt(-200, 0, 10, 3),
	)
	ts.RunTicks(1)

	snap := ts.Sim.Snapshot()
	assert.Equal(t, uint32(45), snap.Score, "10 + 15 + 20")
	assert.Equal(t, uint32(3), snap.ComboStreak)
	assert.Equal(t, uint32(3), snap.Currency)
	assert.Equal(t, uint32(3), snap.Stats.BestStreak)
}

func TestCombat_GuaranteedDropSpawnsAtDeath(t *testing.T) {
	ts := NewTestSim(
		WithoutSpawns(), WithoutTrail(),
		WithTuning(func(c *Config) { c.PowerUpDropChance = 1 }),
		WithHostileAt(200, 0, 0, 1),
		WithTrailAt(200, 0, 10, 3),
	)
	ts.RunTicks(1)

	snap := ts.Sim.Snapshot()
	require.Len(t, snap.PowerUps, 1)
	assert.Equal(t, V(200, 0), snap.PowerUps[0].Pos)
	assert.True(t, ts.SimLog.HasEntry("powerup", "drop", ""))
}

// --- Player contact ---

func TestCombat_ContactDamagesAndKnocksBack(t *testing.T) {
	ts := quiet(WithHostileAt(10, 0, 0, 3))
	ts.RunTicks(1)

	assert.Zero(t, ts.HostileCount(), "touching hostiles are destroyed")
	assert.Equal(t, uint32(3), ts.PlayerData().Health.Current)

	entry, ok := ts.Sim.playerEntry()
	require.True(t, ok)
	assert.InDelta(t, -200.0, Knockback.Get(entry).X, 1e-9)
	assert.Equal(t, uint32(1), ts.Sim.Stats().DamageTaken)
	assert.True(t, ts.Sim.Run().Active())
}

func TestCombat_EveryTouchingHostileDamages(t *testing.T) {
	ts := quiet(
		WithHostileAt(5, 0, 0, 3),
		WithHostileAt(0, 5, 0, 3),
		WithHostileAt(-5, 0, 0, 3),
	)
	ts.RunTicks(1)

	assert.Zero(t, ts.HostileCount())
	assert.Equal(t, uint32(1), ts.PlayerData().Health.Current)
	assert.Equal(t, uint32(3), ts.Sim.Stats().DamageTaken)
}

func TestCombat_ShieldBlocksContact(t *testing.T) {
	ts := quiet(WithShield(5), WithHostileAt(10, 0, 0, 3))
	ts.RunTicks(1)

	assert.Zero(t, ts.HostileCount())
	assert.Equal(t, uint32(4), ts.PlayerData().Health.Current)
	assert.Equal(t, 1, ts.Sim.Stats().ShieldBlocks)
	assert.Zero(t, ts.Sim.Stats().DamageTaken)
}

func TestCombat_KillThenContactPenalises(t *testing.T) {
	ts := quiet(
		WithHostileAt(200, 0, 0, 3),
		WithTrailAt(200, 0, 10, 3),
		WithHostileAt(10, 0, 0, 3),
	)
	ts.RunTicks(1)

	assert.Equal(t, uint32(5), ts.Sim.Score().Current)
	assert.Equal(t, uint32(10), ts.Sim.Score().Best)
}

func TestCombat_PenaltySaturatesAtZero(t *testing.T) {
	ts := quiet(WithHostileAt(10, 0, 0, 3))
	ts.RunTicks(1)
	assert.Zero(t, ts.Sim.Score().Current)
}

func TestCombat_ZeroHealthEndsRun(t *testing.T) {
	ts := quiet(
		WithTuning(func(c *Config) { c.PlayerMaxHealth = 1 }),
		WithHostileAt(10, 0, 0, 3),
	)
	ts.RunTicks(1)

	assert.False(t, ts.Sim.Run().Active())
	assert.True(t, ts.PlayerData().Health.IsDead())
	_, ok := ts.SimLog.LastOf("run", "end")
	assert.True(t, ok)

	// An ended run no longer moves anything.
	ts.Target = V(500, 0)
	ts.RunTicks(30)
	assert.Equal(t, Vec2{}, ts.PlayerPos())
}

func TestCombat_ContactsAfterFatalHitStillResolve(t *testing.T) {
	ts := quiet(
		WithTuning(func(c *Config) { c.PlayerMaxHealth = 1 }),
		WithHostileAt(5, 0, 0, 3),
		WithHostileAt(-5, 0, 0, 3),
	)
	ts.RunTicks(1)

	assert.False(t, ts.Sim.Run().Active())
	assert.Zero(t, ts.HostileCount(), "every touching hostile is removed")
	assert.Zero(t, ts.PlayerData().Health.Current)
	assert.Equal(t, uint32(2), ts.Sim.Stats().DamageTaken)
	assert.Equal(t, 1, ts.SimLog.Count("run", "end"), "the run ends once")
}

func TestCombat_DeathTickSkipsPickups(t *testing.T) {
	ts := quiet(
		WithTuning(func(c *Config) { c.PlayerMaxHealth = 1 }),
		WithHostileAt(5, 0, 0, 3),
		WithPowerUpAt(0, 0, PowerUpHealth),
	)
	ts.RunTicks(1)

	require.False(t, ts.Sim.Run().Active())
	assert.Zero(t, ts.PlayerData().Health.Current, "no heal after the fatal hit")
	assert.Equal(t, 1, ts.PowerUpCount(), "power-up stays on the ground")
	assert.Zero(t, ts.Sim.Stats().Pickups)
}

// --- Pickups ---

func TestPickup_Effects(t *testing.T) {
	t.Run("currency", func(t *testing.T) {
		ts := quiet(WithPowerUpAt(0, 0, PowerUpCurrency))
		ts.RunTicks(1)
		assert.Equal(t, uint32(5), ts.Sim.Ledger().Balance())
		assert.Zero(t, ts.PowerUpCount())
		assert.Equal(t, 12, ts.ParticleCount(), "pickup ring")
	})
	t.Run("health after contact", func(t *testing.T) {
		ts := quiet(WithHostileAt(10, 0, 0, 3), WithPowerUpAt(0, 0, PowerUpHealth))
		ts.RunTicks(1)
		assert.Equal(t, uint32(4), ts.PlayerData().Health.Current)
	})
	t.Run("health at max", func(t *testing.T) {
		ts := quiet(WithPowerUpAt(0, 0, PowerUpHealth))
		ts.RunTicks(1)
		assert.Equal(t, uint32(4), ts.PlayerData().Health.Current)
	})
	t.Run("shield", func(t *testing.T) {
		ts := quiet(WithPowerUpAt(0, 0, PowerUpShield))
		ts.RunTicks(1)
		snap := ts.Sim.Snapshot()
		assert.True(t, snap.ShieldActive)
		assert.InDelta(t, 4-1.0/60, snap.ShieldRemaining, 1e-9)
	})
	t.Run("accuracy caps", func(t *testing.T) {
		ts := quiet()
		for i := 0; i < 6; i++ {
			spawnPowerUp(ts.Sim.world, Vec2{}, PowerUpAccuracy, 12)
		}
		ts.RunTicks(1)
		assert.Equal(t, uint32(4), ts.PlayerData().Combat.AccuracyStacks)
		assert.Equal(t, 6, ts.Sim.Stats().Pickups)
	})
	t.Run("wave blast", func(t *testing.T) {
		ts := quiet(WithPowerUpAt(0, 0, PowerUpWaveBlast))
		ts.RunTicks(1)
		snap := ts.Sim.Snapshot()
		assert.Equal(t, WeaponWave, snap.Player.Weapon)
		assert.InDelta(t, 10-1.0/60, snap.WaveBlastRemaining, 1e-9)
	})
}

func TestPickup_MagnetWidensRadius(t *testing.T) {
	ts := quiet(WithPowerUpAt(20, 0, PowerUpCurrency))
	ts.RunTicks(5)
	assert.Equal(t, 1, ts.PowerUpCount(), "outside the base radius")

	levels := DefaultUpgradeLevels()
	levels.LootMagnet = 1
	ts = quiet(WithUpgrades(levels), WithPowerUpAt(20, 0, PowerUpCurrency))
	ts.RunTicks(1)
	assert.Zero(t, ts.PowerUpCount())
}

func TestPickup_ExpiresAfterLifetime(t *testing.T) {
	ts := quiet(WithPowerUpAt(500, 0, PowerUpShield))
	ts.RunTicks(700)
	assert.Equal(t, 1, ts.PowerUpCount())
	ts.RunTicks(25)
	assert.Zero(t, ts.PowerUpCount())
}

func TestAwayFrom_CoincidentFallsBack(t *testing.T) {
	assert.Equal(t, V(0, 1), awayFrom(V(3, 3), V(3, 3)))
	assert.InDelta(t, 1.0, awayFrom(V(10, 0), Vec2{}).X, 1e-9)
}
