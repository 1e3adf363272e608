package game

import (
	"math"

	"github.com/yohamta/donburi"
)

// --- Hostile ramp ---

// HostileSpawner emits hostiles on a geometric ramp: after every spawn the
// interval is multiplied by accel and floored at min.
type HostileSpawner struct {
	timer    Timer
	interval float64
	start    float64
	accel    float64
	min      float64
	spawned  int
}

// NewHostileSpawner returns a spawner whose first spawn fires after start.
func NewHostileSpawner(start, accel, min float64) HostileSpawner {
	return HostileSpawner{
		timer:    NewTimer(start, TimerRepeating),
		interval: start,
		start:    start,
		accel:    accel,
		min:      min,
	}
}

// Tick advances the ramp and returns how many hostiles are due.
func (hs *HostileSpawner) Tick(dt float64) int {
	hs.timer.Tick(dt)
	due := hs.timer.TimesFinished()
	for i := 0; i < due; i++ {
		hs.advance()
	}
	return due
}

func (hs *HostileSpawner) advance() {
	hs.spawned++
	hs.interval = math.Max(hs.min, hs.interval*hs.accel)
	hs.timer.SetDuration(hs.interval)
}

// Reset returns the ramp to its starting interval.
func (hs *HostileSpawner) Reset() {
	*hs = NewHostileSpawner(hs.start, hs.accel, hs.min)
}

func (hs *HostileSpawner) Interval() float64 { return hs.interval }
func (hs *HostileSpawner) Spawned() int      { return hs.spawned }

// hostileStats returns spawn-time speed and health for the current score.
func (c Config) hostileStats(score uint32) (speed, health float64) {
	sc := float64(score)
	speed = c.EnemyBaseSpeed + c.EnemySpeedIncrement*sc/c.EnemySpeedDivisor
	health = c.EnemyBaseHealth + c.EnemyBaseHealth*sc/c.EnemyHealthDivisor
	return speed, health
}

func (s *Sim) spawnHostiles(dt float64) {
	entry, ok := s.playerEntry()
	if !ok {
		return
	}
	due := s.spawner.Tick(dt)
	if due == 0 {
		return
	}
	anchor := *Position.Get(entry)
	speed, health := s.cfg.hostileStats(s.score.Current)
	for i := 0; i < due; i++ {
		angle := s.randf() * 2 * math.Pi
		dist := s.cfg.EnemySpawnDistance + (s.randf()*2-1)*s.cfg.EnemySpawnJitter
		pos := anchor.Add(FromAngle(angle).Scale(dist))
		spawnHostile(s.world, pos, speed, health)
		s.stats.HostilesSpawned++
		s.logVerbose("--", "spawn", "hostile", formatVec(pos), health)
	}
	s.logEvent("--", "spawn", "interval", formatFloat(s.spawner.Interval()), s.spawner.Interval())
}

// --- Trail ---

// trailInterval shrinks with the TrailDensity upgrade.
func (s *Sim) trailInterval() float64 {
	return s.cfg.TrailSpawnInterval / s.ledger.TrailDensityMultiplier()
}

// trailDamage is frozen into each segment at spawn time.
func (s *Sim) trailDamage(combat CombatStats) float64 {
	return combat.BaseTrailDamage *
		combat.DamageMultiplier(s.cfg.AccuracyDamageStep) *
		s.ledger.TrailDamageMultiplier()
}

// expireTrail counts segment lifetimes down and removes spent segments.
func (s *Sim) expireTrail(dt float64) {
	var spent []donburi.Entity
	trailQuery.Each(s.world, func(entry *donburi.Entry) {
		t := Trail.Get(entry)
		t.Remaining -= dt
		if t.Remaining <= 0 {
			spent = append(spent, entry.Entity())
		}
	})
	removeAll(s.world, spent)
}

func (s *Sim) spawnTrail(dt float64) {
	entry, ok := s.playerEntry()
	if !ok {
		return
	}
	pd := Player.Get(entry)
	if pd.Weapon != WeaponTrail {
		return
	}
	s.trailTimer.SetDuration(s.trailInterval())
	s.trailTimer.Tick(dt)
	if !s.trailTimer.JustFinished() {
		return
	}
	lifetime := s.cfg.TrailLifetime * s.ledger.TrailLifetimeMultiplier()
	spawnTrail(s.world, *Position.Get(entry), lifetime, s.trailDamage(pd.Combat))
}

// --- Wave ---

// waveVolley returns spawn offsets, velocities and curve terms for one
// symmetric volley fired while moving along dir.
func (c Config) waveVolley(dir Vec2) (offsets, vels []Vec2, curves []float64) {
	perp := dir.Perp()
	for _, side := range [2]float64{-1, 1} {
		lateral := perp.Scale(side)
		for i := 0; i < c.WavePerSide; i++ {
			fi := float64(i)
			offsets = append(offsets, lateral.Scale(35+18*fi).Sub(dir.Scale(8*fi)))
			vels = append(vels, lateral.Scale(1.3-0.1*fi).Add(dir.Scale(0.2)).Scale(c.WaveSpeed))
			curves = append(curves, side*c.WaveCurve)
		}
	}
	return offsets, vels, curves
}

func (s *Sim) spawnWaves(dt float64) {
	entry, ok := s.playerEntry()
	if !ok {
		return
	}
	pd := Player.Get(entry)
	if pd.Weapon != WeaponWave {
		pd.WaveCooldown = 0
		return
	}
	vel := *Velocity.Get(entry)
	if vel.LenSq() < s.cfg.WaveMinSpeedSq {
		return
	}
	pd.WaveCooldown -= dt
	if pd.WaveCooldown > 0 {
		return
	}
	pd.WaveCooldown = s.cfg.WaveCadence

	origin := *Position.Get(entry)
	offsets, vels, curves := s.cfg.waveVolley(vel.Normalize())
	for i := range offsets {
		spawnProjectile(s.world, origin.Add(offsets[i]), vels[i], s.cfg.WaveLifetime, s.cfg.WaveDamage, curves[i])
	}
	s.stats.VolleysFired++
}
