package game

import (
	"math"

	"github.com/yohamta/donburi"
)

// harnessDT is the fixed step used by TestSim (60 ticks per second).
const harnessDT = 1.0 / 60.0

// TestSim is a headless harness around Sim used by tests and the headless
// report. It has no Ebiten dependency and supports deterministic seeding,
// scripted entity placement and an autopilot input source.
type TestSim struct {
	Sim    *Sim
	SimLog *SimLog
	Store  *RecordingStore
	Target Vec2
	DT     float64

	cfg       Config
	seed      int64
	autopilot bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // applied before the Sim exists
	simOptEntity                      // applied after, against the live world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose enables verbose SimLog entries.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithTuning edits the config before the Sim is built.
func WithTuning(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { edit(&ts.cfg) }}
}

// WithoutSpawns pushes the hostile ramp far enough out that it never fires.
func WithoutSpawns() SimOption {
	return WithTuning(func(c *Config) {
		c.EnemySpawnStart = math.MaxFloat64
		c.EnemySpawnMin = math.MaxFloat64
	})
}

// WithoutTrail stops the trail weapon from laying segments.
func WithoutTrail() SimOption {
	return WithTuning(func(c *Config) { c.TrailSpawnInterval = math.MaxFloat64 })
}

// WithoutDrops disables power-up drops on kills.
func WithoutDrops() SimOption {
	return WithTuning(func(c *Config) { c.PowerUpDropChance = 0 })
}

// WithCurrency preloads the store balance.
func WithCurrency(balance uint32) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Store.currency = balance }}
}

// WithUpgrades preloads the store's upgrade levels.
func WithUpgrades(levels UpgradeLevels) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Store.levels = levels.Clone() }}
}

// WithAutopilot drives the player along an orbit so the trail sweeps pursuers.
func WithAutopilot() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.autopilot = true }}
}

// WithHostileAt places a hostile with the given speed and health.
func WithHostileAt(x, y, speed, health float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		spawnHostile(ts.Sim.world, V(x, y), speed, health)
	}}
}

// WithTrailAt places a trail segment.
func WithTrailAt(x, y, lifetime, damage float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		spawnTrail(ts.Sim.world, V(x, y), lifetime, damage)
	}}
}

// WithPowerUpAt places a power-up with the configured lifetime.
func WithPowerUpAt(x, y float64, kind PowerUpKind) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		spawnPowerUp(ts.Sim.world, V(x, y), kind, ts.Sim.cfg.PowerUpLifetime)
	}}
}

// WithShield arms the shield buff.
func WithShield(seconds float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.Sim.shield.Arm(seconds) }}
}

// WithWaveBlast arms the wave weapon window.
func WithWaveBlast(seconds float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.Sim.waveBlast.Arm(seconds) }}
}

// NewTestSim constructs a TestSim in two passes: infrastructure options,
// then the Sim, then entity options.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		Store:  NewRecordingStore(),
		DT:     harnessDT,
		cfg:    DefaultConfig(),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Sim = NewSim(
		WithConfig(ts.cfg),
		WithRandSeed(ts.seed),
		WithPersistence(ts.Store),
		WithSimLog(ts.SimLog),
	)
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return ts.Sim.TickCount()
		}
	}
	return -1
}

func (ts *TestSim) step() {
	if ts.autopilot {
		ts.Target = ts.autopilotTarget()
	}
	ts.Sim.Tick(ts.DT, ts.Target)
}

// autopilotTarget leads the player around a wide orbit and veers away from
// the nearest hostile when one gets close.
func (ts *TestSim) autopilotTarget() Vec2 {
	pos := ts.PlayerPos()
	t := float64(ts.Sim.TickCount()) * ts.DT
	orbit := FromAngle(t * 0.9).Scale(320)

	nearest, best := Vec2{}, math.Inf(1)
	hostileQuery.Each(ts.Sim.world, func(entry *donburi.Entry) {
		p := *Position.Get(entry)
		if d := p.DistSq(pos); d < best {
			nearest, best = p, d
		}
	})
	if best < 90*90 {
		away := pos.Sub(nearest).Normalize()
		return pos.Add(away.Add(away.Perp()).Scale(200))
	}
	return orbit
}

// --- Inspection helpers ---

func (ts *TestSim) CurrentTick() int { return ts.Sim.TickCount() }

func (ts *TestSim) HostileCount() int    { return hostileQuery.Count(ts.Sim.world) }
func (ts *TestSim) TrailCount() int      { return trailQuery.Count(ts.Sim.world) }
func (ts *TestSim) ProjectileCount() int { return projectileQuery.Count(ts.Sim.world) }
func (ts *TestSim) PowerUpCount() int    { return powerUpQuery.Count(ts.Sim.world) }
func (ts *TestSim) ParticleCount() int   { return particleQuery.Count(ts.Sim.world) }

// PlayerData returns a copy of the player record.
func (ts *TestSim) PlayerData() PlayerData {
	entry, ok := ts.Sim.playerEntry()
	if !ok {
		return PlayerData{}
	}
	return *Player.Get(entry)
}

func (ts *TestSim) PlayerPos() Vec2 {
	entry, ok := ts.Sim.playerEntry()
	if !ok {
		return Vec2{}
	}
	return *Position.Get(entry)
}

// Hostiles returns a copy of every hostile record.
func (ts *TestSim) Hostiles() []HostileData {
	var out []HostileData
	hostileQuery.Each(ts.Sim.world, func(entry *donburi.Entry) {
		out = append(out, *Hostile.Get(entry))
	})
	return out
}

// RemovePlayer deletes the player entity to exercise singleton-absent paths.
func (ts *TestSim) RemovePlayer() {
	removeAll(ts.Sim.world, collect(ts.Sim.world, playerQuery))
}

// --- Recording store ---

// RecordingStore is an in-memory Persistence that counts writes.
type RecordingStore struct {
	currency      uint32
	levels        UpgradeLevels
	CurrencySaves int
	UpgradeSaves  int
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{levels: DefaultUpgradeLevels()}
}

func (r *RecordingStore) LoadCurrency() uint32 { return r.currency }

func (r *RecordingStore) SaveCurrency(balance uint32) {
	r.currency = balance
	r.CurrencySaves++
}

func (r *RecordingStore) LoadUpgrades() UpgradeLevels { return r.levels.Clone() }

func (r *RecordingStore) SaveUpgrades(levels UpgradeLevels) {
	r.levels = levels.Clone()
	r.UpgradeSaves++
}

// Saves is the total number of writes.
func (r *RecordingStore) Saves() int { return r.CurrencySaves + r.UpgradeSaves }
