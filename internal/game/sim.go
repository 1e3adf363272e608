package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yohamta/donburi"
)

// --- Persistence ---

// Persistence is the storage collaborator. Implementations are best-effort:
// load failures yield defaults and save failures are swallowed.
type Persistence interface {
	LoadCurrency() uint32
	SaveCurrency(balance uint32)
	LoadUpgrades() UpgradeLevels
	SaveUpgrades(levels UpgradeLevels)
}

// discardPersistence keeps nothing. It backs a Sim built without a store.
type discardPersistence struct{}

func (discardPersistence) LoadCurrency() uint32        { return 0 }
func (discardPersistence) SaveCurrency(uint32)         {}
func (discardPersistence) LoadUpgrades() UpgradeLevels { return DefaultUpgradeLevels() }
func (discardPersistence) SaveUpgrades(UpgradeLevels)  {}

// --- Run state ---

// RunState is the {active, paused} pair. Paused implies active; an ended run
// stays ended until Restart.
type RunState struct {
	active bool
	paused bool
}

func (r RunState) Active() bool  { return r.active }
func (r RunState) Paused() bool  { return r.paused }
func (r RunState) Running() bool { return r.active && !r.paused }

func (r *RunState) start() { r.active, r.paused = true, false }
func (r *RunState) end()   { r.active, r.paused = false, false }

// pause reports whether the state changed.
func (r *RunState) pause() bool {
	if !r.active || r.paused {
		return false
	}
	r.paused = true
	return true
}

func (r *RunState) resume() bool {
	if !r.paused {
		return false
	}
	r.paused = false
	return true
}

// RunStats are per-run counters for reports and the end-of-run summary.
type RunStats struct {
	Ticks           int
	Duration        float64
	Kills           int
	Hits            int
	HostilesSpawned int
	VolleysFired    int
	Pickups         int
	ShieldBlocks    int
	DamageTaken     uint32
	CurrencyEarned  uint32
	BestStreak      uint32
}

// --- Sim ---

// Sim owns every entity and resource of one game session. Tick is the only
// writer; callers on other goroutines must not touch a Sim concurrently.
type Sim struct {
	cfg      Config
	arena    Arena
	world    donburi.World
	rng      *rand.Rand
	cosmetic *rand.Rand
	ledger   *Ledger
	store    Persistence
	log      *SimLog
	feed     *EventFeed

	tick     int
	run      RunState
	shopOpen bool
	shopHeld bool // the shop paused the run and owns the resume
	target   Vec2

	score      Score
	combo      Combo
	spawner    HostileSpawner
	trailTimer Timer
	shield     Buff
	waveBlast  Buff
	hitFreeze  Buff
	trauma     Trauma
	stats      RunStats
}

// Option configures a Sim at construction.
type Option func(*Sim)

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) Option {
	return func(s *Sim) { s.cfg = cfg }
}

// WithRandSeed seeds both gameplay and cosmetic randomness.
func WithRandSeed(seed int64) Option {
	return func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed))          // #nosec G404 -- game only
		s.cosmetic = rand.New(rand.NewSource(seed + 1)) // #nosec G404 -- cosmetic only
	}
}

// WithPersistence sets the storage collaborator.
func WithPersistence(p Persistence) Option {
	return func(s *Sim) {
		if p != nil {
			s.store = p
		}
	}
}

// WithSimLog records structured events into log.
func WithSimLog(log *SimLog) Option {
	return func(s *Sim) { s.log = log }
}

// NewSim loads the economy from persistence, spawns the player at the origin
// and starts a run.
func NewSim(opts ...Option) *Sim {
	now := time.Now().UnixNano()
	s := &Sim{
		cfg:      DefaultConfig(),
		store:    discardPersistence{},
		rng:      rand.New(rand.NewSource(now)),     // #nosec G404 -- game only
		cosmetic: rand.New(rand.NewSource(now + 1)), // #nosec G404 -- cosmetic only
		feed:     NewEventFeed(),
	}
	for _, o := range opts {
		o(s)
	}
	s.arena = s.cfg.arena()
	s.world = donburi.NewWorld()
	s.ledger = NewLedger(s.store.LoadCurrency(), s.store.LoadUpgrades())
	s.combo = NewCombo(s.cfg.ComboStep)
	s.spawner = NewHostileSpawner(s.cfg.EnemySpawnStart, s.cfg.EnemySpawnAccel, s.cfg.EnemySpawnMin)
	s.trailTimer = NewTimer(s.trailInterval(), TimerRepeating)

	spawnPlayer(s.world, Vec2{}, s.maxHealth(), s.cfg.TrailBaseDamage)
	s.run.start()
	s.logEvent("--", "run", "start", "", 0)
	return s
}

func (s *Sim) maxHealth() uint32 {
	return s.cfg.PlayerMaxHealth + s.ledger.MaxHealthBonus()
}

func (s *Sim) playerEntry() (*donburi.Entry, bool) {
	return playerQuery.First(s.world)
}

func (s *Sim) randf() float64 {
	return s.rng.Float64() // #nosec G404 -- game only
}

// --- Tick ---

// Tick advances the simulation by dt seconds toward the fused input target.
// Systems run in a fixed order: timers and spawners, movement, collisions,
// persistence, buff decay. While paused or ended only cosmetics advance.
func (s *Sim) Tick(dt float64, target Vec2) {
	if dt < 0 {
		dt = 0
	}
	s.tick++
	s.target = s.arena.Clamp(target)

	if s.run.Running() {
		s.stats.Ticks++
		s.stats.Duration += dt
		s.syncWeapon()

		s.expireTrail(dt)
		s.expirePowerUps(dt)
		s.spawnHostiles(dt)
		s.spawnTrail(dt)
		s.spawnWaves(dt)

		s.movePlayer(dt)
		s.moveHostiles(dt)
		s.moveProjectiles(dt)

		s.resolveCombat()
	}

	s.persist()

	if s.run.Running() {
		s.shield.Tick(dt)
		s.waveBlast.Tick(dt)
		if s.combo.Tick(dt) {
			s.logVerbose("--", "combo", "expired", "", 0)
		}
	}

	s.hitFreeze.Tick(dt)
	s.trauma.Decay(s.cfg.TraumaDecay, dt)
	s.tickParticles(dt)
}

// syncWeapon derives the weapon mode from the wave-blast buff.
func (s *Sim) syncWeapon() {
	entry, ok := s.playerEntry()
	if !ok {
		return
	}
	pd := Player.Get(entry)
	if s.waveBlast.Active() {
		pd.Weapon = WeaponWave
	} else {
		pd.Weapon = WeaponTrail
	}
}

func (s *Sim) expirePowerUps(dt float64) {
	var gone []donburi.Entity
	powerUpQuery.Each(s.world, func(entry *donburi.Entry) {
		p := PowerUp.Get(entry)
		p.Lifetime.Tick(dt)
		if p.Lifetime.Finished() {
			gone = append(gone, entry.Entity())
		}
	})
	removeAll(s.world, gone)
}

// persist writes the ledger only when it changed since the last write.
func (s *Sim) persist() {
	currency, upgrades := s.ledger.takeDirty()
	if currency {
		s.store.SaveCurrency(s.ledger.Balance())
	}
	if upgrades {
		s.store.SaveUpgrades(s.ledger.Levels())
	}
}

func (s *Sim) endRun() {
	s.run.end()
	s.combo.Reset()
	s.logEvent("--", "run", "end", "", float64(s.score.Current))
	s.feed.Add(s.tick, FeedRun, "run over: score %d (best %d)", s.score.Current, s.score.Best)
}

// --- Run control ---

// Pause freezes gameplay. It has no effect on an ended run.
func (s *Sim) Pause() bool {
	if !s.run.pause() {
		return false
	}
	s.logEvent("--", "run", "pause", "", 0)
	return true
}

// Resume unfreezes a paused run.
func (s *Sim) Resume() bool {
	if !s.run.resume() {
		return false
	}
	s.shopHeld = false
	s.logEvent("--", "run", "resume", "", 0)
	return true
}

// TogglePause flips between paused and running.
func (s *Sim) TogglePause() {
	if s.run.Paused() {
		s.Resume()
	} else {
		s.Pause()
	}
}

// OpenShop shows the shop, pausing an active run.
func (s *Sim) OpenShop() {
	if s.shopOpen {
		return
	}
	s.shopOpen = true
	s.shopHeld = s.Pause()
}

// CloseShop hides the shop and resumes the run if the shop paused it.
func (s *Sim) CloseShop() {
	if !s.shopOpen {
		return
	}
	s.shopOpen = false
	if s.shopHeld {
		s.Resume()
	}
}

// Restart clears every transient entity and resets run-local state. The
// player is repositioned, not recreated. Economy state is untouched.
func (s *Sim) Restart() {
	for _, q := range []*donburi.Query{hostileQuery, trailQuery, projectileQuery, powerUpQuery, particleQuery} {
		removeAll(s.world, collect(s.world, q))
	}

	entry, ok := s.playerEntry()
	if !ok {
		spawnPlayer(s.world, Vec2{}, s.maxHealth(), s.cfg.TrailBaseDamage)
		entry, _ = s.playerEntry()
	}
	Position.SetValue(entry, Vec2{})
	Velocity.SetValue(entry, Vec2{})
	Knockback.SetValue(entry, Vec2{})
	Player.SetValue(entry, PlayerData{
		Weapon: WeaponTrail,
		Health: NewHealth(s.maxHealth()),
		Combat: CombatStats{BaseTrailDamage: s.cfg.TrailBaseDamage},
	})

	s.score.Current = 0
	s.combo.Reset()
	s.spawner.Reset()
	s.trailTimer = NewTimer(s.trailInterval(), TimerRepeating)
	s.shield.Clear()
	s.waveBlast.Clear()
	s.hitFreeze.Clear()
	s.trauma.Reset()
	s.stats = RunStats{}
	s.target = Vec2{}
	s.shopOpen, s.shopHeld = false, false
	s.run.start()

	s.logEvent("--", "run", "start", "restart", 0)
	s.feed.Add(s.tick, FeedRun, "new run")
}

// --- Economy ---

// Purchase buys one level of kind. Accepted purchases take effect at once and
// are persisted before returning.
func (s *Sim) Purchase(kind UpgradeKind) PurchaseResult {
	cost := s.ledger.Cost(kind)
	res := s.ledger.Purchase(kind)
	s.logEvent("--", "shop", "purchase", fmt.Sprintf("%s:%s", kind, res), float64(cost))
	if res != PurchaseOK {
		return res
	}
	if kind == UpgradeMaxHealth {
		if entry, ok := s.playerEntry(); ok {
			pd := Player.Get(entry)
			pd.Health.SetMax(s.maxHealth())
			pd.Health.Refill()
		}
	}
	s.feed.Add(s.tick, FeedShop, "bought %s (level %d)", kind, s.ledger.Level(kind))
	s.persist()
	return res
}

// SelectColor switches to an unlocked cosmetic colour.
func (s *Sim) SelectColor(c PlayerColor) bool {
	ok := s.ledger.SelectColor(c)
	s.persist()
	return ok
}

// --- Accessors ---

func (s *Sim) Config() Config         { return s.cfg }
func (s *Sim) Arena() Arena           { return s.arena }
func (s *Sim) Run() RunState          { return s.run }
func (s *Sim) ShopOpen() bool         { return s.shopOpen }
func (s *Sim) Score() Score           { return s.score }
func (s *Sim) Stats() RunStats        { return s.stats }
func (s *Sim) Ledger() *Ledger        { return s.ledger }
func (s *Sim) Feed() *EventFeed       { return s.feed }
func (s *Sim) TickCount() int         { return s.tick }
func (s *Sim) SpawnInterval() float64 { return s.spawner.Interval() }

// --- Logging ---

func (s *Sim) logEvent(actor, category, key, value string, num float64) {
	if s.log == nil {
		return
	}
	s.log.Add(s.tick, actor, category, key, value, num)
}

func (s *Sim) logVerbose(actor, category, key, value string, num float64) {
	if s.log == nil {
		return
	}
	s.log.AddVerbose(s.tick, actor, category, key, value, num)
}

func formatVec(v Vec2) string { return fmt.Sprintf("(%.0f,%.0f)", v.X, v.Y) }

func formatFloat(f float64) string { return fmt.Sprintf("%.3f", f) }
