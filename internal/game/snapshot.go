package game

import "github.com/yohamta/donburi"

// PlayerView is the presentation copy of the player.
type PlayerView struct {
	Present        bool
	Pos            Vec2
	Vel            Vec2
	Health         Health
	Weapon         WeaponMode
	AccuracyStacks uint32
	Color          PlayerColor
}

type HostileView struct {
	Pos    Vec2
	Health float64
}

// TrailView carries the remaining-life fraction for fading.
type TrailView struct {
	Pos      Vec2
	Fraction float64
}

type ProjectileView struct {
	Pos Vec2
	Vel Vec2
}

type PowerUpView struct {
	Pos      Vec2
	Kind     PowerUpKind
	Fraction float64
}

type ParticleView struct {
	Pos      Vec2
	Fraction float64
	Tint     ParticleTint
}

// Snapshot is a read-only value copy of everything the presentation layer
// draws. Holding one never aliases simulation state.
type Snapshot struct {
	Tick     int
	Active   bool
	Paused   bool
	ShopOpen bool
	Target   Vec2

	Player      PlayerView
	Hostiles    []HostileView
	Trail       []TrailView
	Projectiles []ProjectileView
	PowerUps    []PowerUpView
	Particles   []ParticleView

	Score           uint32
	BestScore       uint32
	ComboStreak     uint32
	ComboMultiplier float64
	ComboFraction   float64
	Currency        uint32
	Levels          UpgradeLevels

	ShieldActive       bool
	ShieldRemaining    float64
	ShieldFraction     float64
	WaveBlastRemaining float64
	WaveBlastFraction  float64
	HitFreeze          bool
	Trauma             float64
	Shake              float64
	SpawnInterval      float64

	Stats RunStats
}

// Snapshot copies the current state for presentation.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.tick,
		Active:   s.run.Active(),
		Paused:   s.run.Paused(),
		ShopOpen: s.shopOpen,
		Target:   s.target,

		Score:           s.score.Current,
		BestScore:       s.score.Best,
		ComboStreak:     s.combo.Streak(),
		ComboMultiplier: s.combo.Multiplier(),
		ComboFraction:   s.combo.WindowFraction(),
		Currency:        s.ledger.Balance(),
		Levels:          s.ledger.Levels(),

		ShieldActive:       s.shield.Active(),
		ShieldRemaining:    s.shield.Remaining(),
		ShieldFraction:     s.shield.Fraction(),
		WaveBlastRemaining: s.waveBlast.Remaining(),
		WaveBlastFraction:  s.waveBlast.Fraction(),
		HitFreeze:          s.hitFreeze.Active(),
		Trauma:             s.trauma.Value(),
		Shake:              s.trauma.Shake(s.ledger.ShakeMultiplier()),
		SpawnInterval:      s.spawner.Interval(),

		Stats: s.stats,
	}

	if entry, ok := s.playerEntry(); ok {
		pd := Player.Get(entry)
		snap.Player = PlayerView{
			Present:        true,
			Pos:            *Position.Get(entry),
			Vel:            *Velocity.Get(entry),
			Health:         pd.Health,
			Weapon:         pd.Weapon,
			AccuracyStacks: pd.Combat.AccuracyStacks,
			Color:          snap.Levels.SelectedColor,
		}
	}

	hostileQuery.Each(s.world, func(entry *donburi.Entry) {
		snap.Hostiles = append(snap.Hostiles, HostileView{
			Pos:    *Position.Get(entry),
			Health: Hostile.Get(entry).Health,
		})
	})
	trailQuery.Each(s.world, func(entry *donburi.Entry) {
		t := Trail.Get(entry)
		frac := 0.0
		if t.Lifetime > 0 {
			frac = t.Remaining / t.Lifetime
		}
		snap.Trail = append(snap.Trail, TrailView{Pos: *Position.Get(entry), Fraction: frac})
	})
	projectileQuery.Each(s.world, func(entry *donburi.Entry) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Pos: *Position.Get(entry),
			Vel: *Velocity.Get(entry),
		})
	})
	powerUpQuery.Each(s.world, func(entry *donburi.Entry) {
		p := PowerUp.Get(entry)
		snap.PowerUps = append(snap.PowerUps, PowerUpView{
			Pos:      *Position.Get(entry),
			Kind:     p.Kind,
			Fraction: p.Lifetime.FractionRemaining(),
		})
	})
	particleQuery.Each(s.world, func(entry *donburi.Entry) {
		p := Particle.Get(entry)
		frac := 0.0
		if p.Lifetime > 0 {
			frac = 1 - p.Age/p.Lifetime
		}
		snap.Particles = append(snap.Particles, ParticleView{
			Pos:      *Position.Get(entry),
			Fraction: frac,
			Tint:     p.Tint,
		})
	})
	return snap
}
