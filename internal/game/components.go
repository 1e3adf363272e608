package game

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// --- Component types ---
//
// Every entity is a donburi entry. Shared spatial data lives in Position,
// Velocity and Knockback; each kind carries exactly one tag component with its
// own record.

var (
	Position  = donburi.NewComponentType[Vec2]()
	Velocity  = donburi.NewComponentType[Vec2]()
	Knockback = donburi.NewComponentType[Vec2]()

	Player     = donburi.NewComponentType[PlayerData]()
	Hostile    = donburi.NewComponentType[HostileData]()
	Trail      = donburi.NewComponentType[TrailData]()
	Projectile = donburi.NewComponentType[ProjectileData]()
	PowerUp    = donburi.NewComponentType[PowerUpData]()
	Particle   = donburi.NewComponentType[ParticleData]()
)

// PlayerData is the controllable unit.
type PlayerData struct {
	Weapon       WeaponMode
	WaveCooldown float64 // seconds until the next wave volley may fire
	Health       Health
	Combat       CombatStats
}

// HostileData is a pursuing enemy. Health is fractional.
type HostileData struct {
	Speed  float64
	Health float64
}

// Dead reports whether the hostile should be excluded from steering.
func (h HostileData) Dead() bool { return h.Health <= 0 }

// TrailData is one damaging segment. Damage is frozen at spawn.
type TrailData struct {
	Remaining float64
	Lifetime  float64
	Damage    float64
}

// ProjectileData is one curving wave projectile.
type ProjectileData struct {
	Age      float64
	Lifetime float64
	Damage   float64
	Curve    float64 // signed lateral acceleration; sign picks the side
}

// PowerUpData is a collectible that despawns when its lifetime finishes.
type PowerUpData struct {
	Kind     PowerUpKind
	Lifetime Timer
}

// ParticleTint tells the presentation layer which palette to use.
type ParticleTint int

const (
	TintDeath ParticleTint = iota
	TintSpark
	TintPickup
)

// ParticleData is cosmetic only.
type ParticleData struct {
	Age      float64
	Lifetime float64
	Tint     ParticleTint
}

// --- Queries ---

var (
	playerQuery     = donburi.NewQuery(filter.Contains(Player, Position, Velocity, Knockback))
	hostileQuery    = donburi.NewQuery(filter.Contains(Hostile, Position, Velocity, Knockback))
	trailQuery      = donburi.NewQuery(filter.Contains(Trail, Position))
	projectileQuery = donburi.NewQuery(filter.Contains(Projectile, Position, Velocity))
	powerUpQuery    = donburi.NewQuery(filter.Contains(PowerUp, Position))
	particleQuery   = donburi.NewQuery(filter.Contains(Particle, Position, Velocity))
)

// --- Creation ---

func spawnPlayer(w donburi.World, pos Vec2, maxHealth uint32, baseDamage float64) donburi.Entity {
	e := w.Create(Player, Position, Velocity, Knockback)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	Player.SetValue(entry, PlayerData{
		Weapon: WeaponTrail,
		Health: NewHealth(maxHealth),
		Combat: CombatStats{BaseTrailDamage: baseDamage},
	})
	return e
}

func spawnHostile(w donburi.World, pos Vec2, speed, health float64) donburi.Entity {
	e := w.Create(Hostile, Position, Velocity, Knockback)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	Hostile.SetValue(entry, HostileData{Speed: speed, Health: health})
	return e
}

func spawnTrail(w donburi.World, pos Vec2, lifetime, damage float64) donburi.Entity {
	e := w.Create(Trail, Position)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	Trail.SetValue(entry, TrailData{Remaining: lifetime, Lifetime: lifetime, Damage: damage})
	return e
}

func spawnProjectile(w donburi.World, pos, vel Vec2, lifetime, damage, curve float64) donburi.Entity {
	e := w.Create(Projectile, Position, Velocity)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	Velocity.SetValue(entry, vel)
	Projectile.SetValue(entry, ProjectileData{Lifetime: lifetime, Damage: damage, Curve: curve})
	return e
}

func spawnPowerUp(w donburi.World, pos Vec2, kind PowerUpKind, lifetime float64) donburi.Entity {
	e := w.Create(PowerUp, Position)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	PowerUp.SetValue(entry, PowerUpData{Kind: kind, Lifetime: NewTimer(lifetime, TimerOnce)})
	return e
}

func spawnParticle(w donburi.World, pos, vel Vec2, lifetime float64, tint ParticleTint) donburi.Entity {
	e := w.Create(Particle, Position, Velocity)
	entry := w.Entry(e)
	Position.SetValue(entry, pos)
	Velocity.SetValue(entry, vel)
	Particle.SetValue(entry, ParticleData{Lifetime: lifetime, Tint: tint})
	return e
}

// removeAll destroys the collected entities. Callers collect during a query
// and remove afterwards so iteration never observes a mutated archetype.
func removeAll(w donburi.World, doomed []donburi.Entity) {
	for _, e := range doomed {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
}

// collect returns the entities matched by q.
func collect(w donburi.World, q *donburi.Query) []donburi.Entity {
	var out []donburi.Entity
	q.Each(w, func(entry *donburi.Entry) {
		out = append(out, entry.Entity())
	})
	return out
}
