package game

import (
	"math"

	"github.com/yohamta/donburi"
)

// blendFactor converts a per-1/60 s blend fraction into the fraction for dt.
func blendFactor(f, dt float64) float64 {
	if f >= 1 {
		return 1
	}
	if f <= 0 {
		return 0
	}
	return 1 - math.Pow(1-f, dt*60)
}

// decayKnockback applies the multiplicative decay and snaps slow impulses to
// rest.
func decayKnockback(kb Vec2, rate, restSq, dt float64) Vec2 {
	kb = kb.Scale(math.Max(0, 1-rate*dt))
	if kb.LenSq() <= restSq {
		return Vec2{}
	}
	return kb
}

// --- Player ---

// playerSteering returns the blend targets for the player this tick.
func (s *Sim) playerSteering(combat CombatStats) (maxSpeed, accel, decel float64) {
	mult := combat.MoveMultiplier(s.cfg.AccuracyMoveStep, s.cfg.AccuracyMoveCap)
	accelMul := mult * s.ledger.AccelerationMultiplier()
	accel = math.Min(s.cfg.PlayerAcceleration*accelMul, s.cfg.PlayerAccelerationCap)
	decel = math.Min(s.cfg.PlayerDeceleration*accelMul, s.cfg.PlayerDecelerationCap)
	maxSpeed = s.cfg.PlayerSpeed * mult * s.ledger.MovementSpeedMultiplier()
	return maxSpeed, accel, decel
}

func (s *Sim) movePlayer(dt float64) {
	entry, ok := s.playerEntry()
	if !ok {
		return
	}
	pd := Player.Get(entry)
	pos := Position.Get(entry)
	vel := Velocity.Get(entry)
	kb := Knockback.Get(entry)

	maxSpeed, accel, decel := s.playerSteering(pd.Combat)
	toTarget := s.target.Sub(*pos)
	if toTarget.LenSq() > s.cfg.PlayerDeadzone*s.cfg.PlayerDeadzone {
		desired := toTarget.Normalize().Scale(maxSpeed)
		*vel = vel.Lerp(desired, blendFactor(accel, dt))
	} else {
		*vel = vel.Lerp(Vec2{}, blendFactor(decel, dt))
	}

	*pos = s.arena.Clamp(pos.Add(vel.Add(*kb).Scale(dt)))
	*kb = decayKnockback(*kb, s.cfg.KnockbackDecay, s.cfg.KnockbackRestSpeedSq, dt)
}

// --- Hostiles ---

// hostileTurnRate is read from the ledger every tick.
func (s *Sim) hostileTurnRate() float64 {
	return math.Max(0, s.cfg.EnemyTurnRate*s.ledger.TurnRateMultiplier())
}

// steerHostile nudges vel toward the pursuit velocity with a capped steering
// force, then caps the result at speed.
func steerHostile(pos, vel, target Vec2, speed, turn, dt float64) Vec2 {
	desired := target.Sub(pos).Normalize().Scale(speed)
	steer := desired.Sub(vel).ClampLen(speed * turn)
	return vel.Add(steer.Scale(dt * 10)).ClampLen(speed)
}

func (s *Sim) moveHostiles(dt float64) {
	pentry, ok := s.playerEntry()
	if !ok {
		return
	}
	target := *Position.Get(pentry)
	turn := s.hostileTurnRate()

	hostileQuery.Each(s.world, func(entry *donburi.Entry) {
		h := Hostile.Get(entry)
		if h.Dead() {
			return
		}
		pos := Position.Get(entry)
		vel := Velocity.Get(entry)
		kb := Knockback.Get(entry)

		*vel = steerHostile(*pos, *vel, target, h.Speed, turn, dt)
		*pos = pos.Add(vel.Add(*kb).Scale(dt))
		*kb = decayKnockback(*kb, s.cfg.KnockbackDecay, s.cfg.KnockbackRestSpeedSq, dt)
	})
}

// --- Projectiles ---

// moveProjectiles ages, bends and damps every wave projectile. Projectiles
// whose age reaches their lifetime are removed this tick.
func (s *Sim) moveProjectiles(dt float64) {
	damping := math.Pow(s.cfg.WaveDamping, dt*60)
	var expired []donburi.Entity
	projectileQuery.Each(s.world, func(entry *donburi.Entry) {
		p := Projectile.Get(entry)
		p.Age += dt
		if p.Age >= p.Lifetime {
			expired = append(expired, entry.Entity())
			return
		}
		vel := Velocity.Get(entry)
		pos := Position.Get(entry)
		bend := vel.Normalize().Perp().Scale(p.Curve * dt)
		*vel = vel.Add(bend).Scale(damping)
		*pos = pos.Add(vel.Scale(dt))
	})
	removeAll(s.world, expired)
}

// --- Particles ---

// tickParticles drifts cosmetic particles. It runs even while paused.
func (s *Sim) tickParticles(dt float64) {
	var expired []donburi.Entity
	particleQuery.Each(s.world, func(entry *donburi.Entry) {
		p := Particle.Get(entry)
		p.Age += dt
		if p.Age >= p.Lifetime {
			expired = append(expired, entry.Entity())
			return
		}
		pos := Position.Get(entry)
		*pos = pos.Add(Velocity.Get(entry).Scale(dt))
	})
	removeAll(s.world, expired)
}
