package game

import (
	"math"

	"github.com/yohamta/donburi"
)

// hitSource is a damaging point: a trail segment or a wave projectile.
type hitSource struct {
	pos    Vec2
	damage float64
}

// awayFrom returns the unit direction from src to pos, falling back to +Y
// when the two coincide.
func awayFrom(pos, src Vec2) Vec2 {
	d := pos.Sub(src).Normalize()
	if d.IsZero() {
		return V(0, 1)
	}
	return d
}

// resolveCombat runs the overlap passes in order: trail, wave, player
// contact, pickups. A hostile killed by an earlier pass is not seen by later
// ones.
func (s *Sim) resolveCombat() {
	trail := s.gatherSources(trailQuery, func(entry *donburi.Entry) float64 {
		return Trail.Get(entry).Damage
	})
	s.resolveWeaponHits(trail, s.cfg.TrailHitRadius, "trail")

	waves := s.gatherSources(projectileQuery, func(entry *donburi.Entry) float64 {
		return Projectile.Get(entry).Damage
	})
	s.resolveWeaponHits(waves, s.cfg.WaveHitRadius, "wave")

	s.resolvePlayerContacts()
	if !s.run.Running() {
		return
	}
	s.resolvePickups()
}

func (s *Sim) gatherSources(q *donburi.Query, damage func(*donburi.Entry) float64) []hitSource {
	var out []hitSource
	q.Each(s.world, func(entry *donburi.Entry) {
		out = append(out, hitSource{pos: *Position.Get(entry), damage: damage(entry)})
	})
	return out
}

// resolveWeaponHits applies at most one source's damage to each hostile: the
// first source within radius wins even if several overlap.
func (s *Sim) resolveWeaponHits(sources []hitSource, radius float64, weapon string) {
	if len(sources) == 0 {
		return
	}
	force := s.cfg.EnemyKnockback * s.ledger.KnockbackMultiplier()

	type kill struct {
		entity donburi.Entity
		pos    Vec2
	}
	var kills []kill
	var sparks []Vec2

	hostileQuery.Each(s.world, func(entry *donburi.Entry) {
		h := Hostile.Get(entry)
		if h.Dead() {
			return
		}
		pos := *Position.Get(entry)
		for _, src := range sources {
			if !within(pos, src.pos, radius) {
				continue
			}
			h.Health -= src.damage
			Knockback.SetValue(entry, awayFrom(pos, src.pos).Scale(force))
			if h.Dead() {
				kills = append(kills, kill{entity: entry.Entity(), pos: pos})
			} else {
				sparks = append(sparks, pos)
			}
			break
		}
	})

	for _, p := range sparks {
		s.onHostileHit(p)
	}
	for _, k := range kills {
		if !s.world.Valid(k.entity) {
			continue
		}
		s.world.Remove(k.entity)
		s.onHostileKilled(k.pos, weapon)
	}
}

// onHostileHit is the non-lethal feedback cue.
func (s *Sim) onHostileHit(pos Vec2) {
	s.trauma.Add(s.cfg.HitTrauma)
	s.emitParticles(pos, s.cfg.SparkCount, 120, s.cfg.SparkLifetime, TintSpark)
	s.stats.Hits++
}

// onHostileKilled awards score and currency, triggers feedback and rolls a
// drop at the death position.
func (s *Sim) onHostileKilled(pos Vec2, weapon string) {
	window := s.cfg.ComboWindow + s.ledger.ComboWindowBonus()
	award := s.combo.RegisterKill(window, s.cfg.BaseScore)
	s.score.Add(award)
	s.ledger.Credit(s.cfg.KillCurrency)

	s.hitFreeze.Arm(s.cfg.HitFreezeDuration)
	s.trauma.Add(s.cfg.KillTrauma)
	s.emitParticles(pos, s.cfg.DeathBurstCount, 220, s.cfg.DeathBurstLifetime, TintDeath)

	s.stats.Kills++
	s.stats.CurrencyEarned += s.cfg.KillCurrency
	if s.combo.Streak() > s.stats.BestStreak {
		s.stats.BestStreak = s.combo.Streak()
	}
	s.logEvent("--", "combat", "kill", weapon, float64(award))
	if s.combo.Streak() > 1 && s.combo.Streak()%5 == 0 {
		s.feed.Add(s.tick, FeedCombo, "combo x%.1f (%d streak)", s.combo.Multiplier(), s.combo.Streak())
	}

	if kind, ok := rollDrop(s.rng, s.cfg); ok {
		spawnPowerUp(s.world, pos, kind, s.cfg.PowerUpLifetime)
		s.logEvent("--", "powerup", "drop", kind.String(), 0)
	}
}

// resolvePlayerContacts destroys every hostile touching the player. Damage is
// applied per hostile unless the shield is up; the run ends when health
// reaches zero.
func (s *Sim) resolvePlayerContacts() {
	pentry, ok := s.playerEntry()
	if !ok {
		return
	}
	ppos := *Position.Get(pentry)

	var touching []donburi.Entity
	var sources []Vec2
	hostileQuery.Each(s.world, func(entry *donburi.Entry) {
		pos := *Position.Get(entry)
		if within(pos, ppos, s.cfg.PlayerRadius) {
			touching = append(touching, entry.Entity())
			sources = append(sources, pos)
		}
	})

	// Hostiles touching after a fatal hit still land on the dead player: each
	// one is removed, penalised and checked against the zero health.
	for i, e := range touching {
		s.world.Remove(e)
		if s.shield.Active() {
			s.stats.ShieldBlocks++
			s.logEvent("player", "combat", "shield_block", "", 0)
			continue
		}
		s.damagePlayer(pentry, sources[i])
	}
}

func (s *Sim) damagePlayer(pentry *donburi.Entry, from Vec2) {
	pd := Player.Get(pentry)
	ppos := *Position.Get(pentry)

	pd.Health.Damage(s.cfg.CollisionDamage)
	Knockback.SetValue(pentry, awayFrom(ppos, from).Scale(s.cfg.PlayerKnockback))
	s.score.Penalize(s.cfg.HitScorePenalty)
	s.trauma.Add(s.cfg.PlayerHitTrauma)
	s.stats.DamageTaken += s.cfg.CollisionDamage
	s.logEvent("player", "combat", "hit", "", float64(pd.Health.Current))

	if pd.Health.IsDead() && s.run.Active() {
		s.endRun()
	}
}

// resolvePickups consumes every power-up inside the pickup radius.
func (s *Sim) resolvePickups() {
	pentry, ok := s.playerEntry()
	if !ok {
		return
	}
	ppos := *Position.Get(pentry)
	radius := s.cfg.PlayerRadius * s.ledger.PickupRadiusMultiplier()

	type pickup struct {
		entity donburi.Entity
		kind   PowerUpKind
		pos    Vec2
	}
	var taken []pickup
	powerUpQuery.Each(s.world, func(entry *donburi.Entry) {
		pos := *Position.Get(entry)
		if within(pos, ppos, radius) {
			taken = append(taken, pickup{entity: entry.Entity(), kind: PowerUp.Get(entry).Kind, pos: pos})
		}
	})

	for _, p := range taken {
		s.world.Remove(p.entity)
		s.applyPowerUp(pentry, p.kind)
		s.emitParticles(p.pos, s.cfg.PickupRingCount, 160, s.cfg.PickupRingLifetime, TintPickup)
	}
}

// applyPowerUp performs the effect of a consumed power-up.
func (s *Sim) applyPowerUp(pentry *donburi.Entry, kind PowerUpKind) {
	pd := Player.Get(pentry)
	switch kind {
	case PowerUpCurrency:
		s.ledger.Credit(s.cfg.PickupCurrency)
		s.stats.CurrencyEarned += s.cfg.PickupCurrency
	case PowerUpHealth:
		pd.Health.Heal(s.cfg.HealAmount)
	case PowerUpShield:
		s.shield.Arm(s.shieldDuration())
	case PowerUpAccuracy:
		pd.Combat.AddAccuracy(s.cfg.AccuracyMaxStacks)
	case PowerUpWaveBlast:
		s.waveBlast.Arm(s.cfg.WaveBlastDuration)
		pd.Weapon = WeaponWave
	}
	s.stats.Pickups++
	s.logEvent("player", "powerup", "pickup", kind.String(), 0)
	s.feed.Add(s.tick, FeedPickup, "picked up %s", kind)
}

func (s *Sim) shieldDuration() float64 {
	return s.cfg.ShieldDuration + s.ledger.ShieldDurationBonus()
}

// emitParticles scatters n cosmetic particles from pos at evenly spaced
// angles with a random phase.
func (s *Sim) emitParticles(pos Vec2, n int, speed, lifetime float64, tint ParticleTint) {
	if n <= 0 {
		return
	}
	phase := s.cosmetic.Float64() * 2 * math.Pi // #nosec G404 -- cosmetic only
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		dir := FromAngle(phase + step*float64(i))
		spawnParticle(s.world, pos, dir.Scale(speed), lifetime, tint)
	}
}
