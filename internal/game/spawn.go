package game

import (
	"math"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/physics"
)

// signedRand returns a uniform value in [-spread/2, spread/2).
func (g *Game) signedRand(spread float64) float64 {
	return (g.rng.Float64() - 0.5) * spread
}

func (g *Game) spawnPlayer() *entity.Entity {
	t := g.tuning.Player
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindPlayer,
		Radius:     t.Radius,
		Damageable: true,
		HP:         t.MaxHP,
		MaxHP:      t.MaxHP,
	})
}

// SpawnEnemy queues a plain enemy. hp <= 0 uses the tuned default.
func (g *Game) SpawnEnemy(pos physics.Vec3, hp, variant int) *entity.Entity {
	t := g.tuning.Enemy
	if hp <= 0 {
		hp = t.HP
	}
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindEnemy,
		Variant:    variant,
		Pos:        pos,
		Vel:        physics.Vec3{X: -1.2 - g.rng.Float64()*0.7, Y: g.signedRand(1.2)},
		Radius:     t.Radius,
		Damageable: true,
		HP:         hp,
		MaxHP:      hp,
		Score:      t.Score,
		Damage:     t.ContactDamage,
	})
}

// SpawnKamikaze queues a homing rammer.
func (g *Game) SpawnKamikaze(pos physics.Vec3, hp int) *entity.Entity {
	t := g.tuning.Kamikaze
	if hp <= 0 {
		hp = t.HP
	}
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindKamikaze,
		Pos:        pos,
		Vel:        physics.Vec3{X: -t.Speed},
		Radius:     t.Radius,
		Damageable: true,
		HP:         hp,
		MaxHP:      hp,
		Score:      t.Score,
		Damage:     t.ContactDamage,
	})
}

// SpawnShooter queues a drifting turret that expires after its lifetime.
func (g *Game) SpawnShooter(pos physics.Vec3, hp int) *entity.Entity {
	t := g.tuning.Shooter
	if hp <= 0 {
		hp = t.HP
	}
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindShooter,
		Pos:        pos,
		Vel:        physics.Vec3{X: t.Drift},
		Radius:     t.Radius,
		Damageable: true,
		HP:         hp,
		MaxHP:      hp,
		Mortal:     true,
		TTL:        t.Lifetime,
		Score:      t.Score,
		Damage:     t.ContactDamage,
	})
}

// SpawnBoss queues the boss and starts the encounter, which suppresses
// hazards until it is defeated.
func (g *Game) SpawnBoss(pos physics.Vec3, hp int) *entity.Entity {
	t := g.tuning.Boss
	if hp <= 0 {
		hp = t.HP
	}
	g.run.BossActive = true
	g.log.Info("boss encounter", "distance", g.run.Distance, "hp", hp)
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindBoss,
		Pos:        pos,
		Radius:     t.Radius,
		Damageable: true,
		HP:         hp,
		MaxHP:      hp,
		Score:      t.Score,
		Damage:     t.ContactDamage,
		BossPhase:  1,
	})
}

// SpawnAsteroid queues a randomly sized, randomly spinning rock.
func (g *Game) SpawnAsteroid(pos physics.Vec3) *entity.Entity {
	t := g.tuning.Asteroid
	size := t.MinSize + g.rng.Float64()*t.SizeRange
	return g.store.Spawn(&entity.Entity{
		Kind:       entity.KindAsteroid,
		Pos:        pos,
		Vel:        physics.Vec3{X: -0.6 - g.rng.Float64()*0.8, Y: g.signedRand(0.6)},
		Radius:     size * t.RadiusFactor,
		Damageable: true,
		HP:         t.HP,
		MaxHP:      t.HP,
		Score:      t.Score,
		Damage:     t.ContactDamage,
		Scale:      size,
		Spin: physics.Vec3{
			X: g.signedRand(t.Spin),
			Y: g.signedRand(t.Spin),
			Z: g.signedRand(t.Spin),
		},
	})
}

// SpawnPickup queues a collectible.
func (g *Game) SpawnPickup(pos physics.Vec3, kind entity.PickupKind) *entity.Entity {
	t := g.tuning.Pickup
	return g.store.Spawn(&entity.Entity{
		Kind:   entity.KindPickup,
		Pos:    pos,
		Vel:    physics.Vec3{X: t.Drift},
		Radius: t.Radius,
		Mortal: true,
		TTL:    t.TTL,
		Pickup: kind,
	})
}

// spawnBullet fires from pos along dir. dir is used as given, so angled
// shots travel slightly faster than straight ones.
func (g *Game) spawnBullet(from, dir physics.Vec3, hostile bool) *entity.Entity {
	t := g.tuning.Weapon
	e := &entity.Entity{
		Kind:   entity.KindBullet,
		Pos:    from,
		Radius: t.BulletRadius,
		Mortal: true,
		TTL:    t.BulletTTL,
	}
	speed := t.BulletSpeed
	if hostile {
		e.Kind = entity.KindEnemyBullet
		e.Damage = t.EnemyBulletDamage
		speed = t.EnemyBulletSpeed
	} else {
		e.Damage = 1 + g.run.Power/2
	}
	e.Vel = physics.Vec3{X: dir.X * speed, Y: dir.Y * speed}
	e.Rot.Z = math.Atan2(dir.Y, dir.X)
	return g.store.Spawn(e)
}

// aimedShot fires an enemy bullet from e toward the player. Nothing is
// fired when the two share a position.
func (g *Game) aimedShot(e *entity.Entity) {
	to := g.player.Pos.Sub(e.Pos)
	to.Z = 0
	dir, ok := to.Normalize()
	if !ok {
		return
	}
	g.spawnBullet(e.Pos.Add(physics.Vec3{X: -0.7}), dir, true)
}

// explode spawns a burst of particles plus a short flash at pos.
func (g *Game) explode(pos physics.Vec3) {
	t := g.tuning.Explosion
	for i := 0; i < t.Particles; i++ {
		g.store.Spawn(&entity.Entity{
			Kind: entity.KindParticle,
			Pos:  pos,
			Vel: physics.Vec3{
				X: (g.rng.Float64() - 0.2) * t.Speed,
				Y: g.signedRand(t.Speed),
				Z: g.signedRand(t.Speed * 0.6),
			},
			Mortal: true,
			TTL:    t.MinTTL + g.rng.Float64()*t.TTLRange,
		})
	}
	g.store.Spawn(&entity.Entity{
		Kind:    entity.KindParticle,
		Variant: 1,
		Pos:     pos,
		Mortal:  true,
		TTL:     t.FlashTTL,
		Scale:   4,
	})
	g.sound.Play(CueExplosion)
}

// dropPickup rolls for a pickup at a destroyed enemy's position.
func (g *Game) dropPickup(e *entity.Entity) {
	t := g.tuning.Pickup
	if g.rng.Float64() >= t.DropChance {
		return
	}
	shield := t.ShieldChance
	if e.Variant == 1 {
		shield = t.ShieldChanceV1
	}
	kind := entity.PickupHealth
	switch {
	case g.rng.Float64() < shield:
		kind = entity.PickupShield
	case g.rng.Float64() < t.PowerShare:
		kind = entity.PickupPower
	}
	g.SpawnPickup(e.Pos.Add(physics.Vec3{X: 1.2}), kind)
}

// spawnGroup creates the entities described by one level spawn entry.
func (g *Game) spawnGroup(s config.SpawnConfig) {
	count := s.Count
	if count == 0 {
		count = 1
	}
	mid := float64(count-1) / 2
	for i := 0; i < count; i++ {
		pos := physics.Vec3{
			X: s.X + float64(i)*s.DX,
			Y: s.Y + (float64(i)-mid)*s.DY,
			Z: s.Z,
		}
		if s.AltZ != 0 {
			if i%2 == 1 {
				pos.Z += s.AltZ
			} else {
				pos.Z -= s.AltZ
			}
		}
		if s.SpreadY != 0 {
			pos.Y += g.signedRand(s.SpreadY)
		}
		if s.SpreadZ != 0 {
			pos.Z += g.signedRand(s.SpreadZ)
		}
		variant := s.Variant
		if s.Alternate {
			variant = i % 2
		}

		var e *entity.Entity
		switch s.Kind {
		case "enemy":
			e = g.SpawnEnemy(pos, s.HP, variant)
		case "kamikaze":
			e = g.SpawnKamikaze(pos, s.HP)
		case "shooter":
			e = g.SpawnShooter(pos, s.HP)
		case "boss":
			e = g.SpawnBoss(pos, s.HP)
		case "asteroid":
			e = g.SpawnAsteroid(pos)
		case "pickup":
			e = g.SpawnPickup(pos, g.levelPickup(s))
		default:
			g.log.Warn("unknown spawn kind", "kind", s.Kind)
			continue
		}
		if s.Radius > 0 {
			e.Radius = s.Radius
		}
		if s.Scale > 0 {
			e.Scale = s.Scale
		}
	}
}

func (g *Game) levelPickup(s config.SpawnConfig) entity.PickupKind {
	if s.Pickup == "random" {
		if g.rng.Float64() < s.PowerOdds {
			return entity.PickupPower
		}
		return entity.PickupHealth
	}
	kind, _ := entity.ParsePickupKind(s.Pickup)
	return kind
}

// buildWaves turns level wave entries into scheduler waves.
func buildWaves(level *config.Level) []Wave {
	waves := make([]Wave, 0, len(level.Waves))
	for _, wc := range level.Waves {
		spawns := wc.Spawns
		waves = append(waves, Wave{
			At: wc.At,
			Spawn: func(g *Game) {
				for _, s := range spawns {
					g.spawnGroup(s)
				}
			},
		})
	}
	return waves
}
