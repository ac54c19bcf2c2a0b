package game

import (
	"math"

	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/physics"
)

// minGridCellSize is the smallest broad-phase cell. Cells must be at least
// as large as the biggest enemy radius plus a bullet radius.
const minGridCellSize = 4.0

// gridCellSize returns a broad-phase cell size large enough for every
// radius the tuning and level can produce.
func (g *Game) gridCellSize() float64 {
	t := g.tuning
	maxR := math.Max(t.Enemy.Radius, t.Kamikaze.Radius)
	maxR = math.Max(maxR, t.Shooter.Radius)
	maxR = math.Max(maxR, t.Boss.Radius)
	maxR = math.Max(maxR, (t.Asteroid.MinSize+t.Asteroid.SizeRange)*t.Asteroid.RadiusFactor)
	for _, w := range g.level.Waves {
		for _, s := range w.Spawns {
			maxR = math.Max(maxR, s.Radius)
		}
	}
	return math.Max(minGridCellSize, maxR+t.Weapon.BulletRadius)
}

// collectCollidables partitions alive entities into the reusable caches.
func (g *Game) collectCollidables() {
	g.bullets = g.bullets[:0]
	g.enemyBullets = g.enemyBullets[:0]
	g.enemies = g.enemies[:0]
	g.pickups = g.pickups[:0]

	for _, e := range g.store.All() {
		if !e.Alive() {
			continue
		}
		switch {
		case e.Kind == entity.KindBullet:
			g.bullets = append(g.bullets, e)
		case e.Kind == entity.KindEnemyBullet:
			g.enemyBullets = append(g.enemyBullets, e)
		case e.Kind == entity.KindPickup:
			g.pickups = append(g.pickups, e)
		case e.Kind.EnemyLike():
			g.enemies = append(g.enemies, e)
		}
	}

	g.grid.Clear()
	for i, e := range g.enemies {
		g.grid.Insert(e.Pos.X, e.Pos.Y, i)
	}
}

// resolveCollisions applies every hit for this tick. Each effect is applied
// immediately and killed entities are skipped by later checks.
func (g *Game) resolveCollisions() {
	g.collectCollidables()

	// Player bullets vs enemies
	for _, b := range g.bullets {
		g.grid.QueryAround(b.Pos.X, b.Pos.Y, func(j int) bool {
			e := g.enemies[j]
			if !e.Alive() || !entity.Hits(b, e) {
				return false
			}
			b.Kill()
			g.damageEnemy(e, b.Damage)
			return true // bullet consumed
		})
	}

	p := g.player

	// Enemy bullets vs player
	for _, b := range g.enemyBullets {
		if !entity.Hits(b, p) {
			continue
		}
		b.Kill()
		if g.damagePlayer(b.Damage) {
			g.explode(p.Pos.Add(physics.Vec3{X: 0.2}))
		}
	}

	// Enemies ramming the player
	for _, e := range g.enemies {
		if g.state != StatePlaying {
			return
		}
		if !e.Alive() || !entity.Hits(e, p) {
			continue
		}
		if e.Kind != entity.KindBoss {
			e.Kill()
			g.explode(e.Pos)
		}
		if g.damagePlayer(e.Damage) {
			g.explode(p.Pos)
		}
	}

	// Pickups, unless the player went down this tick
	for _, pu := range g.pickups {
		if g.state != StatePlaying {
			return
		}
		if !entity.Hits(pu, p) {
			continue
		}
		pu.Kill()
		g.applyPickup(pu.Pickup)
	}
}

// damageEnemy applies bullet damage to an enemy-like entity and handles its
// destruction.
func (g *Game) damageEnemy(e *entity.Entity, amount int) {
	dead := e.ApplyDamage(amount)
	if e.Kind == entity.KindBoss {
		g.sound.Play(CueBossHit)
		g.updateBossPhase(e)
	}
	if !dead {
		return
	}

	e.Kill()
	g.run.Score += e.Score
	g.explode(e.Pos)

	if e.Kind == entity.KindBoss {
		g.run.BossActive = false
		g.banner.Flash("BOSS DEFEATED", bannerDuration)
		g.log.Info("boss defeated", "distance", g.run.Distance, "score", g.run.Score)
		return
	}
	g.dropPickup(e)
}

// damagePlayer applies damage unless the player is invulnerable, shielded
// or no longer playing. It reports whether damage was applied.
func (g *Game) damagePlayer(amount int) bool {
	rs := &g.run
	if g.state != StatePlaying || rs.Invulnerable > 0 || rs.Shield > 0 {
		return false
	}
	dead := g.player.ApplyDamage(amount)
	rs.Invulnerable = g.tuning.Player.Invulnerable
	g.log.Debug("player hit", "damage", amount, "hp", g.player.HP)
	if dead {
		g.killPlayer()
	}
	return true
}

// applyPickup applies a collected pickup. Counts are clamped to their caps
// and score is awarded even when nothing changes.
func (g *Game) applyPickup(kind entity.PickupKind) {
	t := g.tuning.Pickup
	rs := &g.run
	switch kind {
	case entity.PickupHealth:
		g.player.Heal(t.Heal)
		rs.Score += t.HealthScore
		g.sound.Play(CuePickup)
	case entity.PickupPower:
		rs.Power = physics.ClampInt(rs.Power+1, 0, g.tuning.Weapon.MaxPower)
		rs.Score += t.PowerScore
		g.sound.Play(CuePickup)
	case entity.PickupShield:
		rs.Shield = t.ShieldDuration
		g.player.ShieldActive = true
		rs.Score += t.ShieldScore
		g.sound.Play(CueShield)
	}
}
