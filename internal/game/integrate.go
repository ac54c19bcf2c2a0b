package game

import (
	"fmt"
	"math"

	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/physics"
)

// integrate advances every non-player entity by dt: world scroll first,
// then velocity, then the kind's behavior.
func (g *Game) integrate(dt float64) {
	scroll := g.run.ScrollSpeed * dt
	for _, e := range g.store.All() {
		if e.Kind == entity.KindPlayer || !e.Alive() {
			continue
		}

		e.Pos.X -= scroll
		e.Pos = e.Pos.AddScaled(e.Vel, dt)

		if e.Mortal {
			e.TTL = math.Max(0, e.TTL-dt)
		}

		switch e.Kind {
		case entity.KindEnemy:
			g.updateEnemy(e, dt)
		case entity.KindKamikaze:
			g.updateKamikaze(e, dt)
		case entity.KindShooter:
			g.updateShooter(e, dt)
		case entity.KindBoss:
			g.updateBoss(e, dt)
		case entity.KindAsteroid:
			e.Rot = e.Rot.AddScaled(e.Spin, dt)
		case entity.KindPickup:
			e.Rot.X += dt * 1.8
			e.Rot.Y += dt * 2.1
		case entity.KindParticle:
			e.Opacity = physics.Clamp(e.TTL*g.tuning.Explosion.FadeRate, 0, 1)
		case entity.KindBullet, entity.KindEnemyBullet:
		case entity.KindPlayer:
		default:
			panic(fmt.Sprintf("game: integrate: unhandled kind %v", e.Kind))
		}
	}
}

func (g *Game) updateEnemy(e *entity.Entity, dt float64) {
	t := g.tuning.Enemy
	e.Rot.Y += dt * 0.8
	e.Rot.X = math.Sin(g.elapsed*1.3+e.Pos.X) * 0.2

	if g.rng.Float64() < dt*t.FireRate && e.Pos.X < t.FireMaxX && e.Pos.X > t.FireMinX {
		g.aimedShot(e)
	}

	target := math.Sin((g.run.Distance+e.Pos.X)*t.OscFrequency) * t.OscAmplitude
	e.Vel.Y = physics.Lerp(e.Vel.Y, target, t.OscSmoothing)
}

// updateKamikaze steers velocity toward the player with exponential
// smoothing. Steering is skipped when the two positions coincide.
func (g *Game) updateKamikaze(e *entity.Entity, dt float64) {
	t := g.tuning.Kamikaze
	dir, ok := g.player.Pos.Sub(e.Pos).Normalize()
	if !ok {
		return
	}
	e.Vel = physics.LerpVec(e.Vel, dir.Scale(t.Speed), physics.SmoothFactor(t.Steering, dt))
	e.Rot.Z = math.Atan2(-e.Vel.Y, -e.Vel.X)
}

func (g *Game) updateShooter(e *entity.Entity, dt float64) {
	t := g.tuning.Shooter
	e.Rot.Z += dt * 0.6
	if g.rng.Float64() < dt*t.FireRate && e.Pos.X < g.tuning.Enemy.FireMaxX && e.Pos.X > g.tuning.Enemy.FireMinX {
		g.aimedShot(e)
	}
}

// bossMotion returns amplitude, frequency and fire rate for the boss's
// current phase.
func (g *Game) bossMotion(e *entity.Entity) (amp, freq, rate float64) {
	t := g.tuning.Boss
	if e.BossPhase >= 2 {
		return t.EnragedAmplitude, t.EnragedFrequency, t.EnragedFireRate
	}
	return t.Amplitude, t.Frequency, t.FireRate
}

// updateBossPhase switches the boss to phase 2 once its hit points drop
// below the enrage fraction. The switch happens once and is never undone.
func (g *Game) updateBossPhase(e *entity.Entity) {
	if e.BossPhase >= 2 {
		return
	}
	if float64(e.HP) < float64(e.MaxHP)*g.tuning.Boss.EnrageFraction {
		e.BossPhase = 2
		g.log.Info("boss enraged", "hp", e.HP, "maxHP", e.MaxHP)
	}
}

// updateBoss holds the boss at its station, sweeps it vertically on the
// simulation clock and fires the fan.
func (g *Game) updateBoss(e *entity.Entity, dt float64) {
	t := g.tuning.Boss
	if e.Pos.X <= t.StationX {
		e.Pos.X = t.StationX
		e.Vel.X = 0
	}

	amp, freq, rate := g.bossMotion(e)
	e.Pos.Y = math.Sin(g.elapsed*freq) * amp
	e.Vel.Y = 0

	if g.rng.Float64() < dt*rate {
		for _, a := range t.Fan {
			g.spawnBullet(e.Pos.Add(physics.Vec3{X: -t.Radius}), physics.Vec3{X: -math.Cos(a), Y: math.Sin(a)}, true)
		}
	}
}
