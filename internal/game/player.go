package game

import (
	"math"

	"github.com/tomz197/sidescroller/internal/input"
	"github.com/tomz197/sidescroller/internal/physics"
)

// Movement and action keys.
var (
	keysUp    = []string{"w", input.KeyArrowUp}
	keysDown  = []string{"s", input.KeyArrowDown}
	keysLeft  = []string{"a", input.KeyArrowLeft}
	keysRight = []string{"d", input.KeyArrowRight}
	keysFire  = []string{input.KeySpace}

	keysConfirm = []string{input.KeySpace, input.KeyEnter}
)

const (
	KeyPause   = "p"
	KeyRestart = "r"
)

// intent reads the held direction keys into a signed vector. Diagonals are
// not normalized.
func intent(in input.Source) physics.Vec3 {
	var v physics.Vec3
	if input.AnyHeld(in, keysUp...) {
		v.Y++
	}
	if input.AnyHeld(in, keysDown...) {
		v.Y--
	}
	if input.AnyHeld(in, keysLeft...) {
		v.X--
	}
	if input.AnyHeld(in, keysRight...) {
		v.X++
	}
	return v
}

// updatePlayer moves, banks and fires the player ship and ticks the
// damage timers.
func (g *Game) updatePlayer(dt float64, in input.Source) {
	t := g.tuning.Player
	rs := &g.run
	p := g.player

	rs.Invulnerable = math.Max(0, rs.Invulnerable-dt)
	rs.Shield = math.Max(0, rs.Shield-dt)
	p.ShieldActive = rs.Shield > 0

	move := intent(in)
	p.Vel = move.Scale(t.Speed)
	p.Pos.X = physics.Clamp(p.Pos.X+p.Vel.X*dt, t.MinX, t.MaxX)
	p.Pos.Y = physics.Clamp(p.Pos.Y+p.Vel.Y*dt, t.MinY, t.MaxY)

	p.Rot.Z = physics.Lerp(p.Rot.Z, -move.Y*t.BankRoll, t.BankSmoothing)
	p.Rot.Y = physics.Lerp(p.Rot.Y, move.X*t.BankYaw, t.BankSmoothing)

	rs.FireCooldown = math.Max(0, rs.FireCooldown-dt)
	if input.AnyHeld(in, keysFire...) && rs.FireCooldown <= 0 {
		rs.FireCooldown = 1 / (rs.FireRate + float64(rs.Power)*g.tuning.Weapon.PowerBonus)
		g.fire()
	}
}

// fire spawns the weapon pattern for the current power level.
func (g *Game) fire() {
	base := g.player.Pos.Add(physics.Vec3{X: g.tuning.Weapon.MuzzleOffset})
	g.spawnBullet(base, physics.Vec3{X: 1}, false)
	if g.run.Power >= 2 {
		g.spawnBullet(base.Add(physics.Vec3{Y: 0.25}), physics.Vec3{X: 1, Y: 0.08}, false)
		g.spawnBullet(base.Add(physics.Vec3{Y: -0.25}), physics.Vec3{X: 1, Y: -0.08}, false)
	}
	if g.run.Power >= 4 {
		g.spawnBullet(base.Add(physics.Vec3{Y: 0.5}), physics.Vec3{X: 1, Y: 0.16}, false)
		g.spawnBullet(base.Add(physics.Vec3{Y: -0.5}), physics.Vec3{X: 1, Y: -0.16}, false)
	}
	g.sound.Play(CueShoot)
}
