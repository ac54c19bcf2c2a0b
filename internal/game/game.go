// Package game is the frame-driven simulation: wave and hazard scheduling,
// movement and AI, collision resolution and the game state machine.
// Presentation, sound and HUD are reached only through the Renderer,
// SoundEngine and HUD interfaces.
package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/input"
	"github.com/tomz197/sidescroller/internal/physics"
)

const bannerDuration = config.BannerFlashDuration

// Broad-phase grid bounds in world units. Positions outside are clamped
// into the edge cells.
const (
	gridMinY = -12.0
	gridMaxY = 12.0
)

// Parallax factors for the background layers, far to near.
var parallaxFactors = []float64{0.1, 0.15, 0.6}

const (
	titleBanner = "SIDESCROLLER\n\nmove: WASD / arrows   shoot: space\npause: P   restart: R   quit: Q\n\npress SPACE to start"
	pauseBanner = "PAUSED\n\npress P to resume"
)

// Options configures a Game. Zero values select defaults.
type Options struct {
	Level     *config.Level // nil = embedded default level
	Rand      *rand.Rand    // nil = seeded from the clock
	Renderer  Renderer
	Sound     SoundEngine
	HUD       HUD
	Logger    *log.Logger // nil = discard
	AfterFunc AfterFunc   // banner timer, nil = time.AfterFunc
}

// Game owns the entity store, run state and state machine. It is not safe
// for concurrent use; drive it from a single loop.
type Game struct {
	tuning config.Tuning
	level  *config.Level
	rng    *rand.Rand
	log    *log.Logger

	renderer Renderer
	sound    SoundEngine
	hud      HUD

	store  *entity.Store
	sched  *Scheduler
	banner *Banner
	player *entity.Entity

	run     RunState
	state   State
	elapsed float64 // simulation seconds since reset
	cameraY float64

	// Reusable per-tick caches
	grid         *physics.SpatialGrid
	bullets      []*entity.Entity
	enemyBullets []*entity.Entity
	enemies      []*entity.Entity
	pickups      []*entity.Entity
	frame        Frame
}

// New creates a game in the title state.
func New(opts Options) (*Game, error) {
	level := opts.Level
	if level == nil {
		var err error
		level, err = config.DefaultLevel()
		if err != nil {
			return nil, err
		}
	} else {
		if err := level.Validate(); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		lvl := *level
		lvl.ApplyDefaults()
		level = &lvl
	}

	g := &Game{
		tuning:   level.Tuning,
		level:    level,
		rng:      opts.Rand,
		log:      opts.Logger,
		renderer: opts.Renderer,
		sound:    opts.Sound,
		hud:      opts.HUD,
		banner:   NewBanner(opts.AfterFunc),
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	if g.renderer == nil {
		g.renderer = NopRenderer{}
	}
	if g.sound == nil {
		g.sound = NopSound{}
	}
	if g.hud == nil {
		g.hud = NopHUD{}
	}

	g.store = entity.NewStore(g.renderer)
	g.sched = NewScheduler(buildWaves(level), g.tuning.Hazard)
	pf := g.tuning.Playfield
	g.grid = physics.NewSpatialGrid(pf.MinX, gridMinY, pf.MaxX, gridMaxY, g.gridCellSize())
	g.frame.Layers = make([]Layer, len(parallaxFactors))

	g.Reset()
	g.log.Info("game created", "level", level.Name, "waves", g.sched.Len())
	return g, nil
}

// SetWaves replaces the wave list and rewinds to the current checkpoint.
func (g *Game) SetWaves(waves []Wave) {
	g.sched = NewScheduler(waves, g.tuning.Hazard)
	g.sched.Rewind(&g.run)
}

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Run returns a copy of the run state.
func (g *Game) Run() RunState { return g.run }

// Player returns the player entity.
func (g *Game) Player() *entity.Entity { return g.player }

// Store returns the entity store.
func (g *Game) Store() *entity.Store { return g.store }

// Banner returns the banner message holder.
func (g *Game) Banner() *Banner { return g.banner }

// Tuning returns the active tuning.
func (g *Game) Tuning() config.Tuning { return g.tuning }

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Debug("state change", "from", g.state, "to", s)
	g.state = s
}

// Frame runs one full frame: input gating, at most one simulation step and
// presentation. dt is clamped to the configured maximum step.
func (g *Game) Frame(dt float64, in input.Source) {
	dt = physics.Clamp(dt, 0, g.tuning.MaxStep)

	switch g.state {
	case StateTitle, StateGameOver:
		switch {
		case in.ConsumeJustPressed(KeyRestart):
			g.Reset()
		case input.ConsumeAny(in, keysConfirm...):
			if g.state == StateGameOver {
				g.RespawnAtCheckpoint()
			} else {
				g.Start()
			}
		}
	case StateCleared:
		if in.ConsumeJustPressed(KeyRestart) {
			g.Restart()
		}
	case StatePlaying, StatePaused:
		if in.ConsumeJustPressed(KeyPause) {
			g.TogglePause()
		}
		if in.ConsumeJustPressed(KeyRestart) {
			g.Restart()
		}
		if g.state == StatePlaying {
			g.Update(dt, in)
		}
	}

	g.present()
}

// Start leaves the title banner and begins play.
func (g *Game) Start() {
	if g.state != StateTitle {
		return
	}
	g.banner.Clear()
	g.setState(StatePlaying)
}

// TogglePause switches between playing and paused.
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.setState(StatePaused)
		g.banner.Set(pauseBanner)
	case StatePaused:
		g.setState(StatePlaying)
		g.banner.Clear()
	}
}

// Update advances the simulation by dt seconds. It does nothing unless the
// game is playing.
func (g *Game) Update(dt float64, in input.Source) {
	if g.state != StatePlaying {
		return
	}
	rs := &g.run
	st := g.tuning.Scroll
	g.elapsed += dt

	target := st.Base + math.Min(st.RampMax, rs.Distance/st.RampDistance)
	rs.ScrollSpeed = physics.Lerp(rs.ScrollSpeed, target, st.RampSmoothing)
	rs.Distance += rs.ScrollSpeed * dt

	g.updateCheckpoints()

	g.sched.Advance(rs, func(w Wave) {
		g.log.Debug("wave", "index", rs.WaveIndex, "at", w.At, "distance", rs.Distance)
		w.Spawn(g)
	})

	if g.sched.Hazard(rs, g.rng) {
		ht := g.tuning.Hazard
		g.SpawnAsteroid(physics.Vec3{
			X: ht.SpawnX + g.rng.Float64()*ht.SpreadX,
			Y: g.signedRand(ht.SpreadY),
			Z: g.signedRand(ht.SpreadZ),
		})
	}

	g.updatePlayer(dt, in)
	g.integrate(dt)
	g.store.Flush()

	g.resolveCollisions()
	g.store.Flush()
	g.cull()

	g.checkCleared()
}

// updateCheckpoints banks every checkpoint threshold the distance has
// crossed. Checkpoints are held back during a boss encounter so a respawn
// never lands past a living boss.
func (g *Game) updateCheckpoints() {
	rs := &g.run
	ct := g.tuning.Checkpoint
	for !rs.BossActive && rs.Distance >= rs.NextCheckpoint {
		rs.CheckpointDistance = rs.NextCheckpoint
		rs.CheckpointIndex++
		rs.NextCheckpoint += ct.Interval
		rs.Score += ct.Bonus
		g.banner.Flash(fmt.Sprintf("CHECKPOINT %d\n\ndistance %.0f  +%d", rs.CheckpointIndex, rs.CheckpointDistance, ct.Bonus), bannerDuration)
		g.log.Info("checkpoint", "index", rs.CheckpointIndex, "distance", rs.CheckpointDistance)
	}
}

// cull drops killed, expired and out-of-bounds entities. The player is
// never removed here.
func (g *Game) cull() {
	pf := g.tuning.Playfield
	g.store.Compact(func(e *entity.Entity) bool {
		if e.Kind == entity.KindPlayer {
			return false
		}
		return !e.Alive() || e.Pos.X < pf.MinX || e.Pos.X > pf.MaxX
	})
}

func (g *Game) checkCleared() {
	rs := &g.run
	if g.state != StatePlaying || rs.BossActive {
		return
	}
	if rs.WaveIndex >= g.sched.Len() && rs.Distance > g.level.ClearDistance {
		g.setState(StateCleared)
		g.banner.Set(fmt.Sprintf("SEGMENT CLEARED\n\nscore %d\n\npress R to replay", rs.Score))
		g.log.Info("segment cleared", "score", rs.Score, "distance", rs.Distance)
	}
}

func (g *Game) killPlayer() {
	g.setState(StateGameOver)
	g.explode(g.player.Pos)
	g.player.Visible = false
	g.banner.Set(fmt.Sprintf("SHIP DOWN\n\nscore %d\n\nSPACE respawn at checkpoint   R restart", g.run.Score))
	g.log.Info("player died", "distance", g.run.Distance, "score", g.run.Score, "checkpoint", g.run.CheckpointIndex)
}

// Reset discards the run and returns to the title screen.
func (g *Game) Reset() {
	g.store.Clear(func(*entity.Entity) bool { return false })

	g.run = RunState{
		ScrollSpeed:    g.tuning.Scroll.Base,
		FireRate:       g.tuning.Weapon.BaseFireRate,
		NextCheckpoint: g.tuning.Checkpoint.First,
		NextHazard:     g.tuning.Hazard.First,
	}
	g.elapsed = 0
	g.cameraY = 0

	g.player = g.spawnPlayer()
	g.store.Flush()

	g.setState(StateTitle)
	g.banner.Set(titleBanner)
	g.log.Debug("run reset")
}

// Restart resets the run and starts playing immediately.
func (g *Game) Restart() {
	g.Reset()
	g.Start()
}

// RespawnAtCheckpoint restores the player at the last checkpoint: all other
// entities are removed, the wave index is rewound and the scroll speed
// restarts at a checkpoint-scaled baseline. Score and power are kept.
func (g *Game) RespawnAtCheckpoint() {
	rs := &g.run
	g.store.Clear(func(e *entity.Entity) bool { return e == g.player })

	rs.Distance = rs.CheckpointDistance
	rs.ScrollSpeed = g.tuning.Scroll.Base + float64(rs.CheckpointIndex)*g.tuning.Scroll.RespawnPerStep
	rs.NextHazard = rs.Distance + g.tuning.Hazard.First
	rs.FireCooldown = 0
	rs.Invulnerable = 0
	rs.Shield = 0
	rs.BossActive = false
	g.sched.Rewind(rs)

	p := g.player
	p.HP = p.MaxHP
	p.Pos = physics.Vec3{}
	p.Vel = physics.Vec3{}
	p.Rot = physics.Vec3{}
	p.ShieldActive = false
	p.Visible = true

	g.setState(StateTitle)
	g.banner.Set(fmt.Sprintf("CHECKPOINT %d\n\nrespawned at distance %.0f\n\npress SPACE to continue", rs.CheckpointIndex, rs.CheckpointDistance))
	g.log.Info("respawn", "checkpoint", rs.CheckpointIndex, "distance", rs.Distance, "wave", rs.WaveIndex)
}

// present hands the current snapshot to the renderer and HUD.
func (g *Game) present() {
	rs := &g.run
	g.cameraY = physics.Lerp(g.cameraY, g.player.Pos.Y*0.08, 0.05)

	for i, f := range parallaxFactors {
		g.frame.Layers[i] = Layer{Factor: f, Offset: -rs.Distance * f}
	}
	g.frame.Entities = g.store.All()
	g.frame.CameraY = g.cameraY
	g.frame.Distance = rs.Distance
	g.frame.State = g.state
	g.frame.Banner = g.banner.Text()
	g.renderer.Render(&g.frame)

	g.hud.Update(g.snapshot())
}

func (g *Game) snapshot() HUDSnapshot {
	rs := &g.run
	s := HUDSnapshot{
		HP:                 g.player.HP,
		MaxHP:              g.player.MaxHP,
		Score:              rs.Score,
		Distance:           rs.Distance,
		CheckpointIndex:    rs.CheckpointIndex,
		CheckpointDistance: rs.CheckpointDistance,
		Power:              rs.Power,
		Wave:               min(rs.WaveIndex, g.sched.Len()),
		WaveTotal:          g.sched.Len(),
		Shield:             rs.Shield,
		State:              g.state,
	}
	for _, e := range g.store.All() {
		if !e.Alive() || !e.Kind.EnemyLike() {
			continue
		}
		s.Enemies++
		if e.Kind == entity.KindBoss {
			s.BossHP, s.BossMaxHP = e.HP, e.MaxHP
		}
	}
	return s
}
