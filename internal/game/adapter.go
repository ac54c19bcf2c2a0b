package game

import "github.com/tomz197/sidescroller/internal/entity"

// Cue names a fire-and-forget sound effect.
type Cue string

const (
	CueShoot     Cue = "shoot"
	CueExplosion Cue = "explosion"
	CuePickup    Cue = "pickup"
	CueShield    Cue = "shield"
	CueBossHit   Cue = "bossHit"
)

// SoundEngine plays named cues. Play must not block the frame.
type SoundEngine interface {
	Play(cue Cue)
}

// HUDSnapshot is the read-only per-frame status handed to the HUD.
type HUDSnapshot struct {
	HP                 int
	MaxHP              int
	Score              int
	Distance           float64
	CheckpointIndex    int
	CheckpointDistance float64
	Power              int
	Wave               int
	WaveTotal          int
	Enemies            int
	Shield             float64
	BossHP             int // zero when no boss is on screen
	BossMaxHP          int
	State              State
}

// HUD receives one snapshot per frame.
type HUD interface {
	Update(s HUDSnapshot)
}

// Layer is a background layer offset for parallax scrolling.
type Layer struct {
	Factor float64
	Offset float64
}

// Frame is everything a renderer needs to draw one frame. Entities is only
// valid for the duration of the Render call.
type Frame struct {
	Entities []*entity.Entity
	CameraY  float64
	Layers   []Layer
	Distance float64
	State    State
	Banner   string
}

// Renderer mirrors entity lifecycle into presentation objects via the
// embedded Presenter and draws each frame.
type Renderer interface {
	entity.Presenter
	Render(f *Frame)
}

// NopRenderer discards everything.
type NopRenderer struct{}

func (NopRenderer) Attach(*entity.Entity) {}
func (NopRenderer) Detach(*entity.Entity) {}
func (NopRenderer) Render(*Frame)         {}

// NopSound discards cues.
type NopSound struct{}

func (NopSound) Play(Cue) {}

// NopHUD discards snapshots.
type NopHUD struct{}

func (NopHUD) Update(HUDSnapshot) {}

var (
	_ Renderer    = NopRenderer{}
	_ SoundEngine = NopSound{}
	_ HUD         = NopHUD{}
)
