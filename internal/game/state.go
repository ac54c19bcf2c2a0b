package game

import "fmt"

// State is the game phase.
type State int

const (
	StateTitle    State = iota // Title or respawn banner, waiting for confirm
	StatePlaying               // Simulation running
	StatePaused                // Frozen, still presented
	StateGameOver              // Player died, checkpoint data kept
	StateCleared               // Segment finished
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	case StateCleared:
		return "cleared"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RunState is the mutable per-run bookkeeping. It is owned by Game and only
// changes inside an update step or on reset/respawn.
type RunState struct {
	Score              int
	Distance           float64
	ScrollSpeed        float64
	FireCooldown       float64
	FireRate           float64
	Power              int
	Invulnerable       float64 // seconds of damage immunity left
	Shield             float64 // seconds of shield left
	CheckpointDistance float64
	CheckpointIndex    int
	NextCheckpoint     float64
	NextHazard         float64
	WaveIndex          int
	BossActive         bool
}
