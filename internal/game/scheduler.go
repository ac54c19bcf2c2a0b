package game

import (
	"math/rand"

	"github.com/tomz197/sidescroller/internal/config"
)

// Wave is a one-shot spawn bound to a distance threshold.
type Wave struct {
	At    float64
	Spawn func(g *Game)
}

// Scheduler holds the ordered wave list and the hazard spacing. Progress
// (wave index, next hazard threshold) lives in RunState.
type Scheduler struct {
	waves  []Wave
	hazard config.HazardTuning
}

// NewScheduler creates a scheduler. Waves must be sorted by At.
func NewScheduler(waves []Wave, hazard config.HazardTuning) *Scheduler {
	return &Scheduler{waves: waves, hazard: hazard}
}

// Len returns the number of waves.
func (s *Scheduler) Len() int {
	return len(s.waves)
}

// Advance fires every wave whose threshold the distance has reached or
// passed, in order, and returns how many fired.
func (s *Scheduler) Advance(rs *RunState, fire func(w Wave)) int {
	fired := 0
	for rs.WaveIndex < len(s.waves) && rs.Distance >= s.waves[rs.WaveIndex].At {
		w := s.waves[rs.WaveIndex]
		rs.WaveIndex++ // advance first so a spawn action never sees itself as pending
		fire(w)
		fired++
	}
	return fired
}

// Hazard reports whether a hazard is due and, if so, schedules the next
// one. It never fires while a boss encounter is active.
func (s *Scheduler) Hazard(rs *RunState, rng *rand.Rand) bool {
	if rs.BossActive || rs.Distance < rs.NextHazard {
		return false
	}
	rs.NextHazard = rs.Distance + s.hazard.Base + rng.Float64()*s.hazard.Jitter
	return true
}

// Rewind sets the wave index to the number of waves at or before the
// checkpoint distance.
func (s *Scheduler) Rewind(rs *RunState) {
	n := 0
	for n < len(s.waves) && s.waves[n].At <= rs.CheckpointDistance {
		n++
	}
	rs.WaveIndex = n
}
