package game

import (
	"math/rand"
	"testing"

	"github.com/tomz197/sidescroller/internal/config"
)

func wavesAt(at ...float64) []Wave {
	ws := make([]Wave, len(at))
	for i, a := range at {
		ws[i] = Wave{At: a}
	}
	return ws
}

func TestAdvanceFiresAtThreshold(t *testing.T) {
	s := NewScheduler(wavesAt(8), config.Default().Hazard)
	rs := &RunState{Distance: 8}

	calls := 0
	n := s.Advance(rs, func(Wave) { calls++ })
	if n != 1 || calls != 1 {
		t.Fatalf("fired %d (calls %d), want 1", n, calls)
	}
	if rs.WaveIndex != 1 {
		t.Errorf("WaveIndex = %d, want 1", rs.WaveIndex)
	}
	if s.Advance(rs, func(Wave) { calls++ }); calls != 1 {
		t.Error("consumed wave fired again")
	}
}

func TestAdvanceSkipOverFiresInOrder(t *testing.T) {
	s := NewScheduler(wavesAt(5, 6, 7, 40), config.Default().Hazard)
	rs := &RunState{Distance: 20}

	var got []float64
	s.Advance(rs, func(w Wave) { got = append(got, w.At) })
	want := []float64{5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fired %v, want %v", got, want)
		}
	}
	if rs.WaveIndex != 3 {
		t.Errorf("WaveIndex = %d, want 3", rs.WaveIndex)
	}
}

func TestAdvanceMonotonicFiresEachOnce(t *testing.T) {
	at := []float64{8, 18, 30, 46, 60, 60, 82, 105, 128, 150}
	s := NewScheduler(wavesAt(at...), config.Default().Hazard)
	rng := rand.New(rand.NewSource(7))
	rs := &RunState{}

	var fired []float64
	for rs.Distance < 200 {
		rs.Distance += rng.Float64() * 25
		s.Advance(rs, func(w Wave) {
			if w.At > rs.Distance {
				t.Fatalf("wave at %v fired at distance %v", w.At, rs.Distance)
			}
			fired = append(fired, w.At)
		})
	}
	if len(fired) != len(at) {
		t.Fatalf("fired %d waves, want %d", len(fired), len(at))
	}
	for i := range at {
		if fired[i] != at[i] {
			t.Fatalf("order %v, want %v", fired, at)
		}
	}
}

func TestRewindIdempotent(t *testing.T) {
	s := NewScheduler(wavesAt(8, 18, 30, 46), config.Default().Hazard)

	tests := []struct {
		checkpoint float64
		want       int
	}{
		{0, 0},
		{8, 1},
		{18, 2},
		{40, 3},
		{85, 4},
	}
	for _, tt := range tests {
		for _, before := range []int{0, 2, 4} {
			rs := &RunState{CheckpointDistance: tt.checkpoint, WaveIndex: before}
			s.Rewind(rs)
			s.Rewind(rs)
			if rs.WaveIndex != tt.want {
				t.Errorf("checkpoint %v from index %d: WaveIndex = %d, want %d",
					tt.checkpoint, before, rs.WaveIndex, tt.want)
			}
		}
	}
}

func TestHazardReschedulesFromCurrentDistance(t *testing.T) {
	h := config.Default().Hazard
	s := NewScheduler(nil, h)
	rng := rand.New(rand.NewSource(1))
	rs := &RunState{Distance: 10, NextHazard: 6}

	if !s.Hazard(rs, rng) {
		t.Fatal("hazard should fire once threshold is passed")
	}
	if rs.NextHazard < 10+h.Base || rs.NextHazard >= 10+h.Base+h.Jitter {
		t.Errorf("NextHazard = %v, want in [%v, %v)", rs.NextHazard, 10+h.Base, 10+h.Base+h.Jitter)
	}
	if s.Hazard(rs, rng) {
		t.Error("hazard fired twice at the same distance")
	}
}

func TestHazardSuppressedDuringBoss(t *testing.T) {
	s := NewScheduler(nil, config.Default().Hazard)
	rng := rand.New(rand.NewSource(1))
	rs := &RunState{Distance: 100, NextHazard: 6, BossActive: true}

	if s.Hazard(rs, rng) {
		t.Fatal("hazard must not fire during a boss encounter")
	}
	if rs.NextHazard != 6 {
		t.Errorf("suppressed hazard rescheduled to %v", rs.NextHazard)
	}
	rs.BossActive = false
	if !s.Hazard(rs, rng) {
		t.Error("hazard should resume after the encounter")
	}
}
