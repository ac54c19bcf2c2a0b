package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLevel(t *testing.T) {
	lvl, err := DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel: %v", err)
	}
	if len(lvl.Waves) != 12 {
		t.Errorf("got %d waves, want 12", len(lvl.Waves))
	}
	if lvl.ClearDistance <= lvl.LastWaveAt() {
		t.Errorf("clear distance %.0f must lie beyond last wave %.0f", lvl.ClearDistance, lvl.LastWaveAt())
	}
	if got := lvl.Tuning.Player.MaxHP; got != 5 {
		t.Errorf("untouched tuning should keep defaults, maxHP = %d", got)
	}
	var bosses int
	for _, w := range lvl.Waves {
		for _, s := range w.Spawns {
			if s.Kind == "boss" {
				bosses++
			}
		}
	}
	if bosses != 1 {
		t.Errorf("expected one boss spawn, got %d", bosses)
	}
}

func TestParseLevelOverridesTuning(t *testing.T) {
	data := []byte(`
name: test
tuning:
  player:
    speed: 12
waves:
  - at: 5
    spawns:
      - { kind: asteroid, x: 20 }
`)
	lvl, err := ParseLevel(data)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.Tuning.Player.Speed != 12 {
		t.Errorf("speed = %v, want 12", lvl.Tuning.Player.Speed)
	}
	if lvl.Tuning.Player.Radius != Default().Player.Radius {
		t.Errorf("radius should keep default, got %v", lvl.Tuning.Player.Radius)
	}
	if lvl.Tuning.Weapon.MaxPower != 6 {
		t.Errorf("maxPower = %d, want 6", lvl.Tuning.Weapon.MaxPower)
	}
}

func TestParseLevelRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no waves", "name: empty\n", "no waves"},
		{"out of order", "waves:\n  - at: 10\n  - at: 4\n", "comes before"},
		{"unknown kind", "waves:\n  - at: 1\n    spawns:\n      - { kind: dragon }\n", "unknown kind"},
		{"unknown pickup", "waves:\n  - at: 1\n    spawns:\n      - { kind: pickup, pickup: gold }\n", "unknown pickup"},
		{"negative count", "waves:\n  - at: 1\n    spawns:\n      - { kind: enemy, count: -2 }\n", "negative"},
		{"bad max step", "tuning:\n  maxStep: 0\nwaves:\n  - at: 1\n", "maxStep"},
		{"bad fire rate", "tuning:\n  weapon:\n    baseFireRate: -1\nwaves:\n  - at: 1\n", "baseFireRate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not match ErrInvalidLevel", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseLevelBadTuningMatchesBothSentinels(t *testing.T) {
	_, err := ParseLevel([]byte("tuning:\n  boss:\n    hp: 0\nwaves:\n  - at: 1\n"))
	if !errors.Is(err, ErrInvalidLevel) || !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("got %v, want both sentinels", err)
	}
}

func TestParseLevelSyntaxError(t *testing.T) {
	_, err := ParseLevel([]byte("waves: [\n"))
	if err == nil {
		t.Fatal("expected YAML error")
	}
	if errors.Is(err, ErrInvalidLevel) {
		t.Error("syntax errors are not validation errors")
	}
}

func TestLoadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lvl.yaml")
	if err := os.WriteFile(path, []byte("waves:\n  - at: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.LastWaveAt() != 3 {
		t.Errorf("LastWaveAt = %v", lvl.LastWaveAt())
	}
	if lvl.ClearDistance != 23 {
		t.Errorf("ClearDistance = %v, want last wave + margin", lvl.ClearDistance)
	}

	_, err = LoadLevel(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error %v should wrap os.ErrNotExist", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	lvl := &Level{Tuning: Default(), Waves: []WaveConfig{{At: 10}, {At: 40}}}
	lvl.ApplyDefaults()
	if lvl.ClearDistance != 60 {
		t.Errorf("ClearDistance = %v, want 60", lvl.ClearDistance)
	}

	lvl.ClearDistance = 90
	lvl.ApplyDefaults()
	if lvl.ClearDistance != 90 {
		t.Errorf("explicit ClearDistance overwritten: %v", lvl.ClearDistance)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SIDESCROLLER_TEST_INT", "42")
	if got := GetEnvInt("SIDESCROLLER_TEST_INT", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	t.Setenv("SIDESCROLLER_TEST_INT", "nope")
	if got := GetEnvInt("SIDESCROLLER_TEST_INT", 7); got != 7 {
		t.Errorf("got %d, want fallback 7", got)
	}
	if got := GetEnv("SIDESCROLLER_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q", got)
	}
}
