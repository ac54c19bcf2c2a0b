package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed levels/default.yaml
var defaultLevelYAML []byte

// defaultClearMargin is how far past the last wave a level without an
// explicit clearDistance is cleared.
const defaultClearMargin = 20

// ErrInvalidLevel is returned when a level file parses but cannot be played.
var ErrInvalidLevel = errors.New("invalid level")

// Level is a playable segment: tuning overrides plus the ordered wave list.
type Level struct {
	Name          string       `yaml:"name"`
	ClearDistance float64      `yaml:"clearDistance"` // distance after the last wave that clears the segment
	Tuning        Tuning       `yaml:"tuning"`
	Waves         []WaveConfig `yaml:"waves"`
}

// WaveConfig is one distance-triggered spawn.
type WaveConfig struct {
	At     float64       `yaml:"at"`
	Spawns []SpawnConfig `yaml:"spawns"`
}

// SpawnConfig describes a group of entities created by a wave. Count > 1
// lays the group out as a formation: X advances by DX, Y is centered around
// Y with spacing DY, and Z alternates sign by AltZ. SpreadY/SpreadZ add a
// uniform random offset in [-spread/2, spread/2).
type SpawnConfig struct {
	Kind      string  `yaml:"kind"` // enemy, kamikaze, shooter, boss, asteroid, pickup
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	HP        int     `yaml:"hp"` // 0 = kind default
	Variant   int     `yaml:"variant"`
	Alternate bool    `yaml:"alternate"` // variant alternates 0/1 across the formation
	Count     int     `yaml:"count"`
	DX        float64 `yaml:"dx"`
	DY        float64 `yaml:"dy"`
	AltZ      float64 `yaml:"altZ"`
	SpreadY   float64 `yaml:"spreadY"`
	SpreadZ   float64 `yaml:"spreadZ"`
	Pickup    string  `yaml:"pickup"`    // health, power, shield, random
	PowerOdds float64 `yaml:"powerOdds"` // random pickup: chance of power over health
	Radius    float64 `yaml:"radius"`    // 0 = kind default
	Scale     float64 `yaml:"scale"`     // presentation scale, 0 = 1
}

// Spawn kinds accepted in level files.
var spawnKinds = map[string]bool{
	"enemy": true, "kamikaze": true, "shooter": true, "boss": true, "asteroid": true, "pickup": true,
}

var pickupNames = map[string]bool{
	"health": true, "power": true, "shield": true, "random": true,
}

// DefaultLevel returns the embedded stock level.
func DefaultLevel() (*Level, error) {
	lvl, err := ParseLevel(defaultLevelYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded level: %w", err)
	}
	return lvl, nil
}

// LoadLevel reads and validates a level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level file %s: %w", path, err)
	}
	return lvl, nil
}

// ParseLevel decodes YAML over the default tuning and validates the result.
func ParseLevel(data []byte) (*Level, error) {
	lvl := Level{Tuning: Default()}
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("failed to parse level YAML: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	lvl.ApplyDefaults()
	return &lvl, nil
}

// ApplyDefaults fills fields a level may leave unset. A level without a
// clearDistance clears a fixed margin past its last wave.
func (l *Level) ApplyDefaults() {
	if l.ClearDistance <= 0 {
		l.ClearDistance = l.LastWaveAt() + defaultClearMargin
	}
}

// Validate checks wave ordering, spawn kinds and tuning.
func (l *Level) Validate() error {
	if len(l.Waves) == 0 {
		return fmt.Errorf("%w: no waves", ErrInvalidLevel)
	}
	if err := l.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	prev := l.Waves[0].At
	for i, w := range l.Waves {
		if w.At < prev {
			return fmt.Errorf("%w: wave %d at %.1f comes before wave %d at %.1f", ErrInvalidLevel, i, w.At, i-1, prev)
		}
		prev = w.At
		for j, s := range w.Spawns {
			if !spawnKinds[s.Kind] {
				return fmt.Errorf("%w: wave %d spawn %d: unknown kind %q", ErrInvalidLevel, i, j, s.Kind)
			}
			if s.Count < 0 || s.HP < 0 {
				return fmt.Errorf("%w: wave %d spawn %d: negative count or hp", ErrInvalidLevel, i, j)
			}
			if s.Kind == "pickup" && !pickupNames[s.Pickup] {
				return fmt.Errorf("%w: wave %d spawn %d: unknown pickup %q", ErrInvalidLevel, i, j, s.Pickup)
			}
		}
	}
	return nil
}

// LastWaveAt returns the trigger distance of the final wave.
func (l *Level) LastWaveAt() float64 {
	if len(l.Waves) == 0 {
		return 0
	}
	return l.Waves[len(l.Waves)-1].At
}
