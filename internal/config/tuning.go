package config

import (
	"errors"
	"fmt"
)

// Tuning holds every simulation constant. Keys absent from a level file keep
// their defaults because files are decoded over Default().
type Tuning struct {
	MaxStep float64 `yaml:"maxStep"` // dt clamp, seconds

	Scroll     ScrollTuning     `yaml:"scroll"`
	Checkpoint CheckpointTuning `yaml:"checkpoint"`
	Hazard     HazardTuning     `yaml:"hazard"`
	Player     PlayerTuning     `yaml:"player"`
	Weapon     WeaponTuning     `yaml:"weapon"`
	Enemy      EnemyTuning      `yaml:"enemy"`
	Kamikaze   KamikazeTuning   `yaml:"kamikaze"`
	Shooter    ShooterTuning    `yaml:"shooter"`
	Boss       BossTuning       `yaml:"boss"`
	Asteroid   AsteroidTuning   `yaml:"asteroid"`
	Pickup     PickupTuning     `yaml:"pickup"`
	Explosion  ExplosionTuning  `yaml:"explosion"`
	Playfield  PlayfieldTuning  `yaml:"playfield"`
}

type ScrollTuning struct {
	Base           float64 `yaml:"base"`
	RampMax        float64 `yaml:"rampMax"`        // extra speed reached at full ramp
	RampDistance   float64 `yaml:"rampDistance"`   // distance per unit of extra speed
	RampSmoothing  float64 `yaml:"rampSmoothing"`  // per-tick lerp factor
	RespawnPerStep float64 `yaml:"respawnPerStep"` // baseline bonus per checkpoint index
}

type CheckpointTuning struct {
	First    float64 `yaml:"first"`
	Interval float64 `yaml:"interval"`
	Bonus    int     `yaml:"bonus"`
}

type HazardTuning struct {
	First   float64 `yaml:"first"`
	Base    float64 `yaml:"base"`
	Jitter  float64 `yaml:"jitter"`
	SpawnX  float64 `yaml:"spawnX"`
	SpreadX float64 `yaml:"spreadX"`
	SpreadY float64 `yaml:"spreadY"`
	SpreadZ float64 `yaml:"spreadZ"`
}

type PlayerTuning struct {
	Speed         float64 `yaml:"speed"`
	Radius        float64 `yaml:"radius"`
	MaxHP         int     `yaml:"maxHP"`
	MinX          float64 `yaml:"minX"`
	MaxX          float64 `yaml:"maxX"`
	MinY          float64 `yaml:"minY"`
	MaxY          float64 `yaml:"maxY"`
	Invulnerable  float64 `yaml:"invulnerable"` // seconds after taking damage
	BankSmoothing float64 `yaml:"bankSmoothing"`
	BankRoll      float64 `yaml:"bankRoll"`
	BankYaw       float64 `yaml:"bankYaw"`
}

type WeaponTuning struct {
	BaseFireRate      float64 `yaml:"baseFireRate"`
	PowerBonus        float64 `yaml:"powerBonus"`
	MaxPower          int     `yaml:"maxPower"`
	BulletSpeed       float64 `yaml:"bulletSpeed"`
	BulletTTL         float64 `yaml:"bulletTTL"`
	BulletRadius      float64 `yaml:"bulletRadius"`
	MuzzleOffset      float64 `yaml:"muzzleOffset"`
	EnemyBulletSpeed  float64 `yaml:"enemyBulletSpeed"`
	EnemyBulletDamage int     `yaml:"enemyBulletDamage"`
}

type EnemyTuning struct {
	Radius        float64 `yaml:"radius"`
	Score         int     `yaml:"score"`
	HP            int     `yaml:"hp"`
	FireRate      float64 `yaml:"fireRate"`
	FireMinX      float64 `yaml:"fireMinX"`
	FireMaxX      float64 `yaml:"fireMaxX"`
	OscAmplitude  float64 `yaml:"oscAmplitude"`
	OscFrequency  float64 `yaml:"oscFrequency"`
	OscSmoothing  float64 `yaml:"oscSmoothing"`
	ContactDamage int     `yaml:"contactDamage"`
}

type KamikazeTuning struct {
	Radius        float64 `yaml:"radius"`
	HP            int     `yaml:"hp"`
	Score         int     `yaml:"score"`
	Speed         float64 `yaml:"speed"`
	Steering      float64 `yaml:"steering"` // convergence rate per second
	ContactDamage int     `yaml:"contactDamage"`
}

type ShooterTuning struct {
	Radius        float64 `yaml:"radius"`
	HP            int     `yaml:"hp"`
	Score         int     `yaml:"score"`
	Drift         float64 `yaml:"drift"`
	FireRate      float64 `yaml:"fireRate"`
	Lifetime      float64 `yaml:"lifetime"`
	ContactDamage int     `yaml:"contactDamage"`
}

type BossTuning struct {
	Radius           float64   `yaml:"radius"`
	HP               int       `yaml:"hp"`
	Score            int       `yaml:"score"`
	StationX         float64   `yaml:"stationX"`
	Amplitude        float64   `yaml:"amplitude"`
	Frequency        float64   `yaml:"frequency"`
	FireRate         float64   `yaml:"fireRate"`
	EnragedAmplitude float64   `yaml:"enragedAmplitude"`
	EnragedFrequency float64   `yaml:"enragedFrequency"`
	EnragedFireRate  float64   `yaml:"enragedFireRate"`
	EnrageFraction   float64   `yaml:"enrageFraction"` // phase 2 when hp < maxHP*fraction
	Fan              []float64 `yaml:"fan"`            // spread angles in radians
	ContactDamage    int       `yaml:"contactDamage"`
}

type AsteroidTuning struct {
	MinSize       float64 `yaml:"minSize"`
	SizeRange     float64 `yaml:"sizeRange"`
	RadiusFactor  float64 `yaml:"radiusFactor"`
	HP            int     `yaml:"hp"`
	Score         int     `yaml:"score"`
	Spin          float64 `yaml:"spin"`
	ContactDamage int     `yaml:"contactDamage"`
}

type PickupTuning struct {
	Radius         float64 `yaml:"radius"`
	TTL            float64 `yaml:"ttl"`
	Drift          float64 `yaml:"drift"`
	DropChance     float64 `yaml:"dropChance"`
	ShieldChance   float64 `yaml:"shieldChance"`   // variant 0 enemies
	ShieldChanceV1 float64 `yaml:"shieldChanceV1"` // variant 1 enemies
	PowerShare     float64 `yaml:"powerShare"`     // power vs health when not shield
	Heal           int     `yaml:"heal"`
	HealthScore    int     `yaml:"healthScore"`
	PowerScore     int     `yaml:"powerScore"`
	ShieldScore    int     `yaml:"shieldScore"`
	ShieldDuration float64 `yaml:"shieldDuration"`
}

type ExplosionTuning struct {
	Particles int     `yaml:"particles"`
	MinTTL    float64 `yaml:"minTTL"`
	TTLRange  float64 `yaml:"ttlRange"`
	Speed     float64 `yaml:"speed"`
	FlashTTL  float64 `yaml:"flashTTL"`
	FadeRate  float64 `yaml:"fadeRate"`
}

type PlayfieldTuning struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		MaxStep: 1.0 / 30,
		Scroll: ScrollTuning{
			Base:           9,
			RampMax:        6,
			RampDistance:   90,
			RampSmoothing:  0.03,
			RespawnPerStep: 0.6,
		},
		Checkpoint: CheckpointTuning{First: 40, Interval: 45, Bonus: 250},
		Hazard: HazardTuning{
			First: 6, Base: 6.5, Jitter: 4.5,
			SpawnX: 30, SpreadX: 10, SpreadY: 10, SpreadZ: 6,
		},
		Player: PlayerTuning{
			Speed: 9, Radius: 0.9, MaxHP: 5,
			MinX: -1.2, MaxX: 5.5, MinY: -5.5, MaxY: 5.5,
			Invulnerable:  1.25,
			BankSmoothing: 0.1, BankRoll: 0.18, BankYaw: 0.12,
		},
		Weapon: WeaponTuning{
			BaseFireRate: 10, PowerBonus: 1.2, MaxPower: 6,
			BulletSpeed: 20, BulletTTL: 1.9, BulletRadius: 0.28, MuzzleOffset: 1.15,
			EnemyBulletSpeed: 13, EnemyBulletDamage: 1,
		},
		Enemy: EnemyTuning{
			Radius: 0.9, Score: 120, HP: 2,
			FireRate: 0.7, FireMinX: 2, FireMaxX: 16,
			OscAmplitude: 1.2, OscFrequency: 0.1, OscSmoothing: 0.02,
			ContactDamage: 2,
		},
		Kamikaze: KamikazeTuning{Radius: 0.7, HP: 1, Score: 150, Speed: 7, Steering: 2.5, ContactDamage: 2},
		Shooter:  ShooterTuning{Radius: 0.9, HP: 4, Score: 260, Drift: -0.5, FireRate: 0.9, Lifetime: 18, ContactDamage: 2},
		Boss: BossTuning{
			Radius: 1.6, HP: 50, Score: 2000, StationX: 14,
			Amplitude: 3, Frequency: 0.8, FireRate: 1.2,
			EnragedAmplitude: 4.5, EnragedFrequency: 1.6, EnragedFireRate: 2.2,
			EnrageFraction: 0.5,
			Fan:            []float64{-0.4, -0.2, 0, 0.2, 0.4},
			ContactDamage:  3,
		},
		Asteroid: AsteroidTuning{
			MinSize: 0.7, SizeRange: 1.3, RadiusFactor: 0.9,
			HP: 2, Score: 60, Spin: 1.2, ContactDamage: 3,
		},
		Pickup: PickupTuning{
			Radius: 0.7, TTL: 20, Drift: -0.4,
			DropChance: 0.18, ShieldChance: 0.05, ShieldChanceV1: 0.10, PowerShare: 0.5,
			Heal: 2, HealthScore: 80, PowerScore: 120, ShieldScore: 100,
			ShieldDuration: 5,
		},
		Explosion: ExplosionTuning{
			Particles: 18, MinTTL: 0.45, TTLRange: 0.45, Speed: 10, FlashTTL: 0.12, FadeRate: 3,
		},
		Playfield: PlayfieldTuning{MinX: -18, MaxX: 60},
	}
}

// ErrInvalidTuning is returned when tuning values cannot drive a simulation.
var ErrInvalidTuning = errors.New("invalid tuning")

// Validate rejects values that would break the simulation invariants.
func (t *Tuning) Validate() error {
	switch {
	case t.MaxStep <= 0:
		return fmt.Errorf("%w: maxStep must be positive", ErrInvalidTuning)
	case t.Player.MaxHP <= 0:
		return fmt.Errorf("%w: player.maxHP must be positive", ErrInvalidTuning)
	case t.Player.MinX > t.Player.MaxX || t.Player.MinY > t.Player.MaxY:
		return fmt.Errorf("%w: player bounds are inverted", ErrInvalidTuning)
	case t.Weapon.BaseFireRate <= 0:
		return fmt.Errorf("%w: weapon.baseFireRate must be positive", ErrInvalidTuning)
	case t.Weapon.MaxPower < 0:
		return fmt.Errorf("%w: weapon.maxPower must not be negative", ErrInvalidTuning)
	case t.Boss.HP <= 0:
		return fmt.Errorf("%w: boss.hp must be positive", ErrInvalidTuning)
	case t.Checkpoint.Interval <= 0:
		return fmt.Errorf("%w: checkpoint.interval must be positive", ErrInvalidTuning)
	case t.Hazard.Base <= 0:
		return fmt.Errorf("%w: hazard.base must be positive", ErrInvalidTuning)
	case t.Playfield.MinX >= t.Playfield.MaxX:
		return fmt.Errorf("%w: playfield bounds are inverted", ErrInvalidTuning)
	}
	return nil
}
