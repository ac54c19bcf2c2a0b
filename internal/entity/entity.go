// Package entity defines the single kind-tagged simulation object and the
// store that owns entity lifecycle.
package entity

import (
	"fmt"

	"github.com/tomz197/sidescroller/internal/physics"
)

// Kind is the discriminant of an Entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindKamikaze
	KindShooter
	KindAsteroid
	KindBoss
	KindBullet
	KindEnemyBullet
	KindPickup
	KindParticle

	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:      "player",
	KindEnemy:       "enemy",
	KindKamikaze:    "kamikaze",
	KindShooter:     "shooter",
	KindAsteroid:    "asteroid",
	KindBoss:        "boss",
	KindBullet:      "bullet",
	KindEnemyBullet: "enemyBullet",
	KindPickup:      "pickup",
	KindParticle:    "particle",
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// EnemyLike reports whether the kind is a player-bullet target that also
// damages the player on contact.
func (k Kind) EnemyLike() bool {
	switch k {
	case KindEnemy, KindKamikaze, KindShooter, KindAsteroid, KindBoss:
		return true
	case KindPlayer, KindBullet, KindEnemyBullet, KindPickup, KindParticle:
		return false
	default:
		panic(fmt.Sprintf("entity: unhandled kind %v", k))
	}
}

// PickupKind is the effect a pickup applies when collected.
type PickupKind uint8

const (
	PickupHealth PickupKind = iota
	PickupPower
	PickupShield
)

func (p PickupKind) String() string {
	switch p {
	case PickupHealth:
		return "health"
	case PickupPower:
		return "power"
	case PickupShield:
		return "shield"
	default:
		return fmt.Sprintf("PickupKind(%d)", uint8(p))
	}
}

// ParsePickupKind returns the pickup kind with the given name.
func ParsePickupKind(name string) (PickupKind, bool) {
	switch name {
	case "health":
		return PickupHealth, true
	case "power":
		return PickupPower, true
	case "shield":
		return PickupShield, true
	}
	return 0, false
}

// ID identifies an entity for the lifetime of a store. Zero is never issued.
type ID uint64

// Entity is the one simulation object. Kind-specific fields are only
// meaningful for the kinds that use them.
type Entity struct {
	ID      ID
	Kind    Kind
	Variant int

	Pos physics.Vec3
	Vel physics.Vec3

	// Radius <= 0 means the entity never collides.
	Radius float64

	// HP and MaxHP apply only when Damageable is set.
	Damageable bool
	HP         int
	MaxHP      int

	// TTL counts down only when Mortal is set.
	Mortal bool
	TTL    float64

	Damage int
	Score  int
	Pickup PickupKind

	ShieldActive bool
	BossPhase    int

	// Presentation hints.
	Rot     physics.Vec3
	Spin    physics.Vec3
	Scale   float64
	Opacity float64
	Visible bool

	dead bool
}

// Kill marks the entity destroyed. It stays in the store until the next
// compaction but no longer counts as alive.
func (e *Entity) Kill() {
	e.dead = true
}

// Alive reports whether the entity has neither been killed nor run out of
// time to live.
func (e *Entity) Alive() bool {
	if e.dead {
		return false
	}
	return !e.Mortal || e.TTL > 0
}

// Hits reports whether two entities overlap. The test is symmetric and an
// entity with a non-positive radius never hits anything.
func Hits(a, b *Entity) bool {
	return physics.SpheresOverlap(a.Pos, a.Radius, b.Pos, b.Radius)
}

// ApplyDamage subtracts amount from HP, clamping at zero, and reports
// whether the entity is now out of hit points. Non-damageable entities are
// unaffected.
func (e *Entity) ApplyDamage(amount int) bool {
	if !e.Damageable {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
	return e.HP == 0
}

// Heal adds amount to HP without exceeding MaxHP.
func (e *Entity) Heal(amount int) {
	if !e.Damageable {
		return
	}
	e.HP = physics.ClampInt(e.HP+amount, 0, e.MaxHP)
}
