package entity

import (
	"testing"

	"github.com/tomz197/sidescroller/internal/physics"
)

type recordingPresenter struct {
	attached map[ID]bool
	detaches int
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{attached: make(map[ID]bool)}
}

func (r *recordingPresenter) Attach(e *Entity) {
	if r.attached[e.ID] {
		panic("attached twice")
	}
	r.attached[e.ID] = true
}

func (r *recordingPresenter) Detach(e *Entity) {
	if !r.attached[e.ID] {
		panic("detached without attach")
	}
	delete(r.attached, e.ID)
	r.detaches++
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		name := k.String()
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, ok)
		}
		// every kind must be classified without panicking
		_ = k.EnemyLike()
	}
	if _, ok := ParseKind("dragon"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestEnemyLike(t *testing.T) {
	want := map[Kind]bool{
		KindEnemy: true, KindKamikaze: true, KindShooter: true, KindAsteroid: true, KindBoss: true,
		KindPlayer: false, KindBullet: false, KindEnemyBullet: false, KindPickup: false, KindParticle: false,
	}
	for k, w := range want {
		if k.EnemyLike() != w {
			t.Errorf("%v.EnemyLike() = %v, want %v", k, !w, w)
		}
	}
}

func TestHitsSymmetricAndRadiusGuard(t *testing.T) {
	a := &Entity{Pos: physics.Vec3{X: 0}, Radius: 0.9}
	b := &Entity{Pos: physics.Vec3{X: 1}, Radius: 0.28}
	if Hits(a, b) != Hits(b, a) {
		t.Fatal("Hits is not symmetric")
	}
	if !Hits(a, b) {
		t.Fatal("expected overlap")
	}

	particle := &Entity{Pos: physics.Vec3{X: 0}, Radius: 0}
	if Hits(a, particle) || Hits(particle, a) {
		t.Error("zero-radius entity must never hit")
	}
}

func TestAliveAndTTL(t *testing.T) {
	e := &Entity{Mortal: true, TTL: 0.1}
	if !e.Alive() {
		t.Fatal("expected alive")
	}
	e.TTL = 0
	if e.Alive() {
		t.Fatal("expected expired entity to be dead")
	}

	immortal := &Entity{}
	if !immortal.Alive() {
		t.Fatal("entity without TTL should be alive")
	}
	immortal.Kill()
	if immortal.Alive() {
		t.Fatal("killed entity should be dead")
	}
}

func TestApplyDamageAndHealClamp(t *testing.T) {
	e := &Entity{Damageable: true, HP: 2, MaxHP: 5}
	if e.ApplyDamage(1) {
		t.Fatal("should survive first hit")
	}
	if !e.ApplyDamage(10) {
		t.Fatal("should be out of hit points")
	}
	if e.HP != 0 {
		t.Errorf("HP should clamp to 0, got %d", e.HP)
	}
	e.Heal(100)
	if e.HP != 5 {
		t.Errorf("HP should clamp to MaxHP, got %d", e.HP)
	}

	nd := &Entity{HP: 3}
	if nd.ApplyDamage(5) || nd.HP != 3 {
		t.Error("non-damageable entity must not take damage")
	}
}

func TestStoreLifecycle(t *testing.T) {
	p := newRecordingPresenter()
	s := NewStore(p)

	a := s.Spawn(&Entity{Kind: KindEnemy})
	b := s.Spawn(&Entity{Kind: KindBullet})
	if s.Len() != 0 || s.Pending() != 2 {
		t.Fatalf("spawned entities should be pending, len=%d pending=%d", s.Len(), s.Pending())
	}
	if a.ID == 0 || a.ID == b.ID {
		t.Fatalf("bad ids %d %d", a.ID, b.ID)
	}

	s.Flush()
	if s.Len() != 2 || len(p.attached) != 2 {
		t.Fatalf("expected 2 live and attached, got %d/%d", s.Len(), len(p.attached))
	}

	a.Kill()
	removed := s.Compact(func(e *Entity) bool { return !e.Alive() })
	if removed != 1 || s.Len() != 1 || s.All()[0] != b {
		t.Fatalf("compaction failed: removed=%d len=%d", removed, s.Len())
	}
	if p.attached[a.ID] {
		t.Error("removed entity still has a presentation handle")
	}
}

func TestStoreClearKeepsPlayer(t *testing.T) {
	p := newRecordingPresenter()
	s := NewStore(p)
	player := s.Spawn(&Entity{Kind: KindPlayer})
	s.Spawn(&Entity{Kind: KindEnemy})
	s.Flush()
	s.Spawn(&Entity{Kind: KindAsteroid}) // still queued

	s.Clear(func(e *Entity) bool { return e.Kind == KindPlayer })
	if s.Len() != 1 || s.All()[0] != player {
		t.Fatalf("expected only the player to remain, got %d entities", s.Len())
	}
	if s.Pending() != 0 {
		t.Errorf("queued entities should be dropped, %d pending", s.Pending())
	}
	if len(p.attached) != 1 {
		t.Errorf("expected 1 attached handle, got %d", len(p.attached))
	}
}

func TestStoreCount(t *testing.T) {
	s := NewStore(nil)
	s.Spawn(&Entity{Kind: KindEnemy})
	dead := s.Spawn(&Entity{Kind: KindEnemy})
	s.Spawn(&Entity{Kind: KindPickup})
	s.Flush()
	dead.Kill()

	n := s.Count(func(e *Entity) bool { return e.Kind.EnemyLike() })
	if n != 1 {
		t.Errorf("expected 1 alive enemy, got %d", n)
	}
}
