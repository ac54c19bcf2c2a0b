package render

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/draw"
	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/game"
	"github.com/tomz197/sidescroller/internal/input"
	"github.com/tomz197/sidescroller/internal/physics"
)

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func newTestTerminal(w *bytes.Buffer, opts Options) *Terminal {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(120, 40)
	}
	return NewTerminal(w, opts)
}

func TestSpriteKey(t *testing.T) {
	tests := []struct {
		e    entity.Entity
		want string
	}{
		{entity.Entity{Kind: entity.KindPlayer}, "player"},
		{entity.Entity{Kind: entity.KindEnemy, Variant: 1}, "enemy/1"},
		{entity.Entity{Kind: entity.KindEnemy}, "enemy"},
		{entity.Entity{Kind: entity.KindPickup, Pickup: entity.PickupShield}, "pickup/shield"},
		{entity.Entity{Kind: entity.KindParticle, Variant: 1}, "particle/1"},
	}
	for _, tt := range tests {
		if got := SpriteKey(&tt.e); got != tt.want {
			t.Errorf("SpriteKey(%v) = %q, want %q", tt.e.Kind, got, tt.want)
		}
	}
}

func TestDefaultSpritesCoverEveryKind(t *testing.T) {
	sprites := DefaultSprites()
	for _, k := range entity.Kinds() {
		if k == entity.KindPickup {
			continue
		}
		if _, ok := sprites[k.String()]; !ok {
			t.Errorf("no sprite for %v", k)
		}
	}
	for _, p := range []entity.PickupKind{entity.PickupHealth, entity.PickupPower, entity.PickupShield} {
		e := entity.Entity{Kind: entity.KindPickup, Pickup: p}
		if _, ok := sprites[SpriteKey(&e)]; !ok {
			t.Errorf("no sprite for pickup %v", p)
		}
	}
}

func TestPlaceholderFallback(t *testing.T) {
	sprites := DefaultSprites()
	delete(sprites, "boss")

	var logs bytes.Buffer
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{Sprites: sprites, Logger: log.New(&logs)})

	a := &entity.Entity{ID: 1, Kind: entity.KindBoss}
	b := &entity.Entity{ID: 2, Kind: entity.KindBoss}
	term.Attach(a)
	term.Attach(b)
	if got := term.spriteFor(a); got.Ink != placeholder.Ink || got.Size != placeholder.Size {
		t.Errorf("boss sprite = %+v, want placeholder", got)
	}
	if n := strings.Count(logs.String(), "missing sprite"); n != 1 {
		t.Errorf("missing sprite logged %d times, want 1", n)
	}

	// Unknown variants fall back to the kind's sprite without a warning.
	v := &entity.Entity{ID: 3, Kind: entity.KindShooter, Variant: 7}
	term.Attach(v)
	if got := term.spriteFor(v); got.Ink != sprites["shooter"].Ink {
		t.Errorf("variant sprite = %+v, want shooter", got)
	}
	if strings.Count(logs.String(), "missing sprite") != 1 {
		t.Error("kind fallback should not warn")
	}

	term.Render(&game.Frame{Entities: []*entity.Entity{
		{ID: 1, Kind: entity.KindBoss, Visible: true, Opacity: 1, Scale: 1, Pos: physics.Vec3{X: 10}},
	}})
	if term.Err() != nil {
		t.Fatal(term.Err())
	}
}

func TestHandlesFollowStore(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{})
	g, err := game.New(game.Options{
		Rand:     rand.New(rand.NewSource(5)),
		Renderer: term,
		HUD:      term,
		Sound:    term,
	})
	if err != nil {
		t.Fatal(err)
	}
	kb := input.NewKeyboard(0)
	kb.Press(input.KeySpace)
	for i := 0; i < 600; i++ {
		if g.State() != game.StatePlaying {
			kb.Release(input.KeyEnter)
			kb.Press(input.KeyEnter)
		}
		g.Frame(1.0/30, kb)
		kb.EndFrame()
		if term.Handles() != g.Store().Len() {
			t.Fatalf("frame %d: %d handles for %d entities", i, term.Handles(), g.Store().Len())
		}
	}
	if term.Err() != nil {
		t.Fatal(term.Err())
	}
	if !strings.Contains(out.String(), "SCORE") {
		t.Error("HUD not drawn")
	}
}

func TestRenderBorderWhenTerminalIsLarge(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{TermSizeFunc: fixedSize(200, 60)})
	term.Render(&game.Frame{})
	if !strings.Contains(out.String(), "┌") {
		t.Error("border not drawn")
	}

	out.Reset()
	small := newTestTerminal(&out, Options{TermSizeFunc: fixedSize(100, 30)})
	small.Render(&game.Frame{})
	if strings.Contains(out.String(), "┌") {
		t.Error("border drawn without spare room")
	}
}

func TestRenderBannerAndNotice(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{})

	term.Render(&game.Frame{Banner: "CHECKPOINT 2"})
	if !strings.Contains(out.String(), "CHECKPOINT 2") {
		t.Errorf("banner missing from %q", out.String())
	}

	out.Reset()
	term.SetNotice("SERVER SHUTTING DOWN")
	term.Render(&game.Frame{Banner: "CHECKPOINT 2"})
	got := out.String()
	if !strings.Contains(got, "SERVER SHUTTING DOWN") {
		t.Error("notice missing")
	}
	if strings.Contains(got, "CHECKPOINT 2") {
		t.Error("notice should replace the banner")
	}
	if !strings.Contains(got, "\033[H\033[2J") {
		t.Error("overlay change should clear the screen")
	}
}

func TestBell(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{Bell: true})
	term.Play(game.CueShoot)
	term.Render(&game.Frame{})
	if strings.Contains(out.String(), "\a") {
		t.Error("shoot cue rang the bell")
	}

	out.Reset()
	term.Play(game.CueExplosion)
	term.Play(game.CueShield)
	term.Render(&game.Frame{})
	if strings.Count(out.String(), "\a") != 1 {
		t.Error("loud cues in one frame should ring the bell once")
	}

	out.Reset()
	quiet := newTestTerminal(&out, Options{})
	quiet.Play(game.CueExplosion)
	quiet.Render(&game.Frame{})
	if strings.Contains(out.String(), "\a") {
		t.Error("bell rang with sound disabled")
	}
}

func TestOpenClose(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out, Options{})
	term.Open()
	if got, want := out.String(), "\033[H\033[2J\033[?25l"; got != want {
		t.Errorf("Open wrote %q, want %q", got, want)
	}

	term.Render(&game.Frame{Banner: "x"})
	out.Reset()
	term.Close()
	if got, want := out.String(), "\033[H\033[2J"+draw.ColorReset+"\033[?25h"; got != want {
		t.Errorf("Close wrote %q, want %q", got, want)
	}
	if term.Err() != nil {
		t.Fatal(term.Err())
	}
}

type failingWriter struct {
	writes int
}

var errClosed = errors.New("closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errClosed
}

func TestWriteErrorStopsRendering(t *testing.T) {
	w := &failingWriter{}
	term := NewTerminal(w, Options{TermSizeFunc: fixedSize(80, 24)})
	term.Render(&game.Frame{Banner: "x"})
	if !errors.Is(term.Err(), errClosed) {
		t.Fatalf("Err = %v, want errClosed", term.Err())
	}
	writes := w.writes
	term.Render(&game.Frame{Banner: "y"})
	if w.writes != writes {
		t.Error("rendered after a write error")
	}
}

func TestToView(t *testing.T) {
	tests := []struct {
		pos     physics.Vec3
		cameraY float64
		want    draw.Point
	}{
		{physics.Vec3{X: config.ViewWorldMinX, Y: config.ViewWorldMaxY}, 0, draw.Point{}},
		{physics.Vec3{X: config.ViewWorldMaxX, Y: config.ViewWorldMinY}, 0, draw.Point{X: config.ViewWidth, Y: config.ViewHeight}},
		{physics.Vec3{X: 11, Y: 0}, 0, draw.Point{X: 60, Y: 40}},
		{physics.Vec3{X: 11, Y: 1}, 1, draw.Point{X: 60, Y: 40}},
	}
	for _, tt := range tests {
		if got := toView(tt.pos, tt.cameraY); got != tt.want {
			t.Errorf("toView(%v, %v) = %v, want %v", tt.pos, tt.cameraY, got, tt.want)
		}
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{160, 50, 160, 50, 0, 0},
		{200, 60, 160, 50, 20, 5},
		{201, 24, 160, 24, 20, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, oc, or)
		}
	}
}
