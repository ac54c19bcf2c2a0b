// Package render draws game frames to an ANSI terminal using the half-block
// canvas. The Terminal type is the Renderer, HUD and SoundEngine for both
// the local binary and SSH sessions.
package render

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/draw"
	"github.com/tomz197/sidescroller/internal/entity"
	"github.com/tomz197/sidescroller/internal/game"
	"github.com/tomz197/sidescroller/internal/physics"
)

// Logical units per world unit.
const (
	unitsX = config.ViewWidth / (config.ViewWorldMaxX - config.ViewWorldMinX)
	unitsY = config.ViewHeight / (config.ViewWorldMaxY - config.ViewWorldMinY)
)

// fallbackWidth and fallbackHeight are used when the terminal size is unknown.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

const starsPerLayer = 24

// Cues that ring the terminal bell when sound is enabled.
var bellCues = map[game.Cue]bool{
	game.CueExplosion: true,
	game.CueShield:    true,
}

// Options configures a Terminal.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Styles       *lipgloss.Renderer // nil = detect from the writer
	Sprites      map[string]Sprite  // nil = DefaultSprites()
	Bell         bool
	Logger       *log.Logger
}

type star struct {
	x, y float64
}

// Terminal renders frames, HUD values and sound cues to a terminal writer.
// It is driven from the game loop goroutine only.
type Terminal struct {
	cw           *draw.ChunkWriter
	canvas       *draw.Canvas
	termSizeFunc draw.TermSizeFunc
	styles       styles
	sprites      map[string]Sprite
	handles      map[entity.ID]Sprite
	missing      map[string]bool
	log          *log.Logger

	bell bool

	hud    game.HUDSnapshot
	notice string
	stars  [][]star

	// Last drawn overlay, for full clears on transitions
	prevState  game.State
	prevBanner string
	prevNotice string

	err error
}

var (
	_ game.Renderer    = (*Terminal)(nil)
	_ game.HUD         = (*Terminal)(nil)
	_ game.SoundEngine = (*Terminal)(nil)
)

// NewTerminal creates a terminal renderer writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	t := &Terminal{
		termSizeFunc: opts.TermSizeFunc,
		sprites:      opts.Sprites,
		handles:      make(map[entity.ID]Sprite),
		missing:      make(map[string]bool),
		log:          opts.Logger,
		bell:         opts.Bell,
	}
	if t.termSizeFunc == nil {
		t.termSizeFunc = draw.DefaultTermSizeFunc
	}
	if t.sprites == nil {
		t.sprites = DefaultSprites()
	}
	if t.log == nil {
		t.log = log.New(io.Discard)
	}
	r := opts.Styles
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}
	t.styles = newStyles(r)

	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(t.termSize())
	t.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.cw = draw.NewChunkWriter(w, offsetCol, offsetRow)

	rng := rand.New(rand.NewSource(1))
	t.stars = make([][]star, 3)
	for i := range t.stars {
		t.stars[i] = make([]star, starsPerLayer)
		for j := range t.stars[i] {
			t.stars[i][j] = star{x: rng.Float64() * config.ViewWidth, y: rng.Float64() * config.ViewHeight}
		}
	}
	return t
}

func (t *Terminal) termSize() (int, int) {
	w, h, err := t.termSizeFunc()
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// Attach implements entity.Presenter.
func (t *Terminal) Attach(e *entity.Entity) {
	t.handles[e.ID] = t.spriteFor(e)
}

// Detach implements entity.Presenter.
func (t *Terminal) Detach(e *entity.Entity) {
	delete(t.handles, e.ID)
}

// Handles returns the number of attached entities.
func (t *Terminal) Handles() int {
	return len(t.handles)
}

// spriteFor resolves the sprite for an entity, falling back from the
// variant key to the kind and finally to the placeholder.
func (t *Terminal) spriteFor(e *entity.Entity) Sprite {
	key := SpriteKey(e)
	if s, ok := t.sprites[key]; ok {
		return s
	}
	if s, ok := t.sprites[e.Kind.String()]; ok {
		return s
	}
	if !t.missing[key] {
		t.missing[key] = true
		t.log.Warn("missing sprite, using placeholder", "key", key)
	}
	return placeholder
}

// Update implements game.HUD. Values are drawn with the next frame.
func (t *Terminal) Update(s game.HUDSnapshot) {
	t.hud = s
}

// Play implements game.SoundEngine by ringing the bell for loud cues.
func (t *Terminal) Play(c game.Cue) {
	if t.bell && bellCues[c] {
		t.cw.Bell()
	}
}

// SetNotice shows a session message (inactivity, shutdown) over the game.
// An empty string removes it.
func (t *Terminal) SetNotice(text string) {
	t.notice = text
}

// Err returns the first write error. Once set, nothing more is drawn.
func (t *Terminal) Err() error {
	return t.err
}

// Open clears the screen and hides the cursor.
func (t *Terminal) Open() {
	t.cw.Clear()
	t.cw.HideCursor()
	t.flush()
}

// Close resets colors, clears the screen and restores the cursor.
func (t *Terminal) Close() {
	t.cw.Clear()
	t.cw.WriteString(draw.ColorReset)
	t.cw.ShowCursor()
	t.flush()
}

func (t *Terminal) flush() {
	if err := t.cw.Flush(); err != nil && t.err == nil {
		t.err = err
		t.log.Debug("terminal write failed", "err", err)
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (t *Terminal) updateScreen() {
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(t.termSize())

	c := t.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		t.cw.Clear()
		c.ForceRedraw()
	}

	c.Resize(renderWidth, renderHeight)
	c.SetOffset(offsetCol, offsetRow)
	t.cw.SetOffset(offsetCol, offsetRow)
}

// Render implements game.Renderer.
func (t *Terminal) Render(f *game.Frame) {
	if t.err != nil {
		return
	}
	t.updateScreen()

	// On state or overlay transitions, do a full terminal clear so text from
	// the previous overlay doesn't persist on screen.
	if f.State != t.prevState || f.Banner != t.prevBanner || t.notice != t.prevNotice {
		t.cw.Clear()
		t.canvas.ForceRedraw()
		t.prevState = f.State
		t.prevBanner = f.Banner
		t.prevNotice = t.notice
	}

	c := t.canvas
	c.Clear()
	t.drawStars(f)
	for _, e := range f.Entities {
		t.drawEntity(e, f.CameraY)
	}

	c.Render(t.cw)
	c.RenderBorder(t.cw)
	t.drawHUD()
	t.drawOverlay(f.Banner)

	t.flush()
}

// toView maps a world position to logical canvas coordinates.
func toView(p physics.Vec3, cameraY float64) draw.Point {
	return draw.Point{
		X: (p.X - config.ViewWorldMinX) * unitsX,
		Y: (config.ViewWorldMaxY - (p.Y - cameraY)) * unitsY,
	}
}

func (t *Terminal) drawStars(f *game.Frame) {
	c := t.canvas
	for i, layer := range f.Layers {
		if i >= len(t.stars) {
			break
		}
		if i < len(t.stars)-1 {
			c.SetInk(draw.InkGray)
		} else {
			c.SetInk(draw.InkWhite)
		}
		shift := layer.Offset * unitsX
		for _, s := range t.stars[i] {
			x := math.Mod(s.x+shift, config.ViewWidth)
			if x < 0 {
				x += config.ViewWidth
			}
			c.SetFloat(x, s.y)
		}
	}
}

func (t *Terminal) drawEntity(e *entity.Entity, cameraY float64) {
	if !e.Visible || !e.Alive() || e.Opacity < 0.2 {
		return
	}
	s, ok := t.handles[e.ID]
	if !ok {
		return
	}

	c := t.canvas
	at := toView(e.Pos, cameraY)
	ink := s.Ink
	if e.Opacity < 0.6 {
		ink = draw.InkGray
	}
	c.SetInk(ink)

	size := s.Size * e.Scale
	switch {
	case s.Shape != nil:
		// Screen y points down, so world rotation flips sign.
		c.DrawShape(s.Shape, at, size*unitsX, size*unitsY, -e.Rot.Z, s.Filled)
	case size > 0:
		c.DrawCircle(at, size*unitsX, unitsY/unitsX, s.Filled)
	default:
		c.SetFloat(at.X, at.Y)
	}

	if e.ShieldActive {
		c.SetInk(draw.InkCyan)
		c.DrawCircle(at, (e.Radius+0.4)*unitsX, unitsY/unitsX, false)
	}
}
