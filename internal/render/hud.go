package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const bossBarWidth = 30

type styles struct {
	text   lipgloss.Style
	hp     lipgloss.Style
	shield lipgloss.Style
	boss   lipgloss.Style
	banner lipgloss.Style
	notice lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Align(lipgloss.Center).
		Bold(true)
	return styles{
		text:   r.NewStyle().Foreground(lipgloss.Color("252")),
		hp:     r.NewStyle().Foreground(lipgloss.Color("9")),
		shield: r.NewStyle().Foreground(lipgloss.Color("14")),
		boss:   r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		banner: box.BorderForeground(lipgloss.Color("14")),
		notice: box.BorderForeground(lipgloss.Color("9")),
	}
}

// writeText writes s at 1-based canvas position (col, row), clipped to the
// canvas, and marks the covered cells for redraw.
func (t *Terminal) writeText(col, row int, s string) {
	w := t.canvas.TerminalWidth()
	if row < 1 || row > t.canvas.TerminalHeight() || col > w {
		return
	}
	col = max(col, 1)
	s = ansi.Truncate(s, w-col+1, "")
	t.cw.WriteAt(col, row, s)
	t.canvas.MarkTextDirty(col, row, ansi.StringWidth(s))
}

func bar(filled, total int, on, off string) string {
	filled = max(0, min(filled, total))
	return strings.Repeat(on, filled) + strings.Repeat(off, total-filled)
}

// drawHUD draws the status lines along the top and bottom rows.
func (t *Terminal) drawHUD() {
	s := t.hud
	st := t.styles
	w := t.canvas.TerminalWidth()
	h := t.canvas.TerminalHeight()

	left := st.text.Render("HP ") + st.hp.Render(bar(s.HP, s.MaxHP, "█", "░")) +
		st.text.Render(fmt.Sprintf("  SCORE %d", s.Score))
	t.writeText(2, 1, left)

	right := st.text.Render(fmt.Sprintf("DIST %.0f  CP %d  PWR %d  WAVE %d/%d",
		s.Distance, s.CheckpointIndex, s.Power, s.Wave, s.WaveTotal))
	t.writeText(w-lipgloss.Width(right), 1, right)

	if s.Shield > 0 {
		t.writeText(2, h, st.shield.Render(fmt.Sprintf("SHIELD %.1fs", s.Shield)))
	}
	if s.BossMaxHP > 0 && s.BossHP > 0 {
		filled := (s.BossHP*bossBarWidth + s.BossMaxHP - 1) / s.BossMaxHP
		boss := st.boss.Render("BOSS " + bar(filled, bossBarWidth, "█", "░"))
		t.writeText((w-lipgloss.Width(boss))/2+1, h, boss)
	}
	enemies := st.text.Render(fmt.Sprintf("ENEMIES %d", s.Enemies))
	t.writeText(w-lipgloss.Width(enemies), h, enemies)
}

// drawOverlay draws the session notice, or the game banner when there is
// no notice, boxed and centered.
func (t *Terminal) drawOverlay(banner string) {
	text, style := banner, t.styles.banner
	if t.notice != "" {
		text, style = t.notice, t.styles.notice
	}
	if text == "" {
		return
	}

	lines := strings.Split(style.Render(text), "\n")
	boxWidth := 0
	for _, l := range lines {
		boxWidth = max(boxWidth, lipgloss.Width(l))
	}
	col := (t.canvas.TerminalWidth()-boxWidth)/2 + 1
	row := (t.canvas.TerminalHeight()-len(lines))/2 + 1
	for i, l := range lines {
		t.writeText(col, row+i, l)
	}
}
