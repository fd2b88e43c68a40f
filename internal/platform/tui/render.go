package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// styleFor returns the lipgloss style that paints a screen role.
func styleFor(c core.Color) lipgloss.Style {
	if code := c.ANSI(); code != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent glyphs of the same color share one ANSI sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// hudInfo is the state shown around the board that the engine does not own.
type hudInfo struct {
	Best    int
	Mode    string
	NewBest bool
}

// Board layout. Each cell is two columns wide so the board looks square.
const (
	cellCols   = 2
	hudRows    = 2 // score line, autopilot line
	footerRows = 1
)

const footerHelp = "arrows steer  enter start  space pause  t auto  r reset  tab scores  q quit"

// boardSize returns the outer size of the board box for a grid.
func boardSize(grid int) (w, h int) {
	return grid*cellCols + 2, grid + 2
}

// fits reports whether the whole frame fits on screen.
func fits(s *core.Screen, grid int) bool {
	w, h := boardSize(grid)
	return core.NewRect(0, 0, s.Width(), s.Height()).Contains(w-1, h+hudRows+footerRows-1)
}

// drawGame renders a snapshot and its HUD into the screen buffer.
func drawGame(s *core.Screen, snap snake.Snapshot, hud hudInfo) {
	s.Clear()

	if !fits(s, snap.GridWidth) {
		w, h := boardSize(snap.GridWidth)
		s.DrawTextCentered(s.Height()/2, "Window too small", core.ColorAlert)
		s.DrawTextCentered(s.Height()/2+1,
			fmt.Sprintf("need %dx%d", w, h+hudRows+footerRows), core.ColorHint)
		return
	}

	s.DrawTextCentered(0,
		fmt.Sprintf("Score %d   Best %d   Length %d", snap.Score, hud.Best, snap.Length),
		core.ColorScore)
	s.DrawTextCentered(1, autopilotLine(snap, hud.Mode), core.ColorAutopilot)

	bw, bh := boardSize(snap.GridWidth)
	box := core.NewRect((s.Width()-bw)/2, hudRows, bw, bh)
	s.DrawBox(box, core.ColorFrame)

	cell := func(c core.Cell, left, right rune, color core.Color) {
		x := box.X + 1 + c.X*cellCols
		y := box.Y + 1 + c.Y
		s.SetColored(x, y, left, color)
		s.SetColored(x+1, y, right, color)
	}

	if snap.HasFood {
		cell(snap.Food, '(', ')', core.ColorFood)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(snap.Snake[i], '█', '█', core.ColorHead)
		} else {
			cell(snap.Snake[i], '▓', '▓', core.ColorBody)
		}
	}

	mid := box.Y + bh/2
	switch snap.Status {
	case snake.StatusNotRunning:
		s.DrawTextCentered(mid, " Press Enter to start ", core.ColorNotice)
	case snake.StatusPaused:
		s.DrawTextCentered(mid, " PAUSED ", core.ColorNotice)
	case snake.StatusOver:
		s.DrawTextCentered(mid-1, " GAME OVER ", core.ColorAlert)
		if hud.NewBest {
			s.DrawTextCentered(mid, " NEW BEST! ", core.ColorNotice)
		}
		s.DrawTextCentered(mid+1, " R restart  B menu ", core.ColorHint)
	}

	s.DrawTextCentered(s.Height()-1, footerHelp, core.ColorFrame)
}

// autopilotLine describes who is steering and, for the autopilot, why.
func autopilotLine(snap snake.Snapshot, mode string) string {
	if !snap.Autonomous {
		if mode == storage.ModeAuto {
			return "Manual (assisted)"
		}
		return "Manual"
	}
	d := snap.LastDecision
	switch d.Source {
	case pathfind.SourcePath:
		return fmt.Sprintf("Autopilot: path %s, %d cells", d.Direction, d.PathLen)
	case pathfind.SourceFallback, pathfind.SourceStuck:
		return fmt.Sprintf("Autopilot: %s %s", d.Source, d.Direction)
	default:
		return "Autopilot"
	}
}
