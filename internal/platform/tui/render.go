package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// palette maps core colors to ANSI 256 codes. ColorDefault is left to the
// terminal.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var (
	cellStyles  = buildCellStyles()
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func buildCellStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette))
	for c, code := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(code)
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := cellStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string.
// Each run of same-colored cells on a row is styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		color := core.ColorDefault
		for x, w := 0, s.Width(); x < w; x++ {
			cell := s.GetCell(x, y)
			if len(run) > 0 && cell.Color != color {
				sb.WriteString(styleFor(color).Render(string(run)))
				run = run[:0]
			}
			color = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}

// renderStatus draws the line under the playfield: the saved run after game
// over, the frozen level time while paused, otherwise the key help.
func renderStatus(state core.GameState, runID, helpView string) string {
	switch {
	case state.GameOver && runID != "":
		return statusStyle.Render(fmt.Sprintf("run %s saved: %d pts in %s  •  r restart  •  q quit",
			shortRunID(runID), state.Score, core.FormatLevelTime(state.LevelTime)))
	case state.GameOver:
		return statusStyle.Render("r restart  •  q quit")
	case state.Paused:
		return statusStyle.Render(fmt.Sprintf("paused at %s  •  p resume  •  q quit",
			core.FormatLevelTime(state.LevelTime)))
	}
	return statusStyle.Render(helpView)
}

// shortRunID returns the first block of a uuid.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
