// Package tui runs a registered game in the terminal through Bubble Tea.
// It also hosts the scoreboard and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// TickMsg asks the model to advance the game one step.
type TickMsg struct {
	At time.Time
}

// ticker schedules TickMsgs at a fixed rate. Games measure elapsed time on
// their own FrameClock, so a late tick lowers the frame rate but never
// slows the simulation.
type ticker struct {
	interval time.Duration
}

// newTicker falls back to the default rate for non-positive rates.
func newTicker(rate int) ticker {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return ticker{interval: time.Second / time.Duration(rate)}
}

func (t ticker) next() tea.Cmd {
	return tea.Tick(t.interval, func(at time.Time) tea.Msg {
		return TickMsg{At: at}
	})
}
