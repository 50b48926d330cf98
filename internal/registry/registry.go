// Package registry maps game ids to factories.
// Games add themselves from init; the first one registered is the default
// the CLI plays when no game is named.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a pure simulation driven by the platform tick loop.
// It holds no Bubble Tea or terminal state.
type Game interface {
	// ID is the stable identifier used by the CLI and the score store.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run for the given screen size and seed.
	// It also restarts the game's FrameClock and level time.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick. Elapsed time is read from the game's own
	// FrameClock, so a late tick moves things further rather than slower.
	// Input holds the actions pressed since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State reports score, lives, level time and the pause/game-over flags.
	State() core.GameState
}

// Factory builds a new game instance.
type Factory func() Game

// Info describes a registered game.
type Info struct {
	ID      string
	Title   string
	Default bool
}

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // registration order
)

// Register adds a game. It panics on an empty id, a nil factory or a
// duplicate id, all of which are programming errors in an init function.
func Register(id, title string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := lookup(id); ok {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries = append(entries, entry{
		info:    Info{ID: id, Title: title, Default: len(entries) == 0},
		factory: f,
	})
}

// lookup must be called with mu held.
func lookup(id string) (entry, bool) {
	for _, e := range entries {
		if e.info.ID == id {
			return e, true
		}
	}
	return entry{}, false
}

// List returns the registered games in registration order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Default returns the first registered game.
func Default() (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if len(entries) == 0 {
		return Info{}, false
	}
	return entries[0].info, true
}

// Create builds a new instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := lookup(id)
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	g := e.factory()
	if g.ID() != id {
		return nil, fmt.Errorf("registry: factory for %q built game %q", id, g.ID())
	}
	return g, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := lookup(id)
	return ok
}
