package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagTicks   int
	flagSimW    int
	flagSimH    int
	flagSave    bool
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the shooter headless with a synthetic clock",
	Long: `Run the shooter without a terminal UI. Time advances by exactly one
tick per step (1/fps seconds), so a run is fully reproducible from its seed.
A scripted pilot sweeps the ship across the screen and fires continuously.

Examples:
  arcade sim
  arcade sim --ticks 36000 --seed 42
  arcade sim --difficulty hard --save
  arcade sim --verbose`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum number of ticks to simulate")
	simCmd.Flags().IntVar(&flagSimW, "width", 80, "Playfield width in cells")
	simCmd.Flags().IntVar(&flagSimH, "height", 24, "Playfield height in cells")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the finished run in the scores database")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log collision world diagnostics")
}

// syntheticClock advances by a fixed step each time it is ticked.
type syntheticClock struct {
	now time.Time
}

func (c *syntheticClock) Now() time.Time { return c.now }

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if flagFPS <= 0 || flagTicks <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --fps and --ticks must be positive")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := &syntheticClock{now: time.Unix(0, 0)}
	game := shooter.NewWithOptions(shooter.Options{
		Now:    clock.Now,
		Logger: logger,
	})
	game.Reset(core.RuntimeConfig{
		ScreenW:  flagSimW,
		ScreenH:  flagSimH,
		TickRate: flagFPS,
		Seed:     seed,
	})

	step := time.Second / time.Duration(flagFPS)
	pilot := newPilot(seed)
	started := time.Now()

	var state core.GameState
	ticks := 0
	for ticks < flagTicks {
		clock.now = clock.now.Add(step)
		state = game.Step(pilot.next()).State
		ticks++
		if state.GameOver {
			break
		}
	}

	stats := game.Stats()
	logger.Info("run finished",
		"seed", seed,
		"ticks", ticks,
		"game_over", state.GameOver,
		"score", state.Score,
		"lives", state.Lives,
		"level_time", core.FormatLevelTime(state.LevelTime),
		"shots", stats.Shots,
		"kills", stats.Kills,
		"pairs", stats.Pairs,
		"hits", stats.Hits,
		"wall", time.Since(started).Round(time.Millisecond),
	)

	if !flagSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open scores database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	runID, err := store.SaveRun(game.ID(), state.Score, state.LevelTime)
	if err != nil {
		logger.Error("could not save run", "error", err)
		os.Exit(1)
	}
	logger.Info("run saved", "run", runID)
}

// pilot produces scripted input: it holds a direction for a random number
// of ticks, then picks another, and keeps the trigger pressed.
type pilot struct {
	rng  *rand.Rand
	dir  core.Action
	left int
}

func newPilot(seed int64) *pilot {
	return &pilot{rng: rand.New(rand.NewSource(seed ^ 0x5eed))}
}

func (p *pilot) next() core.InputFrame {
	if p.left <= 0 {
		switch p.rng.Intn(3) {
		case 0:
			p.dir = core.ActionLeft
		case 1:
			p.dir = core.ActionRight
		default:
			p.dir = core.ActionNone
		}
		p.left = 10 + p.rng.Intn(50)
	}
	p.left--

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	if p.dir != core.ActionNone {
		in.Set(p.dir)
	}
	return in
}
