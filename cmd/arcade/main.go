// arcade is a terminal arcade shooter built on a small 2D collision core.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (default: shooter)
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores for a game
//	arcade sim               - Run the shooter headless and report stats
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom shooter config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Shooter - An arcade shooter in your terminal",
	Long: `TUI Shooter is a terminal arcade shooter. Enemies descend from the
top of the screen; shoot them down before they reach the floor.

Available commands:
  list     - Show all available games
  play     - Play a game
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run the game headless with a synthetic clock

Examples:
  arcade play
  arcade play shooter --difficulty hard
  arcade serve --ssh :2222
  arcade scores
  arcade sim --ticks 6000 --seed 42`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// An explicit config must load; discovered ones fall back to defaults
		if flagConfig != "" {
			if _, err := config.LoadShooter(flagConfig); err != nil {
				return err
			}
		}
		switch flagDifficulty {
		case "", "easy", "normal", "hard", "fixed":
		default:
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}

		// Set config path and difficulty for games before creation
		shooter.SetConfigPath(flagConfig)
		shooter.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// gameArg returns the game named in args, or the default game.
// It exits when the game is not registered.
func gameArg(args []string) string {
	var gameID string
	if len(args) > 0 {
		gameID = args[0]
	} else if def, ok := registry.Default(); ok {
		gameID = def.ID
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	return gameID
}
