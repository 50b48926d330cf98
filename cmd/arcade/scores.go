package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
	flagAll         bool
	flagRunID       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game (default: shooter).

Examples:
  arcade scores
  arcade scores shooter --limit 25
  arcade scores -i
  arcade scores --all
  arcade scores --run 0123abcd-...
  arcade scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs for the game")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every stored run instead of the top --limit")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its id")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %s.\n", gameID)
		return
	}

	if flagRunID != "" {
		run, err := store.RunByID(flagRunID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			os.Exit(1)
		}
		if run == nil {
			fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", flagRunID)
			os.Exit(1)
		}
		fmt.Print(formatRun(run))
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	var scores []storage.RunEntry
	if flagAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %s\n", "Rank", "Score", "Time", "Run", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %s\n", "----", "-----", "----", "---", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-10s  %-8.8s  %s\n",
			i+1, entry.Score, core.FormatLevelTime(entry.LevelTime), entry.RunID, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if best, err := store.BestLevelTime(gameID); err == nil {
		fmt.Printf("Longest run: %s\n", core.FormatLevelTime(best))
	}
}

// formatRun renders one stored run as labelled lines.
func formatRun(run *storage.RunEntry) string {
	return fmt.Sprintf("Run:   %s\nGame:  %s\nScore: %d\nTime:  %s\nDate:  %s\n",
		run.RunID, run.GameID, run.Score,
		core.FormatLevelTime(run.LevelTime),
		run.CreatedAt.Format("2006-01-02 15:04"))
}
