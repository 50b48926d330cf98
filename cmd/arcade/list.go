package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games with their best runs",
	Long: `Shows every registered game. The default game, played when no id is
given, is marked with '*'. Best score and longest run come from the scores
database when it can be opened.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// The listing is still useful without a database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores unavailable: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	fmt.Printf("  %-12s  %-12s  %-8s  %s\n", "ID", "Title", "Best", "Longest")
	for _, g := range games {
		id := g.ID
		if g.Default {
			id += " *"
		}
		best, longest := bestOf(store, g.ID)
		fmt.Printf("  %-12s  %-12s  %-8s  %s\n", id, g.Title, best, longest)
	}
}

// bestOf formats the best score and longest level time of a game.
func bestOf(store *storage.Store, gameID string) (string, string) {
	if store == nil {
		return "-", "-"
	}
	score, err := store.HighScore(gameID)
	if err != nil || score == 0 {
		return "-", "-"
	}
	longest := "-"
	if t, err := store.BestLevelTime(gameID); err == nil {
		longest = core.FormatLevelTime(t)
	}
	return fmt.Sprint(score), longest
}
