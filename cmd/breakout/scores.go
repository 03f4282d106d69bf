package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRuns  bool
	flagAll   bool
	flagClear bool
	flagRunID int64
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game with a
summary of every recorded game.

With --all, list every score. With --runs, list the most recent
recorded simulation runs instead; --run <id> shows one run in full.
--clear deletes the game's scores.

Examples:
  breakout scores breakout
  breakout scores breakout --all
  breakout scores breakout --runs
  breakout scores breakout --run 3
  breakout scores sandbox --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recorded simulation runs")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every score instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().Int64Var(&flagRunID, "run", 0, "Show the simulation run with this ID")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available games.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagClear:
		err = clearScores(os.Stdout, store, gameID, title)
	case flagRunID != 0:
		err = printRun(os.Stdout, store, gameID, flagRunID)
	case flagRuns:
		err = printRuns(os.Stdout, store, gameID, title)
	default:
		err = printScores(os.Stdout, store, gameID, title, flagAll)
	}

	// Close store before potential exit
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printScores lists the top 10 scores of gameID, or every score when all
// is set, followed by the game's statistics.
func printScores(w io.Writer, store *storage.Store, gameID, title string, all bool) error {
	var scores []storage.ScoreEntry
	var err error
	if all {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'breakout play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// clearScores deletes every score of gameID.
func clearScores(w io.Writer, store *storage.Store, gameID, title string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %d scores for %s.\n", stats.GamesCount, title)
	return nil
}

// printRuns lists the latest simulation runs of gameID.
func printRuns(w io.Writer, store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "Simulation Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'breakout sim --save' to record one.")
		return nil
	}

	fmt.Fprintf(w, "  %-5s  %-20s  %-8s  %-6s  %-5s  %-9s  %s\n", "ID", "Seed", "Ticks", "Score", "Level", "Outcome", "Hash")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-5d  %-20d  %-8d  %-6d  %-5d  %-9s  %016x\n", r.ID, r.Seed, r.Ticks, r.Score, r.Level+1, r.Outcome, r.Hash)
	}
	return nil
}

// printRun shows every recorded field of one simulation run of gameID.
func printRun(w io.Writer, store *storage.Store, gameID string, id int64) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil || run.GameID != gameID {
		return fmt.Errorf("no %s run with ID %d", gameID, id)
	}

	fmt.Fprintf(w, "Run %d - %s\n\n", run.ID, run.GameID)
	fmt.Fprintf(w, "  Seed:      %d\n", run.Seed)
	fmt.Fprintf(w, "  Ticks:     %d\n", run.Ticks)
	fmt.Fprintf(w, "  Score:     %d\n", run.Score)
	fmt.Fprintf(w, "  Level:     %d\n", run.Level+1)
	fmt.Fprintf(w, "  Lives:     %d\n", run.Lives)
	fmt.Fprintf(w, "  Outcome:   %s\n", run.Outcome)
	fmt.Fprintf(w, "  Hash:      %016x\n", run.Hash)
	fmt.Fprintf(w, "  Duration:  %dms\n", run.DurationMS)
	fmt.Fprintf(w, "  Recorded:  %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "\nReplay with: breakout sim --seed %d --ticks %d --level %d\n", run.Seed, run.Ticks, run.Level)
	return nil
}
