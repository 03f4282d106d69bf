package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/sandbox"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: breakout).

Controls:
  A/D, Left/Right  - Move the paddle (sandbox: push the balls)
  Space/Up         - Launch the ball (sandbox: kick)
  P                - Pause
  Esc/B            - Back, when paused or after game over
  R                - Restart
  Q/Ctrl+C         - Quit

Difficulty options (breakout):
  easy   - Slower ball, more lives
  normal - The config as written
  hard   - Faster ball, fewer lives
  fixed  - No speed-up between levels

Examples:
  breakout play
  breakout play breakout --difficulty hard
  breakout play breakout --config ./my-breakout.yaml
  breakout play sandbox --config ./springs.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds a runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// prepareGame applies the command-line settings for gameID and shows any
// game-specific start menu. It returns false when the user backed out.
func prepareGame(gameID string, cfg core.RuntimeConfig) (bool, error) {
	switch gameID {
	case "breakout":
		breakout.SetConfigPath(flagConfig)
		breakout.SetDifficultyPreset(flagDifficulty)

		selection, err := tui.RunBreakoutLevelSelector(cfg)
		if err != nil {
			return false, err
		}
		if selection == nil {
			return false, nil
		}
		breakout.SetStartLevel(selection.Level)

	case "sandbox":
		sandbox.SetConfigPath(flagConfig)
	}
	return true, nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "breakout"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available games.")
		os.Exit(1)
	}

	cfg := terminalConfig()

	ok, err := prepareGame(gameID, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
