// breakout runs the Breakout physics game and its sandbox in the terminal.
//
// Usage:
//
//	breakout list              - List available games
//	breakout play [game]       - Play a game (default: breakout)
//	breakout menu              - Start menu to pick games interactively
//	breakout serve             - Start SSH server for remote play
//	breakout scores <game>     - Show high scores for a game
//	breakout sim               - Run a headless autopilot simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-breakout/internal/games/breakout"
	_ "github.com/vovakirdan/tui-breakout/internal/games/sandbox"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - a rigid-body physics game for your terminal",
	Long: `Breakout is a terminal game built on a small 2D physics engine.
Bricks, walls and the paddle are polygons; the ball bounces off them
through separating-axis collision detection and impulse response.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run the game headless with an autopilot

Examples:
  breakout play
  breakout play sandbox --config ./sandbox.yaml
  breakout menu
  breakout serve --ssh :2222
  breakout sim --ticks 20000 --seed 7 --save`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
