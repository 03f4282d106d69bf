package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagSimTicks   int
	flagSimLevel   int
	flagSimSave    bool
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run Breakout headless with an autopilot",
	Long: `Run Breakout without a terminal, steering the paddle with a simple
autopilot, and print the final state. The same seed, tick rate and
config always produce the same final hash.

Examples:
  breakout sim
  breakout sim --ticks 20000 --seed 7
  breakout sim --level 2 --config ./my-breakout.yaml --save
  breakout sim --verbose`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimLevel, "level", 0, "Zero-based start level")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log game and physics events")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
		breakout.SetLogger(logger)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)
	breakout.SetStartLevel(flagSimLevel)

	game := breakout.New()
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	})
	defer game.Close() //nolint:errcheck // Scene close cannot fail

	start := time.Now()
	outcome := "timeout"
	ticks := 0
	for ticks < flagSimTicks {
		res := game.Step(breakout.Autopilot(game.Snapshot()))
		ticks++
		if res.State.GameOver {
			outcome = "gameover"
			break
		}
	}
	elapsed := time.Since(start)

	snap := game.Snapshot()
	hash := snap.Hash()
	logger.Info("simulation finished",
		"outcome", outcome,
		"ticks", ticks,
		"score", snap.Score,
		"level", snap.LevelIndex+1,
		"lives", snap.Lives,
		"bricks", snap.BricksRemaining,
		"balls", snap.Balls,
		"pickups", snap.Pickups,
		"bodies", snap.Bodies,
		"entries", snap.Entries,
		"elapsed", elapsed,
	)
	fmt.Printf("%016x\n", hash)

	if !flagSimSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open database", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.SimRun{
		GameID:     game.ID(),
		Seed:       seed,
		Ticks:      ticks,
		Score:      snap.Score,
		Level:      snap.LevelIndex,
		Lives:      snap.Lives,
		Outcome:    outcome,
		Hash:       hash,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		logger.Error("could not save run", "err", err)
		return
	}
	logger.Info("run saved", "id", id)
}
