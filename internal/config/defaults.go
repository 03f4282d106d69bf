package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		World: WorldConfig{Width: 1000, Height: 500},
		Ball: BreakoutBall{
			Radius:   15,
			Mass:     5,
			Segments: 100,
			X:        500,
			Y:        70,
			VX:       -500,
			VY:       400,
		},
		Paddle: BreakoutPaddle{
			Width:        98,
			Height:       25,
			X:            500,
			Y:            25,
			RestingSpeed: 300,
			Accel:        100,
			ReleaseTicks: 6,
		},
		Bricks: BreakoutBricks{
			Columns: 10,
			Rows:    3,
			Height:  40,
			Offset:  3,
			TopY:    475,
			Stones: []GridPos{
				{Row: 1, Col: 7},
				{Row: 2, Col: 2},
			},
		},
		Physics: PhysicsConfig{
			Elasticity:    1,
			WallThickness: 1,
			MaxDT:         1.0 / 30,
			Substeps:      4,
		},
		Gameplay: BreakoutGameplay{
			Lives:       3,
			BrickPoints: 10,
			LevelBonus:  100,
		},
		PowerUps: BreakoutPowerUps{
			SpawnChance: 18,
			Weights: PickupWeights{
				Widen:     25,
				Shrink:    10,
				Multiball: 20,
				Sticky:    15,
				SpeedUp:   10,
				SlowDown:  15,
				ExtraLife: 5,
			},
			Width:           40,
			Height:          20,
			Mass:            1,
			Gravity:         300,
			WidenSeconds:    12,
			ShrinkSeconds:   12,
			StickySeconds:   10,
			SpeedUpSeconds:  8,
			SlowDownSeconds: 8,
			WidenAmount:     50,
			ShrinkAmount:    38,
			MinPaddleWidth:  50,
			MaxPaddleWidth:  200,
			SpeedMultiplier: 1.5,
			MultiballCount:  2,
			MultiballSpread: 0.4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultSandboxConfig returns the default sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		World: WorldConfig{Width: 1000, Height: 500},
		Balls: SandboxBalls{
			Count:    8,
			Radius:   20,
			Mass:     10,
			Segments: 24,
			MaxSpeed: 300,
		},
		Forces: SandboxForces{
			Mode:    "uniform",
			Gravity: 400,
			G:       5000,
			Spring:  20,
			Drag:    0.05,
			Kick:    3000,
		},
		Physics: PhysicsConfig{
			Elasticity:    0.9,
			WallThickness: 20,
			MaxDT:         1.0 / 30,
			Substeps:      4,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breakout":
		return defaultBreakoutYAML
	case "sandbox":
		return defaultSandboxYAML
	default:
		return nil
	}
}
