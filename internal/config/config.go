// Package config provides YAML-based game configuration loading and
// difficulty management for the games.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all configuration for the Breakout game.
// Lengths are world units; the world origin is the bottom-left corner.
type BreakoutConfig struct {
	World      WorldConfig      `yaml:"world"`
	Ball       BreakoutBall     `yaml:"ball"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Bricks     BreakoutBricks   `yaml:"bricks"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	PowerUps   BreakoutPowerUps `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the size of the simulated world.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutBall defines the ball and where it (re)spawns.
type BreakoutBall struct {
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Segments int     `yaml:"segments"` // polygon points approximating the circle
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
}

// BreakoutPaddle defines the player's paddle.
type BreakoutPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	RestingSpeed float64 `yaml:"resting_speed"` // speed when a direction is first held
	Accel        float64 `yaml:"accel"`         // speed gained per second held
	ReleaseTicks int     `yaml:"release_ticks"` // ticks the paddle keeps moving after the last key event
}

// BreakoutBricks defines the brick grid.
type BreakoutBricks struct {
	Columns int       `yaml:"columns"`
	Rows    int       `yaml:"rows"`
	Height  float64   `yaml:"height"`
	Offset  float64   `yaml:"offset"` // gap between neighbouring bricks
	TopY    float64   `yaml:"top_y"`  // centre of the top row
	Stones  []GridPos `yaml:"stones"` // indestructible cells
}

// GridPos addresses a brick cell. Row 0 is the top row.
type GridPos struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// PhysicsConfig defines engine parameters shared by the games.
type PhysicsConfig struct {
	Elasticity    float64 `yaml:"elasticity"`
	WallThickness float64 `yaml:"wall_thickness"`
	MaxDT         float64 `yaml:"max_dt"`   // largest step handed to the scene, in seconds
	Substeps      int     `yaml:"substeps"` // scene steps per game tick
}

// BreakoutGameplay defines scoring and lives.
type BreakoutGameplay struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
	LevelBonus  int `yaml:"level_bonus"`
}

// BreakoutPowerUps defines the pickups dropped by broken bricks and the
// effects they grant.
type BreakoutPowerUps struct {
	SpawnChance int           `yaml:"spawn_chance"` // percent of broken bricks that drop a pickup
	Weights     PickupWeights `yaml:"weights"`

	// Pickup body
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Mass    float64 `yaml:"mass"`
	Gravity float64 `yaml:"gravity"` // downward acceleration of a falling pickup

	// Effect durations in seconds
	WidenSeconds    float64 `yaml:"widen_seconds"`
	ShrinkSeconds   float64 `yaml:"shrink_seconds"`
	StickySeconds   float64 `yaml:"sticky_seconds"`
	SpeedUpSeconds  float64 `yaml:"speed_up_seconds"`
	SlowDownSeconds float64 `yaml:"slow_down_seconds"`

	WidenAmount     float64 `yaml:"widen_amount"`
	ShrinkAmount    float64 `yaml:"shrink_amount"`
	MinPaddleWidth  float64 `yaml:"min_paddle_width"`
	MaxPaddleWidth  float64 `yaml:"max_paddle_width"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // ball speed factor of speed-up; slow-down divides by it
	MultiballCount  int     `yaml:"multiball_count"`
	MultiballSpread float64 `yaml:"multiball_spread"` // radians between the extra balls
}

// PickupWeights sets how often each pickup is rolled, relative to the
// others.
type PickupWeights struct {
	Widen     int `yaml:"widen"`
	Shrink    int `yaml:"shrink"`
	Multiball int `yaml:"multiball"`
	Sticky    int `yaml:"sticky"`
	SpeedUp   int `yaml:"speed_up"`
	SlowDown  int `yaml:"slow_down"`
	ExtraLife int `yaml:"extra_life"`
}

// SandboxConfig contains all configuration for the physics sandbox.
type SandboxConfig struct {
	World   WorldConfig   `yaml:"world"`
	Balls   SandboxBalls  `yaml:"balls"`
	Forces  SandboxForces `yaml:"forces"`
	Physics PhysicsConfig `yaml:"physics"`
}

// SandboxBalls defines the bodies spawned in the sandbox.
type SandboxBalls struct {
	Count    int     `yaml:"count"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Segments int     `yaml:"segments"`
	MaxSpeed float64 `yaml:"max_speed"` // upper bound of the random initial speed
}

// SandboxForces defines the continuous forces acting in the sandbox.
type SandboxForces struct {
	Mode    string  `yaml:"mode"`    // "uniform", "newtonian" or "spring"
	Gravity float64 `yaml:"gravity"` // downward acceleration in uniform and spring modes
	G       float64 `yaml:"g"`       // gravitational constant in newtonian mode
	Spring  float64 `yaml:"spring"`  // spring constant chaining the balls in spring mode
	Drag    float64 `yaml:"drag"`    // linear drag coefficient, 0 disables drag
	Kick    float64 `yaml:"kick"`    // impulse applied by the launch action
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value into a preset.
// The empty string maps to the empty preset, meaning "leave the config alone".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every setting that would make the game unplayable.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Ball.Radius <= 0 || c.Ball.Mass <= 0 {
		errs = append(errs, errors.New("ball radius and mass must be positive"))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, errors.New("paddle size must be positive"))
	}
	if c.Bricks.Columns <= 0 || c.Bricks.Rows <= 0 || c.Bricks.Height <= 0 {
		errs = append(errs, errors.New("brick grid needs positive columns, rows and height"))
	}
	if c.Bricks.Columns > 0 && c.World.Width-float64(c.Bricks.Columns-1)*c.Bricks.Offset <= 0 {
		errs = append(errs, fmt.Errorf("brick offset %g leaves no room for %d columns", c.Bricks.Offset, c.Bricks.Columns))
	}
	for _, s := range c.Bricks.Stones {
		if s.Row < 0 || s.Row >= c.Bricks.Rows || s.Col < 0 || s.Col >= c.Bricks.Columns {
			errs = append(errs, fmt.Errorf("stone at row %d col %d is outside the grid", s.Row, s.Col))
		}
	}
	if c.Physics.Elasticity < 0 || c.Physics.Elasticity > 1 {
		errs = append(errs, fmt.Errorf("elasticity must be in [0, 1], got %g", c.Physics.Elasticity))
	}
	if c.Physics.WallThickness <= 0 {
		errs = append(errs, errors.New("wall thickness must be positive"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("lives must be positive"))
	}
	if p := c.PowerUps; p.SpawnChance > 0 {
		if p.SpawnChance > 100 {
			errs = append(errs, fmt.Errorf("pickup spawn chance must be at most 100, got %d", p.SpawnChance))
		}
		if p.Width <= 0 || p.Height <= 0 || p.Mass <= 0 {
			errs = append(errs, errors.New("pickup size and mass must be positive"))
		}
		if p.MinPaddleWidth <= 0 || p.MaxPaddleWidth < p.MinPaddleWidth {
			errs = append(errs, fmt.Errorf("paddle width bounds %g..%g are invalid", p.MinPaddleWidth, p.MaxPaddleWidth))
		}
		if p.SpeedMultiplier <= 0 {
			errs = append(errs, errors.New("pickup speed multiplier must be positive"))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid breakout config: %w", err)
	}
	return nil
}

// Validate reports settings that would make the sandbox unusable.
func (c SandboxConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Balls.Count < 0 || c.Balls.Radius <= 0 || c.Balls.Mass <= 0 {
		errs = append(errs, errors.New("balls need a non-negative count and positive radius and mass"))
	}
	switch c.Forces.Mode {
	case "uniform", "newtonian", "spring":
	default:
		errs = append(errs, fmt.Errorf("unknown force mode %q", c.Forces.Mode))
	}
	if c.Physics.Elasticity < 0 || c.Physics.Elasticity > 1 {
		errs = append(errs, fmt.Errorf("elasticity must be in [0, 1], got %g", c.Physics.Elasticity))
	}
	if c.Physics.WallThickness <= 0 {
		errs = append(errs, errors.New("wall thickness must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid sandbox config: %w", err)
	}
	return nil
}
