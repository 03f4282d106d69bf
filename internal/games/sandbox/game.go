// Package sandbox is a free-form playground for the physics engine:
// balls bounce around a walled box under uniform gravity, mutual
// Newtonian attraction or a chain of springs.
package sandbox

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Force modes
const (
	ModeUniform   = "uniform"
	ModeNewtonian = "newtonian"
	ModeSpring    = "spring"
)

var configPath string

var logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes sandbox and scene diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game is the physics sandbox.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.SandboxConfig
	rng     *rand.Rand

	scene *physics.Scene
	balls []*physics.Body
	walls []*physics.Body

	paused    bool
	tickCount int
	bounces   int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new sandbox instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sandbox"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Physics Sandbox"
}

// Reset loads the configuration and rebuilds the box.
// A config that fails to load or build is replaced by the defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadSandbox(configPath)
	if err != nil {
		logger.Warn("using default sandbox config", "err", err)
		cfg = config.DefaultSandboxConfig()
	}
	if err := g.ResetWithConfig(runtime, cfg); err != nil {
		logger.Warn("sandbox config rejected, using defaults", "err", err)
		if err := g.ResetWithConfig(runtime, config.DefaultSandboxConfig()); err != nil {
			panic(fmt.Sprintf("sandbox: default config rejected: %v", err))
		}
	}
}

// ResetWithConfig rebuilds the box with an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.SandboxConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.Close()

	g.runtime = runtime
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.scene = physics.NewScene(physics.SceneConfig{Logger: logger})
	g.balls = nil
	g.walls = nil
	g.paused = false
	g.tickCount = 0
	g.bounces = 0

	g.minScreenW = 30
	g.minScreenH = 12
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	if err := g.addWalls(); err != nil {
		return err
	}
	if err := g.addBalls(); err != nil {
		return err
	}
	g.addForceCreators()
	return nil
}

// Resize updates the terminal size without rebuilding the box.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	g.screenTooSmall = width < g.minScreenW || height < g.minScreenH
}

// Close releases the physics scene.
func (g *Game) Close() error {
	if g.scene != nil {
		g.scene.Close()
		g.scene = nil
	}
	return nil
}

func (g *Game) addWalls() error {
	w, h := g.cfg.World.Width, g.cfg.World.Height
	t := g.cfg.Physics.WallThickness

	for _, shape := range []geom.Polygon{
		geom.Rectangle(geom.Vec(0, h/2), t, h+2*t),
		geom.Rectangle(geom.Vec(w, h/2), t, h+2*t),
		geom.Rectangle(geom.Vec(w/2, h), w, t),
		geom.Rectangle(geom.Vec(w/2, 0), w, t),
	} {
		b, err := physics.NewBody(shape, physics.InfiniteMass, core.ColorGray, physics.KindWall)
		if err != nil {
			return fmt.Errorf("sandbox: wall: %w", err)
		}
		g.scene.AddBody(b)
		g.walls = append(g.walls, b)
	}
	return nil
}

// addBalls lays the balls out on a grid inside the walls and gives each
// a random velocity.
func (g *Game) addBalls() error {
	c := g.cfg.Balls
	if c.Count == 0 {
		return nil
	}

	t := g.cfg.Physics.WallThickness / 2
	innerW := g.cfg.World.Width - 2*t
	innerH := g.cfg.World.Height - 2*t
	cols := int(math.Ceil(math.Sqrt(float64(c.Count))))
	rows := (c.Count + cols - 1) / cols
	cellW, cellH := innerW/float64(cols), innerH/float64(rows)

	for i := range c.Count {
		row, col := i/cols, i%cols
		center := geom.Vec(
			t+(float64(col)+0.5)*cellW,
			g.cfg.World.Height-t-(float64(row)+0.5)*cellH,
		)
		shape := geom.Circle(center, c.Radius, c.Segments)
		b, err := physics.NewBody(shape, c.Mass, core.Rainbow(i, c.Count), physics.KindBall)
		if err != nil {
			return fmt.Errorf("sandbox: ball %d: %w", i, err)
		}

		angle := 2 * math.Pi * g.rng.Float64()
		speed := c.MaxSpeed * g.rng.Float64()
		b.SetVelocity(geom.Vec(math.Cos(angle), math.Sin(angle)).Scale(speed))

		g.scene.AddBody(b)
		g.balls = append(g.balls, b)
	}
	return nil
}

func (g *Game) addForceCreators() {
	f := g.cfg.Forces
	down := geom.Vec(0, -f.Gravity)

	switch f.Mode {
	case ModeUniform:
		for _, b := range g.balls {
			g.scene.CreateUniformGravity(down, b)
		}
	case ModeNewtonian:
		for i, a := range g.balls {
			for _, b := range g.balls[i+1:] {
				g.scene.CreateNewtonianGravity(f.G, a, b)
			}
		}
	case ModeSpring:
		for i, b := range g.balls {
			g.scene.CreateUniformGravity(down, b)
			if i > 0 {
				g.scene.CreateSpring(f.Spring, g.balls[i-1], b)
			}
		}
	}

	if f.Drag > 0 {
		for _, b := range g.balls {
			g.scene.CreateDrag(f.Drag, b)
		}
	}

	e := g.cfg.Physics.Elasticity
	for i, a := range g.balls {
		for _, b := range g.balls[i+1:] {
			g.scene.CreateCollision(a, b, bounce, g, nil, e)
		}
		for _, w := range g.walls {
			g.scene.CreateCollision(a, w, bounce, g, nil, e)
		}
	}
}

// bounce is an elastic collision that also counts approaching contacts.
func bounce(b1, b2 *physics.Body, axis geom.Vector, aux any, elasticity float64) {
	if b2.Velocity().Sub(b1.Velocity()).Dot(axis) <= 0 {
		aux.(*Game).bounces++
	}
	physics.PhysicsCollisionHandler(b1, b2, axis, nil, elasticity)
}

// Step advances the sandbox by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if err := g.ResetWithConfig(g.runtime, g.cfg); err != nil {
			logger.Error("restart", "err", err)
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	if in.Has(core.ActionLaunch) {
		g.kick()
	}
	nudge := g.cfg.Forces.Kick / 4
	if in.Has(core.ActionLeft) {
		g.push(geom.Vec(-nudge, 0))
	}
	if in.Has(core.ActionRight) {
		g.push(geom.Vec(nudge, 0))
	}
	g.removeEscaped()

	dt := g.runtime.TickSeconds()
	if g.cfg.Physics.MaxDT > 0 {
		dt = math.Min(dt, g.cfg.Physics.MaxDT)
	}
	n := max(g.cfg.Physics.Substeps, 1)
	for range n {
		g.scene.Step(dt / float64(n))
	}

	return core.StepResult{State: g.State()}
}

// kick gives every ball an impulse of the configured size in a random
// direction.
func (g *Game) kick() {
	for _, b := range g.balls {
		angle := 2 * math.Pi * g.rng.Float64()
		b.AddImpulse(geom.Vec(math.Cos(angle), math.Sin(angle)).Scale(g.cfg.Forces.Kick))
	}
}

func (g *Game) push(j geom.Vector) {
	for _, b := range g.balls {
		b.AddImpulse(j)
	}
}

// removeEscaped drops balls that tunnelled out of the box. Their force
// creators go with them on the next scene step.
func (g *Game) removeEscaped() {
	w, h := g.cfg.World.Width, g.cfg.World.Height
	kept := g.balls[:0]
	for _, b := range g.balls {
		c := b.Centroid()
		if c.X < 0 || c.X > w || c.Y < 0 || c.Y > h {
			logger.Debug("ball escaped", "id", b.ID(), "at", c, "tick", g.tickCount)
			b.Remove()
			continue
		}
		kept = append(kept, b)
	}
	clear(g.balls[len(kept):])
	g.balls = kept
}

// KineticEnergy returns the total kinetic energy of the balls.
func (g *Game) KineticEnergy() float64 {
	var e float64
	for _, b := range g.balls {
		v := b.Velocity()
		e += 0.5 * b.Mass() * v.Dot(v)
	}
	return e
}

// State reports the bounce count as the score and the balls left as lives.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.bounces,
		Lives:  len(g.balls),
		Paused: g.paused,
	}
}

func init() {
	registry.Register("sandbox", func() registry.Game {
		return New()
	})
}
