package breakout

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Game states
const (
	StateServe    = "serve"    // Ball waiting at the spawn point
	StatePlaying  = "playing"  // Ball in play
	StatePaused   = "paused"   // Game paused
	StateGameOver = "gameover" // No lives left
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel is the zero-based level new games begin on
var startLevel int

var logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the zero-based level that new games start on.
func SetStartLevel(level int) {
	startLevel = max(level, 0)
}

// SetLogger routes game and scene diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements Breakout over a physics scene.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager

	scene   *physics.Scene
	ball    *physics.Body   // primary ball, always balls[0]
	balls   []*physics.Body // every ball in the scene
	paddle  *physics.Body
	walls   []*physics.Body // left, right, ceiling, ground
	grid    []*physics.Body // bricks and stones of the current level
	pickups []*pickup       // falling power-ups
	level   *Level

	powerups    *PowerUpManager
	paddleWidth float64
	speedFactor float64 // ball speed scale from speed effects
	stuck       bool    // primary ball rides on the paddle
	stuckOffset float64 // from the paddle centre

	state      string
	resume     string // state to return to when unpaused
	score      int
	lives      int
	levelIndex int
	tickCount  int
	bricksLeft int

	// Paddle input
	moveDir      int
	heldTicks    int
	releaseTicks int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset loads the configuration and starts a new game.
// A config that fails to load is replaced by the defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		logger.Warn("using default breakout config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	config.ApplyBreakoutPreset(&cfg, difficultyPreset)

	if err := g.ResetWithConfig(runtime, cfg); err != nil {
		logger.Warn("breakout config rejected, using defaults", "err", err)
		if err := g.ResetWithConfig(runtime, config.DefaultBreakoutConfig()); err != nil {
			panic(fmt.Sprintf("breakout: default config rejected: %v", err))
		}
	}
}

// ResetWithConfig starts a new game with an explicit configuration.
// The previous scene is released.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.BreakoutConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.Close()

	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.scene = physics.NewScene(physics.SceneConfig{Logger: logger})

	g.minScreenW = 30
	g.minScreenH = 12
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.levelIndex = startLevel
	g.tickCount = 0
	g.moveDir, g.heldTicks, g.releaseTicks = 0, 0, 0
	g.grid = nil
	g.walls = nil
	g.balls = nil
	g.pickups = nil
	g.powerups = NewPowerUpManager(runtime.Seed, cfg.PowerUps)
	g.paddleWidth = cfg.Paddle.Width
	g.speedFactor = 1
	g.stuck = false

	ball, err := g.newBall(geom.Vec(cfg.Ball.X, cfg.Ball.Y), geom.Zero)
	if err != nil {
		return err
	}
	g.ball = ball
	if err := g.addPaddle(); err != nil {
		return err
	}
	if err := g.addWalls(); err != nil {
		return err
	}
	if err := g.loadLevel(g.levelIndex); err != nil {
		return err
	}
	g.addBallCollisions(g.ball)
	g.serveBall()
	return nil
}

// Resize updates the terminal size without restarting the game.
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

func (g *Game) newBody(shape geom.Polygon, mass float64, color core.Color, kind physics.Kind) (*physics.Body, error) {
	b, err := physics.NewBody(shape, mass, color, kind)
	if err != nil {
		return nil, fmt.Errorf("breakout: %s: %w", kind, err)
	}
	g.scene.AddBody(b)
	return b, nil
}

// newBall adds a ball to the scene without registering its collisions.
func (g *Game) newBall(at, vel geom.Vector) (*physics.Body, error) {
	c := g.cfg.Ball
	ball, err := g.newBody(geom.Circle(at, c.Radius, c.Segments), c.Mass, core.ColorWhite, physics.KindBall)
	if err != nil {
		return nil, err
	}
	ball.SetVelocity(vel)
	g.balls = append(g.balls, ball)
	return ball, nil
}

func (g *Game) addPaddle() error {
	c := g.cfg.Paddle
	shape := geom.Rectangle(geom.Vec(c.X, c.Y), c.Width, c.Height)
	paddle, err := g.newBody(shape, physics.InfiniteMass, core.ColorGray, physics.KindPaddle)
	if err != nil {
		return err
	}
	g.paddle = paddle
	return nil
}

// addWalls surrounds the world with static walls and a ground strip.
func (g *Game) addWalls() error {
	w, h := g.cfg.World.Width, g.cfg.World.Height
	t := g.cfg.Physics.WallThickness

	specs := []struct {
		shape geom.Polygon
		kind  physics.Kind
	}{
		{geom.Rectangle(geom.Vec(w, h/2), t, h), physics.KindWall},
		{geom.Rectangle(geom.Vec(0, h/2), t, h), physics.KindWall},
		{geom.Rectangle(geom.Vec(w/2, h), w, t), physics.KindWall},
		{geom.Rectangle(geom.Vec(w/2, 0), w, t), physics.KindGround},
	}
	for _, s := range specs {
		b, err := g.newBody(s.shape, physics.InfiniteMass, core.ColorWhite, s.kind)
		if err != nil {
			return err
		}
		g.walls = append(g.walls, b)
	}
	return nil
}

// loadLevel replaces the brick grid with the layout for index and
// registers every ball's collisions against it.
func (g *Game) loadLevel(index int) error {
	for _, b := range g.grid {
		b.Remove()
	}
	g.grid = g.grid[:0]

	g.level = LevelAt(index, g.cfg.Bricks)

	for row := range g.level.Rows {
		for col := range g.level.Columns {
			cell := g.level.Cells[row][col]
			if cell == CellEmpty {
				continue
			}

			shape := g.level.BrickShape(row, col, g.cfg.Bricks, g.cfg.World.Width)
			kind, color := physics.KindBrick, core.Rainbow(col, g.level.Columns)
			if cell == CellStone {
				kind, color = physics.KindWall, core.ColorGray
			}

			b, err := g.newBody(shape, physics.InfiniteMass, color, kind)
			if err != nil {
				return err
			}
			g.grid = append(g.grid, b)
			for _, ball := range g.balls {
				g.addGridCollision(ball, b)
			}
		}
	}

	g.bricksLeft = g.level.Destructible()
	return nil
}

// addGridCollision registers ball against one brick or stone.
func (g *Game) addGridCollision(ball, b *physics.Body) {
	elasticity := g.cfg.Physics.Elasticity
	if b.Kind() == physics.KindWall {
		g.scene.CreatePhysicsCollision(ball, b, elasticity)
	} else {
		g.scene.CreateCollision(ball, b, brickHit, g, nil, elasticity)
	}
}

// addBallCollisions registers ball's bounces off the paddle and walls and
// the miss handler on the ground.
func (g *Game) addBallCollisions(ball *physics.Body) {
	elasticity := g.cfg.Physics.Elasticity
	g.scene.CreateCollision(ball, g.paddle, paddleHit, g, nil, elasticity)
	for _, w := range g.walls {
		switch w.Kind() {
		case physics.KindGround:
			g.scene.CreateCollision(ball, w, groundHit, g, nil, elasticity)
		default:
			g.scene.CreatePhysicsCollision(ball, w, elasticity)
		}
	}
}

// brickHit bounces the ball off a brick, breaks it and scores it.
func brickHit(ball, brick *physics.Body, axis geom.Vector, aux any, elasticity float64) {
	physics.DestructiveCollisionHandler(ball, brick, axis, nil, elasticity)
	aux.(*Game).brickBroken(brick)
}

// paddleHit bounces the ball off the paddle. A sticky paddle catches a
// lone ball instead.
func paddleHit(ball, paddle *physics.Body, axis geom.Vector, aux any, elasticity float64) {
	physics.PhysicsCollisionHandler(ball, paddle, axis, nil, elasticity)
	g := aux.(*Game)
	if g.state == StatePlaying && len(g.balls) == 1 && g.powerups.HasEffect(EffectSticky) {
		g.catchBall()
	}
}

// groundHit drops a ball that reached the ground.
func groundHit(ball, _ *physics.Body, _ geom.Vector, aux any, _ float64) {
	aux.(*Game).ballLost(ball)
}

func (g *Game) brickBroken(brick *physics.Body) {
	g.score += g.cfg.Gameplay.BrickPoints
	g.bricksLeft--
	if g.bricksLeft <= 0 {
		g.levelCleared()
		return
	}
	if kind, ok := g.powerups.RollDrop(); ok {
		g.spawnPickup(kind, brick.Centroid())
	}
}

// ballLost removes one of several balls, or costs a life when the last
// ball is gone.
func (g *Game) ballLost(ball *physics.Body) {
	if len(g.balls) > 1 {
		ball.Remove()
		g.balls = slices.DeleteFunc(g.balls, func(b *physics.Body) bool { return b == ball })
		g.ball = g.balls[0]
		return
	}
	g.loseLife()
}

// loseLife restores the level's bricks and puts the ball back on its
// spawn point, or ends the game when no lives are left.
func (g *Game) loseLife() {
	g.lives--
	logger.Debug("ball lost", "lives", g.lives, "tick", g.tickCount)

	g.resetPowerUps()
	g.serveBall()
	if g.lives <= 0 {
		g.lives = 0
		g.state = StateGameOver
		return
	}
	if err := g.loadLevel(g.levelIndex); err != nil {
		logger.Error("reload level", "err", err)
	}
}

func (g *Game) levelCleared() {
	g.score += g.cfg.Gameplay.LevelBonus
	g.levelIndex++
	logger.Debug("level cleared", "level", g.levelIndex, "score", g.score)

	g.resetPowerUps()
	if err := g.loadLevel(g.levelIndex); err != nil {
		logger.Error("load level", "err", err)
	}
	g.serveBall()
}

// serveBall parks the ball at its spawn point until launched.
func (g *Game) serveBall() {
	g.ball.SetCentroid(geom.Vec(g.cfg.Ball.X, g.cfg.Ball.Y))
	g.ball.SetVelocity(geom.Zero)
	g.ball.Reset()
	g.stuck = false
	g.state = StateServe
}

// catchBall holds the primary ball on top of the paddle until launched.
func (g *Game) catchBall() {
	half := g.paddleWidth / 2
	g.stuckOffset = math.Max(-half, math.Min(half, g.ball.Centroid().X-g.paddle.Centroid().X))
	g.stuck = true
	g.ball.Reset()
	g.ball.SetVelocity(geom.Zero)
	g.followPaddle()
	g.state = StateServe
}

// followPaddle moves a caught ball along with the paddle.
func (g *Game) followPaddle() {
	p := g.paddle.Centroid()
	y := p.Y + g.cfg.Paddle.Height/2 + g.cfg.Ball.Radius + 1
	g.ball.SetCentroid(geom.Vec(p.X+g.stuckOffset, y))
}

// launchVelocity is the configured ball velocity scaled by the current
// difficulty and speed effects.
func (g *Game) launchVelocity() geom.Vector {
	k := g.difficulty.Speed(1, g.score, g.tickCount) * g.speedFactor
	return geom.Vec(g.cfg.Ball.VX, g.cfg.Ball.VY).Scale(k)
}

// launch sends the primary ball off with its launch velocity.
func (g *Game) launch() {
	g.ball.SetVelocity(g.launchVelocity())
	g.stuck = false
	g.state = StatePlaying
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		if err := g.ResetWithConfig(g.runtime, g.cfg); err != nil {
			logger.Error("restart", "err", err)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = g.resume
		case StatePlaying, StateServe:
			g.resume = g.state
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.state == StateGameOver {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	for _, e := range g.powerups.ExpireEffects(g.tickCount) {
		g.onEffectExpired(e)
	}

	dt := g.runtime.TickSeconds()
	if g.cfg.Physics.MaxDT > 0 {
		dt = math.Min(dt, g.cfg.Physics.MaxDT)
	}

	g.updatePaddle(in, dt)
	if g.state == StateServe && in.Has(core.ActionLaunch) {
		g.launch()
	}

	n := max(g.cfg.Physics.Substeps, 1)
	h := dt / float64(n)
	for range n {
		g.scene.Step(h)
		g.wrapPaddle()
		if g.stuck {
			g.followPaddle()
		}
		if g.state == StateGameOver {
			break
		}
	}

	g.dropStrays()
	// Purge what was removed outside the scene step.
	g.scene.Step(0)
	g.pickups = slices.DeleteFunc(g.pickups, func(p *pickup) bool { return p.body.IsRemoved() })

	return core.StepResult{State: g.State()}
}

// updatePaddle sets the paddle velocity from held direction keys. Speed
// grows the longer a direction is held. Terminals deliver key repeats
// rather than key-up events, so the paddle keeps moving for
// release_ticks after the last press.
func (g *Game) updatePaddle(in core.InputFrame, dt float64) {
	dir := 0
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}

	switch {
	case dir != 0:
		if dir == g.moveDir {
			g.heldTicks++
		} else {
			g.moveDir, g.heldTicks = dir, 0
		}
		g.releaseTicks = g.cfg.Paddle.ReleaseTicks
	case g.releaseTicks > 0:
		g.releaseTicks--
	default:
		g.moveDir, g.heldTicks = 0, 0
	}

	held := float64(g.heldTicks) * dt
	speed := g.cfg.Paddle.RestingSpeed + g.cfg.Paddle.Accel*held
	g.paddle.SetVelocity(geom.Vec(float64(g.moveDir)*speed, 0))
}

// wrapPaddle moves a paddle that left the world through one side to the
// other side.
func (g *Game) wrapPaddle() {
	c := g.paddle.Centroid()
	half := g.paddleWidth / 2
	switch {
	case c.X-half > g.cfg.World.Width:
		g.paddle.SetCentroid(geom.Vec(0, c.Y))
	case c.X+half < 0:
		g.paddle.SetCentroid(geom.Vec(g.cfg.World.Width, c.Y))
	}
}

// escaped reports whether a ball tunnelled out of the world.
func (g *Game) escaped(ball *physics.Body) bool {
	c := ball.Centroid()
	m := 2 * g.cfg.Ball.Radius
	return c.X < -m || c.X > g.cfg.World.Width+m || c.Y < -m || c.Y > g.cfg.World.Height+m
}

// dropStrays removes balls that tunnelled out of the world and pickups
// that fell past the ground.
func (g *Game) dropStrays() {
	for _, b := range slices.Clone(g.balls) {
		if g.state == StateGameOver {
			break
		}
		if !b.IsRemoved() && g.escaped(b) {
			g.ballLost(b)
		}
	}
	for _, p := range g.pickups {
		if p.body.Centroid().Y < -g.cfg.PowerUps.Height {
			p.body.Remove()
		}
	}
}

// spawnPickup drops a pickup of the given kind from at. It falls under
// gravity and is collected when it touches the paddle.
func (g *Game) spawnPickup(kind PickupType, at geom.Vector) {
	c := g.cfg.PowerUps
	body, err := g.newBody(geom.Rectangle(at, c.Width, c.Height), c.Mass, kind.Color(), physics.KindPickup)
	if err != nil {
		logger.Error("spawn pickup", "err", err)
		return
	}
	p := &pickup{game: g, kind: kind, body: body}
	g.scene.CreateUniformGravity(geom.Vec(0, -c.Gravity), body)
	g.scene.CreateCollision(g.paddle, body, pickupCaught, p, nil, 0)
	g.pickups = append(g.pickups, p)
	logger.Debug("pickup dropped", "kind", kind, "tick", g.tickCount)
}

// pickupCaught collects a pickup that reached the paddle.
func pickupCaught(_, body *physics.Body, _ geom.Vector, aux any, _ float64) {
	p := aux.(*pickup)
	body.Remove()
	p.game.activatePickup(p.kind)
}

// activatePickup applies a collected pickup. Opposite effects cancel each
// other.
func (g *Game) activatePickup(kind PickupType) {
	cfg := g.cfg.PowerUps
	logger.Debug("pickup collected", "kind", kind, "tick", g.tickCount)

	switch kind {
	case PickupWiden:
		g.powerups.AddEffect(EffectWiden, g.tickCount, g.ticksFor(cfg.WidenSeconds))
		g.powerups.RemoveEffect(EffectShrink)
		g.applyPaddleWidthEffect()
	case PickupShrink:
		g.powerups.AddEffect(EffectShrink, g.tickCount, g.ticksFor(cfg.ShrinkSeconds))
		g.powerups.RemoveEffect(EffectWiden)
		g.applyPaddleWidthEffect()
	case PickupMultiball:
		g.spawnMultiballs(cfg.MultiballCount)
	case PickupSticky:
		g.powerups.AddEffect(EffectSticky, g.tickCount, g.ticksFor(cfg.StickySeconds))
	case PickupSpeedUp:
		g.powerups.AddEffect(EffectSpeedUp, g.tickCount, g.ticksFor(cfg.SpeedUpSeconds))
		g.powerups.RemoveEffect(EffectSlowDown)
		g.applyBallSpeedEffect()
	case PickupSlowDown:
		g.powerups.AddEffect(EffectSlowDown, g.tickCount, g.ticksFor(cfg.SlowDownSeconds))
		g.powerups.RemoveEffect(EffectSpeedUp)
		g.applyBallSpeedEffect()
	case PickupExtraLife:
		g.lives++
	}
}

// onEffectExpired handles effect expiration.
func (g *Game) onEffectExpired(effectType EffectType) {
	switch effectType {
	case EffectWiden, EffectShrink:
		g.applyPaddleWidthEffect()
	case EffectSpeedUp, EffectSlowDown:
		g.applyBallSpeedEffect()
	}
}

// ticksFor converts seconds to whole ticks.
func (g *Game) ticksFor(seconds float64) int {
	return int(math.Round(seconds / g.runtime.TickSeconds()))
}

// applyPaddleWidthEffect swaps the paddle shape for one matching the
// active width effect.
func (g *Game) applyPaddleWidthEffect() {
	cfg := g.cfg.PowerUps
	width := g.cfg.Paddle.Width
	switch {
	case g.powerups.HasEffect(EffectWiden):
		width = math.Min(width+cfg.WidenAmount, cfg.MaxPaddleWidth)
	case g.powerups.HasEffect(EffectShrink):
		width = math.Max(width-cfg.ShrinkAmount, cfg.MinPaddleWidth)
	}
	if width == g.paddleWidth {
		return
	}

	shape := geom.Rectangle(g.paddle.Centroid(), width, g.cfg.Paddle.Height)
	if err := g.paddle.SetShape(shape); err != nil {
		logger.Error("resize paddle", "err", err)
		return
	}
	g.paddleWidth = width
}

// applyBallSpeedEffect rescales every ball to the active speed effect.
func (g *Game) applyBallSpeedEffect() {
	factor := 1.0
	switch {
	case g.powerups.HasEffect(EffectSpeedUp):
		factor = g.cfg.PowerUps.SpeedMultiplier
	case g.powerups.HasEffect(EffectSlowDown):
		factor = 1 / g.cfg.PowerUps.SpeedMultiplier
	}
	if factor == g.speedFactor {
		return
	}

	scale := factor / g.speedFactor
	for _, b := range g.balls {
		b.SetVelocity(b.Velocity().Scale(scale))
	}
	g.speedFactor = factor
}

// spawnMultiballs adds count balls at the primary ball, fanned out around
// its heading. A ball at rest lends them its launch velocity.
func (g *Game) spawnMultiballs(count int) {
	at := g.ball.Centroid()
	vel := g.ball.Velocity()
	if vel == geom.Zero {
		vel = g.launchVelocity()
	}
	spread := g.cfg.PowerUps.MultiballSpread

	for i := range count {
		angle := float64(i/2+1) * spread
		if i%2 == 1 {
			angle = -angle
		}
		ball, err := g.newBall(at, vel.Rotate(angle))
		if err != nil {
			logger.Error("spawn ball", "err", err)
			return
		}
		g.addBallCollisions(ball)
		for _, b := range g.grid {
			if !b.IsRemoved() {
				g.addGridCollision(ball, b)
			}
		}
	}
}

// resetPowerUps drops pickups, extra balls and effects.
func (g *Game) resetPowerUps() {
	for _, p := range g.pickups {
		p.body.Remove()
	}
	g.pickups = g.pickups[:0]

	for _, b := range g.balls[1:] {
		b.Remove()
	}
	clear(g.balls[1:])
	g.balls = g.balls[:1]
	g.ball = g.balls[0]

	g.powerups.ClearEffects()
	g.applyPaddleWidthEffect()
	g.applyBallSpeedEffect()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}
