package breakout

import "math"

// Snapshot summarizes the game state for determinism checks and the
// headless simulator.
type Snapshot struct {
	Tick            uint64
	State           string
	Score           int
	Lives           int
	LevelIndex      int
	BricksRemaining int

	BallX, BallY   float64
	BallVX, BallVY float64
	PaddleX        float64
	PaddleWidth    float64
	Balls          int
	Pickups        int

	// Scene occupancy
	Bodies  int
	Entries int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	ball := g.ball.Centroid()
	vel := g.ball.Velocity()

	return Snapshot{
		Tick:            uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State:           g.state,
		Score:           g.score,
		Lives:           g.lives,
		LevelIndex:      g.levelIndex,
		BricksRemaining: g.bricksLeft,

		BallX:       ball.X,
		BallY:       ball.Y,
		BallVX:      vel.X,
		BallVY:      vel.Y,
		PaddleX:     g.paddle.Centroid().X,
		PaddleWidth: g.paddleWidth,
		Balls:       len(g.balls),
		Pickups:     len(g.pickups),

		Bodies:  g.scene.Bodies(),
		Entries: g.scene.Entries(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{snap.Score, snap.Lives, snap.LevelIndex, snap.BricksRemaining, snap.Balls, snap.Pickups, snap.Bodies, snap.Entries} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, f := range []float64{snap.BallX, snap.BallY, snap.BallVX, snap.BallVY, snap.PaddleX, snap.PaddleWidth} {
		h = h*31 + math.Float64bits(f)
	}
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}
