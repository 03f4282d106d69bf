package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// autopilotDeadZone is how far the ball may drift from the paddle centre
// before the autopilot moves.
const autopilotDeadZone = 20

// Autopilot returns the input a simple player would give for snap: keep
// the paddle under the ball and launch whenever a ball is waiting.
func Autopilot(snap Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)

	dx := snap.BallX - snap.PaddleX
	switch {
	case dx < -autopilotDeadZone:
		in.Set(core.ActionLeft)
	case dx > autopilotDeadZone:
		in.Set(core.ActionRight)
	}
	return in
}
