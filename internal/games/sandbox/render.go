package sandbox

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// BallChar is the glyph balls are drawn with.
const BallChar = '●'

// Render draws the box and its balls.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	hud := fmt.Sprintf("Bounces: %d  Balls: %d  Energy: %.0f  Mode: %s",
		g.bounces, len(g.balls), g.KineticEnergy(), g.cfg.Forces.Mode)
	dst.DrawText(1, 0, hud)

	field := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	dst.DrawBox(field, core.ColorGray)

	vp := core.Viewport{
		World: geom.Vec(g.cfg.World.Width, g.cfg.World.Height),
		Cells: field.Inset(1),
	}
	for _, b := range g.balls {
		vp.DrawPolygon(dst, b.Shape(), BallChar, b.Color())
	}

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	} else {
		dst.DrawTextCentered(dst.Height()-1, " SPACE kick  ←/→ push  R reset ")
	}
}
