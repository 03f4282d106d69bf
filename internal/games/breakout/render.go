package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	PaddleChar = '▀'
	BrickChar  = '█'
	StoneChar  = '▓'
)

// viewport maps the world into the play field: below the HUD row and
// inside the border box.
func (g *Game) viewport(dst *core.Screen) core.Viewport {
	return core.Viewport{
		World: geom.Vec(g.cfg.World.Width, g.cfg.World.Height),
		Cells: core.NewRect(0, 1, dst.Width(), dst.Height()-1).Inset(1),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	dst.DrawBox(core.NewRect(0, 1, dst.Width(), dst.Height()-1), core.ColorWhite)
	g.renderHUD(dst)

	vp := g.viewport(dst)
	for _, b := range g.grid {
		if b.IsRemoved() {
			continue
		}
		glyph := rune(BrickChar)
		if b.Kind() == physics.KindWall {
			glyph = StoneChar
		}
		vp.DrawPolygon(dst, b.Shape(), glyph, b.Color())
	}
	for _, p := range g.pickups {
		if !p.body.IsRemoved() {
			vp.DrawPolygon(dst, p.body.Shape(), p.kind.Glyph(), p.body.Color())
		}
	}
	vp.DrawPolygon(dst, g.paddle.Shape(), PaddleChar, g.paddle.Color())
	for _, b := range g.balls {
		vp.DrawPolygon(dst, b.Shape(), BallChar, b.Color())
	}

	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, level and active effects.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.lives))

	levelText := fmt.Sprintf("Level %d: %s", g.levelIndex+1, g.level.Name)
	dst.DrawText(dst.Width()-len([]rune(levelText))-1, 0, levelText)

	// Active effects sit on the top border
	if effects := g.powerups.EffectsString(g.tickCount, g.runtime.TickSeconds()); effects != "" {
		dst.DrawText(2, 1, " "+effects+" ")
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateServe:
		dst.DrawTextCentered(dst.Height()-1, " Press SPACE to launch ")
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
