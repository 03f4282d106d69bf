// Package core provides the types shared by games and the platform layer:
// the screen buffer, input frames, runtime configuration and the viewport
// that maps world coordinates onto terminal cells.
// It does not import Bubble Tea so game logic stays testable.
package core

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset returns r shrunk by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Viewport maps a world rectangle with origin at the bottom-left
// onto a rectangle of screen cells with origin at the top-left.
type Viewport struct {
	World geom.Vector // World size; the world spans [0, World.X] x [0, World.Y]
	Cells Rect
}

// CellCenter returns the world position at the centre of cell (x, y).
func (v Viewport) CellCenter(x, y int) geom.Vector {
	fx := (float64(x-v.Cells.X) + 0.5) / float64(v.Cells.W)
	fy := (float64(y-v.Cells.Y) + 0.5) / float64(v.Cells.H)
	return geom.Vector{X: fx * v.World.X, Y: (1 - fy) * v.World.Y}
}

// ToCell returns the cell containing world position p.
// The result may lie outside the viewport.
func (v Viewport) ToCell(p geom.Vector) (int, int) {
	x := int(math.Floor(p.X / v.World.X * float64(v.Cells.W)))
	y := int(math.Floor((1 - p.Y/v.World.Y) * float64(v.Cells.H)))
	return v.Cells.X + x, v.Cells.Y + y
}

// DrawPolygon rasterizes poly into dst: every cell inside the viewport
// whose centre lies in the polygon is set to glyph. Polygons too thin to
// cover any cell centre still mark the cell under their centroid.
// Returns the number of cells drawn.
func (v Viewport) DrawPolygon(dst *Screen, poly geom.Polygon, glyph rune, c Color) int {
	if v.Cells.W <= 0 || v.Cells.H <= 0 || len(poly) < 3 {
		return 0
	}

	lo, hi := poly.Bounds()
	x0, y1 := v.ToCell(lo)
	x1, y0 := v.ToCell(hi)
	x0, x1 = max(x0, v.Cells.X), min(x1, v.Cells.Right()-1)
	y0, y1 = max(y0, v.Cells.Y), min(y1, v.Cells.Bottom()-1)

	drawn := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if poly.Contains(v.CellCenter(x, y)) {
				dst.SetColored(x, y, glyph, c)
				drawn++
			}
		}
	}

	if drawn == 0 {
		x, y := v.ToCell(poly.Centroid())
		if v.Cells.Contains(x, y) {
			dst.SetColored(x, y, glyph, c)
			drawn++
		}
	}
	return drawn
}
