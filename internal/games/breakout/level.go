// Package breakout implements a Breakout brick breaker on top of the
// physics engine: the ball, paddle, walls and bricks are bodies in a
// scene and every bounce is an impulse from a registered collision.
package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// Cell is the content of one slot in the brick grid.
type Cell int

const (
	CellEmpty Cell = iota
	CellBrick      // destroyed by the ball
	CellStone      // indestructible
)

// Level is a brick layout. Row 0 is the top row.
type Level struct {
	ID      string
	Name    string
	Columns int
	Rows    int
	Cells   [][]Cell // [row][col]
}

// Destructible returns the number of bricks that must be broken to clear
// the level.
func (l *Level) Destructible() int {
	count := 0
	for _, row := range l.Cells {
		for _, c := range row {
			if c == CellBrick {
				count++
			}
		}
	}
	return count
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = brick
//	'X' = stone
//	anything else = empty
func ParseLevel(id, name string, lines []string) *Level {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	level := &Level{
		ID:      id,
		Name:    name,
		Columns: width,
		Rows:    len(lines),
		Cells:   make([][]Cell, len(lines)),
	}
	for row, line := range lines {
		level.Cells[row] = make([]Cell, width)
		for col := range len(line) {
			switch line[col] {
			case '#':
				level.Cells[row][col] = CellBrick
			case 'X', 'x':
				level.Cells[row][col] = CellStone
			}
		}
	}
	return level
}

// ConfigLevel builds the opening level: a full grid with stones where the
// config places them.
func ConfigLevel(b config.BreakoutBricks) *Level {
	level := &Level{
		ID:      "classic",
		Name:    "Classic",
		Columns: b.Columns,
		Rows:    b.Rows,
		Cells:   make([][]Cell, b.Rows),
	}
	for row := range b.Rows {
		level.Cells[row] = make([]Cell, b.Columns)
		for col := range b.Columns {
			level.Cells[row][col] = CellBrick
		}
	}
	for _, s := range b.Stones {
		if s.Row >= 0 && s.Row < b.Rows && s.Col >= 0 && s.Col < b.Columns {
			level.Cells[s.Row][s.Col] = CellStone
		}
	}
	return level
}

// BuiltinLevels returns the layouts that follow the opening level.
func BuiltinLevels() []*Level {
	return []*Level{
		ParseLevel("pyramid", "Pyramid", []string{
			"....##....",
			"..######..",
			"##########",
		}),
		ParseLevel("checker", "Checkerboard", []string{
			"#.#.#.#.#.",
			".#.#X#.#.#",
			"#.#.#.#.#.",
		}),
		ParseLevel("gate", "Gate", []string{
			"##########",
			"#X######X#",
			"XX##..##XX",
		}),
		ParseLevel("striped", "Striped", []string{
			"##########",
			"..........",
			"####XX####",
		}),
	}
}

// LevelCount returns the number of distinct layouts before LevelAt
// starts cycling.
func LevelCount() int {
	return len(BuiltinLevels()) + 1
}

// LevelNames returns the display names of the layouts in play order.
func LevelNames() []string {
	names := []string{"Classic"}
	for _, l := range BuiltinLevels() {
		names = append(names, l.Name)
	}
	return names
}

// LevelAt returns the layout for the given zero-based level index.
// The opening level comes from config; later ones cycle through
// BuiltinLevels.
func LevelAt(index int, b config.BreakoutBricks) *Level {
	builtin := BuiltinLevels()
	i := index % (len(builtin) + 1)
	if i == 0 {
		return ConfigLevel(b)
	}
	return builtin[i-1]
}

// BrickShape returns the rectangle for grid cell (row, col). Bricks share
// the world width evenly with b.Offset gaps between them; rows step down
// from b.TopY.
func (l *Level) BrickShape(row, col int, b config.BreakoutBricks, worldWidth float64) geom.Polygon {
	cols := float64(max(l.Columns, 1))
	w := (worldWidth - (cols-1)*b.Offset) / cols
	x := w/2 + float64(col)*(w+b.Offset)
	y := b.TopY - float64(row)*(b.Height+b.Offset)
	return geom.Rectangle(geom.Vec(x, y), w, b.Height)
}
