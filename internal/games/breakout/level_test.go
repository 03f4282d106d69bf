package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

func TestParseLevel(t *testing.T) {
	level := ParseLevel("t", "Test", []string{
		"#.X",
		"##",
	})

	if level.Columns != 3 || level.Rows != 2 {
		t.Fatalf("size = %dx%d, expected 3x2", level.Columns, level.Rows)
	}
	expected := [][]Cell{
		{CellBrick, CellEmpty, CellStone},
		{CellBrick, CellBrick, CellEmpty},
	}
	for row := range expected {
		for col := range expected[row] {
			if level.Cells[row][col] != expected[row][col] {
				t.Errorf("cell (%d,%d) = %d, expected %d", row, col, level.Cells[row][col], expected[row][col])
			}
		}
	}
	if level.Destructible() != 3 {
		t.Errorf("Destructible() = %d, expected 3", level.Destructible())
	}
}

func TestConfigLevelPlacesStones(t *testing.T) {
	b := config.DefaultBreakoutConfig().Bricks
	level := ConfigLevel(b)

	if level.Name != "Classic" || level.Columns != 10 || level.Rows != 3 {
		t.Errorf("unexpected level %s %dx%d", level.Name, level.Columns, level.Rows)
	}
	if level.Cells[1][7] != CellStone || level.Cells[2][2] != CellStone {
		t.Error("stones missing from configured positions")
	}
	if level.Destructible() != 28 {
		t.Errorf("Destructible() = %d, expected 28", level.Destructible())
	}
}

func TestLevelAtCycles(t *testing.T) {
	b := config.DefaultBreakoutConfig().Bricks
	n := len(BuiltinLevels()) + 1

	tests := []struct {
		index    int
		expected string
	}{
		{0, "classic"},
		{1, "pyramid"},
		{n - 1, "striped"},
		{n, "classic"},
		{n + 2, "checker"},
	}
	for _, tc := range tests {
		if got := LevelAt(tc.index, b).ID; got != tc.expected {
			t.Errorf("LevelAt(%d) = %s, expected %s", tc.index, got, tc.expected)
		}
	}
}

func TestBuiltinLevelsArePlayable(t *testing.T) {
	for _, level := range BuiltinLevels() {
		if level.Destructible() == 0 {
			t.Errorf("level %s has nothing to break", level.ID)
		}
	}
}

func TestBrickShapeFitsWorld(t *testing.T) {
	b := config.DefaultBreakoutConfig().Bricks
	level := ConfigLevel(b)
	const width = 1000.0

	first := level.BrickShape(0, 0, b, width)
	last := level.BrickShape(0, level.Columns-1, b, width)

	lo, _ := first.Bounds()
	_, hi := last.Bounds()
	if math.Abs(lo.X) > 1e-9 || math.Abs(hi.X-width) > 1e-9 {
		t.Errorf("grid spans [%f, %f], expected [0, %f]", lo.X, hi.X, width)
	}

	// neighbours are separated by exactly the offset
	_, hi0 := first.Bounds()
	lo1, _ := level.BrickShape(0, 1, b, width).Bounds()
	if math.Abs(lo1.X-hi0.X-b.Offset) > 1e-9 {
		t.Errorf("column gap = %f, expected %f", lo1.X-hi0.X, b.Offset)
	}

	bottom := level.BrickShape(2, 0, b, width).Centroid()
	if math.Abs(bottom.Y-(b.TopY-2*(b.Height+b.Offset))) > 1e-9 {
		t.Errorf("bottom row centre at %f", bottom.Y)
	}
}

func TestLevelNames(t *testing.T) {
	names := LevelNames()
	if len(names) != LevelCount() {
		t.Fatalf("%d names for %d levels", len(names), LevelCount())
	}
	b := config.DefaultBreakoutConfig().Bricks
	for i, name := range names {
		if got := LevelAt(i, b).Name; got != name {
			t.Errorf("LevelNames()[%d] = %s, LevelAt gives %s", i, name, got)
		}
	}
}
