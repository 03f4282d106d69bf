package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

const eps = 1e-9

func TestFindCollision(t *testing.T) {
	square := geom.Rectangle(geom.Zero, 2, 2)
	diamond := geom.Polygon{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

	tests := []struct {
		name    string
		a, b    geom.Polygon
		hit     bool
		axis    geom.Vector
		overlap float64
	}{
		{
			name: "disjoint",
			a:    square,
			b:    geom.Rectangle(geom.Vec(5, 0), 2, 2),
		},
		{
			name: "touching edges",
			a:    square,
			b:    geom.Rectangle(geom.Vec(2, 0), 2, 2),
		},
		{
			name:    "overlap to the right",
			a:       square,
			b:       geom.Rectangle(geom.Vec(1.5, 0.2), 2, 2),
			hit:     true,
			axis:    geom.Vec(1, 0),
			overlap: 0.5,
		},
		{
			name:    "overlap to the left",
			a:       geom.Rectangle(geom.Vec(1.5, 0.2), 2, 2),
			b:       square,
			hit:     true,
			axis:    geom.Vec(-1, 0),
			overlap: 0.5,
		},
		{
			name:    "overlap from above",
			a:       square,
			b:       geom.Rectangle(geom.Vec(0.1, -1.7), 2, 2),
			hit:     true,
			axis:    geom.Vec(0, -1),
			overlap: 0.3,
		},
		{
			name:    "tie keeps first axis",
			a:       square,
			b:       geom.Rectangle(geom.Vec(1.5, 1.5), 2, 2),
			hit:     true,
			axis:    geom.Vec(0, 1),
			overlap: 0.5,
		},
		{
			name: "bounding boxes overlap but shapes do not",
			a:    diamond,
			b:    geom.Rectangle(geom.Vec(1.2, 1.2), 1, 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := FindCollision(tc.a, tc.b)
			if ok != tc.hit {
				t.Fatalf("FindCollision() hit = %v, expected %v", ok, tc.hit)
			}
			if !ok {
				return
			}
			if !c.Axis.ApproxEqual(tc.axis, eps) {
				t.Errorf("Axis = %v, expected %v", c.Axis, tc.axis)
			}
			if math.Abs(c.Overlap-tc.overlap) > 1e-9 {
				t.Errorf("Overlap = %f, expected %f", c.Overlap, tc.overlap)
			}
		})
	}
}

func TestFindCollisionCircleOnGround(t *testing.T) {
	ball := geom.Circle(geom.Vec(500, 14), 15, 100)
	ground := geom.Rectangle(geom.Vec(500, 0), 1000, 1)

	c, ok := FindCollision(ball, ground)
	if !ok {
		t.Fatal("ball resting into the ground should collide")
	}
	if !c.Axis.ApproxEqual(geom.Vec(0, -1), eps) {
		t.Errorf("Axis = %v, expected (0, -1)", c.Axis)
	}
	if math.Abs(c.Overlap-1) > 1e-6 {
		t.Errorf("Overlap = %f, expected 1", c.Overlap)
	}
}

func TestFindCollisionIsSymmetric(t *testing.T) {
	a := geom.Circle(geom.Vec(0, 0), 3, 12)
	b := geom.Rectangle(geom.Vec(3, 1), 4, 4)
	b.Rotate(0.3, b.Centroid())

	ab, ok1 := FindCollision(a, b)
	ba, ok2 := FindCollision(b, a)
	if !ok1 || !ok2 {
		t.Fatalf("expected overlap both ways, got %v/%v", ok1, ok2)
	}
	if math.Abs(ab.Overlap-ba.Overlap) > 1e-9 {
		t.Errorf("overlap differs: %f vs %f", ab.Overlap, ba.Overlap)
	}
	if d := b.Centroid().Sub(a.Centroid()).Dot(ab.Axis); d < 0 {
		t.Errorf("axis %v does not point from a to b", ab.Axis)
	}
	if d := a.Centroid().Sub(b.Centroid()).Dot(ba.Axis); d < 0 {
		t.Errorf("axis %v does not point from b to a", ba.Axis)
	}
}
