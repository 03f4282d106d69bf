package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

func mustBody(t *testing.T, shape geom.Polygon, mass float64) *Body {
	t.Helper()
	b, err := NewBody(shape, mass, core.ColorWhite, KindNone)
	if err != nil {
		t.Fatalf("NewBody() error = %v", err)
	}
	return b
}

func TestNewBodyValidation(t *testing.T) {
	square := geom.Rectangle(geom.Zero, 1, 1)

	tests := []struct {
		name  string
		shape geom.Polygon
		mass  float64
		err   error
	}{
		{"finite mass", square, 5, nil},
		{"infinite mass", square, InfiniteMass, nil},
		{"zero mass", square, 0, ErrInvalidMass},
		{"negative mass", square, -1, ErrInvalidMass},
		{"NaN mass", square, math.NaN(), ErrInvalidMass},
		{"negative infinity", square, math.Inf(-1), ErrInvalidMass},
		{"two points", geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, 1, ErrDegeneratePolygon},
		{"collinear", geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, 1, ErrDegeneratePolygon},
		{"nil shape", nil, 1, ErrDegeneratePolygon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBody(tc.shape, tc.mass, core.ColorRed, KindBrick)
			if !errors.Is(err, tc.err) {
				t.Fatalf("NewBody() error = %v, expected %v", err, tc.err)
			}
			if tc.err != nil && b != nil {
				t.Error("NewBody() returned a body alongside an error")
			}
			if tc.err == nil && (b.Kind() != KindBrick || b.Color() != core.ColorRed) {
				t.Errorf("NewBody() lost metadata: kind=%s color=%d", b.Kind(), b.Color())
			}
		})
	}
}

func TestBodyOwnsItsShape(t *testing.T) {
	shape := geom.Rectangle(geom.Vec(2, 2), 2, 2)
	b := mustBody(t, shape, 1)

	shape.Translate(geom.Vec(100, 0))
	if !b.Centroid().ApproxEqual(geom.Vec(2, 2), eps) {
		t.Error("mutating the input polygon moved the body")
	}

	out := b.Shape()
	out.Translate(geom.Vec(100, 0))
	if !b.Shape().Centroid().ApproxEqual(geom.Vec(2, 2), eps) {
		t.Error("mutating Shape() moved the body")
	}
}

func TestBodySetCentroidAndRotation(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Zero, 4, 2), 1)

	b.SetCentroid(geom.Vec(10, 5))
	if !b.Centroid().ApproxEqual(geom.Vec(10, 5), eps) {
		t.Errorf("Centroid() = %v, expected (10, 5)", b.Centroid())
	}
	lo, hi := b.Shape().Bounds()
	if !lo.ApproxEqual(geom.Vec(8, 4), eps) || !hi.ApproxEqual(geom.Vec(12, 6), eps) {
		t.Errorf("Bounds() = %v..%v after move", lo, hi)
	}

	b.SetRotation(math.Pi / 2)
	if b.Rotation() != math.Pi/2 {
		t.Errorf("Rotation() = %f, expected pi/2", b.Rotation())
	}
	lo, hi = b.Shape().Bounds()
	if !lo.ApproxEqual(geom.Vec(9, 3), 1e-9) || !hi.ApproxEqual(geom.Vec(11, 7), 1e-9) {
		t.Errorf("Bounds() = %v..%v after quarter turn", lo, hi)
	}
	if !b.Centroid().ApproxEqual(geom.Vec(10, 5), eps) {
		t.Error("rotation moved the centroid")
	}
}

func TestBodyTickIntegratesForceThenImpulse(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Zero, 1, 1), 2)
	b.SetVelocity(geom.Vec(1, 0))
	b.AddForce(geom.Vec(4, 0))   // +2 m/s^2
	b.AddImpulse(geom.Vec(0, 6)) // +3 m/s

	b.tick(0.5)

	if !b.Velocity().ApproxEqual(geom.Vec(2, 3), eps) {
		t.Errorf("Velocity() = %v, expected (2, 3)", b.Velocity())
	}
	if !b.Centroid().ApproxEqual(geom.Vec(1, 1.5), eps) {
		t.Errorf("Centroid() = %v, expected (1, 1.5)", b.Centroid())
	}

	// Accumulators are cleared.
	b.tick(0.5)
	if !b.Velocity().ApproxEqual(geom.Vec(2, 3), eps) {
		t.Errorf("second Tick changed velocity to %v", b.Velocity())
	}
}

func TestStaticBodyIgnoresForces(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Zero, 1, 1), InfiniteMass)
	b.SetVelocity(geom.Vec(3, 4))

	for _, f := range []geom.Vector{geom.Vec(1e9, 0), geom.Vec(-5, 7), geom.Vec(0, -1e-3)} {
		b.AddForce(f)
		b.AddImpulse(f)
		b.tick(0.1)
		if b.Velocity() != geom.Vec(3, 4) {
			t.Fatalf("static body velocity changed to %v", b.Velocity())
		}
	}
	if !b.Centroid().ApproxEqual(geom.Vec(0.9, 1.2), 1e-9) {
		t.Errorf("static body should still move with its set velocity, at %v", b.Centroid())
	}
	if b.InverseMass() != 0 || !b.IsStatic() {
		t.Error("infinite mass should report static with zero inverse mass")
	}
}

func TestBodyReset(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Zero, 1, 1), 1)
	b.SetVelocity(geom.Vec(1, 0))
	b.SetAngularVelocity(2)
	b.AddForce(geom.Vec(100, 100))
	b.AddImpulse(geom.Vec(100, 100))

	b.Reset()
	b.tick(1)

	if b.Velocity() != geom.Vec(1, 0) {
		t.Errorf("Reset() should keep velocity, got %v", b.Velocity())
	}
	if !b.Centroid().ApproxEqual(geom.Vec(1, 0), eps) {
		t.Errorf("Centroid() = %v, expected (1, 0)", b.Centroid())
	}
	if b.Rotation() != 0 || b.AngularVelocity() != 0 {
		t.Errorf("Reset() should stop spin, rotation=%f", b.Rotation())
	}
}

func TestBodySpin(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Vec(5, 5), 2, 2), 1)
	b.SetAngularVelocity(math.Pi)
	b.tick(0.25)
	if math.Abs(b.Rotation()-math.Pi/4) > eps {
		t.Errorf("Rotation() = %f, expected pi/4", b.Rotation())
	}
	if !b.Centroid().ApproxEqual(geom.Vec(5, 5), 1e-9) {
		t.Errorf("spin moved the centroid to %v", b.Centroid())
	}
}

func TestBodySetShapeKeepsCentroid(t *testing.T) {
	b := mustBody(t, geom.Rectangle(geom.Vec(10, 20), 4, 2), InfiniteMass)
	b.SetRotation(math.Pi / 2)

	if err := b.SetShape(geom.Rectangle(geom.Zero, 8, 2)); err != nil {
		t.Fatalf("SetShape() error = %v", err)
	}
	if !b.Centroid().ApproxEqual(geom.Vec(10, 20), 1e-9) {
		t.Errorf("Centroid() = %v, expected (10, 20)", b.Centroid())
	}
	lo, hi := b.Shape().Bounds()
	if !lo.ApproxEqual(geom.Vec(6, 19), 1e-9) || !hi.ApproxEqual(geom.Vec(14, 21), 1e-9) {
		t.Errorf("Bounds() = %v..%v, expected (6, 19)..(14, 21)", lo, hi)
	}
	if b.Rotation() != 0 {
		t.Errorf("Rotation() = %f, expected 0", b.Rotation())
	}

	degenerate := geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if err := b.SetShape(degenerate); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("SetShape(degenerate) error = %v, expected ErrDegeneratePolygon", err)
	}
	if len(b.Shape()) != 4 {
		t.Error("rejected shape should leave the body untouched")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindNone:   "none",
		KindBall:   "ball",
		KindWall:   "wall",
		KindBrick:  "brick",
		KindGround: "ground",
		KindPaddle: "paddle",
		KindPickup: "pickup",
		Kind(42):   "unknown",
	}
	for k, expected := range tests {
		if k.String() != expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", int(k), k.String(), expected)
		}
	}
}
