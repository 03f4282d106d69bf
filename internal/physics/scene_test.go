package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

func addBody(t *testing.T, s *Scene, shape geom.Polygon, mass float64, kind Kind) *Body {
	t.Helper()
	b, err := NewBody(shape, mass, core.ColorWhite, kind)
	if err != nil {
		t.Fatalf("NewBody() error = %v", err)
	}
	s.AddBody(b)
	return b
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestPhysicsCollisionHandler(t *testing.T) {
	tests := []struct {
		name       string
		m1, m2     float64
		v1, v2     geom.Vector
		elasticity float64
		expect1    geom.Vector
		expect2    geom.Vector
	}{
		{
			name: "equal masses exchange velocities",
			m1:   1, m2: 1,
			v1: geom.Vec(1, 0), v2: geom.Vec(-1, 0),
			elasticity: 1,
			expect1:    geom.Vec(-1, 0), expect2: geom.Vec(1, 0),
		},
		{
			name: "equal masses one at rest",
			m1:   3, m2: 3,
			v1: geom.Vec(2, 5), v2: geom.Zero,
			elasticity: 1,
			expect1:    geom.Vec(0, 5), expect2: geom.Vec(2, 0),
		},
		{
			name: "perfectly inelastic",
			m1:   1, m2: 3,
			v1: geom.Vec(4, 0), v2: geom.Zero,
			elasticity: 0,
			expect1:    geom.Vec(1, 0), expect2: geom.Vec(1, 0),
		},
		{
			name: "bounce off static",
			m1:   5, m2: InfiniteMass,
			v1: geom.Vec(3, 1), v2: geom.Zero,
			elasticity: 1,
			expect1:    geom.Vec(-3, 1), expect2: geom.Zero,
		},
		{
			name: "separating bodies untouched",
			m1:   1, m2: 1,
			v1: geom.Vec(-1, 0), v2: geom.Vec(1, 0),
			elasticity: 1,
			expect1:    geom.Vec(-1, 0), expect2: geom.Vec(1, 0),
		},
		{
			name: "two static bodies",
			m1:   InfiniteMass, m2: InfiniteMass,
			v1: geom.Vec(1, 0), v2: geom.Vec(-1, 0),
			elasticity: 1,
			expect1:    geom.Vec(1, 0), expect2: geom.Vec(-1, 0),
		},
	}

	axis := geom.Vec(1, 0)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b1 := mustBody(t, geom.Rectangle(geom.Zero, 2, 2), tc.m1)
			b2 := mustBody(t, geom.Rectangle(geom.Vec(1.5, 0), 2, 2), tc.m2)
			b1.SetVelocity(tc.v1)
			b2.SetVelocity(tc.v2)

			PhysicsCollisionHandler(b1, b2, axis, nil, tc.elasticity)
			b1.tick(0)
			b2.tick(0)

			if !b1.Velocity().ApproxEqual(tc.expect1, 1e-9) {
				t.Errorf("b1 velocity = %v, expected %v", b1.Velocity(), tc.expect1)
			}
			if !b2.Velocity().ApproxEqual(tc.expect2, 1e-9) {
				t.Errorf("b2 velocity = %v, expected %v", b2.Velocity(), tc.expect2)
			}
		})
	}
}

func TestPhysicsCollisionConservesMomentum(t *testing.T) {
	axis := geom.Vec(3, 4).Normalize()
	for _, e := range []float64{0, 0.25, 0.5, 1} {
		b1 := mustBody(t, geom.Rectangle(geom.Zero, 1, 1), 2)
		b2 := mustBody(t, geom.Rectangle(geom.Vec(1, 1), 1, 1), 3)
		b1.SetVelocity(geom.Vec(4, 1))
		b2.SetVelocity(geom.Vec(-2, 3))

		before := b1.Velocity().Scale(2).Add(b2.Velocity().Scale(3))
		u := b2.Velocity().Sub(b1.Velocity()).Dot(axis)

		PhysicsCollisionHandler(b1, b2, axis, nil, e)
		b1.tick(0)
		b2.tick(0)

		after := b1.Velocity().Scale(2).Add(b2.Velocity().Scale(3))
		if !after.ApproxEqual(before, 1e-9) {
			t.Errorf("e=%.2f: momentum %v, expected %v", e, after, before)
		}
		u2 := b2.Velocity().Sub(b1.Velocity()).Dot(axis)
		if math.Abs(u2+e*u) > 1e-9 {
			t.Errorf("e=%.2f: axial relative velocity %f, expected %f", e, u2, -e*u)
		}
	}
}

func TestSceneBallBouncesOffGround(t *testing.T) {
	s := NewScene(SceneConfig{})
	ball := addBody(t, s, geom.Circle(geom.Vec(500, 15), 15, 100), 5, KindBall)
	ground := addBody(t, s, geom.Rectangle(geom.Vec(500, 0), 1000, 1), InfiniteMass, KindGround)
	ball.SetVelocity(geom.Vec(-500, -400))
	s.CreatePhysicsCollision(ball, ground, 1)

	s.Step(0.001)

	if !ball.Velocity().ApproxEqual(geom.Vec(-500, 400), 1e-6) {
		t.Errorf("ball velocity = %v, expected (-500, 400)", ball.Velocity())
	}
	if ground.Velocity() != geom.Zero {
		t.Errorf("ground moved: %v", ground.Velocity())
	}
	if !ball.Centroid().ApproxEqual(geom.Vec(499.5, 15.4), 1e-6) {
		t.Errorf("ball centroid = %v, expected (499.5, 15.4)", ball.Centroid())
	}
}

func TestSceneStepZeroSkipsOverlappingCollision(t *testing.T) {
	s := NewScene(SceneConfig{})
	ball := addBody(t, s, geom.Circle(geom.Vec(500, 445), 15, 100), 5, KindBall)
	brick := addBody(t, s, geom.Rectangle(geom.Vec(500, 475), 100, 40), InfiniteMass, KindBrick)
	ball.SetVelocity(geom.Vec(0, 400))
	s.CreateDestructiveCollision(ball, brick, 1)

	s.Step(0)

	if s.Bodies() != 2 || brick.IsRemoved() {
		t.Errorf("Bodies() = %d, brick removed = %v; a zero step must not resolve collisions", s.Bodies(), brick.IsRemoved())
	}
	if ball.Velocity() != geom.Vec(0, 400) {
		t.Errorf("ball velocity = %v, expected (0, 400)", ball.Velocity())
	}
	if s.Entries() != 1 {
		t.Errorf("Entries() = %d, expected 1", s.Entries())
	}

	// The next real step resolves the overlap
	s.Step(0.001)
	if s.Bodies() != 1 || ball.Velocity().Y >= 0 {
		t.Errorf("after a real step: Bodies() = %d, velocity %v", s.Bodies(), ball.Velocity())
	}
}

func TestSceneDestructiveCollision(t *testing.T) {
	s := NewScene(SceneConfig{})
	ball := addBody(t, s, geom.Circle(geom.Vec(500, 445), 15, 100), 5, KindBall)
	brick := addBody(t, s, geom.Rectangle(geom.Vec(500, 475), 100, 40), InfiniteMass, KindBrick)
	other := addBody(t, s, geom.Rectangle(geom.Vec(100, 475), 100, 40), InfiniteMass, KindBrick)
	ball.SetVelocity(geom.Vec(0, 400))

	s.CreateDestructiveCollision(ball, brick, 1)
	s.CreateDestructiveCollision(ball, other, 1)
	calls := 0
	s.AddForceCreator(func([]*Body, any) { calls++ }, nil, nil, brick)

	s.Step(0.001)

	if s.Bodies() != 2 {
		t.Fatalf("Bodies() = %d, expected 2", s.Bodies())
	}
	for i := range s.Bodies() {
		if s.BodyAt(i) == brick {
			t.Error("destroyed brick still in the scene")
		}
	}
	if s.Entries() != 1 {
		t.Errorf("Entries() = %d, expected 1", s.Entries())
	}
	if calls != 0 {
		t.Errorf("creator on a removed body ran %d times", calls)
	}
	if ball.Velocity().Y >= 0 {
		t.Errorf("ball should bounce down, velocity %v", ball.Velocity())
	}
	if _, ok := s.Body(brick.ID()); ok {
		t.Error("brick handle should be stale after purge")
	}
}

func TestSceneRemovalCascade(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	b := addBody(t, s, geom.Rectangle(geom.Vec(10, 0), 1, 1), 1, KindNone)

	calls, released := 0, 0
	s.AddForceCreator(func([]*Body, any) { calls++ }, "aux", func(aux any) {
		if aux != "aux" {
			t.Errorf("release got aux %v", aux)
		}
		released++
	}, a, b)

	b.Remove()
	if !b.IsRemoved() || s.Bodies() != 2 {
		t.Fatal("removal should be visible immediately but deferred until Step")
	}

	s.Step(0.1)

	if calls != 0 {
		t.Errorf("entry referencing a removed body was invoked %d times", calls)
	}
	if s.Entries() != 0 {
		t.Errorf("Entries() = %d, expected 0", s.Entries())
	}
	if s.Bodies() != 1 || s.BodyAt(0) != a {
		t.Errorf("Bodies() = %d, expected only a", s.Bodies())
	}

	s.Step(0.1)
	s.Close()
	if released != 1 {
		t.Errorf("release called %d times, expected 1", released)
	}
}

func TestSceneStepZeroIsIdempotent(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	b := addBody(t, s, geom.Rectangle(geom.Vec(10, 0), 1, 1), 2, KindNone)
	doomed := addBody(t, s, geom.Rectangle(geom.Vec(50, 0), 1, 1), 1, KindNone)
	a.SetVelocity(geom.Vec(1, 2))
	b.SetVelocity(geom.Vec(-3, 0))
	s.CreateSpring(5, a, b)
	s.CreateNewtonianGravity(100, a, b)
	s.CreateDrag(0.5, a)
	doomed.Remove()

	s.Step(0)

	if !a.Centroid().ApproxEqual(geom.Zero, eps) || !b.Centroid().ApproxEqual(geom.Vec(10, 0), eps) {
		t.Errorf("positions changed: %v, %v", a.Centroid(), b.Centroid())
	}
	if a.Velocity() != geom.Vec(1, 2) || b.Velocity() != geom.Vec(-3, 0) {
		t.Errorf("velocities changed: %v, %v", a.Velocity(), b.Velocity())
	}
	if s.Bodies() != 2 {
		t.Errorf("Bodies() = %d, expected 2 after purging the flagged body", s.Bodies())
	}
	if s.Entries() != 3 {
		t.Errorf("Entries() = %d, expected 3", s.Entries())
	}
}

func TestSceneHandlesAndSlotReuse(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	oldID := a.ID()

	if got, ok := s.Body(oldID); !ok || got != a {
		t.Fatal("Body() should resolve a live handle")
	}
	if _, ok := s.Body(BodyID{}); ok {
		t.Error("zero BodyID should not resolve")
	}

	a.Remove()
	s.Step(0)

	c := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	if c.ID() == oldID {
		t.Error("reused slot should carry a new generation")
	}
	if _, ok := s.Body(oldID); ok {
		t.Error("stale handle resolved to the new occupant")
	}
	if got, ok := s.Body(c.ID()); !ok || got != c {
		t.Error("Body() should resolve the new handle")
	}

	// A removed body can join another scene.
	other := NewScene(SceneConfig{})
	other.AddBody(a)
	if other.Bodies() != 1 {
		t.Error("detached body should be accepted by another scene")
	}
}

func TestSceneCreatorsAddedDuringStepRunSameStep(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)

	inner, registered := 0, false
	s.AddForceCreator(func(bodies []*Body, _ any) {
		if registered {
			return
		}
		registered = true
		s.AddForceCreator(func([]*Body, any) { inner++ }, nil, nil, bodies[0])
	}, nil, nil, a)

	s.Step(0.1)
	if inner != 1 {
		t.Errorf("creator registered mid-step ran %d times, expected 1", inner)
	}
	s.Step(0.1)
	if inner != 2 {
		t.Errorf("inner creator ran %d times after two steps, expected 2", inner)
	}
}

func TestSceneRegistrationOrder(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)

	var order []int
	for i := range 5 {
		s.AddForceCreator(func([]*Body, any) { order = append(order, i) }, nil, nil, a)
	}
	s.Step(0.1)

	for i, v := range order {
		if v != i {
			t.Fatalf("creators ran in order %v", order)
		}
	}
}

func TestSceneCloseReleasesOnce(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	b := addBody(t, s, geom.Rectangle(geom.Vec(5, 0), 1, 1), 1, KindNone)

	released := map[string]int{}
	release := func(aux any) { released[aux.(string)]++ }
	s.AddForceCreator(func([]*Body, any) {}, "one", release, a)
	s.AddForceCreator(func([]*Body, any) {}, "two", release, a, b)

	s.Close()
	s.Close()

	if released["one"] != 1 || released["two"] != 1 {
		t.Errorf("release counts = %v, expected one each", released)
	}
	if s.Bodies() != 0 || s.Entries() != 0 {
		t.Errorf("scene not empty after Close: %d bodies, %d entries", s.Bodies(), s.Entries())
	}
	s.Step(0.1)
}

func TestSceneInvariantPanics(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	b := addBody(t, s, geom.Rectangle(geom.Vec(3, 0), 1, 1), 1, KindNone)
	c := addBody(t, s, geom.Rectangle(geom.Vec(6, 0), 1, 1), 1, KindNone)
	noop := func([]*Body, any) {}

	foreign := addBody(t, NewScene(SceneConfig{}), geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
	loose := mustBody(t, geom.Rectangle(geom.Zero, 1, 1), 1)

	expectPanic(t, "no bodies", func() { s.AddForceCreator(noop, nil, nil) })
	expectPanic(t, "three bodies", func() { s.AddForceCreator(noop, nil, nil, a, b, c) })
	expectPanic(t, "foreign body", func() { s.AddForceCreator(noop, nil, nil, a, foreign) })
	expectPanic(t, "unowned body", func() { s.AddForceCreator(noop, nil, nil, loose) })
	expectPanic(t, "nil body", func() { s.AddForceCreator(noop, nil, nil, nil) })
	expectPanic(t, "nil creator", func() { s.AddForceCreator(nil, nil, nil, a) })
	expectPanic(t, "double add", func() { s.AddBody(a) })
	expectPanic(t, "nil add", func() { s.AddBody(nil) })

	if s.Entries() != 0 {
		t.Errorf("failed registrations left %d entries", s.Entries())
	}
}

func TestContinuousForces(t *testing.T) {
	t.Run("newtonian gravity", func(t *testing.T) {
		s := NewScene(SceneConfig{})
		a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 10, KindNone)
		b := addBody(t, s, geom.Rectangle(geom.Vec(10, 0), 1, 1), 10, KindNone)
		s.CreateNewtonianGravity(1, a, b)
		s.Step(1)
		if !a.Velocity().ApproxEqual(geom.Vec(0.1, 0), eps) || !b.Velocity().ApproxEqual(geom.Vec(-0.1, 0), eps) {
			t.Errorf("velocities = %v, %v", a.Velocity(), b.Velocity())
		}
	})

	t.Run("gravity skips close and static pairs", func(t *testing.T) {
		s := NewScene(SceneConfig{})
		a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 10, KindNone)
		near := addBody(t, s, geom.Rectangle(geom.Vec(1, 0), 1, 1), 10, KindNone)
		anchor := addBody(t, s, geom.Rectangle(geom.Vec(50, 0), 1, 1), InfiniteMass, KindNone)
		s.CreateNewtonianGravity(1, a, near)
		s.CreateNewtonianGravity(1, a, anchor)
		s.Step(1)
		if a.Velocity() != geom.Zero || near.Velocity() != geom.Zero {
			t.Errorf("unexpected gravity: %v, %v", a.Velocity(), near.Velocity())
		}
	})

	t.Run("spring", func(t *testing.T) {
		s := NewScene(SceneConfig{})
		a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
		b := addBody(t, s, geom.Rectangle(geom.Vec(3, 0), 1, 1), 1, KindNone)
		s.CreateSpring(2, a, b)
		s.Step(0.5)
		if !a.Velocity().ApproxEqual(geom.Vec(3, 0), eps) || !b.Velocity().ApproxEqual(geom.Vec(-3, 0), eps) {
			t.Errorf("velocities = %v, %v", a.Velocity(), b.Velocity())
		}
	})

	t.Run("drag", func(t *testing.T) {
		s := NewScene(SceneConfig{})
		a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 1, KindNone)
		a.SetVelocity(geom.Vec(10, 0))
		s.CreateDrag(0.5, a)
		s.Step(1)
		if !a.Velocity().ApproxEqual(geom.Vec(5, 0), eps) {
			t.Errorf("velocity = %v, expected (5, 0)", a.Velocity())
		}
	})

	t.Run("uniform gravity", func(t *testing.T) {
		s := NewScene(SceneConfig{})
		a := addBody(t, s, geom.Rectangle(geom.Zero, 1, 1), 2, KindNone)
		s.CreateUniformGravity(geom.Vec(0, -10), a)
		s.Step(0.5)
		if !a.Velocity().ApproxEqual(geom.Vec(0, -5), eps) {
			t.Errorf("velocity = %v, expected (0, -5)", a.Velocity())
		}
		if !a.Centroid().ApproxEqual(geom.Vec(0, -2.5), eps) {
			t.Errorf("centroid = %v, expected (0, -2.5)", a.Centroid())
		}
	})
}

func TestRestingContactRefires(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := addBody(t, s, geom.Rectangle(geom.Zero, 2, 2), 1, KindNone)
	floor := addBody(t, s, geom.Rectangle(geom.Vec(0, -1.5), 10, 2), InfiniteMass, KindGround)

	fired := 0
	s.CreateCollision(a, floor, func(b1, b2 *Body, axis geom.Vector, aux any, e float64) {
		fired++
		PhysicsCollisionHandler(b1, b2, axis, aux, e)
	}, nil, nil, 0)

	for range 3 {
		s.Step(0.01)
	}
	if fired != 3 {
		t.Errorf("handler fired %d times over 3 steps of resting contact, expected 3", fired)
	}
}
