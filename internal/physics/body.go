// Package physics implements the rigid-body engine behind the games:
// bodies with convex polygon shapes, separating-axis collision detection,
// impulse-based collision response and a Scene that owns every body and
// the force creators registered against them.
//
// The engine is single-threaded. A Scene must not be used from more than
// one goroutine at a time.
package physics

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// Construction errors returned by NewBody.
var (
	ErrInvalidMass       = errors.New("physics: mass must be positive")
	ErrDegeneratePolygon = errors.New("physics: polygon needs at least 3 points and non-zero area")
)

// InfiniteMass marks an immovable body. Forces and impulses never change
// its velocity; SetVelocity and SetCentroid still apply.
var InfiniteMass = math.Inf(1)

// Kind tags what a body represents in a game.
type Kind int

const (
	KindNone Kind = iota
	KindBall
	KindWall
	KindBrick
	KindGround
	KindPaddle
	KindPickup
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBall:
		return "ball"
	case KindWall:
		return "wall"
	case KindBrick:
		return "brick"
	case KindGround:
		return "ground"
	case KindPaddle:
		return "paddle"
	case KindPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Body is a rigid body with a convex polygon shape.
type Body struct {
	shape    geom.Polygon
	centroid geom.Vector
	velocity geom.Vector
	rotation float64
	spin     float64 // angular velocity, radians per second
	mass     float64

	force   geom.Vector // accumulated until the next integration
	impulse geom.Vector

	color   core.Color
	kind    Kind
	removed bool

	scene *Scene
	id    BodyID
}

// NewBody creates a body from a copy of shape.
// The shape must have at least 3 points and non-zero area, and mass must
// be positive (InfiniteMass is allowed).
func NewBody(shape geom.Polygon, mass float64, color core.Color, kind Kind) (*Body, error) {
	if math.IsNaN(mass) || mass <= 0 {
		return nil, ErrInvalidMass
	}
	if len(shape) < 3 || shape.Area() == 0 {
		return nil, ErrDegeneratePolygon
	}

	poly := shape.Clone()
	return &Body{
		shape:    poly,
		centroid: poly.Centroid(),
		mass:     mass,
		color:    color,
		kind:     kind,
	}, nil
}

// Shape returns a copy of the body's polygon in world coordinates.
func (b *Body) Shape() geom.Polygon {
	return b.shape.Clone()
}

// SetShape replaces the body's polygon with a copy of shape, moved so the
// body's centroid stays put. Rotation restarts from zero.
func (b *Body) SetShape(shape geom.Polygon) error {
	if len(shape) < 3 || shape.Area() == 0 {
		return ErrDegeneratePolygon
	}
	poly := shape.Clone()
	poly.Translate(b.centroid.Sub(poly.Centroid()))
	b.shape = poly
	b.rotation = 0
	return nil
}

// Centroid returns the body's centre of mass.
func (b *Body) Centroid() geom.Vector {
	return b.centroid
}

// SetCentroid moves the body so its centroid is at c.
func (b *Body) SetCentroid(c geom.Vector) {
	b.shape.Translate(c.Sub(b.centroid))
	b.centroid = c
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() geom.Vector {
	return b.velocity
}

// SetVelocity sets the body's linear velocity. Applies to static bodies too.
func (b *Body) SetVelocity(v geom.Vector) {
	b.velocity = v
}

// Rotation returns the cumulative rotation angle in radians.
func (b *Body) Rotation() float64 {
	return b.rotation
}

// SetRotation rotates the body about its centroid to the given angle.
func (b *Body) SetRotation(angle float64) {
	b.shape.Rotate(angle-b.rotation, b.centroid)
	b.rotation = angle
}

// AngularVelocity returns the rotation rate in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.spin
}

// SetAngularVelocity sets the rotation rate applied on each integration.
func (b *Body) SetAngularVelocity(w float64) {
	b.spin = w
}

// Mass returns the body's mass, possibly InfiniteMass.
func (b *Body) Mass() float64 {
	return b.mass
}

// IsStatic reports whether the body has infinite mass.
func (b *Body) IsStatic() bool {
	return math.IsInf(b.mass, 1)
}

// InverseMass returns 1/mass, or 0 for infinite mass.
func (b *Body) InverseMass() float64 {
	if b.IsStatic() {
		return 0
	}
	return 1 / b.mass
}

// AddForce accumulates f until the next integration.
func (b *Body) AddForce(f geom.Vector) {
	b.force = b.force.Add(f)
}

// AddImpulse accumulates j until the next integration.
func (b *Body) AddImpulse(j geom.Vector) {
	b.impulse = b.impulse.Add(j)
}

// Kind returns what the body represents.
func (b *Body) Kind() Kind {
	return b.kind
}

// Color returns the body's display color.
func (b *Body) Color() core.Color {
	return b.color
}

// Remove flags the body for removal. The owning scene drops it at the end
// of its next Step.
func (b *Body) Remove() {
	b.removed = true
}

// IsRemoved reports whether Remove has been called.
func (b *Body) IsRemoved() bool {
	return b.removed
}

// Reset clears accumulated force and impulse and stops any spin.
// Position, velocity and orientation are kept.
func (b *Body) Reset() {
	b.force = geom.Zero
	b.impulse = geom.Zero
	b.spin = 0
}

// ID returns the handle assigned by the owning scene.
// The zero BodyID is returned for bodies not yet added to a scene.
func (b *Body) ID() BodyID {
	return b.id
}

// tick integrates the body over dt seconds and clears accumulated force
// and impulse. Static bodies still move with their explicit velocity.
func (b *Body) tick(dt float64) {
	if w := b.InverseMass(); w != 0 {
		b.velocity = b.velocity.
			Add(b.force.Scale(w * dt)).
			Add(b.impulse.Scale(w))
	}
	if b.spin != 0 {
		b.SetRotation(b.rotation + b.spin*dt)
	}
	if dt != 0 {
		b.SetCentroid(b.centroid.Add(b.velocity.Scale(dt)))
	}
	b.force = geom.Zero
	b.impulse = geom.Zero
}
