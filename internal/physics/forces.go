package physics

import (
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// ForceCreator is invoked once per Step with the bodies it was registered
// against, in registration order. It typically calls AddForce or
// AddImpulse on those bodies.
type ForceCreator func(bodies []*Body, aux any)

// CollisionHandler responds to an overlap between b1 and b2. axis is the
// unit collision axis pointing from b1 toward b2. param is the constant
// given at registration, usually an elasticity.
type CollisionHandler func(b1, b2 *Body, axis geom.Vector, aux any, param float64)

// MinGravityDistance is the separation below which Newtonian gravity is
// not applied, keeping the force bounded when bodies pass through each
// other.
const MinGravityDistance = 5.0

// CreateCollision registers handler to run on every Step in which the
// shapes of b1 and b2 overlap. Nothing debounces a persisting overlap: the
// handler fires again on each Step until the bodies separate.
func (s *Scene) CreateCollision(b1, b2 *Body, handler CollisionHandler, aux any, release func(any), param float64) EntryID {
	return s.AddForceCreator(func(bodies []*Body, aux any) {
		c, ok := FindCollision(bodies[0].shape, bodies[1].shape)
		if !ok {
			return
		}
		handler(bodies[0], bodies[1], c.Axis, aux, param)
	}, aux, release, b1, b2)
}

// CreatePhysicsCollision registers an impulse-based bounce between b1
// and b2 with the given elasticity in [0, 1].
func (s *Scene) CreatePhysicsCollision(b1, b2 *Body, elasticity float64) EntryID {
	return s.CreateCollision(b1, b2, PhysicsCollisionHandler, nil, nil, elasticity)
}

// CreateDestructiveCollision registers a bounce that also removes b2,
// e.g. a ball breaking a brick.
func (s *Scene) CreateDestructiveCollision(b1, b2 *Body, elasticity float64) EntryID {
	return s.CreateCollision(b1, b2, DestructiveCollisionHandler, nil, nil, elasticity)
}

// PhysicsCollisionHandler applies equal and opposite impulses along axis
// so that the relative axial velocity is reversed and scaled by
// elasticity. Separating bodies and pairs of static bodies are left alone.
func PhysicsCollisionHandler(b1, b2 *Body, axis geom.Vector, _ any, elasticity float64) {
	u := b2.velocity.Sub(b1.velocity).Dot(axis)
	if u > 0 {
		return
	}

	w := b1.InverseMass() + b2.InverseMass()
	if w == 0 {
		return
	}

	j := (1 + elasticity) * u / w
	b1.AddImpulse(axis.Scale(j))
	b2.AddImpulse(axis.Scale(-j))
}

// DestructiveCollisionHandler resolves the collision like
// PhysicsCollisionHandler, then removes b2.
func DestructiveCollisionHandler(b1, b2 *Body, axis geom.Vector, aux any, elasticity float64) {
	PhysicsCollisionHandler(b1, b2, axis, aux, elasticity)
	b2.Remove()
}

// CreateNewtonianGravity attracts b1 and b2 with force G*m1*m2/r^2.
// Pairs involving a static body, or closer than MinGravityDistance,
// receive no force.
func (s *Scene) CreateNewtonianGravity(g float64, b1, b2 *Body) EntryID {
	return s.AddForceCreator(func(bodies []*Body, _ any) {
		a, b := bodies[0], bodies[1]
		if a.IsStatic() || b.IsStatic() {
			return
		}
		r := b.centroid.Sub(a.centroid)
		dist := r.Length()
		if dist < MinGravityDistance {
			return
		}
		f := r.Scale(g * a.mass * b.mass / (dist * dist * dist))
		a.AddForce(f)
		b.AddForce(f.Negate())
	}, nil, nil, b1, b2)
}

// CreateSpring pulls b1 and b2 together with Hooke's law force k*r.
func (s *Scene) CreateSpring(k float64, b1, b2 *Body) EntryID {
	return s.AddForceCreator(func(bodies []*Body, _ any) {
		a, b := bodies[0], bodies[1]
		f := b.centroid.Sub(a.centroid).Scale(k)
		a.AddForce(f)
		b.AddForce(f.Negate())
	}, nil, nil, b1, b2)
}

// CreateDrag slows b with force -gamma*v.
func (s *Scene) CreateDrag(gamma float64, b *Body) EntryID {
	return s.AddForceCreator(func(bodies []*Body, _ any) {
		body := bodies[0]
		body.AddForce(body.velocity.Scale(-gamma))
	}, nil, nil, b)
}

// CreateUniformGravity pulls b with constant acceleration g.
func (s *Scene) CreateUniformGravity(g geom.Vector, b *Body) EntryID {
	return s.AddForceCreator(func(bodies []*Body, _ any) {
		body := bodies[0]
		if body.IsStatic() {
			return
		}
		body.AddForce(g.Scale(body.mass))
	}, nil, nil, b)
}
