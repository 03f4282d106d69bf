// Package geom provides 2D vector arithmetic and convex polygon utilities
// used by the physics engine and the renderers.
// Vector arithmetic is carried out by mgl64; every type is a plain value.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is an immutable 2D vector.
type Vector struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector{}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromVec2 converts an mgl64 vector.
func FromVec2(m mgl64.Vec2) Vector {
	return Vector{X: m[0], Y: m[1]}
}

// Vec2 returns v as an mgl64 vector.
func (v Vector) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return FromVec2(v.Vec2().Add(o.Vec2()))
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return FromVec2(v.Vec2().Sub(o.Vec2()))
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return FromVec2(v.Vec2().Mul(s))
}

// Negate returns -v.
func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.Vec2().Dot(o.Vec2())
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Rotate returns v rotated counter-clockwise by angle radians about the origin.
func (v Vector) Rotate(angle float64) Vector {
	return FromVec2(mgl64.Rotate2D(angle).Mul2x1(v.Vec2()))
}

// Perp returns v rotated by +90 degrees.
func (v Vector) Perp() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return v.Vec2().Len()
}

// LengthSquared returns the squared norm of v.
func (v Vector) LengthSquared() float64 {
	return v.Vec2().LenSqr()
}

// Normalize returns the unit vector pointing along v.
// The zero vector normalizes to itself. Axis-aligned vectors normalize
// exactly.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// ApproxEqual reports whether v and o differ by at most eps in each component.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
