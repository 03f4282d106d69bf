package geom

import "math"

// Polygon is an ordered list of vertices. Insertion order is the winding
// order. The engine assumes polygons are convex.
type Polygon []Vector

// Clone returns a copy of p that shares no storage with it.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// SignedArea returns the shoelace area of p.
// Counter-clockwise polygons have positive area.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

// Area returns the absolute area of p.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the area-weighted centre of p.
// Degenerate polygons fall back to the vertex average.
func (p Polygon) Centroid() Vector {
	n := len(p)
	if n == 0 {
		return Zero
	}
	area := p.SignedArea()
	if area == 0 {
		sum := Zero
		for _, v := range p {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(n))
	}

	var cx, cy float64
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		cross := a.Cross(b)
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Vector{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Translate shifts every vertex of p by d in place.
func (p Polygon) Translate(d Vector) {
	for i := range p {
		p[i] = p[i].Add(d)
	}
}

// Rotate rotates every vertex of p by angle radians about pivot in place.
func (p Polygon) Rotate(angle float64, pivot Vector) {
	for i := range p {
		p[i] = p[i].Sub(pivot).Rotate(angle).Add(pivot)
	}
}

// Edges returns the edge vectors p[i+1]-p[i], wrapping around at the end.
func (p Polygon) Edges() []Vector {
	n := len(p)
	edges := make([]Vector, n)
	for i := range n {
		edges[i] = p[(i+1)%n].Sub(p[i])
	}
	return edges
}

// Project returns the interval covered by p when projected onto axis.
func (p Polygon) Project(axis Vector) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range p {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Contains reports whether pt lies inside the convex polygon p
// (boundary included). Works for either winding.
func (p Polygon) Contains(pt Vector) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		c := b.Sub(a).Cross(pt.Sub(a))
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
			continue
		}
		if (c > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of p.
func (p Polygon) Bounds() (lo, hi Vector) {
	lo = Vector{X: math.Inf(1), Y: math.Inf(1)}
	hi = Vector{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, v := range p {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
	}
	return lo, hi
}
