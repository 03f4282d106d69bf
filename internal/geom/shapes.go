package geom

import "math"

// Circle approximates a circle with a regular n-gon, counter-clockwise,
// starting at angle 0. n is raised to 3 when smaller.
func Circle(center Vector, radius float64, n int) Polygon {
	if n < 3 {
		n = 3
	}
	points := make(Polygon, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(angle)
		points[i] = Vector{
			X: center.X + radius*cos,
			Y: center.Y + radius*sin,
		}
	}
	return points
}

// Rectangle returns an axis-aligned w x h rectangle centred on center,
// counter-clockwise from the bottom-left corner.
func Rectangle(center Vector, w, h float64) Polygon {
	hw, hh := w/2, h/2
	return Polygon{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
