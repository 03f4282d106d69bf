package physics

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// Collision describes an overlap between two polygons.
type Collision struct {
	Axis    geom.Vector // unit axis of least penetration, pointing from A toward B
	Overlap float64     // penetration depth along Axis
}

// FindCollision tests two convex polygons with the separating axis theorem.
// Candidate axes are the edge normals of a followed by those of b. The
// first axis with zero or negative overlap proves the shapes disjoint and
// ends the search. Otherwise the axis with the smallest overlap is
// reported, the earliest one winning ties.
func FindCollision(a, b geom.Polygon) (Collision, bool) {
	best := Collision{Overlap: math.Inf(1)}

	for _, poly := range [2]geom.Polygon{a, b} {
		for _, edge := range poly.Edges() {
			axis := edge.Perp().Normalize()
			if axis == geom.Zero {
				continue
			}

			minA, maxA := a.Project(axis)
			minB, maxB := b.Project(axis)
			overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
			if overlap <= 0 {
				return Collision{}, false
			}
			if overlap < best.Overlap {
				best = Collision{Axis: axis, Overlap: overlap}
			}
		}
	}

	if math.IsInf(best.Overlap, 1) {
		return Collision{}, false
	}

	if b.Centroid().Sub(a.Centroid()).Dot(best.Axis) < 0 {
		best.Axis = best.Axis.Negate()
	}
	return best, true
}
