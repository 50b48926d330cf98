package collision

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// staticColliding reports whether the boxes of a and b overlap on both axes
// at their owners' current positions. Boxes that only touch along an edge
// or at a corner do not collide.
func staticColliding(a, b *Collider) bool {
	ab := a.Bounds()
	bb := b.Bounds()
	return overlaps(ab.Min.X, ab.Max.X, bb.Min.X, bb.Max.X) &&
		overlaps(ab.Min.Y, ab.Max.Y, bb.Min.Y, bb.Max.Y)
}

// overlaps reports whether [aMin, aMax] and [bMin, bMax] share interior.
// This covers an edge of a strictly inside b, either strictly enclosing the
// other, and coincident edges; shared endpoints alone are not enough.
func overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax && aMax > bMin
}

// sweptColliding tests the path of fast's owner over the last tick against
// the box of target. Two swept colliders never collide.
func sweptColliding(fast, target *Collider) bool {
	if target.kind == KindSwept {
		return false
	}

	from := fast.PastPosition()
	to := fast.Position()

	corners := target.Corners()
	box := core.Box{Min: corners[0], Max: corners[2]}

	// A path wholly inside the box crosses no edge.
	if box.Contains(from) && box.Contains(to) {
		return true
	}

	for i := range corners {
		if segmentsIntersect(from, to, corners[i], corners[(i+1)%len(corners)]) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segment p→p2 crosses segment q→q2.
// Touching at an endpoint counts. Parallel and collinear segments never
// intersect, even when they overlap.
func segmentsIntersect(p, p2, q, q2 core.Vec2) bool {
	r := p2.Minus(p)
	s := q2.Minus(q)

	denom := core.Cross(r, s)
	if denom == 0 {
		return false
	}

	qp := q.Minus(p)
	t := core.Cross(qp, s) / denom
	u := core.Cross(qp, r) / denom

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}
