// Package geom provides the epsilon-tolerant 2D geometry used by the room engine.
//
// All points and directions are mgl32.Vec2 values. Ray directions may be
// non-normalized but must be non-zero; functions that cannot find a finite
// answer return +Inf instead of an error.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEpsilon is the relative threshold used by FloatApprox.
const DefaultEpsilon float32 = 5e-7

// Inf is positive infinity as a float32.
var Inf = float32(math.Inf(1))

// FloatApprox reports whether a and b are approximately equal.
//
// When either operand is exactly zero an absolute comparison is used.
// Otherwise the comparison is weak: the values are approximate if the
// difference is small relative to either a or b.
func FloatApprox(a, b float32) bool {
	return FloatApproxEps(a, b, DefaultEpsilon)
}

// FloatApproxEps is FloatApprox with an explicit epsilon.
func FloatApproxEps(a, b, eps float32) bool {
	diff := mgl32.Abs(a - b)
	if a == 0 || b == 0 {
		return diff <= eps
	}
	if diff/mgl32.Abs(a) > eps && diff/mgl32.Abs(b) > eps {
		return false
	}
	return true
}

// FloatApproxVec compares two vectors component-wise with FloatApprox.
func FloatApproxVec(a, b mgl32.Vec2) bool {
	return FloatApprox(a.X(), b.X()) && FloatApprox(a.Y(), b.Y())
}

// IsUnitVector reports whether v has length approximately 1.
func IsUnitVector(v mgl32.Vec2) bool {
	return FloatApprox(v.Dot(v), 1)
}

// IsZero reports whether both components of v are approximately zero.
func IsZero(v mgl32.Vec2) bool {
	return FloatApprox(v.X(), 0) && FloatApprox(v.Y(), 0)
}

// perp returns v rotated a quarter turn clockwise.
func perp(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{v.Y(), -v.X()}
}

// Cross is the z component of the 3D cross product of a and b. It is positive
// when b lies counter-clockwise of a.
func Cross(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// AreParallel reports whether u and v are parallel, ignoring orientation.
// The zero vector is parallel to every vector.
func AreParallel(u, v mgl32.Vec2) bool {
	return FloatApprox(u.Dot(perp(v)), 0)
}

// AreCollinear reports whether a, b and c lie on one line.
// Coincident points are always collinear.
func AreCollinear(a, b, c mgl32.Vec2) bool {
	return AreParallel(a.Sub(b), c.Sub(b))
}

// RayToLineDistance returns the signed distance a ray starting at pos must
// travel along dir to reach the infinite line through head and tail.
//
// The result is negative when the line lies behind the ray and +Inf when the
// ray is parallel to the line. A ray starting on head or tail, a ray lying on
// the line, and a point line (head == tail) all give 0.
func RayToLineDistance(head, tail, pos, dir mgl32.Vec2) float32 {
	if FloatApproxVec(head, pos) || FloatApproxVec(tail, pos) {
		return 0
	}
	if FloatApproxVec(head, tail) {
		return 0
	}

	// r = (H - T)·<H.y - P.y, P.x - H.x> / (H - T)·n, n = unit perp of dir
	diff := head.Sub(tail)
	normal := perp(dir)
	if !IsUnitVector(normal) {
		normal = normal.Normalize()
	}
	ref := mgl32.Vec2{head.Y() - pos.Y(), pos.X() - head.X()}

	r := diff.Dot(ref)
	if FloatApprox(r, 0) {
		return 0
	}

	denominator := diff.Dot(normal)
	if FloatApprox(denominator, 0) {
		return Inf
	}
	return r / denominator
}

// RayIntersectsSegment reports whether a ray from pos along dir meets the
// finite segment [head, tail] in the positive direction.
//
// A ray starting on an endpoint or between collinear endpoints always
// intersects. When pos is collinear with the segment but outside it, the ray
// intersects only if it points at the segment and parallelHitValid is set.
// A point segment intersects only when dir points exactly at it.
func RayIntersectsSegment(head, tail, pos, dir mgl32.Vec2, parallelHitValid bool) bool {
	if FloatApproxVec(head, pos) || FloatApproxVec(tail, pos) {
		return true
	}

	h := head.Sub(pos)
	t := tail.Sub(pos)

	a := Cross(h, t)
	if FloatApprox(a, 0) {
		if h.Dot(t) < 0 {
			// pos lies between head and tail
			return true
		}
		if !FloatApprox(Cross(h, dir), 0) {
			return false
		}
		return h.Dot(dir) > 0 && parallelHitValid
	}

	// b: where dir sits relative to head, c: relative to tail
	b := Cross(h, dir)
	c := Cross(t, dir)
	if a > 0 {
		// tail counter-clockwise of head; dir must lie in [head, tail]
		return (b > 0 || FloatApprox(b, 0)) && (c < 0 || FloatApprox(c, 0))
	}
	return (b < 0 || FloatApprox(b, 0)) && (c > 0 || FloatApprox(c, 0))
}

// TextureIndexOnLine returns the signed distance from head to the point where
// the ray from pos along dir crosses the line through head and tail.
//
// Parallel rays give 0 when pointing at head along the line, the distance to
// head when collinear but pointing away, and +Inf when never touching the line.
// Whether the ray actually reaches the segment is not considered.
func TextureIndexOnLine(head, tail, pos, dir mgl32.Vec2) float32 {
	if AreParallel(dir, head.Sub(tail)) {
		if !AreCollinear(pos, head, tail) {
			return Inf
		}
		if dir.Dot(head.Sub(pos)) > 0 {
			return 0
		}
		return pos.Sub(head).Len()
	}

	// swap roles: the ray becomes the line, the segment becomes the ray
	return RayToLineDistance(pos, pos.Add(dir), head, tail.Sub(head))
}

// FastRotate rotates v by the angle whose cosine and sine are given.
// A positive sine rotates clockwise. The result is renormalized when the
// pair does not describe a rotation exactly.
func FastRotate(v mgl32.Vec2, cos, sin float32) mgl32.Vec2 {
	length := v.Len()
	rotated := mgl32.Vec2{
		v.X()*cos + v.Y()*sin,
		-v.X()*sin + v.Y()*cos,
	}
	if length == 0 || FloatApprox(rotated.Len(), length) {
		return rotated
	}
	return rotated.Normalize().Mul(length)
}

// AbsoluteClamp limits the magnitude of value to limit, keeping its sign.
// A negative limit clamps to zero.
func AbsoluteClamp(value, limit float32) float32 {
	if limit < 0 {
		limit = 0
	}
	if mgl32.Abs(value) <= limit {
		return value
	}
	if value < 0 {
		return -limit
	}
	return limit
}
