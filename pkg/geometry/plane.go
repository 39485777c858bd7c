package geometry

import "math"

// DefaultTolerance is the crossing parameter margin used when no other
// tolerance is configured. Crossings closer than this to either end of a
// segment are not reported, so a cut never creates a vertex on top of an
// existing one.
const DefaultTolerance = 1e-5

// Plane is an infinite plane through Origin, oriented by Normal. The normal
// does not have to be unit length.
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// NewPlane creates a plane from an origin point and a normal vector
func NewPlane(origin, normal Vector3) Plane {
	return Plane{Origin: origin, Normal: normal}
}

// HasOrigin reports whether the origin is anything other than (0, 0, 0).
// Cutters treat a zero origin as "no plane configured".
func (p Plane) HasOrigin() bool {
	return !p.Origin.IsZero()
}

// Lambda returns the parameter λ for which λ*a + (1-λ)*b lies on the plane:
//
//	λ = ((origin - b)·normal) / ((a - b)·normal)
//
// The result follows IEEE division: ±Inf when the segment is parallel to
// the plane and NaN when it lies inside it.
func (p Plane) Lambda(a, b Vector3) float64 {
	num := p.Origin.Sub(b).Dot(p.Normal)
	den := a.Sub(b).Dot(p.Normal)
	return num / den
}

// inPlaneTolerance bounds |(a-b)·normal| relative to the segment's scale
// below which the segment counts as lying in the plane.
const inPlaneTolerance = 1e-9

// Locate reports where segment [a, b] crosses the plane. The crossing is
// only reported when λ is finite and lies in [tolerance, 1-tolerance], that
// is strictly inside the segment. Parallel and in-plane segments, and
// crossings at or near an endpoint, are not intersections.
//
// A segment whose endpoints' signed distances differ by rounding noise
// only, such as one joining two vertices already created on the plane, is
// treated as in-plane even when the division would give a finite λ.
func (p Plane) Locate(a, b Vector3, tolerance float64) (float64, bool) {
	den := a.Sub(b).Dot(p.Normal)
	scale := math.Max(a.Distance(b), math.Max(a.Distance(p.Origin), b.Distance(p.Origin)))
	if math.Abs(den) <= inPlaneTolerance*scale*p.Normal.Length() {
		return 0, false
	}

	lambda := p.Origin.Sub(b).Dot(p.Normal) / den
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return 0, false
	}
	if lambda < tolerance || lambda > 1-tolerance {
		return 0, false
	}
	return lambda, true
}

// Intersect returns the crossing point of [a, b] with the plane, if any.
func (p Plane) Intersect(a, b Vector3, tolerance float64) (Vector3, bool) {
	lambda, ok := p.Locate(a, b, tolerance)
	if !ok {
		return Vector3{}, false
	}
	return a.Lerp(b, lambda), true
}

// SignedDistance returns (v - origin)·normal. It is the true distance only
// when the normal has unit length.
func (p Plane) SignedDistance(v Vector3) float64 {
	return v.Sub(p.Origin).Dot(p.Normal)
}

// Side classifies v as below (-1), on (0) or above (+1) the plane. The
// tolerance is a distance and is scaled by the normal's length.
func (p Plane) Side(v Vector3, tolerance float64) int {
	d := p.SignedDistance(v)
	eps := tolerance * p.Normal.Length()
	switch {
	case d < -eps:
		return -1
	case d > eps:
		return 1
	default:
		return 0
	}
}
