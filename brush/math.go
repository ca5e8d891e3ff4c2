package brush

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Numeric tolerances used throughout the kernel. They are part of the
// contract: callers that construct faces or compare positions should use
// the same values.
const (
	// PointStatusEpsilon decides whether a point counts as lying on a plane.
	PointStatusEpsilon = 0.01
	// ColinearEpsilon decides whether two directions count as parallel and
	// whether two planes count as equal.
	ColinearEpsilon = 0.01
	// CorrectEpsilon is the maximum distance at which a coordinate is pulled
	// onto the nearest integer to control floating point drift.
	CorrectEpsilon = 0.001
)

// PointStatus classifies a point against an oriented plane.
type PointStatus int

const (
	StatusAbove PointStatus = iota
	StatusBelow
	StatusInside
)

// Plane is an oriented plane in Hessian normal form: a point p lies on the
// plane iff p·Normal == Distance. The positive half-space is the side the
// normal points into.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// PlaneFromPoints computes the plane through three points. The normal is
// (p3-p1)×(p2-p1) normalized, so the points wind clockwise when viewed from
// the positive side. Returns false if the points are colinear.
func PlaneFromPoints(p1, p2, p3 mgl64.Vec3) (Plane, bool) {
	normal := p3.Sub(p1).Cross(p2.Sub(p1))
	if normal.Len() < 1e-12 {
		return Plane{}, false
	}
	normal = normal.Normalize()
	return Plane{Normal: normal, Distance: p1.Dot(normal)}, true
}

// SignedDistance returns the distance of point from the plane, positive on
// the normal side.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return point.Dot(p.Normal) - p.Distance
}

// PointStatus classifies point against the plane using the given epsilon.
func (p Plane) PointStatus(point mgl64.Vec3, epsilon float64) PointStatus {
	dist := p.SignedDistance(point)
	if dist > epsilon {
		return StatusAbove
	}
	if dist < -epsilon {
		return StatusBelow
	}
	return StatusInside
}

// Equals reports whether the two planes coincide within epsilon, comparing
// normals component-wise and distances directly. Both planes must have
// normalized normals for the tolerance to be meaningful.
func (p Plane) Equals(other Plane, epsilon float64) bool {
	return math.Abs(p.Normal.X()-other.Normal.X()) <= epsilon &&
		math.Abs(p.Normal.Y()-other.Normal.Y()) <= epsilon &&
		math.Abs(p.Normal.Z()-other.Normal.Z()) <= epsilon &&
		math.Abs(p.Distance-other.Distance) <= epsilon
}

// IntersectRay returns the ray parameter at which the ray crosses the plane,
// or NaN if the ray is parallel to it or the crossing lies behind the origin.
func (p Plane) IntersectRay(ray Ray) float64 {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-12 {
		return math.NaN()
	}
	dist := (p.Distance - ray.Origin.Dot(p.Normal)) / denom
	if dist < 0 {
		return math.NaN()
	}
	return dist
}

// Ray is a half-line from Origin along Direction. Direction need not be
// normalized; ray parameters scale with its length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// PointAtDistance returns Origin + distance*Direction.
func (r Ray) PointAtDistance(distance float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// PointStatus classifies a point against the plane through the ray's origin
// whose normal is the ray's direction.
func (r Ray) PointStatus(point mgl64.Vec3) PointStatus {
	dot := point.Sub(r.Origin).Dot(r.Direction)
	if dot > PointStatusEpsilon {
		return StatusAbove
	}
	if dot < -PointStatusEpsilon {
		return StatusBelow
	}
	return StatusInside
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBBox returns the box spanning min..max.
func NewBBox(min, max mgl64.Vec3) BBox {
	return BBox{Min: min, Max: max}
}

// Bounds returns the box itself, satisfying the Bounded interface.
func (b BBox) Bounds() BBox {
	return b
}

// Center returns the midpoint of the box.
func (b BBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the edge lengths of the box.
func (b BBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether point lies inside or on the box.
func (b BBox) ContainsPoint(point mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if point[i] < b.Min[i] || point[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ContainsBBox reports whether other lies entirely inside b.
func (b BBox) ContainsBBox(other BBox) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Intersects reports whether the two boxes overlap or touch.
func (b BBox) Intersects(other BBox) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < other.Min[i] || b.Min[i] > other.Max[i] {
			return false
		}
	}
	return true
}

// MergePoint grows the box to include point.
func (b BBox) MergePoint(point mgl64.Vec3) BBox {
	for i := 0; i < 3; i++ {
		if point[i] < b.Min[i] {
			b.Min[i] = point[i]
		}
		if point[i] > b.Max[i] {
			b.Max[i] = point[i]
		}
	}
	return b
}

// Translated returns the box shifted by delta.
func (b BBox) Translated(delta mgl64.Vec3) BBox {
	return BBox{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Corners returns the eight corner points of the box.
func (b BBox) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// IntersectRay returns the ray parameter of the nearest crossing with the
// box using the slab method, or NaN if the ray misses. A ray starting inside
// the box returns 0.
func (b BBox) IntersectRay(ray Ray) float64 {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for i := 0; i < 3; i++ {
		if math.Abs(ray.Direction[i]) < 1e-12 {
			if ray.Origin[i] < b.Min[i] || ray.Origin[i] > b.Max[i] {
				return math.NaN()
			}
			continue
		}
		t1 := (b.Min[i] - ray.Origin[i]) / ray.Direction[i]
		t2 := (b.Max[i] - ray.Origin[i]) / ray.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}

	if tMin > tMax || tMax < 0 {
		return math.NaN()
	}
	if tMin < 0 {
		return 0
	}
	return tMin
}

// Bounded is anything that exposes an axis-aligned bounding box. Entities
// interact with the kernel only through their bounds.
type Bounded interface {
	Bounds() BBox
}

// axisOf returns the index of the dominant component of v.
func axisOf(v mgl64.Vec3) int {
	x, y, z := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	if x >= y && x >= z {
		return 0
	}
	if y >= x && y >= z {
		return 1
	}
	return 2
}

// swizzle projects point into the coordinate plane whose normal is the
// dominant axis of normal, mapping the dominant axis onto Z and keeping the
// projection right-handed with respect to the normal's sign.
func swizzle(normal, point mgl64.Vec3) mgl64.Vec3 {
	switch axis := axisOf(normal); {
	case axis == 0 && normal.X() >= 0:
		return mgl64.Vec3{point.Y(), point.Z(), point.X()}
	case axis == 0:
		return mgl64.Vec3{point.Z(), point.Y(), -point.X()}
	case axis == 1 && normal.Y() >= 0:
		return mgl64.Vec3{point.Z(), point.X(), point.Y()}
	case axis == 1:
		return mgl64.Vec3{point.X(), point.Z(), -point.Y()}
	case normal.Z() >= 0:
		return mgl64.Vec3{point.X(), point.Y(), point.Z()}
	default:
		return mgl64.Vec3{point.Y(), point.X(), -point.Z()}
	}
}

// equalsEps reports whether two points coincide within epsilon per component.
func equalsEps(a, b mgl64.Vec3, epsilon float64) bool {
	return math.Abs(a.X()-b.X()) <= epsilon &&
		math.Abs(a.Y()-b.Y()) <= epsilon &&
		math.Abs(a.Z()-b.Z()) <= epsilon
}

// corrected pulls each coordinate onto the nearest integer if it lies within
// epsilon of it.
func corrected(v mgl64.Vec3, epsilon float64) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		rounded := math.Round(v[i])
		if math.Abs(v[i]-rounded) <= epsilon {
			v[i] = rounded
		}
	}
	return v
}

// snapped rounds each coordinate to the nearest multiple of grid.
func snapped(v mgl64.Vec3, grid float64) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		v[i] = grid * math.Round(v[i]/grid)
	}
	return v
}

// rounded rounds each coordinate to the nearest integer.
func rounded(v mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		v[i] = math.Round(v[i])
	}
	return v
}

// parallel reports whether the two directions are parallel within epsilon.
func parallel(a, b mgl64.Vec3, epsilon float64) bool {
	la, lb := a.Len(), b.Len()
	if la < 1e-12 || lb < 1e-12 {
		return false
	}
	dot := a.Dot(b) / (la * lb)
	return math.Abs(math.Abs(dot)-1) <= epsilon
}

// pred and succ step backwards and forwards around a ring of size count.
func pred(index, count int) int {
	return predN(index, count, 1)
}

func succ(index, count int) int {
	return succN(index, count, 1)
}

func predN(index, count, offset int) int {
	offset %= count
	return (index + count - offset) % count
}

func succN(index, count, offset int) int {
	return (index + offset) % count
}

// sortByDot orders positions by decreasing dot product with direction, so
// that the leading position with respect to a move is handled first.
func sortByDot(positions []mgl64.Vec3, direction mgl64.Vec3) {
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Dot(direction) > positions[j].Dot(direction)
	})
}
