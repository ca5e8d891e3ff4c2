package brush

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is the caller-supplied identity attached to a side: three seed points
// that define its supporting plane plus texture attributes. The kernel treats
// the attributes as an opaque payload; it only ever asks a face for its plane
// and tells it to recompute its points from the side's vertex ring.
type Face struct {
	worldBounds        BBox
	points             [3]mgl64.Vec3
	boundary           Plane
	side               *Side
	forceIntegerPoints bool

	Texture  string
	XOffset  float64
	YOffset  float64
	Rotation float64
	XScale   float64
	YScale   float64
}

// NewFace creates a face from three points on its supporting plane, wound
// clockwise when viewed from the front. Returns an error if the points are
// colinear.
func NewFace(worldBounds BBox, p1, p2, p3 mgl64.Vec3, texture string) (*Face, error) {
	boundary, ok := PlaneFromPoints(p1, p2, p3)
	if !ok {
		return nil, geometryErr("new face", ErrColinearPoints)
	}
	return &Face{
		worldBounds: worldBounds,
		points:      [3]mgl64.Vec3{p1, p2, p3},
		boundary:    boundary,
		XScale:      1,
		YScale:      1,
	}, nil
}

// NewFaceFromTemplate creates a face with the template's points and
// attributes, bounded by worldBounds.
func NewFaceFromTemplate(worldBounds BBox, template *Face) *Face {
	f := &Face{worldBounds: worldBounds}
	f.Restore(template)
	return f
}

// Copy returns a face with the same points and attributes but no side.
// The mover uses copies to preserve face identity across side splits.
func (f *Face) Copy() *Face {
	c := *f
	c.side = nil
	return &c
}

// Restore overwrites the face's points and attributes with the template's.
func (f *Face) Restore(template *Face) {
	f.points = template.points
	f.boundary = template.boundary
	f.forceIntegerPoints = template.forceIntegerPoints
	f.Texture = template.Texture
	f.XOffset = template.XOffset
	f.YOffset = template.YOffset
	f.Rotation = template.Rotation
	f.XScale = template.XScale
	f.YScale = template.YScale
}

// Boundary returns the face's supporting plane.
func (f *Face) Boundary() Plane {
	return f.boundary
}

// Points returns the face's three seed points.
func (f *Face) Points() [3]mgl64.Vec3 {
	return f.points
}

// WorldBounds returns the world bounds the face was created with.
func (f *Face) WorldBounds() BBox {
	return f.worldBounds
}

// Side returns the side currently realizing the face, or nil.
func (f *Face) Side() *Side {
	return f.side
}

func (f *Face) setSide(side *Side) {
	f.side = side
}

// ForceIntegerPoints controls whether the face rounds its seed points to
// integer coordinates whenever they are regenerated. It is a pure
// post-processing step on the seed points; vertex positions are unaffected.
func (f *Face) ForceIntegerPoints(force bool) {
	f.forceIntegerPoints = force
	if force {
		f.roundPoints()
	}
}

func (f *Face) roundPoints() {
	for i := range f.points {
		f.points[i] = rounded(f.points[i])
	}
	if boundary, ok := PlaneFromPoints(f.points[0], f.points[1], f.points[2]); ok {
		f.boundary = boundary
	}
}

// UpdatePointsFromVertices regenerates the seed points from the current
// vertex ring of the face's side, choosing the corner with the best angle so
// that future plane computations are well conditioned. Returns an error if
// every corner of the ring is colinear.
func (f *Face) UpdatePointsFromVertices() error {
	if f.side == nil {
		return geometryErr("update face points", ErrInvalidSide)
	}

	ring := f.side.vertices
	count := len(ring)

	bestDot := 1.0
	best := -1
	for i := 0; i < count && bestDot > 0; i++ {
		p0 := ring[i].Position
		p1 := ring[succ(i, count)].Position
		p2 := ring[pred(i, count)].Position

		v1 := p2.Sub(p0).Normalize()
		v2 := p1.Sub(p0).Normalize()
		if dot := v1.Dot(v2); dot < bestDot {
			bestDot = dot
			best = i
		}
	}

	if best < 0 {
		return geometryErr("update face points", ErrColinearPoints)
	}

	f.points[0] = ring[best].Position
	f.points[1] = ring[succ(best, count)].Position
	f.points[2] = ring[pred(best, count)].Position

	if f.forceIntegerPoints {
		for i := range f.points {
			f.points[i] = rounded(f.points[i])
		}
	}

	boundary, ok := PlaneFromPoints(f.points[0], f.points[1], f.points[2])
	if !ok {
		return geometryErr("update face points", fmt.Errorf("%w: %v %v %v",
			ErrColinearPoints, f.points[0], f.points[1], f.points[2]))
	}
	f.boundary = boundary
	return nil
}

// translate shifts the face's points by delta.
func (f *Face) translate(delta mgl64.Vec3) {
	for i := range f.points {
		f.points[i] = f.points[i].Add(delta)
	}
	f.boundary.Distance = f.points[0].Dot(f.boundary.Normal)
}

// transform applies fn to each point and recomputes the plane.
func (f *Face) transform(fn func(mgl64.Vec3) mgl64.Vec3) {
	for i := range f.points {
		f.points[i] = fn(f.points[i])
	}
	if boundary, ok := PlaneFromPoints(f.points[0], f.points[1], f.points[2]); ok {
		f.boundary = boundary
	}
}

// flipPoints reverses the winding of the seed points. Used by the mirror
// transform, which inverts the orientation of every face.
func (f *Face) flipPoints() {
	f.points[1], f.points[2] = f.points[2], f.points[1]
	if boundary, ok := PlaneFromPoints(f.points[0], f.points[1], f.points[2]); ok {
		f.boundary = boundary
	}
}
