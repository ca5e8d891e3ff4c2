package brush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Brush is a convex polyhedron represented by its boundary: flat collections
// of vertices, edges and sides, a bounding box and a centroid. Sides realize
// caller-supplied faces; a brush whose sides all carry faces is closed.
//
// A brush must not be accessed from more than one goroutine concurrently.
// Distinct brushes are independent.
type Brush struct {
	vertices []*Vertex
	edges    []*Edge
	sides    []*Side
	bounds   BBox
	center   mgl64.Vec3
}

// New seeds a brush as the axis-aligned box given by worldBounds: 8 vertices,
// 12 edges and 6 quad sides with no faces attached.
func New(worldBounds BBox) *Brush {
	lfd := newVertex(mgl64.Vec3{worldBounds.Min.X(), worldBounds.Min.Y(), worldBounds.Min.Z()})
	lfu := newVertex(mgl64.Vec3{worldBounds.Min.X(), worldBounds.Min.Y(), worldBounds.Max.Z()})
	lbd := newVertex(mgl64.Vec3{worldBounds.Min.X(), worldBounds.Max.Y(), worldBounds.Min.Z()})
	lbu := newVertex(mgl64.Vec3{worldBounds.Min.X(), worldBounds.Max.Y(), worldBounds.Max.Z()})
	rfd := newVertex(mgl64.Vec3{worldBounds.Max.X(), worldBounds.Min.Y(), worldBounds.Min.Z()})
	rfu := newVertex(mgl64.Vec3{worldBounds.Max.X(), worldBounds.Min.Y(), worldBounds.Max.Z()})
	rbd := newVertex(mgl64.Vec3{worldBounds.Max.X(), worldBounds.Max.Y(), worldBounds.Min.Z()})
	rbu := newVertex(mgl64.Vec3{worldBounds.Max.X(), worldBounds.Max.Y(), worldBounds.Max.Z()})

	lfdlbd := newEdge(lfd, lbd)
	lbdlbu := newEdge(lbd, lbu)
	lbulfu := newEdge(lbu, lfu)
	lfulfd := newEdge(lfu, lfd)
	rfdrfu := newEdge(rfd, rfu)
	rfurbu := newEdge(rfu, rbu)
	rburbd := newEdge(rbu, rbd)
	rbdrfd := newEdge(rbd, rfd)
	lfurfu := newEdge(lfu, rfu)
	rfdlfd := newEdge(rfd, lfd)
	lbdrbd := newEdge(lbd, rbd)
	rbulbu := newEdge(rbu, lbu)

	invertNone := []bool{false, false, false, false}
	invertAll := []bool{true, true, true, true}
	invertOdd := []bool{false, true, false, true}

	left := newSideFromEdges([]*Edge{lfdlbd, lbdlbu, lbulfu, lfulfd}, invertNone)
	right := newSideFromEdges([]*Edge{rfdrfu, rfurbu, rburbd, rbdrfd}, invertNone)
	front := newSideFromEdges([]*Edge{lfurfu, rfdrfu, rfdlfd, lfulfd}, invertOdd)
	back := newSideFromEdges([]*Edge{rbulbu, lbdlbu, lbdrbd, rburbd}, invertOdd)
	top := newSideFromEdges([]*Edge{lbulfu, rbulbu, rfurbu, lfurfu}, invertAll)
	down := newSideFromEdges([]*Edge{rfdlfd, rbdrfd, lbdrbd, lfdlbd}, invertAll)

	b := &Brush{
		vertices: []*Vertex{lfd, lfu, lbd, lbu, rfd, rfu, rbd, rbu},
		edges: []*Edge{
			lfdlbd, lbdlbu, lbulfu, lfulfd,
			rfdrfu, rfurbu, rburbd, rbdrfd,
			lfurfu, rfdlfd, lbdrbd, rbulbu,
		},
		sides:  []*Side{left, right, front, back, top, down},
		bounds: worldBounds,
	}
	b.center = centerOfVertices(b.vertices)
	return b
}

// NewFromFaces seeds a brush from worldBounds and clips it to the given
// faces. The faces become owned by the brush; redundant faces are reported
// in the dropped set and must be destroyed by the caller.
func NewFromFaces(worldBounds BBox, faces []*Face) (*Brush, []*Face, error) {
	b := New(worldBounds)
	dropped, err := b.AddFaces(faces)
	if err != nil {
		return nil, nil, err
	}
	return b, dropped, nil
}

// NewBox creates a closed box-shaped brush spanning bounds, with six faces
// copying the template's attributes.
func NewBox(worldBounds, bounds BBox, template *Face) (*Brush, error) {
	min, max := bounds.Min, bounds.Max

	points := [6][3]mgl64.Vec3{
		{{max.X(), min.Y(), min.Z()}, {max.X(), min.Y(), max.Z()}, {max.X(), max.Y(), min.Z()}},
		{{min.X(), min.Y(), min.Z()}, {min.X(), max.Y(), min.Z()}, {min.X(), min.Y(), max.Z()}},
		{{min.X(), max.Y(), min.Z()}, {max.X(), max.Y(), min.Z()}, {min.X(), max.Y(), max.Z()}},
		{{min.X(), min.Y(), min.Z()}, {min.X(), min.Y(), max.Z()}, {max.X(), min.Y(), min.Z()}},
		{{min.X(), min.Y(), max.Z()}, {min.X(), max.Y(), max.Z()}, {max.X(), min.Y(), max.Z()}},
		{{min.X(), min.Y(), min.Z()}, {max.X(), min.Y(), min.Z()}, {min.X(), max.Y(), min.Z()}},
	}

	faces := make([]*Face, 0, 6)
	for _, p := range points {
		face, err := NewFace(worldBounds, p[0], p[1], p[2], "")
		if err != nil {
			return nil, err
		}
		if template != nil {
			face.Texture = template.Texture
			face.XOffset = template.XOffset
			face.YOffset = template.YOffset
			face.Rotation = template.Rotation
			face.XScale = template.XScale
			face.YScale = template.YScale
			face.forceIntegerPoints = template.forceIntegerPoints
		}
		faces = append(faces, face)
	}

	b, dropped, err := NewFromFaces(worldBounds, faces)
	if err != nil {
		return nil, err
	}
	if len(dropped) != 0 {
		return nil, geometryErr("new box", ErrInvalidSide)
	}
	return b, nil
}

// Clone returns a deep copy of the brush. Faces are shared between the
// original and the copy; the copy's sides point at the original's faces but
// the faces' side back-references keep pointing at the original. This is the
// rollback building block: predicates run on a clone and the original calls
// restoreFaceSides afterwards.
func (b *Brush) Clone() *Brush {
	clone := &Brush{}
	clone.copyFrom(b)
	return clone
}

func (b *Brush) copyFrom(original *Brush) {
	vertexMap := make(map[*Vertex]*Vertex, len(original.vertices))
	edgeMap := make(map[*Edge]*Edge, len(original.edges))

	b.vertices = make([]*Vertex, 0, len(original.vertices))
	b.edges = make([]*Edge, 0, len(original.edges))
	b.sides = make([]*Side, 0, len(original.sides))

	for _, vertex := range original.vertices {
		copyVertex := &Vertex{Position: vertex.Position, mark: vertex.mark}
		vertexMap[vertex] = copyVertex
		b.vertices = append(b.vertices, copyVertex)
	}

	for _, edge := range original.edges {
		copyEdge := &Edge{
			Start: vertexMap[edge.Start],
			End:   vertexMap[edge.End],
			mark:  edge.mark,
		}
		edgeMap[edge] = copyEdge
		b.edges = append(b.edges, copyEdge)
	}

	for _, side := range original.sides {
		copySide := &Side{face: side.face, mark: side.mark}
		for _, edge := range side.edges {
			copyEdge := edgeMap[edge]
			if edge.Left == side {
				copyEdge.Left = copySide
			} else {
				copyEdge.Right = copySide
			}
			copySide.edges = append(copySide.edges, copyEdge)
			copySide.vertices = append(copySide.vertices, copyEdge.StartVertex(copySide))
		}
		b.sides = append(b.sides, copySide)
	}

	b.bounds = original.bounds
	b.center = original.center
}

// restoreFaceSides points every face back at its side in this brush. Called
// after a clone has hijacked the face→side references.
func (b *Brush) restoreFaceSides() {
	for _, side := range b.sides {
		if side.face != nil {
			side.face.setSide(side)
		}
	}
}

// Closed reports whether every side has a face attached.
func (b *Brush) Closed() bool {
	for _, side := range b.sides {
		if side.face == nil {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the brush's vertices.
func (b *Brush) Bounds() BBox {
	return b.bounds
}

// Center returns the centroid of the brush's vertices.
func (b *Brush) Center() mgl64.Vec3 {
	return b.center
}

// Vertices returns the brush's vertices. The slice must not be modified.
func (b *Brush) Vertices() []*Vertex {
	return b.vertices
}

// Edges returns the brush's edges. The slice must not be modified.
func (b *Brush) Edges() []*Edge {
	return b.edges
}

// Sides returns the brush's sides. The slice must not be modified.
func (b *Brush) Sides() []*Side {
	return b.sides
}

// Faces returns the faces attached to the brush's sides.
func (b *Brush) Faces() []*Face {
	faces := make([]*Face, 0, len(b.sides))
	for _, side := range b.sides {
		if side.face != nil {
			faces = append(faces, side.face)
		}
	}
	return faces
}

// VertexPositions returns the positions of all vertices.
func (b *Brush) VertexPositions() []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, len(b.vertices))
	for i, vertex := range b.vertices {
		positions[i] = vertex.Position
	}
	return positions
}

// ContainsPoint reports whether point lies on the non-positive side of every
// face's plane.
func (b *Brush) ContainsPoint(point mgl64.Vec3) bool {
	if !b.bounds.ContainsPoint(point) {
		return false
	}
	for _, side := range b.sides {
		if side.face == nil {
			continue
		}
		if side.face.Boundary().PointStatus(point, PointStatusEpsilon) == StatusAbove {
			return false
		}
	}
	return true
}

// ContainsBrush reports whether every vertex of other lies inside b.
func (b *Brush) ContainsBrush(other *Brush) bool {
	if !b.bounds.ContainsBBox(other.bounds) {
		return false
	}
	for _, vertex := range other.vertices {
		if !b.ContainsPoint(vertex.Position) {
			return false
		}
	}
	return true
}

// IntersectsBrush reports whether the two brushes overlap, using the
// separating axis theorem: the brushes are disjoint iff some face plane of
// either, or some cross product of one edge from each, separates their
// vertex sets.
func (b *Brush) IntersectsBrush(other *Brush) bool {
	if !b.bounds.Intersects(other.bounds) {
		return false
	}

	for _, side := range other.sides {
		if side.face == nil {
			continue
		}
		origin := side.vertices[0].Position
		direction := side.face.Boundary().Normal
		if vertexStatusFromRay(origin, direction, b.vertices) == StatusAbove {
			return false
		}
	}

	for _, side := range b.sides {
		if side.face == nil {
			continue
		}
		origin := side.vertices[0].Position
		direction := side.face.Boundary().Normal
		if vertexStatusFromRay(origin, direction, other.vertices) == StatusAbove {
			return false
		}
	}

	for _, myEdge := range b.edges {
		for _, theirEdge := range other.edges {
			myVector := myEdge.End.Position.Sub(myEdge.Start.Position)
			theirVector := theirEdge.End.Position.Sub(theirEdge.Start.Position)
			direction := myVector.Cross(theirVector)
			if direction.Len() < 1e-9 {
				continue
			}
			origin := myEdge.Start.Position

			myStatus := vertexStatusFromRay(origin, direction, b.vertices)
			if myStatus == StatusInside {
				continue
			}
			theirStatus := vertexStatusFromRay(origin, direction, other.vertices)
			if theirStatus == StatusInside {
				continue
			}
			if myStatus != theirStatus {
				return false
			}
		}
	}

	return true
}

// ContainsEntity reports whether the entity's bounding box lies entirely
// inside the brush.
func (b *Brush) ContainsEntity(entity Bounded) bool {
	bounds := entity.Bounds()
	if !b.bounds.ContainsBBox(bounds) {
		return false
	}
	for _, corner := range bounds.Corners() {
		if !b.ContainsPoint(corner) {
			return false
		}
	}
	return true
}

// IntersectsEntity reports whether the entity's bounding box overlaps the
// brush: the boxes overlap and no face plane of the brush has all corners of
// the entity's box strictly above it.
func (b *Brush) IntersectsEntity(entity Bounded) bool {
	bounds := entity.Bounds()
	if !b.bounds.Intersects(bounds) {
		return false
	}
	corners := bounds.Corners()
	for _, side := range b.sides {
		if side.face == nil {
			continue
		}
		boundary := side.face.Boundary()
		separated := true
		for _, corner := range corners {
			if boundary.PointStatus(corner, PointStatusEpsilon) != StatusAbove {
				separated = false
				break
			}
		}
		if separated {
			return false
		}
	}
	return true
}

// Hit describes the nearest crossing of a ray with a brush.
type Hit struct {
	Face     *Face
	Point    mgl64.Vec3
	Distance float64
}

// Pick returns the nearest side crossed by the ray, or false if the ray
// misses the brush.
func (b *Brush) Pick(ray Ray) (Hit, bool) {
	if math.IsNaN(b.bounds.IntersectRay(ray)) {
		return Hit{}, false
	}

	dist := math.NaN()
	var hitSide *Side
	for _, side := range b.sides {
		candidate := side.intersectRay(ray)
		if !math.IsNaN(candidate) && (math.IsNaN(dist) || candidate < dist) {
			dist = candidate
			hitSide = side
		}
	}

	if hitSide == nil {
		return Hit{}, false
	}
	return Hit{
		Face:     hitSide.face,
		Point:    ray.PointAtDistance(dist),
		Distance: dist,
	}, true
}
