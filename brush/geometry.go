package brush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexMark is the transient classification of a vertex during a single
// algorithmic pass.
type VertexMark int

const (
	VertexDrop VertexMark = iota
	VertexKeep
	VertexUndecided
	VertexNew
	VertexUnknown
)

// EdgeMark is the transient classification of an edge during a single
// algorithmic pass.
type EdgeMark int

const (
	EdgeDrop EdgeMark = iota
	EdgeKeep
	EdgeSplit
	EdgeUndecided
	EdgeNew
	EdgeUnknown
)

// SideMark is the transient classification of a side during a single
// algorithmic pass.
type SideMark int

const (
	SideKeep SideMark = iota
	SideDrop
	SideSplit
	SideNew
	SideUnknown
)

// Vertex is a point on the brush boundary.
type Vertex struct {
	Position mgl64.Vec3
	mark     VertexMark
}

func newVertex(position mgl64.Vec3) *Vertex {
	return &Vertex{Position: position, mark: VertexNew}
}

// Edge is an undirected segment between two vertices with one oriented
// incidence per side: seen from the left side it runs end to start, seen
// from the right side it runs start to end.
type Edge struct {
	Start *Vertex
	End   *Vertex
	Left  *Side
	Right *Side
	mark  EdgeMark
}

func newEdge(start, end *Vertex) *Edge {
	return &Edge{Start: start, End: end, mark: EdgeNew}
}

// StartVertex returns the edge's start vertex as seen from side, or nil if
// the edge is not incident to it.
func (e *Edge) StartVertex(side *Side) *Vertex {
	if e.Left == side {
		return e.End
	}
	if e.Right == side {
		return e.Start
	}
	return nil
}

// EndVertex returns the edge's end vertex as seen from side, or nil if the
// edge is not incident to it.
func (e *Edge) EndVertex(side *Side) *Vertex {
	if e.Left == side {
		return e.Start
	}
	if e.Right == side {
		return e.End
	}
	return nil
}

// Vector returns the direction from end to start.
func (e *Edge) Vector() mgl64.Vec3 {
	return e.Start.Position.Sub(e.End.Position)
}

// VectorFrom returns the edge direction as seen from side.
func (e *Edge) VectorFrom(side *Side) mgl64.Vec3 {
	return e.EndVertex(side).Position.Sub(e.StartVertex(side).Position)
}

// Center returns the edge midpoint.
func (e *Edge) Center() mgl64.Vec3 {
	return e.Start.Position.Add(e.End.Position).Mul(0.5)
}

// IncidentWith reports whether the two edges share an endpoint.
func (e *Edge) IncidentWith(other *Edge) bool {
	return e.Start == other.Start || e.Start == other.End ||
		e.End == other.Start || e.End == other.End
}

// Connects reports whether the edge runs between the two vertices.
func (e *Edge) Connects(v1, v2 *Vertex) bool {
	return (e.Start == v1 && e.End == v2) || (e.Start == v2 && e.End == v1)
}

func (e *Edge) flip() {
	e.Left, e.Right = e.Right, e.Left
	e.Start, e.End = e.End, e.Start
}

// updateMark derives the edge's mark from its endpoints' marks.
func (e *Edge) updateMark() {
	var keep, drop, undecided int

	switch e.Start.mark {
	case VertexKeep:
		keep++
	case VertexDrop:
		drop++
	case VertexUndecided:
		undecided++
	}
	switch e.End.mark {
	case VertexKeep:
		keep++
	case VertexDrop:
		drop++
	case VertexUndecided:
		undecided++
	}

	switch {
	case keep == 1 && drop == 1:
		e.mark = EdgeSplit
	case keep > 0:
		e.mark = EdgeKeep
	case drop > 0:
		e.mark = EdgeDrop
	default:
		e.mark = EdgeUndecided
	}
}

// split computes the intersection of the edge with plane and replaces the
// dropped endpoint with a new vertex at that point. Along axes where the
// plane is axis-aligned the intersection is clamped onto the plane exactly,
// for determinism.
func (e *Edge) split(plane Plane) *Vertex {
	startDist := plane.SignedDistance(e.Start.Position)
	endDist := plane.SignedDistance(e.End.Position)
	dot := startDist / (startDist - endDist)

	v := newVertex(mgl64.Vec3{})
	for i := 0; i < 3; i++ {
		switch {
		case plane.Normal[i] == 1:
			v.Position[i] = plane.Distance
		case plane.Normal[i] == -1:
			v.Position[i] = -plane.Distance
		default:
			startPos := e.Start.Position[i]
			endPos := e.End.Position[i]
			v.Position[i] = startPos + dot*(endPos-startPos)
		}
	}
	v.Position = corrected(v.Position, CorrectEpsilon)

	if e.Start.mark == VertexDrop {
		e.Start = v
	} else {
		e.End = v
	}
	return v
}

// Side is a convex polygon on the brush boundary: an ordered vertex ring and
// the parallel edge ring such that vertices[i] is the start vertex of
// edges[i] as seen from this side, and edges[i] connects vertices[i] to
// vertices[i+1].
type Side struct {
	vertices []*Vertex
	edges    []*Edge
	face     *Face
	mark     SideMark
}

// newSideFromEdges builds a side from edges in ring order. invert[i] tells
// whether the side is the left side of edges[i].
func newSideFromEdges(edges []*Edge, invert []bool) *Side {
	s := &Side{mark: SideNew}
	for i, edge := range edges {
		s.edges = append(s.edges, edge)
		if invert[i] {
			edge.Left = s
			s.vertices = append(s.vertices, edge.End)
		} else {
			edge.Right = s
			s.vertices = append(s.vertices, edge.Start)
		}
	}
	return s
}

// newSideForFace builds the side realizing face from newly created edges in
// ring order, becoming the left side of each.
func newSideForFace(face *Face, edges []*Edge) *Side {
	s := &Side{
		face:     face,
		mark:     SideNew,
		vertices: make([]*Vertex, 0, len(edges)),
		edges:    make([]*Edge, 0, len(edges)),
	}
	for _, edge := range edges {
		edge.Left = s
		s.edges = append(s.edges, edge)
		s.vertices = append(s.vertices, edge.StartVertex(s))
	}
	face.setSide(s)
	return s
}

// Vertices returns the side's vertex ring.
func (s *Side) Vertices() []*Vertex {
	return s.vertices
}

// Edges returns the side's edge ring.
func (s *Side) Edges() []*Edge {
	return s.edges
}

// Face returns the face realized by this side, or nil for seed sides.
func (s *Side) Face() *Face {
	return s.face
}

// HasVertices reports whether the side's ring consists of exactly the given
// positions in ring order, at any rotation.
func (s *Side) HasVertices(positions []mgl64.Vec3, epsilon float64) bool {
	count := len(s.vertices)
	if len(positions) != count {
		return false
	}
	for offset := 0; offset < count; offset++ {
		match := true
		for i := 0; i < count && match; i++ {
			match = equalsEps(s.vertices[succN(i, count, offset)].Position, positions[i], epsilon)
		}
		if match {
			return true
		}
	}
	return false
}

// intersectRay returns the ray parameter at which the ray enters the side
// through its polygon, or NaN. The side polygon is projected onto the
// coordinate plane of its normal's dominant axis and tested with a 2-D
// ray cast.
func (s *Side) intersectRay(ray Ray) float64 {
	if s.face == nil {
		return math.NaN()
	}

	boundary := s.face.Boundary()
	if boundary.Normal.Dot(ray.Direction) >= 0 {
		return math.NaN()
	}

	dist := boundary.IntersectRay(ray)
	if math.IsNaN(dist) {
		return dist
	}

	hit := ray.PointAtDistance(dist)
	projectedHit := swizzle(boundary.Normal, hit)

	v0 := swizzle(boundary.Normal, s.vertices[len(s.vertices)-1].Position).Sub(projectedHit)

	// 2-D even-odd test against the positive X axis.
	crossings := 0
	for _, vertex := range s.vertices {
		v1 := swizzle(boundary.Normal, vertex.Position).Sub(projectedHit)

		if (math.Abs(v0.X()) < 1e-9 && math.Abs(v0.Y()) < 1e-9) ||
			(math.Abs(v1.X()) < 1e-9 && math.Abs(v1.Y()) < 1e-9) {
			// the hit coincides with a polygon vertex
			crossings = 1
			break
		}

		if (v0.Y() > 0 && v1.Y() <= 0) || (v0.Y() <= 0 && v1.Y() > 0) {
			if v0.X() > 0 && v1.X() > 0 {
				crossings++
			} else if (v0.X() > 0 && v1.X() <= 0) || (v0.X() <= 0 && v1.X() > 0) {
				x := -v0.Y()*(v1.X()-v0.X())/(v1.Y()-v0.Y()) + v0.X()
				if x >= 0 {
					crossings++
				}
			}
		}

		v0 = v1
	}

	if crossings%2 == 0 {
		return math.NaN()
	}
	return dist
}

// replaceEdges removes the ring segment strictly between index1 and index2
// and splices edge in its place. The edge must already be oriented with
// respect to this side.
func (s *Side) replaceEdges(index1, index2 int, edge *Edge) {
	if index2 > index1 {
		vertices := make([]*Vertex, 0, len(s.vertices))
		vertices = append(vertices, s.vertices[:index1+1]...)
		vertices = append(vertices, edge.StartVertex(s), edge.EndVertex(s))
		vertices = append(vertices, s.vertices[index2+1:]...)
		s.vertices = vertices

		edges := make([]*Edge, 0, len(s.edges))
		edges = append(edges, s.edges[:index1+1]...)
		edges = append(edges, edge)
		edges = append(edges, s.edges[index2:]...)
		s.edges = edges
	} else {
		vertices := make([]*Vertex, 0, len(s.vertices))
		vertices = append(vertices, edge.EndVertex(s))
		vertices = append(vertices, s.vertices[index2+1:index1+1]...)
		vertices = append(vertices, edge.StartVertex(s))
		s.vertices = vertices

		edges := make([]*Edge, 0, len(s.edges))
		edges = append(edges, s.edges[index2:index1+1]...)
		edges = append(edges, edge)
		s.edges = edges
	}
}

// split classifies the side from its edge marks. A kept side returns its
// undecided boundary edge if it has one. A split side has its dropped
// segment removed and returns the new edge closing the ring, with this side
// on its right. Returns ErrInvalidSide if no consistent split exists.
func (s *Side) split() (*Edge, error) {
	var keep, drop, splitCount, undecided int
	var undecidedEdge *Edge

	splitIndex1 := -1
	splitIndex2 := -1

	lastMark := s.edges[len(s.edges)-1].mark
	for i, edge := range s.edges {
		currentMark := edge.mark
		switch currentMark {
		case EdgeSplit:
			if edge.StartVertex(s).mark == VertexKeep {
				splitIndex1 = i
			} else {
				splitIndex2 = i
			}
			splitCount++
		case EdgeUndecided:
			undecided++
			undecidedEdge = edge
		case EdgeKeep:
			if lastMark == EdgeDrop {
				splitIndex2 = i
			}
			keep++
		case EdgeDrop:
			if lastMark == EdgeKeep {
				if i > 0 {
					splitIndex1 = i - 1
				} else {
					splitIndex1 = len(s.edges) - 1
				}
			}
			drop++
		}
		lastMark = currentMark
	}

	if keep == len(s.edges) {
		s.mark = SideKeep
		return nil, nil
	}
	if undecided == 1 && keep == len(s.edges)-1 {
		s.mark = SideKeep
		return undecidedEdge, nil
	}
	if drop+undecided == len(s.edges) {
		s.mark = SideDrop
		return nil, nil
	}

	if splitIndex1 < 0 || splitIndex2 < 0 {
		return nil, geometryErr("split side", ErrInvalidSide)
	}

	s.mark = SideSplit

	edge := newEdge(s.edges[splitIndex1].EndVertex(s), s.edges[splitIndex2].StartVertex(s))
	edge.Right = s

	s.replaceEdges(splitIndex1, splitIndex2, edge)
	return edge, nil
}

// chop cuts the triangle at vertex index off the side, creating one new edge
// between the two neighbouring vertices and one new triangular side carrying
// a copy of the side's face.
func (s *Side) chop(index int) (*Side, *Edge) {
	nextVertex := s.vertices[succ(index, len(s.vertices))]
	prevVertex := s.vertices[pred(index, len(s.vertices))]

	edge := s.edges[index]
	prevEdge := s.edges[pred(index, len(s.edges))]

	closing := newEdge(prevVertex, nextVertex)
	closing.Right = s

	sideEdges := []*Edge{prevEdge, edge, closing}
	invert := []bool{prevEdge.Left == s, edge.Left == s, true}

	newSide := newSideFromEdges(sideEdges, invert)
	newSide.face = s.face.Copy()
	newSide.face.setSide(newSide)

	s.replaceEdges(predN(index, len(s.edges), 2), succ(index, len(s.edges)), closing)
	return newSide, closing
}

// shift rotates the side's rings so that the element at offset becomes the
// first.
func (s *Side) shift(offset int) {
	count := len(s.edges)
	if offset%count == 0 {
		return
	}

	edges := make([]*Edge, 0, count)
	vertices := make([]*Vertex, 0, count)
	for i := 0; i < count; i++ {
		index := succN(i, count, offset)
		edges = append(edges, s.edges[index])
		vertices = append(vertices, s.vertices[index])
	}
	s.edges = edges
	s.vertices = vertices
}

// isDegenerate reports whether any two consecutive ring edges turn the wrong
// way with respect to the face normal.
func (s *Side) isDegenerate() bool {
	for i, edge := range s.edges {
		next := s.edges[succ(i, len(s.edges))]

		edgeVector := edge.VectorFrom(s)
		nextVector := next.VectorFrom(s)
		cross := nextVector.Cross(edgeVector)
		if cross.Dot(s.face.Boundary().Normal) <= PointStatusEpsilon {
			return true
		}
	}
	return false
}

// collinearTriangle returns the index of the longest edge if the side is a
// triangle whose vertices are colinear, or the edge count otherwise.
func (s *Side) collinearTriangle() int {
	if len(s.edges) > 3 {
		return len(s.edges)
	}

	v1 := s.edges[0].Vector()
	v2 := s.edges[1].Vector()
	v3 := s.edges[2].Vector()

	if !parallel(v1, v2, ColinearEpsilon) ||
		!parallel(v1, v3, ColinearEpsilon) ||
		!parallel(v2, v3, ColinearEpsilon) {
		return len(s.edges)
	}

	l1 := v1.LenSqr()
	l2 := v2.LenSqr()
	l3 := v3.LenSqr()

	if l1 > l2 {
		if l1 > l3 {
			return 0
		}
		return 2
	}
	if l2 > l3 {
		return 1
	}
	return 2
}

// incidentSides collects the sides around vertex in clockwise order,
// starting from an arbitrary incident edge.
func incidentSides(vertex *Vertex, edges []*Edge) []*Side {
	var edge *Edge
	for _, candidate := range edges {
		if candidate.Start == vertex || candidate.End == vertex {
			edge = candidate
			break
		}
	}
	if edge == nil {
		return nil
	}

	var result []*Side
	side := edge.Right
	if edge.Start != vertex {
		side = edge.Left
	}
	for {
		result = append(result, side)
		i := findEdgeIndex(side.edges, edge)
		edge = side.edges[pred(i, len(side.edges))]
		if edge.Start == vertex {
			side = edge.Right
		} else {
			side = edge.Left
		}
		if side == result[0] {
			break
		}
	}
	return result
}

func findEdgeIndex(edges []*Edge, edge *Edge) int {
	for i, candidate := range edges {
		if candidate == edge {
			return i
		}
	}
	return len(edges)
}

func findVertexIndex(vertices []*Vertex, vertex *Vertex) int {
	for i, candidate := range vertices {
		if candidate == vertex {
			return i
		}
	}
	return len(vertices)
}

// findVertex returns the vertex at position within epsilon, or nil.
func findVertex(vertices []*Vertex, position mgl64.Vec3, epsilon float64) *Vertex {
	for _, vertex := range vertices {
		if equalsEps(vertex.Position, position, epsilon) {
			return vertex
		}
	}
	return nil
}

// findEdge returns the edge spanning the two positions within epsilon, or
// nil.
func findEdge(edges []*Edge, position1, position2 mgl64.Vec3, epsilon float64) *Edge {
	for _, edge := range edges {
		if (equalsEps(edge.Start.Position, position1, epsilon) && equalsEps(edge.End.Position, position2, epsilon)) ||
			(equalsEps(edge.Start.Position, position2, epsilon) && equalsEps(edge.End.Position, position1, epsilon)) {
			return edge
		}
	}
	return nil
}

// findSide returns the side whose ring consists of the given positions, or
// nil.
func findSide(sides []*Side, positions []mgl64.Vec3, epsilon float64) *Side {
	for _, side := range sides {
		if side.HasVertices(positions, epsilon) {
			return side
		}
	}
	return nil
}

// centerOfVertices returns the centroid of the vertex positions.
func centerOfVertices(vertices []*Vertex) mgl64.Vec3 {
	center := vertices[0].Position
	for _, vertex := range vertices[1:] {
		center = center.Add(vertex.Position)
	}
	return center.Mul(1 / float64(len(vertices)))
}

// boundsOfVertices returns the axis-aligned bounding box of the vertex
// positions.
func boundsOfVertices(vertices []*Vertex) BBox {
	bounds := BBox{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, vertex := range vertices[1:] {
		bounds = bounds.MergePoint(vertex.Position)
	}
	return bounds
}

// vertexStatusFromRay classifies the vertex set against the plane through
// origin with normal direction: StatusAbove or StatusBelow if all vertices
// are on one side, StatusInside if they straddle it.
func vertexStatusFromRay(origin, direction mgl64.Vec3, vertices []*Vertex) PointStatus {
	ray := Ray{Origin: origin, Direction: direction}
	var above, below int
	for _, vertex := range vertices {
		switch ray.PointStatus(vertex.Position) {
		case StatusAbove:
			above++
		case StatusBelow:
			below++
		}
		if above > 0 && below > 0 {
			return StatusInside
		}
	}
	if above > 0 {
		return StatusAbove
	}
	return StatusBelow
}
