package brush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// moveEpsilon is the minimum plane distance at which a constraint plane is
// considered to actually block a vertex move.
const moveEpsilon = 0.001

// MoveResult describes the outcome of a single-vertex move.
type MoveResult int

const (
	// VertexUnchanged means the move would have produced an invalid brush
	// and was not applied.
	VertexUnchanged MoveResult = iota
	// VertexMoved means the vertex reached its target position.
	VertexMoved
	// VertexDeleted means the vertex was merged away into a neighbour.
	VertexDeleted
)

// MoveVertexResult reports the outcome of MoveVertex. Position is only
// meaningful when Type is VertexMoved.
type MoveVertexResult struct {
	Type     MoveResult
	Position mgl64.Vec3
}

// EdgeInfo identifies an edge by its endpoint positions.
type EdgeInfo struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// Translated returns the edge info shifted by delta.
func (i EdgeInfo) Translated(delta mgl64.Vec3) EdgeInfo {
	return EdgeInfo{Start: i.Start.Add(delta), End: i.End.Add(delta)}
}

// FaceInfo identifies a side by its vertex ring positions.
type FaceInfo struct {
	Vertices []mgl64.Vec3
}

// Translated returns the face info shifted by delta.
func (i FaceInfo) Translated(delta mgl64.Vec3) FaceInfo {
	vertices := make([]mgl64.Vec3, len(i.Vertices))
	for j, v := range i.Vertices {
		vertices[j] = v.Add(delta)
	}
	return FaceInfo{Vertices: vertices}
}

type moveVertexOutcome struct {
	result MoveResult
	vertex *Vertex
}

// moveVertex moves vertex from start towards end in discrete steps, keeping
// the brush convex between steps. Incident sides are triangulated first;
// each step advances to the nearest fraction of the path at which a
// constraint plane would be crossed. A vertex landing on an adjacent vertex
// is merged when mergeWithAdjacent is true, otherwise the step is rolled
// back.
func (b *Brush) moveVertex(vertex *Vertex, mergeWithAdjacent bool, start, end mgl64.Vec3, manager *faceManager) moveVertexOutcome {
	if start == end {
		return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
	}

	lastFrac := 0.0
	for vertex.Position != end {
		lastPosition := vertex.Position

		// Turn every incident side into triangles so that each step only has
		// to reason about triangle fans around the vertex.
		affected := incidentSides(vertex, b.edges)
		for _, side := range affected {
			if len(side.vertices) <= 3 {
				continue
			}
			boundary := side.face.Boundary()
			dot := end.Dot(boundary.Normal) - boundary.Distance

			if dot < -moveEpsilon {
				// moving below the boundary: chop off the triangle at the
				// vertex
				vertexIndex := findVertexIndex(side.vertices, vertex)
				newSide, newEdge := side.chop(vertexIndex)
				b.sides = append(b.sides, newSide)
				b.edges = append(b.edges, newEdge)
				manager.addFace(side.face, newSide.face)
			} else {
				// moving above or within the boundary: fan-triangulate from
				// the vertex
				for i := 1; i < len(side.vertices)-1; i++ {
					vertexIndex := findVertexIndex(side.vertices, vertex)
					newSide, newEdge := side.chop(succ(vertexIndex, len(side.vertices)))
					b.sides = append(b.sides, newSide)
					b.edges = append(b.edges, newEdge)
					manager.addFace(side.face, newSide.face)
				}
			}
		}
		affected = incidentSides(vertex, b.edges)

		// For each incident side and its clockwise successor, two planes
		// bound how far the vertex may move before the brush goes
		// non-convex: the plane spanned by the two triangles' far corners,
		// and the boundary of the side's non-incident neighbour.
		minFrac := 1.0
		for i, side := range affected {
			next := affected[succ(i, len(affected))]

			sideIndex0 := findVertexIndex(side.vertices, vertex)
			nextIndex0 := findVertexIndex(next.vertices, vertex)
			sideIndex1 := succ(sideIndex0, len(side.vertices))
			sideIndex2 := succN(sideIndex0, len(side.vertices), 2)
			nextIndex1 := succN(nextIndex0, len(next.vertices), 2)

			p1 := side.vertices[sideIndex1].Position
			p2 := side.vertices[sideIndex2].Position
			p3 := next.vertices[nextIndex1].Position

			plane, ok := PlaneFromPoints(p1, p2, p3)
			if !ok {
				// colinear corner points leave the move distance undefined
				b.finishMoveStep(manager)
				return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
			}
			minFrac = clipFraction(minFrac, lastFrac, plane, start, end)

			neighbourEdge := side.edges[sideIndex1]
			neighbourSide := neighbourEdge.Right
			if neighbourEdge.Left != side {
				neighbourSide = neighbourEdge.Left
			}
			// the neighbour's face plane may be stale at this point, so
			// derive the plane from its current vertices
			plane, ok = PlaneFromPoints(
				neighbourSide.vertices[0].Position,
				neighbourSide.vertices[1].Position,
				neighbourSide.vertices[2].Position,
			)
			if !ok {
				b.finishMoveStep(manager)
				return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
			}
			minFrac = clipFraction(minFrac, lastFrac, plane, start, end)
		}

		if minFrac <= lastFrac {
			b.finishMoveStep(manager)
			return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
		}
		lastFrac = minFrac

		if lastFrac == 1 {
			vertex.Position = end
		} else {
			vertex.Position = start.Add(end.Sub(start).Mul(lastFrac))
		}

		// If the vertex landed on another vertex, merge if that vertex is
		// adjacent and merging is allowed, otherwise roll the step back.
		for _, candidate := range b.vertices {
			if candidate == vertex || !equalsEps(vertex.Position, candidate.Position, CorrectEpsilon) {
				continue
			}

			var connecting *Edge
			for _, edge := range b.edges {
				if edge.Connects(vertex, candidate) {
					connecting = edge
					break
				}
			}

			if connecting == nil || !mergeWithAdjacent {
				vertex.Position = lastPosition
				b.finishMoveStep(manager)
				return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
			}

			b.mergeVertices(vertex, candidate, connecting, manager)
			b.finishMoveStep(manager)
			b.bounds = boundsOfVertices(b.vertices)
			b.center = centerOfVertices(b.vertices)
			return moveVertexOutcome{result: VertexDeleted, vertex: vertex}
		}

		// abort if any incident side collapsed to a colinear triangle
		affected = incidentSides(vertex, b.edges)
		collapsed := false
		for _, side := range affected {
			if side.collinearTriangle() < len(side.edges) {
				collapsed = true
				break
			}
		}
		if collapsed {
			vertex.Position = lastPosition
			b.finishMoveStep(manager)
			return moveVertexOutcome{result: VertexUnchanged, vertex: vertex}
		}

		b.finishMoveStep(manager)
		b.bounds = boundsOfVertices(b.vertices)
		b.center = centerOfVertices(b.vertices)

		if findVertexIndex(b.vertices, vertex) == len(b.vertices) {
			return moveVertexOutcome{result: VertexDeleted}
		}
	}

	return moveVertexOutcome{result: VertexMoved, vertex: vertex}
}

// clipFraction narrows minFrac to the fraction of the start..end path at
// which plane is crossed, if that crossing lies between lastFrac and
// minFrac.
func clipFraction(minFrac, lastFrac float64, plane Plane, start, end mgl64.Vec3) float64 {
	startDot := plane.SignedDistance(start)
	endDot := plane.SignedDistance(end)

	if math.Abs(startDot) < moveEpsilon && math.Abs(endDot) < moveEpsilon {
		return minFrac
	}
	if (startDot > 0) == (endDot > 0) {
		return minFrac
	}

	frac := 1.0
	if math.Abs(startDot) >= moveEpsilon {
		frac = math.Abs(startDot) / (math.Abs(startDot) + math.Abs(endDot))
	}
	if frac > lastFrac && frac < minFrac {
		return frac
	}
	return minFrac
}

// finishMoveStep runs the cleanup pass at the end of every mover step.
func (b *Brush) finishMoveStep(manager *faceManager) {
	b.mergeSides(manager)
	b.mergeEdges()
}

// mergeVertices collapses the edge connecting vertex and candidate: every
// other edge and side of candidate is repointed at vertex, the degenerate
// triangles on both sides of the edge are deleted, and candidate is removed.
func (b *Brush) mergeVertices(vertex, candidate *Vertex, connecting *Edge, manager *faceManager) {
	for _, edge := range b.edges {
		if edge == connecting || (edge.Start != candidate && edge.End != candidate) {
			continue
		}
		if edge.Start == candidate {
			edge.Start = vertex
		} else {
			edge.End = vertex
		}
		replaceVertex(edge.Left.vertices, candidate, vertex)
		replaceVertex(edge.Right.vertices, candidate, vertex)
	}

	b.deleteDegenerateTriangle(connecting.Left, connecting, manager)
	b.deleteDegenerateTriangle(connecting.Right, connecting, manager)
	b.removeEdge(connecting)
	b.removeVertex(candidate)
}

func replaceVertex(vertices []*Vertex, from, to *Vertex) {
	for i, vertex := range vertices {
		if vertex == from {
			vertices[i] = to
		}
	}
}

// splitEdgeAt replaces edge with two edges joined at a new vertex at its
// midpoint, updating both incident side rings.
func (b *Brush) splitEdgeAt(edge *Edge) *Vertex {
	edge.Left.shift(findEdgeIndex(edge.Left.edges, edge) + 1)
	edge.Right.shift(findEdgeIndex(edge.Right.edges, edge) + 1)

	vertex := newVertex(edge.Center())
	vertex.mark = VertexUnknown
	b.vertices = append(b.vertices, vertex)
	edge.Left.vertices = append(edge.Left.vertices, vertex)
	edge.Right.vertices = append(edge.Right.vertices, vertex)

	edge1 := newEdge(edge.Start, vertex)
	edge1.Left = edge.Left
	edge1.Right = edge.Right
	edge1.mark = EdgeUnknown
	edge2 := newEdge(vertex, edge.End)
	edge2.Left = edge.Left
	edge2.Right = edge.Right
	edge2.mark = EdgeUnknown
	b.edges = append(b.edges, edge1, edge2)

	left := edge.Left
	right := edge.Right
	left.edges = left.edges[:len(left.edges)-1]
	right.edges = right.edges[:len(right.edges)-1]
	left.edges = append(left.edges, edge2, edge1)
	right.edges = append(right.edges, edge1, edge2)

	b.removeEdge(edge)
	return vertex
}

// splitSideAt triangulates side into a fan around a new vertex at its
// centroid. Each fan triangle carries a copy of the side's face; the side
// itself is released.
func (b *Brush) splitSideAt(side *Side, manager *faceManager) *Vertex {
	vertex := newVertex(centerOfVertices(side.vertices))
	vertex.mark = VertexUnknown
	b.vertices = append(b.vertices, vertex)

	firstEdge := newEdge(vertex, side.edges[0].StartVertex(side))
	firstEdge.mark = EdgeUnknown
	b.edges = append(b.edges, firstEdge)

	lastEdge := firstEdge
	for i, sideEdge := range side.edges {
		var nextEdge *Edge
		if i == len(side.edges)-1 {
			nextEdge = firstEdge
		} else {
			nextEdge = newEdge(vertex, sideEdge.EndVertex(side))
			nextEdge.mark = EdgeUnknown
			b.edges = append(b.edges, nextEdge)
		}

		newSide := &Side{mark: SideUnknown}
		newSide.vertices = append(newSide.vertices, vertex)
		newSide.edges = append(newSide.edges, lastEdge)
		lastEdge.Right = newSide

		newSide.vertices = append(newSide.vertices, lastEdge.End)
		newSide.edges = append(newSide.edges, sideEdge)
		if sideEdge.Left == side {
			sideEdge.Left = newSide
		} else {
			sideEdge.Right = newSide
		}

		newSide.vertices = append(newSide.vertices, nextEdge.End)
		newSide.edges = append(newSide.edges, nextEdge)
		nextEdge.Left = newSide

		newSide.face = side.face.Copy()
		newSide.face.setSide(newSide)
		b.sides = append(b.sides, newSide)
		manager.addFace(side.face, newSide.face)

		lastEdge = nextEdge
	}

	manager.dropFace(side)
	b.removeSide(side)
	return vertex
}

// CanMoveVertex reports whether MoveVertex with the same arguments would
// succeed without producing an invalid brush. The brush is not modified.
func (b *Brush) CanMoveVertex(worldBounds BBox, position, delta mgl64.Vec3, mergeWithAdjacent bool) bool {
	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	canMove := false
	if vertex := findVertex(test.vertices, position, CorrectEpsilon); vertex != nil {
		outcome := test.moveVertex(vertex, mergeWithAdjacent, vertex.Position, vertex.Position.Add(delta), manager)
		canMove = outcome.result != VertexUnchanged
	}

	canMove = canMove && len(test.sides) >= 3
	canMove = canMove && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canMove
}

// MoveVertex moves the vertex at position by delta, merging it into an
// adjacent vertex it lands on when mergeWithAdjacent is true. Returns the
// outcome together with the faces created and dropped by the operation.
// The brush must be closed: the movers consult face planes on every side.
func (b *Brush) MoveVertex(worldBounds BBox, position, delta mgl64.Vec3, mergeWithAdjacent bool) (MoveVertexResult, []*Face, []*Face) {
	manager := newFaceManager()

	vertex := findVertex(b.vertices, position, CorrectEpsilon)
	if vertex == nil {
		return MoveVertexResult{Type: VertexUnchanged}, nil, nil
	}

	outcome := b.moveVertex(vertex, mergeWithAdjacent, vertex.Position, vertex.Position.Add(delta), manager)
	b.updateFacePoints(manager)
	newFaces, droppedFaces := manager.result()

	result := MoveVertexResult{Type: outcome.result}
	if outcome.result == VertexMoved {
		result.Position = outcome.vertex.Position
	}
	return result, newFaces, droppedFaces
}

// CanMoveVertices reports whether MoveVertices with the same arguments
// would move every vertex and leave a valid brush inside worldBounds. The
// brush is not modified.
func (b *Brush) CanMoveVertices(worldBounds BBox, positions []mgl64.Vec3, delta mgl64.Vec3) bool {
	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	sorted := append([]mgl64.Vec3(nil), positions...)
	sortByDot(sorted, delta)

	canMove := true
	for _, position := range sorted {
		vertex := findVertex(test.vertices, position, CorrectEpsilon)
		if vertex == nil {
			canMove = false
			break
		}
		outcome := test.moveVertex(vertex, true, vertex.Position, vertex.Position.Add(delta), manager)
		if outcome.result == VertexUnchanged {
			canMove = false
			break
		}
	}

	canMove = canMove && len(test.sides) >= 3
	canMove = canMove && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canMove
}

// MoveVertices moves the vertices at the given positions by delta, merging
// vertices that land on neighbours. Returns the new positions of the moved
// vertices together with the faces created and dropped. Callers must check
// CanMoveVertices first.
func (b *Brush) MoveVertices(worldBounds BBox, positions []mgl64.Vec3, delta mgl64.Vec3) ([]mgl64.Vec3, []*Face, []*Face) {
	manager := newFaceManager()

	sorted := append([]mgl64.Vec3(nil), positions...)
	sortByDot(sorted, delta)

	var moved []*Vertex
	for _, position := range sorted {
		vertex := findVertex(b.vertices, position, CorrectEpsilon)
		if vertex == nil {
			continue
		}
		outcome := b.moveVertex(vertex, true, vertex.Position, vertex.Position.Add(delta), manager)
		if outcome.result == VertexMoved {
			moved = append(moved, outcome.vertex)
		}
		b.updateFacePoints(manager)
	}

	positionsOut := make([]mgl64.Vec3, len(moved))
	for i, vertex := range moved {
		positionsOut[i] = vertex.Position
	}

	newFaces, droppedFaces := manager.result()
	return positionsOut, newFaces, droppedFaces
}

// CanMoveEdges reports whether MoveEdges with the same arguments would move
// every edge and leave a valid brush inside worldBounds. The brush is not
// modified.
func (b *Brush) CanMoveEdges(worldBounds BBox, edges []EdgeInfo, delta mgl64.Vec3) bool {
	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	sorted := make([]mgl64.Vec3, 0, 2*len(edges))
	for _, info := range edges {
		sorted = append(sorted, info.Start, info.End)
	}
	sortByDot(sorted, delta)

	canMove := true
	for _, position := range sorted {
		vertex := findVertex(test.vertices, position, CorrectEpsilon)
		if vertex == nil {
			canMove = false
			break
		}
		outcome := test.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)
		if outcome.result != VertexMoved {
			canMove = false
			break
		}
	}

	for _, info := range edges {
		if !canMove {
			break
		}
		translated := info.Translated(delta)
		canMove = findEdge(test.edges, translated.Start, translated.End, CorrectEpsilon) != nil
	}

	canMove = canMove && len(test.sides) >= 3
	canMove = canMove && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canMove
}

// MoveEdges moves the edges identified by the given endpoint pairs by delta.
// Merging is forbidden: every edge must still exist at its translated
// position afterwards. Callers must check CanMoveEdges first.
func (b *Brush) MoveEdges(worldBounds BBox, edges []EdgeInfo, delta mgl64.Vec3) ([]EdgeInfo, []*Face, []*Face) {
	manager := newFaceManager()

	sorted := make([]mgl64.Vec3, 0, 2*len(edges))
	for _, info := range edges {
		sorted = append(sorted, info.Start, info.End)
	}
	sortByDot(sorted, delta)

	for _, position := range sorted {
		vertex := findVertex(b.vertices, position, CorrectEpsilon)
		if vertex == nil {
			continue
		}
		b.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)
		b.updateFacePoints(manager)
	}

	result := make([]EdgeInfo, len(edges))
	for i, info := range edges {
		result[i] = info.Translated(delta)
	}

	newFaces, droppedFaces := manager.result()
	return result, newFaces, droppedFaces
}

// CanMoveFaces reports whether MoveFaces with the same arguments would move
// every side and leave a valid brush inside worldBounds. The brush is not
// modified.
func (b *Brush) CanMoveFaces(worldBounds BBox, faces []FaceInfo, delta mgl64.Vec3) bool {
	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	var sorted []mgl64.Vec3
	for _, info := range faces {
		sorted = append(sorted, info.Vertices...)
	}
	sortByDot(sorted, delta)

	canMove := true
	for _, position := range sorted {
		vertex := findVertex(test.vertices, position, CorrectEpsilon)
		if vertex == nil {
			canMove = false
			break
		}
		outcome := test.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)
		if outcome.result != VertexMoved {
			canMove = false
			break
		}
	}

	for _, info := range faces {
		if !canMove {
			break
		}
		translated := info.Translated(delta)
		canMove = findSide(test.sides, translated.Vertices, CorrectEpsilon) != nil
	}

	canMove = canMove && len(test.sides) >= 3
	canMove = canMove && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canMove
}

// MoveFaces moves the sides identified by the given vertex rings by delta.
// Merging is forbidden; each translated ring must still identify a side
// afterwards. Callers must check CanMoveFaces first.
func (b *Brush) MoveFaces(worldBounds BBox, faces []FaceInfo, delta mgl64.Vec3) ([]FaceInfo, []*Face, []*Face) {
	manager := newFaceManager()

	var sorted []mgl64.Vec3
	for _, info := range faces {
		sorted = append(sorted, info.Vertices...)
	}
	sortByDot(sorted, delta)

	for _, position := range sorted {
		vertex := findVertex(b.vertices, position, CorrectEpsilon)
		if vertex == nil {
			continue
		}
		b.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)
	}

	b.updateFacePoints(manager)

	result := make([]FaceInfo, len(faces))
	for i, info := range faces {
		result[i] = info.Translated(delta)
	}

	newFaces, droppedFaces := manager.result()
	return result, newFaces, droppedFaces
}

// CanSplitEdge reports whether SplitEdge with the same arguments would
// succeed. The brush is not modified.
func (b *Brush) CanSplitEdge(worldBounds BBox, edge EdgeInfo, delta mgl64.Vec3) bool {
	found := findEdge(b.edges, edge.Start, edge.End, CorrectEpsilon)
	if found == nil {
		return false
	}

	// a drag against either incident face would indent the brush; allow a
	// bit of leeway so edges on the edge of legality can still be split
	leftNormal := found.Left.face.Boundary().Normal
	rightNormal := found.Right.face.Boundary().Normal
	if delta.Dot(leftNormal) < -PointStatusEpsilon || delta.Dot(rightNormal) < -PointStatusEpsilon {
		return false
	}

	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	testEdge := findEdge(test.edges, edge.Start, edge.End, CorrectEpsilon)
	vertex := test.splitEdgeAt(testEdge)
	outcome := test.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)

	canSplit := outcome.result == VertexMoved
	canSplit = canSplit && len(test.sides) >= 3
	canSplit = canSplit && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canSplit
}

// SplitEdge introduces a new vertex at the midpoint of the identified edge
// and moves it by delta. Returns the final position of the new vertex.
// Callers must check CanSplitEdge first.
func (b *Brush) SplitEdge(worldBounds BBox, edge EdgeInfo, delta mgl64.Vec3) (mgl64.Vec3, []*Face, []*Face) {
	manager := newFaceManager()

	found := findEdge(b.edges, edge.Start, edge.End, CorrectEpsilon)
	vertex := b.splitEdgeAt(found)
	outcome := b.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)

	b.updateFacePoints(manager)
	newFaces, droppedFaces := manager.result()
	return outcome.vertex.Position, newFaces, droppedFaces
}

// CanSplitFace reports whether SplitFace with the same arguments would
// succeed. The brush is not modified.
func (b *Brush) CanSplitFace(worldBounds BBox, face FaceInfo, delta mgl64.Vec3) bool {
	side := findSide(b.sides, face.Vertices, CorrectEpsilon)
	if side == nil || side.face == nil {
		return false
	}

	// a drag parallel to the face would leave it indented
	if math.Abs(delta.Dot(side.face.Boundary().Normal)) <= moveEpsilon {
		return false
	}

	manager := newFaceManager()
	test := b.Clone()
	test.restoreFaceSides()

	testSide := findSide(test.sides, face.Vertices, CorrectEpsilon)
	vertex := test.splitSideAt(testSide, manager)
	outcome := test.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)

	canSplit := outcome.result == VertexMoved
	canSplit = canSplit && len(test.sides) >= 3
	canSplit = canSplit && worldBounds.ContainsBBox(test.bounds)

	b.restoreFaceSides()
	return canSplit
}

// SplitFace introduces a new vertex at the centroid of the identified side,
// triangulating the side into a fan, and moves the vertex by delta. Returns
// the final position of the new vertex. Callers must check CanSplitFace
// first.
func (b *Brush) SplitFace(worldBounds BBox, face FaceInfo, delta mgl64.Vec3) (mgl64.Vec3, []*Face, []*Face) {
	manager := newFaceManager()

	side := findSide(b.sides, face.Vertices, CorrectEpsilon)
	vertex := b.splitSideAt(side, manager)
	outcome := b.moveVertex(vertex, false, vertex.Position, vertex.Position.Add(delta), manager)

	b.updateFacePoints(manager)
	newFaces, droppedFaces := manager.result()
	return outcome.vertex.Position, newFaces, droppedFaces
}

// Snap moves every vertex onto the nearest multiple of grid, merging
// vertices that collapse onto each other, and regenerates face points.
func (b *Brush) Snap(grid float64) ([]*Face, []*Face) {
	return b.adjustVertices(func(position mgl64.Vec3) mgl64.Vec3 {
		return snapped(position, grid)
	})
}

// Correct pulls every vertex coordinate onto the nearest integer if it lies
// within epsilon of it, merging vertices that collapse onto each other, and
// regenerates face points.
func (b *Brush) Correct(epsilon float64) ([]*Face, []*Face) {
	return b.adjustVertices(func(position mgl64.Vec3) mgl64.Vec3 {
		return corrected(position, epsilon)
	})
}

func (b *Brush) adjustVertices(adjust func(mgl64.Vec3) mgl64.Vec3) ([]*Face, []*Face) {
	type adjustment struct {
		start mgl64.Vec3
		end   mgl64.Vec3
	}

	var adjustments []adjustment
	for _, vertex := range b.vertices {
		start := vertex.Position
		end := adjust(start)
		if start != end {
			adjustments = append(adjustments, adjustment{start: start, end: end})
		}
	}

	if len(adjustments) == 0 {
		return nil, nil
	}

	manager := newFaceManager()
	for _, a := range adjustments {
		if vertex := findVertex(b.vertices, a.start, 0); vertex != nil {
			b.moveVertex(vertex, true, a.start, a.end, manager)
		}
		b.updateFacePoints(manager)
	}

	return manager.result()
}
