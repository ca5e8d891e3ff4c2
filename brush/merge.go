package brush

// deleteDegenerateTriangle removes a triangular side that collapsed onto one
// of its edges: the kept edge is repointed at the neighbour across the
// dropped edge, the neighbour's ring is spliced accordingly, and the side,
// the dropped edge and the side's face are released.
func (b *Brush) deleteDegenerateTriangle(side *Side, edge *Edge, manager *faceManager) {
	side.shift(findEdgeIndex(side.edges, edge))

	keepEdge := side.edges[1]
	dropEdge := side.edges[2]
	neighbour := dropEdge.Right
	if dropEdge.Left != side {
		neighbour = dropEdge.Left
	}

	if keepEdge.Left == side {
		keepEdge.Left = neighbour
	} else {
		keepEdge.Right = neighbour
	}

	deleteIndex := findEdgeIndex(neighbour.edges, dropEdge)
	prevIndex := pred(deleteIndex, len(neighbour.edges))
	nextIndex := succ(deleteIndex, len(neighbour.edges))
	neighbour.replaceEdges(prevIndex, nextIndex, keepEdge)

	manager.dropFace(side)
	b.removeSide(side)
	b.removeEdge(dropEdge)
}

// mergeSides merges every side with a coplanar neighbour, repeating until no
// pair remains. Planes are recomputed from the first three ring vertices so
// that the comparison reflects the current geometry, not stale face planes.
func (b *Brush) mergeSides(manager *faceManager) {
	for i := 0; i < len(b.sides); i++ {
		side := b.sides[i]
		sideBoundary, ok := PlaneFromPoints(
			side.vertices[0].Position,
			side.vertices[1].Position,
			side.vertices[2].Position,
		)
		if !ok {
			continue
		}

		for j, edge := range side.edges {
			neighbour := edge.Right
			if edge.Left != side {
				neighbour = edge.Left
			}
			neighbourBoundary, ok := PlaneFromPoints(
				neighbour.vertices[0].Position,
				neighbour.vertices[1].Position,
				neighbour.vertices[2].Position,
			)
			if !ok {
				continue
			}

			if sideBoundary.Equals(neighbourBoundary, ColinearEpsilon) {
				b.mergeNeighbours(side, j, manager)
				i--
				break
			}
		}
	}
}

// mergeNeighbours splices the neighbour across side.edges[edgeIndex] into
// side: the run of shared edges at their interface is removed, the
// neighbour's remaining ring is appended, and the neighbour with its face is
// released.
func (b *Brush) mergeNeighbours(side *Side, edgeIndex int, manager *faceManager) {
	edge := side.edges[edgeIndex]
	neighbour := edge.Right
	if edge.Left != side {
		neighbour = edge.Left
	}

	sideEdgeIndex := edgeIndex
	neighbourEdgeIndex := findEdgeIndex(neighbour.edges, edge)

	for {
		sideEdgeIndex = succ(sideEdgeIndex, len(side.edges))
		neighbourEdgeIndex = pred(neighbourEdgeIndex, len(neighbour.edges))
		if side.edges[sideEdgeIndex] != neighbour.edges[neighbourEdgeIndex] {
			break
		}
	}
	// sideEdgeIndex is the last edge of side that survives, neighbourEdgeIndex
	// the first of neighbour that survives

	count := -1
	for {
		sideEdgeIndex = pred(sideEdgeIndex, len(side.edges))
		neighbourEdgeIndex = succ(neighbourEdgeIndex, len(neighbour.edges))
		count++
		if side.edges[sideEdgeIndex] != neighbour.edges[neighbourEdgeIndex] {
			break
		}
	}
	// now count is the number of shared edges between the two rings

	// shift both rings so the shared run sits at the end
	side.shift(succN(sideEdgeIndex, len(side.edges), count+1))
	neighbour.shift(neighbourEdgeIndex)

	side.edges = side.edges[:len(side.edges)-count]
	side.vertices = side.vertices[:len(side.vertices)-count]

	for i := 0; i < len(neighbour.edges)-count; i++ {
		neighbourEdge := neighbour.edges[i]
		if neighbourEdge.Left == neighbour {
			neighbourEdge.Left = side
		} else {
			neighbourEdge.Right = side
		}
		side.edges = append(side.edges, neighbourEdge)
		side.vertices = append(side.vertices, neighbour.vertices[i])
	}

	for i := len(neighbour.edges) - count; i < len(neighbour.edges); i++ {
		b.removeEdge(neighbour.edges[i])
		if i > len(neighbour.edges)-count {
			b.removeVertex(neighbour.vertices[i])
		}
	}

	manager.dropFace(neighbour)
	b.removeSide(neighbour)
}

// mergeEdges replaces every pair of incident parallel edges that share a
// side pair with a single edge spanning their outer endpoints, deleting the
// obsolete middle vertex.
func (b *Brush) mergeEdges() {
	for i := 0; i < len(b.edges); i++ {
		edge := b.edges[i]
		edgeVector := edge.Vector()
		for j := i + 1; j < len(b.edges); j++ {
			candidate := b.edges[j]
			if !edge.IncidentWith(candidate) {
				continue
			}
			if !parallel(edgeVector, candidate.Vector(), ColinearEpsilon) {
				continue
			}

			// both incident rings must stay polygons after losing an edge
			if len(edge.Left.vertices) < 4 || len(edge.Right.vertices) < 4 {
				continue
			}

			if edge.End == candidate.End {
				candidate.flip()
			}
			if edge.End == candidate.Start &&
				edge.Start != candidate.End &&
				edge.Left == candidate.Left &&
				edge.Right == candidate.Right {
				b.spliceEdgePair(edge, candidate, true)
				i--
				break
			}

			if edge.Start == candidate.Start {
				candidate.flip()
			}
			if edge.Start == candidate.End &&
				edge.End != candidate.Start &&
				edge.Left == candidate.Left &&
				edge.Right == candidate.Right {
				b.spliceEdgePair(edge, candidate, false)
				i--
				break
			}
		}
	}
}

// spliceEdgePair replaces edge and candidate with one edge spanning their
// outer endpoints. When forward is true the candidate continues the edge at
// its end, otherwise at its start.
func (b *Brush) spliceEdgePair(edge, candidate *Edge, forward bool) {
	leftSide := edge.Left
	rightSide := edge.Right

	var merged *Edge
	var obsolete *Vertex
	if forward {
		merged = newEdge(edge.Start, candidate.End)
		obsolete = candidate.Start
	} else {
		merged = newEdge(candidate.Start, edge.End)
		obsolete = candidate.End
	}
	merged.Left = leftSide
	merged.Right = rightSide
	merged.mark = EdgeUnknown
	b.edges = append(b.edges, merged)

	leftIndex := findEdgeIndex(leftSide.edges, candidate)
	leftCount := len(leftSide.edges)
	rightIndex := findEdgeIndex(rightSide.edges, candidate)
	rightCount := len(rightSide.edges)

	if forward {
		leftSide.replaceEdges(pred(leftIndex, leftCount), succN(leftIndex, leftCount, 2), merged)
		rightSide.replaceEdges(predN(rightIndex, rightCount, 2), succ(rightIndex, rightCount), merged)
	} else {
		leftSide.replaceEdges(predN(leftIndex, leftCount, 2), succ(leftIndex, leftCount), merged)
		rightSide.replaceEdges(pred(rightIndex, rightCount), succN(rightIndex, rightCount, 2), merged)
	}

	b.removeVertex(obsolete)
	b.removeEdge(candidate)
	b.removeEdge(edge)
}

// updateFacePoints regenerates the seed points of every face from its
// current vertex ring. A face whose ring has gone colinear is released.
// Must only be called at the end of a mover step.
func (b *Brush) updateFacePoints(manager *faceManager) {
	for _, side := range b.sides {
		if side.face == nil {
			continue
		}
		if err := side.face.UpdatePointsFromVertices(); err != nil {
			manager.dropFace(side)
		}
	}
}

func (b *Brush) removeVertex(vertex *Vertex) {
	for i, candidate := range b.vertices {
		if candidate == vertex {
			b.vertices = append(b.vertices[:i], b.vertices[i+1:]...)
			return
		}
	}
}

func (b *Brush) removeEdge(edge *Edge) {
	for i, candidate := range b.edges {
		if candidate == edge {
			b.edges = append(b.edges[:i], b.edges[i+1:]...)
			return
		}
	}
}

func (b *Brush) removeSide(side *Side) {
	for i, candidate := range b.sides {
		if candidate == side {
			b.sides = append(b.sides[:i], b.sides[i+1:]...)
			return
		}
	}
}
