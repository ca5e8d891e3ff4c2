package brush

// CutResult describes the outcome of clipping a brush against a face's
// plane.
type CutResult int

const (
	// Redundant means the face does not cut the brush and need not be added.
	Redundant CutResult = iota
	// Null means the face's plane leaves nothing of the brush.
	Null
	// Split means the brush was clipped and the face is now realized by a
	// new side.
	Split
)

func (r CutResult) String() string {
	switch r {
	case Redundant:
		return "Redundant"
	case Null:
		return "Null"
	case Split:
		return "Split"
	default:
		return "Unknown"
	}
}

// AddFace clips the brush to the negative half-space of the face's plane.
// On Split the face is attached to the newly constructed side and the brush
// owns it; sides that fell entirely above the plane release their faces into
// the returned dropped set, which the caller must destroy. On Redundant or
// Null the brush is unchanged and the face remains the caller's.
//
// If the cut cannot produce a consistent polyhedron a GeometryError is
// returned and the brush is left in its pre-call state.
func (b *Brush) AddFace(face *Face) (CutResult, []*Face, error) {
	// A face whose three points all lie on an existing side's plane is a
	// coplanar duplicate.
	for _, side := range b.sides {
		if side.face == nil {
			continue
		}
		boundary := side.face.Boundary()
		onPrevious := 0
		for _, point := range face.Points() {
			if boundary.PointStatus(point, PointStatusEpsilon) == StatusInside {
				onPrevious++
			}
		}
		if onPrevious == 3 {
			return Redundant, nil, nil
		}
	}

	boundary := face.Boundary()

	var keep, drop, undecided int
	for _, vertex := range b.vertices {
		switch boundary.PointStatus(vertex.Position, PointStatusEpsilon) {
		case StatusAbove:
			vertex.mark = VertexDrop
			drop++
		case StatusBelow:
			vertex.mark = VertexKeep
			keep++
		default:
			vertex.mark = VertexUndecided
			undecided++
		}
	}

	if keep+undecided == len(b.vertices) {
		return Redundant, nil, nil
	}
	if drop+undecided == len(b.vertices) {
		return Null, nil, nil
	}

	// The cut will mutate the boundary representation; keep a snapshot so a
	// failed cut can restore the pre-call state.
	snapshot := b.Clone()

	// mark edges and split the ones crossing the plane
	for _, edge := range b.edges {
		edge.updateMark()
		if edge.mark == EdgeSplit {
			b.vertices = append(b.vertices, edge.split(boundary))
		}
	}

	// mark, split and drop sides
	var dropped []*Face
	var newEdges []*Edge

	sides := b.sides[:0]
	for _, side := range b.sides {
		newEdge, err := side.split()
		if err != nil {
			b.rollback(snapshot)
			return 0, nil, err
		}

		switch {
		case side.mark == SideDrop:
			if side.face != nil {
				dropped = append(dropped, side.face)
				side.face.setSide(nil)
			}
		case side.mark == SideSplit:
			b.edges = append(b.edges, newEdge)
			newEdges = append(newEdges, newEdge)
			side.mark = SideUnknown
			sides = append(sides, side)
		case side.mark == SideKeep && newEdge != nil:
			// an edge lying in the cut plane bounds the new side as well
			if newEdge.Right != side {
				newEdge.flip()
			}
			newEdges = append(newEdges, newEdge)
			side.mark = SideUnknown
			sides = append(sides, side)
		default:
			side.mark = SideUnknown
			sides = append(sides, side)
		}
	}
	b.sides = sides

	if len(newEdges) < 3 {
		b.rollback(snapshot)
		return 0, nil, geometryErr("add face", ErrUnclosableRing)
	}

	// chain the new edges into a closed polygon, clockwise around the new
	// face's normal
	for i := 0; i < len(newEdges)-1; i++ {
		edge := newEdges[i]
		for j := i + 2; j < len(newEdges); j++ {
			if edge.Start == newEdges[j].End {
				newEdges[j], newEdges[i+1] = newEdges[i+1], newEdges[j]
				break
			}
		}
	}
	for i, edge := range newEdges {
		if edge.Start != newEdges[succ(i, len(newEdges))].End {
			b.rollback(snapshot)
			return 0, nil, geometryErr("add face", ErrUnclosableRing)
		}
	}

	b.sides = append(b.sides, newSideForFace(face, newEdges))

	// clean up: drop marked vertices and edges, reset marks, refresh the
	// derived state
	vertices := b.vertices[:0]
	for _, vertex := range b.vertices {
		if vertex.mark != VertexDrop {
			vertex.mark = VertexUnknown
			vertex.Position = corrected(vertex.Position, CorrectEpsilon)
			vertices = append(vertices, vertex)
		}
	}
	b.vertices = vertices

	edges := b.edges[:0]
	for _, edge := range b.edges {
		if edge.mark != EdgeDrop {
			edge.mark = EdgeUnknown
			edges = append(edges, edge)
		}
	}
	b.edges = edges

	b.bounds = boundsOfVertices(b.vertices)
	b.center = centerOfVertices(b.vertices)
	return Split, dropped, nil
}

// AddFaces clips the brush against each face in order. Redundant faces are
// reported in the dropped set together with the faces released by the cuts.
// An empty face list or a face that annihilates the brush is a
// GeometryError; the brush is then left in its pre-call state.
func (b *Brush) AddFaces(faces []*Face) ([]*Face, error) {
	if len(faces) == 0 {
		return nil, geometryErr("add faces", ErrNoFaces)
	}

	snapshot := b.Clone()

	var dropped []*Face
	for _, face := range faces {
		result, cutDropped, err := b.AddFace(face)
		if err != nil {
			b.rollback(snapshot)
			return nil, err
		}
		dropped = append(dropped, cutDropped...)

		switch result {
		case Redundant:
			dropped = append(dropped, face)
		case Null:
			b.rollback(snapshot)
			return nil, geometryErr("add faces", ErrEmptyBrush)
		}
	}

	for _, vertex := range b.vertices {
		vertex.Position = corrected(vertex.Position, CorrectEpsilon)
	}
	return dropped, nil
}

// rollback restores the brush from a snapshot taken with Clone and re-links
// the shared faces to their surviving sides.
func (b *Brush) rollback(snapshot *Brush) {
	b.vertices = snapshot.vertices
	b.edges = snapshot.edges
	b.sides = snapshot.sides
	b.bounds = snapshot.bounds
	b.center = snapshot.center
	for _, vertex := range b.vertices {
		vertex.mark = VertexUnknown
	}
	for _, edge := range b.edges {
		edge.mark = EdgeUnknown
	}
	for _, side := range b.sides {
		side.mark = SideUnknown
	}
	b.restoreFaceSides()
}
