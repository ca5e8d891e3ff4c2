// Package brush implements the brush geometry kernel of a level editor for
// id-Tech-style maps: convex polyhedra ("brushes") defined as intersections
// of half-spaces ("faces"), maintained as an explicit boundary
// representation of vertices, edges and polygonal sides.
//
// The kernel turns face definitions into geometry by repeatedly clipping a
// seed box against face planes, and supports interactive edits that move
// individual vertices, edges or whole sides while preserving convexity and
// closedness.
//
// # Basic Usage
//
// A brush is seeded from world bounds and clipped to faces:
//
//	worldBounds := brush.NewBBox(mgl64.Vec3{-1024, -1024, -1024}, mgl64.Vec3{1024, 1024, 1024})
//	b, dropped, err := brush.NewFromFaces(worldBounds, faces)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Interactive edits go through the mover operations, each guarded by a
// predicate that runs the edit on a copy first:
//
//	if b.CanMoveVertices(worldBounds, positions, delta) {
//		moved, newFaces, droppedFaces := b.MoveVertices(worldBounds, positions, delta)
//		...
//	}
//
// # Face Ownership
//
// The move, split, snap and correct operations report two disjoint face
// sets: new faces the brush has created and now owns, and dropped faces the
// brush has released and the caller must destroy. AddFace and AddFaces
// report only the dropped set; the whole-brush transforms report neither. A
// face in the dropped set must not be referenced after the call returns.
//
// # Thread Safety
//
// A brush is single-threaded and non-reentrant: one brush must not be
// accessed from more than one goroutine concurrently. Distinct brushes are
// independent and may be used in parallel.
package brush
