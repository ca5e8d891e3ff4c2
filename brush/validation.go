package brush

import (
	"fmt"
)

// ValidationError reports a violated polyhedron invariant.
type ValidationError struct {
	Kind    string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", ve.Kind, ve.Message)
}

// SanityCheck verifies the brush's structural invariants: the Euler
// characteristic, ring consistency, two-sided edges, uniqueness of vertices
// and edges, convexity against the attached face planes, and bounds
// correctness. Returns nil if all invariants hold.
func (b *Brush) SanityCheck() error {
	if euler := len(b.vertices) - len(b.edges) + len(b.sides); euler != 2 {
		return ValidationError{
			Kind:    "Topology",
			Message: fmt.Sprintf("Euler characteristic is %d (expected 2)", euler),
		}
	}

	vertexVisits := make(map[*Vertex]int, len(b.vertices))
	edgeVisits := make(map[*Edge]int, len(b.edges))

	for i, side := range b.sides {
		if len(side.vertices) != len(side.edges) {
			return ValidationError{
				Kind:    "Consistency",
				Message: fmt.Sprintf("side %d has %d vertices but %d edges", i, len(side.vertices), len(side.edges)),
			}
		}
		if len(side.vertices) < 3 {
			return ValidationError{
				Kind:    "Topology",
				Message: fmt.Sprintf("side %d has only %d vertices", i, len(side.vertices)),
			}
		}

		for j, edge := range side.edges {
			if edge.Left != side && edge.Right != side {
				return ValidationError{
					Kind:    "Consistency",
					Message: fmt.Sprintf("edge %d of side %d does not reference it", j, i),
				}
			}
			if findEdgeIndex(b.edges, edge) == len(b.edges) {
				return ValidationError{
					Kind:    "Consistency",
					Message: fmt.Sprintf("edge %d of side %d is missing from the brush", j, i),
				}
			}
			edgeVisits[edge]++

			vertex := edge.StartVertex(side)
			if side.vertices[j] != vertex {
				return ValidationError{
					Kind:    "Consistency",
					Message: fmt.Sprintf("start vertex of edge %d of side %d is not at ring position %d", j, i, j),
				}
			}
			if findVertexIndex(b.vertices, vertex) == len(b.vertices) {
				return ValidationError{
					Kind:    "Consistency",
					Message: fmt.Sprintf("vertex %d of side %d is missing from the brush", j, i),
				}
			}
			vertexVisits[vertex]++
		}
	}

	for i, vertex := range b.vertices {
		if vertexVisits[vertex] == 0 {
			return ValidationError{
				Kind:    "Topology",
				Message: fmt.Sprintf("vertex %d belongs to no side", i),
			}
		}
		for j := i + 1; j < len(b.vertices); j++ {
			if equalsEps(vertex.Position, b.vertices[j].Position, CorrectEpsilon) {
				return ValidationError{
					Kind:    "Uniqueness",
					Message: fmt.Sprintf("vertices %d and %d share a position", i, j),
				}
			}
		}
	}

	for i, edge := range b.edges {
		if edgeVisits[edge] != 2 {
			return ValidationError{
				Kind:    "Topology",
				Message: fmt.Sprintf("edge %d was visited %d times (expected 2)", i, edgeVisits[edge]),
			}
		}
		if equalsEps(edge.Start.Position, edge.End.Position, CorrectEpsilon) {
			return ValidationError{
				Kind:    "Uniqueness",
				Message: fmt.Sprintf("edge %d has coincident endpoints", i),
			}
		}
		if edge.Left == edge.Right {
			return ValidationError{
				Kind:    "Topology",
				Message: fmt.Sprintf("edge %d has identical sides", i),
			}
		}
		for j := i + 1; j < len(b.edges); j++ {
			other := b.edges[j]
			if (edge.Start == other.Start && edge.End == other.End) ||
				(edge.Start == other.End && edge.End == other.Start) {
				return ValidationError{
					Kind:    "Uniqueness",
					Message: fmt.Sprintf("edges %d and %d span the same vertices", i, j),
				}
			}
		}
	}

	for i, side := range b.sides {
		if side.face == nil {
			continue
		}
		boundary := side.face.Boundary()
		for j, vertex := range b.vertices {
			if boundary.PointStatus(vertex.Position, PointStatusEpsilon) == StatusAbove {
				return ValidationError{
					Kind:    "Convexity",
					Message: fmt.Sprintf("vertex %d lies above the plane of side %d", j, i),
				}
			}
		}
	}

	if bounds := boundsOfVertices(b.vertices); bounds != b.bounds {
		return ValidationError{
			Kind:    "Bounds",
			Message: fmt.Sprintf("stored bounds %v differ from vertex bounds %v", b.bounds, bounds),
		}
	}

	return nil
}
