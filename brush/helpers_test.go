package brush

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func testWorldBounds() BBox {
	return NewBBox(mgl64.Vec3{-1024, -1024, -1024}, mgl64.Vec3{1024, 1024, 1024})
}

// testCube builds a closed axis-aligned cube brush spanning ±halfSize.
func testCube(t *testing.T, halfSize float64) *Brush {
	t.Helper()
	bounds := NewBBox(
		mgl64.Vec3{-halfSize, -halfSize, -halfSize},
		mgl64.Vec3{halfSize, halfSize, halfSize},
	)
	b, err := NewBox(testWorldBounds(), bounds, nil)
	require.NoError(t, err)
	require.NoError(t, b.SanityCheck())
	return b
}

func mustFace(t *testing.T, p1, p2, p3 mgl64.Vec3) *Face {
	t.Helper()
	face, err := NewFace(testWorldBounds(), p1, p2, p3, "rock4_1")
	require.NoError(t, err)
	return face
}

// sideWithNormal returns the side whose face normal matches the given
// direction.
func sideWithNormal(t *testing.T, b *Brush, normal mgl64.Vec3) *Side {
	t.Helper()
	for _, side := range b.Sides() {
		if side.Face() == nil {
			continue
		}
		if equalsEps(side.Face().Boundary().Normal, normal, ColinearEpsilon) {
			return side
		}
	}
	t.Fatalf("no side with normal %v", normal)
	return nil
}

func positionsOf(vertices []*Vertex) []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, len(vertices))
	for i, vertex := range vertices {
		positions[i] = vertex.Position
	}
	return positions
}

// hasVertexAt reports whether the brush has a vertex at position.
func hasVertexAt(b *Brush, position mgl64.Vec3) bool {
	return findVertex(b.Vertices(), position, CorrectEpsilon) != nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
