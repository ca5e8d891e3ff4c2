package brush_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sksmith/brush/brush"
)

func worldBounds() brush.BBox {
	return brush.NewBBox(
		mgl64.Vec3{-1024, -1024, -1024},
		mgl64.Vec3{1024, 1024, 1024},
	)
}

func cube(t *testing.T, halfSize float64) *brush.Brush {
	t.Helper()
	bounds := brush.NewBBox(
		mgl64.Vec3{-halfSize, -halfSize, -halfSize},
		mgl64.Vec3{halfSize, halfSize, halfSize},
	)
	b, err := brush.NewBox(worldBounds(), bounds, nil)
	require.NoError(t, err)
	return b
}

// TestIntegrationEditingSession drives a brush through a typical editing
// session: construction from faces, a chamfer cut, a vertex drag, a face
// drag, and a final snap.
func TestIntegrationEditingSession(t *testing.T) {
	t.Parallel()

	b := cube(t, 64)
	require.True(t, b.Closed())
	require.NoError(t, b.SanityCheck())

	// chamfer a corner
	chamfer, err := brush.NewFace(worldBounds(),
		mgl64.Vec3{64, 64, 0},
		mgl64.Vec3{64, 0, 64},
		mgl64.Vec3{0, 64, 64},
		"rock4_1")
	require.NoError(t, err)

	result, dropped, err := b.AddFace(chamfer)
	require.NoError(t, err)
	require.Equal(t, brush.Split, result)
	require.Empty(t, dropped)
	require.NoError(t, b.SanityCheck())
	assert.Len(t, b.Sides(), 7)

	// drag a remaining corner outward
	position := mgl64.Vec3{-64, -64, -64}
	delta := mgl64.Vec3{-32, -32, -32}
	require.True(t, b.CanMoveVertices(worldBounds(), []mgl64.Vec3{position}, delta))
	moved, newFaces, droppedFaces := b.MoveVertices(worldBounds(), []mgl64.Vec3{position}, delta)
	require.Len(t, moved, 1)
	assert.Equal(t, mgl64.Vec3{-96, -96, -96}, moved[0])
	require.NoError(t, b.SanityCheck())

	// the caller integrates new faces and destroys dropped ones
	for _, face := range newFaces {
		require.NotNil(t, face.Side())
	}
	for _, face := range droppedFaces {
		assert.NotContains(t, b.Faces(), face)
	}

	// drag the top face up; the dragged corner has tilted the sides around
	// it, so no bottom face at z = -64 remains
	var top brush.FaceInfo
	for _, side := range b.Sides() {
		if side.Face() != nil && side.Face().Boundary().Normal.Z() > 0.999 {
			for _, vertex := range side.Vertices() {
				top.Vertices = append(top.Vertices, vertex.Position)
			}
			break
		}
	}
	require.NotEmpty(t, top.Vertices)

	if b.CanMoveFaces(worldBounds(), []brush.FaceInfo{top}, mgl64.Vec3{0, 0, 16}) {
		_, _, dropped := b.MoveFaces(worldBounds(), []brush.FaceInfo{top}, mgl64.Vec3{0, 0, 16})
		require.NoError(t, b.SanityCheck())
		assert.Empty(t, dropped)
	}

	// snap everything onto an 8-grid
	b.Snap(8)
	require.NoError(t, b.SanityCheck())
	for _, vertex := range b.Vertices() {
		for i := 0; i < 3; i++ {
			coord := vertex.Position[i] / 8
			assert.InDelta(t, math.Round(coord), coord, 1e-9,
				"vertex %v is off the 8-grid", vertex.Position)
		}
	}
}

// TestIntegrationConstructionFromFaces verifies that a brush built from an
// explicit face list matches one built from bounds.
func TestIntegrationConstructionFromFaces(t *testing.T) {
	t.Parallel()

	faces := make([]*brush.Face, 0, 6)
	add := func(p1, p2, p3 mgl64.Vec3) {
		face, err := brush.NewFace(worldBounds(), p1, p2, p3, "base_wall")
		require.NoError(t, err)
		faces = append(faces, face)
	}

	// an axis-aligned 64-cube described the way a map file would
	add(mgl64.Vec3{32, -32, -32}, mgl64.Vec3{32, -32, 32}, mgl64.Vec3{32, 32, -32})
	add(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{-32, 32, -32}, mgl64.Vec3{-32, -32, 32})
	add(mgl64.Vec3{-32, 32, -32}, mgl64.Vec3{32, 32, -32}, mgl64.Vec3{-32, 32, 32})
	add(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{-32, -32, 32}, mgl64.Vec3{32, -32, -32})
	add(mgl64.Vec3{-32, -32, 32}, mgl64.Vec3{-32, 32, 32}, mgl64.Vec3{32, -32, 32})
	add(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, -32, -32}, mgl64.Vec3{-32, 32, -32})

	b, dropped, err := brush.NewFromFaces(worldBounds(), faces)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.True(t, b.Closed())
	assert.Len(t, b.Vertices(), 8)
	assert.Len(t, b.Edges(), 12)
	assert.Len(t, b.Sides(), 6)
	assert.Equal(t, brush.NewBBox(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, 32, 32}), b.Bounds())
	require.NoError(t, b.SanityCheck())

	reference := cube(t, 32)
	assert.True(t, reference.ContainsBrush(b))
	assert.True(t, b.ContainsBrush(reference))
}

// TestIntegrationPickAfterEdits verifies that picking keeps working after a
// brush has been edited.
func TestIntegrationPickAfterEdits(t *testing.T) {
	t.Parallel()

	b := cube(t, 32)

	top := brush.FaceInfo{}
	for _, side := range b.Sides() {
		if side.Face() != nil && side.Face().Boundary().Normal.Z() > 0.999 {
			for _, vertex := range side.Vertices() {
				top.Vertices = append(top.Vertices, vertex.Position)
			}
			break
		}
	}
	require.True(t, b.CanMoveFaces(worldBounds(), []brush.FaceInfo{top}, mgl64.Vec3{0, 0, 32}))
	b.MoveFaces(worldBounds(), []brush.FaceInfo{top}, mgl64.Vec3{0, 0, 32})

	hit, ok := b.Pick(brush.Ray{Origin: mgl64.Vec3{0, 0, 128}, Direction: mgl64.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.InDelta(t, 64, hit.Distance, 1e-9)
	assert.InDelta(t, 64, hit.Point.Z(), 1e-9)
}
