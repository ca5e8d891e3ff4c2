package brush

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBoxCutInHalf(t *testing.T) {
	b := testCube(t, 32)

	face := mustFace(t,
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 16},
		mgl64.Vec3{0, 16, 0},
	)
	require.Equal(t, mgl64.Vec3{1, 0, 0}, face.Boundary().Normal)

	result, dropped, err := b.AddFace(face)
	require.NoError(t, err)
	assert.Equal(t, Split, result)
	assert.Len(t, dropped, 1, "the +X face should have been released")

	assert.Len(t, b.Sides(), 6)
	assert.Len(t, b.Vertices(), 8)
	assert.Len(t, b.Edges(), 12)
	require.NoError(t, b.SanityCheck())

	side := face.Side()
	require.NotNil(t, side)
	require.Len(t, side.Vertices(), 4)
	for _, expected := range []mgl64.Vec3{
		{0, -32, -32}, {0, 32, -32}, {0, -32, 32}, {0, 32, 32},
	} {
		assert.True(t, findVertex(side.Vertices(), expected, CorrectEpsilon) != nil,
			"expected cut ring vertex at %v", expected)
	}

	expectedBounds := NewBBox(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{0, 32, 32})
	assert.Equal(t, expectedBounds, b.Bounds())
}

func TestFullyAboveCutIsRedundant(t *testing.T) {
	b := testCube(t, 32)
	before := len(b.Vertices())

	face := mustFace(t,
		mgl64.Vec3{64, 0, 0},
		mgl64.Vec3{64, 0, 16},
		mgl64.Vec3{64, 16, 0},
	)

	result, dropped, err := b.AddFace(face)
	require.NoError(t, err)
	assert.Equal(t, Redundant, result)
	assert.Empty(t, dropped)
	assert.Len(t, b.Vertices(), before)
	assert.Len(t, b.Sides(), 6)
	require.NoError(t, b.SanityCheck())
}

func TestFullyBelowCutIsNull(t *testing.T) {
	b := testCube(t, 32)

	face := mustFace(t,
		mgl64.Vec3{-64, 0, 0},
		mgl64.Vec3{-64, 0, 16},
		mgl64.Vec3{-64, 16, 0},
	)

	result, dropped, err := b.AddFace(face)
	require.NoError(t, err)
	assert.Equal(t, Null, result)
	assert.Empty(t, dropped)
	assert.Len(t, b.Sides(), 6)
	assert.Len(t, b.Vertices(), 8)
	require.NoError(t, b.SanityCheck())
}

func TestCornerChamfer(t *testing.T) {
	b := testCube(t, 32)

	face := mustFace(t,
		mgl64.Vec3{32, 32, 0},
		mgl64.Vec3{32, 0, 32},
		mgl64.Vec3{0, 32, 32},
	)
	normal := face.Boundary().Normal
	assert.True(t, normal.X() > 0 && normal.Y() > 0 && normal.Z() > 0,
		"chamfer normal should point out of the corner, got %v", normal)

	result, dropped, err := b.AddFace(face)
	require.NoError(t, err)
	assert.Equal(t, Split, result)
	assert.Empty(t, dropped)
	require.NoError(t, b.SanityCheck())

	assert.Len(t, b.Sides(), 7)
	assert.Len(t, b.Vertices(), 10)
	assert.Len(t, b.Edges(), 15)

	require.NotNil(t, face.Side())
	assert.Len(t, face.Side().Vertices(), 3, "the chamfer side should be a triangle")

	pentagons := 0
	for _, side := range b.Sides() {
		if len(side.Vertices()) == 5 {
			pentagons++
		}
	}
	assert.Equal(t, 3, pentagons, "three original quads should have become pentagons")
}

func TestCutIdempotence(t *testing.T) {
	b := testCube(t, 32)

	face := mustFace(t,
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 16},
		mgl64.Vec3{0, 16, 0},
	)
	result, _, err := b.AddFace(face)
	require.NoError(t, err)
	require.Equal(t, Split, result)

	vertices := positionsOf(b.Vertices())
	sideCount := len(b.Sides())

	duplicate := mustFace(t,
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 16},
		mgl64.Vec3{0, 16, 0},
	)
	result, dropped, err := b.AddFace(duplicate)
	require.NoError(t, err)
	assert.Equal(t, Redundant, result)
	assert.Empty(t, dropped)

	assert.Equal(t, sideCount, len(b.Sides()))
	assert.Equal(t, vertices, positionsOf(b.Vertices()))
}

func TestAddFacesEmptyIsError(t *testing.T) {
	b := New(testWorldBounds())
	_, err := b.AddFaces(nil)
	require.Error(t, err)
	var geomErr GeometryError
	assert.ErrorAs(t, err, &geomErr)
	assert.ErrorIs(t, err, ErrNoFaces)
}

func TestAddFacesNullIsError(t *testing.T) {
	b := testCube(t, 32)

	face := mustFace(t,
		mgl64.Vec3{-64, 0, 0},
		mgl64.Vec3{-64, 0, 16},
		mgl64.Vec3{-64, 16, 0},
	)
	_, err := b.AddFaces([]*Face{face})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyBrush)

	// the brush must be left in its pre-call state
	assert.Len(t, b.Sides(), 6)
	assert.Len(t, b.Vertices(), 8)
	require.NoError(t, b.SanityCheck())
}

func TestAddFacesReportsRedundantAsDropped(t *testing.T) {
	b := New(testWorldBounds())

	cut := mustFace(t,
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 16},
		mgl64.Vec3{0, 16, 0},
	)
	redundant := mustFace(t,
		mgl64.Vec3{2048, 0, 0},
		mgl64.Vec3{2048, 0, 16},
		mgl64.Vec3{2048, 16, 0},
	)

	dropped, err := b.AddFaces([]*Face{cut, redundant})
	require.NoError(t, err)
	require.Len(t, dropped, 1)
	assert.Same(t, redundant, dropped[0])
}

func TestCutThroughExistingVertices(t *testing.T) {
	b := testCube(t, 32)

	// a diagonal plane through four cube vertices: the plane contains the
	// edge vertices, so they are undecided and survive
	face := mustFace(t,
		mgl64.Vec3{32, -32, -32},
		mgl64.Vec3{-32, 32, 32},
		mgl64.Vec3{32, -32, 32},
	)

	result, dropped, err := b.AddFace(face)
	require.NoError(t, err)
	assert.Equal(t, Split, result)
	require.NoError(t, b.SanityCheck())
	assert.Len(t, dropped, 2, "the -X and -Y quads lie entirely on or above the plane")

	// the result is a triangular prism
	assert.Len(t, b.Vertices(), 6)
	assert.Len(t, b.Edges(), 9)
	assert.Len(t, b.Sides(), 5)
}
