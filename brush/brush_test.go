package brush

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBoxTopology(t *testing.T) {
	b := New(testWorldBounds())

	assert.Len(t, b.Vertices(), 8)
	assert.Len(t, b.Edges(), 12)
	assert.Len(t, b.Sides(), 6)
	assert.False(t, b.Closed(), "a seed box has no faces attached")
	assert.Equal(t, testWorldBounds(), b.Bounds())
	assert.Equal(t, mgl64.Vec3{}, b.Center())

	for _, side := range b.Sides() {
		require.Len(t, side.Vertices(), 4)
		require.Len(t, side.Edges(), 4)
		for i, edge := range side.Edges() {
			assert.Same(t, side.Vertices()[i], edge.StartVertex(side))
		}
	}

	for _, edge := range b.Edges() {
		assert.NotNil(t, edge.Left)
		assert.NotNil(t, edge.Right)
		assert.NotSame(t, edge.Left, edge.Right)
	}
}

func TestNewBoxIsClosed(t *testing.T) {
	b := testCube(t, 32)
	assert.True(t, b.Closed())
	assert.Len(t, b.Faces(), 6)
	assert.Equal(t, NewBBox(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, 32, 32}), b.Bounds())

	for _, side := range b.Sides() {
		require.NotNil(t, side.Face())
		assert.Same(t, side, side.Face().Side())
	}
}

func TestNewBoxCopiesTemplateAttributes(t *testing.T) {
	template := mustFace(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 16}, mgl64.Vec3{0, 16, 0})
	template.Texture = "metal1_1"
	template.Rotation = 45

	bounds := NewBBox(mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, 32, 32})
	b, err := NewBox(testWorldBounds(), bounds, template)
	require.NoError(t, err)

	for _, face := range b.Faces() {
		assert.Equal(t, "metal1_1", face.Texture)
		assert.Equal(t, 45.0, face.Rotation)
	}
}

func TestClone(t *testing.T) {
	b := testCube(t, 32)
	clone := b.Clone()

	assert.Len(t, clone.Vertices(), len(b.Vertices()))
	assert.Len(t, clone.Edges(), len(b.Edges()))
	assert.Len(t, clone.Sides(), len(b.Sides()))
	assert.Equal(t, b.Bounds(), clone.Bounds())

	// faces are shared, entities are not
	for i, side := range clone.Sides() {
		assert.Same(t, b.Sides()[i].Face(), side.Face())
		assert.NotSame(t, b.Sides()[i], side)
	}

	// mutating the clone leaves the original untouched
	clone.Vertices()[0].Position = mgl64.Vec3{999, 999, 999}
	assert.False(t, hasVertexAt(b, mgl64.Vec3{999, 999, 999}))

	b.restoreFaceSides()
	require.NoError(t, b.SanityCheck())
}

func TestContainsPoint(t *testing.T) {
	b := testCube(t, 32)

	assert.True(t, b.ContainsPoint(mgl64.Vec3{0, 0, 0}))
	assert.True(t, b.ContainsPoint(mgl64.Vec3{32, 0, 0}), "boundary points are contained")
	assert.True(t, b.ContainsPoint(mgl64.Vec3{32, 32, 32}))
	assert.False(t, b.ContainsPoint(mgl64.Vec3{33, 0, 0}))
	assert.False(t, b.ContainsPoint(mgl64.Vec3{0, 0, -48}))
}

func TestContainsBrush(t *testing.T) {
	outer := testCube(t, 32)
	inner := testCube(t, 16)
	offset, err := NewBox(testWorldBounds(),
		NewBBox(mgl64.Vec3{16, 16, 16}, mgl64.Vec3{48, 48, 48}), nil)
	require.NoError(t, err)

	assert.True(t, outer.ContainsBrush(inner))
	assert.False(t, inner.ContainsBrush(outer))
	assert.False(t, outer.ContainsBrush(offset))
}

func TestIntersectsBrush(t *testing.T) {
	a := testCube(t, 32)

	overlapping, err := NewBox(testWorldBounds(),
		NewBBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{64, 64, 64}), nil)
	require.NoError(t, err)
	assert.True(t, a.IntersectsBrush(overlapping))
	assert.True(t, overlapping.IntersectsBrush(a))

	disjoint, err := NewBox(testWorldBounds(),
		NewBBox(mgl64.Vec3{64, -32, -32}, mgl64.Vec3{128, 32, 32}), nil)
	require.NoError(t, err)
	assert.False(t, a.IntersectsBrush(disjoint))
	assert.False(t, disjoint.IntersectsBrush(a))

	contained := testCube(t, 16)
	assert.True(t, a.IntersectsBrush(contained))
	assert.True(t, contained.IntersectsBrush(a))
}

func TestIntersectsBrushSeparatedByFacePlane(t *testing.T) {
	// if any face of A has all vertices of B strictly above its plane, the
	// brushes do not intersect
	a := testCube(t, 32)
	b, err := NewBox(testWorldBounds(),
		NewBBox(mgl64.Vec3{48, -16, -16}, mgl64.Vec3{80, 16, 16}), nil)
	require.NoError(t, err)

	boundary := sideWithNormal(t, a, mgl64.Vec3{1, 0, 0}).Face().Boundary()
	for _, vertex := range b.Vertices() {
		require.Equal(t, StatusAbove, boundary.PointStatus(vertex.Position, PointStatusEpsilon))
	}
	assert.False(t, a.IntersectsBrush(b))
}

func TestIntersectsBrushRotatedCube(t *testing.T) {
	// a cube rotated 45 degrees about Z, first offset diagonally far enough
	// that the two brushes are disjoint, then moved back until they overlap
	a := testCube(t, 32)
	c := testCube(t, 32)
	c.Rotate(mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{})
	c.Translate(mgl64.Vec3{80, 80, 0})

	assert.False(t, a.IntersectsBrush(c))

	c.Translate(mgl64.Vec3{-40, -40, 0})
	assert.True(t, a.IntersectsBrush(c))
}

func TestEntityPredicates(t *testing.T) {
	b := testCube(t, 32)

	inside := NewBBox(mgl64.Vec3{-8, -8, -8}, mgl64.Vec3{8, 8, 8})
	straddling := NewBBox(mgl64.Vec3{16, -8, -8}, mgl64.Vec3{64, 8, 8})
	outside := NewBBox(mgl64.Vec3{64, 64, 64}, mgl64.Vec3{96, 96, 96})

	assert.True(t, b.ContainsEntity(inside))
	assert.False(t, b.ContainsEntity(straddling))
	assert.False(t, b.ContainsEntity(outside))

	assert.True(t, b.IntersectsEntity(inside))
	assert.True(t, b.IntersectsEntity(straddling))
	assert.False(t, b.IntersectsEntity(outside))
}

func TestPick(t *testing.T) {
	b := testCube(t, 32)

	hit, ok := b.Pick(Ray{Origin: mgl64.Vec3{100, 0, 0}, Direction: mgl64.Vec3{-1, 0, 0}})
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, hit.Face.Boundary().Normal)
	assert.True(t, almostEqual(hit.Distance, 68))
	assert.True(t, equalsEps(hit.Point, mgl64.Vec3{32, 0, 0}, 1e-9))

	_, ok = b.Pick(Ray{Origin: mgl64.Vec3{100, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}})
	assert.False(t, ok, "a ray pointing away must miss")

	_, ok = b.Pick(Ray{Origin: mgl64.Vec3{100, 100, 0}, Direction: mgl64.Vec3{-1, 0, 0}})
	assert.False(t, ok, "a ray passing beside the brush must miss")
}
