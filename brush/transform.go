package brush

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies a coordinate axis for axis-bound transforms.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Translate shifts the whole brush by delta. Faces' seed points move in
// lockstep with the vertices.
func (b *Brush) Translate(delta mgl64.Vec3) {
	for _, vertex := range b.vertices {
		vertex.Position = vertex.Position.Add(delta)
	}
	for _, side := range b.sides {
		if side.face != nil {
			side.face.translate(delta)
		}
	}
	b.bounds = b.bounds.Translated(delta)
	b.center = b.center.Add(delta)
}

// Rotate90 rotates the brush by a quarter turn about the given axis through
// center.
func (b *Brush) Rotate90(axis Axis, center mgl64.Vec3, clockwise bool) {
	b.transform(func(p mgl64.Vec3) mgl64.Vec3 {
		return rotated90(p.Sub(center), axis, clockwise).Add(center)
	}, false)
}

// Rotate rotates the brush by the given quaternion about center.
func (b *Brush) Rotate(rotation mgl64.Quat, center mgl64.Vec3) {
	b.transform(func(p mgl64.Vec3) mgl64.Vec3 {
		return rotation.Rotate(p.Sub(center)).Add(center)
	}, false)
}

// FlipAxis mirrors the brush across the plane through center perpendicular
// to the given axis. Mirroring inverts every winding, so all side rings and
// edge orientations are re-oriented afterwards.
func (b *Brush) FlipAxis(axis Axis, center mgl64.Vec3) {
	b.transform(func(p mgl64.Vec3) mgl64.Vec3 {
		p[axis] = 2*center[axis] - p[axis]
		return p
	}, true)
}

func (b *Brush) transform(fn func(mgl64.Vec3) mgl64.Vec3, invertsOrientation bool) {
	for _, vertex := range b.vertices {
		vertex.Position = fn(vertex.Position)
	}
	for _, side := range b.sides {
		if side.face != nil {
			side.face.transform(fn)
		}
	}

	if invertsOrientation {
		for _, edge := range b.edges {
			edge.Left, edge.Right = edge.Right, edge.Left
		}
		for _, side := range b.sides {
			reverseEdges(side.edges)
			for i, edge := range side.edges {
				side.vertices[i] = edge.StartVertex(side)
			}
			if side.face != nil {
				side.face.flipPoints()
			}
		}
	}

	b.bounds = boundsOfVertices(b.vertices)
	b.center = centerOfVertices(b.vertices)
}

func reverseEdges(edges []*Edge) {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
}

func rotated90(p mgl64.Vec3, axis Axis, clockwise bool) mgl64.Vec3 {
	switch axis {
	case AxisX:
		if clockwise {
			return mgl64.Vec3{p.X(), p.Z(), -p.Y()}
		}
		return mgl64.Vec3{p.X(), -p.Z(), p.Y()}
	case AxisY:
		if clockwise {
			return mgl64.Vec3{-p.Z(), p.Y(), p.X()}
		}
		return mgl64.Vec3{p.Z(), p.Y(), -p.X()}
	default:
		if clockwise {
			return mgl64.Vec3{p.Y(), -p.X(), p.Z()}
		}
		return mgl64.Vec3{-p.Y(), p.X(), p.Z()}
	}
}
