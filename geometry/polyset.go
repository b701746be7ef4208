package geometry

import "golang.org/x/image/math/f64"

// PolySet is a triangulated mesh. Each entry in Indices names three
// vertices of one triangle. For tessellated 2D geometry every vertex has
// Z = 0.
type PolySet struct {
	Vertices []f64.Vec3
	Indices  [][3]int
}

// IsEmpty reports whether the mesh has no triangles.
func (ps *PolySet) IsEmpty() bool {
	return len(ps.Indices) == 0
}

// NumTriangles returns the triangle count.
func (ps *PolySet) NumTriangles() int {
	return len(ps.Indices)
}

// BoundingBox returns the box enclosing every vertex.
func (ps *PolySet) BoundingBox() BoundingBox {
	bbox := EmptyBoundingBox()
	for _, v := range ps.Vertices {
		bbox.Extend(v)
	}
	return bbox
}
