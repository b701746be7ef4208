package geometry

import "golang.org/x/image/math/f64"

// Outline2d is one closed contour. The last vertex connects back to the
// first. Nothing about an outline enforces simplicity.
type Outline2d struct {
	Vertices []f64.Vec2
}

// NewOutline2d builds an outline from x, y pairs.
func NewOutline2d(pts ...f64.Vec2) Outline2d {
	v := make([]f64.Vec2, len(pts))
	copy(v, pts)
	return Outline2d{Vertices: v}
}

// BoundingBox returns the box enclosing every vertex, in the Z=0 plane.
func (o Outline2d) BoundingBox() BoundingBox {
	bbox := EmptyBoundingBox()
	for _, v := range o.Vertices {
		bbox.Extend(f64.Vec3{v[0], v[1], 0})
	}
	return bbox
}

// SignedArea returns the shoelace area of the contour: positive for
// counter-clockwise winding, negative for clockwise.
func (o Outline2d) SignedArea() float64 {
	n := len(o.Vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		a, b := o.Vertices[i], o.Vertices[(i+1)%n]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	return sum / 2
}

// Reverse flips the winding order in place.
func (o Outline2d) Reverse() {
	for i, j := 0, len(o.Vertices)-1; i < j; i, j = i+1, j-1 {
		o.Vertices[i], o.Vertices[j] = o.Vertices[j], o.Vertices[i]
	}
}

// Clone returns a deep copy of the outline.
func (o Outline2d) Clone() Outline2d {
	return NewOutline2d(o.Vertices...)
}
