package geometry

import (
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid"
)

// Polygon2d is a planar region made of outlines, some of which may be
// holes. See the package documentation for the meaning of sanitized.
//
// A Polygon2d is not safe for concurrent mutation.
type Polygon2d struct {
	outlines  []Outline2d
	sanitized bool
}

// NewPolygon2d creates an unsanitized polygon holding the given outlines.
func NewPolygon2d(outlines ...Outline2d) *Polygon2d {
	p := &Polygon2d{}
	for _, o := range outlines {
		p.AddOutline(o)
	}
	return p
}

// FromOutline creates a sanitized polygon from a single outline. The caller
// asserts the outline is simple and wound counter-clockwise.
func FromOutline(o Outline2d) *Polygon2d {
	p := &Polygon2d{sanitized: true}
	p.AddOutline(o)
	return p
}

// AddOutline appends an outline.
func (p *Polygon2d) AddOutline(o Outline2d) {
	p.outlines = append(p.outlines, o)
}

// Outlines returns the outlines. The slice aliases the polygon's storage.
func (p *Polygon2d) Outlines() []Outline2d {
	return p.outlines
}

// IsSanitized reports whether the sanitized invariant has been asserted.
func (p *Polygon2d) IsSanitized() bool {
	return p.sanitized
}

// SetSanitized asserts (or retracts) the sanitized invariant. The kernel
// does not check it.
func (p *Polygon2d) SetSanitized(s bool) {
	p.sanitized = s
}

// Copy returns a deep copy of the polygon.
func (p *Polygon2d) Copy() *Polygon2d {
	c := &Polygon2d{
		outlines:  make([]Outline2d, len(p.outlines)),
		sanitized: p.sanitized,
	}
	for i, o := range p.outlines {
		c.outlines[i] = o.Clone()
	}
	return c
}

// IsEmpty reports whether the polygon has no outlines. An outline without
// vertices still counts as an outline.
func (p *Polygon2d) IsEmpty() bool {
	return len(p.outlines) == 0
}

// BoundingBox returns the smallest box enclosing every vertex of every
// outline. An empty polygon yields an empty box.
func (p *Polygon2d) BoundingBox() BoundingBox {
	bbox := EmptyBoundingBox()
	for _, o := range p.outlines {
		bbox.ExtendBox(o.BoundingBox())
	}
	return bbox
}

// MemSize estimates the memory held by the polygon in bytes.
func (p *Polygon2d) MemSize() int {
	mem := 0
	for _, o := range p.outlines {
		mem += len(o.Vertices)*int(unsafe.Sizeof(f64.Vec2{})) + int(unsafe.Sizeof(Outline2d{}))
	}
	mem += int(unsafe.Sizeof(Polygon2d{}))
	return mem
}

// Dump returns a human readable listing of every outline, one block per
// outline. The output is a pure function of the vertex data.
func (p *Polygon2d) Dump() string {
	var sb strings.Builder
	for _, o := range p.outlines {
		sb.WriteString("contour:\n")
		for _, v := range o.Vertices {
			sb.WriteString("  ")
			sb.WriteString(strconv.FormatFloat(v[0], 'g', -1, 64))
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(v[1], 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Transform applies mat to every vertex in place.
//
// A transform with a determinant of exactly zero would collapse the region
// onto a line or a point. Instead, all outlines are discarded and a warning
// is logged; the polygon is left empty.
//
// A reflection (negative determinant) would turn every winding around. The
// vertex order of each outline is reversed after mapping, so filled
// outlines stay counter-clockwise, holes stay clockwise and the sanitized
// flag still holds.
func (p *Polygon2d) Transform(mat Transform2d) {
	det := mat.Determinant()
	if det == 0 {
		solid.Logger().Warn("scaling a 2D object with 0 - removing object",
			"outlines", len(p.outlines))
		p.outlines = nil
		return
	}
	for _, o := range p.outlines {
		for i, v := range o.Vertices {
			o.Vertices[i] = mat.Apply(v)
		}
		if det < 0 {
			o.Reverse()
		}
	}
}

// Resize scales the polygon so its bounding box matches newsize.
//
// An axis with a positive target is scaled by target/current. An axis with
// a zero target keeps scale 1, unless autosize is set for it, in which case
// it takes the scale of the dominant axis: Y when its target is larger than
// X's, X otherwise.
func (p *Polygon2d) Resize(newsize f64.Vec2, autosize [2]bool) {
	if p.IsEmpty() {
		return
	}
	sizes := p.BoundingBox().Sizes()

	maxdim := 0
	if newsize[1] != 0 && newsize[1] > newsize[0] {
		maxdim = 1
	}

	var scale f64.Vec2
	for i := range 2 {
		scale[i] = 1
		if newsize[i] > 0 {
			scale[i] = newsize[i] / sizes[i]
		}
	}

	autoscale := 1.0
	if newsize[maxdim] > 0 {
		autoscale = newsize[maxdim] / sizes[maxdim]
	}
	for i := range 2 {
		if autosize[i] && newsize[i] <= 0 {
			scale[i] = autoscale
		}
	}

	p.Transform(Scaling(scale[0], scale[1]))
}

// IsConvex reports whether the polygon is a single outline that never turns
// clockwise. An empty polygon is convex; any polygon with more than one
// outline is not. The outline is assumed to be simple.
func (p *Polygon2d) IsConvex() bool {
	if len(p.outlines) > 1 {
		return false
	}
	if len(p.outlines) == 0 {
		return true
	}

	pts := p.outlines[0].Vertices
	n := len(pts)
	for i := range n {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		d1 := f64.Vec2{b[0] - a[0], b[1] - a[1]}
		d2 := f64.Vec2{c[0] - b[0], c[1] - b[1]}
		if d1[0]*d2[1]-d1[1]*d2[0] < 0 {
			return false
		}
	}
	return true
}

// Area triangulates the polygon with the backend chosen by s and sums the
// triangle areas. Geometry that cannot be tessellated has area 0.
func (p *Polygon2d) Area(s RenderSettings) float64 {
	ps, err := p.Tessellate(s)
	if err != nil || ps == nil {
		return 0
	}

	var area float64
	for _, tri := range ps.Indices {
		v1, v2, v3 := ps.Vertices[tri[0]], ps.Vertices[tri[1]], ps.Vertices[tri[2]]
		area += 0.5 * (v1[0]*(v2[1]-v3[1]) +
			v2[0]*(v3[1]-v1[1]) +
			v3[0]*(v1[1]-v2[1]))
	}
	return area
}
