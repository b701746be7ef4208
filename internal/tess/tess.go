// Package tess triangulates sets of planar contours.
//
// Both entry points run a sweep-line tessellator with the nonzero winding
// rule and return counter-clockwise triangles. Constrained may add vertices
// where contours cross; Ordered refuses to, and reports its triangles
// against the caller's own vertex list.
package tess

import (
	"errors"
	"fmt"

	libtess2 "github.com/hajimehoshi/go-libtess2"
	"golang.org/x/image/math/f64"
)

var (
	// ErrTessellation is returned when the sweep fails on the input.
	ErrTessellation = errors.New("tess: tessellation failed")

	// ErrVertexNotPreserved is returned by Ordered when a triangle would
	// need a vertex that is not part of the input.
	ErrVertexNotPreserved = errors.New("tess: triangulation introduced a vertex")
)

// Contour is one closed loop of points.
type Contour []f64.Vec2

// Mesh is a triangulation: indices into Vertices, three per triangle.
type Mesh struct {
	Vertices  []f64.Vec2
	Triangles [][3]int
}

// Constrained triangulates the region enclosed by contours under the
// nonzero rule. Intersections between contours become new vertices; every
// other output vertex is the float64 input vertex it came from.
func Constrained(contours []Contour) (*Mesh, error) {
	f := newFrame(contours)
	if len(f.vertices) == 0 {
		return &Mesh{}, nil
	}
	elems, verts, err := run(f.contours)
	if err != nil {
		return nil, err
	}

	m := &Mesh{Vertices: make([]f64.Vec2, len(verts))}
	for i, v := range verts {
		if idx, ok := f.index[[2]float32{v.X, v.Y}]; ok {
			m.Vertices[i] = f.vertices[idx]
		} else {
			m.Vertices[i] = f.unshift(v)
		}
	}
	m.Triangles = triangles(elems, len(verts))
	m.orient()
	return m, nil
}

// Ordered triangulates like Constrained but the returned mesh holds the
// input vertices unchanged, concatenated in contour order. Input that needs
// extra vertices (crossing contours) yields ErrVertexNotPreserved.
func Ordered(contours []Contour) (*Mesh, error) {
	f := newFrame(contours)
	m := &Mesh{Vertices: f.vertices}
	if len(m.Vertices) == 0 {
		return m, nil
	}

	elems, verts, err := run(f.contours)
	if err != nil {
		return nil, err
	}

	remap := make([]int, len(verts))
	for i, v := range verts {
		idx, ok := f.index[[2]float32{v.X, v.Y}]
		if !ok {
			p := f.unshift(v)
			return nil, fmt.Errorf("%w: (%g, %g)", ErrVertexNotPreserved, p[0], p[1])
		}
		remap[i] = idx
	}
	for _, t := range triangles(elems, len(verts)) {
		m.Triangles = append(m.Triangles, [3]int{remap[t[0]], remap[t[1]], remap[t[2]]})
	}
	m.orient()
	return m, nil
}

// frame is the input as the float32 sweep sees it: translated so the
// bounding box starts at the origin, where float32 spacing is finest.
// index maps a translated float32 point to the first input vertex that
// produced it.
type frame struct {
	origin   f64.Vec2
	vertices []f64.Vec2
	index    map[[2]float32]int
	contours []libtess2.Contour
}

func newFrame(contours []Contour) *frame {
	f := &frame{
		vertices: make([]f64.Vec2, 0, vertexCount(contours)),
		index:    make(map[[2]float32]int),
	}
	first := true
	for _, c := range contours {
		for _, v := range c {
			if first {
				f.origin, first = v, false
				continue
			}
			f.origin[0] = min(f.origin[0], v[0])
			f.origin[1] = min(f.origin[1], v[1])
		}
	}
	for _, c := range contours {
		if len(c) == 0 {
			continue
		}
		lc := make(libtess2.Contour, len(c))
		for i, v := range c {
			key := [2]float32{float32(v[0] - f.origin[0]), float32(v[1] - f.origin[1])}
			if _, ok := f.index[key]; !ok {
				f.index[key] = len(f.vertices)
			}
			f.vertices = append(f.vertices, v)
			lc[i] = libtess2.Vertex{X: key[0], Y: key[1]}
		}
		f.contours = append(f.contours, lc)
	}
	return f
}

// unshift maps a sweep vertex back to input coordinates.
func (f *frame) unshift(v libtess2.Vertex) f64.Vec2 {
	return f64.Vec2{float64(v.X) + f.origin[0], float64(v.Y) + f.origin[1]}
}

func run(cs []libtess2.Contour) ([]int, []libtess2.Vertex, error) {
	elems, verts, err := libtess2.Tesselate(cs, libtess2.WindingRuleNonzero)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTessellation, err)
	}
	return elems, verts, nil
}

// triangles groups element indices into triples, dropping any triple that
// references a vertex out of range (the sweep marks unused slots that way).
func triangles(elems []int, n int) [][3]int {
	out := make([][3]int, 0, len(elems)/3)
	for i := 0; i+2 < len(elems); i += 3 {
		t := [3]int{elems[i], elems[i+1], elems[i+2]}
		if !inRange(t[0], n) || !inRange(t[1], n) || !inRange(t[2], n) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func inRange(i, n int) bool { return i >= 0 && i < n }

// orient makes every triangle counter-clockwise.
func (m *Mesh) orient() {
	for i, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		if (b[0]-a[0])*(c[1]-a[1])-(b[1]-a[1])*(c[0]-a[0]) < 0 {
			m.Triangles[i] = [3]int{t[0], t[2], t[1]}
		}
	}
}

func vertexCount(contours []Contour) int {
	n := 0
	for _, c := range contours {
		n += len(c)
	}
	return n
}
