package node

import "github.com/gogpu/solid/geometry"

// GroupNode collects the geometry of its children without combining it.
// The outlines are concatenated into one unsanitized polygon; resolving
// overlaps is left to the boolean backend or the nonzero fill rule of the
// tessellator.
type GroupNode struct {
	Base
}

// NewGroup creates a group node for the named module ("group", "union").
func NewGroup(name string, children ...Node) *GroupNode {
	g := &GroupNode{Base: NewBase(name)}
	g.AddChildren(children...)
	return g
}

// Params returns the empty string; groups take no arguments.
func (g *GroupNode) Params() string { return "" }

// Evaluate concatenates the outlines of the children.
func (g *GroupNode) Evaluate(children []*geometry.Polygon2d) *geometry.Polygon2d {
	return Merge(children)
}

// Merge concatenates the outlines of polys into a new polygon. A single
// input is copied as is, keeping its sanitized flag.
func Merge(polys []*geometry.Polygon2d) *geometry.Polygon2d {
	if len(polys) == 1 {
		return polys[0].Copy()
	}
	out := geometry.NewPolygon2d()
	for _, p := range polys {
		for _, o := range p.Outlines() {
			out.AddOutline(o.Clone())
		}
	}
	return out
}
