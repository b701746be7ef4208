package node

import "github.com/gogpu/solid/geometry"

// LeafNode holds geometry produced by a primitive module. Children of a
// leaf are ignored during evaluation.
type LeafNode struct {
	Base
	params  string
	polygon *geometry.Polygon2d
}

// NewLeaf creates a leaf for the named primitive. params is the argument
// list used in tree dumps.
func NewLeaf(name, params string, p *geometry.Polygon2d) *LeafNode {
	return &LeafNode{Base: NewBase(name), params: params, polygon: p}
}

// Params returns the argument text given at construction.
func (l *LeafNode) Params() string { return l.params }

// Polygon returns the geometry held by the leaf.
func (l *LeafNode) Polygon() *geometry.Polygon2d { return l.polygon }

// Evaluate returns a copy of the leaf polygon.
func (l *LeafNode) Evaluate([]*geometry.Polygon2d) *geometry.Polygon2d {
	if l.polygon == nil {
		return geometry.NewPolygon2d()
	}
	return l.polygon.Copy()
}
