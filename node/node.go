// Package node defines the geometry tree produced by module instantiation.
//
// Leaves carry geometry; inner nodes combine or transform the geometry of
// their children. Evaluate walks a tree depth-first and returns the
// resulting polygon.
package node

import "github.com/gogpu/solid/geometry"

// Tag is a set of modifier characters attached to an instantiation.
type Tag uint8

const (
	// TagRoot ("!") marks the subtree to render in place of the whole tree.
	TagRoot Tag = 1 << iota

	// TagHighlight ("#") renders the subtree normally and highlights it.
	TagHighlight

	// TagBackground ("%") shows the subtree for reference only; it does
	// not contribute geometry.
	TagBackground
)

// String returns the modifier characters in source order.
func (t Tag) String() string {
	var s string
	if t&TagRoot != 0 {
		s += "!"
	}
	if t&TagHighlight != 0 {
		s += "#"
	}
	if t&TagBackground != 0 {
		s += "%"
	}
	return s
}

// Node is an element of the geometry tree. The caller of
// AbstractModule.Instantiate owns the returned node.
type Node interface {
	// Name returns the name of the module that produced the node.
	Name() string

	// Params returns the node's arguments formatted for tree dumps,
	// without parentheses.
	Params() string

	// Children returns the child nodes in order.
	Children() []Node

	// AddChildren appends child nodes.
	AddChildren(children ...Node)

	// Tags returns the modifiers attached to the node.
	Tags() Tag

	// SetTags replaces the modifiers.
	SetTags(t Tag)

	// Evaluate builds this node's geometry from the already evaluated
	// geometry of its children. It must not modify the inputs.
	Evaluate(children []*geometry.Polygon2d) *geometry.Polygon2d
}

// Base implements the bookkeeping part of Node. Concrete nodes embed it.
type Base struct {
	name     string
	children []Node
	tags     Tag
}

// NewBase creates a Base for a node produced by the named module.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the module name the node was created for.
func (b *Base) Name() string { return b.name }

// Children returns the child nodes in instantiation order.
func (b *Base) Children() []Node { return b.children }

// AddChildren appends child nodes.
func (b *Base) AddChildren(children ...Node) { b.children = append(b.children, children...) }

// Tags returns the modifier tags.
func (b *Base) Tags() Tag { return b.tags }

// SetTags replaces the modifier tags.
func (b *Base) SetTags(t Tag) { b.tags = t }

// Evaluate computes the geometry of the tree rooted at n. Children tagged
// as background are skipped. The result is never nil.
func Evaluate(n Node) *geometry.Polygon2d {
	if n == nil {
		return geometry.NewPolygon2d()
	}
	var geoms []*geometry.Polygon2d
	for _, c := range n.Children() {
		if c == nil || c.Tags()&TagBackground != 0 {
			continue
		}
		geoms = append(geoms, Evaluate(c))
	}
	p := n.Evaluate(geoms)
	if p == nil {
		return geometry.NewPolygon2d()
	}
	return p
}

// FindRoot returns the first node in depth-first order tagged with
// TagRoot, or nil if there is none.
func FindRoot(n Node) Node {
	if n == nil {
		return nil
	}
	if n.Tags()&TagRoot != 0 {
		return n
	}
	for _, c := range n.Children() {
		if r := FindRoot(c); r != nil {
			return r
		}
	}
	return nil
}
