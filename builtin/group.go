package builtin

import (
	"github.com/gogpu/solid"
	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
)

// groupFunc returns the instantiation function of group() and union().
func groupFunc(name string) module.ArgsFunc {
	return func(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
		args.Parse(inst)
		return children.InstantiateInto(node.NewGroup(name))
	}
}

// children(index)
//
// children() expands to the children passed to the enclosing user module.
// It reads its arguments directly because it has no parameters of its own
// beyond an optional index.
func instantiateChildren(inst *module.ModuleInstantiation, evalctx *module.EvalContext) (node.Node, error) {
	ch := evalctx.Context().Children()
	g := node.NewGroup("children")
	if ch == nil {
		solid.Logger().Debug("children() outside of a module", "location", inst.Location)
		return g, nil
	}

	var (
		nodes []node.Node
		err   error
	)
	args := evalctx.Args()
	switch {
	case len(args) == 0:
		nodes, err = ch.Instantiate()
	case len(args) == 1 && args[0].Name == "":
		n, ok := args[0].Value.ToNumber()
		if !ok {
			solid.Logger().Warn("children: index is not a number", "index", args[0].Value, "location", inst.Location)
			return g, nil
		}
		if int(n) < 0 || int(n) >= ch.Len() {
			solid.Logger().Warn("children: index out of bounds",
				"index", n, "children", ch.Len(), "location", inst.Location)
			return g, nil
		}
		nodes, err = ch.InstantiateIndex(int(n))
	default:
		solid.Logger().Warn("children: unexpected arguments", "location", inst.Location)
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	g.AddChildren(nodes...)
	return g, nil
}

// FillNode merges its children and keeps only counter-clockwise outlines,
// removing holes.
type FillNode struct {
	node.Base
}

// NewFill creates a fill node.
func NewFill() *FillNode {
	return &FillNode{Base: node.NewBase("fill")}
}

// Params returns the empty string; fill takes no arguments.
func (f *FillNode) Params() string { return "" }

// Evaluate keeps the counter-clockwise outlines of the merged children.
func (f *FillNode) Evaluate(children []*geometry.Polygon2d) *geometry.Polygon2d {
	merged := node.Merge(children)
	out := geometry.NewPolygon2d()
	for _, o := range merged.Outlines() {
		if o.SignedArea() > 0 {
			out.AddOutline(o)
		}
	}
	return out
}

// fill()
func instantiateFill(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	args.Parse(inst)
	return children.InstantiateInto(NewFill())
}
