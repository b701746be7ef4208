package module

import (
	"github.com/gogpu/solid"
	"github.com/gogpu/solid/node"
)

// Arguments is the evaluated argument list handed to builtin modules that
// use the structured call shape.
type Arguments struct {
	args []ResolvedArg
	ctx  *Context
}

// NewArguments captures the arguments of evalctx.
func NewArguments(evalctx *EvalContext) *Arguments {
	return &Arguments{args: evalctx.Args(), ctx: evalctx.Context()}
}

// Len returns the number of arguments.
func (a *Arguments) Len() int { return len(a.args) }

// All returns the arguments in source order.
func (a *Arguments) All() []ResolvedArg { return a.args }

// Parse matches the arguments against the parameter names of a module.
// Positional arguments bind to names in order; named arguments bind by
// name. Special variables are always accepted. Anything else is reported
// as a warning and dropped.
func (a *Arguments) Parse(inst *ModuleInstantiation, names ...string) *Parameters {
	p := &Parameters{values: make(map[string]Value), ctx: a.ctx}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	pos := 0
	for _, arg := range a.args {
		switch {
		case arg.Name == "":
			if pos < len(names) {
				p.values[names[pos]] = arg.Value
			} else {
				solid.Logger().Warn("too many unnamed arguments supplied",
					"module", inst.name(), "location", inst.location())
			}
			pos++
		case known[arg.Name] || IsSpecial(arg.Name):
			p.values[arg.Name] = arg.Value
		default:
			solid.Logger().Warn("variable not specified as parameter",
				"module", inst.name(), "variable", arg.Name, "location", inst.location())
		}
	}
	return p
}

// Parameters are the arguments of one instantiation keyed by parameter
// name.
type Parameters struct {
	values map[string]Value
	ctx    *Context
}

// Get returns a parameter value. Missing special variables fall back to
// the calling scope; other missing parameters are undef.
func (p *Parameters) Get(name string) Value {
	if v, ok := p.values[name]; ok {
		return v
	}
	if IsSpecial(name) && p.ctx != nil {
		return p.ctx.Lookup(name)
	}
	return Undef()
}

// Has reports whether the parameter was supplied.
func (p *Parameters) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Children are the child instantiations of a module instantiation,
// bound to the scope they are evaluated in.
type Children struct {
	insts []*ModuleInstantiation
	ctx   *Context
}

// NewChildren binds the children of inst to the calling scope of evalctx.
func NewChildren(inst *ModuleInstantiation, evalctx *EvalContext) *Children {
	c := &Children{ctx: evalctx.Context()}
	if inst != nil {
		c.insts = inst.Children
	}
	return c
}

// Len returns the number of child instantiations.
func (c *Children) Len() int { return len(c.insts) }

// Empty reports whether there are no children.
func (c *Children) Empty() bool { return len(c.insts) == 0 }

// Instantiate evaluates every child and returns the resulting nodes.
// Children that produce no node (unknown, disabled, '*') are omitted.
func (c *Children) Instantiate() ([]node.Node, error) {
	return c.instantiate(c.insts)
}

// InstantiateIndex evaluates the i-th child only.
func (c *Children) InstantiateIndex(i int) ([]node.Node, error) {
	if i < 0 || i >= len(c.insts) {
		return nil, nil
	}
	return c.instantiate(c.insts[i : i+1])
}

func (c *Children) instantiate(insts []*ModuleInstantiation) ([]node.Node, error) {
	scope := c.ctx.NewChild()
	var out []node.Node
	for _, inst := range insts {
		n, err := inst.Evaluate(scope)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// InstantiateInto evaluates every child and appends the nodes to parent.
func (c *Children) InstantiateInto(parent node.Node) (node.Node, error) {
	nodes, err := c.Instantiate()
	if err != nil {
		return nil, err
	}
	parent.AddChildren(nodes...)
	return parent, nil
}
