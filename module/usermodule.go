package module

import (
	"fmt"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/node"
)

// Parameter is a formal parameter of a user-defined module. Default may be
// nil, in which case an omitted argument is undef.
type Parameter struct {
	Name    string
	Default Expr
}

// UserModule is a module defined in the language:
//
//	module name(params...) { body... }
//
// Its body is evaluated in a fresh scope nested in the scope that defined
// the module, so free variables in the body resolve lexically.
type UserModule struct {
	Gated
	Name       string
	Parameters []Parameter
	Body       []*ModuleInstantiation
}

// NewUserModule creates a stable user-defined module.
func NewUserModule(name string, params []Parameter, body ...*ModuleInstantiation) *UserModule {
	return &UserModule{Gated: NewGated(feature.Stable()), Name: name, Parameters: params, Body: body}
}

// Instantiate binds the arguments in a child of ctx and evaluates the body
// there. The caller's children are made available to children().
//
// Calls nested deeper than MaxCallDepth log a warning and fail with
// ErrRecursion.
func (m *UserModule) Instantiate(ctx *Context, inst *ModuleInstantiation, evalctx *EvalContext) (node.Node, error) {
	depth := evalctx.Context().CallDepth() + 1
	if depth > MaxCallDepth {
		solid.Logger().Warn("recursion detected calling module", "module", m.Name,
			"location", inst.location(), "depth", depth)
		return nil, fmt.Errorf("%w: %s", ErrRecursion, m.Name)
	}
	scope := ctx.NewChild()
	scope.calls = depth

	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.Name
	}
	params := NewArguments(evalctx).Parse(inst, names...)

	for _, p := range m.Parameters {
		switch {
		case params.Has(p.Name):
			scope.Set(p.Name, params.Get(p.Name))
		case p.Default != nil:
			scope.Set(p.Name, p.Default.Eval(scope))
		default:
			scope.Set(p.Name, Undef())
		}
	}
	// Special variables are dynamically scoped: take them from the call.
	for _, arg := range evalctx.Args() {
		if IsSpecial(arg.Name) {
			scope.Set(arg.Name, arg.Value)
		}
	}
	for _, name := range []string{"$fn", "$fa", "$fs"} {
		if _, ok := scope.vars[name]; !ok {
			if v := evalctx.Lookup(name); !v.IsUndef() {
				scope.Set(name, v)
			}
		}
	}
	scope.SetChildren(NewChildren(inst, evalctx))

	g := node.NewGroup("group")
	for _, b := range m.Body {
		n, err := b.Evaluate(scope)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.AddChildren(n)
		}
	}
	return g, nil
}
