package module

// Assignment is one argument of an instantiation as written in the source.
// Name is empty for positional arguments.
type Assignment struct {
	Name string
	Expr Expr
}

// Arg is a convenience constructor for a named literal argument.
func Arg(name string, v Value) Assignment {
	return Assignment{Name: name, Expr: Lit(v)}
}

// Pos is a convenience constructor for a positional literal argument.
func Pos(v Value) Assignment {
	return Assignment{Expr: Lit(v)}
}

// ResolvedArg is an argument after evaluation in the calling context.
type ResolvedArg struct {
	Name  string
	Value Value
}

// EvalContext is the calling side of an instantiation: the scope the
// instantiation appears in and its evaluated arguments.
type EvalContext struct {
	ctx  *Context
	args []ResolvedArg
}

// NewEvalContext evaluates the arguments of inst in ctx.
func NewEvalContext(ctx *Context, inst *ModuleInstantiation) *EvalContext {
	e := &EvalContext{ctx: ctx}
	if inst == nil {
		return e
	}
	e.args = make([]ResolvedArg, len(inst.Args))
	for i, a := range inst.Args {
		v := Undef()
		if a.Expr != nil {
			v = a.Expr.Eval(ctx)
		}
		e.args[i] = ResolvedArg{Name: a.Name, Value: v}
	}
	return e
}

// Context returns the calling scope.
func (e *EvalContext) Context() *Context {
	return e.ctx
}

// Args returns the evaluated arguments in source order.
func (e *EvalContext) Args() []ResolvedArg {
	return e.args
}

// Lookup returns the value of a named argument, falling back to the
// calling scope. Special variables are looked up this way.
func (e *EvalContext) Lookup(name string) Value {
	for i := len(e.args) - 1; i >= 0; i-- {
		if e.args[i].Name == name {
			return e.args[i].Value
		}
	}
	if e.ctx == nil {
		return Undef()
	}
	return e.ctx.Lookup(name)
}
