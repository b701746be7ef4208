package module

// Expr is an argument expression evaluated in the calling context. The
// language parser produces richer expressions; this package only needs
// the ability to evaluate them.
type Expr interface {
	Eval(ctx *Context) Value
}

// Literal is an expression that evaluates to a fixed value.
type Literal struct {
	Value Value
}

// Lit wraps a value as an expression.
func Lit(v Value) Literal { return Literal{Value: v} }

// Eval returns the literal value.
func (l Literal) Eval(*Context) Value { return l.Value }

// Var is a variable reference resolved through the context chain.
type Var string

// Eval looks the variable up from ctx. Unbound names are undef.
func (v Var) Eval(ctx *Context) Value { return ctx.Lookup(string(v)) }

// VectorExpr builds a vector from element expressions.
type VectorExpr []Expr

// Eval evaluates every element in ctx.
func (e VectorExpr) Eval(ctx *Context) Value {
	vs := make([]Value, len(e))
	for i, x := range e {
		vs[i] = x.Eval(ctx)
	}
	return Vector(vs...)
}
