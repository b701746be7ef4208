package module

import "strings"

// Default values of the special variables that control circle resolution.
const (
	DefaultFn = 0.0
	DefaultFa = 12.0
	DefaultFs = 2.0
)

// Context is one lexical scope: variable bindings, locally defined
// modules and a link to the enclosing scope.
//
// Contexts are created top-down from an existing parent, so the parent
// chain always ends at a root and can never loop. A context stays alive as
// long as any child, InstantiableModule or in-flight instantiation refers
// to it.
type Context struct {
	parent   *Context
	registry *Registry
	vars     map[string]Value
	modules  map[string]AbstractModule
	children *Children
	calls    int
}

// NewRootContext creates a top-level context that resolves builtin modules
// through reg and defines the special variables $fn, $fa and $fs.
func NewRootContext(reg *Registry) *Context {
	c := &Context{registry: reg}
	c.Set("$fn", Number(DefaultFn))
	c.Set("$fa", Number(DefaultFa))
	c.Set("$fs", Number(DefaultFs))
	return c
}

// NewChild creates a scope nested in c.
func (c *Context) NewChild() *Context {
	return &Context{parent: c, calls: c.calls}
}

// Parent returns the enclosing scope, or nil for a root context.
func (c *Context) Parent() *Context {
	return c.parent
}

// Root returns the outermost context of the chain.
func (c *Context) Root() *Context {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Set binds a variable in this scope, shadowing outer bindings.
func (c *Context) Set(name string, v Value) {
	if c.vars == nil {
		c.vars = make(map[string]Value)
	}
	c.vars[name] = v
}

// Lookup resolves a variable through the chain. Unknown names are undef.
func (c *Context) Lookup(name string) Value {
	for s := c; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return Undef()
}

// DefineModule binds a module name in this scope.
func (c *Context) DefineModule(name string, m AbstractModule) {
	if c.modules == nil {
		c.modules = make(map[string]AbstractModule)
	}
	c.modules[name] = m
}

// LookupModule resolves a module name. Scopes are searched innermost
// first; the registry of the root context is consulted last. The returned
// binding carries the scope the module was found in.
func (c *Context) LookupModule(name string) (InstantiableModule, bool) {
	for s := c; s != nil; s = s.parent {
		if m, ok := s.modules[name]; ok {
			return InstantiableModule{DefiningContext: s, Module: m}, true
		}
		if s.parent == nil && s.registry != nil {
			if m, ok := s.registry.Lookup(name); ok {
				return InstantiableModule{DefiningContext: s, Module: m}, true
			}
		}
	}
	return InstantiableModule{}, false
}

// SetChildren records the children passed to the user module whose body
// is evaluated in this scope.
func (c *Context) SetChildren(ch *Children) {
	c.children = ch
}

// Children returns the children of the innermost enclosing user module
// instantiation, or nil at top level.
func (c *Context) Children() *Children {
	for s := c; s != nil; s = s.parent {
		if s.children != nil {
			return s.children
		}
	}
	return nil
}

// Depth returns the number of scopes between c and its root.
func (c *Context) Depth() int {
	d := 0
	for s := c.parent; s != nil; s = s.parent {
		d++
	}
	return d
}

// CallDepth returns the number of user module calls that are in progress
// around c. It counts calls, not scopes: a module body runs in a scope
// nested in its definition, not in its caller.
func (c *Context) CallDepth() int {
	return c.calls
}

// IsSpecial reports whether name is a special ($-prefixed) variable.
func IsSpecial(name string) bool {
	return strings.HasPrefix(name, "$")
}
