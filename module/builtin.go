package module

import (
	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/node"
)

// LegacyFunc is the raw call shape of a builtin: it receives the
// instantiation and the calling context and does its own argument handling.
type LegacyFunc func(inst *ModuleInstantiation, evalctx *EvalContext) (node.Node, error)

// ArgsFunc is the structured call shape of a builtin: arguments and
// children are prepared by the adapter.
type ArgsFunc func(inst *ModuleInstantiation, args *Arguments, children *Children) (node.Node, error)

// Signature identifies which call shape a BuiltinModule wraps.
type Signature uint8

const (
	// SignatureLegacy wraps a LegacyFunc.
	SignatureLegacy Signature = iota

	// SignatureArguments wraps an ArgsFunc.
	SignatureArguments
)

// String returns the signature name.
func (s Signature) String() string {
	switch s {
	case SignatureLegacy:
		return "legacy"
	case SignatureArguments:
		return "arguments"
	default:
		return "unknown"
	}
}

// BuiltinModule is a module implemented by a Go function. The call shape
// is fixed when the module is constructed. Builtin modules are immutable
// and may be shared between goroutines.
type BuiltinModule struct {
	Gated
	signature Signature
	legacy    LegacyFunc
	args      ArgsFunc
}

// NewBuiltin wraps a function with the raw call shape.
func NewBuiltin(fn LegacyFunc, gate feature.Gate) *BuiltinModule {
	return &BuiltinModule{Gated: NewGated(gate), signature: SignatureLegacy, legacy: fn}
}

// NewBuiltinWithArgs wraps a function with the structured call shape.
func NewBuiltinWithArgs(fn ArgsFunc, gate feature.Gate) *BuiltinModule {
	return &BuiltinModule{Gated: NewGated(gate), signature: SignatureArguments, args: fn}
}

// Signature returns the wrapped call shape.
func (m *BuiltinModule) Signature() Signature {
	return m.signature
}

// Instantiate calls the wrapped function. The defining context is not
// used: builtins are defined at the root.
func (m *BuiltinModule) Instantiate(_ *Context, inst *ModuleInstantiation, evalctx *EvalContext) (node.Node, error) {
	switch m.signature {
	case SignatureArguments:
		return m.args(inst, NewArguments(evalctx), NewChildren(inst, evalctx))
	default:
		return m.legacy(inst, evalctx)
	}
}
