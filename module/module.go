// Package module implements the instantiation protocol of the modeling
// language: resolving a module name to behavior and invoking it to obtain
// a geometry tree node.
//
// # Module kinds
//
// Anything implementing [AbstractModule] can be instantiated. Two kinds
// ship with the package:
//
//   - [BuiltinModule] adapts a plain Go function.
//   - [UserModule] is a module defined in the language itself.
//
// # Resolution
//
// Names resolve through a [Context] chain, innermost scope first, then
// through the [Registry] attached to the root context. The result is an
// [InstantiableModule] that pairs the module with the scope it was found
// in. [ModuleInstantiation.Evaluate] performs resolution, applies the
// feature gate and instantiates.
package module

import (
	"errors"

	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/node"
)

var (
	// ErrUnknownModule is returned by Resolve for names that are not
	// defined in any scope or in the registry.
	ErrUnknownModule = errors.New("module: unknown module")

	// ErrDisabled is returned by Resolve for experimental modules whose
	// feature flag is off.
	ErrDisabled = errors.New("module: experimental module not enabled")

	// ErrRecursion is returned when nested user module calls exceed
	// MaxCallDepth.
	ErrRecursion = errors.New("module: recursion limit exceeded")
)

// MaxCallDepth bounds the nesting of user module calls.
const MaxCallDepth = 1000

// AbstractModule is a named construct that can be instantiated into a
// geometry tree node.
type AbstractModule interface {
	// IsExperimental reports whether the module is gated on a feature flag.
	IsExperimental() bool

	// IsEnabled reports whether the module may currently be used: true when
	// ungated, otherwise the live state of its flag.
	IsEnabled() bool

	// Instantiate produces a node. ctx is the scope the module was defined
	// in, inst the instantiation being evaluated and evalctx the calling
	// side. The caller owns the returned node. A nil node with a nil error
	// means the instantiation contributes nothing.
	Instantiate(ctx *Context, inst *ModuleInstantiation, evalctx *EvalContext) (node.Node, error)
}

// Gated implements the capability queries of AbstractModule on top of a
// feature.Gate. Module types embed it.
type Gated struct {
	gate feature.Gate
}

// NewGated returns capability queries backed by g.
func NewGated(g feature.Gate) Gated {
	return Gated{gate: g}
}

// Gate returns the feature gate.
func (g Gated) Gate() feature.Gate { return g.gate }

// IsExperimental reports whether the gate holds a feature flag.
func (g Gated) IsExperimental() bool { return g.gate.IsExperimental() }

// IsEnabled reports whether the gate is open right now.
func (g Gated) IsEnabled() bool { return g.gate.IsEnabled() }
