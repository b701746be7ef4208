package module

import (
	"errors"
	"fmt"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/node"
)

// ModuleInstantiation is one use of a module in the source, for example
// `translate([1, 0]) square(2);`.
type ModuleInstantiation struct {
	// Name is the module name as written.
	Name string

	// Args are the arguments in source order.
	Args []Assignment

	// Children are the nested instantiations.
	Children []*ModuleInstantiation

	// Tags are the '!', '#' and '%' modifiers.
	Tags node.Tag

	// Disabled is set by the '*' modifier: the instantiation is skipped.
	Disabled bool

	// Location identifies the instantiation in diagnostics.
	Location string
}

// Instantiate is a convenience constructor.
func Instantiate(name string, args []Assignment, children ...*ModuleInstantiation) *ModuleInstantiation {
	return &ModuleInstantiation{Name: name, Args: args, Children: children}
}

// Resolve looks the module up from ctx and applies the feature gate.
// It returns ErrUnknownModule or ErrDisabled (wrapped) on failure; with
// ErrDisabled the resolved binding is still returned.
func (mi *ModuleInstantiation) Resolve(ctx *Context) (InstantiableModule, error) {
	im, ok := ctx.LookupModule(mi.Name)
	if !ok {
		return InstantiableModule{}, fmt.Errorf("%w: %s", ErrUnknownModule, mi.Name)
	}
	if !im.Module.IsEnabled() {
		return im, fmt.Errorf("%w: %s", ErrDisabled, mi.Name)
	}
	return im, nil
}

// Evaluate resolves and instantiates mi in ctx.
//
// Unknown and disabled modules are not errors at this level: they are
// reported as warnings and produce no node, so the rest of the tree still
// evaluates. Errors returned by a module's Instantiate are propagated.
func (mi *ModuleInstantiation) Evaluate(ctx *Context) (node.Node, error) {
	if mi.Disabled {
		return nil, nil
	}

	im, err := mi.Resolve(ctx)
	switch {
	case errors.Is(err, ErrUnknownModule):
		solid.Logger().Warn("ignoring unknown module", "module", mi.Name, "location", mi.Location)
		return nil, nil
	case errors.Is(err, ErrDisabled):
		attrs := []any{"module", mi.Name, "location", mi.Location}
		if g, ok := im.Module.(interface{ Gate() feature.Gate }); ok {
			if f, ok := g.Gate().Flag(); ok {
				attrs = append(attrs, "feature", f.Name())
			}
		}
		solid.Logger().Warn("experimental module is not enabled", attrs...)
		return nil, nil
	}

	solid.Logger().Debug("instantiate", "module", mi.Name, "experimental", im.Module.IsExperimental(),
		"depth", im.DefiningContext.Depth())

	n, err := im.Instantiate(mi, NewEvalContext(ctx, mi))
	switch {
	case errors.Is(err, ErrRecursion):
		// Not prefixed per level; the error already names the module.
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%s: %w", mi.Name, err)
	}
	if n != nil && mi.Tags != 0 {
		n.SetTags(n.Tags() | mi.Tags)
	}
	return n, nil
}

func (mi *ModuleInstantiation) name() string {
	if mi == nil {
		return ""
	}
	return mi.Name
}

func (mi *ModuleInstantiation) location() string {
	if mi == nil {
		return ""
	}
	return mi.Location
}
