package module

import "github.com/gogpu/solid/node"

// InstantiableModule is a resolved module paired with the scope it was
// defined in. The module itself is owned by whoever defined it (the
// registry or a scope); the binding only refers to it.
type InstantiableModule struct {
	DefiningContext *Context
	Module          AbstractModule
}

// Instantiate invokes the module with its defining context.
func (im InstantiableModule) Instantiate(inst *ModuleInstantiation, evalctx *EvalContext) (node.Node, error) {
	return im.Module.Instantiate(im.DefiningContext, inst, evalctx)
}
