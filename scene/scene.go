// Package scene loads scene descriptions written in YAML.
//
// A scene is a list of module instantiations plus optional variables and
// user-defined modules:
//
//	vars:
//	  side: 4
//	define:
//	  - module: frame
//	    params:
//	      - name: size
//	        default: 4
//	    body:
//	      - use: square
//	        with: {size: {ref: size}, center: true}
//	objects:
//	  - use: translate
//	    args: [[2, 0]]
//	    modifier: "#"
//	    children:
//	      - use: frame
//	        with: {size: {ref: side}}
//
// Scalars map to numbers, booleans and strings; sequences map to vectors;
// a mapping {ref: name} is a variable reference.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
)

// ErrInvalid is returned for scene files that are valid YAML but do not
// describe a scene.
var ErrInvalid = errors.New("scene: invalid scene")

// file is the YAML document layout.
type file struct {
	Vars    yaml.Node    `yaml:"vars"`
	Define  []definition `yaml:"define"`
	Objects []object     `yaml:"objects"`
}

type definition struct {
	Module string      `yaml:"module"`
	Params []parameter `yaml:"params"`
	Body   []object    `yaml:"body"`
	line   int
}

func (d *definition) UnmarshalYAML(n *yaml.Node) error {
	type raw definition
	if err := n.Decode((*raw)(d)); err != nil {
		return err
	}
	d.line = n.Line
	return nil
}

type parameter struct {
	Name    string    `yaml:"name"`
	Default yaml.Node `yaml:"default"`
}

type object struct {
	Use      string      `yaml:"use"`
	Args     []yaml.Node `yaml:"args"`
	With     yaml.Node   `yaml:"with"`
	Modifier string      `yaml:"modifier"`
	Children []object    `yaml:"children"`
	line     int
}

func (o *object) UnmarshalYAML(n *yaml.Node) error {
	type raw object
	if err := n.Decode((*raw)(o)); err != nil {
		return err
	}
	o.line = n.Line
	return nil
}

// Binding is a top-level variable.
type Binding struct {
	Name string
	Expr module.Expr
}

// Scene is a decoded scene, ready to be evaluated.
type Scene struct {
	Source  string
	Vars    []Binding
	Modules []*module.UserModule
	Objects []*module.ModuleInstantiation
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a scene. source names the scene in locations.
func Parse(data []byte, source string) (*Scene, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", source, err)
	}

	s := &Scene{Source: source}
	if err := s.decodeVars(&f.Vars); err != nil {
		return nil, err
	}
	for _, d := range f.Define {
		m, err := s.decodeDefinition(d)
		if err != nil {
			return nil, err
		}
		s.Modules = append(s.Modules, m)
	}
	objects, err := s.decodeObjects(f.Objects)
	if err != nil {
		return nil, err
	}
	s.Objects = objects
	solid.Logger().Debug("scene loaded", "source", source,
		"vars", len(s.Vars), "modules", len(s.Modules), "objects", len(s.Objects))
	return s, nil
}

// Bind defines the scene's variables and modules in ctx.
func (s *Scene) Bind(ctx *module.Context) {
	for _, b := range s.Vars {
		ctx.Set(b.Name, b.Expr.Eval(ctx))
	}
	for _, m := range s.Modules {
		ctx.DefineModule(m.Name, m)
	}
}

// Evaluate binds the scene in a child of ctx and instantiates every
// top-level object under a single group node.
func (s *Scene) Evaluate(ctx *module.Context) (node.Node, error) {
	scope := ctx.NewChild()
	s.Bind(scope)

	root := node.NewGroup("group")
	for _, inst := range s.Objects {
		n, err := inst.Evaluate(scope)
		if err != nil {
			return nil, err
		}
		if n != nil {
			root.AddChildren(n)
		}
	}
	return root, nil
}

func (s *Scene) decodeVars(n *yaml.Node) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return s.errorf(n.Line, "vars must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		e, err := s.expr(n.Content[i+1])
		if err != nil {
			return err
		}
		s.Vars = append(s.Vars, Binding{Name: n.Content[i].Value, Expr: e})
	}
	return nil
}

func (s *Scene) decodeDefinition(d definition) (*module.UserModule, error) {
	if d.Module == "" {
		return nil, s.errorf(d.line, "module definition without a name")
	}
	params := make([]module.Parameter, len(d.Params))
	for i, p := range d.Params {
		if p.Name == "" {
			return nil, s.errorf(d.line, "parameter %d of %s has no name", i, d.Module)
		}
		def, err := s.expr(&p.Default)
		if err != nil {
			return nil, err
		}
		params[i] = module.Parameter{Name: p.Name, Default: def}
	}
	body, err := s.decodeObjects(d.Body)
	if err != nil {
		return nil, err
	}
	return module.NewUserModule(d.Module, params, body...), nil
}

func (s *Scene) decodeObjects(objs []object) ([]*module.ModuleInstantiation, error) {
	out := make([]*module.ModuleInstantiation, 0, len(objs))
	for _, o := range objs {
		inst, err := s.decodeObject(o)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func (s *Scene) decodeObject(o object) (*module.ModuleInstantiation, error) {
	if o.Use == "" {
		return nil, s.errorf(o.line, "object without a module name")
	}

	var args []module.Assignment
	for i := range o.Args {
		e, err := s.expr(&o.Args[i])
		if err != nil {
			return nil, err
		}
		args = append(args, module.Assignment{Expr: e})
	}
	if o.With.Kind != 0 {
		if o.With.Kind != yaml.MappingNode {
			return nil, s.errorf(o.With.Line, "with must be a mapping")
		}
		for i := 0; i+1 < len(o.With.Content); i += 2 {
			e, err := s.expr(o.With.Content[i+1])
			if err != nil {
				return nil, err
			}
			args = append(args, module.Assignment{Name: o.With.Content[i].Value, Expr: e})
		}
	}

	children, err := s.decodeObjects(o.Children)
	if err != nil {
		return nil, err
	}
	inst := module.Instantiate(o.Use, args, children...)
	inst.Location = fmt.Sprintf("%s:%d", s.Source, o.line)

	for _, c := range o.Modifier {
		switch c {
		case '!':
			inst.Tags |= node.TagRoot
		case '#':
			inst.Tags |= node.TagHighlight
		case '%':
			inst.Tags |= node.TagBackground
		case '*':
			inst.Disabled = true
		default:
			return nil, s.errorf(o.line, "unknown modifier %q", c)
		}
	}
	return inst, nil
}

// expr converts a YAML value into an argument expression. An absent node
// yields nil.
func (s *Scene) expr(n *yaml.Node) (module.Expr, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.AliasNode:
		return s.expr(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return module.Lit(module.Undef()), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, s.errorf(n.Line, "%v", err)
			}
			return module.Lit(module.Bool(b)), nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, s.errorf(n.Line, "%v", err)
			}
			return module.Lit(module.Number(f)), nil
		case "!!str":
			return module.Lit(module.Str(n.Value)), nil
		}
		return nil, s.errorf(n.Line, "unsupported scalar %s", n.ShortTag())
	case yaml.SequenceNode:
		vec := make(module.VectorExpr, len(n.Content))
		for i, c := range n.Content {
			e, err := s.expr(c)
			if err != nil {
				return nil, err
			}
			vec[i] = e
		}
		return vec, nil
	case yaml.MappingNode:
		if len(n.Content) == 2 && n.Content[0].Value == "ref" && n.Content[1].Kind == yaml.ScalarNode {
			return module.Var(n.Content[1].Value), nil
		}
		return nil, s.errorf(n.Line, "mapping values must be {ref: name}")
	}
	return nil, s.errorf(n.Line, "unsupported value")
}

func (s *Scene) errorf(line int, format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrInvalid, s.Source, line, fmt.Sprintf(format, args...))
}
