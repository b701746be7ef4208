package builtin

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
)

// transformed instantiates children under a transform node.
func transformed(name string, m geometry.Transform2d, children *module.Children) (node.Node, error) {
	return children.InstantiateInto(node.NewTransform(name, m))
}

// translate(v)
func instantiateTranslate(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "v")
	v, ok := vectorArg(p.Get("v"), 0)
	if !ok && !p.Get("v").IsUndef() {
		solid.Logger().Warn("translate: unable to convert v to a vector", "v", p.Get("v"), "location", inst.Location)
	}
	return transformed("translate", geometry.Translation(v[0], v[1]), children)
}

// scale(v)
func instantiateScale(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "v")
	v := f64.Vec2{1, 1}
	arg := p.Get("v")
	if n, ok := arg.ToNumber(); ok {
		v = f64.Vec2{n, n}
	} else if s, ok := vectorArg(arg, 1); ok {
		v = s
	} else if !arg.IsUndef() {
		solid.Logger().Warn("scale: unable to convert v to a number or vector", "v", arg, "location", inst.Location)
	}
	return transformed("scale", geometry.Scaling(v[0], v[1]), children)
}

// rotate(a, v)
//
// Only rotation about the z axis stays in the plane. For a vector a the z
// component is used; for a number a with an axis v, v must be parallel to z.
func instantiateRotate(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "a", "v")
	a := p.Get("a")

	angle := 0.0
	switch {
	case a.Kind() == module.KindVector:
		items := a.Items()
		if len(items) >= 3 {
			angle = number(items[2], 0)
		}
		if (len(items) >= 1 && number(items[0], 0) != 0) || (len(items) >= 2 && number(items[1], 0) != 0) {
			solid.Logger().Warn("rotate: rotation about x or y ignored for 2D geometry", "a", a, "location", inst.Location)
		}
	case a.Kind() == module.KindNumber:
		angle, _ = a.ToNumber()
		if axis := p.Get("v"); !axis.IsUndef() {
			sign, ok := zAxisSign(axis)
			if !ok {
				solid.Logger().Warn("rotate: axis is not parallel to z, ignoring rotation", "v", axis, "location", inst.Location)
				angle = 0
			}
			angle *= sign
		}
	case !a.IsUndef():
		solid.Logger().Warn("rotate: unable to convert a to a number or vector", "a", a, "location", inst.Location)
	}
	return transformed("rotate", geometry.Rotation(angle), children)
}

// zAxisSign returns +1 or -1 if the 3D vector v points along +z or -z.
func zAxisSign(v module.Value) (float64, bool) {
	items := v.Items()
	var xyz [3]float64
	for i := 0; i < len(items) && i < 3; i++ {
		n, ok := items[i].ToNumber()
		if !ok {
			return 0, false
		}
		xyz[i] = n
	}
	if xyz[0] != 0 || xyz[1] != 0 || xyz[2] == 0 {
		return 0, false
	}
	return math.Copysign(1, xyz[2]), true
}

// mirror(v = [1, 0])
func instantiateMirror(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "v")
	v := f64.Vec2{1, 0}
	if arg := p.Get("v"); !arg.IsUndef() {
		n, ok := vectorArg(arg, 0)
		if !ok {
			solid.Logger().Warn("mirror: unable to convert v to a vector", "v", arg, "location", inst.Location)
		} else {
			v = n
		}
	}
	return transformed("mirror", geometry.Mirror(v[0], v[1]), children)
}

// multmatrix(m)
//
// m is a 4x4 matrix; the entries acting on x, y and the translation column
// are used. A 3x3 matrix is read as a 2D homogeneous transform.
func instantiateMultmatrix(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "m")
	mat := geometry.Identity().Matrix()

	rows := p.Get("m").Items()
	if len(rows) == 0 && !p.Get("m").IsUndef() {
		solid.Logger().Warn("multmatrix: unable to convert m to a matrix", "m", p.Get("m"), "location", inst.Location)
	}
	for r := 0; r < len(rows) && r < 2; r++ {
		cols := rows[r].Items()
		tcol := 3
		if len(cols) == 3 {
			tcol = 2
		}
		for c, dst := range [3]int{0, 1, tcol} {
			if dst < len(cols) {
				if n, ok := cols[dst].ToNumber(); ok {
					mat[r*3+c] = n
				}
			}
		}
	}
	return transformed("multmatrix", geometry.NewTransform2d(mat), children)
}

// resize(newsize, auto = false)
func instantiateResize(inst *module.ModuleInstantiation, args *module.Arguments, children *module.Children) (node.Node, error) {
	p := args.Parse(inst, "newsize", "auto")

	var newsize f64.Vec2
	if arg := p.Get("newsize"); !arg.IsUndef() {
		s, ok := arg.ToSize2()
		if !ok {
			solid.Logger().Warn("resize: unable to convert newsize to a vector", "newsize", arg, "location", inst.Location)
		} else {
			newsize = s
		}
	}

	var autosize [2]bool
	auto := p.Get("auto")
	if auto.Kind() == module.KindVector {
		for i, v := range auto.Items() {
			if i < 2 {
				autosize[i] = v.Truthy()
			}
		}
	} else {
		autosize[0] = auto.Truthy()
		autosize[1] = autosize[0]
	}

	return children.InstantiateInto(node.NewResize(newsize, autosize))
}

// vectorArg reads a 2D vector. A one-element vector sets x and leaves y at
// fill; anything else that is not a vector of numbers fails.
func vectorArg(v module.Value, fill float64) (f64.Vec2, bool) {
	if pt, ok := v.ToVec2(); ok {
		return pt, true
	}
	items := v.Items()
	if v.Kind() == module.KindVector && len(items) == 1 {
		if x, ok := items[0].ToNumber(); ok {
			return f64.Vec2{x, fill}, true
		}
	}
	return f64.Vec2{fill, fill}, false
}
