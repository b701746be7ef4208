// Package builtin implements the module library available to every scene:
// 2D primitives, transformations, grouping and text.
//
// Register adds the library to a module.Registry. Experimental modules are
// gated on flags registered in the feature.Set passed to Register and stay
// disabled until the flag is turned on.
package builtin

import (
	"math"
	"strconv"

	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/module"
)

// FeatureFill is the flag that enables the experimental fill() module.
const FeatureFill = "fill"

// gridFine is the smallest radius that still gets a real polygon.
const gridFine = 0.00000095367431640625

// minFragmentParam bounds $fa and $fs from below.
const minFragmentParam = 0.01

// Register adds every builtin module to reg. Flags for experimental modules
// are created in features.
func Register(reg *module.Registry, features *feature.Set) {
	stable := feature.Stable()

	reg.Register("square", module.NewBuiltinWithArgs(instantiateSquare, stable))
	reg.Register("circle", module.NewBuiltinWithArgs(instantiateCircle, stable))
	reg.Register("polygon", module.NewBuiltinWithArgs(instantiatePolygon, stable))
	reg.Register("text", module.NewBuiltinWithArgs(instantiateText, stable))

	reg.Register("translate", module.NewBuiltinWithArgs(instantiateTranslate, stable))
	reg.Register("scale", module.NewBuiltinWithArgs(instantiateScale, stable))
	reg.Register("rotate", module.NewBuiltinWithArgs(instantiateRotate, stable))
	reg.Register("mirror", module.NewBuiltinWithArgs(instantiateMirror, stable))
	reg.Register("multmatrix", module.NewBuiltinWithArgs(instantiateMultmatrix, stable))
	reg.Register("resize", module.NewBuiltinWithArgs(instantiateResize, stable))

	reg.Register("group", module.NewBuiltinWithArgs(groupFunc("group"), stable))
	reg.Register("union", module.NewBuiltinWithArgs(groupFunc("union"), stable))
	reg.Register("children", module.NewBuiltin(instantiateChildren, stable))

	fill := features.Register(FeatureFill, "fill() removes holes from its children")
	reg.Register("fill", module.NewBuiltinWithArgs(instantiateFill, feature.Experimental(fill)))
}

// NewLibrary returns a registry holding the builtin modules together with
// the feature set that gates them.
func NewLibrary() (*module.Registry, *feature.Set) {
	reg := module.NewRegistry()
	features := feature.NewSet()
	Register(reg, features)
	return reg, features
}

// Fragments returns the number of segments used to approximate a full
// circle of radius r.
func Fragments(r, fn, fs, fa float64) int {
	if r < gridFine || math.IsInf(fn, 0) || math.IsNaN(fn) {
		return 3
	}
	if fn > 0 {
		if fn >= 3 {
			return int(fn)
		}
		return 3
	}
	fa = math.Max(fa, minFragmentParam)
	fs = math.Max(fs, minFragmentParam)
	return int(math.Ceil(math.Max(math.Min(360.0/fa, r*2*math.Pi/fs), 5)))
}

func number(v module.Value, def float64) float64 {
	if n, ok := v.ToNumber(); ok {
		return n
	}
	return def
}

func formatNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
