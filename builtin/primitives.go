package builtin

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
)

// square(size = 1, center = false)
func instantiateSquare(inst *module.ModuleInstantiation, args *module.Arguments, _ *module.Children) (node.Node, error) {
	p := args.Parse(inst, "size", "center")

	size := f64.Vec2{1, 1}
	if v := p.Get("size"); !v.IsUndef() {
		s, ok := v.ToSize2()
		if !ok {
			solid.Logger().Warn("square: unable to convert size to a number or vector", "size", v, "location", inst.Location)
		} else {
			size = s
		}
	}
	center := p.Get("center").Truthy()
	params := fmt.Sprintf("size = [%s, %s], center = %t", formatNum(size[0]), formatNum(size[1]), center)

	if !validSize(size[0]) || !validSize(size[1]) {
		return node.NewLeaf("square", params, geometry.NewPolygon2d()), nil
	}

	x1, y1 := 0.0, 0.0
	x2, y2 := size[0], size[1]
	if center {
		x1, y1 = -size[0]/2, -size[1]/2
		x2, y2 = size[0]/2, size[1]/2
	}
	o := geometry.NewOutline2d(
		f64.Vec2{x1, y1},
		f64.Vec2{x2, y1},
		f64.Vec2{x2, y2},
		f64.Vec2{x1, y2},
	)
	return node.NewLeaf("square", params, geometry.FromOutline(o)), nil
}

// circle(r = 1, d, $fn, $fa, $fs)
func instantiateCircle(inst *module.ModuleInstantiation, args *module.Arguments, _ *module.Children) (node.Node, error) {
	p := args.Parse(inst, "r", "d")

	r := 1.0
	if d, ok := p.Get("d").ToNumber(); ok {
		r = d / 2
	} else if v := p.Get("r"); !v.IsUndef() {
		n, ok := v.ToNumber()
		if !ok {
			solid.Logger().Warn("circle: unable to convert r to a number", "r", v, "location", inst.Location)
		} else {
			r = n
		}
	}
	fn := number(p.Get("$fn"), module.DefaultFn)
	fa := number(p.Get("$fa"), module.DefaultFa)
	fs := number(p.Get("$fs"), module.DefaultFs)
	params := fmt.Sprintf("$fn = %s, $fa = %s, $fs = %s, r = %s",
		formatNum(fn), formatNum(fa), formatNum(fs), formatNum(r))

	if !validSize(r) {
		return node.NewLeaf("circle", params, geometry.NewPolygon2d()), nil
	}
	return node.NewLeaf("circle", params, geometry.FromOutline(circleOutline(r, Fragments(r, fn, fs, fa)))), nil
}

// circleOutline returns a counter-clockwise regular n-gon inscribed in a
// circle of radius r, starting on the positive x axis.
func circleOutline(r float64, n int) geometry.Outline2d {
	o := geometry.Outline2d{Vertices: make([]f64.Vec2, n)}
	for i := range n {
		phi := 360.0 * float64(i) / float64(n)
		o.Vertices[i] = geometry.Rotation(phi).Apply(f64.Vec2{r, 0})
	}
	return o
}

// polygon(points, paths = undef, convexity = 1)
func instantiatePolygon(inst *module.ModuleInstantiation, args *module.Arguments, _ *module.Children) (node.Node, error) {
	p := args.Parse(inst, "points", "paths", "convexity")

	pointsArg := p.Get("points")
	pathsArg := p.Get("paths")
	convexity := number(p.Get("convexity"), 1)
	params := fmt.Sprintf("points = %s, paths = %s, convexity = %s", pointsArg, pathsArg, formatNum(convexity))

	points := make([]f64.Vec2, 0, len(pointsArg.Items()))
	for i, v := range pointsArg.Items() {
		pt, ok := v.ToVec2()
		if !ok {
			solid.Logger().Warn("polygon: unable to convert point to a vector of numbers",
				"index", i, "point", v, "location", inst.Location)
			pt = f64.Vec2{}
		}
		points = append(points, pt)
	}

	var outlines []geometry.Outline2d
	if pathsArg.IsUndef() {
		outlines = append(outlines, geometry.NewOutline2d(points...))
	} else {
		for _, path := range pathsArg.Items() {
			var o geometry.Outline2d
			for _, idx := range path.Items() {
				n, ok := idx.ToNumber()
				i := int(n)
				if !ok || n != math.Trunc(n) || i < 0 || i >= len(points) {
					solid.Logger().Warn("polygon: point index out of bounds",
						"index", idx, "points", len(points), "location", inst.Location)
					continue
				}
				o.Vertices = append(o.Vertices, points[i])
			}
			outlines = append(outlines, o)
		}
	}

	poly := geometry.NewPolygon2d()
	for _, o := range orientByNesting(outlines) {
		poly.AddOutline(o)
	}
	return node.NewLeaf("polygon", params, poly), nil
}

// orientByNesting drops degenerate outlines and orients the rest so that
// outlines nested an even number of times run counter-clockwise and the
// others clockwise. Filling the result with the nonzero rule then gives
// the same area as the even-odd rule on the input.
func orientByNesting(outlines []geometry.Outline2d) []geometry.Outline2d {
	var kept []geometry.Outline2d
	for _, o := range outlines {
		if len(o.Vertices) >= 3 && o.SignedArea() != 0 {
			kept = append(kept, o)
		}
	}

	rings := make([]orb.Ring, len(kept))
	for i, o := range kept {
		rings[i] = toRing(o)
	}
	for i, o := range kept {
		depth := 0
		probe := orb.Point(o.Vertices[0])
		for j, r := range rings {
			if i != j && planar.RingContains(r, probe) {
				depth++
			}
		}
		ccw := o.SignedArea() > 0
		if ccw != (depth%2 == 0) {
			o.Reverse()
		}
	}
	return kept
}

func toRing(o geometry.Outline2d) orb.Ring {
	r := make(orb.Ring, 0, len(o.Vertices)+1)
	for _, v := range o.Vertices {
		r = append(r, orb.Point(v))
	}
	return append(r, orb.Point(o.Vertices[0]))
}

func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
