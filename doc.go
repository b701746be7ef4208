// Package solid is a 2D solid modelling kernel with an OpenSCAD style
// module language on top.
//
// # Overview
//
// A model is a tree of module instantiations. Instantiating it against a
// scope of variables and module definitions yields a node tree, and
// evaluating the node tree yields a geometry.Polygon2d: a set of closed
// outlines interpreted with the nonzero winding rule.
//
//	reg, features := builtin.NewLibrary()
//	features.Enable("fill")
//	sc, err := scene.Load("frame.yaml")
//	if err != nil {
//		return err
//	}
//	n, err := sc.Evaluate(module.NewRootContext(reg))
//	if err != nil {
//		return err
//	}
//	p := n.Evaluate()
//	fmt.Println(p.Area(geometry.DefaultRenderSettings()))
//
// # Packages
//
//   - geometry: outlines, polygons, 2D affine transforms, tessellation
//   - geometry/encoding: WKT, WKB and GeoJSON conversion
//   - module: values, expressions, scopes, argument binding, instantiation
//   - builtin: square, circle, polygon, text, transforms, group and fill
//   - node: the evaluated tree and its concurrent evaluator
//   - feature: experimental feature gates
//   - scene: YAML model files
//
// The solid2d command in cmd/solid2d ties them together.
//
// # Logging
//
// Diagnostics are written through [log/slog]. Nothing is logged until a
// logger is installed with [SetLogger].
package solid
