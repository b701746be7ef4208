package node

import (
	"fmt"
	"strconv"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid/geometry"
)

// TransformNode applies an affine transform to the union of its children.
type TransformNode struct {
	Base
	Matrix geometry.Transform2d
}

// NewTransform creates a transform node for the named module.
func NewTransform(name string, m geometry.Transform2d) *TransformNode {
	return &TransformNode{Base: NewBase(name), Matrix: m}
}

// Params formats the matrix as the 4x4 homogeneous matrix of the
// equivalent 3D transform.
func (t *TransformNode) Params() string {
	m := t.Matrix.Matrix()
	return fmt.Sprintf("[[%s, %s, 0, %s], [%s, %s, 0, %s], [0, 0, 1, 0], [0, 0, 0, 1]]",
		num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]))
}

// Evaluate merges the children and applies Matrix. An empty merge is
// returned unchanged.
func (t *TransformNode) Evaluate(children []*geometry.Polygon2d) *geometry.Polygon2d {
	p := Merge(children)
	if !p.IsEmpty() {
		p.Transform(t.Matrix)
	}
	return p
}

// ResizeNode scales the union of its children to a target size.
type ResizeNode struct {
	Base
	NewSize  f64.Vec2
	AutoSize [2]bool
}

// NewResize creates a resize node.
func NewResize(newsize f64.Vec2, autosize [2]bool) *ResizeNode {
	return &ResizeNode{Base: NewBase("resize"), NewSize: newsize, AutoSize: autosize}
}

// Params formats the target size and autosize flags.
func (r *ResizeNode) Params() string {
	return fmt.Sprintf("newsize = [%s, %s], auto = [%t, %t]",
		num(r.NewSize[0]), num(r.NewSize[1]), r.AutoSize[0], r.AutoSize[1])
}

// Evaluate merges the children and resizes the result.
func (r *ResizeNode) Evaluate(children []*geometry.Polygon2d) *geometry.Polygon2d {
	p := Merge(children)
	p.Resize(r.NewSize, r.AutoSize)
	return p
}

func num(v float64) string {
	if v == 0 {
		// Avoid printing negative zero.
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
