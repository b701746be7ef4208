package geometry

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// BoundingBox is an axis-aligned box in 3D. 2D geometry lives in the Z=0
// plane. The zero value is a box around the origin; use EmptyBoundingBox
// for a box that contains nothing.
type BoundingBox struct {
	Min, Max f64.Vec3
}

// EmptyBoundingBox returns a box with Min > Max on every axis.
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: f64.Vec3{inf, inf, inf},
		Max: f64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added to the box.
func (b BoundingBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to contain p.
func (b *BoundingBox) Extend(p f64.Vec3) {
	for i := range 3 {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// ExtendBox grows the box to contain other. Empty boxes are ignored.
func (b *BoundingBox) ExtendBox(other BoundingBox) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Sizes returns the extent along each axis. An empty box has zero size.
func (b BoundingBox) Sizes() f64.Vec3 {
	if b.IsEmpty() {
		return f64.Vec3{}
	}
	return f64.Vec3{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() f64.Vec3 {
	return f64.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Contains reports whether p lies inside the box, boundary included.
func (b BoundingBox) Contains(p f64.Vec3) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// String returns the box as "[minx, miny, minz] - [maxx, maxy, maxz]".
func (b BoundingBox) String() string {
	if b.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("[%g, %g, %g] - [%g, %g, %g]",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}
