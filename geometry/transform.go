package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform2d is an affine map on the plane stored as a 3x3 homogeneous
// matrix in row-major order:
//
//	| a  b  tx |
//	| c  d  ty |
//	| 0  0  1  |
//
// A transform may be singular; Polygon2d.Transform treats that case as a
// request to remove the geometry.
type Transform2d struct {
	m f64.Mat3
}

// Identity returns the identity transform.
func Identity() Transform2d {
	return Transform2d{m: f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// NewTransform2d wraps a homogeneous matrix.
func NewTransform2d(m f64.Mat3) Transform2d {
	return Transform2d{m: m}
}

// Translation creates a translation by (x, y).
func Translation(x, y float64) Transform2d {
	return Transform2d{m: f64.Mat3{
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	}}
}

// Scaling creates a scale by (x, y).
func Scaling(x, y float64) Transform2d {
	return Transform2d{m: f64.Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}}
}

// Rotation creates a counter-clockwise rotation by deg degrees.
// Multiples of 90 degrees produce exact matrices.
func Rotation(deg float64) Transform2d {
	s, c := sinDegrees(deg), cosDegrees(deg)
	return Transform2d{m: f64.Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}}
}

// Mirror creates a reflection across the line through the origin that is
// perpendicular to (nx, ny). A zero normal yields the identity.
func Mirror(nx, ny float64) Transform2d {
	l := math.Hypot(nx, ny)
	if l == 0 {
		return Identity()
	}
	x, y := nx/l, ny/l
	return Transform2d{m: f64.Mat3{
		1 - 2*x*x, -2 * x * y, 0,
		-2 * x * y, 1 - 2*y*y, 0,
		0, 0, 1,
	}}
}

// Matrix returns the homogeneous matrix.
func (t Transform2d) Matrix() f64.Mat3 {
	return t.m
}

// Determinant returns the determinant of the full 3x3 matrix.
func (t Transform2d) Determinant() float64 {
	m := t.m
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Multiply returns t * other (other is applied first).
func (t Transform2d) Multiply(other Transform2d) Transform2d {
	var r f64.Mat3
	for i := range 3 {
		for j := range 3 {
			r[i*3+j] = t.m[i*3]*other.m[j] + t.m[i*3+1]*other.m[3+j] + t.m[i*3+2]*other.m[6+j]
		}
	}
	return Transform2d{m: r}
}

// Apply maps a point through the affine part of the transform.
func (t Transform2d) Apply(v f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		t.m[0]*v[0] + t.m[1]*v[1] + t.m[2],
		t.m[3]*v[0] + t.m[4]*v[1] + t.m[5],
	}
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform2d) IsIdentity() bool {
	return t.m == Identity().m
}

// sinDegrees and cosDegrees avoid the rounding noise math.Sin produces at
// multiples of 90 degrees, so rotated grids stay on the grid.
func sinDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0, 180:
		return 0
	case 90:
		return 1
	case 270:
		return -1
	}
	return math.Sin(deg * math.Pi / 180)
}

func cosDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 90, 270:
		return 0
	case 0:
		return 1
	case 180:
		return -1
	}
	return math.Cos(deg * math.Pi / 180)
}
