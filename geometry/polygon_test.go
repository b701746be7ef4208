package geometry

import (
	"log/slog"
	"math"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid/internal/logtest"
)

func square(x0, y0, size float64) Outline2d {
	return NewOutline2d(
		f64.Vec2{x0, y0},
		f64.Vec2{x0 + size, y0},
		f64.Vec2{x0 + size, y0 + size},
		f64.Vec2{x0, y0 + size},
	)
}

func rect(w, h float64) Outline2d {
	return NewOutline2d(f64.Vec2{0, 0}, f64.Vec2{w, 0}, f64.Vec2{w, h}, f64.Vec2{0, h})
}

func reversed(o Outline2d) Outline2d {
	c := o.Clone()
	c.Reverse()
	return c
}

func TestPolygonIsEmpty(t *testing.T) {
	if !NewPolygon2d().IsEmpty() {
		t.Error("NewPolygon2d().IsEmpty() = false, want true")
	}
	p := NewPolygon2d(Outline2d{})
	if p.IsEmpty() {
		t.Error("polygon with a vertexless outline: IsEmpty() = true, want false")
	}
}

func TestFromOutlineIsSanitized(t *testing.T) {
	p := FromOutline(square(0, 0, 1))
	if !p.IsSanitized() {
		t.Error("FromOutline().IsSanitized() = false, want true")
	}
	if NewPolygon2d(square(0, 0, 1)).IsSanitized() {
		t.Error("NewPolygon2d().IsSanitized() = true, want false")
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	p := NewPolygon2d(
		NewOutline2d(f64.Vec2{-1, 2}, f64.Vec2{3, 2}, f64.Vec2{0, 5}),
		NewOutline2d(f64.Vec2{10, -4}, f64.Vec2{11, -4}, f64.Vec2{11, -3}),
	)
	bbox := p.BoundingBox()
	want := BoundingBox{Min: f64.Vec3{-1, -4, 0}, Max: f64.Vec3{11, 5, 0}}
	if bbox != want {
		t.Fatalf("BoundingBox() = %v, want %v", bbox, want)
	}
	for _, o := range p.Outlines() {
		for _, v := range o.Vertices {
			if !bbox.Contains(f64.Vec3{v[0], v[1], 0}) {
				t.Errorf("vertex %v outside bounding box %v", v, bbox)
			}
		}
	}
	if again := p.BoundingBox(); again != bbox {
		t.Errorf("second BoundingBox() = %v, want %v", again, bbox)
	}
}

func TestPolygonBoundingBoxEmpty(t *testing.T) {
	bbox := NewPolygon2d().BoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("empty polygon BoundingBox() = %v, want empty", bbox)
	}
	bbox = NewPolygon2d(Outline2d{}).BoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("vertexless outline BoundingBox() = %v, want empty", bbox)
	}
}

func TestPolygonDump(t *testing.T) {
	p := NewPolygon2d(
		NewOutline2d(f64.Vec2{0, 0}, f64.Vec2{1.5, 0}, f64.Vec2{1, -2}),
		NewOutline2d(f64.Vec2{3, 3}),
	)
	want := "contour:\n  0 0  1.5 0  1 -2\ncontour:\n  3 3\n"
	got := p.Dump()
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
	if again := p.Dump(); again != got {
		t.Errorf("second Dump() = %q, want %q", again, got)
	}
}

func TestPolygonMemSize(t *testing.T) {
	empty := NewPolygon2d().MemSize()
	one := NewPolygon2d(square(0, 0, 1)).MemSize()
	two := NewPolygon2d(square(0, 0, 1), square(2, 2, 1)).MemSize()
	if empty <= 0 {
		t.Errorf("empty MemSize() = %d, want > 0", empty)
	}
	if one <= empty || two <= one {
		t.Errorf("MemSize() not increasing: %d, %d, %d", empty, one, two)
	}
	if two-one != one-empty {
		t.Errorf("per-outline MemSize() delta differs: %d vs %d", two-one, one-empty)
	}
}

func TestPolygonTransformScale(t *testing.T) {
	p := NewPolygon2d(square(1, 1, 1), NewOutline2d(f64.Vec2{0, 0}, f64.Vec2{2, 0}, f64.Vec2{0, 3}))
	orig := p.Copy()

	p.Transform(Scaling(2, 2))

	if len(p.Outlines()) != len(orig.Outlines()) {
		t.Fatalf("outline count = %d, want %d", len(p.Outlines()), len(orig.Outlines()))
	}
	for i, o := range p.Outlines() {
		want := orig.Outlines()[i].Vertices
		if len(o.Vertices) != len(want) {
			t.Fatalf("outline %d vertex count = %d, want %d", i, len(o.Vertices), len(want))
		}
		for j, v := range o.Vertices {
			if v[0] != 2*want[j][0] || v[1] != 2*want[j][1] {
				t.Errorf("outline %d vertex %d = %v, want %v", i, j, v, f64.Vec2{2 * want[j][0], 2 * want[j][1]})
			}
		}
	}
}

func TestPolygonTransformDegenerate(t *testing.T) {
	rec := logtest.Install(t)

	p := NewPolygon2d(square(0, 0, 1), square(3, 3, 1))
	p.Transform(Scaling(1, 0))

	if !p.IsEmpty() {
		t.Errorf("IsEmpty() after zero-determinant transform = false, want true")
	}
	if n := rec.Count(slog.LevelWarn); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

func TestPolygonTransformReflectionKeepsWinding(t *testing.T) {
	tests := []struct {
		name string
		m    Transform2d
	}{
		{"mirror x", Mirror(1, 0)},
		{"mirror y", Mirror(0, 1)},
		{"negative scale", Scaling(-2, 1)},
		{"mirror then rotate", Rotation(30).Multiply(Mirror(1, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromOutline(square(0, 0, 4))
			p.AddOutline(reversed(square(1, 1, 2)))
			p.Transform(tt.m)

			if !p.IsSanitized() {
				t.Error("IsSanitized() after reflection = false, want true")
			}
			if a := p.Outlines()[0].SignedArea(); a <= 0 {
				t.Errorf("filled outline SignedArea() = %v, want positive", a)
			}
			if a := p.Outlines()[1].SignedArea(); a >= 0 {
				t.Errorf("hole SignedArea() = %v, want negative", a)
			}
		})
	}
}

func TestPolygonTransformReflectionMapsVertices(t *testing.T) {
	p := NewPolygon2d(square(0, 0, 2))
	p.Transform(Mirror(1, 0))
	want := []f64.Vec2{{0, 2}, {-2, 2}, {-2, 0}, {0, 0}}
	got := p.Outlines()[0].Vertices
	if len(got) != len(want) {
		t.Fatalf("vertices = %v, want %v", got, want)
	}
	for i := range want {
		if !almostEqual(got[i][0], want[i][0]) || !almostEqual(got[i][1], want[i][1]) {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPolygonResize(t *testing.T) {
	tests := []struct {
		name     string
		newsize  f64.Vec2
		autosize [2]bool
		want     f64.Vec3
	}{
		{"autosize y follows x", f64.Vec2{2, 0}, [2]bool{false, true}, f64.Vec3{2, 2, 0}},
		{"autosize x follows y", f64.Vec2{0, 3}, [2]bool{true, false}, f64.Vec3{3, 3, 0}},
		{"no autosize", f64.Vec2{2, 0}, [2]bool{false, false}, f64.Vec3{2, 1, 0}},
		{"both explicit", f64.Vec2{4, 5}, [2]bool{true, true}, f64.Vec3{4, 5, 0}},
		{"nothing requested", f64.Vec2{0, 0}, [2]bool{true, true}, f64.Vec3{1, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolygon2d(square(0, 0, 1))
			p.Resize(tt.newsize, tt.autosize)
			if got := p.BoundingBox().Sizes(); got != tt.want {
				t.Errorf("Resize(%v, %v) size = %v, want %v", tt.newsize, tt.autosize, got, tt.want)
			}
		})
	}
}

func TestPolygonResizeDominantAxis(t *testing.T) {
	// The autosized axis takes the factor of the sized one, not its size.
	p := NewPolygon2d(rect(2, 1))
	p.Resize(f64.Vec2{4, 0}, [2]bool{false, true})
	if got := p.BoundingBox().Sizes(); got != (f64.Vec3{4, 2, 0}) {
		t.Errorf("size = %v, want [4 2 0]", got)
	}

	p = NewPolygon2d(rect(2, 1))
	p.Resize(f64.Vec2{0, 3}, [2]bool{true, false})
	if got := p.BoundingBox().Sizes(); got != (f64.Vec3{6, 3, 0}) {
		t.Errorf("size = %v, want [6 3 0]", got)
	}
}

func TestPolygonIsConvex(t *testing.T) {
	reflex := NewOutline2d(
		f64.Vec2{0, 0}, f64.Vec2{4, 0}, f64.Vec2{4, 4},
		f64.Vec2{2, 1}, // pushed inward: reflex corner
		f64.Vec2{0, 4},
	)
	tests := []struct {
		name string
		p    *Polygon2d
		want bool
	}{
		{"empty", NewPolygon2d(), true},
		{"ccw square", NewPolygon2d(square(0, 0, 1)), true},
		{"ccw triangle", NewPolygon2d(NewOutline2d(f64.Vec2{0, 0}, f64.Vec2{1, 0}, f64.Vec2{0, 1})), true},
		{"collinear vertex", NewPolygon2d(NewOutline2d(f64.Vec2{0, 0}, f64.Vec2{1, 0}, f64.Vec2{2, 0}, f64.Vec2{2, 2})), true},
		{"cw square", NewPolygon2d(reversed(square(0, 0, 1))), false},
		{"reflex vertex", NewPolygon2d(reflex), false},
		{"two outlines", NewPolygon2d(square(0, 0, 1), square(5, 5, 1)), false},
		{"outline with hole", NewPolygon2d(square(0, 0, 4), reversed(square(1, 1, 2))), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsConvex(); got != tt.want {
				t.Errorf("IsConvex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutlineSignedArea(t *testing.T) {
	if got := rect(4, 3).SignedArea(); got != 12 {
		t.Errorf("ccw SignedArea() = %v, want 12", got)
	}
	if got := reversed(rect(4, 3)).SignedArea(); got != -12 {
		t.Errorf("cw SignedArea() = %v, want -12", got)
	}
}

func TestPolygonCopyIsDeep(t *testing.T) {
	p := NewPolygon2d(square(0, 0, 1))
	c := p.Copy()
	c.Transform(Translation(5, 5))
	if p.Outlines()[0].Vertices[0] != (f64.Vec2{0, 0}) {
		t.Errorf("original vertex = %v after transforming copy, want [0 0]", p.Outlines()[0].Vertices[0])
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
