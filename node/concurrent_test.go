package node

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid/geometry"
)

func TestEvaluateConcurrentMatchesEvaluate(t *testing.T) {
	root := NewGroup("group")
	for i := range 20 {
		x := float64(i) * 3
		sq := geometry.FromOutline(geometry.NewOutline2d(
			f64.Vec2{x, 0}, f64.Vec2{x + 1, 0}, f64.Vec2{x + 1, 1}, f64.Vec2{x, 1},
		))
		tr := NewTransform("translate", geometry.Translation(0, float64(i)))
		tr.AddChildren(NewLeaf("square", "", sq))
		root.AddChildren(tr)
	}
	bg := NewLeaf("square", "", geometry.FromOutline(geometry.NewOutline2d(
		f64.Vec2{-100, -100}, f64.Vec2{-99, -100}, f64.Vec2{-99, -99},
	)))
	bg.SetTags(TagBackground)
	root.AddChildren(bg)

	want := Evaluate(root)
	for _, jobs := range []int{0, 1, 4} {
		got, err := EvaluateConcurrent(context.Background(), root, jobs)
		if err != nil {
			t.Fatalf("EvaluateConcurrent(jobs=%d) error = %v", jobs, err)
		}
		if got.Dump() != want.Dump() {
			t.Errorf("EvaluateConcurrent(jobs=%d) differs from Evaluate", jobs)
		}
	}
}

func TestEvaluateConcurrentCanceled(t *testing.T) {
	root := NewGroup("group", NewLeaf("square", "", geometry.NewPolygon2d()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EvaluateConcurrent(ctx, root, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("EvaluateConcurrent() error = %v, want context.Canceled", err)
	}
}

func TestEvaluateConcurrentNil(t *testing.T) {
	p, err := EvaluateConcurrent(context.Background(), nil, 1)
	if err != nil || !p.IsEmpty() {
		t.Errorf("EvaluateConcurrent(nil) = %v, %v", p, err)
	}
}
