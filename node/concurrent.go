package node

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/solid/geometry"
)

// EvaluateConcurrent is like Evaluate but evaluates the subtrees below n
// on up to jobs goroutines. Each subtree is evaluated sequentially. The
// result is identical to Evaluate(n). jobs < 1 means no limit.
func EvaluateConcurrent(ctx context.Context, n Node, jobs int) (*geometry.Polygon2d, error) {
	if n == nil {
		return geometry.NewPolygon2d(), nil
	}

	var children []Node
	for _, c := range n.Children() {
		if c != nil && c.Tags()&TagBackground == 0 {
			children = append(children, c)
		}
	}

	geoms := make([]*geometry.Polygon2d, len(children))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, c := range children {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			geoms[i] = Evaluate(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := n.Evaluate(geoms)
	if p == nil {
		return geometry.NewPolygon2d(), nil
	}
	return p, nil
}
