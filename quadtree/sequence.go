package quadtree

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quadlabs/quadimage/qimage"
)

// Frames renders the reconstruction once per depth, from 0 through the
// realized maximum, in that order. Frame 0 is the whole image as one
// averaged color; the last frame equals a full render. Frames render
// concurrently but the returned slice is always in depth order.
func (t *Tree) Frames(ctx context.Context, drawLines bool) ([]*qimage.Image, error) {
	frames := make([]*qimage.Image, t.maxDepth+1)
	t.logger.Debugf("rendering %d animation frames", len(frames))

	g, ctx := errgroup.WithContext(ctx)
	for depth := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := t.Render(depth, drawLines)
			if err != nil {
				return err
			}
			frames[depth] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}
