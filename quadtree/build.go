package quadtree

import (
	"context"
	"image"
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	viamutils "go.viam.com/utils"

	"github.com/quadlabs/quadimage/qimage"
)

// Options configures Build.
type Options struct {
	// MaxDepth is the deepest level subdivision may reach. 0 keeps the
	// whole image as a single region. Depths beyond what the image
	// dimensions support change nothing.
	MaxDepth int
	// Threshold is the detail score at or below which a region stops
	// splitting. 0 splits everything that is not perfectly uniform.
	Threshold float64
	// Logger receives build statistics. Defaults to the global logger.
	Logger golog.Logger
}

// Build constructs a quadtree over the whole image. Subdivision stops at
// a region when it is uniform enough for opts.Threshold, it sits at
// opts.MaxDepth, or it is too small to split again.
func Build(ctx context.Context, img *qimage.Image, opts Options) (*Tree, error) {
	if img == nil {
		return nil, errors.New("cannot build a quadtree from a nil image")
	}
	if img.Width() < 1 || img.Height() < 1 {
		return nil, errors.Errorf("invalid image dimensions (%dx%d) for quadtree", img.Width(), img.Height())
	}
	if opts.MaxDepth < 0 {
		return nil, errors.Errorf("invalid max depth %d for quadtree", opts.MaxDepth)
	}
	if opts.Threshold < 0 || math.IsNaN(opts.Threshold) {
		return nil, errors.Errorf("invalid detail threshold %v for quadtree", opts.Threshold)
	}
	logger := opts.Logger
	if logger == nil {
		logger = golog.Global
	}

	b := &builder{img: img, opts: opts}
	root, err := b.build(ctx, img.Bounds(), 0)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		logger:    logger,
		root:      root,
		bounds:    img.Bounds(),
		opts:      opts,
		maxDepth:  int(b.maxDepth.Load()),
		nodeCount: int(b.nodes.Load()),
		leafCount: int(b.leaves.Load()),
	}
	logger.Debugf("built quadtree with %d nodes (%d leaves) to depth %d", tree.nodeCount, tree.leafCount, tree.maxDepth)
	return tree, nil
}

type builder struct {
	img  *qimage.Image
	opts Options

	nodes    atomic.Int64
	leaves   atomic.Int64
	maxDepth atomic.Int64
}

// build recursively subdivides one region. The root's four subtrees
// build concurrently; everything below runs sequentially on whichever
// goroutine owns the subtree.
func (b *builder) build(ctx context.Context, region image.Rectangle, depth int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := b.newNode(region, depth)
	if b.isLeaf(n) {
		b.recordLeaf(n)
		return n, nil
	}

	quads := quadrants(region)
	n.children = make([]*Node, len(quads))
	if depth > 0 {
		for i, quad := range quads {
			child, err := b.build(ctx, quad, depth+1)
			if err != nil {
				return nil, err
			}
			n.children[i] = child
		}
		return n, nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(quads))
	for i, quad := range quads {
		wg.Add(1)
		viamutils.PanicCapturingGo(func() {
			defer wg.Done()
			n.children[i], errs[i] = b.build(ctx, quad, depth+1)
		})
	}
	wg.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return n, nil
}

func (b *builder) newNode(region image.Rectangle, depth int) *Node {
	avg, detail := AverageColorAndDetail(b.img, region)
	b.nodes.Inc()
	return &Node{region: region, depth: depth, color: avg, detail: detail}
}

func (b *builder) isLeaf(n *Node) bool {
	return n.depth >= b.opts.MaxDepth ||
		n.detail <= b.opts.Threshold ||
		n.region.Dx() < minSplitSize ||
		n.region.Dy() < minSplitSize
}

func (b *builder) recordLeaf(n *Node) {
	b.leaves.Inc()
	storeMax(&b.maxDepth, int64(n.depth))
}

func storeMax(a *atomic.Int64, v int64) {
	for {
		cur := a.Load()
		if v <= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}

// quadrants splits a region into four, in top left, top right, bottom
// left, bottom right order. Odd dimensions leave the extra pixels with
// the right and bottom quadrants.
func quadrants(r image.Rectangle) [4]image.Rectangle {
	midX := r.Min.X + r.Dx()/2
	midY := r.Min.Y + r.Dy()/2
	return [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, midX, midY),
		image.Rect(midX, r.Min.Y, r.Max.X, midY),
		image.Rect(r.Min.X, midY, midX, r.Max.Y),
		image.Rect(midX, midY, r.Max.X, r.Max.Y),
	}
}
