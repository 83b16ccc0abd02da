package quadtree

import (
	"image"

	"github.com/quadlabs/quadimage/qimage"
)

var lineColor = qimage.Black

// Render paints the tree back into an image the size of the source.
// Regions deeper than depthLimit collapse into their ancestor at that
// depth; a limit at or beyond MaxDepth reproduces the full tree. With
// drawLines every painted region gets a 1 pixel black border on its
// inside edge.
func (t *Tree) Render(depthLimit int, drawLines bool) (*qimage.Image, error) {
	nodes, err := t.LeavesAt(depthLimit)
	if err != nil {
		return nil, err
	}

	out := qimage.NewImage(t.bounds.Dx(), t.bounds.Dy())
	for _, n := range nodes {
		fillRegion(out, n.region, n.color)
		if drawLines {
			outlineRegion(out, n.region, lineColor)
		}
	}
	return out, nil
}

func fillRegion(img *qimage.Image, r image.Rectangle, c qimage.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetXY(x, y, c)
		}
	}
}

func outlineRegion(img *qimage.Image, r image.Rectangle, c qimage.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetXY(x, r.Min.Y, c)
		img.SetXY(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetXY(r.Min.X, y, c)
		img.SetXY(r.Max.X-1, y, c)
	}
}
