// Package quadtree compresses raster images by recursively subdividing
// them into four quadrants until each region is close enough to a single
// averaged color, then renders the subdivision back into images at any
// depth.
package quadtree

import (
	"image"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/quadlabs/quadimage/qimage"
)

const (
	// DefaultMaxDepth bounds subdivision when nothing else is configured.
	DefaultMaxDepth = 8
	// DefaultThreshold is the detail score below which a region is
	// considered uniform enough to keep whole.
	DefaultThreshold = 10.0

	// regions narrower or shorter than this cannot split further
	minSplitSize = 2
)

// Node is a single region of a quadtree. A node either has no children
// and stands in for its whole region, or has exactly four children in
// fixed quadrant order that tile its region with no overlap or gap.
type Node struct {
	region   image.Rectangle
	depth    int
	color    qimage.Color
	detail   float64
	children []*Node
}

// Region returns the rectangle of the source image this node covers.
func (n *Node) Region() image.Rectangle {
	return n.region
}

// Depth returns the node's distance from the root.
func (n *Node) Depth() int {
	return n.depth
}

// Color returns the mean color of the node's region.
func (n *Node) Color() qimage.Color {
	return n.color
}

// Detail returns the heterogeneity score of the node's region.
func (n *Node) Detail() float64 {
	return n.detail
}

// IsLeaf returns whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Children returns the node's children in top left, top right, bottom
// left, bottom right order, or nil for a leaf.
func (n *Node) Children() []*Node {
	return n.children
}

// Tree is a quadtree built from a single image. Once built it is
// read only and safe for concurrent use; renders at different depths
// reuse the same tree.
type Tree struct {
	logger    golog.Logger
	root      *Node
	bounds    image.Rectangle
	opts      Options
	maxDepth  int
	nodeCount int
	leafCount int
}

// Root returns the root node, covering the whole image.
func (t *Tree) Root() *Node {
	return t.root
}

// Bounds returns the bounds of the source image.
func (t *Tree) Bounds() image.Rectangle {
	return t.bounds
}

// MaxDepth returns the depth of the deepest leaf. It can fall short of
// the configured maximum when the image compresses early.
func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// Size returns the total number of nodes in the tree.
func (t *Tree) Size() int {
	return t.nodeCount
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// LeavesAt returns the nodes that stand for whole regions at the given
// depth limit: every leaf shallower than the limit plus every node
// exactly at it, in depth first quadrant order. Their regions tile the
// image exactly.
func (t *Tree) LeavesAt(depthLimit int) ([]*Node, error) {
	if depthLimit < 0 {
		return nil, errors.Errorf("invalid depth limit %d for quadtree", depthLimit)
	}

	var nodes []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() || n.depth == depthLimit {
			nodes = append(nodes, n)
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
	return nodes, nil
}
