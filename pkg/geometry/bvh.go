package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shape       Shape // Leaf payload (nil for internal nodes)
}

// IsLeaf reports whether the node wraps a single shape
func (n *BVHNode) IsLeaf() bool {
	return n.Shape != nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// bvhItem caches a shape's bounds and centroid during construction
type bvhItem struct {
	shape    Shape
	box      core.AABB
	centroid core.Vec3
}

// NewBVH constructs a BVH from every shape that reports a bounding box.
// Unbounded shapes are skipped. The root is nil when nothing is bounded.
func NewBVH(shapes []Shape) *BVH {
	items := make([]bvhItem, 0, len(shapes))
	for _, shape := range shapes {
		box, ok := shape.BoundingBox()
		if !ok {
			continue
		}
		items = append(items, bvhItem{shape: shape, box: box, centroid: box.Center()})
	}

	if len(items) == 0 {
		return &BVH{Root: nil}
	}
	return &BVH{Root: buildBVH(items)}
}

// buildBVH recursively builds the BVH using a median split along the axis of
// greatest centroid variance
func buildBVH(items []bvhItem) *BVHNode {
	switch len(items) {
	case 1:
		return &BVHNode{BoundingBox: items[0].box, Shape: items[0].shape}
	case 2:
		left := buildBVH(items[:1])
		right := buildBVH(items[1:])
		return &BVHNode{BoundingBox: core.Merge(left.BoundingBox, right.BoundingBox), Left: left, Right: right}
	}

	axis := splitAxis(items)

	// Stable so equal centroids keep input order and renders are reproducible
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].centroid.Axis(axis) < items[j].centroid.Axis(axis)
	})

	mid := len(items) / 2
	left := buildBVH(items[:mid])
	right := buildBVH(items[mid:])

	return &BVHNode{
		BoundingBox: core.Merge(left.BoundingBox, right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// splitAxis returns the axis with the greatest centroid variance.
// Ties go to the lower axis.
func splitAxis(items []bvhItem) int {
	n := float64(len(items))

	var mean core.Vec3
	for _, item := range items {
		mean = mean.Add(item.centroid)
	}
	mean = mean.Divide(n)

	var variance core.Vec3
	for _, item := range items {
		d := item.centroid.Subtract(mean)
		variance = variance.Add(d.MultiplyVec(d))
	}

	axis := 0
	if variance.Y > variance.Axis(axis) {
		axis = 1
	}
	if variance.Z > variance.Axis(axis) {
		axis = 2
	}
	return axis
}

// HitClosest returns the closest hit with distance in (tMin, tMax)
func (bvh *BVH) HitClosest(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	hit := hitClosest(bvh.Root, ray, tMin, tMax)
	return hit, hit != nil
}

// hitClosest recursively tests ray intersection with BVH nodes
func hitClosest(node *BVHNode, ray core.Ray, tMin, tMax float64) *HitRecord {
	// First check if ray hits the bounding box
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil
	}

	if node.IsLeaf() {
		hit, ok := node.Shape.Hit(ray)
		if !ok || !inInterval(hit.T, tMin, tMax) {
			return nil
		}
		return hit
	}

	leftHit := hitClosest(node.Left, ray, tMin, tMax)
	if leftHit != nil {
		tMax = leftHit.T
	}

	return Closer(leftHit, hitClosest(node.Right, ray, tMin, tMax))
}

// HitAny reports whether any shape is hit with distance in (tMin, tMax)
func (bvh *BVH) HitAny(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return hitAny(bvh.Root, ray, tMin, tMax)
}

func hitAny(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.IsLeaf() {
		_, ok := node.Shape.HitDistance(ray, tMin, tMax)
		return ok
	}

	return hitAny(node.Left, ray, tMin, tMax) || hitAny(node.Right, ray, tMin, tMax)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	if bvh.Root == nil {
		return core.AABB{}, false
	}
	return bvh.Root.BoundingBox, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.TotalShapes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
