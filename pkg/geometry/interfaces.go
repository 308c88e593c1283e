package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with distance greater than
	// core.Epsilon, including normal and material.
	Hit(ray core.Ray) (*HitRecord, bool)

	// HitDistance returns the nearest intersection distance in the open
	// interval (tMin, tMax) without building a hit record.
	HitDistance(ray core.Ray, tMin, tMax float64) (float64, bool)

	// BoundingBox returns the shape's bounds. Unbounded shapes return false
	// and are never placed in a BVH.
	BoundingBox() (core.AABB, bool)
}
