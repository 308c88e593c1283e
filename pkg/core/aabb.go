package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if the ray's parametric interval [tMin, tMax] overlaps the box
// using the slab method. It relies on ray.InvDirection, where a zero
// direction component is an infinite inverse.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	// NaN from 0*Inf (origin exactly on a slab plane of a parallel axis)
	// fails both comparisons and leaves the interval unchanged.
	var t0, t1 float64

	t0 = (aabb.Min.X - ray.Origin.X) * ray.InvDirection.X
	t1 = (aabb.Max.X - ray.Origin.X) * ray.InvDirection.X
	if ray.InvDirection.X < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	if tMax <= tMin {
		return false
	}

	t0 = (aabb.Min.Y - ray.Origin.Y) * ray.InvDirection.Y
	t1 = (aabb.Max.Y - ray.Origin.Y) * ray.InvDirection.Y
	if ray.InvDirection.Y < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	if tMax <= tMin {
		return false
	}

	t0 = (aabb.Min.Z - ray.Origin.Z) * ray.InvDirection.Z
	t1 = (aabb.Max.Z - ray.Origin.Z) * ray.InvDirection.Z
	if ray.InvDirection.Z < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	return tMax > tMin
}

// Interval returns the entry and exit distances of the ray's line through
// the box. The ray misses when exit < entry.
func (aabb AABB) Interval(ray Ray) (entry, exit float64) {
	t1 := aabb.Min.Subtract(ray.Origin).MultiplyVec(ray.InvDirection)
	t2 := aabb.Max.Subtract(ray.Origin).MultiplyVec(ray.InvDirection)
	return nanMin(t1, t2).MaxComponent(), nanMax(t1, t2).MinComponent()
}

// nanMin and nanMax treat NaN lanes (0*Inf) as unconstrained.
func nanMin(a, b Vec3) Vec3 {
	return Vec3{lane(math.Min(a.X, b.X), math.Inf(-1)), lane(math.Min(a.Y, b.Y), math.Inf(-1)), lane(math.Min(a.Z, b.Z), math.Inf(-1))}
}

func nanMax(a, b Vec3) Vec3 {
	return Vec3{lane(math.Max(a.X, b.X), math.Inf(1)), lane(math.Max(a.Y, b.Y), math.Inf(1)), lane(math.Max(a.Z, b.Z), math.Inf(1))}
}

func lane(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Merge returns the component-wise min/max union of a and b
func Merge(a, b AABB) AABB {
	return a.Union(b)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
