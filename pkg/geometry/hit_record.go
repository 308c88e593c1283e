package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Shape        Shape              // Shape that was hit
	Point        core.Vec3          // Point of intersection
	Normal       core.Vec3          // Unit normal facing the incoming ray
	T            float64            // Parameter t along the ray
	SkipDistance float64            // Distance to travel past the hit to leave the shape
	FrontFace    bool               // Whether ray hit the outside of the surface
	Material     *material.Material // Material of the hit object
}

// SetFaceNormal sets the normal so it opposes the ray and records which side was hit
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Closer returns whichever hit is nearer along the ray. A nil hit is
// infinitely far; on equal distances a is returned.
func Closer(a, b *HitRecord) *HitRecord {
	if a == nil {
		return b
	}
	if b == nil || a.T <= b.T {
		return a
	}
	return b
}

// inInterval reports whether t lies in the open interval (tMin, tMax)
func inInterval(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}
