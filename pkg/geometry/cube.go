package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cube represents an axis-aligned cube
type Cube struct {
	Center   core.Vec3 // Center point of the cube
	Scale    float64   // Edge length
	Material *material.Material
	bounds   core.AABB
}

// NewCube creates a cube with the given center and edge length
func NewCube(center core.Vec3, scale float64, material *material.Material) *Cube {
	half := core.NewVec3(scale/2, scale/2, scale/2)
	return &Cube{
		Center:   center,
		Scale:    scale,
		Material: material,
		bounds:   core.NewAABB(center.Subtract(half), center.Add(half)),
	}
}

// Hit tests if a ray intersects with the cube
func (c *Cube) Hit(ray core.Ray) (*HitRecord, bool) {
	entry, exit := c.bounds.Interval(ray)
	if exit < entry || exit < core.Epsilon {
		return nil, false
	}

	// Entry face unless the ray starts inside
	t, skip := exit, core.Epsilon
	if entry > core.Epsilon {
		t, skip = entry, exit-entry
	}

	hitRecord := &HitRecord{
		Shape:        c,
		T:            t,
		Point:        ray.At(t),
		SkipDistance: skip,
		Material:     c.Material,
	}
	hitRecord.SetFaceNormal(ray, c.faceNormal(hitRecord.Point))

	return hitRecord, true
}

// faceNormal picks the axis where the hit point is furthest from the center
// relative to the half extent
func (c *Cube) faceNormal(point core.Vec3) core.Vec3 {
	local := point.Subtract(c.Center).Divide(c.Scale / 2)
	ax, ay, az := math.Abs(local.X), math.Abs(local.Y), math.Abs(local.Z)

	switch {
	case ax >= ay && ax >= az:
		return core.NewVec3(math.Copysign(1, local.X), 0, 0)
	case ay >= az:
		return core.NewVec3(0, math.Copysign(1, local.Y), 0)
	default:
		return core.NewVec3(0, 0, math.Copysign(1, local.Z))
	}
}

// HitDistance returns the nearest face crossing inside (tMin, tMax)
func (c *Cube) HitDistance(ray core.Ray, tMin, tMax float64) (float64, bool) {
	entry, exit := c.bounds.Interval(ray)
	if exit < entry {
		return 0, false
	}
	if inInterval(entry, tMin, tMax) {
		return entry, true
	}
	if inInterval(exit, tMin, tMax) {
		return exit, true
	}
	return 0, false
}

// BoundingBox returns the axis-aligned bounding box for this cube
func (c *Cube) BoundingBox() (core.AABB, bool) {
	return c.bounds, true
}
