package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents the infinite plane {P : P·Normal = Offset}
type Plane struct {
	Normal   core.Vec3 // Unit normal
	Offset   float64   // Signed distance from the origin along Normal
	Material *material.Material
}

// NewPlane creates a new plane. The normal is normalized and the offset
// rescaled so the plane stays the same.
func NewPlane(normal core.Vec3, offset float64, material *material.Material) *Plane {
	length := normal.Length()
	if length > 0 {
		normal = normal.Divide(length)
		offset /= length
	}
	return &Plane{
		Normal:   normal,
		Offset:   offset,
		Material: material,
	}
}

// distance solves dot(D,N)·t = offset - dot(O,N)
func (p *Plane) distance(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < core.Epsilon {
		return 0, false
	}

	return (p.Offset - ray.Origin.Dot(p.Normal)) / denominator, true
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (*HitRecord, bool) {
	t, ok := p.distance(ray)
	if !ok || t <= core.Epsilon {
		return nil, false
	}

	hitRecord := &HitRecord{
		Shape:        p,
		T:            t,
		Point:        ray.At(t),
		SkipDistance: core.Epsilon,
		Material:     p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

// HitDistance returns the intersection distance if it lies inside (tMin, tMax)
func (p *Plane) HitDistance(ray core.Ray, tMin, tMax float64) (float64, bool) {
	t, ok := p.distance(ray)
	if !ok || !inInterval(t, tMin, tMax) {
		return 0, false
	}
	return t, true
}

// BoundingBox reports that planes are unbounded
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
