package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// roots solves |O + tD - C|² = r² and returns the two roots in ascending order
func (s *Sphere) roots(ray core.Ray) (t0, t1 float64, ok bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (*HitRecord, bool) {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return nil, false
	}

	// Nearer root unless it lies behind (or on) the origin
	var t, skip float64
	switch {
	case t0 > core.Epsilon:
		t, skip = t0, t1-t0
	case t1 > core.Epsilon:
		t, skip = t1, core.Epsilon
	default:
		return nil, false
	}

	hitRecord := &HitRecord{
		Shape:        s,
		T:            t,
		Point:        ray.At(t),
		SkipDistance: skip,
		Material:     s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Normalize()
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// HitDistance returns the nearest root inside (tMin, tMax)
func (s *Sphere) HitDistance(ray core.Ray, tMin, tMax float64) (float64, bool) {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return 0, false
	}
	if inInterval(t0, tMin, tMax) {
		return t0, true
	}
	if inInterval(t1, tMin, tMax) {
		return t1, true
	}
	return 0, false
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	), true
}
