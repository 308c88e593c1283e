package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Settings contains scene-wide rendering parameters
type Settings struct {
	Background   core.Vec3 // Color returned for rays that escape the scene
	ShadowRays   int       // Shadow grid resolution n (n*n samples per light)
	MaxRecursion int       // Reflection/transparency recursion budget
}

// CameraConfig describes the pinhole camera of a scene
type CameraConfig struct {
	Position       core.Vec3 // Eye position
	LookAt         core.Vec3 // Point the camera looks at
	Up             core.Vec3 // Approximate up direction
	ScreenDistance float64   // Distance from the eye to the screen
	ScreenWidth    float64   // Width of the screen in world units
}

// Scene contains all the elements needed for rendering. It is populated
// once, indexed with BuildAcceleration and read-only afterwards.
type Scene struct {
	Camera    CameraConfig
	Settings  Settings
	Materials []*material.Material // Shared material table
	Shapes    []geometry.Shape     // Objects in the scene
	Lights    []*lights.Light      // Lights in the scene

	finite   []geometry.Shape // Bounded shapes, indexed by the BVH
	infinite []geometry.Shape // Unbounded shapes, scanned linearly
	bvh      *geometry.BVH
	built    bool
}

// ErrNotBuilt is returned by operations that require BuildAcceleration first
var ErrNotBuilt = errors.New("scene acceleration structure not built")

// NewScene creates an empty scene
func NewScene(camera CameraConfig, settings Settings) *Scene {
	return &Scene{
		Camera:    camera,
		Settings:  settings,
		Materials: make([]*material.Material, 0),
		Shapes:    make([]geometry.Shape, 0),
		Lights:    make([]*lights.Light, 0),
	}
}

// AddMaterial appends a material to the material table and returns it
func (s *Scene) AddMaterial(m *material.Material) *material.Material {
	s.Materials = append(s.Materials, m)
	return m
}

// AddShapes appends shapes to the scene
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light *lights.Light) {
	s.Lights = append(s.Lights, light)
}

// BuildAcceleration validates the scene, partitions shapes into bounded and
// unbounded sets and builds the BVH over the bounded ones
func (s *Scene) BuildAcceleration() error {
	if s.Settings.ShadowRays < 1 {
		return fmt.Errorf("shadow ray grid must be at least 1, got %d", s.Settings.ShadowRays)
	}
	if s.Settings.MaxRecursion < 0 {
		return fmt.Errorf("max recursion must be non-negative, got %d", s.Settings.MaxRecursion)
	}
	if bg := s.Settings.Background; bg.MinComponent() < 0 || bg.MaxComponent() > 1 {
		return fmt.Errorf("background color %v outside [0,1]", bg)
	}
	for i, m := range s.Materials {
		if m == nil {
			return fmt.Errorf("material %d is nil", i+1)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("material %d: %w", i+1, err)
		}
	}

	s.finite = s.finite[:0]
	s.infinite = s.infinite[:0]
	for i, shape := range s.Shapes {
		if m, known := shapeMaterial(shape); known && m == nil {
			return fmt.Errorf("shape %d (%T) has no material", i, shape)
		}
		if _, bounded := shape.BoundingBox(); bounded {
			s.finite = append(s.finite, shape)
		} else {
			s.infinite = append(s.infinite, shape)
		}
	}

	s.bvh = geometry.NewBVH(s.finite)
	s.built = true
	return nil
}

// shapeMaterial returns the material referenced by one of the built-in shape types
func shapeMaterial(shape geometry.Shape) (*material.Material, bool) {
	switch obj := shape.(type) {
	case *geometry.Sphere:
		return obj.Material, true
	case *geometry.Plane:
		return obj.Material, true
	case *geometry.Cube:
		return obj.Material, true
	default:
		return nil, false
	}
}

// ClosestHit returns the nearest hit in (tMin, tMax) over both the BVH and
// the unbounded shapes
func (s *Scene) ClosestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord

	if s.bvh != nil {
		if hit, ok := s.bvh.HitClosest(ray, tMin, tMax); ok {
			closest = hit
			tMax = hit.T
		}
	}

	for _, shape := range s.infinite {
		hit, ok := shape.Hit(ray)
		if !ok || hit.T <= tMin || hit.T >= tMax {
			continue
		}
		closest = hit
		tMax = hit.T
	}

	return closest, closest != nil
}

// AnyHit reports whether anything lies in (tMin, tMax) along the ray
func (s *Scene) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	if s.bvh != nil && s.bvh.HitAny(ray, tMin, tMax) {
		return true
	}
	for _, shape := range s.infinite {
		if _, ok := shape.HitDistance(ray, tMin, tMax); ok {
			return true
		}
	}
	return false
}

// GetBackground returns the color of rays that hit nothing
func (s *Scene) GetBackground() core.Vec3 {
	return s.Settings.Background
}

// GetLights returns the lights in the scene
func (s *Scene) GetLights() []*lights.Light {
	return s.Lights
}

// GetShadowRays returns the shadow grid resolution
func (s *Scene) GetShadowRays() int {
	return s.Settings.ShadowRays
}

// GetMaxRecursion returns the recursion budget for primary rays
func (s *Scene) GetMaxRecursion() int {
	return s.Settings.MaxRecursion
}

// GetBVH returns the acceleration structure, nil before BuildAcceleration
func (s *Scene) GetBVH() *geometry.BVH {
	return s.bvh
}

// Stats summarizes the scene contents
type Stats struct {
	Spheres        int
	Planes         int
	Cubes          int
	Other          int
	Materials      int
	Lights         int
	FiniteShapes   int
	InfiniteShapes int
	Bounds         core.AABB
	BVH            geometry.BVHStats
}

// Stats returns shape counts and BVH statistics. The scene must be built.
func (s *Scene) Stats() (Stats, error) {
	if !s.built {
		return Stats{}, ErrNotBuilt
	}

	stats := Stats{
		Materials:      len(s.Materials),
		Lights:         len(s.Lights),
		FiniteShapes:   len(s.finite),
		InfiniteShapes: len(s.infinite),
		BVH:            s.bvh.Stats(),
	}
	for _, shape := range s.Shapes {
		switch shape.(type) {
		case *geometry.Sphere:
			stats.Spheres++
		case *geometry.Plane:
			stats.Planes++
		case *geometry.Cube:
			stats.Cubes++
		default:
			stats.Other++
		}
	}
	if bounds, ok := s.bvh.BoundingBox(); ok {
		stats.Bounds = bounds
	}

	return stats, nil
}
