package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a cube and a ground plane
func NewDefaultScene() *Scene {
	cameraConfig := CameraConfig{
		Position:       core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:         core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:             core.NewVec3(0, 1, 0),    // Standard up direction
		ScreenDistance: 1,
		ScreenWidth:    0.75,
	}

	settings := Settings{
		Background:   core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		ShadowRays:   4,
		MaxRecursion: 6,
	}

	s := NewScene(cameraConfig, settings)

	// Create materials
	ground := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.48, 0.48, 0.1), core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.1, 0.1, 0.1), 10, 0))
	red := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(1, 1, 1), core.NewVec3(0.05, 0.05, 0.05), 50, 0))
	silver := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(1, 1, 1), core.NewVec3(0.8, 0.8, 0.8), 100, 0))
	gold := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.5, 0.38, 0.1), core.NewVec3(0.9, 0.8, 0.5), core.NewVec3(0.4, 0.3, 0.1), 30, 0))
	glass := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(1, 1, 1), core.NewVec3(0.1, 0.1, 0.1), 120, 0.85))
	blue := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 0.2, 0.5)))

	s.AddShapes(
		geometry.NewPlane(core.NewVec3(0, 1, 0), 0, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.4), 0.25, glass),
		geometry.NewCube(core.NewVec3(-0.5, 0.15, -0.4), 0.3, blue),
	)

	s.AddLight(lights.NewLight(core.NewVec3(3, 5, 2), core.NewVec3(1, 1, 1), 1, 0.9, 1.0))
	s.AddLight(lights.NewLight(core.NewVec3(-4, 3, 1), core.NewVec3(0.3, 0.3, 0.4), 0.5, 0.5, 0.5))

	return s
}
