package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box out of planes with a mirror
// sphere and a glass cube inside
func NewCornellScene() *Scene {
	config := CameraConfig{
		Position:       core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:         core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:             core.NewVec3(0, 1, 0),        // Standard up direction
		ScreenDistance: 1,
		ScreenWidth:    0.73, // Roughly a 40 degree field of view
	}

	settings := Settings{
		Background:   core.NewVec3(0, 0, 0), // Black background
		ShadowRays:   5,
		MaxRecursion: 5,
	}

	s := NewScene(config, settings)

	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	red := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05)))
	green := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15)))
	mirror := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(1, 1, 1), core.NewVec3(0.9, 0.9, 0.9), 200, 0))
	glass := s.AddMaterial(material.NewMaterial(
		core.NewVec3(0.1, 0.2, 0.25), core.NewVec3(1, 1, 1), core.NewVec3(0.05, 0.05, 0.05), 80, 0.7))

	// Walls: the box spans [0,555] on every axis and is open toward the camera
	s.AddShapes(
		geometry.NewPlane(core.NewVec3(0, 1, 0), 0, white),   // floor
		geometry.NewPlane(core.NewVec3(0, 1, 0), 555, white), // ceiling
		geometry.NewPlane(core.NewVec3(0, 0, 1), 555, white), // back wall
		geometry.NewPlane(core.NewVec3(1, 0, 0), 555, red),   // left wall
		geometry.NewPlane(core.NewVec3(1, 0, 0), 0, green),   // right wall
	)

	s.AddShapes(
		geometry.NewSphere(core.NewVec3(370, 100, 370), 100, mirror),
		geometry.NewCube(core.NewVec3(185, 82.5, 169), 165, glass),
	)

	// Area light just below the ceiling
	s.AddLight(lights.NewLight(core.NewVec3(278, 540, 278), core.NewVec3(1, 0.95, 0.85), 0.6, 0.85, 130))

	return s
}
