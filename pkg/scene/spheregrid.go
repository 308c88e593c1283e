package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0,1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	lms := core.NewVec3(
		l+0.3963377774*a+0.2158037573*b,
		l-0.1055613458*a-0.0638541728*b,
		l-0.0894841775*a-1.2914855480*b,
	)
	lms = lms.MultiplyVec(lms).MultiplyVec(lms)

	rgb := core.NewVec3(
		lms.Dot(core.NewVec3(4.0767416621, -3.3077115913, 0.2309699292)),
		lms.Dot(core.NewVec3(-1.2684380046, 2.6097574011, -0.3413193965)),
		lms.Dot(core.NewVec3(-0.0041960863, -0.7034186147, 1.7076147010)),
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a gridSize x gridSize grid of
// reflective spheres over a ground plane
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}

	cameraConfig := CameraConfig{
		Position:       core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:         core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:             core.NewVec3(0, 1, 0),       // Standard up direction
		ScreenDistance: 1,
		ScreenWidth:    0.73,
	}

	settings := Settings{
		Background:   core.NewVec3(0.5, 0.7, 1.0),
		ShadowRays:   2,
		MaxRecursion: 4,
	}

	s := NewScene(cameraConfig, settings)

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddShapes(geometry.NewPlane(core.NewVec3(0, 1, 0), 0, ground))

	// A bright sun-like light high and to the side
	s.AddLight(lights.NewLight(core.NewVec3(20, 25, 20), core.NewVec3(1, 0.96, 0.9), 1, 0.8, 4))

	// Scale spacing and radius so the grid always covers the same 9x9 area
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			reflectivity := 0.2 + 0.3*float64((i+j)%3)/2.0
			metal := s.AddMaterial(material.NewMaterial(
				color, core.NewVec3(1, 1, 1), color.Multiply(reflectivity), 60, 0))

			s.AddShapes(geometry.NewSphere(core.NewVec3(x, sphereRadius, z), sphereRadius, metal))
		}
	}

	return s
}
