package lights

import (
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Light is a point light with a square extent used for soft shadows
type Light struct {
	Position          core.Vec3 // Center of the light
	Color             core.Vec3 // Emitted color
	SpecularIntensity float64   // Scale applied to specular highlights
	ShadowIntensity   float64   // How dark full occlusion is, in [0,1]
	Radius            float64   // Side of the sampled square facing the shading point
}

// NewLight creates a new light
func NewLight(position, color core.Vec3, specularIntensity, shadowIntensity, radius float64) *Light {
	return &Light{
		Position:          position,
		Color:             color,
		SpecularIntensity: specularIntensity,
		ShadowIntensity:   shadowIntensity,
		Radius:            radius,
	}
}

// Samples returns n*n jittered points on the light's extent, oriented
// perpendicular to toLight (the vector from the shading point to the light).
// Each call draws fresh jitter, so the sequence can be restarted at will.
func (l *Light) Samples(toLight core.Vec3, n int, random *rand.Rand) []core.Vec3 {
	tangent, bitangent := core.OrthonormalBasis(toLight.Normalize())
	u := tangent.Multiply(l.Radius)
	v := bitangent.Multiply(l.Radius)
	corner := l.Position.Subtract(u.Add(v).Multiply(0.5))
	return core.StratifiedSquare(corner, u, v, n, random)
}

// ShadowFactor maps a visibility fraction in [0,1] to the multiplier applied
// to this light's contribution. Full occlusion is only black when
// ShadowIntensity is 1.
func (l *Light) ShadowFactor(visibility float64) float64 {
	return 1.0 - l.ShadowIntensity*(1.0-visibility)
}
