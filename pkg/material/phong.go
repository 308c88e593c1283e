package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to direct light, mirror
// reflection and transmission. Materials are shared read-only by every
// shape that references them.
type Material struct {
	Diffuse      core.Vec3 // Diffuse color
	Specular     core.Vec3 // Specular highlight color
	Reflection   core.Vec3 // Mirror reflection color (zero disables reflection)
	Shininess    float64   // Phong exponent
	Transparency float64   // Fraction of light passing through, in [0,1]
}

// NewMaterial creates a new material
func NewMaterial(diffuse, specular, reflection core.Vec3, shininess, transparency float64) *Material {
	return &Material{
		Diffuse:      diffuse,
		Specular:     specular,
		Reflection:   reflection,
		Shininess:    shininess,
		Transparency: transparency,
	}
}

// NewDiffuse creates a purely diffuse, opaque material
func NewDiffuse(color core.Vec3) *Material {
	return NewMaterial(color, core.Vec3{}, core.Vec3{}, 1, 0)
}

// Validate checks the material parameters are in range
func (m *Material) Validate() error {
	if m.Transparency < 0 || m.Transparency > 1 {
		return fmt.Errorf("transparency %v outside [0,1]", m.Transparency)
	}
	if m.Shininess < 0 {
		return fmt.Errorf("negative shininess %v", m.Shininess)
	}
	return nil
}

// HasReflection returns true if any reflection channel is non-zero
func (m *Material) HasReflection() bool {
	return !m.Reflection.IsZero()
}

// IsTransparent returns true if rays continue through the surface
func (m *Material) IsTransparent() bool {
	return m.Transparency > 0
}

// Shade evaluates the Phong diffuse and specular response to a light.
// normal, lightDir and viewDir must be unit vectors; lightDir points from the
// surface toward the light and viewDir from the surface toward the viewer.
// With estimate set the specular term uses the halfway vector instead of the
// mirrored light direction.
func (m *Material) Shade(lightColor core.Vec3, specularIntensity float64, normal, lightDir, viewDir core.Vec3, estimate bool) core.Vec3 {
	nDotL := math.Max(0, normal.Dot(lightDir))
	diffuse := lightColor.MultiplyVec(m.Diffuse).Multiply(nDotL)

	var highlight float64
	if estimate {
		halfway := lightDir.Add(viewDir).Normalize()
		highlight = normal.Dot(halfway)
	} else {
		reflected := normal.Multiply(2 * normal.Dot(lightDir)).Subtract(lightDir)
		highlight = viewDir.Dot(reflected)
	}
	highlight = math.Max(0, highlight)

	specular := lightColor.MultiplyVec(m.Specular).Multiply(specularIntensity * math.Pow(highlight, m.Shininess))
	return diffuse.Add(specular)
}
