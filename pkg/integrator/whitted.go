package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// WhittedIntegrator implements recursive ray tracing with Phong direct
// lighting, soft shadows, mirror reflection and transparency
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted-style integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{
		config: config,
	}
}

// Trace computes the color for a ray. Every channel of the result lies in [0,1].
func (wi *WhittedIntegrator) Trace(ray core.Ray, scene SceneIndex, depth int, random *rand.Rand) core.Vec3 {
	// Recursion budget exhausted
	if depth < 0 {
		return scene.GetBackground().Clamp(0, 1)
	}

	hit, isHit := scene.ClosestHit(ray, core.Epsilon, math.Inf(1))
	if !isHit {
		return scene.GetBackground().Clamp(0, 1)
	}

	return wi.shade(ray, hit, scene, depth, random)
}

// shade combines direct lighting, transparency and reflection at a hit
func (wi *WhittedIntegrator) shade(ray core.Ray, hit *geometry.HitRecord, scene SceneIndex, depth int, random *rand.Rand) core.Vec3 {
	mat := hit.Material
	direction := ray.Direction.Normalize()

	color := wi.directLighting(hit, direction.Negate(), scene, depth, random)

	if mat.IsTransparent() {
		// Continue along the same ray past the surface
		skip := core.Epsilon
		if wi.config.ProcessInner {
			skip = math.Max(hit.SkipDistance, core.Epsilon)
		}
		through := core.NewRay(ray.At(hit.T+skip), ray.Direction)
		behind := wi.Trace(through, scene, depth-1, random)
		color = behind.Multiply(mat.Transparency).Add(color.Multiply(1 - mat.Transparency))
	}

	if mat.HasReflection() {
		reflected := core.NewRay(wi.offset(hit), direction.Reflect(hit.Normal))
		color = color.Add(wi.Trace(reflected, scene, depth-1, random).MultiplyVec(mat.Reflection))
	}

	return color.Clamp(0, 1)
}

// directLighting sums the shadowed Phong contribution of every light
func (wi *WhittedIntegrator) directLighting(hit *geometry.HitRecord, viewDir core.Vec3, scene SceneIndex, depth int, random *rand.Rand) core.Vec3 {
	var color core.Vec3
	for _, light := range scene.GetLights() {
		visibility := wi.LightVisibility(hit, light, scene, depth, random)
		factor := light.ShadowFactor(visibility)
		if factor <= 0 {
			continue
		}

		lightDir := light.Position.Subtract(hit.Point).Normalize()
		contribution := hit.Material.Shade(light.Color, light.SpecularIntensity, hit.Normal, lightDir, viewDir, wi.config.EstimateReflections)
		color = color.Add(contribution.Multiply(factor))
	}
	return color
}

// LightVisibility returns the fraction of the light's n*n sample grid that
// is visible from the hit point, where n is the scene's shadow ray count.
// In advanced mode partially transparent occluders let light through.
func (wi *WhittedIntegrator) LightVisibility(hit *geometry.HitRecord, light *lights.Light, scene SceneIndex, depth int, random *rand.Rand) float64 {
	origin := wi.offset(hit)
	samples := light.Samples(light.Position.Subtract(hit.Point), scene.GetShadowRays(), random)
	if len(samples) == 0 {
		return 1
	}

	var visible float64
	for _, sample := range samples {
		// Unnormalized so the light sits at t=1
		shadowRay := core.NewRay(origin, sample.Subtract(origin))
		if wi.config.AdvancedShadows {
			visible += wi.transmittance(shadowRay, scene, depth)
		} else if !scene.AnyHit(shadowRay, core.Epsilon, 1-core.Epsilon) {
			visible++
		}
	}

	return visible / float64(len(samples))
}

// transmittance walks the shadow segment t in (0,1) through successive hits,
// multiplying the transparency of each surface crossed
func (wi *WhittedIntegrator) transmittance(ray core.Ray, scene SceneIndex, depth int) float64 {
	transmitted := 1.0
	remaining := 1 - core.Epsilon

	for step := 0; step < max(depth, 1); step++ {
		hit, isHit := scene.ClosestHit(ray, core.Epsilon, remaining)
		if !isHit {
			return transmitted
		}

		transmitted *= hit.Material.Transparency
		if transmitted <= 0 {
			return 0
		}

		// Restart from the hit so the far side of the same shape is found next
		ray = core.NewRay(ray.At(hit.T), ray.Direction)
		remaining -= hit.T
	}

	return transmitted
}

// offset moves the hit point off the surface on the side facing the ray
func (wi *WhittedIntegrator) offset(hit *geometry.HitRecord) core.Vec3 {
	return hit.Point.Add(hit.Normal.Multiply(core.Epsilon))
}
