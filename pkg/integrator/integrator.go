package integrator

import (
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// SceneIndex is the read-only view of a scene the integrator traces against
type SceneIndex interface {
	// ClosestHit returns the nearest hit with distance in (tMin, tMax)
	ClosestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool)

	// AnyHit reports whether anything lies in (tMin, tMax) along the ray
	AnyHit(ray core.Ray, tMin, tMax float64) bool

	GetBackground() core.Vec3
	GetLights() []*lights.Light
	GetShadowRays() int
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color seen along a ray with the given recursion
	// budget. It is safe for concurrent use as long as each caller owns its
	// random source.
	Trace(ray core.Ray, scene SceneIndex, depth int, random *rand.Rand) core.Vec3
}

// Config holds the shading switches exposed on the command line
type Config struct {
	AdvancedShadows     bool // Shadow rays accumulate transparency instead of a binary test
	EstimateReflections bool // Specular highlights use the halfway vector
	ProcessInner        bool // Transparent continuation rays skip the hit's thickness
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{AdvancedShadows: true}
}
