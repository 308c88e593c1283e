package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MockScene counts queries made against a wrapped scene
type MockScene struct {
	SceneIndex
	closestCalls int
	anyCalls     int
	rays         []core.Ray
}

func (m *MockScene) ClosestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	m.closestCalls++
	m.rays = append(m.rays, ray)
	return m.SceneIndex.ClosestHit(ray, tMin, tMax)
}

func (m *MockScene) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	m.anyCalls++
	return m.SceneIndex.AnyHit(ray, tMin, tMax)
}

func newTestScene(t *testing.T, background core.Vec3, shadowRays int, shapes []geometry.Shape, sceneLights ...*lights.Light) *scene.Scene {
	t.Helper()
	s := scene.NewScene(scene.CameraConfig{}, scene.Settings{
		Background:   background,
		ShadowRays:   shadowRays,
		MaxRecursion: 5,
	})
	s.AddShapes(shapes...)
	for _, light := range sceneLights {
		s.AddLight(light)
	}
	if err := s.BuildAcceleration(); err != nil {
		t.Fatalf("BuildAcceleration() error: %v", err)
	}
	return s
}

func approxEqual(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestWhittedIntegrator_TerminatesAtNegativeDepth(t *testing.T) {
	background := core.NewVec3(0.2, 0.3, 0.4)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(1, 0, 0)))
	light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 1, 0.5)
	mock := &MockScene{SceneIndex: newTestScene(t, background, 3, []geometry.Shape{sphere}, light)}

	integrator := NewWhittedIntegrator(DefaultConfig())
	random := rand.New(rand.NewSource(1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, depth := range []int{-1, -2, -10} {
		color := integrator.Trace(ray, mock, depth, random)
		if color != background {
			t.Errorf("depth %d: expected background %v, got %v", depth, background, color)
		}
	}
	if mock.closestCalls != 0 || mock.anyCalls != 0 {
		t.Errorf("Expected no scene queries, got %d closest and %d any", mock.closestCalls, mock.anyCalls)
	}

	// Depth 0 performs the primary query
	integrator.Trace(ray, mock, 0, random)
	if mock.closestCalls == 0 {
		t.Error("Expected a scene query at depth 0")
	}
}

func TestWhittedIntegrator_MissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.7, 0.1, 0.3)
	s := newTestScene(t, background, 1, nil)
	integrator := NewWhittedIntegrator(DefaultConfig())

	color := integrator.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3)), s, 5, rand.New(rand.NewSource(1)))
	if color != background {
		t.Errorf("Expected background %v, got %v", background, color)
	}
}

// brightBackground reports a background outside the displayable range
type brightBackground struct {
	SceneIndex
	color core.Vec3
}

func (b brightBackground) GetBackground() core.Vec3 { return b.color }

func TestWhittedIntegrator_MissClampsBackground(t *testing.T) {
	index := brightBackground{SceneIndex: newTestScene(t, core.Vec3{}, 1, nil), color: core.NewVec3(2, 1.5, -3)}
	integrator := NewWhittedIntegrator(DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	want := core.NewVec3(1, 1, 0)

	for _, depth := range []int{5, -1} {
		if color := integrator.Trace(ray, index, depth, rand.New(rand.NewSource(1))); color != want {
			t.Errorf("depth %d: expected %v, got %v", depth, want, color)
		}
	}
}

func TestWhittedIntegrator_ShadowIntensity(t *testing.T) {
	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	blocker := material.NewDiffuse(core.NewVec3(0, 0, 0))
	light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 0, 0.5, 0)
	ray := core.NewRay(core.NewVec3(3, 1, 0), core.NewVec3(-3, -1, 0))

	tests := []struct {
		name     string
		occluded bool
		advanced bool
		expected float64
	}{
		{"unoccluded binary", false, false, 0.8},
		{"unoccluded advanced", false, true, 0.8},
		{"occluded binary", true, false, 0.4},
		{"occluded advanced", true, true, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shapes := []geometry.Shape{geometry.NewPlane(core.NewVec3(0, 1, 0), 0, ground)}
			if tt.occluded {
				shapes = append(shapes, geometry.NewSphere(core.NewVec3(0, 2.5, 0), 0.5, blocker))
			}
			s := newTestScene(t, core.Vec3{}, 2, shapes, light)

			integrator := NewWhittedIntegrator(Config{AdvancedShadows: tt.advanced})
			color := integrator.Trace(ray, s, 3, rand.New(rand.NewSource(1)))

			want := core.NewVec3(tt.expected, tt.expected, tt.expected)
			if !approxEqual(color, want, 1e-6) {
				t.Errorf("Expected %v, got %v", want, color)
			}
		})
	}
}

func TestWhittedIntegrator_AdvancedShadowsAccumulateTransparency(t *testing.T) {
	glass := material.NewMaterial(core.Vec3{}, core.Vec3{}, core.Vec3{}, 1, 0.5)
	occluder := geometry.NewSphere(core.NewVec3(0, 5, 0), 1, glass)
	light := lights.NewLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1), 0, 1, 0)
	s := newTestScene(t, core.Vec3{}, 2, []geometry.Shape{occluder}, light)

	hit := &geometry.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}
	random := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		config   Config
		depth    int
		expected float64
	}{
		{"binary shadows are opaque", Config{}, 5, 0},
		{"both surfaces crossed", Config{AdvancedShadows: true}, 5, 0.25},
		{"walk limited by depth", Config{AdvancedShadows: true}, 1, 0.5},
		{"depth zero still takes one step", Config{AdvancedShadows: true}, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := NewWhittedIntegrator(tt.config)
			visibility := integrator.LightVisibility(hit, light, s, tt.depth, random)
			if math.Abs(visibility-tt.expected) > 1e-9 {
				t.Errorf("Expected visibility %f, got %f", tt.expected, visibility)
			}
		})
	}
}

func TestWhittedIntegrator_SoftShadowVarianceDecreases(t *testing.T) {
	// The occluder covers exactly the x<0 half of the light square
	occluder := geometry.NewCube(core.NewVec3(-2, 2.5, 0), 4, material.NewDiffuse(core.Vec3{}))
	light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 0, 1, 1)
	hit := &geometry.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}
	integrator := NewWhittedIntegrator(Config{})

	estimate := func(n int) (mean, variance float64) {
		s := newTestScene(t, core.Vec3{}, n, []geometry.Shape{occluder}, light)
		random := rand.New(rand.NewSource(int64(n)))

		const trials = 200
		values := make([]float64, trials)
		for i := range values {
			values[i] = integrator.LightVisibility(hit, light, s, 1, random)
			mean += values[i]
		}
		mean /= trials
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		return mean, variance / (trials - 1)
	}

	coarseMean, coarseVar := estimate(3)
	fineMean, fineVar := estimate(9)

	if math.Abs(coarseMean-0.5) > 0.05 || math.Abs(fineMean-0.5) > 0.05 {
		t.Errorf("Expected half visibility, got %f and %f", coarseMean, fineMean)
	}
	if fineVar >= coarseVar {
		t.Errorf("Expected variance to decrease with grid size, got %g (n=3) and %g (n=9)", coarseVar, fineVar)
	}
}

func TestWhittedIntegrator_ReflectionRecursionBudget(t *testing.T) {
	// Two facing mirrors trap the ray until the budget runs out
	mirror := material.NewMaterial(core.Vec3{}, core.Vec3{}, core.NewVec3(0.5, 0.5, 0.5), 1, 0)
	shapes := []geometry.Shape{
		geometry.NewPlane(core.NewVec3(0, 0, 1), -1, mirror),
		geometry.NewPlane(core.NewVec3(0, 0, 1), 1, mirror),
	}
	background := core.NewVec3(1, 1, 1)
	integrator := NewWhittedIntegrator(DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for depth := 0; depth <= 4; depth++ {
		mock := &MockScene{SceneIndex: newTestScene(t, background, 1, shapes)}
		color := integrator.Trace(ray, mock, depth, rand.New(rand.NewSource(1)))

		expected := math.Pow(0.5, float64(depth+1))
		if !approxEqual(color, core.NewVec3(expected, expected, expected), 1e-9) {
			t.Errorf("depth %d: expected %f, got %v", depth, expected, color)
		}
		if mock.closestCalls != depth+1 {
			t.Errorf("depth %d: expected %d closest-hit queries, got %d", depth, depth+1, mock.closestCalls)
		}
	}
}

func TestWhittedIntegrator_ReflectionDirection(t *testing.T) {
	// A mirror tilted 45 degrees turns a -Z ray straight up
	mirror := material.NewMaterial(core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0)
	background := core.NewVec3(0.25, 0.5, 0.75)
	s := newTestScene(t, background, 1, []geometry.Shape{geometry.NewPlane(core.NewVec3(0, 1, 1), -1, mirror)})
	mock := &MockScene{SceneIndex: s}

	integrator := NewWhittedIntegrator(DefaultConfig())
	color := integrator.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), mock, 3, rand.New(rand.NewSource(1)))

	if len(mock.rays) != 2 {
		t.Fatalf("Expected primary and reflected queries, got %d", len(mock.rays))
	}
	reflected := mock.rays[1]
	if !approxEqual(reflected.Direction, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected reflected direction (0,1,0), got %v", reflected.Direction)
	}
	if !approxEqual(reflected.Origin, core.NewVec3(0, 0, -1), 1e-6) || reflected.Origin.Y+reflected.Origin.Z <= -1 {
		t.Errorf("Expected reflected origin just off the mirror, got %v", reflected.Origin)
	}
	if !approxEqual(color, background, 1e-9) {
		t.Errorf("Expected the background seen in the mirror, got %v", color)
	}
}

func TestWhittedIntegrator_Transparency(t *testing.T) {
	// Half transparent black sphere in front of a white background
	glass := material.NewMaterial(core.Vec3{}, core.Vec3{}, core.Vec3{}, 1, 0.5)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, glass)
	background := core.NewVec3(1, 1, 1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		config   Config
		expected float64
	}{
		// Front and back surfaces each halve the light
		{"both surfaces", Config{}, 0.25},
		// The continuation ray skips the sphere's thickness
		{"process inner", Config{ProcessInner: true}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, background, 1, []geometry.Shape{sphere})
			color := NewWhittedIntegrator(tt.config).Trace(ray, s, 2, rand.New(rand.NewSource(1)))

			want := core.NewVec3(tt.expected, tt.expected, tt.expected)
			if !approxEqual(color, want, 1e-9) {
				t.Errorf("Expected %v, got %v", want, color)
			}
		})
	}
}

func TestWhittedIntegrator_TransparencyBlendsDirectLight(t *testing.T) {
	// color = T*behind + (1-T)*direct with direct = 1 and behind = background
	pane := material.NewMaterial(core.NewVec3(1, 1, 1), core.Vec3{}, core.Vec3{}, 1, 0.25)
	plane := geometry.NewPlane(core.NewVec3(0, 0, 1), -2, pane)
	light := lights.NewLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1), 0, 0, 0)
	background := core.NewVec3(0, 0, 0.4)
	s := newTestScene(t, background, 1, []geometry.Shape{plane}, light)

	color := NewWhittedIntegrator(DefaultConfig()).Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, 2, rand.New(rand.NewSource(1)))

	want := core.NewVec3(0.75, 0.75, 0.75+0.25*0.4)
	if !approxEqual(color, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, color)
	}
}

func TestWhittedIntegrator_ColorsAreClamped(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	randomVec := func(scale float64) core.Vec3 {
		return core.NewVec3(random.Float64()*scale, random.Float64()*scale, random.Float64()*scale)
	}

	for trial := 0; trial < 20; trial++ {
		var shapes []geometry.Shape
		for i := 0; i < 8; i++ {
			mat := material.NewMaterial(randomVec(5), randomVec(5), randomVec(3), random.Float64()*100, random.Float64())
			center := core.NewVec3(random.Float64()*8-4, random.Float64()*8-4, -6-random.Float64()*6)
			if i%2 == 0 {
				shapes = append(shapes, geometry.NewSphere(center, 0.5+random.Float64(), mat))
			} else {
				shapes = append(shapes, geometry.NewCube(center, 0.5+random.Float64()*2, mat))
			}
		}
		shapes = append(shapes, geometry.NewPlane(core.NewVec3(0, 1, 0), -5,
			material.NewMaterial(randomVec(5), randomVec(5), randomVec(3), 10, random.Float64())))

		light := lights.NewLight(core.NewVec3(0, 10, 0), randomVec(10), random.Float64()*10, random.Float64(), random.Float64()*2)
		s := newTestScene(t, randomVec(1), 2, shapes, light)

		integrator := NewWhittedIntegrator(Config{
			AdvancedShadows:     trial%2 == 0,
			EstimateReflections: trial%3 == 0,
			ProcessInner:        trial%4 == 0,
		})

		for i := 0; i < 50; i++ {
			dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1)
			color := integrator.Trace(core.NewRay(core.NewVec3(0, 0, 0), dir), s, 4, random)
			for _, v := range []float64{color.X, color.Y, color.Z} {
				if !(v >= 0 && v <= 1) {
					t.Fatalf("trial %d: channel %f outside [0,1] in %v", trial, v, color)
				}
			}
		}
	}
}
