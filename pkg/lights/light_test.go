package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestLight_SamplesLieOnExtent(t *testing.T) {
	light := NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 1, 2)
	random := rand.New(rand.NewSource(42))
	toLight := core.NewVec3(0, 5, 0)

	const n = 5
	samples := light.Samples(toLight, n, random)
	if len(samples) != n*n {
		t.Fatalf("Expected %d samples, got %d", n*n, len(samples))
	}

	for _, s := range samples {
		offset := s.Subtract(light.Position)
		// Perpendicular to the light direction
		if math.Abs(offset.Dot(toLight.Normalize())) > 1e-9 {
			t.Errorf("Sample %v not in the plane facing the shading point", s)
		}
		// Inside the square of side Radius centred on the light
		if math.Abs(offset.X) > light.Radius/2+1e-9 || math.Abs(offset.Z) > light.Radius/2+1e-9 {
			t.Errorf("Sample %v outside the light extent", s)
		}
	}
}

func TestLight_SamplesRestartable(t *testing.T) {
	light := NewLight(core.NewVec3(1, 2, 3), core.NewVec3(1, 1, 1), 1, 1, 1)
	random := rand.New(rand.NewSource(3))

	first := light.Samples(core.NewVec3(1, 1, 0), 3, random)
	second := light.Samples(core.NewVec3(1, 1, 0), 3, random)
	if len(first) != len(second) {
		t.Fatalf("Sample counts differ: %d vs %d", len(first), len(second))
	}
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
		}
	}
	if same {
		t.Error("Expected fresh jitter on each call")
	}
}

func TestLight_ZeroRadiusCollapsesToPosition(t *testing.T) {
	light := NewLight(core.NewVec3(1, 2, 3), core.NewVec3(1, 1, 1), 1, 1, 0)
	random := rand.New(rand.NewSource(1))
	for _, s := range light.Samples(core.NewVec3(0, 0, 1), 2, random) {
		if s != light.Position {
			t.Errorf("Expected sample at light position, got %v", s)
		}
	}
}

func TestLight_ShadowFactor(t *testing.T) {
	tests := []struct {
		name       string
		intensity  float64
		visibility float64
		expected   float64
	}{
		{"fully visible", 0.8, 1, 1},
		{"fully occluded full intensity", 1, 0, 0},
		{"fully occluded partial intensity", 0.25, 0, 0.75},
		{"half visible", 1, 0.5, 0.5},
		{"no shadows", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewLight(core.Vec3{}, core.NewVec3(1, 1, 1), 1, tt.intensity, 1)
			if got := light.ShadowFactor(tt.visibility); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
