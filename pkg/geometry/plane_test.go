package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, testMaterial)

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Point.Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestPlane_Hit_FromBelowFlipsNormal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 2, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if hit.FrontFace || hit.Normal != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected back face with normal (0,-1,0), got front=%v normal=%v", hit.FrontFace, hit.Normal)
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, testMaterial)

	origins := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -3, 0),
		core.NewVec3(5, 0, -2), // lying in the plane
	}
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0, 1),
	}

	for _, origin := range origins {
		for _, direction := range directions {
			ray := core.NewRay(origin, direction)
			if hit, isHit := plane.Hit(ray); isHit {
				t.Errorf("origin %v dir %v: expected miss for parallel ray, got hit at t=%f", origin, direction, hit.T)
			}
			if _, isHit := plane.HitDistance(ray, 0, math.Inf(1)); isHit {
				t.Errorf("origin %v dir %v: expected no distance for parallel ray", origin, direction)
			}
		}
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, testMaterial)

	// Ray shooting up from above (intersection behind ray origin)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray)
	if isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_UnnormalizedNormal(t *testing.T) {
	// 2y = 4 is the plane y = 2
	plane := NewPlane(core.NewVec3(0, 2, 0), 4, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	d, ok := plane.HitDistance(ray, 0, 10)
	if !ok || math.Abs(d-2) > 1e-9 {
		t.Errorf("Expected distance 2, got %f (hit=%v)", d, ok)
	}
}

func TestPlane_Unbounded(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 1), 0, testMaterial)
	if _, ok := plane.BoundingBox(); ok {
		t.Error("Plane should not report a bounding box")
	}
}
