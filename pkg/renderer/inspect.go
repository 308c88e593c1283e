package renderer

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/olekukonko/tablewriter"
)

// InspectResult contains information about the surface seen through a pixel
type InspectResult struct {
	X, Y         int
	Ray          core.Ray
	Hit          bool
	HitRecord    *geometry.HitRecord    // Nearest hit, nil on a miss
	GeometryType string                 // "sphere", "plane", "cube" or "unknown"
	Geometry     map[string]interface{} // Shape parameters
	Visibility   []float64              // Fraction of each light's samples reaching the hit point
	Color        core.Vec3              // Traced color of the pixel
}

// lightVisibility is implemented by integrators that can report shadowing
type lightVisibility interface {
	LightVisibility(hit *geometry.HitRecord, light *lights.Light, scene integrator.SceneIndex, depth int, random *rand.Rand) float64
}

// Inspect casts the ray through the center of pixel (x, y) and reports the
// first surface it hits
func (rt *Raytracer) Inspect(x, y int) (InspectResult, error) {
	if x < 0 || x >= rt.config.Width || y < 0 || y >= rt.config.Height {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, rt.config.Width, rt.config.Height)
	}

	depth := rt.scene.GetMaxRecursion()
	ray := rt.camera.GetRay(x, y)

	result := InspectResult{
		X:     x,
		Y:     y,
		Ray:   ray,
		Color: rt.integrator.Trace(ray, rt.scene, depth, rt.inspectRandom()),
	}

	hit, isHit := rt.scene.ClosestHit(ray, core.Epsilon, math.Inf(1))
	if !isHit {
		return result, nil
	}

	result.Hit = true
	result.HitRecord = hit
	result.GeometryType, result.Geometry = geometryInfo(hit.Shape)

	if lv, ok := rt.integrator.(lightVisibility); ok {
		random := rt.inspectRandom()
		for _, light := range rt.scene.GetLights() {
			result.Visibility = append(result.Visibility, lv.LightVisibility(hit, light, rt.scene, depth, random))
		}
	}

	return result, nil
}

// inspectRandom returns a source seeded like the render so that color and
// visibility each start from the same jitter sequence
func (rt *Raytracer) inspectRandom() *rand.Rand {
	return rand.New(rand.NewSource(rt.config.Seed))
}

// geometryInfo extracts the parameters of the known shape types
func geometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = geom.Center
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["normal"] = geom.Normal
		properties["offset"] = geom.Offset
		return "plane", properties

	case *geometry.Cube:
		properties["center"] = geom.Center
		properties["scale"] = geom.Scale
		return "cube", properties

	default:
		return "unknown", properties
	}
}

// materialInfo lists the Phong coefficients of a material
func materialInfo(m *material.Material) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":      m.Diffuse,
		"specular":     m.Specular,
		"reflection":   m.Reflection,
		"shininess":    m.Shininess,
		"transparency": m.Transparency,
	}
}

// Table builds a tabular representation of the inspection result.
func (ir InspectResult) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Category", "Item", "Value"})
	table.Append([]string{"Pixel", "Coordinates", fmt.Sprintf("(%d, %d)", ir.X, ir.Y)})
	table.Append([]string{"", "Direction", ir.Ray.Direction.String()})
	table.Append([]string{"", "Color", ir.Color.String()})

	if !ir.Hit {
		table.SetFooter([]string{"", "Hit", "none"})
		table.Render()
		return buf.String()
	}

	hit := ir.HitRecord
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Hit", "Distance", fmt.Sprintf("%g", hit.T)})
	table.Append([]string{"", "Point", hit.Point.String()})
	table.Append([]string{"", "Normal", hit.Normal.String()})
	table.Append([]string{"", "Front face", fmt.Sprintf("%t", hit.FrontFace)})
	table.Append([]string{" ", " ", " "})
	appendProperties(table, "Geometry", ir.GeometryType, ir.Geometry)
	if hit.Material != nil {
		table.Append([]string{" ", " ", " "})
		appendProperties(table, "Material", "phong", materialInfo(hit.Material))
	}
	if len(ir.Visibility) > 0 {
		table.Append([]string{" ", " ", " "})
		for i, visibility := range ir.Visibility {
			category := ""
			if i == 0 {
				category = "Lights"
			}
			table.Append([]string{category, fmt.Sprintf("Light %d", i+1), fmt.Sprintf("%.1f%% visible", 100*visibility)})
		}
	}

	table.Render()
	return buf.String()
}

func appendProperties(table *tablewriter.Table, category, kind string, properties map[string]interface{}) {
	table.Append([]string{category, "Type", kind})

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		table.Append([]string{"", key, fmt.Sprintf("%v", properties[key])})
	}
}
