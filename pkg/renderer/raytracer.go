package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains the output image configuration
type Config struct {
	Width    int   // Image width in pixels
	Height   int   // Image height in pixels
	TileSize int   // Edge length of a square render tile
	Seed     int64 // Base seed for the per-tile random sources
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:    500,
		Height:   500,
		TileSize: 32,
		Seed:     42,
	}
}

// Validate checks the configuration for unusable values
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("invalid tile size %d", c.TileSize)
	}
	return nil
}

// Raytracer renders a scene one tile at a time
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a raytracer for a scene whose acceleration structure
// has already been built
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator, config Config, logger core.Logger) (*Raytracer, error) {
	if sc == nil || integ == nil {
		return nil, errors.New("raytracer needs a scene and an integrator")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, err := sc.Stats(); err != nil {
		return nil, err
	}

	camera, err := NewCamera(sc.Camera, config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = nopLogger{}
	}

	return &Raytracer{
		scene:      sc,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     logger,
	}, nil
}

// Render traces every pixel and returns the quantized image. Cancelling the
// context stops the render between tiles.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	stats := RenderStats{
		Width:  rt.config.Width,
		Height: rt.config.Height,
	}

	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return img, stats, err
		}

		tileStats := rt.renderTile(tile, img)
		stats.add(tileStats)
		rt.logger.Debugf("tile %d/%d done (%d pixels, %d queries)",
			tile.ID+1, len(tiles), tileStats.TotalPixels, tileStats.ClosestQueries+tileStats.AnyQueries)
	}

	stats.Elapsed = time.Since(start)
	rt.logger.Infof("rendered %dx%d in %v", rt.config.Width, rt.config.Height, stats.Elapsed)
	return img, stats, nil
}

// renderTile traces the pixels of a single tile into the image
func (rt *Raytracer) renderTile(tile *Tile, img *image.RGBA) RenderStats {
	index := &countingIndex{SceneIndex: rt.scene}
	depth := rt.scene.GetMaxRecursion()

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			ray := rt.camera.GetRay(i, j)
			img.SetRGBA(i, j, vec3ToColor(rt.integrator.Trace(ray, index, depth, tile.Random)))
		}
	}

	pixels := tile.Bounds.Dx() * tile.Bounds.Dy()
	return RenderStats{
		Tiles:          1,
		TotalPixels:    pixels,
		PrimaryRays:    pixels,
		ClosestQueries: index.closestHits,
		AnyQueries:     index.anyHits,
	}
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// countingIndex counts the scene queries issued while rendering a tile
type countingIndex struct {
	integrator.SceneIndex
	closestHits int
	anyHits     int
}

func (c *countingIndex) ClosestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	c.closestHits++
	return c.SceneIndex.ClosestHit(ray, tMin, tMax)
}

func (c *countingIndex) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	c.anyHits++
	return c.SceneIndex.AnyHit(ray, tMin, tMax)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})  {}
func (nopLogger) Infof(string, ...interface{})   {}
func (nopLogger) Noticef(string, ...interface{}) {}
