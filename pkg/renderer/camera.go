package renderer

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Camera generates one primary ray per pixel center
type Camera struct {
	origin      core.Vec3
	upperLeft   core.Vec3 // Screen point at the top-left corner of the image
	pixelDeltaU core.Vec3 // Offset between horizontally adjacent pixels
	pixelDeltaV core.Vec3 // Offset between vertically adjacent pixels
}

// NewCamera creates a pinhole camera for an image of the given size. The
// screen height follows the image aspect ratio.
func NewCamera(config scene.CameraConfig, width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("image dimensions must be positive")
	}
	if config.ScreenDistance <= 0 || config.ScreenWidth <= 0 {
		return nil, errors.New("camera screen distance and width must be positive")
	}

	forward := config.LookAt.Subtract(config.Position).Normalize()
	right := forward.Cross(config.Up).Normalize()
	if forward.IsZero() || right.IsZero() {
		return nil, errors.New("camera look-at and up vectors are degenerate")
	}
	up := right.Cross(forward)

	screenHeight := config.ScreenWidth * float64(height) / float64(width)
	horizontal := right.Multiply(config.ScreenWidth)
	vertical := up.Multiply(-screenHeight) // image rows grow downwards

	center := config.Position.Add(forward.Multiply(config.ScreenDistance))
	upperLeft := center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		origin:      config.Position,
		upperLeft:   upperLeft,
		pixelDeltaU: horizontal.Divide(float64(width)),
		pixelDeltaV: vertical.Divide(float64(height)),
	}, nil
}

// GetRay returns the normalized ray through the center of pixel (i, j),
// where row 0 is the top of the image
func (c *Camera) GetRay(i, j int) core.Ray {
	pixel := c.upperLeft.
		Add(c.pixelDeltaU.Multiply(float64(i) + 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + 0.5))

	return core.NewRay(c.origin, pixel.Subtract(c.origin).Normalize())
}
