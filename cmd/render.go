package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/urfave/cli"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// imageEncoder writes an image in a specific file format
type imageEncoder func(w io.Writer, img image.Image) error

var imageEncoders = map[string]imageEncoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// encoderFor selects the encoder matching the file extension of path.
func encoderFor(path string) (imageEncoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	encoder, ok := imageEncoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q (use .png, .bmp or .tiff)", ext)
	}
	return encoder, nil
}

// shadingConfig builds the integrator options shared by render and inspect.
func shadingConfig(ctx *cli.Context) integrator.Config {
	return integrator.Config{
		AdvancedShadows:     !ctx.Bool("fast-shadows"),
		EstimateReflections: ctx.Bool("estimate-reflections"),
		ProcessInner:        ctx.Bool("process-inner"),
	}
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return errors.New("expected a scene file argument and an optional output image")
	}

	ref := ctx.Args().First()
	out := ctx.Args().Get(1)
	if out == "" {
		out = defaultOutputPath(ref, time.Now())
	}

	encoder, err := encoderFor(out)
	if err != nil {
		return err
	}

	sc, err := LoadScene(ref)
	if err != nil {
		return err
	}

	opts := renderer.Config{
		Width:    ctx.Int("width"),
		Height:   ctx.Int("height"),
		TileSize: ctx.Int("tile-size"),
		Seed:     ctx.Int64("seed"),
	}
	shading := shadingConfig(ctx)
	logger.Infof("rendering %s at %dx%d (advanced shadows: %t, estimate reflections: %t, process inner: %t)",
		ref, opts.Width, opts.Height, shading.AdvancedShadows, shading.EstimateReflections, shading.ProcessInner)

	r, err := renderer.NewRaytracer(sc, integrator.NewWhittedIntegrator(shading), opts, logger)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := r.Render(renderCtx)
	if err != nil {
		return fmt.Errorf("render aborted: %w", err)
	}

	if err := saveImage(out, img, encoder); err != nil {
		return err
	}

	// Display stats
	logger.Noticef("render statistics:\n%s", stats.Table())
	logger.Noticef("wrote %s", out)

	return nil
}

// saveImage writes the image to path, creating parent directories as needed.
func saveImage(path string, img image.Image, encode imageEncoder) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("error encoding image: %w", err)
	}
	return file.Close()
}
