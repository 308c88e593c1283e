package cmd

import (
	"errors"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// Inspect the surface seen through a single pixel.
func InspectPixel(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 3 {
		return errors.New("expected scene file, x and y arguments")
	}

	x, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil {
		return errors.New("invalid x coordinate")
	}
	y, err := strconv.Atoi(ctx.Args().Get(2))
	if err != nil {
		return errors.New("invalid y coordinate")
	}

	sc, err := LoadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	opts := renderer.Config{
		Width:    ctx.Int("width"),
		Height:   ctx.Int("height"),
		TileSize: 1,
		Seed:     ctx.Int64("seed"),
	}
	r, err := renderer.NewRaytracer(sc, integrator.NewWhittedIntegrator(shadingConfig(ctx)), opts, logger)
	if err != nil {
		return err
	}

	result, err := r.Inspect(x, y)
	if err != nil {
		return err
	}

	logger.Noticef("pixel information:\n%s", result.Table())
	return nil
}
