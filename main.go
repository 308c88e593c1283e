package main

import (
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/urfave/cli"
)

// Integrator switches accepted by render and inspect
var shadingFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "fast-shadows",
		Usage: "treat every occluder as opaque instead of accumulating transparency",
	},
	cli.BoolFlag{
		Name:  "estimate-reflections",
		Usage: "use the halfway vector for specular highlights",
	},
	cli.BoolFlag{
		Name:  "process-inner",
		Usage: "skip through the thickness of transparent surfaces",
	},
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes using recursive Whitted ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG, BMP or TIFF image",
			Description: `
Load a scene file (or a built-in scene such as builtin:cornell-box), build its
BVH and trace one ray per pixel with soft shadows, reflection and transparency.

When no output image is given the frame is written to
output/<scene>/render_<timestamp>.png. The output format follows the
file extension (.png, .bmp, .tif or .tiff).`,
			ArgsUsage: "scene_file [output_image]",
			Action:    cmd.RenderFrame,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 500,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 500,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "edge length of a render tile",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for soft shadow sampling",
				},
			}, shadingFlags...),
		},
		{
			Name:        "info",
			Usage:       "display scene statistics",
			Description: `Load a scene, build its BVH and print shape, BVH and lighting statistics.`,
			ArgsUsage:   "scene_file",
			Action:      cmd.SceneInfo,
		},
		{
			Name:        "inspect",
			Usage:       "describe the surface seen through a pixel",
			Description: `Cast the camera ray through the center of pixel (x, y) and print the hit shape, its material and how much of each light reaches it.`,
			ArgsUsage:   "scene_file x y",
			Action:      cmd.InspectPixel,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 500,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 500,
					Usage: "frame height",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for soft shadow sampling",
				},
			}, shadingFlags...),
		},
		{
			Name:      "list",
			Usage:     "list built-in scenes and scene files",
			ArgsUsage: "[scene_dir]",
			Action:    cmd.ListScenes,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for scene files",
				},
			},
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
