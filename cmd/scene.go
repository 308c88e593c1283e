package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// LoadScene resolves a scene reference, either a built-in scene ID such as
// "builtin:cornell-box" or the path of a scene file, and returns the scene
// ready for rendering.
func LoadScene(ref string) (*scene.Scene, error) {
	if ref == "" {
		return nil, errors.New("empty scene reference")
	}

	if !scene.IsBuiltinID(ref) {
		return loaders.LoadScene(ref)
	}

	sc, err := scene.NewBuiltinScene(ref)
	if err != nil {
		return nil, err
	}
	if err := sc.BuildAcceleration(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", ref, err)
	}
	return sc, nil
}

// sceneName returns a file-system friendly name for a scene reference.
func sceneName(ref string) string {
	if scene.IsBuiltinID(ref) {
		return strings.TrimPrefix(ref, scene.BuiltinPrefix)
	}
	base := filepath.Base(ref)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png.
func defaultOutputPath(ref string, now time.Time) string {
	return filepath.Join("output", sceneName(ref), fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// Display scene statistics.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := LoadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	stats, err := sc.Stats()
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", stats.Table())
	return nil
}

// List the built-in scenes and the scene files of a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	dir := ctx.String("dir")
	if ctx.NArg() > 0 {
		dir = ctx.Args().First()
	}

	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	logger.Noticef("available scenes:\n%s", scenesTable(scenes))
	return nil
}

func scenesTable(scenes []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Group, info.Description})
	}
	table.SetFooter([]string{"", "", "Total", fmt.Sprintf("%d", len(scenes))})

	table.Render()
	return buf.String()
}
