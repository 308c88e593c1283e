package cmd

import (
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("whitted")

// setupLogging applies the global verbosity switches before a command runs.
func setupLogging(ctx *cli.Context) {
	level := log.Verbosity(ctx.GlobalBool("v"), ctx.GlobalBool("vv"))
	if level != log.CurrentLevel() {
		log.SetLevel(level)
		logger.Debugf("log level set to %s", level)
	}
}
