package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"sirherobrine23.com.br/go-bds/mountrevert/config"
)

var configCommand = cli.Command{
	Name:  "config",
	Usage: "manage configuration file",
	Subcommands: []*cli.Command{
		{
			Name:      "init",
			Usage:     "write default configuration",
			ArgsUsage: "<path>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "replace existing file",
				},
			},
			Action: func(ctx *cli.Context) error {
				path := ctx.Args().First()
				if path == "" {
					path = config.DefaultDir + "/config.yaml"
				}
				if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
					return fmt.Errorf("%s already exists, use --force to replace", path)
				}
				if err := config.Save(config.Default(), path); err != nil {
					return err
				}
				fmt.Fprintf(ctx.App.Writer, "config written to %s\n", path)
				return nil
			},
		},
	},
}
