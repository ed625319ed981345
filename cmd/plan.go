package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
	"sirherobrine23.com.br/go-bds/mountrevert/internal/output"
	"sirherobrine23.com.br/go-bds/mountrevert/revert"
)

var planCommand = cli.Command{
	Name:  "plan",
	Usage: "show mounts run would hide, in unmount order, and overlays it watch",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Usage:   "table or yaml",
			Aliases: []string{"f"},
			Value:   "table",
		},
	},
	Action: func(ctx *cli.Context) error {
		plan, err := newReverter().Plan()
		if err != nil {
			return err
		}
		return printPlan(ctx, plan)
	},
}

func printPlan(ctx *cli.Context, plan revert.Plan) error {
	w := ctx.App.Writer
	switch ctx.String("format") {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(struct {
			LoopSource string   `yaml:"loop_source"`
			Unmount    []string `yaml:"unmount"`
			Backups    any      `yaml:"backups"`
		}{plan.LoopSource, plan.Targets.Reversed(), plan.Backups})
	case "table":
		targets := output.NewTableData("order", "target")
		for i, target := range plan.Targets.Reversed() {
			targets.AddRow(strconv.Itoa(i+1), target)
		}
		output.PrintTable(w, targets)

		fmt.Fprintln(w)
		backups := output.NewTableData("overlay", "options")
		for _, backup := range plan.Backups {
			backups.AddRow(backup.Target, backup.Options)
		}
		output.PrintTable(w, backups)
		return nil
	default:
		return fmt.Errorf("unknown format %q", ctx.String("format"))
	}
}
