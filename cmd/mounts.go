package main

import (
	"github.com/urfave/cli/v2"
	"sirherobrine23.com.br/go-bds/mountrevert/internal/output"
)

var mountsCommand = cli.Command{
	Name:  "mounts",
	Usage: "print current mount table snapshot",
	Action: func(ctx *cli.Context) error {
		table, err := cfg.Source.Open().Snapshot()
		if err != nil {
			return err
		}
		data := output.NewTableData("source", "target", "type", "options")
		for _, rec := range table {
			data.AddRow(rec.Source, rec.Path, rec.Type, rec.Options)
		}
		output.PrintTable(ctx.App.Writer, data)
		return nil
	},
}
