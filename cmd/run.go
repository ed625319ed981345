package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"sirherobrine23.com.br/go-bds/mountrevert/exec"
	"sirherobrine23.com.br/go-bds/mountrevert/metrics"
	"sirherobrine23.com.br/go-bds/mountrevert/mntns"
	"sirherobrine23.com.br/go-bds/mountrevert/sysmount"
)

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "hide mounts and restore system overlays",
	ArgsUsage: "[-- program [args...]]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "unshare",
			Usage: "create private mount namespace before, without it namespace must be already private",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "log mount requests without changing namespace",
			Aliases: []string{"n"},
		},
		&cli.StringFlag{
			Name:  "cwd",
			Usage: "working directory of program",
		},
		&cli.StringSliceFlag{
			Name:  "env",
			Usage: "extra KEY=VALUE environment of program, repeatable",
		},
	},
	Action: func(ctx *cli.Context) (err error) {
		handoff := exec.Options{Cwd: ctx.String("cwd"), Arguments: ctx.Args().Slice()}
		if handoff.Environment, err = parseEnv(ctx.StringSlice("env")); err != nil {
			return err
		}

		ns := mntns.Assume()
		if ctx.Bool("unshare") {
			if ns, err = mntns.Unshare(); err != nil {
				return err
			}
		}

		rev := newReverter()
		rev.Mounter = sysmount.Kernel{}
		if ctx.Bool("dry-run") {
			rev.Mounter = sysmount.DryRun{Log: log}
		}

		reg := prometheus.NewRegistry()
		if cfg.Metrics.Textfile != "" {
			if rev.Metrics, err = metrics.NewMetrics(reg); err != nil {
				return err
			}
		}

		report := rev.Run(ns)
		if report.Failures() > 0 {
			log.Warnf("%d mount requests failed", report.Failures())
		}

		if cfg.Metrics.Textfile != "" {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
				log.WithError(err).Warn("Metrics not written")
			}
		}

		if len(handoff.Arguments) > 0 {
			return handoff.Replace()
		}
		return nil
	},
}

func parseEnv(values []string) (map[string]string, error) {
	env := map[string]string{}
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid env %q, use KEY=VALUE", value)
		}
		env[key] = val
	}
	return env, nil
}
