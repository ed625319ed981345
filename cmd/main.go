package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"sirherobrine23.com.br/go-bds/mountrevert/config"
	"sirherobrine23.com.br/go-bds/mountrevert/internal/logger"
	"sirherobrine23.com.br/go-bds/mountrevert/revert"
)

// Mount namespace is per thread, main goroutine stay on thread group leader
// so run --unshare and /proc/self see same namespace.
func init() {
	runtime.LockOSThread()
}

var (
	cfg *config.Config
	log *logrus.Logger
)

// Reverter from loaded config
func newReverter() *revert.Reverter {
	rev := revert.New(cfg.Source.Open(), nil)
	rev.ModuleDir = cfg.ModuleDir
	rev.HidePrefix = cfg.HidePrefix
	rev.Log = log
	return rev
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mountrevert",
		Usage: "hide root manager mounts from current mount namespace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config file, default " + config.DefaultDir + "/config.yaml",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "DEBUG, INFO, WARN or ERROR",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
			},
		},
		Before: func(ctx *cli.Context) (err error) {
			if cfg, err = config.Load(ctx.String("config")); err != nil {
				return err
			}
			if ctx.IsSet("log-level") {
				cfg.Logging.Level = ctx.String("log-level")
			}
			if ctx.IsSet("log-format") {
				cfg.Logging.Format = ctx.String("log-format")
			}
			log, err = logger.New(logger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Output: cfg.Logging.Output,
			})
			return err
		},
		Commands: []*cli.Command{
			&runCommand,
			&planCommand,
			&mountsCommand,
			&configCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
