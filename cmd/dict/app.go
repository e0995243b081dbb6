package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/ruendict/internal/app"
	"github.com/heartmarshall/ruendict/internal/config"
)

func newDictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "English-Russian dictionary.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log debug output to stderr",
				Aliases: []string{"v"},
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, app.BuildVersion())
				return err
			}
			return runTUI(c)
		},
		Commands: []*cli.Command{
			searchCommand,
			showCommand,
			recentsCommand,
			tuiCommand,
		},
	}
}

// openEngine loads the configuration and opens the dictionary. Logs go to
// stderr at warn level unless --verbose is set.
func openEngine(c *cli.Context) (*app.Engine, error) {
	return openEngineWithLog(c, os.Stderr)
}

func openEngineWithLog(c *cli.Context, w io.Writer) (*app.Engine, error) {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return nil, err
	}

	cfg.Log.Format = "text"
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	} else {
		cfg.Log.Level = "warn"
	}
	logger := app.NewLoggerTo(w, cfg.Log)
	slog.SetDefault(logger)

	return app.Open(c.Context, logger, cfg)
}
