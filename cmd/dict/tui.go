package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/ruendict/internal/tui"
)

var tuiCommand = &cli.Command{
	Name:  "tui",
	Usage: "browse the dictionary interactively (default)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "append logs to `FILE`; the screen is owned by the browser",
		},
	},
	Action: runTUI,
}

func runTUI(c *cli.Context) error {
	var logOut io.Writer = io.Discard
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	engine, err := openEngineWithLog(c, logOut)
	if err != nil {
		return err
	}
	defer engine.Close()

	// Recents are a convenience; the browser works without them.
	p, err := engine.OpenPrefs(c.Context)
	if err != nil {
		slog.WarnContext(c.Context, "prefs unavailable", slog.String("error", err.Error()))
		return tui.Run(c.Context, engine.NewSession(nil))
	}
	defer p.Close()

	return tui.Run(c.Context, engine.NewSession(p))
}
