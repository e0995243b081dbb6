package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/ruendict/internal/adapter/prefs"
)

var recentsCommand = &cli.Command{
	Name:  "recents",
	Usage: "print or clear the recent searches",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "clear",
			Usage: "forget all recent searches",
		},
	},
	Action: runRecents,
}

func runRecents(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	p, err := engine.OpenPrefs(c.Context)
	if err != nil {
		return err
	}
	defer p.Close()

	if c.Bool("clear") {
		engine.NewSession(p).ClearRecents(c.Context)
		return nil
	}

	list, err := p.GetList(c.Context, prefs.KeyRecentSearches)
	if err != nil {
		return err
	}
	for _, term := range list {
		fmt.Fprintln(c.App.Writer, term)
	}
	return nil
}
