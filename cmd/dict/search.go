package main

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/ruendict/internal/ui"
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "list headwords starting with a query",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "print at most `N` rows",
			Aliases: []string{"n"},
			Value:   20,
		},
	},
	Action: runSearch,
}

func runSearch(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	res := engine.Search.Lookup(c.Context, query)
	if res.Variant != "" {
		fmt.Fprintf(c.App.Writer, "showing results for %s\n", res.Variant)
	}
	if len(res.Entries) == 0 {
		fmt.Fprintf(c.App.Writer, "no entries for %q\n", query)
		return nil
	}

	tbl := table.New("Word", "Rating", "Gloss").
		WithWriter(c.App.Writer).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return ui.TitleStyle.Render(fmt.Sprintf(format, vals...))
		})

	limit := c.Int("limit")
	for i, e := range res.Entries {
		if limit > 0 && i >= limit {
			break
		}
		tbl.AddRow(e.DisplayForm(), strings.Repeat("*", e.Stars()), e.FormattedGloss())
	}
	tbl.Print()

	if limit > 0 && len(res.Entries) > limit {
		fmt.Fprintf(c.App.Writer, "... %d more\n", len(res.Entries)-limit)
	}
	return nil
}
