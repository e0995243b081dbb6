package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/markup"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/ui"
)

var showCommand = &cli.Command{
	Name:      "show",
	Usage:     "print the article for a headword",
	ArgsUsage: "WORD",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "table",
			Usage: "look in `TABLE` (enRu or ruEn); guessed from the script by default",
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "print unstyled text",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "wrap at `COLS` columns",
			Value: ui.DefaultWidth,
		},
	},
	Action: runShow,
}

func runShow(c *cli.Context) error {
	word := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if word == "" {
		return cli.Exit("show: a word is required", 1)
	}

	table := domain.TableFor(word)
	if raw := c.String("table"); raw != "" {
		t, err := domain.ParseTable(raw)
		if err != nil {
			return err
		}
		table = t
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := article.WithLoader(c.Context, engine.Articles.NewLoader())

	e, err := engine.Search.Find(ctx, table, word)
	if err != nil {
		return fmt.Errorf("show %s: %w", word, err)
	}

	a := engine.Articles.Resolve(ctx, e)
	doc := markup.FormatAsHTML(a.Body, a.Transcription)

	if c.Bool("plain") {
		fmt.Fprintln(c.App.Writer, e.DisplayForm())
		fmt.Fprintln(c.App.Writer, render.PlainText(doc))
		return nil
	}

	fmt.Fprintln(c.App.Writer, ui.EntryLine(e, false, true, c.Int("width")))
	fmt.Fprintln(c.App.Writer, ui.RenderDocument(engine.Renderer.Render(doc), ui.DocumentOptions{
		Width:  c.Int("width"),
		Indent: "  ",
	}))
	return nil
}
