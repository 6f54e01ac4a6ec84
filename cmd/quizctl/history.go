package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yourusername/quiz-app/internal/engine/historyview"
)

func historyCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "show and delete attempts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show history; --sort may repeat, each repeat toggles that column",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "sort", Usage: "column: user, testTitle, score, date"},
					&cli.BoolFlag{Name: "utc", Usage: "show dates in UTC"},
				},
				Action: func(c *cli.Context) error {
					records, err := e.api.ListHistory(c.Context)
					if err != nil {
						return err
					}
					view := historyview.New(records)
					for _, name := range c.StringSlice("sort") {
						col, err := historyview.ParseColumn(name)
						if err != nil {
							return cli.Exit(err.Error(), 2)
						}
						view.Sort(col)
					}

					loc := time.Local
					if c.Bool("utc") {
						loc = time.UTC
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\n",
						view.Header(historyview.ColumnUser), view.Header(historyview.ColumnTestTitle),
						view.Header(historyview.ColumnScore), view.Header(historyview.ColumnDate))
					for _, r := range view.Render(loc) {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.User, r.TestTitle, r.Score, r.Date)
					}
					return w.Flush()
				},
			},
			{
				Name:      "delete",
				Usage:     "delete one attempt",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					return historyview.New(nil).DeleteRow(c.Context, e.api, id)
				},
			},
			{
				Name:  "clear",
				Usage: "delete all attempts",
				Action: func(c *cli.Context) error {
					return historyview.New(nil).DeleteAll(c.Context, e.api)
				},
			},
		},
	}
}
