package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/yourusername/quiz-app/internal/engine/accounts"
)

func userCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "list, add, switch and delete users",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list users, active one marked with *",
				Action: func(c *cli.Context) error {
					users, err := e.users.List(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					for _, u := range users {
						mark := ""
						if u.Active {
							mark = "*"
						}
						fmt.Fprintf(w, "%s\t%s\n", mark, u.Name)
					}
					return w.Flush()
				},
			},
			{
				Name:      "add",
				Usage:     "add user and make it active",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name, err := e.users.Add(c.Context, c.Args().First())
					if errors.Is(err, accounts.ErrEmptyUsername) {
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Active user: %s\n", name)
					return nil
				},
			},
			{
				Name:      "switch",
				Usage:     "make user active",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					if err := e.users.Switch(c.Args().First()); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Active user: %s\n", e.users.Active())
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete user (not the active one)",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					err := e.users.Delete(c.Context, c.Args().First())
					if errors.Is(err, accounts.ErrActiveUser) {
						return cli.Exit("Cannot delete active user", 1)
					}
					return err
				},
			},
			{
				Name:  "whoami",
				Usage: "print active user",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, e.users.Active())
					return nil
				},
			},
		},
	}
}
