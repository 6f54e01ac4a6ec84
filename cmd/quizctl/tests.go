package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yourusername/quiz-app/internal/engine/settings"
	"github.com/yourusername/quiz-app/internal/engine/taking"
)

func testFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "difficulty"},
		&cli.StringFlag{Name: "questions", Usage: "JSON file with questions, - for stdin"},
		&cli.StringFlag{Name: "prereq", Usage: "id of prerequisite test, 0 or empty for none"},
	}
}

func testCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "list, take and edit tests",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list tests with last/best score of active user",
				Action: func(c *cli.Context) error {
					entries, err := e.api.Catalog(c.Context, e.users.Active())
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tQ\tLAST\tBEST\tSTATUS")
					for _, t := range entries {
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
							t.TestID, t.Title, t.Difficulty, t.QuestionCount, t.LastLabel(), t.BestLabel(), t.StatusLabel())
					}
					return w.Flush()
				},
			},
			{
				Name:      "take",
				Usage:     "take test as active user",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					return takeTest(c, e, id, os.Stdin)
				},
			},
			{
				Name:  "add",
				Usage: "create test",
				Flags: testFormFlags(),
				Action: func(c *cli.Context) error {
					editor := settings.NewEditor(e.api)
					form, err := applyFormFlags(c, settings.Form{Questions: "[]"})
					if err != nil {
						return err
					}
					editor.SetForm(form)
					id, err := editor.Submit(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created test %d\n", id)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "update test; unset flags keep current values",
				ArgsUsage: "ID",
				Flags:     testFormFlags(),
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					editor := settings.NewEditor(e.api)
					if err := editor.StartEdit(c.Context, id); err != nil {
						return err
					}
					form, err := applyFormFlags(c, editor.Form())
					if err != nil {
						return err
					}
					editor.SetForm(form)
					if _, err := editor.Submit(c.Context); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated test %d\n", id)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print test form (questions as JSON)",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					test, err := e.api.GetTest(c.Context, id)
					if err != nil {
						return err
					}
					form, err := settings.FormFromTest(test)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Title: %s\nDifficulty: %s\nPrereq: %s\n%s\n",
						form.Title, form.Difficulty, form.Prereq, form.Questions)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete test",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					return settings.NewEditor(e.api).Delete(c.Context, id)
				},
			},
		},
	}
}

func argID(c *cli.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Args().First(), 10, 32)
	if err != nil {
		return 0, cli.Exit("ID must be a positive number", 2)
	}
	return uint(n), nil
}

func applyFormFlags(c *cli.Context, form settings.Form) (settings.Form, error) {
	if c.IsSet("title") {
		form.Title = c.String("title")
	}
	if c.IsSet("difficulty") {
		form.Difficulty = c.String("difficulty")
	}
	if c.IsSet("prereq") {
		form.Prereq = c.String("prereq")
	}
	if c.IsSet("questions") {
		var (
			raw []byte
			err error
		)
		if path := c.String("questions"); path == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(path)
		}
		if err != nil {
			return form, fmt.Errorf("failed to read questions: %w", err)
		}
		form.Questions = string(raw)
	}
	return form, nil
}

// takeTest проводит попытку в терминале: номер варианта, пустая строка - без ответа
func takeTest(c *cli.Context, e *env, id uint, in io.Reader) error {
	user := e.users.Active()

	entries, err := e.api.Catalog(c.Context, user)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.TestID == id && entry.Locked {
			return cli.Exit("Test is locked: get a perfect score on its prerequisite first", 1)
		}
	}

	test, err := e.api.GetTest(c.Context, id)
	if err != nil {
		return err
	}
	session, err := taking.NewSession(taking.SessionContext{User: user}, test, time.Now)
	if err != nil {
		return err
	}

	out := c.App.Writer
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "%s\n\n", test.Title)

	for session.Phase() == taking.PhaseQuestion {
		q := session.View().Question
		fmt.Fprintf(out, "%d/%d. %s\n", q.Number, q.Total, q.Text)
		for _, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", o.Index+1, o.Text)
		}
		fmt.Fprintf(out, "[%s] > ", q.ActionLabel)

		if !scanner.Scan() {
			return cli.Exit("input closed, attempt discarded", 1)
		}
		if answer := strings.TrimSpace(scanner.Text()); answer != "" {
			n, err := strconv.Atoi(answer)
			if err != nil || session.Select(n-1) != nil {
				fmt.Fprintln(out, "Unknown option, try again")
				continue
			}
		}
		if _, err := session.Apply(c.Context, taking.AdvanceQuestion{}, e.api); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	result := session.View().Result
	fmt.Fprintln(out, result.Summary())
	return nil
}
