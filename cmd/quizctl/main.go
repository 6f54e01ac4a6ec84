// quizctl - терминальный клиент Resource API: пользователи, прохождение тестов,
// история и редактирование тестов.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yourusername/quiz-app/internal/client"
	"github.com/yourusername/quiz-app/internal/engine/accounts"
)

// env - зависимости команд, собираются в Before
type env struct {
	prefs *client.Preferences
	api   *client.API
	users *accounts.Manager
}

func main() {
	e := &env{}

	app := &cli.App{
		Name:  "quizctl",
		Usage: "take quizzes and manage users, tests and history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "preferences file (default: user config dir)",
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "server base URL (overrides saved api_url)",
				EnvVars: []string{"QUIZ_API_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			path := c.String("prefs")
			if path == "" {
				p, err := client.DefaultPreferencesPath()
				if err != nil {
					return err
				}
				path = p
			}
			prefs, err := client.LoadPreferences(path)
			if err != nil {
				return err
			}
			baseURL := prefs.APIURL()
			if c.IsSet("api") {
				baseURL = c.String("api")
			}
			e.prefs = prefs
			e.api = client.NewAPI(baseURL)
			e.users = accounts.NewManager(prefs, e.api)
			return nil
		},
		Commands: []*cli.Command{
			userCommand(e),
			testCommand(e),
			historyCommand(e),
			{
				Name:      "server",
				Usage:     "save server base URL",
				ArgsUsage: "URL",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: quizctl server URL", 2)
					}
					return e.prefs.SetAPIURL(c.Args().First())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
