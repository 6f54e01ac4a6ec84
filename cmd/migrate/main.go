// Команда migrate обслуживает схему PostgreSQL: up, down, force и version.
// SQLite мигрирует сам сервер при старте.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"

	"github.com/yourusername/quiz-app/internal/config"
	"github.com/yourusername/quiz-app/pkg/database"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "PostgreSQL schema maintenance for the quiz server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to server config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withMigrator(func(c *cli.Context, m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Up())
				}),
			},
			{
				Name:  "down",
				Usage: "roll back N migrations",
				Flags: []cli.Flag{&cli.IntFlag{Name: "steps", Value: 1}},
				Action: withMigrator(func(c *cli.Context, m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Steps(-c.Int("steps")))
				}),
			},
			{
				Name:      "force",
				Usage:     "set version and clear dirty state",
				ArgsUsage: "VERSION",
				Action: withMigrator(func(c *cli.Context, m *migrateV4.Migrate) error {
					var version int
					if _, err := fmt.Sscanf(c.Args().First(), "%d", &version); err != nil {
						return cli.Exit("force requires numeric VERSION", 2)
					}
					fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
					return m.Force(version)
				}),
			},
			{
				Name:  "version",
				Usage: "print current version",
				Action: withMigrator(func(c *cli.Context, m *migrateV4.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrateV4.ErrNilVersion) {
						fmt.Println("no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Printf("version %d (dirty: %t)\n", version, dirty)
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withMigrator(fn func(*cli.Context, *migrateV4.Migrate) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return err
		}
		if cfg.Database.Driver != config.DriverPostgres {
			return cli.Exit("database.driver is not postgres; sqlite schema is managed by the server", 2)
		}

		db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := database.NewSQLMigrator(db)
		if err != nil {
			return err
		}
		if err := fn(c, m); err != nil {
			return err
		}
		fmt.Println("Success!")
		return nil
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrateV4.ErrNoChange) {
		fmt.Println("no change")
		return nil
	}
	return err
}
