package main

import (
	"os" // Command line arguments and environment

	"rps_game/internal/config" // Custom import path (Config)
	"rps_game/internal/db"     // Custom import path (Database)
	"rps_game/internal/utils"  // Logger setup

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"github.com/urfave/cli/v2"   // Command line app
)

// Main entry point for migration
func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the rps_game database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "driver",
				Usage: "database driver (mysql or postgres), overrides DB_DRIVER",
			},
		},
		Commands: []*cli.Command{
			commandUp(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func commandUp() *cli.Command {
	return &cli.Command{
		Name:  "up",
		Usage: "create or update the users, games, tasks and user_tasks tables",
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig() // Load configuration
			utils.SetupLogger(cfg.IsProd, cfg.LogLevel)
			if driver := c.String("driver"); driver != "" {
				cfg.DBDriver = driver
				if os.Getenv("DB_PORT") == "" {
					cfg.DBPort = config.DefaultPort(driver)
				}
			}

			gdb, err := db.Open(cfg)
			if err != nil {
				return err
			}
			if err := db.Migrate(gdb); err != nil {
				return err
			}

			logrus.WithField("driver", cfg.DBDriver).Info("Database migrated successfully")
			return nil
		},
	}
}
