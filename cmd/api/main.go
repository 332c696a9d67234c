package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/qfddxs/Hospital/internal/bootstrap"
	"github.com/qfddxs/Hospital/internal/config"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
	"github.com/qfddxs/Hospital/internal/server"
)

// @title Hospital Rotations API
// @version 1.0
// @description API for managing clinical rotations: training centers, students, quota requests and schedule blocks

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token as "Bearer <token>"

func main() {
	app := &cli.App{
		Name:  "hospital-api",
		Usage: "Clinical rotation management API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "create the bootstrap account from configuration",
				Action: seedData,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	srv, err := server.NewServer(c.Context, c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	if err := srv.Run(c.Context); err != nil {
		return err
	}
	logger.Info().Msg("Application finished gracefully.")
	return nil
}

// withDatabase runs fn against a connection that is closed afterwards
func withDatabase(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	// Only connect; the command decides what to run.
	connCfg := *cfg
	connCfg.Database.AutoMigrate = false
	database, err := bootstrap.SetupDatabase(c.Context, &connCfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(c.Context, cfg, database, lgr)
}

func migrate(c *cli.Context) error {
	return withDatabase(c, bootstrap.RunMigrations)
}

func seedData(c *cli.Context) error {
	return withDatabase(c, bootstrap.SeedDefaultData)
}
