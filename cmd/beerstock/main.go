package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/beerstock/internal/config"
	pkgconfig "github.com/abgdnv/beerstock/pkg/config"
	"github.com/abgdnv/beerstock/pkg/config/configloader"
	"github.com/abgdnv/beerstock/migrations"
	"github.com/urfave/cli/v2"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "beerstock",
		Usage: "beer inventory REST service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				Value:   configloader.DefaultConfigFile,
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP, gRPC health and auxiliary servers",
				Action: serveAction,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back the database schema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateAction(migrations.Up),
					},
					{
						Name:   "down",
						Usage:  "roll back all migrations",
						Action: migrateAction(migrations.Down),
					},
				},
			},
		},
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := run(c.Context, cfg); err != nil {
		return err
	}
	log.Println("application stopped gracefully")
	return nil
}

func migrateAction(step func(driver, url string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if cfg.Database.Driver == pkgconfig.DriverMemory {
			return fmt.Errorf("the %q driver has no schema to migrate", pkgconfig.DriverMemory)
		}
		if err := step(cfg.Database.Driver, cfg.Database.URL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Printf("%s migrations on %s completed", c.Command.Name, cfg.Database.Driver)
		return nil
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Printf("Configuration loaded: %v", cfg)
	return cfg, nil
}
