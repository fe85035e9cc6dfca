package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"peacebot/bot"
	"peacebot/cache"
	"peacebot/config"
	"peacebot/handlers"
	"peacebot/model"
	"peacebot/utils"
	"peacebot/utils/database"
)

func main() {
	app := &cli.App{
		Name:  "peacebot",
		Usage: "Discord bot for auto-responses and moderation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML, TOML or JSON config file",
				EnvVars: []string{"PEACEBOT_CONFIG"},
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "connect to Discord and serve commands (default)",
				Action: run,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	zap.ReplaceGlobals(logger.Logger)

	store, err := openStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cacheStore, err := cache.New(cfg.Cache, cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	if closer, ok := cacheStore.(io.Closer); ok {
		defer closer.Close()
	}

	b, err := bot.New(cfg, c.String("config"), store, cacheStore, logger.Logger)
	if err != nil {
		return fmt.Errorf("error creating bot: %w", err)
	}
	handlers.Register(b)

	return b.Run()
}

func migrate(c *cli.Context) error {
	cfg, err := config.Read(c.String("config"))
	if err != nil {
		return err
	}
	store, err := openStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Printf("Schema is up to date (%s).", store.Driver())
	return nil
}

// openStore connects to the database and applies the schema. SQLite files get their
// directory created first.
func openStore(ctx context.Context, cfg *model.Config) (*database.Store, error) {
	if cfg.Database.Driver == database.DriverSQLite && cfg.Database.DSN != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	store, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return store, nil
}
