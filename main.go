// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-booking/cmd"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"
	"rental-booking/internal/wire"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/database"
	"rental-booking/pkg/rabbitmq"
	"rental-booking/pkg/utils"

	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	app := cli.NewApp()
	app.Name = config.App.Name
	app.Usage = "rental booking lifecycle and payment reconciliation API"
	app.Action = func(c *cli.Context) error {
		return serve(config, logger)
	}
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "run the HTTP API (default)",
			Action: func(c *cli.Context) error {
				return serve(config, logger)
			},
		},
		{
			Name:  "migrate",
			Usage: "apply the embedded database schema",
			Action: func(c *cli.Context) error {
				return withDB(config, logger, func(ctx context.Context, db database.PgxIface) error {
					if err := database.Migrate(ctx, db); err != nil {
						return err
					}
					logger.Info("Database schema applied")
					return nil
				})
			},
		},
		{
			Name:  "sessions:clean",
			Usage: "purge sessions that expired more than a week ago",
			Action: func(c *cli.Context) error {
				return withDB(config, logger, func(ctx context.Context, db database.PgxIface) error {
					return repository.NewRepository(db, logger).Session.CleanExpiredSessions(ctx)
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}

func withDB(config *utils.Config, logger *zap.Logger, fn func(ctx context.Context, db database.PgxIface) error) error {
	db, err := database.InitDB(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return fn(ctx, db)
}

func serve(config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis opsional: tanpa REDIS_ADDR session dibaca langsung dari postgres
	var sessions cache.SessionCache
	if config.Redis.Addr != "" {
		client, err := cache.ConnectRedis(ctx, config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, session cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			sessions = cache.NewSessionCache(client, time.Duration(config.Redis.TTLSecs)*time.Second)
			logger.Info("Redis session cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	// RabbitMQ opsional: event hanya advisory
	var publisher usecase.EventPublisher
	if config.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(config.RabbitMQ.URL, config.RabbitMQ.Exchange, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, change events disabled", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
			logger.Info("RabbitMQ publisher enabled", zap.String("exchange", config.RabbitMQ.Exchange))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, publisher, sessions, logger)

	go cmd.SessionJanitor(ctx, time.Hour, repos.Session.CleanExpiredSessions, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	return cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
