package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"loadboard/api"
	"loadboard/config"
	"loadboard/pkg/bot"
	"loadboard/pkg/events"
	"loadboard/pkg/logger"
	"loadboard/pkg/metrics"
	"loadboard/pkg/scanner"
	"loadboard/pkg/seed"
	"loadboard/service"
	"loadboard/storage"
	"loadboard/storage/memory"
	"loadboard/storage/postgres"
	"loadboard/storage/redis"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when a token is configured, the driver bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	stg, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stg.Close()

	sessions, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	pub := events.NewNoop()
	if cfg.RabbitMQURL != "" {
		pub, err = events.NewRabbitMQ(cfg.RabbitMQURL, log)
		if err != nil {
			log.Error("Failed to connect to rabbitmq", logger.Error(err))
			return err
		}
	}
	defer pub.Close()

	m := metrics.New()
	svc := service.New(service.Deps{
		Storage:    stg,
		Sessions:   sessions,
		SessionTTL: cfg.SessionTTL,
		Scanner:    scanner.NewMock(cfg.ScanDelay, seed.ScanLoads()),
		Publisher:  pub,
		Metrics:    m,
	}, log)

	handler := api.RegisterRoutes(api.NewHandler(svc, api.NewTokens(cfg.JWTSecret, cfg.TokenTTL), log), m)
	srv := api.NewServer(cfg.AppPort, handler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("🚀 HTTP server listening", logger.Int("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.DriverBotToken != "" {
		driverBot, err := bot.New(cfg.DriverBotToken, svc, log)
		if err != nil {
			log.Error("Failed to initialize driver bot", logger.Error(err))
			return err
		}
		g.Go(func() error {
			driverBot.Start()
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			driverBot.Stop()
			return nil
		})
	} else {
		log.Info("DRIVER_BOT_TOKEN is empty, driver bot disabled")
	}

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.New(log), nil
	case config.StoragePostgres:
		pg, err := postgres.New(ctx, cfg, log)
		if err != nil {
			log.Error("Failed to connect to postgres", logger.Error(err))
			return nil, err
		}
		seeded, err := pg.Seeded(ctx)
		if err != nil {
			pg.Close()
			return nil, err
		}
		if !seeded {
			log.Info("Empty database, loading demo board")
			if err := pg.Reset(ctx, seed.Loads(), seed.Drivers()); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return pg, nil
	}
	return nil, errors.New("unknown STORAGE_DRIVER: " + cfg.StorageDriver)
}

func openSessions(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.ISessionStorage, func(), error) {
	switch cfg.SessionDriver {
	case config.SessionMemory:
		return memory.NewSessionRepo(), func() {}, nil
	case config.SessionRedis:
		rdb, err := redis.Connect(ctx, cfg, log)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Error(err))
			return nil, nil, err
		}
		return redis.NewSessionRepo(rdb, log), func() { _ = rdb.Close() }, nil
	}
	return nil, nil, errors.New("unknown SESSION_DRIVER: " + cfg.SessionDriver)
}
