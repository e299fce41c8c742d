package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bibek021/dental-one-sub000/internal/config"
	"github.com/Bibek021/dental-one-sub000/internal/domain/scheduling"
	"github.com/Bibek021/dental-one-sub000/internal/platform/broker"
	"github.com/Bibek021/dental-one-sub000/internal/platform/db"
	"github.com/Bibek021/dental-one-sub000/internal/platform/events"
	"github.com/Bibek021/dental-one-sub000/internal/platform/middleware"
	"github.com/Bibek021/dental-one-sub000/internal/platform/websocket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-console",
		Short: "Clinic appointment console backend",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(calendarCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if lvl, err := cfg.Level(); err == nil {
		logger = logger.Level(lvl)
	}
	return logger
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	loc, _ := cfg.Location()
	clock := scheduling.SystemClock{Location: loc}
	ctx := context.Background()

	// Directory: Postgres when configured, the demo roster otherwise.
	var (
		dir    *scheduling.MapDirectory
		pinger db.Pinger
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		pinger = pool

		dir, err = scheduling.LoadDirectoryPG(ctx, pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load directory")
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, using demo directory")
		dir = scheduling.DemoDirectory()
	}

	// Event fan-out: browsers always, RabbitMQ when configured.
	hub := websocket.NewHub(logger)
	publishers := events.Multi{hub}
	if cfg.RabbitMQURL != "" {
		pub, err := broker.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer pub.Close()
		publishers = append(publishers, pub)
	}

	cache, err := scheduling.NewViewCache(cfg.ViewCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create view cache")
	}

	svc := scheduling.NewService(
		scheduling.NewStore(nil), dir, dir.Roster(), clock,
		scheduling.WithViewCache(cache),
		scheduling.WithPublisher(publishers),
		scheduling.WithLogger(logger),
	)
	seed := cfg.GeneratorSeed
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	svc.Regenerate(ctx, seed)

	e := newEcho(cfg, logger)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"clients": hub.ClientCount(),
		})
	})
	e.GET("/health/db", db.HealthHandler(pinger))

	websocket.NewHandler(hub, cfg.CORSOrigins).RegisterRoutes(e.Group(""))
	scheduling.NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("timezone", loc.String()).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newEcho(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger, "/health"))
	e.Use(middleware.SecurityHeaders(!cfg.IsDev()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPatch},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout, "/ws"))
	return e
}
