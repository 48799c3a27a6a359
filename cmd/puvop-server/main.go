package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/puvop/puvop/internal/config"
	"github.com/puvop/puvop/internal/domain/policy"
	"github.com/puvop/puvop/internal/domain/predict"
	"github.com/puvop/puvop/internal/domain/prediction"
	"github.com/puvop/puvop/internal/platform/artifact"
	"github.com/puvop/puvop/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "puvop-server",
		Short: "Posterior urethral valves outcomes prediction API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the prediction API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect model artifacts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Load and self-check all configured model artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := newArtifactStore(cfg)
			if err != nil {
				return err
			}

			registry, err := predict.NewRegistry(context.Background(), store, predict.DefaultArtifactKeys())
			if err != nil {
				return err
			}

			for _, outcome := range registry.Outcomes() {
				handle, _ := registry.Get(outcome)
				fmt.Printf("%-16s %-13s features=%d\n", outcome, handle.Kind(), len(handle.FeatureNames()))
			}
			fmt.Printf("%d model(s) verified.\n", len(registry.Outcomes()))
			return nil
		},
	})

	return cmd
}

func newArtifactStore(cfg *config.Config) (*artifact.DirStore, error) {
	store := artifact.NewDirStore(cfg.ModelDir)
	if cfg.ModelManifest != "" {
		if err := store.LoadManifest(cfg.ModelManifest); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	// Model registry — artifacts load exactly once; a failure here is fatal,
	// never retried per request.
	store, err := newArtifactStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open model store")
	}
	registry, err := predict.NewRegistry(ctx, store, predict.DefaultArtifactKeys())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load model artifacts")
	}
	logger.Info().Strs("outcomes", registry.Outcomes()).Msg("model artifacts loaded")

	// Evaluation history — Postgres when configured, in-memory otherwise.
	evalRepo := prediction.NewEvaluationRepoMem()
	if cfg.DatabaseURL != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid DATABASE_URL")
		}
		poolCfg.MaxConns = cfg.DBMaxConns
		poolCfg.MinConns = cfg.DBMinConns
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		evalRepo = prediction.NewEvaluationRepoPG(pool)
		logger.Info().Msg("connected to database")
	} else {
		logger.Warn().Msg("DATABASE_URL not set; evaluation history is in-memory only")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Prediction domain
	predictionSvc := prediction.NewService(registry, policy.NewEngine(policy.DefaultRules()), evalRepo)
	predictionHandler := prediction.NewHandler(predictionSvc)
	predictionHandler.RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
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
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
