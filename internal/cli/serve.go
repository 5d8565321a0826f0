package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/config"
	dbredis "github.com/monicapserrano/text-to-cad/internal/db/redis"
	"github.com/monicapserrano/text-to-cad/internal/logger"
	"github.com/monicapserrano/text-to-cad/internal/metrics"
	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	"github.com/monicapserrano/text-to-cad/internal/repository/predcache"
	"github.com/monicapserrano/text-to-cad/internal/transport/httpapi"
	predictuc "github.com/monicapserrano/text-to-cad/internal/usecase/predict"
	"github.com/monicapserrano/text-to-cad/internal/version"
)

func newServeCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env == "" {
				env = config.GetEnv()
			}
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logger.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			return serve(cmd.Context(), env, cfg, log)
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "config environment (default: ENV or local)")
	return cmd
}

func serve(ctx context.Context, env string, cfg config.Config, log *zap.Logger) error {
	log.Info("Starting texttocad API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	svc, err := predictuc.Load(
		artifact.NewStore(),
		cfg.Artifacts.ModelFile,
		cfg.Artifacts.VectorizerFile,
		cfg.Artifacts.ConfigFile,
		log,
	)
	if err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}

	var predictor httpapi.Predictor = svc
	server := httpapi.NewServer(predictor, log).WithAPIKeys(cfg.Auth.APIKeys)

	if len(cfg.Cache.Addrs) > 0 {
		store, err := dbredis.NewStore(dbredis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return fmt.Errorf("create cache store: %w", err)
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			return fmt.Errorf("cache not ready: %w", err)
		}
		log.Info("Connected to prediction cache", zap.Strings("addrs", cfg.Cache.Addrs))

		predictor = predcache.New(
			svc, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.PredictionCacheTotal,
			log,
		)
		server = httpapi.NewServer(predictor, log).
			WithAPIKeys(cfg.Auth.APIKeys).
			WithCachePinger(store)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
