package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/procureflow/procureflow/internal/infrastructure/config"
	"github.com/procureflow/procureflow/internal/infrastructure/database"
	"github.com/procureflow/procureflow/internal/infrastructure/migration"
	httpRouter "github.com/procureflow/procureflow/internal/interfaces/http"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	env          string
	autoMigrate  bool
	migrateStrat string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Procureflow HTTP API, including the realtime notification streams.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Gin mode override (debug, release, test)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup")
	cmd.Flags().StringVar(&migrateStrat, "strategy", migration.StrategyGoose, "Migration strategy used with --auto-migrate")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && env == "" {
		env = envVar
	}

	cfg, err := config.Load(mapEnvToGinMode(env))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server", "mode", cfg.Server.Mode, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := handleMigrations(cfg, log); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := container.Prepare(ctx); err != nil {
		container.Shutdown()
		return err
	}
	container.SetupRoutes()
	container.StartNotificationRelay(ctx)

	// No WriteTimeout: SSE and websocket streams stay open indefinitely.
	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.GetEngine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			container.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infow("shutting down server")

	// Streams are closed first so Shutdown does not wait on hijacked
	// websocket connections.
	container.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	strategy, err := migration.NewStrategy(migrateStrat, cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	if autoMigrate {
		if !cfg.Server.IsDebug() {
			log.Warnw("auto-migration is enabled outside debug mode")
		}
		if err := strategy.Up(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	version, dirty, err := strategy.Version(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "strategy", strategy.Name(), "version", version, "dirty", dirty)
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "development", "dev", "debug":
		return gin.DebugMode
	case "test", "testing":
		return gin.TestMode
	default:
		return ""
	}
}
