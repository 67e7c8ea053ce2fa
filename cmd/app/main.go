package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"otcdesk/cmd"
	httpin "otcdesk/internal/adapters/in/http"
	"otcdesk/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatalf("otcd: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "otcd",
		Short:         "OTC desk order mirror",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	var autoMigrate bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the order feed and the price refresh job",
		RunE: func(c *cobra.Command, _ []string) error {
			return runServe(c.Context(), envFile, autoMigrate)
		},
	}
	serve.Flags().BoolVar(&autoMigrate, "migrate", false, "migrate the schema before serving")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the administrator",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap(envFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err = postgres.Migrate(c.Context(), db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema migrated", zap.String("database", cfg.DBName))
			return nil
		},
	}

	root.AddCommand(serve, migrate)
	return root
}

func bootstrap(envFile string) (cmd.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, logger, db, nil
}

func runServe(ctx context.Context, envFile string, autoMigrate bool) error {
	cfg, logger, db, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if autoMigrate {
		if err = postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	app, err := cmd.NewCompositionRoot(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	server, err := app.CreateServer()
	if err != nil {
		return err
	}
	e, err := httpin.NewRouter(ctx, server, app.RouterConfig())
	if err != nil {
		return err
	}

	go app.Hub().Run(ctx)

	jm := app.CreateJobManager()
	if err = jm.StartAll(); err != nil {
		return err
	}
	defer jm.StopAll()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- e.Start(addr)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
