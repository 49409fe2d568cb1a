// Command server is the entry point for the shop backend. It loads
// configuration from the environment (and an optional .env file), wires the
// database and HTTP router, and runs the server under the shutdown
// supervisor.
//
// Exit codes: 0 on graceful shutdown, 1 on startup failure, port-binding
// conflict, or an unrecoverable fault.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/learners-arc/blackbox-ecom-backend/internal/config"
	httpapi "github.com/learners-arc/blackbox-ecom-backend/internal/http"
	"github.com/learners-arc/blackbox-ecom-backend/internal/lifecycle"
	"github.com/learners-arc/blackbox-ecom-backend/internal/observability"
	"github.com/learners-arc/blackbox-ecom-backend/internal/repo"
	"github.com/learners-arc/blackbox-ecom-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	setupLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Error().Err(err).Msg("otel setup failed")
		return 1
	}

	db, err := repo.Open(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("db_path", cfg.DBPath).Msg("database open failed")
		return 1
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return 1
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Error().Err(err).Msg("gorm tracing plugin failed")
			return 1
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	sup := lifecycle.New(srv, log.Logger, cfg.ShutdownTimeout)
	sup.OnShutdown(otelShutdown)
	sup.OnShutdown(func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	return sup.Run(ctx)
}

// setupLogger configures the global zerolog output and level.
func setupLogger(cfg config.Config) {
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty && !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().
		Str("service", cfg.OTEL.ServiceName).
		Str("env", cfg.AppEnv).
		Logger()
}
