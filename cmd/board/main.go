package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rosloniecroberto-oss/grojecnacito/httpapp"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/api/http/handlers"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/application/service"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/config"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/delay"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/ports"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/memory"
	postgres "github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/postgres/repo"
	boardredis "github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/redis"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/sqlite"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/tracing"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// store is the full persistence surface the board needs from one backend.
type store interface {
	ports.ScheduleRepository
	ports.CalendarSettingsRepository
	ports.DelayReportRepository
	ports.MassRepository
	EnsureSchema(ctx context.Context) error
}

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Error("board stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("board starting",
		zap.String("env", cfg.Env),
		zap.String("db_driver", cfg.DB.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	tp, err := tracing.InitTracer("board", cfg.Jaeger.Address, cfg.Jaeger.Enabled)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			log.Warn("tracer shutdown error", zap.Error(err))
		}
	}()

	loc, err := calendar.LoadLocation(cfg.Board.Timezone)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	var (
		cache ports.CatalogueCache = memory.NewCatalogueCache(cfg.Cache.LocalSize)
		lock  ports.ReportLock
	)
	if cfg.Redis.Enabled {
		client, err := boardredis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()
		cache = boardredis.NewCatalogueCache(client)
		lock = boardredis.NewReportLock(client)
	}

	throttle := delay.NewThrottle(log, st, lock, cfg.Reports.ThrottleWindow, cfg.Reports.Retention)

	window := schedule.DefaultWindowOptions()
	window.DisplayCount = cfg.Board.DisplayCount
	window.PastLimit = cfg.Board.PastLimit
	window.PastWindowMinutes = int(cfg.Board.PastWindow.Minutes())

	departures := service.NewDepartureService(log, st, cache, cfg.Cache.CatalogueTTL, st, throttle, loc, window)
	reports := service.NewReportService(log, departures, throttle)
	calendarSvc := service.NewCalendarService(log, st, loc)
	masses := service.NewMassService(log, st, loc)

	purge, err := delay.NewPurgeScheduler(log, loc, cfg.Reports.PurgeSpec, cfg.Reports.PurgeTimeout, func(ctx context.Context) error {
		n, err := throttle.PurgeAll(ctx)
		if err != nil {
			return err
		}
		log.Info("daily report purge", zap.Int64("deleted", n))
		return nil
	})
	if err != nil {
		return err
	}
	purge.Start()

	api := handlers.Handlers{
		Departures: handlers.NewDepartureHandler(log, departures, cfg.HTTP.WriteTimeout),
		Reports:    handlers.NewReportHandler(log, reports, cfg.HTTP.WriteTimeout),
		Calendar:   handlers.NewCalendarHandler(log, calendarSvc, loc, cfg.HTTP.WriteTimeout),
		Masses:     handlers.NewMassHandler(log, masses, cfg.HTTP.WriteTimeout),
	}
	app := httpapp.New(log, httpapp.Options{
		Host:           cfg.HTTP.Host,
		Port:           cfg.HTTP.Port,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, func(r chi.Router) {
		api.Register(r)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			log.Error("HTTP server stopped", zap.Error(runErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	if err := purge.Stop(shutdownCtx); err != nil {
		log.Warn("purge scheduler stop error", zap.Error(err))
	}

	return runErr
}

func openStore(ctx context.Context, cfg config.DBConfig, log *zap.Logger) (store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		repo, err := postgres.New(ctx, cfg.PostgresDSN(), log)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.DriverSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
