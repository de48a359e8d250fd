package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/config"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	appHTTP "github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/middleware"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/cron"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/jwt"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/repository/memory"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/repository/postgresql"
	redisRepo "github.com/elmansy-mostafa/Salary-Calculation/internal/repository/redis"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/repository/sqlite"
	dailyReportService "github.com/elmansy-mostafa/Salary-Calculation/internal/service/dailyreport"
	employeeService "github.com/elmansy-mostafa/Salary-Calculation/internal/service/employee"
	masterService "github.com/elmansy-mostafa/Salary-Calculation/internal/service/master"
	payrollService "github.com/elmansy-mostafa/Salary-Calculation/internal/service/payroll"
)

type repositories struct {
	employees    employee.EmployeeRepository
	payScales    payscale.PayScaleRepository
	dailyReports dailyreport.DailyReportRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()

	repos, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "type", cfg.Storage.Type, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	cache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		slog.Error("failed to open breakdown cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	scheduler := cron.NewScheduler()
	if local, ok := cache.(*memory.BreakdownCache); ok {
		scheduler.AddJob("breakdown-cache-sweep", cfg.Salary.CacheTTL, func(ctx context.Context) error {
			if removed := local.Sweep(ctx); removed > 0 {
				slog.Debug("expired breakdowns swept", "removed", removed)
			}
			return nil
		})
	}
	scheduler.Start(ctx)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(
		repos.employees,
		repos.payScales,
		repos.dailyReports,
		cfg.Salary.DefaultPayScaleID,
		payrollService.WithCache(cache),
		payrollService.WithBatchConcurrency(cfg.Salary.BatchConcurrency),
	)
	dailyReportSvc := dailyReportService.NewDailyReportService(repos.dailyReports, repos.employees, cache)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, cache)
	masterSvc := masterService.NewMasterService(repos.payScales)

	opts := appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	}
	if cfg.RateLimit.Rate != "" {
		limit, err := middleware.RateLimit(cfg.RateLimit.Rate)
		if err != nil {
			slog.Error("invalid rate limit", "rate", cfg.RateLimit.Rate, "error", err)
			os.Exit(1)
		}
		opts.RateLimit = limit
	}

	router := appHTTP.NewRouter(opts, JWTService, appHTTP.Handlers{
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		DailyReport: appHTTP.NewDailyReportHandler(dailyReportSvc),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Master:      appHTTP.NewMasterHandler(masterSvc),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "storage", cfg.Storage.Type, "redis", cfg.Redis.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	scheduler.Stop()
	slog.Info("server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
		return repositories{
			employees:    postgresql.NewEmployeeRepository(db),
			payScales:    postgresql.NewPayScaleRepository(db),
			dailyReports: postgresql.NewDailyReportRepository(db),
		}, db.Close, nil

	case config.StorageSQLite:
		store, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			employees:    sqlite.NewEmployeeRepository(store),
			payScales:    sqlite.NewPayScaleRepository(store),
			dailyReports: sqlite.NewDailyReportRepository(store),
		}, closeLogged("sqlite", store), nil

	case config.StorageMemory:
		slog.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			employees:    memory.NewEmployeeRepository(),
			payScales:    memory.NewPayScaleRepository(),
			dailyReports: memory.NewDailyReportRepository(),
		}, func() {}, nil
	}

	return repositories{}, nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
}

func openCache(ctx context.Context, cfg *config.Config) (payroll.BreakdownCache, func(), error) {
	if !cfg.Redis.Enabled {
		return memory.NewBreakdownCache(cfg.Salary.CacheTTL), func() {}, nil
	}

	client, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return redisRepo.NewBreakdownCache(client, cfg.Salary.CacheTTL), closeLogged("redis", client), nil
}

func closeLogged(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close "+name, "error", err)
		}
	}
}
