package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/config"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/payroll-core-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-core-go/internal/repository/memory"
	"github.com/cmlabs-hris/payroll-core-go/internal/repository/postgresql"
	catalogService "github.com/cmlabs-hris/payroll-core-go/internal/service/catalog"
	overtimeService "github.com/cmlabs-hris/payroll-core-go/internal/service/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/service/payroll"
	salaryService "github.com/cmlabs-hris/payroll-core-go/internal/service/salary"
	workRecordService "github.com/cmlabs-hris/payroll-core-go/internal/service/workrecord"
)

type repositories struct {
	tx         database.Transactor
	workType   worktype.WorkTypeRepository
	workItem   workitem.WorkItemRepository
	overtime   overtime.OvertimeRepository
	workRecord workrecord.WorkRecordRepository
	salary     salary.SalaryRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		store.Seed(fixtures.DefaultCatalog())
		return &repositories{
			tx:         store,
			workType:   memory.NewWorkTypeRepository(store),
			workItem:   memory.NewWorkItemRepository(store),
			overtime:   memory.NewOvertimeRepository(store),
			workRecord: memory.NewWorkRecordRepository(store),
			salary:     memory.NewSalaryRepository(store),
			close:      func() {},
		}, nil
	}

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(dsn); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &repositories{
		tx:         postgresql.NewTransactor(db),
		workType:   postgresql.NewWorkTypeRepository(db),
		workItem:   postgresql.NewWorkItemRepository(db),
		overtime:   postgresql.NewOvertimeRepository(db),
		workRecord: postgresql.NewWorkRecordRepository(db),
		salary:     postgresql.NewSalaryRepository(db),
		close:      db.Pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App.Name, cfg.App.Version, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Error opening storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	var m *metrics.Metrics
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
		metricsHandler = m.Handler()
	}

	catalogSvc := catalogService.NewCatalogService(repos.workType, repos.workItem, repos.workRecord)
	overtimeSvc := overtimeService.NewOvertimeService(repos.workType, repos.overtime)
	workRecordSvc := workRecordService.NewWorkRecordService(
		repos.tx,
		repos.workType,
		repos.workItem,
		repos.overtime,
		repos.workRecord,
		payroll.NewLineCalculator(),
		m,
	)
	salarySvc := salaryService.NewSalaryService(repos.tx, repos.workRecord, repos.salary, m)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.JWT.Secret,
		Metrics:        metricsHandler,
	}, appHTTP.Handlers{
		WorkType:   appHTTP.NewWorkTypeHandler(catalogSvc, overtimeSvc),
		WorkItem:   appHTTP.NewWorkItemHandler(catalogSvc),
		WorkRecord: appHTTP.NewWorkRecordHandler(workRecordSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "storage", cfg.Database.Driver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
