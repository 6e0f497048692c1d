package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyRuleHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/apply_schedule_rule"
	clearFutureHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/clear_future_schedule"
	getConflictsHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/get_conflicts"
	getMonthlyHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/get_monthly_schedule"
	getRuleHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/get_schedule_rule"
	getWeeklyHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/get_weekly_schedule"
	resolveConflictHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/resolve_conflict"
	updateWeeklyHandler "github.com/Cappie92/bookme-sub002/internal/api/handlers/update_weekly_schedule"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/app"
	"github.com/Cappie92/bookme-sub002/internal/config"
	bookingRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/booking"
	dismissalRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/dismissal"
	ruleRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/rule"
	scheduleRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/schedule"
	staffServiceClient "github.com/Cappie92/bookme-sub002/internal/integrations/staffservice"
	"github.com/Cappie92/bookme-sub002/internal/jobs"
	scheduleService "github.com/Cappie92/bookme-sub002/internal/service/schedule"
	applyRuleUC "github.com/Cappie92/bookme-sub002/internal/usecase/apply_schedule_rule"
	resolveConflictUC "github.com/Cappie92/bookme-sub002/internal/usecase/resolve_conflict"
	updateWeeklyUC "github.com/Cappie92/bookme-sub002/internal/usecase/update_weekly_schedule"
	"github.com/Cappie92/bookme-sub002/pkg/dbmetrics"
	"github.com/Cappie92/bookme-sub002/pkg/logger"
	"github.com/Cappie92/bookme-sub002/pkg/metrics"
	"github.com/Cappie92/bookme-sub002/pkg/simpletxmanager"
	"github.com/Cappie92/bookme-sub002/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Bookme-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем клиента StaffService
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("StaffService client initialized (url=%s, timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository      *scheduleRepo.Repository
		bookingRepository   *bookingRepo.Repository
		ruleRepository      *ruleRepo.Repository
		dismissalRepository *dismissalRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		dismissalRepository = dismissalRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		dismissalRepository = dismissalRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис расписаний
	scheduleSvc := scheduleService.NewService(
		slotRepository,
		bookingRepository,
		ruleRepository,
		dismissalRepository,
		staffClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	applyRuleUseCase := applyRuleUC.NewUseCase(
		slotRepository,
		bookingRepository,
		ruleRepository,
		staffClient,
		txMgr,
		log,
	)
	updateWeeklyUseCase := updateWeeklyUC.NewUseCase(
		slotRepository,
		bookingRepository,
		staffClient,
		txMgr,
		log,
	)
	resolveConflictUseCase := resolveConflictUC.NewUseCase(
		slotRepository,
		dismissalRepository,
		staffClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getWeekly := getWeeklyHandler.NewHandler(scheduleSvc, log)
	updateWeekly := updateWeeklyHandler.NewHandler(updateWeeklyUseCase, log)
	applyRule := applyRuleHandler.NewHandler(applyRuleUseCase, log)
	getRule := getRuleHandler.NewHandler(scheduleSvc, log)
	getMonthly := getMonthlyHandler.NewHandler(scheduleSvc, log)
	clearFuture := clearFutureHandler.NewHandler(scheduleSvc, log)
	getConflicts := getConflictsHandler.NewHandler(scheduleSvc, log)
	resolveConflict := resolveConflictHandler.NewHandler(resolveConflictUseCase, log)

	// Фоновая задача снятия устаревших booking-конфликтов
	var janitor *jobs.ConflictJanitor
	if cfg.Jobs.Enabled {
		janitor = jobs.NewConflictJanitor(slotRepository, bookingRepository, txMgr, log, cfg.Jobs.JanitorSpec)
		if err := janitor.Start(); err != nil {
			log.Fatal("Failed to start conflict janitor: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты расписаний требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Недельное расписание ---
	protected.HandleFunc("/workers/{workerId}/schedule/weekly", getWeekly.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/workers/{workerId}/schedule/weekly", updateWeekly.Handle).Methods(http.MethodPut)

	// --- Правила повторяемости ---
	protected.HandleFunc("/workers/{workerId}/schedule/rules", applyRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workers/{workerId}/schedule/rules", getRule.Handle).Methods(http.MethodGet)

	// --- Месячная сводка ---
	protected.HandleFunc("/workers/{workerId}/schedule/monthly", getMonthly.Handle).Methods(http.MethodGet)

	// --- Очистка будущего расписания ---
	protected.HandleFunc("/workers/{workerId}/schedule/future", clearFuture.Handle).Methods(http.MethodDelete)

	// --- Конфликты ---
	protected.HandleFunc("/workers/{workerId}/schedule/conflicts", getConflicts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/workers/{workerId}/schedule/conflicts/resolve", resolveConflict.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if janitor != nil {
		janitor.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
