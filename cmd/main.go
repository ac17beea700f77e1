package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelBookingHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/get_booking"
	getBookingLogHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/get_booking_log"
	listBookingsHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/list_bookings"
	timeOffHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/time_off"
	updateBookingHandler "github.com/m04kA/estimate-scheduler/internal/api/handlers/update_booking"
	"github.com/m04kA/estimate-scheduler/internal/api/middleware"
	"github.com/m04kA/estimate-scheduler/internal/config"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
	bookingLogRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/bookinglog"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/migrations"
	rosterRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/roster"
	timeOffRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/timeoff"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
	bookingsService "github.com/m04kA/estimate-scheduler/internal/service/bookings"
	timeOffService "github.com/m04kA/estimate-scheduler/internal/service/timeoff"
	createBookingUC "github.com/m04kA/estimate-scheduler/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/estimate-scheduler/internal/usecase/get_availability"
	updateBookingUC "github.com/m04kA/estimate-scheduler/internal/usecase/update_booking"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
	"github.com/m04kA/estimate-scheduler/pkg/metrics"
	"github.com/m04kA/estimate-scheduler/pkg/telemetry"
	"github.com/m04kA/estimate-scheduler/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting estimate-scheduler...")
	log.Info("Configuration loaded from %s", *configPath)

	ctx := context.Background()

	// Трассировка (no-op без endpoint)
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	storeDialect, err := cfg.Database.Dialect()
	if err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	db, err := dialect.Open(storeDialect, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	if storeDialect.Name() == dialect.Postgres {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s)", storeDialect.Name())

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db, storeDialect, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, storeDialect)
	bookingLogRepository := bookingLogRepo.NewRepository(wrappedDB, storeDialect)
	rosterRepository := rosterRepo.NewRepository(wrappedDB, storeDialect)
	timeOffRepository := timeOffRepo.NewRepository(wrappedDB, storeDialect)

	// Интеграция с RFMS
	rfmsConfig := cfg.RFMS.ToClientConfig()
	rfmsHTTP := rfms.NewHTTPClient(rfmsConfig.Timeout)
	rfmsSession := rfms.NewSessionCache(rfmsConfig, rfmsHTTP, log, metricsCollector)
	rfmsClient := rfms.NewClient(rfmsConfig, rfmsHTTP, rfmsSession, log, metricsCollector)
	if rfmsClient.Enabled() {
		log.Info("RFMS integration enabled (base_url=%s, store=%d)", rfmsConfig.BaseURL, rfmsConfig.StoreNumber)
	} else {
		log.Warn("RFMS integration disabled: bookings will be stored locally only")
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingLogRepository,
		txMgr,
		metricsCollector,
		log,
	)
	timeOffSvc := timeOffService.NewService(
		timeOffRepository,
		rosterRepository,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		bookingLogRepository,
		rosterRepository,
		timeOffRepository,
		rfmsClient,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		bookingLogRepository,
		rfmsClient,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		rosterRepository,
		timeOffRepository,
		cfg.Booking.TimeSlots,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBookingLog := getBookingLogHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	timeOff := timeOffHandler.NewHandler(timeOffSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Actor, middleware.Observe(metricsCollector, log))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/log", getBookingLog.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Отсутствия оценщиков ---
	api.HandleFunc("/estimators/{estimatorId}/time-off", timeOff.List).Methods(http.MethodGet)
	api.HandleFunc("/estimators/{estimatorId}/time-off/check", timeOff.Check).Methods(http.MethodGet)
	api.HandleFunc("/estimators/{estimatorId}/time-off", timeOff.Upsert).Methods(http.MethodPost)
	api.HandleFunc("/time-off/{timeOffId}", timeOff.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "estimate-scheduler"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
