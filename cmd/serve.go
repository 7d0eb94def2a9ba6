package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getDashboardHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_dashboard"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getRoomInsightsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_room_insights"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	updateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache/resourcecache"
	paymentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	catalogServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/userservice"
	analyticsService "github.com/m04kA/SMC-ReservationService/internal/service/analytics"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	updateReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/tracing"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

type notificationSink interface {
	Send(ctx context.Context, n domain.Notification) error
	Close() error
}

func runServe(ctx context.Context) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", cfgFile)

	// Трассировка (no-op, если выключена)
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:       cfg.Tracing.Enabled,
		ServiceName:   cfg.Metrics.ServiceName,
		Endpoint:      cfg.Tracing.Endpoint,
		SamplingRatio: cfg.Tracing.SamplingRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("Tracing shutdown failed: %v", err)
		}
	}()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		recorder         dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxRetries(cfg.Database.TxMaxRetries),
		txmanager.WithBackoff(time.Duration(cfg.Database.TxRetryBackoff)*time.Millisecond),
	)

	// Интеграционные клиенты
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		cfg.CatalogService.TimeoutDuration(),
		cfg.CatalogService.Breaker("catalog-service"),
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		cfg.UserService.TimeoutDuration(),
		cfg.UserService.Breaker("user-service"),
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Кэш каталога ресурсов в Redis (опционально)
	var catalog resourcecache.Catalog = catalogClient
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, resource catalog is not cached: %v", cfg.Redis.Addr, err)
		} else {
			catalog = resourcecache.New(redisClient, catalogClient, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)
			log.Info("Resource catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}

	// Приёмник уведомлений
	var sink notificationSink = notifier.NewLogSink(log)
	if cfg.RabbitMQ.Enabled {
		rabbitSink, err := notifier.NewRabbitSink(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return fmt.Errorf("init rabbitmq: %w", err)
		}
		sink = rabbitSink
		log.Info("Notifications are published to RabbitMQ exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer sink.Close()

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)

	// Сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		catalog,
		sink,
		txMgr,
		metricsCollector,
		log,
		cfg.Scheduling.NotificationChannel,
	)
	analyticsSvc := analyticsService.NewService(
		reservationRepository,
		paymentRepository,
		userClient,
		catalog,
		log,
	)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		catalog,
		sink,
		txMgr,
		metricsCollector,
		log,
		cfg.Scheduling.NotificationChannel,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		sink,
		txMgr,
		metricsCollector,
		log,
		cfg.Scheduling.NotificationChannel,
	)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getDashboard := getDashboardHandler.NewHandler(analyticsSvc, log)
	getRoomInsights := getRoomInsightsHandler.NewHandler(analyticsSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-Tenant-ID и X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/resources/{resourceId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Аналитика ---
	api.HandleFunc("/analytics/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	api.HandleFunc("/analytics/rooms", getRoomInsights.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("server failed: %w", err)
	}

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

	log.Info("Server stopped gracefully")
	return nil
}
