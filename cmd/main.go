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

	cancelBookingHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/get_customer_bookings"
	getLocationBookingsHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/get_location_bookings"
	getLocationHoursHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/get_location_hours"
	updateLocationHoursHandler "github.com/klmnv/Salon-BookingService/internal/api/handlers/update_location_hours"
	"github.com/klmnv/Salon-BookingService/internal/api/middleware"
	"github.com/klmnv/Salon-BookingService/internal/config"
	bookingRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/booking"
	hoursRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/hours"
	staffRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/staff"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
	bookingsService "github.com/klmnv/Salon-BookingService/internal/service/bookings"
	hoursService "github.com/klmnv/Salon-BookingService/internal/service/hours"
	createBookingUC "github.com/klmnv/Salon-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/klmnv/Salon-BookingService/internal/usecase/get_availability"
	"github.com/klmnv/Salon-BookingService/pkg/dbmetrics"
	"github.com/klmnv/Salon-BookingService/pkg/logger"
	"github.com/klmnv/Salon-BookingService/pkg/metrics"
	"github.com/klmnv/Salon-BookingService/pkg/simpletxmanager"
	"github.com/klmnv/Salon-BookingService/pkg/txmanager"
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

	log.Info("Starting Salon-BookingService...")
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

	// Инициализируем клиент каталога локаций
	directoryClient := locationdirectory.NewClient(
		cfg.LocationDirectory.URL,
		time.Duration(cfg.LocationDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Location directory client initialized (url=%s, timeout=%ds)",
		cfg.LocationDirectory.URL, cfg.LocationDirectory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		staffRepository   *staffRepo.Repository
		hoursRepository   *hoursRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		hoursRepository = hoursRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		hoursRepository = hoursRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		directoryClient,
		log,
	)
	hoursSvc := hoursService.NewService(
		hoursRepository,
		directoryClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		staffRepository,
		hoursRepository,
		directoryClient,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		staffRepository,
		hoursRepository,
		directoryClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getLocationBookings := getLocationBookingsHandler.NewHandler(bookingSvc, log)
	getLocationHours := getLocationHoursHandler.NewHandler(hoursSvc, log)
	updateLocationHours := updateLocationHoursHandler.NewHandler(hoursSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты локации на дату
	api.HandleFunc("/locations/{locationId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Недельное расписание локации
	api.HandleFunc("/locations/{locationId}/hours",
		getLocationHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление локацией (для менеджеров) ---
	// Список бронирований локации
	protected.HandleFunc("/locations/{locationId}/bookings", getLocationBookings.Handle).Methods(http.MethodGet)

	// Обновление расписания локации
	protected.HandleFunc("/locations/{locationId}/hours", updateLocationHours.Handle).Methods(http.MethodPut)

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
