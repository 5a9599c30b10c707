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

	cancelBookingHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/create_booking"
	createInterviewerHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/create_interviewer"
	createSlotHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/create_slot"
	getBookingHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/get_booking"
	getInterviewerHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/get_interviewer"
	getInterviewerSlotsHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/get_interviewer_slots"
	getStatisticsHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/get_statistics"
	getUserBookingsHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/update_booking_status"
	updateInterviewerHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/update_interviewer"
	updateSlotHandler "github.com/memberhq/SMP-AppointmentService/internal/api/handlers/update_slot"
	"github.com/memberhq/SMP-AppointmentService/internal/api/middleware"
	"github.com/memberhq/SMP-AppointmentService/internal/config"
	bookingRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/booking"
	interviewerRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/interviewer"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	profileServiceClient "github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
	bookingsService "github.com/memberhq/SMP-AppointmentService/internal/service/bookings"
	interviewersService "github.com/memberhq/SMP-AppointmentService/internal/service/interviewers"
	slotsService "github.com/memberhq/SMP-AppointmentService/internal/service/slots"
	statisticsService "github.com/memberhq/SMP-AppointmentService/internal/service/statistics"
	cancelBookingUC "github.com/memberhq/SMP-AppointmentService/internal/usecase/cancel_booking"
	createBookingUC "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_booking"
	createSlotUC "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_slot"
	rescheduleBookingUC "github.com/memberhq/SMP-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
	"github.com/memberhq/SMP-AppointmentService/pkg/logger"
	"github.com/memberhq/SMP-AppointmentService/pkg/metrics"
	"github.com/memberhq/SMP-AppointmentService/pkg/simpletxmanager"
	"github.com/memberhq/SMP-AppointmentService/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMP-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Verify the connection
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize integration clients
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Initialize repositories (with or without metrics)
	var (
		slotRepository        *slotRepo.Repository
		bookingRepository     *bookingRepo.Repository
		interviewerRepository *interviewerRepo.Repository
	)

	// Transaction manager interface shared by services and use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		interviewerRepository = interviewerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		interviewerRepository = interviewerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialize services
	interviewerSvc := interviewersService.NewService(
		interviewerRepository,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		interviewerRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		interviewerRepository,
		profileClient,
		txMgr,
		log,
	)
	statisticsSvc := statisticsService.NewService(
		slotRepository,
		bookingRepository,
		log,
	)

	// Initialize use cases
	createSlotUseCase := createSlotUC.NewUseCase(
		slotRepository,
		interviewerRepository,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		interviewerRepository,
		profileClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Initialize handlers
	createInterviewer := createInterviewerHandler.NewHandler(interviewerSvc, log)
	getInterviewer := getInterviewerHandler.NewHandler(interviewerSvc, log)
	updateInterviewer := updateInterviewerHandler.NewHandler(interviewerSvc, log)
	createSlot := createSlotHandler.NewHandler(createSlotUseCase, log)
	getInterviewerSlots := getInterviewerSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getStatistics := getStatisticsHandler.NewHandler(statisticsSvc, log)

	// Set up the router
	r := mux.NewRouter()

	// Metrics middleware (if enabled)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (public, no authentication)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Identity extracts X-User-ID when present; guest requests
	// pass through and handlers that need an authenticated member enforce it.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identity)

	// --- Interviewers ---
	api.HandleFunc("/interviewers", createInterviewer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/interviewers", getInterviewer.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/interviewers/{id}", getInterviewer.Handle).Methods(http.MethodGet)
	api.HandleFunc("/interviewers/{id}", updateInterviewer.Handle).Methods(http.MethodPut)
	api.HandleFunc("/interviewers/{id}", updateInterviewer.HandleDeactivate).Methods(http.MethodDelete)
	api.HandleFunc("/interviewers/{id}/slots", getInterviewerSlots.Handle).Methods(http.MethodGet)

	// --- Slots ---
	api.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{id}", updateSlot.Handle).Methods(http.MethodPut)
	api.HandleFunc("/slots/{id}", updateSlot.HandleDelete).Methods(http.MethodDelete)

	// --- Bookings ---
	// Specific paths are registered before /bookings/{id}.
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/my", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/guest", getUserBookings.HandleGuest).Methods(http.MethodGet)
	api.HandleFunc("/bookings/ref/{code}", getBooking.HandleByReference).Methods(http.MethodGet)
	api.HandleFunc("/bookings/reminders/due", updateBookingStatus.HandleDueReminders).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{id}/reminded", updateBookingStatus.HandleReminded).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// --- Statistics ---
	api.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// Create the HTTP server
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop connection pool metrics collection
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
