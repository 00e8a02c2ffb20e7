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

	cancelAppointmentHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/check_slot"
	createAppointmentHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/get_available_slots"
	getCalendarPolicyHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/get_calendar_policy"
	getClientAppointmentsHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/get_client_appointments"
	getTenantAppointmentsHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/get_tenant_appointments"
	rescheduleAppointmentHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/update_appointment_status"
	updateCalendarPolicyHandler "github.com/MBrunoS/ezpet-sub000/internal/api/handlers/update_calendar_policy"
	"github.com/MBrunoS/ezpet-sub000/internal/api/middleware"
	"github.com/MBrunoS/ezpet-sub000/internal/config"
	appointmentRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/appointment"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogServiceClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	clientServiceClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/clientservice"
	appointmentsService "github.com/MBrunoS/ezpet-sub000/internal/service/appointments"
	policyService "github.com/MBrunoS/ezpet-sub000/internal/service/policy"
	createAppointmentUC "github.com/MBrunoS/ezpet-sub000/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/MBrunoS/ezpet-sub000/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/MBrunoS/ezpet-sub000/internal/usecase/reschedule_appointment"
	"github.com/MBrunoS/ezpet-sub000/pkg/dbmetrics"
	"github.com/MBrunoS/ezpet-sub000/pkg/logger"
	"github.com/MBrunoS/ezpet-sub000/pkg/metrics"
	"github.com/MBrunoS/ezpet-sub000/pkg/simpletxmanager"
	"github.com/MBrunoS/ezpet-sub000/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EzPet scheduling service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	var (
		appointmentRepository *appointmentRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		catalogClient,
		txMgr,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		catalogClient,
		clientClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		catalogClient,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		catalogClient,
		txMgr,
		log,
	)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getTenantAppointments := getTenantAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCalendarPolicy := getCalendarPolicyHandler.NewHandler(policySvc, log)
	updateCalendarPolicy := updateCalendarPolicyHandler.NewHandler(policySvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes

	// Annotated slot sequence for one tenant day
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Pre-flight check of one specific slot
	api.HandleFunc("/tenants/{tenantId}/slot-availability",
		checkSlot.Handle).Methods(http.MethodGet)

	// Tenant calendar policy
	api.HandleFunc("/tenants/{tenantId}/calendar-policy",
		getCalendarPolicy.Handle).Methods(http.MethodGet)

	// Protected routes (require X-User-ID header)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Appointments
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Client history
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Tenant management (for managers)
	protected.HandleFunc("/tenants/{tenantId}/appointments", getTenantAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/calendar-policy", updateCalendarPolicy.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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
