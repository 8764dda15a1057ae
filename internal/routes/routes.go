package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/salon-scheduler/internal/usecase/client"
)

// Deps são os singletons de infraestrutura montados no main.
type Deps struct {
	Config     *config.Config
	Repo       domain.Repository
	AuditStore audit.Store
	Audit      *audit.Dispatcher
	Cache      domain.AvailabilityCache
	Log        *zap.Logger
}

// NewCalendar monta os catálogos de horário e serviço a partir da config.
func NewCalendar(cfg *config.Config) (*ucAppointment.Calendar, error) {
	var (
		slots *domain.SlotCatalog
		err   error
	)
	if labels := cfg.Slots(); len(labels) > 0 {
		slots, err = domain.NewSlotCatalog(labels)
	} else {
		slots, err = domain.IntervalSlots(cfg.SlotOpening, cfg.SlotClosing, cfg.SlotIntervalMinutes)
	}
	if err != nil {
		return nil, fmt.Errorf("slot catalog: %w", err)
	}

	services := make([]domain.Service, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		services = append(services, domain.Service{Tag: s.Tag, Name: s.Name, Price: s.Price})
	}
	catalog, err := domain.NewServiceCatalog(services)
	if err != nil {
		return nil, fmt.Errorf("service catalog: %w", err)
	}

	return ucAppointment.NewCalendar(slots, catalog, cfg.Timezone), nil
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins()))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	calendar, err := NewCalendar(deps.Config)
	if err != nil {
		return err
	}

	arbiter := domain.NewArbiter(deps.Log)
	limiter := middleware.NewRateLimiter(deps.Config.RateLimitPerMinute, deps.Log)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	resolveClientUC := ucClient.NewResolveOrCreate(deps.Repo, deps.Audit)

	createAppointmentUC := ucAppointment.NewCreate(deps.Repo, calendar, arbiter, deps.Cache, deps.Audit)
	bookAppointmentUC := ucAppointment.NewBook(resolveClientUC, createAppointmentUC)
	availabilityUC := ucAppointment.NewGetAvailability(deps.Repo, calendar, arbiter, deps.Cache)

	transitionUC := ucAppointment.NewTransitionStatus(deps.Repo, arbiter, deps.Cache, deps.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(transitionUC)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(transitionUC)
	bulkTransitionUC := ucAppointment.NewBulkTransition(transitionUC)

	editAppointmentUC := ucAppointment.NewEditAppointment(deps.Repo, calendar, arbiter, deps.Cache, deps.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(deps.Repo, arbiter, deps.Cache, deps.Audit)

	listByClientUC := ucAppointment.NewListByClient(deps.Repo, arbiter)
	listAppointmentsUC := ucAppointment.NewListAppointments(deps.Repo, arbiter)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		calendar.Services,
		availabilityUC,
		bookAppointmentUC,
		listByClientUC,
		editAppointmentUC,
		cancelAppointmentUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		transitionUC,
		completeAppointmentUC,
		bulkTransitionUC,
		editAppointmentUC,
		deleteAppointmentUC,
	)

	authHandler := handlers.NewAuthHandler(deps.Config, deps.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditStore)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		public := api.Group("/")
		public.Use(limiter.Middleware())
		{
			public.GET("/services", bookingHandler.Services)
			public.GET("/appointments/availability", bookingHandler.Availability)
			public.POST("/appointments", bookingHandler.Book)

			public.GET("/clients/:clientId/appointments", bookingHandler.ClientAppointments)
			public.PATCH("/clients/:clientId/appointments/:id", bookingHandler.Edit)
			public.PATCH("/clients/:clientId/appointments/:id/cancel", bookingHandler.Cancel)

			// ------------------------------
			// 🔐 AUTH
			// ------------------------------
			public.POST("/admin/login", authHandler.Login)
		}

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(deps.Config.JWTSecret))
		{
			admin.GET("/appointments", appointmentHandler.List)
			admin.PATCH("/appointments/status", appointmentHandler.BulkStatus)
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id", appointmentHandler.Edit)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
