package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/config"
	"github.com/BruksfildServices01/dock-scheduler/internal/erp"
	"github.com/BruksfildServices01/dock-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/dock-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/dock-scheduler/internal/lock"
	"github.com/BruksfildServices01/dock-scheduler/internal/middleware"
	"github.com/BruksfildServices01/dock-scheduler/internal/permission"
	ucAppointment "github.com/BruksfildServices01/dock-scheduler/internal/usecase/appointment"
	ucRegistry "github.com/BruksfildServices01/dock-scheduler/internal/usecase/registry"
	ucSchedule "github.com/BruksfildServices01/dock-scheduler/internal/usecase/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/validators"
)

// RegisterRoutes monta a API e devolve a função que libera os recursos
// de fundo (fila de auditoria, conexão redis).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) func() {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	if err := validators.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	registryRepo := infraRepo.NewRegistryGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, cfg.AuditQueueSize, log)

	locker, closeLocker := newLocker(cfg, log)
	publisher := erp.New(cfg.ERP, log)
	checker := permission.NewChecker(db, permission.DefaultPolicy())
	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst)

	// ======================================================
	// 🧠 USE CASES - APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
		cfg.Timezone,
		log,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
		cfg.Timezone,
		log,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	checkInUC := ucAppointment.NewCheckInAppointment(
		appointmentRepo,
		publisher,
		auditDispatcher,
		cfg.Timezone,
		log,
	)

	checkOutUC := ucAppointment.NewCheckOutAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
		cfg.Timezone,
	)

	// ======================================================
	// 🧠 USE CASES - PLANT SCHEDULE
	// ======================================================
	availabilityUC := ucSchedule.NewGetAvailability(scheduleRepo, cfg.Timezone)
	operatingHoursUC := ucSchedule.NewOperatingHours(scheduleRepo, auditDispatcher, log)
	overridesUC := ucSchedule.NewOverrides(scheduleRepo, auditDispatcher)
	capacityUC := ucSchedule.NewCapacity(scheduleRepo, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES - CADASTROS
	// ======================================================
	plantsUC := ucRegistry.NewPlants(registryRepo, auditDispatcher, log)
	suppliersUC := ucRegistry.NewSuppliers(registryRepo, auditDispatcher, log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	meHandler := handlers.NewMeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		checkInUC,
		checkOutUC,
		listAppointmentsUC,
	)

	plantScheduleHandler := handlers.NewPlantScheduleHandler(
		availabilityUC,
		operatingHoursUC,
		overridesUC,
		capacityUC,
		cfg.Timezone,
	)

	registryHandler := handlers.NewRegistryHandler(plantsUC, suppliersUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, log)

	can := func(functionID string, lvl permission.Level) gin.HandlerFunc {
		return middleware.RequirePermission(checker, functionID, lvl, log)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", middleware.RateLimit(loginLimiter), authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments",
				can(permission.FunctionViewAppointments, permission.LevelViewer),
				appointmentHandler.List)
			secured.POST("/appointments",
				can(permission.FunctionCreateAppointment, permission.LevelEditor),
				appointmentHandler.Create)
			secured.PUT("/appointments/:id",
				can(permission.FunctionEditAppointment, permission.LevelEditor),
				appointmentHandler.Update)
			secured.DELETE("/appointments/:id",
				can(permission.FunctionDeleteAppointment, permission.LevelEditor),
				appointmentHandler.Delete)
			secured.POST("/appointments/:id/check-in",
				can(permission.FunctionCheckIn, permission.LevelEditor),
				appointmentHandler.CheckIn)
			secured.POST("/appointments/:id/check-out",
				can(permission.FunctionCheckOut, permission.LevelEditor),
				appointmentHandler.CheckOut)

			// ------------------------------
			// CADASTROS
			// ------------------------------
			secured.GET("/plants",
				can(permission.FunctionViewPlants, permission.LevelViewer),
				registryHandler.ListPlants)
			secured.GET("/suppliers",
				can(permission.FunctionViewSuppliers, permission.LevelViewer),
				registryHandler.ListSuppliers)

			plants := secured.Group("/")
			plants.Use(
				middleware.AdminOnly(),
				can(permission.FunctionEditPlant, permission.LevelEditor),
			)
			{
				plants.POST("/plants", registryHandler.CreatePlant)
				plants.PUT("/plants/:id", registryHandler.UpdatePlant)
				plants.DELETE("/plants/:id", registryHandler.DeactivatePlant)
			}

			suppliers := secured.Group("/")
			suppliers.Use(
				middleware.AdminOnly(),
				can(permission.FunctionEditSupplier, permission.LevelEditor),
			)
			{
				suppliers.POST("/suppliers", registryHandler.CreateSupplier)
				suppliers.PUT("/suppliers/:id", registryHandler.UpdateSupplier)
				suppliers.DELETE("/suppliers/:id", registryHandler.DeactivateSupplier)
			}

			// ------------------------------
			// PLANT SCHEDULE (leitura)
			// ------------------------------
			view := can(permission.FunctionViewAppointments, permission.LevelViewer)

			secured.GET("/plants/:id/availability", view, plantScheduleHandler.Availability)
			secured.GET("/plants/:id/operating-hours", view, plantScheduleHandler.GetOperatingHours)
			secured.GET("/plants/:id/schedule-config", view, plantScheduleHandler.ListScheduleConfigs)
			secured.GET("/plants/:id/default-schedule", view, plantScheduleHandler.ListDefaultSchedules)
			secured.GET("/plants/:id/max-capacity", view, plantScheduleHandler.GetMaxCapacity)

			// ------------------------------
			// PLANT SCHEDULE (configuração)
			// ------------------------------
			configure := secured.Group("/")
			configure.Use(
				middleware.AdminOnly(),
				can(permission.FunctionConfigurePlantHours, permission.LevelEditor),
			)
			{
				configure.PUT("/plants/:id/operating-hours", plantScheduleHandler.SaveOperatingHours)
				configure.POST("/plants/:id/schedule-config", plantScheduleHandler.UpsertScheduleConfig)
				configure.DELETE("/schedule-config/:id", plantScheduleHandler.DeleteScheduleConfig)
				configure.POST("/plants/:id/default-schedule", plantScheduleHandler.UpsertDefaultSchedule)
				configure.DELETE("/default-schedule/:id", plantScheduleHandler.DeleteDefaultSchedule)
				configure.PUT("/plants/:id/max-capacity", plantScheduleHandler.SetMaxCapacity)

				configure.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return func() {
		auditDispatcher.Close()
		closeLocker()
	}
}

// newLocker escolhe o lock por planta/dia conforme LOCK_BACKEND.
func newLocker(cfg *config.Config, log *zap.Logger) (lock.Locker, func()) {
	if cfg.LockBackend != "redis" {
		return lock.NewLocal(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	log.Info("using redis lock", zap.String("addr", cfg.RedisAddr))

	return lock.NewRedis(client, cfg.LockTTL, log), func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close failed", zap.Error(err))
		}
	}
}
