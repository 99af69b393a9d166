package routes

import (
	"DentalCenter/config"
	"DentalCenter/controllers"
	"DentalCenter/database"
	"DentalCenter/handlers"
	"DentalCenter/middlewares"
	"DentalCenter/models"
	"DentalCenter/repositories"
	"DentalCenter/services"
	"DentalCenter/storage"
	"DentalCenter/utils"
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the outside resources the router is built from.
type Dependencies struct {
	Config *config.AppConfig
	Logger *zap.Logger
	Store  storage.Storage
	Mailer utils.Mailer
	Clock  services.Clock
}

// SetupRoutes loads the stored collections and wires the router.
func SetupRoutes(ctx context.Context, deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	metrics := middlewares.NewMetrics()
	router.Use(middlewares.RequestLogger(deps.Logger))
	router.Use(metrics.Middleware())
	router.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	// Initialize repositories, services, and handlers
	seedPatients, err := database.SeedPatients()
	if err != nil {
		return nil, fmt.Errorf("failed to build seed patients: %w", err)
	}
	patientRepo := repositories.NewPatientRepository(deps.Store, deps.Logger, seedPatients)
	incidentRepo := repositories.NewIncidentRepository(deps.Store, deps.Logger, database.SeedIncidents())
	sessionRepo := repositories.NewSessionRepository(deps.Store, deps.Logger)
	patientRepo.Load(ctx)
	incidentRepo.Load(ctx)
	metrics.TrackCollection("patients", patientRepo.Count)
	metrics.TrackCollection("incidents", incidentRepo.Count)

	tokens, err := utils.NewTokenMaker(cfg.SymmetricKey)
	if err != nil {
		return nil, err
	}
	admin, err := services.NewAdminAccount("1", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to build admin account: %w", err)
	}

	authService := services.NewAuthService([]models.AdminAccount{admin}, patientRepo, sessionRepo, tokens, deps.Logger)
	patientService := services.NewPatientService(patientRepo, incidentRepo, deps.Logger)
	incidentService := services.NewIncidentService(incidentRepo, patientRepo, deps.Logger)
	dashboardService := services.NewDashboardService(patientRepo, incidentRepo, deps.Clock)
	calendarService := services.NewCalendarService(patientRepo, incidentRepo, deps.Clock)
	reminderService := services.NewReminderService(patientRepo, incidentRepo, deps.Mailer, deps.Clock, cfg.ReminderWindow, deps.Logger)

	// Register routes
	authController := controllers.NewAuthController(handlers.NewAuthHandler(authService), authService)
	authController.RegisterRoutes(router)

	controllers.SetupAdminRoutes(
		router,
		authService,
		handlers.NewPatientHandler(patientService),
		handlers.NewIncidentHandler(incidentService, reminderService),
		handlers.NewCalendarHandler(calendarService),
	)

	controllers.SetupRootRoute(router, authService, handlers.NewDashboardHandler(dashboardService), metrics)

	return router, nil
}
