// routes/routes.go
package routes

import (
	"context"
	"time"

	"swiftaid/config"
	"swiftaid/controllers"
	"swiftaid/interfaces"
	"swiftaid/middleware"
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators the router is built from. Redis may be
// nil, in which case rate limiting is disabled.
type Dependencies struct {
	Config *config.Config
	Stores interfaces.Stores
	Health func(ctx context.Context) error
	Redis  *redis.Client
}

// SetupRoutes initializes all application routes
func SetupRoutes(deps Dependencies) (*gin.Engine, error) {
	router := gin.New()

	// Initialize services
	services, err := initializeServices(deps)
	if err != nil {
		return nil, err
	}

	// Initialize controllers
	controllers := initializeControllers(deps.Config, services)

	// Global middleware
	setupGlobalMiddleware(router, deps)

	// Setup route groups
	setupPublicRoutes(router, controllers, deps)
	setupDashboardRoutes(router, controllers, services)
	setupAdminRoutes(router, controllers, services)
	setupStaticRoutes(router, controllers)

	return router, nil
}

// Services initialization
type Services struct {
	Auth       *services.AuthService
	Incident   *services.IncidentService
	Report     *services.ReportService
	User       *services.UserService
	Contact    *services.ContactService
	Hospital   *services.HospitalService
	Police     *services.PoliceService
	Ambulance  *services.AmbulanceService
	Assignment *services.AssignmentService
	Health     *services.HealthService
}

func initializeServices(deps Dependencies) (*Services, error) {
	jwtService := utils.NewJWTService(deps.Config.SecretKey, deps.Config.TokenTTL)
	authService, err := services.NewAuthService(deps.Config, jwtService)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:       authService,
		Incident:   services.NewIncidentService(deps.Stores),
		Report:     services.NewReportService(deps.Stores),
		User:       services.NewUserService(deps.Stores),
		Contact:    services.NewContactService(deps.Stores),
		Hospital:   services.NewHospitalService(deps.Stores),
		Police:     services.NewPoliceService(deps.Stores),
		Ambulance:  services.NewAmbulanceService(deps.Stores),
		Assignment: services.NewAssignmentService(deps.Stores),
		Health:     services.NewHealthService(deps.Health),
	}, nil
}

// Controllers initialization
type Controllers struct {
	Auth      *controllers.AuthController
	Incident  *controllers.IncidentController
	Report    *controllers.ReportController
	User      *controllers.UserController
	Directory *controllers.DirectoryController
	Dispatch  *controllers.DispatchController
	Health    *controllers.HealthController
	Static    *controllers.StaticController
}

func initializeControllers(cfg *config.Config, services *Services) *Controllers {
	return &Controllers{
		Auth:      controllers.NewAuthController(services.Auth),
		Incident:  controllers.NewIncidentController(services.Incident),
		Report:    controllers.NewReportController(services.Report),
		User:      controllers.NewUserController(services.User, services.Contact),
		Directory: controllers.NewDirectoryController(services.Hospital, services.Police),
		Dispatch:  controllers.NewDispatchController(services.Ambulance, services.Assignment),
		Health:    controllers.NewHealthController(services.Health),
		Static:    controllers.NewStaticController(cfg.StaticDir, cfg.DashboardFile),
	}
}

// Global middleware setup
func setupGlobalMiddleware(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.NewErrorHandler(logrus.StandardLogger()).Handle())
	router.Use(middleware.DefaultLoggerMiddleware())
	router.Use(middleware.CORS(middleware.NewCORSConfig(deps.Config.CORSAllowedOrigins)))
	router.Use(middleware.NewRateLimiter(middleware.RateLimitConfig{
		Redis:     deps.Redis,
		Requests:  deps.Config.RateLimitRequest,
		Window:    time.Duration(deps.Config.RateLimitWindow) * time.Minute,
		KeyPrefix: "rate_limit:api",
	}).Middleware())
}

// Public routes (no authentication required)
func setupPublicRoutes(router *gin.Engine, controllers *Controllers, deps Dependencies) {
	router.GET("/health", controllers.Health.HealthCheck)
	router.GET("/test", controllers.Health.Test)

	loginLimit := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Redis:     deps.Redis,
		Requests:  deps.Config.LoginRateLimit,
		Window:    time.Duration(deps.Config.RateLimitWindow) * time.Minute,
		KeyPrefix: "rate_limit:login",
	})
	router.POST("/admin/login", loginLimit.Middleware(), controllers.Auth.Login)
}

// Dashboard routes (requires a valid admin token)
func setupDashboardRoutes(router *gin.Engine, controllers *Controllers, services *Services) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.NewAuthMiddleware(services.Auth).RequireAuth())
	{
		dashboard.GET("/incidents", controllers.Incident.ListIncidents)
		dashboard.GET("/incidents/export", controllers.Report.ExportIncidents)
		dashboard.GET("/incidents/:id", controllers.Incident.GetIncident)
		dashboard.DELETE("/incidents/:id", controllers.Incident.DeleteIncident)

		dashboard.GET("/stats", controllers.Report.DashboardStats)

		analytics := dashboard.Group("/analytics")
		{
			analytics.GET("/trends", controllers.Report.Trends)
			analytics.GET("/hourly", controllers.Report.Hourly)
		}
	}
}

// Admin routes (requires a valid admin token)
func setupAdminRoutes(router *gin.Engine, controllers *Controllers, services *Services) {
	admin := router.Group("/admin")
	admin.Use(middleware.NewAuthMiddleware(services.Auth).RequireAuth())
	{
		admin.GET("/users", controllers.User.ListUsers)
		admin.GET("/users/:id", controllers.User.GetUser)
		admin.DELETE("/users/:id", controllers.User.DeleteUser)
		admin.GET("/contacts", controllers.User.ListContacts)

		admin.GET("/hospitals", controllers.Directory.ListHospitals)
		admin.GET("/hospitals/:id", controllers.Directory.GetHospital)
		admin.DELETE("/hospitals/:id", controllers.Directory.DeleteHospital)

		admin.GET("/police-stations", controllers.Directory.ListPoliceOfficers)
		admin.GET("/police-stations/:id", controllers.Directory.GetPoliceOfficer)
		admin.DELETE("/police-stations/:id", controllers.Directory.DeletePoliceOfficer)

		admin.GET("/ambulance-assignments", controllers.Dispatch.ListAmbulanceAssignments)
		admin.GET("/ambulances/:id", controllers.Dispatch.GetAmbulance)
		admin.POST("/ambulances/:id/assign", controllers.Dispatch.AssignAmbulance)
		admin.POST("/ambulances/:id/unassign", controllers.Dispatch.UnassignAmbulance)
		admin.DELETE("/ambulances/:id", controllers.Dispatch.DeleteAmbulance)

		admin.GET("/incident-hospitals/:incident_id", controllers.Dispatch.GetIncidentHospitals)
		admin.GET("/incident-assignments", controllers.Dispatch.ListIncidentAssignments)
		admin.POST("/create-test-assignments", controllers.Dispatch.CreateTestAssignments)
	}
}

// Dashboard page and sibling assets
func setupStaticRoutes(router *gin.Engine, controllers *Controllers) {
	router.GET("/", controllers.Static.Dashboard)
	router.NoRoute(controllers.Static.NoRoute)
}
