package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skymovel/app-core/internal/api/handler"
	"github.com/skymovel/app-core/internal/api/middleware"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/internal/core/service"
)

// Dependencies carries everything the router needs. Mongo and Redis handles
// may be nil in mock-only deployments; the readiness probe skips absent ones.
type Dependencies struct {
	Gateway  ports.SkyGateway
	Sessions *service.SessionService
	Cache    *service.CustomerCache
	Account  *service.AccountService
	Requests *service.RequestService

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("skymobile"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	dashboardHandler := handler.NewDashboardHandler(deps.Cache)
	planHandler := handler.NewPlanHandler(deps.Account)
	billingHandler := handler.NewBillingHandler(deps.Account)
	profileHandler := handler.NewProfileHandler(deps.Account)
	requestHandler := handler.NewRequestHandler(deps.Requests)
	flowHandler := handler.NewFlowHandler(deps.Gateway, deps.Requests)
	authRequired := middleware.Auth(deps.JWTSecret)

	// --- Session routes (no auth: the login and splash checks) ---
	e.POST("/v1/auth/login", sessionHandler.Login)
	e.POST("/v1/session/restore", sessionHandler.Restore)
	e.POST("/v1/session/onboarding-seen", sessionHandler.MarkOnboardingSeen)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authRequired)
	v1.POST("/auth/logout", sessionHandler.Logout)
	v1.GET("/session", sessionHandler.Get)
	v1.PUT("/session/biometrics", sessionHandler.SetBiometrics)

	v1.GET("/dashboard", dashboardHandler.Get)
	v1.POST("/dashboard/load", dashboardHandler.Load)
	v1.POST("/dashboard/consumption/refresh", dashboardHandler.RefreshConsumption)
	v1.POST("/dashboard/plan/refresh", dashboardHandler.RefreshPlan)
	v1.POST("/dashboard/notifications/refresh", dashboardHandler.RefreshNotifications)
	v1.DELETE("/dashboard/error", dashboardHandler.ClearError)
	v1.POST("/notifications/:id/read", dashboardHandler.MarkNotificationRead)

	v1.GET("/plans/available", planHandler.Available)
	v1.POST("/plans/change", planHandler.Change)
	v1.GET("/data-packages", planHandler.Packages)
	v1.POST("/data-packages/purchase", planHandler.Purchase)

	v1.GET("/invoices", billingHandler.Invoices)
	v1.PUT("/billing/due-date", billingHandler.ChangeDueDate)
	v1.PUT("/billing/payment-method", billingHandler.ChangePaymentMethod)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	v1.POST("/service-requests", requestHandler.Create)
	v1.GET("/service-requests", requestHandler.History)

	v1.POST("/flows/chip-activation", flowHandler.StartChipActivation)
	v1.GET("/flows/chip-activation/:id", flowHandler.GetChipActivation)
	v1.POST("/flows/chip-activation/:id/next", flowHandler.AdvanceChipActivation)
	v1.POST("/flows/chip-activation/:id/back", flowHandler.BackChipActivation)
	v1.POST("/flows/cancellation", flowHandler.StartCancellation)
	v1.GET("/flows/cancellation/:id", flowHandler.GetCancellation)
	v1.POST("/flows/cancellation/:id/next", flowHandler.AdvanceCancellation)
	v1.POST("/flows/cancellation/:id/back", flowHandler.BackCancellation)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
