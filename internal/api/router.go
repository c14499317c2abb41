package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/frcparts/components-api/docs"
	"github.com/frcparts/components-api/internal/api/handler"
	"github.com/frcparts/components-api/internal/api/middleware"
	"github.com/frcparts/components-api/internal/core/ports"
	"github.com/frcparts/components-api/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

// Dependencies are the services the router exposes. Registerer and Gatherer
// default to the global Prometheus registry.
type Dependencies struct {
	Log           zerolog.Logger
	Auth          ports.AuthService
	Authenticator ports.Authenticator
	Catalog       ports.CatalogService
	Inventory     ports.InventoryService
	Activity      ports.ActivityService
	Checks        []handlers.Check

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	// Metrics wrap the request logger, which hands errors to the HTTPErrorHandler
	// first, so the recorded status is the one the client received.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "frc_inventory",
		Subsystem:  metricsSubsystem,
		Registerer: deps.Registerer,
	}))
	e.Use(requestLogger(deps.Log))

	requireUser := middleware.Auth(deps.Authenticator)

	// --- Operational routes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/", healthHandler.Banner)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/token", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/users/me", authHandler.Me, requireUser)
	e.POST("/users/me/deactivate", authHandler.Deactivate, requireUser)

	// --- Public catalog: anonymous reads, authenticated writes ---
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	e.GET("/public-components", catalogHandler.List)
	e.GET("/public-components/search", catalogHandler.Search)
	e.GET("/public-components/:id", catalogHandler.Get)
	e.POST("/public-components", catalogHandler.Create, requireUser)
	e.PUT("/public-components/:id", catalogHandler.Update, requireUser)
	e.DELETE("/public-components/:id", catalogHandler.Delete, requireUser)
	e.GET("/categories", catalogHandler.Categories)
	e.GET("/vendors", catalogHandler.Vendors)

	// --- Team inventory: every route authenticated and team-scoped ---
	inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
	activityHandler := handler.NewActivityHandler(deps.Activity)

	components := e.Group("/team-components", requireUser)
	components.POST("", inventoryHandler.Create)
	components.GET("/:id", inventoryHandler.Get)
	components.PUT("/:id", inventoryHandler.Update)
	components.PATCH("/:id/quantity", inventoryHandler.SetQuantity)
	components.DELETE("/:id", inventoryHandler.Delete)

	teams := e.Group("/teams/:team_id", requireUser, middleware.TeamScope("team_id"))
	teams.GET("/components", inventoryHandler.ListByTeam)
	teams.GET("/inventory/summary", inventoryHandler.Summary)
	teams.GET("/activity", activityHandler.List)

	return e
}

// requestLogger writes one zerolog entry per request. Query strings are left
// out of the logged URI.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error()
			} else if v.Status >= 400 {
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
