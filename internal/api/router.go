package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clubhouse/board/docs"
	"github.com/clubhouse/board/internal/api/cookie"
	"github.com/clubhouse/board/internal/api/handler"
	"github.com/clubhouse/board/internal/api/middleware"
	"github.com/clubhouse/board/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Authenticator ports.Authenticator
	Sessions      ports.SessionManager
	Membership    ports.MembershipService
	Messages      ports.MessageService
	Codec         *cookie.Codec
	// Readiness maps a dependency name to its health check.
	Readiness map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// Request metrics get their own registry so several routers can coexist
	// in one process; /metrics serves it together with the default one.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "board",
		Registerer: reg,
	}))
	e.Use(middleware.Session(d.Codec, d.Sessions, d.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Authenticator, d.Sessions, d.Membership, d.Codec, d.Logger)
	messageHandler := handler.NewMessageHandler(d.Messages)
	userHandler := handler.NewUserHandler(d.Membership)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/sign-up", authHandler.Register)
	auth.POST("/log-in", authHandler.Login)
	auth.POST("/log-out", authHandler.Logout)
	auth.GET("/log-out", authHandler.Logout)
	auth.GET("/current-user", authHandler.Current, middleware.RequireAuthenticated())
	auth.POST("/join-club", authHandler.JoinClub)

	// --- Message routes (policy enforced in the service) ---
	messages := e.Group("/messages")
	messages.GET("", messageHandler.List)
	messages.POST("", messageHandler.Create)
	messages.GET("/:id", messageHandler.Get)
	messages.DELETE("/:id", messageHandler.Delete)

	e.GET("/users", userHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
