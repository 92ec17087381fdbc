package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/vendorhub/supplier-portal/internal/api/handler"
	"github.com/vendorhub/supplier-portal/internal/api/middleware"
	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires together. The composition root
// picks the concrete backends; the router only connects them.
type Deps struct {
	Sessions ports.SessionService
	Activity ports.ActivityRepository
	Provider ports.IdentityProvider
	Codec    *middleware.CookieCodec
	Pingers  []handlers.Pinger
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	_, canSwitch := d.Provider.(ports.RoleSwitcher)
	authHandler := handler.NewAuthHandler(d.Sessions, d.Codec)
	activityHandler := handler.NewActivityHandler(d.Activity)
	pageHandler := handler.NewPageHandler(canSwitch)
	session := middleware.Session(d.Sessions, d.Codec)

	// --- Health probes and metrics (no session resolution) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(d.Pingers...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Credential operations ---
	auth := e.Group("/auth", session)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	// The switch endpoint exists only when the composed provider can
	// actually switch; upstream deployments never expose it.
	if canSwitch {
		auth.POST("/switch-role", authHandler.SwitchRole)
	}

	// --- JSON API ---
	apiGroup := e.Group("/api", session)
	apiGroup.GET("/me", authHandler.Session)
	apiGroup.GET("/activity", activityHandler.List, middleware.Guard(domain.RoleManagement))

	// --- Pages ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/dashboard")
	})

	pages := e.Group("", session)
	pages.GET("/login", pageHandler.Login)
	pages.GET("/dashboard", pageHandler.Dashboard, middleware.Guard())
	pages.GET("/agreements", pageHandler.Section("Agreements"), middleware.Guard(domain.RoleLegal, domain.RolePurchasing))
	pages.GET("/tickets", pageHandler.Section("Tickets"), middleware.Guard(domain.RoleOperations, domain.RoleManagement))
	pages.GET("/ratings", pageHandler.Section("Ratings"), middleware.Guard(domain.RolePurchasing, domain.RoleManagement))

	return e
}
