package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/schoolhub/admin-dashboard/internal/api/handler"
	"github.com/schoolhub/admin-dashboard/internal/api/metrics"
	"github.com/schoolhub/admin-dashboard/internal/api/middleware"
	"github.com/schoolhub/admin-dashboard/internal/api/web"
	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/dashboard"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/http/handlers"
	"github.com/schoolhub/admin-dashboard/internal/pkg/config"

	_ "github.com/schoolhub/admin-dashboard/docs"
)

// Services are the domain services behind the JSON API. They are separate
// instances from the ones the dashboard pages own, so API reads never
// replace what an operator is looking at.
type Services struct {
	Auth     ports.AuthService
	Ads      ports.EntityService[domain.Ads]
	Teachers ports.EntityService[domain.Person]
	Students ports.EntityService[domain.Person]
}

// Dependencies is everything NewRouter wires into routes.
type Dependencies struct {
	Config   *config.Config
	Log      zerolog.Logger
	Services Services
	Board    *dashboard.Board
	Sessions sessions.Store
	Checks   []handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	secret := deps.Config.JWTSecret
	secure := !deps.Config.IsDevelopment()
	flashes := web.NewFlashes(deps.Sessions)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Services.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, middleware.Auth(secret))

	authPages := web.NewAuthPages(deps.Services.Auth, flashes, deps.Config.TokenTTL, secure, deps.Log)
	authPages.SetLoginObserver(func(ok bool) {
		result := "ok"
		if !ok {
			result = "failed"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	})
	authPages.Register(e)

	// --- Dashboard pages (cookie session) ---
	nav := []web.NavItem{
		{Href: "/", Label: "Ads"},
		{Href: "/teacher", Label: "Teacher"},
		{Href: "/student", Label: "Student"},
	}
	countToast := func(page string, kind dashboard.ToastKind) {
		metrics.ToastsTotal.WithLabelValues(page, string(kind)).Inc()
	}

	pages := e.Group("", middleware.CookieAuth(secret, web.LoginPath))
	adsPage := web.NewPageHandler("/", "/ads", "Ads", deps.Board.Ads, deps.Board.AdsScreen, flashes, nav, deps.Log)
	teacherPage := web.NewPageHandler("/teacher", "/teacher", "Teacher", deps.Board.Teachers, deps.Board.TeacherScreen, flashes, nav, deps.Log)
	studentPage := web.NewPageHandler("/student", "/student", "Student", deps.Board.Students, deps.Board.StudentScreen, flashes, nav, deps.Log)
	adsPage.SetToastObserver(countToast)
	teacherPage.SetToastObserver(countToast)
	studentPage.SetToastObserver(countToast)
	adsPage.Register(pages)
	teacherPage.Register(pages)
	studentPage.Register(pages)

	// --- JSON API (bearer token) ---
	v1 := e.Group("/api/v1", middleware.Auth(secret))
	registerResource(v1.Group("/ads"), handler.NewAdsHandler(deps.Services.Ads))
	registerResource(v1.Group("/teachers"), handler.NewPersonHandler(domain.KindTeacher, deps.Services.Teachers))
	registerResource(v1.Group("/students"), handler.NewPersonHandler(domain.KindStudent, deps.Services.Students))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness) // upstream API and redis
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func registerResource[T domain.Entity](g *echo.Group, h *handler.ResourceHandler[T]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
