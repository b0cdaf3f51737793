// Package mockapi serves the REST resources the dashboard consumes. It plays
// the hosted API during development and in end-to-end tests.
package mockapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/http/handlers"
)

// Resources lists the collections the server accepts. Anything else is 404.
var Resources = []string{
	"ads",
	domain.KindTeacher.Endpoint(),
	domain.KindStudent.Endpoint(),
	"users",
}

// searchParam is the only query parameter that is not a field filter.
const searchParam = "search"

type Server struct {
	store   ports.ResourceStore
	allowed map[string]bool
	log     zerolog.Logger
}

func NewServer(store ports.ResourceStore, log zerolog.Logger) *Server {
	allowed := make(map[string]bool, len(Resources))
	for _, r := range Resources {
		allowed[r] = true
	}
	return &Server{store: store, allowed: allowed, log: log}
}

// NewRouter returns an Echo instance serving the resources plus health
// probes. Extra checks feed /health/ready.
func NewRouter(s *Server, checks ...handlers.Check) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(checks...).Readiness)

	g := e.Group("/:resource", s.knownResource)
	g.GET("", s.List)
	g.POST("", s.Create)
	g.GET("/:id", s.Get)
	g.PUT("/:id", s.Replace)
	g.DELETE("/:id", s.Delete)

	return e
}

func (s *Server) knownResource(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.allowed[c.Param("resource")] {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return next(c)
	}
}

// List handles GET /:resource. ?search= matches any string field; every
// other query parameter must equal the field of the same name.
func (s *Server) List(c echo.Context) error {
	filter := ports.ResourceFilter{Search: c.QueryParam(searchParam)}
	for k, vals := range c.QueryParams() {
		if k == searchParam || len(vals) == 0 || vals[0] == "" {
			continue
		}
		if filter.Fields == nil {
			filter.Fields = make(map[string]string)
		}
		filter.Fields[k] = vals[0]
	}

	rows, err := s.store.List(c.Request().Context(), c.Param("resource"), filter)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) Get(c echo.Context) error {
	rec, err := s.store.Get(c.Request().Context(), c.Param("resource"), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Create handles POST /:resource. Any id in the body is replaced by the
// store's own.
func (s *Server) Create(c echo.Context) error {
	rec, err := bindRecord(c)
	if err != nil {
		return err
	}
	delete(rec, "id")

	created, err := s.store.Create(c.Request().Context(), c.Param("resource"), rec)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Replace handles PUT /:resource/:id. The stored document becomes the body.
func (s *Server) Replace(c echo.Context) error {
	rec, err := bindRecord(c)
	if err != nil {
		return err
	}

	updated, err := s.store.Replace(c.Request().Context(), c.Param("resource"), c.Param("id"), rec)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /:resource/:id and answers with the removed record.
func (s *Server) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	resource, id := c.Param("resource"), c.Param("id")

	rec, err := s.store.Get(ctx, resource, id)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.store.Delete(ctx, resource, id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) fail(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	s.log.Error().Err(err).
		Str("resource", c.Param("resource")).
		Str("method", c.Request().Method).
		Msg("store request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func bindRecord(c echo.Context) (ports.Record, error) {
	var rec ports.Record
	if err := (&echo.DefaultBinder{}).BindBody(c, &rec); err != nil || rec == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return rec, nil
}
