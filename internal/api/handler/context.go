package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/admin-dashboard/internal/api/middleware"
)

// ctxEmail returns the signed-in operator injected by the auth middleware.
// An empty email means the middleware did not run.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.ContextEmail).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
