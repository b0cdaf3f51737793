package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email           string `json:"email"           validate:"required,form_email"`
	Password        string `json:"password"        validate:"required,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message  string       `json:"message"`
	Token    string       `json:"token,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
	User     *domain.User `json:"user,omitempty"`
}

type meResponse struct {
	Email string `json:"email"`
}

// authStatus maps auth service failures to HTTP codes. The error text is
// user-facing and returned as-is.
func authStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrLoginEmpty), errors.Is(err, domain.ErrSignupEmpty),
		errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLoginUnsuccessful):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFetchingData), errors.Is(err, domain.ErrSavingData):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), domain.Registration{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return c.JSON(authStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{Message: domain.MsgSignupSuccess, User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(authStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, authResponse{
		Message:  domain.MsgLoginSuccess,
		Token:    session.Token,
		Redirect: session.Redirect,
	})
}

// Me returns the operator the bearer token belongs to.
//
// @Summary      Current operator
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Email: email})
}
