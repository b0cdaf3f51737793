package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/osteele/liquid"
	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/api/middleware"
	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
	"github.com/schoolhub/admin-dashboard/internal/dashboard"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	LogoutPath   = "/logout"

	headingLogin    = "Sign In"
	headingRegister = "Create New Account"
)

// LoginObserver is told whether each login attempt succeeded.
type LoginObserver func(ok bool)

// AuthPages serves the sign-in and sign-up forms.
type AuthPages struct {
	auth     ports.AuthService
	flashes  *Flashes
	tokenTTL time.Duration
	secure   bool
	observe  LoginObserver
	log      zerolog.Logger
}

func NewAuthPages(auth ports.AuthService, flashes *Flashes, tokenTTL time.Duration, secure bool, log zerolog.Logger) *AuthPages {
	return &AuthPages{
		auth:     auth,
		flashes:  flashes,
		tokenTTL: tokenTTL,
		secure:   secure,
		log:      log.With().Str("page", "auth").Logger(),
	}
}

// SetLoginObserver installs fn. Call before serving.
func (h *AuthPages) SetLoginObserver(fn LoginObserver) { h.observe = fn }

func (h *AuthPages) Register(e *echo.Echo) {
	e.GET(LoginPath, h.LoginForm)
	e.POST(LoginPath, h.Login)
	e.GET(RegisterPath, h.RegisterForm)
	e.POST(RegisterPath, h.SignUp)
	e.POST(LogoutPath, h.Logout)
}

func (h *AuthPages) LoginForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "login", "", nil, h.flashes.Take(c))
}

// Login checks the credentials. Success stores the token in an http-only
// cookie and redirects to the session's landing page; failure re-renders
// the form with the service message.
func (h *AuthPages) Login(c echo.Context) error {
	email := c.FormValue("email")
	session, err := h.auth.Login(c.Request().Context(), email, c.FormValue("password"))
	if h.observe != nil {
		h.observe(err == nil)
	}
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrLoginEmpty) {
			status = http.StatusBadRequest
		}
		return h.render(c, status, "login", email, nil, []dashboard.Toast{{Kind: dashboard.ToastError, Message: err.Error()}})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	if err := h.flashes.Add(c, dashboard.Toast{Kind: dashboard.ToastSuccess, Message: domain.MsgLoginSuccess}); err != nil {
		h.log.Warn().Err(err).Msg("flash save failed")
	}
	return c.Redirect(http.StatusSeeOther, session.Redirect)
}

func (h *AuthPages) RegisterForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "register", "", nil, nil)
}

// SignUp validates the registration form before calling the service. A new
// account is sent to the sign-in form with a success toast.
func (h *AuthPages) SignUp(c echo.Context) error {
	reg := domain.Registration{
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}
	if errs := validate.UserAuth(reg); !errs.Valid() {
		return h.render(c, http.StatusUnprocessableEntity, "register", reg.Email, errs, nil)
	}

	if _, err := h.auth.Register(c.Request().Context(), reg); err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrSignupEmpty), errors.Is(err, domain.ErrPasswordMismatch):
			status = http.StatusBadRequest
		}
		return h.render(c, status, "register", reg.Email, nil, []dashboard.Toast{{Kind: dashboard.ToastError, Message: err.Error()}})
	}

	if err := h.flashes.Add(c, dashboard.Toast{Kind: dashboard.ToastSuccess, Message: domain.MsgSignupSuccess}); err != nil {
		h.log.Warn().Err(err).Msg("flash save failed")
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// Logout drops the token cookie.
func (h *AuthPages) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
	})
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

func (h *AuthPages) render(c echo.Context, status int, mode, email string, errs validate.Errors, toasts []dashboard.Toast) error {
	heading := headingLogin
	if mode == "register" {
		heading = headingRegister
	}

	errMap := map[string]any{"email": "", "password": "", "confirmPassword": ""}
	for k, v := range errs {
		errMap[k] = v
	}

	message, kind := "", ""
	if len(toasts) > 0 {
		last := toasts[len(toasts)-1]
		message, kind = last.Message, string(last.Kind)
	}

	return c.Render(status, "auth", liquid.Bindings{
		"title":        heading,
		"heading":      heading,
		"mode":         mode,
		"email":        email,
		"errors":       errMap,
		"message":      message,
		"message_kind": kind,
		"toasts":       []map[string]any{},
	})
}
