package web

import (
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/schoolhub/admin-dashboard/internal/dashboard"
)

// SessionName is the cookie holding flash toasts between a POST and the
// redirected GET.
const SessionName = "dashboard-session"

// Flashes carries toasts across redirects in a gorilla session.
type Flashes struct {
	store sessions.Store
}

func NewFlashes(store sessions.Store) *Flashes {
	return &Flashes{store: store}
}

// NewCookieStore returns an http-only cookie store signed with secret.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.Path = "/"
	return store
}

// Add queues toasts for the next page view.
func (f *Flashes) Add(c echo.Context, toasts ...dashboard.Toast) error {
	if len(toasts) == 0 {
		return nil
	}
	session, err := f.store.Get(c.Request(), SessionName)
	if err != nil && session == nil {
		return err
	}
	for _, t := range toasts {
		session.AddFlash(string(t.Kind) + ":" + t.Message)
	}
	return session.Save(c.Request(), c.Response())
}

// Take returns and clears the queued toasts. A broken cookie yields none.
func (f *Flashes) Take(c echo.Context) []dashboard.Toast {
	session, err := f.store.Get(c.Request(), SessionName)
	if err != nil && session == nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(c.Request(), c.Response())

	out := make([]dashboard.Toast, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, _ := strings.Cut(s, ":")
		out = append(out, dashboard.Toast{Kind: dashboard.ToastKind(kind), Message: msg})
	}
	return out
}
