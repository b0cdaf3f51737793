// Package web serves the HTML dashboard. Handlers translate requests into
// list controller events and render the resulting screen with Liquid.
package web

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/osteele/liquid"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

//go:embed templates/*.liquid
var templateFS embed.FS

// layoutTemplate wraps every page; it receives the page body as `content`.
const layoutTemplate = "layout"

var fieldLabels = map[string]string{
	"network":   "Network",
	"link":      "Link",
	"email":     "Email",
	"phone":     "Mobile No",
	"status":    "Status Type",
	"name":      "Name",
	"className": "Class",
	"gender":    "Gender",
	"avatarUrl": "Avatar url",
	"subject":   "Subject",
}

// Renderer renders the embedded Liquid templates. It implements echo.Renderer.
type Renderer struct {
	engine    *liquid.Engine
	templates map[string]*liquid.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		engine:    liquid.NewEngine(),
		templates: make(map[string]*liquid.Template),
	}
	r.registerFilters()

	paths, err := fs.Glob(templateFS, "templates/*.liquid")
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		src, err := templateFS.ReadFile(p)
		if err != nil {
			return nil, err
		}
		tpl, perr := r.engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", p, perr)
		}
		r.templates[strings.TrimSuffix(path.Base(p), ".liquid")] = tpl
	}
	if _, ok := r.templates[layoutTemplate]; !ok {
		return nil, fmt.Errorf("missing %s template", layoutTemplate)
	}
	return r, nil
}

func (r *Renderer) registerFilters() {
	// Field label: {{ "className" | label }} → Class
	r.engine.RegisterFilter("label", func(field string) string {
		if l, ok := fieldLabels[field]; ok {
			return l
		}
		return field
	})

	// Status badge class: {{ row.status | badge }}
	r.engine.RegisterFilter("badge", func(status string) string {
		return "badge badge-" + domain.DeriveStatusID(status)
	})
}

// Render satisfies echo.Renderer. data must be a binding map.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	var b liquid.Bindings
	switch v := data.(type) {
	case liquid.Bindings:
		b = v
	case map[string]any:
		b = v
	case nil:
		b = liquid.Bindings{}
	default:
		return fmt.Errorf("render %s: unsupported data %T", name, data)
	}

	out, err := r.RenderString(name, b)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderString renders name inside the layout.
func (r *Renderer) RenderString(name string, b liquid.Bindings) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	body, serr := tpl.RenderString(b)
	if serr != nil {
		return "", fmt.Errorf("render %s: %w", name, serr)
	}

	wrapped := make(liquid.Bindings, len(b)+1)
	for k, v := range b {
		wrapped[k] = v
	}
	wrapped["content"] = body

	page, serr := r.templates[layoutTemplate].RenderString(wrapped)
	if serr != nil {
		return "", fmt.Errorf("render %s: %w", layoutTemplate, serr)
	}
	return page, nil
}
