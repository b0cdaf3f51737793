package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
)

// ResourceHandler exposes one entity service as a JSON collection.
type ResourceHandler[T domain.Entity] struct {
	service ports.EntityService[T]
	decode  func(c echo.Context) (T, error)
}

// NewAdsHandler serves /api/v1/ads.
func NewAdsHandler(service ports.EntityService[domain.Ads]) *ResourceHandler[domain.Ads] {
	return &ResourceHandler[domain.Ads]{service: service, decode: decodeAds}
}

// NewPersonHandler serves /api/v1/teachers or /api/v1/students.
func NewPersonHandler(kind domain.PersonKind, service ports.EntityService[domain.Person]) *ResourceHandler[domain.Person] {
	return &ResourceHandler[domain.Person]{
		service: service,
		decode: func(c echo.Context) (domain.Person, error) {
			return decodePerson(c, kind)
		},
	}
}

// --- Request / Response types ---

type adsRequest struct {
	Network string `json:"network" validate:"required,ads_network"`
	Link    string `json:"link"    validate:"required,ads_link"`
	Email   string `json:"email"   validate:"required,form_email"`
	Phone   string `json:"phone"   validate:"required,ads_phone"`
	Status  string `json:"status"  validate:"required"`
}

type personRequest struct {
	Name      string `json:"name"      validate:"required,person_name"`
	Email     string `json:"email"     validate:"required,form_email"`
	ClassName string `json:"className" validate:"required,oneof=SS1 SS2 SS3 SS4 SS5"`
	Gender    string `json:"gender"    validate:"required,oneof=Female Male"`
	AvatarURL string `json:"avatarUrl" validate:"required,avatar_url"`
	Subject   string `json:"subject"   validate:"omitempty,person_name"`
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func decodeAds(c echo.Context) (domain.Ads, error) {
	var req adsRequest
	if err := c.Bind(&req); err != nil {
		return domain.Ads{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Phone = validate.FormatPhoneNumber(req.Phone)
	if err := c.Validate(&req); err != nil {
		return domain.Ads{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return domain.Ads{
		Network: req.Network,
		Link:    req.Link,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  req.Status,
	}.WithDerivedStatus(), nil
}

func decodePerson(c echo.Context, kind domain.PersonKind) (domain.Person, error) {
	var req personRequest
	if err := c.Bind(&req); err != nil {
		return domain.Person{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Person{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if kind == domain.KindTeacher && req.Subject == "" {
		return domain.Person{}, echo.NewHTTPError(http.StatusUnprocessableEntity, validate.Required("", "Subject"))
	}
	return domain.Person{
		Kind:      kind,
		Name:      req.Name,
		Email:     req.Email,
		ClassName: req.ClassName,
		Gender:    req.Gender,
		AvatarURL: req.AvatarURL,
		Subject:   req.Subject,
	}.WithKind(kind), nil
}

// List handles GET /api/v1/{resource}. ?search= asks the remote API for a
// keyword match; ?className= filters people by class.
//
// @Summary      List a collection
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource   path      string  true   "ads, teachers or students"
// @Param        search     query     string  false  "Keyword"
// @Param        className  query     string  false  "Class filter (people only)"
// @Success      200        {object}  map[string]any
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      502        {object}  errorResponse
// @Router       /api/v1/{resource} [get]
func (h *ResourceHandler[T]) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		rows []T
		err  error
	)
	switch {
	case c.QueryParam("className") != "":
		rows, err = h.service.FilterByClass(ctx, c.QueryParam("className"))
	case c.QueryParam("search") != "":
		rows, err = h.service.Search(ctx, c.QueryParam("search"))
	default:
		rows, err = h.service.FetchData(ctx, "")
	}
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []T{}
	}
	return c.JSON(http.StatusOK, listResponse[T]{Data: rows, Count: len(rows)})
}

// Get handles GET /api/v1/{resource}/:id.
//
// @Summary      Get one record
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "ads, teachers or students"
// @Param        id        path      string  true  "Record id"
// @Success      200       {object}  map[string]any
// @Failure      404       {object}  errorResponse
// @Router       /api/v1/{resource}/{id} [get]
func (h *ResourceHandler[T]) Get(c echo.Context) error {
	item, err := h.service.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /api/v1/{resource}.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "ads, teachers or students"
// @Success      201       {object}  map[string]any
// @Failure      400       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /api/v1/{resource} [post]
func (h *ResourceHandler[T]) Create(c echo.Context) error {
	item, err := h.decode(c)
	if err != nil {
		return err
	}

	created, err := h.service.Add(c.Request().Context(), item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/{resource}/:id.
//
// @Summary      Replace a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "ads, teachers or students"
// @Param        id        path      string  true  "Record id"
// @Success      200       {object}  map[string]any
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /api/v1/{resource}/{id} [put]
func (h *ResourceHandler[T]) Update(c echo.Context) error {
	item, err := h.decode(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Edit(c.Request().Context(), c.Param("id"), item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/{resource}/:id.
//
// @Summary      Delete a record
// @Tags         resources
// @Security     BearerAuth
// @Param        resource  path  string  true  "ads, teachers or students"
// @Param        id        path  string  true  "Record id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/{resource}/{id} [delete]
func (h *ResourceHandler[T]) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
