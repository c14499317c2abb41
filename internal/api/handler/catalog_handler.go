package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

// CatalogHandler serves the shared public component catalog.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Create handles POST /public-components.
//
// @Summary      Add a component to the public catalog
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPublicComponentRequest  true  "Component"
// @Success      201   {object}  createdComponentResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /public-components [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req createPublicComponentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	component := toPublicComponent(req)
	if err := h.service.Create(c.Request().Context(), component); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdComponentResponse{ID: component.ID, Message: "Component created successfully"})
}

// List handles GET /public-components.
//
// @Summary      List the public catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.PublicComponent
// @Router       /public-components [get]
func (h *CatalogHandler) List(c echo.Context) error {
	components, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, components)
}

// Get handles GET /public-components/:id.
//
// @Summary      Get a catalog component
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Component id"
// @Success      200  {object}  domain.PublicComponent
// @Failure      404  {object}  errorResponse
// @Router       /public-components/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	component, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, component)
}

// Update handles PUT /public-components/:id. Only the fields present in the
// body are changed.
//
// @Summary      Update a catalog component
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Component id"
// @Param        body  body      updatePublicComponentRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /public-components/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req updatePublicComponentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), c.Param("id"), toPublicComponentPatch(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Component updated successfully"})
}

// Delete handles DELETE /public-components/:id.
//
// @Summary      Delete a catalog component
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Component id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /public-components/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Component deleted successfully"})
}

// Search handles GET /public-components/search.
//
// @Summary      Search the public catalog
// @Tags         catalog
// @Produce      json
// @Param        q         query     string  false  "Substring of name or description"
// @Param        category  query     string  false  "Category substring"
// @Param        vendor    query     string  false  "Vendor substring"
// @Param        max_cost  query     number  false  "Maximum cost"
// @Success      200       {array}   domain.PublicComponent
// @Failure      422       {object}  errorResponse
// @Router       /public-components/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	filter := domain.CatalogFilter{
		Text:     c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Vendor:   c.QueryParam("vendor"),
	}
	if raw := c.QueryParam("max_cost"); raw != "" {
		maxCost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "max_cost must be a number")
		}
		filter.MaxCost = maxCost
	}

	components, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, components)
}

// Categories handles GET /categories.
//
// @Summary      Distinct catalog categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	values, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// Vendors handles GET /vendors.
//
// @Summary      Distinct catalog vendors
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /vendors [get]
func (h *CatalogHandler) Vendors(c echo.Context) error {
	values, err := h.service.Vendors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}
