package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frcparts/components-api/internal/core/ports"
)

// InventoryHandler serves team inventories. Every route requires an
// authenticated caller; ownership is checked by the service.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// Create handles POST /team-components.
//
// @Summary      Add a component to the caller's team inventory
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTeamComponentRequest  true  "Inventory row"
// @Success      201   {object}  createdTeamComponentResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /team-components [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createTeamComponentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	component, err := h.service.Create(c.Request().Context(), caller, toCreateTeamComponentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdTeamComponentResponse{ID: component.ID, Message: "Team component created successfully"})
}

// ListByTeam handles GET /teams/:team_id/components.
//
// @Summary      List a team's inventory
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        team_id  path      string  true  "Team id"
// @Success      200      {array}   domain.TeamComponent
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /teams/{team_id}/components [get]
func (h *InventoryHandler) ListByTeam(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	components, err := h.service.ListByTeam(c.Request().Context(), caller, c.Param("team_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, components)
}

// Get handles GET /team-components/:id.
//
// @Summary      Get an inventory row
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Team component id"
// @Success      200  {object}  domain.TeamComponent
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /team-components/{id} [get]
func (h *InventoryHandler) Get(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	component, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, component)
}

// Update handles PUT /team-components/:id.
//
// @Summary      Update an inventory row
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Team component id"
// @Param        body  body      updateTeamComponentRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /team-components/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateTeamComponentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), caller, id, toTeamComponentPatch(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Team component updated successfully"})
}

// SetQuantity handles PATCH /team-components/:id/quantity.
//
// @Summary      Set the quantity of an inventory row
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Team component id"
// @Param        body  body      quantityRequest  true  "New quantity"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /team-components/{id}/quantity [patch]
func (h *InventoryHandler) SetQuantity(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req quantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.SetQuantity(c.Request().Context(), caller, id, *req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Quantity updated successfully"})
}

// Delete handles DELETE /team-components/:id.
//
// @Summary      Delete an inventory row
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Team component id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /team-components/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Team component deleted successfully"})
}

// Summary handles GET /teams/:team_id/inventory/summary.
//
// @Summary      Team inventory totals
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        team_id  path      string  true  "Team id"
// @Success      200      {object}  domain.InventorySummary
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /teams/{team_id}/inventory/summary [get]
func (h *InventoryHandler) Summary(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.Request().Context(), caller, c.Param("team_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
