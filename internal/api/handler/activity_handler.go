package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frcparts/components-api/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /teams/:team_id/activity.
//
// @Summary      Recent inventory activity of a team
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        team_id  path      string  true   "Team id"
// @Param        limit    query     int     false  "Maximum number of events (default 50, max 200)"
// @Success      200      {array}   domain.InventoryEvent
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /teams/{team_id}/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be an integer")
		}
	}

	events, err := h.service.List(c.Request().Context(), caller, c.Param("team_id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
