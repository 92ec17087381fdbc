package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityHandler lists the auth activity trail. The route sits behind a
// management-only guard; the handler itself never checks roles.
type ActivityHandler struct {
	activity ports.ActivityRepository
}

func NewActivityHandler(activity ports.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the newest activity entries first.
//
// @Summary      List auth activity
// @Tags         activity
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 50, cap 200)"
// @Success      200    {object}  activityResponse
// @Failure      403    {object}  map[string]string
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := h.activity.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{Entries: toActivityView(entries)})
}
