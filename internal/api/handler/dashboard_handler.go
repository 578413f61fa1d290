package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/api/metrics"
	"github.com/skymovel/app-core/internal/core/service"
)

// DashboardHandler exposes the cached customer data: the aggregate load, the
// partial refreshes and the notification read receipt. Refresh failures are
// not HTTP errors; they surface in the snapshot's error field, mirroring how
// the home screen renders stale data with an inline banner.
type DashboardHandler struct {
	cache *service.CustomerCache
}

func NewDashboardHandler(cache *service.CustomerCache) *DashboardHandler {
	return &DashboardHandler{cache: cache}
}

// Get returns the current cache snapshot without touching the boundary.
//
// @Summary      Dashboard snapshot
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.CacheState
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cache.Snapshot())
}

// Load issues the four customer fetches and commits them all-or-nothing.
//
// @Summary      Load all customer data
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.CacheState
// @Router       /v1/dashboard/load [post]
func (h *DashboardHandler) Load(c echo.Context) error {
	h.cache.LoadCustomerData(c.Request().Context())
	snap := h.cache.Snapshot()
	metrics.CacheRefreshTotal.WithLabelValues("full", refreshResult(snap.Error)).Inc()
	return c.JSON(http.StatusOK, snap)
}

// RefreshConsumption replaces only the consumption snapshot.
//
// @Summary      Refresh consumption
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.CacheState
// @Router       /v1/dashboard/consumption/refresh [post]
func (h *DashboardHandler) RefreshConsumption(c echo.Context) error {
	h.cache.RefreshConsumption(c.Request().Context())
	snap := h.cache.Snapshot()
	metrics.CacheRefreshTotal.WithLabelValues("consumption", refreshResult(snap.Error)).Inc()
	return c.JSON(http.StatusOK, snap)
}

// RefreshPlan replaces only the current plan.
//
// @Summary      Refresh current plan
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.CacheState
// @Router       /v1/dashboard/plan/refresh [post]
func (h *DashboardHandler) RefreshPlan(c echo.Context) error {
	h.cache.RefreshPlan(c.Request().Context())
	snap := h.cache.Snapshot()
	metrics.CacheRefreshTotal.WithLabelValues("plan", refreshResult(snap.Error)).Inc()
	return c.JSON(http.StatusOK, snap)
}

// RefreshNotifications replaces the notification list and unread counter.
//
// @Summary      Refresh notifications
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.CacheState
// @Router       /v1/dashboard/notifications/refresh [post]
func (h *DashboardHandler) RefreshNotifications(c echo.Context) error {
	h.cache.RefreshNotifications(c.Request().Context())
	snap := h.cache.Snapshot()
	metrics.CacheRefreshTotal.WithLabelValues("notifications", refreshResult(snap.Error)).Inc()
	return c.JSON(http.StatusOK, snap)
}

// MarkNotificationRead marks a notification as read optimistically; the
// remote acknowledgment runs after the local flip.
//
// @Summary      Mark a notification as read
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  service.CacheState
// @Router       /v1/notifications/{id}/read [post]
func (h *DashboardHandler) MarkNotificationRead(c echo.Context) error {
	h.cache.MarkNotificationRead(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, h.cache.Snapshot())
}

// ClearError resets the shared error field.
//
// @Summary      Clear the dashboard error
// @Tags         dashboard
// @Security     BearerAuth
// @Success      204  "error cleared"
// @Router       /v1/dashboard/error [delete]
func (h *DashboardHandler) ClearError(c echo.Context) error {
	h.cache.ClearError()
	return c.NoContent(http.StatusNoContent)
}

func refreshResult(errMsg string) string {
	if errMsg != "" {
		return "error"
	}
	return "ok"
}
