package handlers

import (
	"context"
	"net/http"

	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AlertRunner - ручной запуск прогона алертов (реализует воркер)
type AlertRunner interface {
	RunOnce(ctx context.Context) (*dto.AlertRunReport, error)
}

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	alertRunner  AlertRunner
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, alertRunner AlertRunner) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		alertRunner:  alertRunner,
	}
}

// RegisterRoutes ожидает группу, уже закрытую auth и admin middleware
func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStats)
	admin.PATCH("/users/:id/verify", h.VerifyUser)
	admin.PATCH("/announcements/:id/status", h.SetAnnouncementStatus)
	admin.PATCH("/trips/:id/status", h.SetTripStatus)
	admin.POST("/alerts/run", h.RunAlerts)
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) VerifyUser(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.adminService.VerifyUser(c.Request.Context(), h.GetDB(c), adminID, c.Param("id"), *req.Verified)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) SetAnnouncementStatus(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, ok := h.BindStatus(c)
	if !ok {
		return
	}

	res, err := h.adminService.SetAnnouncementStatus(c.Request.Context(), h.GetDB(c), adminID, c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) SetTripStatus(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, ok := h.BindStatus(c)
	if !ok {
		return
	}

	res, err := h.adminService.SetTripStatus(c.Request.Context(), h.GetDB(c), adminID, c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) RunAlerts(c *gin.Context) {
	report, err := h.alertRunner.RunOnce(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
