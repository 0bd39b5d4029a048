package handlers

import (
	"net/http"

	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	*BaseHandler
	alertService services.AlertService
}

func NewAlertHandler(base *BaseHandler, alertService services.AlertService) *AlertHandler {
	return &AlertHandler{
		BaseHandler:  base,
		alertService: alertService,
	}
}

func (h *AlertHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	alerts := r.Group("/alerts")
	alerts.Use(authMW)
	{
		alerts.POST("", h.Create)
		alerts.GET("", h.List)
		alerts.GET("/:id", h.Get)
		alerts.DELETE("/:id", h.Delete)
	}
}

func (h *AlertHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAlertRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.alertService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AlertHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	res, err := h.alertService.List(c.Request.Context(), h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AlertHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	res, err := h.alertService.Get(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AlertHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.alertService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
