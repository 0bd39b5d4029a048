package handlers

import (
	"net/http"

	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	*BaseHandler
	tripService services.TripService
}

func NewTripHandler(base *BaseHandler, tripService services.TripService) *TripHandler {
	return &TripHandler{
		BaseHandler: base,
		tripService: tripService,
	}
}

func (h *TripHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	trips := r.Group("/trips")
	trips.Use(authMW)
	{
		trips.POST("", h.Create)
		trips.GET("", h.List)
		trips.GET("/mine", h.ListMine)
		trips.GET("/:id", h.Get)
		trips.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *TripHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.tripService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *TripHandler) List(c *gin.Context) {
	var query dto.ListingQuery
	if !h.BindListingQuery(c, &query) {
		return
	}

	res, err := h.tripService.List(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TripHandler) ListMine(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var query dto.ListingQuery
	if !h.BindListingQuery(c, &query) {
		return
	}

	res, err := h.tripService.ListMine(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TripHandler) Get(c *gin.Context) {
	res, err := h.tripService.GetByID(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TripHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, ok := h.BindStatus(c)
	if !ok {
		return
	}

	res, err := h.tripService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, h.GetRole(c), c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
