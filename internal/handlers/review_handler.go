package handlers

import (
	"net/http"

	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.POST("/reviews", authMW, h.CreateReview)
	r.GET("/users/:id/reviews", authMW, h.ListUserReviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.reviewService.CreateReview(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	res, err := h.reviewService.ListUserReviews(c.Request.Context(), h.GetDB(c), c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
