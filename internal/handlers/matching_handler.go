package handlers

import (
	"net/http"

	"shippertrip_backend/internal/algorithms"
	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	protected := r.Group("")
	protected.Use(authMW)
	{
		protected.GET("/alerts/:id/matches", h.FindAlertMatches)
		protected.GET("/announcements/:id/matches", h.MatchesForAnnouncement)
		protected.GET("/trips/:id/matches", h.MatchesForTrip)
		protected.GET("/matching/score", h.ScorePair)
		protected.GET("/matching/weights", h.GetWeights)
	}
}

// FindAlertMatches - ранжированные кандидаты для собственного алерта
func (h *MatchingHandler) FindAlertMatches(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	res, err := h.matchingService.FindMatches(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) MatchesForAnnouncement(c *gin.Context) {
	limit, ok := ParseMatchLimit(c)
	if !ok {
		return
	}

	res, err := h.matchingService.MatchesForAnnouncement(c.Request.Context(), h.GetDB(c), c.Param("id"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) MatchesForTrip(c *gin.Context) {
	limit, ok := ParseMatchLimit(c)
	if !ok {
		return
	}

	res, err := h.matchingService.MatchesForTrip(c.Request.Context(), h.GetDB(c), c.Param("id"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) ScorePair(c *gin.Context) {
	var query dto.ScorePairQuery
	if !h.BindQuery(c, &query) {
		return
	}

	res, err := h.matchingService.ScorePair(c.Request.Context(), h.GetDB(c), query.AnnouncementID, query.TripID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetWeights отдает веса сигналов, чтобы клиент мог объяснить оценку
func (h *MatchingHandler) GetWeights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"origin_city":       algorithms.OriginCityPoints,
		"destination_city":  algorithms.DestinationCityPoints,
		"date_overlap":      algorithms.DateOverlapPoints,
		"rating":            algorithms.MaxRatingPoints,
		"rating_multiplier": algorithms.RatingMultiplier,
		"verified":          algorithms.VerifiedPoints,
		"max_score":         algorithms.MaxScore,
	})
}
