package handlers

import (
	"bufio"
	"net/http"

	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         base,
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	announcements := r.Group("/announcements")
	announcements.Use(authMW)
	{
		announcements.POST("", h.Create)
		announcements.GET("", h.List)
		announcements.GET("/mine", h.ListMine)
		announcements.GET("/:id", h.Get)
		announcements.PATCH("/:id/status", h.UpdateStatus)
		announcements.POST("/:id/photo", h.UploadPhoto)
	}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.announcementService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	var query dto.ListingQuery
	if !h.BindListingQuery(c, &query) {
		return
	}

	res, err := h.announcementService.List(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncementHandler) ListMine(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var query dto.ListingQuery
	if !h.BindListingQuery(c, &query) {
		return
	}

	res, err := h.announcementService.ListMine(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	res, err := h.announcementService.GetByID(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncementHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, ok := h.BindStatus(c)
	if !ok {
		return
	}

	res, err := h.announcementService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, h.GetRole(c), c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// UploadPhoto принимает multipart-поле "photo"
func (h *AnnouncementHandler) UploadPhoto(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Multipart field 'photo' is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	// тип определяем по содержимому, если клиент его не прислал
	reader := bufio.NewReader(file)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := reader.Peek(512)
		contentType = http.DetectContentType(head)
	}

	res, err := h.announcementService.UploadPhoto(c.Request.Context(), h.GetDB(c), userID, h.GetRole(c), c.Param("id"), reader, header.Size, contentType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
