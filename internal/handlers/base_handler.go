package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/internal/validator"
	"shippertrip_backend/pkg/apperrors"
	"shippertrip_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// queryDateLayout - формат дат, который понимают сервисы листингов
const queryDateLayout = "2006-01-02"

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB извлекает *gorm.DB, положенный DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ---------------- Привязка и валидация ----------------

func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	ctx := c.Request.Context()
	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

// BindListingQuery разбирает фильтры поиска объявлений и поездок.
// date_from/date_to принимаются как 2006-01-02 или RFC3339; во втором
// случае берется календарная дата в UTC.
func (h *BaseHandler) BindListingQuery(c *gin.Context, query *dto.ListingQuery) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind listing filter", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	for key, field := range map[string]*string{"date_from": &query.DateFrom, "date_to": &query.DateTo} {
		date, err := ParseQueryDate(*field)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Invalid listing date filter", "param", key, "value", *field)
			apperrors.HandleError(c, apperrors.ErrInvalidInput(fmt.Errorf("%s: expected YYYY-MM-DD or RFC3339", key)))
			return false
		}
		*field = date
	}

	return h.validate(c, query)
}

// BindStatus читает тело {"status": ...} для смены статуса листинга
func (h *BaseHandler) BindStatus(c *gin.Context) (models.ListingStatus, bool) {
	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return "", false
	}
	return models.ListingStatus(req.Status), true
}

// ---------------- Ошибки и пользователь ----------------

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// CurrentUserID - id из JWT; без него отвечает 401
func (h *BaseHandler) CurrentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return userID, true
}

// GetRole - роль из JWT, пустая строка если не выставлена
func (h *BaseHandler) GetRole(c *gin.Context) string {
	return c.GetString(contextkeys.RoleKey)
}

// ---------------- Парсинг query ----------------

// ParseQueryDate приводит дату фильтра к виду 2006-01-02. Пустая строка остается пустой.
func ParseQueryDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if t, err := time.Parse(queryDateLayout, value); err == nil {
		return t.Format(queryDateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(queryDateLayout), nil
}

// ParseMatchLimit - ?limit= для списков совпадений; 0 значит лимит по умолчанию
func ParseMatchLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		apperrors.HandleError(c, apperrors.ErrInvalidInput(fmt.Errorf("limit must be a non-negative integer")))
		return 0, false
	}
	return limit, true
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err = strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = repositories.DefaultPageSize
	}
	if pageSize > repositories.MaxPageSize {
		pageSize = repositories.MaxPageSize
	}

	return page, pageSize
}
