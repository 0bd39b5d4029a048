package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shippertrip_backend/internal/handlers"
	"shippertrip_backend/internal/middleware"
	"shippertrip_backend/internal/storage"
	"shippertrip_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// сервисы не нужны: запросы не доходят дальше middleware
func newRouter(t *testing.T, fileStorage storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(base),
		AuthHandler:         handlers.NewAuthHandler(base, nil),
		AnnouncementHandler: handlers.NewAnnouncementHandler(base, nil),
		TripHandler:         handlers.NewTripHandler(base, nil),
		AlertHandler:        handlers.NewAlertHandler(base, nil),
		MatchingHandler:     handlers.NewMatchingHandler(base, nil),
		ReviewHandler:       handlers.NewReviewHandler(base, nil),
		NotificationHandler: handlers.NewNotificationHandler(base, nil),
		AdminHandler:        handlers.NewAdminHandler(base, nil, nil),
	}

	r := gin.New()
	r.Use(middleware.DBMiddleware(nil))
	RegisterRoutes(r, appHandlers, middleware.AuthMiddleware("routes-secret"), fileStorage)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRegisterRoutes_LocalFilesAndMetrics(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "announcements"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "announcements", "p.txt"), []byte("hi"), 0o644))

	local, err := storage.NewLocalStorage(storage.Config{BasePath: dir})
	require.NoError(t, err)
	r := newRouter(t, local)

	w := get(r, "/files/announcements/p.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())

	assert.Equal(t, http.StatusOK, get(r, "/metrics").Code)
}

func TestRegisterRoutes_ProtectedGroups(t *testing.T) {
	r := newRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/alerts").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/admin/stats").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/matching/weights").Code)
	// health без БД отвечает 503, но маршрут есть
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/v1/health").Code)
	// без локального хранилища /files не регистрируется
	assert.Equal(t, http.StatusNotFound, get(r, "/files/x").Code)
}
