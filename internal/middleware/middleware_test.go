package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shippertrip_backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func perform(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))

	token, _, err := auth.GenerateToken("u1", auth.RoleUser, secret, time.Hour)
	require.NoError(t, err)
	foreign, _, err := auth.GenerateToken("u1", auth.RoleUser, "other-secret", time.Hour)
	require.NoError(t, err)

	w := perform(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = perform(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)

	w = perform(r, "Bearer "+foreign)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INVALID_TOKEN"`)
}

func TestAdminOnly(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), AdminOnly())

	userToken, _, err := auth.GenerateToken("u1", auth.RoleUser, secret, time.Hour)
	require.NoError(t, err)
	adminToken, _, err := auth.GenerateToken("a1", auth.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, perform(r, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, perform(r, "Bearer "+adminToken).Code)
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://app.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
