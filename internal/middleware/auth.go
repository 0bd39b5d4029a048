package middleware

import (
	"strings"

	"shippertrip_backend/internal/auth"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/pkg/apperrors"
	"shippertrip_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := auth.ParseToken(tokenStr, secret)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.UserIDKey, claims.UserID())
		c.Set(contextkeys.RoleKey, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles - пропускает только указанные роли
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// AdminOnly - сокращение для RequireRoles(admin)
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(auth.RoleAdmin)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetRole извлекает роль из контекста
func GetRole(c *gin.Context) string {
	return c.GetString(contextkeys.RoleKey)
}
