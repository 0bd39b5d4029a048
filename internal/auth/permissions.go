package auth

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidRole = errors.New("invalid role")

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.Role == RoleAdmin
}

// CanManage reports whether the caller may change a resource owned by ownerID.
func CanManage(userID, role, ownerID string) bool {
	return role == RoleAdmin || (userID != "" && userID == ownerID)
}

// ValidateRole проверяет валидность роли
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	default:
		return ErrInvalidRole
	}
}
