package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"shippertrip_backend/internal/auth"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	// EnsureAdmin создает первого администратора, если такого email еще нет
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register - регистрация нового пользователя, сразу возвращает токен
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(withCtx(ctx, db), user); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	return s.issueToken(user)
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(withCtx(ctx, db), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusBanned {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(withCtx(ctx, db), userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	db = withCtx(ctx, db)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "First admin created", "user_id", admin.ID)
	return nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID, string(user.Role), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}
