package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPath = errors.New("invalid storage path")

// Storage - хранилище фото объявлений (локальный диск, S3 или R2)
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	// GetURL - публичная ссылка, которая пишется в announcement.photo_url
	GetURL(ctx context.Context, path string) (string, error)
}

// Config - секция storage из конфига
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // local
	BaseURL   string // префикс публичных ссылок
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // R2 или совместимый с S3
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PhotoExtension returns the file extension for an allowed image type.
func PhotoExtension(contentType string) (string, bool) {
	ext, ok := photoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// PhotoKey строит ключ объекта: announcements/<id>/<uuid><ext>
func PhotoKey(announcementID, ext string) string {
	return fmt.Sprintf("announcements/%s/%s%s", filepath.Base(announcementID), uuid.NewString(), ext)
}
