package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveExistsDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: dir, BaseURL: "http://cdn.local/"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "announcements/a1/photo.jpg", strings.NewReader("jpeg"), "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(dir, "announcements", "a1", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	ok, err := s.Exists(ctx, "announcements/a1/photo.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	url, err := s.GetURL(ctx, "announcements/a1/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/announcements/a1/photo.jpg", url)

	require.NoError(t, s.Delete(ctx, "announcements/a1/photo.jpg"))
	ok, err = s.Exists(ctx, "announcements/a1/photo.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, "announcements/a1/photo.jpg"))
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: filepath.Join(dir, "root")})
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain"))

	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "root", "escape.txt"))
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Save(context.Background(), "", strings.NewReader("x"), "text/plain"), ErrInvalidPath)
}

func TestLocalStorage_DefaultURL(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	url, err := s.GetURL(context.Background(), "/a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", url)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(Config{Type: "cloudflare_r2"})
	assert.Error(t, err, "endpoint is required")
}

func TestObjectStorage_GetURL(t *testing.T) {
	s, err := NewCloudflareR2Storage(Config{Endpoint: "https://acc.r2.cloudflarestorage.com", Bucket: "photos", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)

	url, err := s.GetURL(context.Background(), "announcements/a1/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://photos.r2.dev/announcements/a1/x.jpg", url)
}

func TestPhotoKey(t *testing.T) {
	ext, ok := PhotoExtension("image/png")
	require.True(t, ok)

	key := PhotoKey("a1", ext)
	assert.True(t, strings.HasPrefix(key, "announcements/a1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, ok = PhotoExtension("application/pdf")
	assert.False(t, ok)
}
