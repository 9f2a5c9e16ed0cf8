package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	resp, err := store.Upload(ctx, &UploadRequest{
		Key:         "vehicles/car.png",
		Reader:      strings.NewReader("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/vehicles/car.png", resp.URL)
	assert.EqualValues(t, 9, resp.Size)

	data, err := os.ReadFile(filepath.Join(dir, "vehicles", "car.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	exists, err := store.FileExists(ctx, "vehicles/car.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "vehicles/car.png"))
	exists, err = store.FileExists(ctx, "vehicles/car.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), &UploadRequest{Key: "../etc/passwd", Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = store.Upload(context.Background(), &UploadRequest{Key: "", Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	key := ObjectKey("/vehicles/", "JPG", now)
	assert.True(t, strings.HasPrefix(key, "vehicles/2025/01/02/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.NotEqual(t, key, ObjectKey("vehicles", ".jpg", now))
}
