package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

func TestNewStubObjectStorage(t *testing.T) {
	s := NewStubObjectStorage()
	require.NotNil(t, s)
	assert.Equal(t, "https://storage.example.com", s.BaseURL)
}

func TestStubObjectStorage_PutAndList(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "deliveries/a/2.jpg", strings.NewReader("x"), 1, "image/jpeg"))
	require.NoError(t, s.Put(ctx, "deliveries/a/1.jpg", strings.NewReader("y"), 1, "image/jpeg"))
	require.NoError(t, s.Put(ctx, "deliveries/b/1.jpg", strings.NewReader("z"), 1, "image/jpeg"))

	keys, err := s.List(ctx, "deliveries/a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"deliveries/a/1.jpg", "deliveries/a/2.jpg"}, keys)

	keys, err = s.List(ctx, "deliveries/c/")
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)

	err = s.Put(ctx, "", strings.NewReader("x"), 1, "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage key is required")
}

func TestStubObjectStorage_PublicURL(t *testing.T) {
	s := NewStubObjectStorage()
	assert.Equal(t, "https://storage.example.com/deliveries/a/1.jpg", s.PublicURL("deliveries/a/1.jpg"))
}

func TestNewObjectStore(t *testing.T) {
	logger := zap.NewNop()

	s, err := NewObjectStore(&config.StorageConfig{Type: "stub", PublicBaseURL: "http://localhost:8080/files"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/k", s.PublicURL("k"))

	_, err = NewObjectStore(&config.StorageConfig{Type: "gcs"}, logger)
	assert.Error(t, err)

	_, err = NewObjectStore(&config.StorageConfig{Type: "s3"}, logger)
	assert.Error(t, err)
}
