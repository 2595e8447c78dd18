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

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: dir, BaseURL: "http://localhost:8080/uploads"})
	require.NoError(t, err)

	err = s.Save(context.Background(), "headshots/u1/display.jpg", strings.NewReader("payload"), "image/jpeg")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "headshots/u1/display.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Delete(context.Background(), "headshots/u1/display.jpg"))
	_, err = os.Stat(filepath.Join(dir, "headshots/u1/display.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление не ошибка
	assert.NoError(t, s.Delete(context.Background(), "headshots/u1/display.jpg"))
}

func TestLocalStorageGetURL(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/"})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/headshots/u1/thumbnail.jpg", s.GetURL("headshots/u1/thumbnail.jpg"))
}

func TestNewPicksBackendByType(t *testing.T) {
	s, err := New(Config{Type: TypeLocal, BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(Config{Type: "ftp"})
	assert.Error(t, err)

	// R2 без endpoint отклоняется на старте
	_, err = New(Config{Type: TypeCloudflareR2})
	assert.Error(t, err)
}
