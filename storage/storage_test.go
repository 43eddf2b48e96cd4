package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("images", name)
	require.NoError(t, err)
	part.Write(content)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"][0]
}

func TestPublicID(t *testing.T) {
	id, err := PublicID("surf-shop", "Big Wave.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "surf-shop/Big-Wave"), id)
	assert.True(t, strings.HasSuffix(id, ".jpg"), id)

	other, err := PublicID("surf-shop", "Big Wave.JPG")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	_, err = PublicID("surf-shop", "script.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLocalStorageUploadAndDestroy(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads/", "surf-shop")
	require.NoError(t, err)

	img, err := store.Upload(context.Background(), fileHeader(t, "board.png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+img.PublicID, img.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.PublicID)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Destroy(context.Background(), img.PublicID))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(img.PublicID)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Destroy(context.Background(), img.PublicID))
}

func TestLocalStorageDestroyStaysInFolder(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads", "surf-shop")
	require.NoError(t, err)
	assert.Error(t, store.Destroy(context.Background(), "../../etc/passwd"))
}
