package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func TestLocalFileStore_StoreAndDelete(t *testing.T) {
	base := t.TempDir()
	store := NewLocalFileStore(base)

	relPath, err := store.Store("products", uploadHeader(t, "cover.JPG", "payload"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "products/"))
	assert.True(t, strings.HasSuffix(relPath, ".jpg"), "extension is lowercased: %s", relPath)
	assert.NotContains(t, relPath, "cover", "stored name must not reuse the client filename")

	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(relPath))
	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalFileStore_UniqueNames(t *testing.T) {
	store := NewLocalFileStore(t.TempDir())

	first, err := store.Store("products", uploadHeader(t, "cover.png", "a"))
	require.NoError(t, err)
	second, err := store.Store("products", uploadHeader(t, "cover.png", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalFileStore_DeleteMissing(t *testing.T) {
	store := NewLocalFileStore(t.TempDir())
	assert.NoError(t, store.Delete("products/does-not-exist.jpg"))
}
