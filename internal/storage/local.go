package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded files under relative paths. References stored on
// records use forward slashes regardless of platform.
type FileStore interface {
	Store(dir string, file *multipart.FileHeader) (string, error)
	Delete(relPath string) error
}

type localFileStore struct {
	baseDir string
}

// NewLocalFileStore returns a FileStore rooted at baseDir.
func NewLocalFileStore(baseDir string) FileStore {
	return &localFileStore{baseDir: baseDir}
}

func (s *localFileStore) Store(dir string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	relPath := path.Join(dir, uuid.NewString()+ext)

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return relPath, nil
}

func (s *localFileStore) Delete(relPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
