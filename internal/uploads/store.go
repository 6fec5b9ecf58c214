package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file size too large")
)

// Store saves complaint images under a local directory and hands back
// opaque filenames. Complaints record only the filename; the directory
// is served statically.
type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists an uploaded image, returning the generated
// filename.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored image. A missing file is not an error; the
// record it belonged to is already gone.
func (s *Store) Remove(name string) error {
	// Filenames are generated, never caller-supplied paths.
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
