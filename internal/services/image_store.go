package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore writes uploaded images under a local directory and hands back
// the stored filename. Only the path is ever persisted; the bytes are an
// external concern served statically.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save stores the upload under a uuid-prefixed name and returns that name.
// Disallowed extensions are a validation failure, not a server error.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		verrs := validation.Errors{}
		verrs.Add("image", "unsupported image type, use jpg, png, gif or webp")
		return "", verrs
	}

	name := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored image; missing files are not an error.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory uploads are written to.
func (s *ImageStore) Dir() string {
	return s.dir
}
