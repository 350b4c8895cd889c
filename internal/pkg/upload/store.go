package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store persists uploaded flower images on local disk under random names.
type Store struct {
	root string
}

// New creates the store, ensuring the root directory exists.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root must be provided")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory images are written to.
func (s *Store) Root() string {
	return s.root
}

// Save writes the image under a uuid-based name derived from the original
// extension and returns the public URL path for it.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	name := uuid.NewString() + ext
	full := filepath.Join(s.root, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path.Join(PublicPrefix, name), nil
}

// Remove deletes a previously stored image by its public URL path.
// Paths outside the store are ignored.
func (s *Store) Remove(publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || !strings.HasPrefix(publicPath, PublicPrefix+"/") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
