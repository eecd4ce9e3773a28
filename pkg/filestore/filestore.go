// Package filestore abstracts where uploaded material files live. The core
// stores whatever URL the store hands back and never inspects file content.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves an uploaded file and returns a URL it can later be fetched from.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalStore keeps files on the local disk under a single directory and
// serves them from a base URL path.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the file under a random name, keeping the original extension
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

var _ Store = (*LocalStore)(nil)
