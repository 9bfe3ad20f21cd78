package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store saves uploaded RFP documents under a root directory and resolves
// their stored paths back to absolute paths for reading.
// Files are laid out as <root>/YYYY/MM/DD/<file_id>.<ext>.
type Store struct {
	root string
}

// New creates a file store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Save writes the uploaded content to a dated path and returns the storage
// path relative to the store root.
func (s *Store) Save(fileID, fileType string, r io.Reader) (string, error) {
	now := time.Now().UTC()
	relDir := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(filepath.Join(s.root, relDir), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	relPath := filepath.Join(relDir, fileID+"."+fileType)
	f, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

// Resolve returns the absolute path for a stored document.
// The relative path is cleaned and must stay inside the store root.
func (s *Store) Resolve(storagePath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(storagePath))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage path: %s", storagePath)
	}
	return filepath.Join(s.root, cleaned), nil
}
