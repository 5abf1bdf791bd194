package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// localStorage keeps video binaries as flat files under a single directory
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// Init creates the base directory if it does not exist
func (s *localStorage) Init() error {
	return os.MkdirAll(s.basePath, 0755)
}

// generatePath returns the full path of a stored file.
// Names must be a single path element so nothing escapes the base directory.
func (s *localStorage) generatePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(s.basePath, name), nil
}

// CreateTemp creates a new uniquely named temporary file in the base directory.
// The caller writes to it, closes it and then either commits or discards it.
func (s *localStorage) CreateTemp() (*os.File, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(s.basePath, GenerateTempName()), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
}

// Commit atomically moves a temporary file onto its final name, replacing any previous file
func (s *localStorage) Commit(tempPath, name string) error {
	path, err := s.generatePath(name)
	if err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// Discard removes a temporary file, ignoring files that are already gone
func (s *localStorage) Discard(tempPath string) error {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// OpenFile opens a file and returns *os.File for use with http.ServeContent
func (s *localStorage) OpenFile(name string) (*os.File, error) {
	path, err := s.generatePath(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a file
func (s *localStorage) Delete(name string) error {
	path, err := s.generatePath(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// List returns all regular files in the base directory, sorted by name
func (s *localStorage) List() ([]os.FileInfo, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []os.FileInfo{}, nil
		}
		return nil, err
	}

	files := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed since the directory was read
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		files = append(files, info)
	}
	slices.SortFunc(files, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return files, nil
}
