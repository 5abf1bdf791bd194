package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TempPrefix starts the name of every file that has not been committed yet
const TempPrefix = ".upload-"

// atomicTempMarker separates the target name from the random suffix of WriteFileAtomic temp files
const atomicTempMarker = ".tmp-"

// GenerateTempName generates a new UUID-based name for an uncommitted upload
func GenerateTempName() string {
	return TempPrefix + uuid.New().String()
}

// IsTempName reports whether name belongs to an uncommitted upload
func IsTempName(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}

// IsReservedName reports whether name could be mistaken for a file the stores create for themselves
func IsReservedName(name string) bool {
	return IsTempName(name) || (strings.HasPrefix(name, ".") && strings.Contains(name, atomicTempMarker))
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place,
// so readers observe either the old or the new content, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+atomicTempMarker+"*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "syncing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return errors.Wrapf(err, "setting mode of %s", tmp.Name())
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "renaming onto %s", path)
}

// SizeWriter wraps a writer and tracks the total number of bytes written
type sizeWriter struct {
	size int64
}

// Write implements io.Writer interface
// It tracks the size of data written and returns the length and nil error
func (sw *sizeWriter) Write(p []byte) (int, error) {
	n := len(p)
	sw.size += int64(n)
	return n, nil
}

// Size returns the total number of bytes written
func (sw *sizeWriter) Size() int64 {
	return sw.size
}

// NewSizeWriter creates a new SizeWriter instance
func NewSizeWriter() *sizeWriter {
	return &sizeWriter{
		size: 0,
	}
}
