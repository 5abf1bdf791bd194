package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/storage"
	json "github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const lockRetryDelay = 25 * time.Millisecond

// metadataRepository keeps video descriptions in a single JSON sidecar file
// mapping filename to description.
//
// Writers are serialized by an in-process mutex and an advisory file lock next to the sidecar,
// so concurrent read-modify-write cycles from several processes do not lose updates.
type metadataRepository struct {
	path   string
	mu     sync.Mutex
	lock   *flock.Flock
	logger *zap.Logger
}

// NewMetadataRepository creates a new metadata repository backed by the sidecar at path
func NewMetadataRepository(path string, logger *zap.Logger) *metadataRepository {
	return &metadataRepository{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}
}

// Path returns the location of the sidecar file
func (r *metadataRepository) Path() string {
	return r.path
}

// Init creates the sidecar directory and initializes the sidecar to an empty object if it is absent
func (r *metadataRepository) Init() error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.IO("init", dir, err)
	}

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errs.IO("init", r.path, err)
	}

	r.logger.Info("initializing empty video metadata file", zap.String("path", r.path))
	return errs.IO("init", r.path, storage.WriteFileAtomic(r.path, []byte("{}"), 0644))
}

// List returns the whole filename to description mapping.
// A missing sidecar reads as an empty mapping; an unparsable one is reported as corrupt.
func (r *metadataRepository) List(ctx context.Context) (map[string]string, error) {
	return r.load()
}

// Get returns the description stored for filename
func (r *metadataRepository) Get(ctx context.Context, filename string) (string, error) {
	entries, err := r.load()
	if err != nil {
		return "", err
	}

	description, ok := entries[filename]
	if !ok {
		return "", errs.NotFound("video", filename)
	}
	return description, nil
}

// Update runs fn on the current mapping while holding the sidecar lock,
// then rewrites the whole sidecar with the mutated mapping.
// When fn returns an error nothing is written and the error is returned as is.
func (r *metadataRepository) Update(ctx context.Context, fn func(entries map[string]string) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("waiting for metadata lock: %w", ctxErr)
		}
		return errs.IO("lock", r.lock.Path(), err)
	}
	if !locked {
		return errs.IO("lock", r.lock.Path(), fmt.Errorf("lock not acquired"))
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Error("failed to release metadata lock", zap.Error(err), zap.String("path", r.lock.Path()))
		}
	}()

	entries, err := r.load()
	if err != nil {
		return err
	}

	if err := fn(entries); err != nil {
		return err
	}

	return r.save(entries)
}

// Save rewrites the sidecar with the given mapping
func (r *metadataRepository) Save(ctx context.Context, entries map[string]string) error {
	return r.Update(ctx, func(current map[string]string) error {
		clear(current)
		for filename, description := range entries {
			current[filename] = description
		}
		return nil
	})
}

// load reads and decodes the sidecar
func (r *metadataRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		r.logger.Error("failed to read video metadata", zap.Error(err), zap.String("path", r.path))
		return nil, errs.IO("read", r.path, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Error("video metadata is corrupt", zap.Error(err), zap.String("path", r.path))
		return nil, &errs.ErrCorruptMetadata{Path: r.path, Sub: err}
	}
	// "null" decodes without error but is not an object
	if entries == nil {
		return nil, &errs.ErrCorruptMetadata{Path: r.path, Sub: fmt.Errorf("top-level value is not an object")}
	}

	return entries, nil
}

// save encodes the mapping with sorted keys and atomically replaces the sidecar
func (r *metadataRepository) save(entries map[string]string) error {
	if entries == nil {
		entries = map[string]string{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return errs.IO("encode", r.path, err)
	}

	if err := storage.WriteFileAtomic(r.path, data, 0644); err != nil {
		r.logger.Error("failed to write video metadata", zap.Error(err), zap.String("path", r.path))
		return errs.IO("write", r.path, err)
	}

	return nil
}
