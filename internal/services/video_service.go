package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"github.com/coursedash/backend/internal/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// staleUploadAge is how old an uncommitted upload must be before it counts as an orphan
const staleUploadAge = time.Hour

// Storage defines the interface for video binary storage operations
type Storage interface {
	// CreateTemp creates a new temporary file that will later be committed or discarded
	CreateTemp() (*os.File, error)

	// Commit atomically moves a temporary file onto its final name
	Commit(tempPath, name string) error

	// Discard removes a temporary file
	Discard(tempPath string) error

	// OpenFile opens a file and returns *os.File for use with http.ServeContent
	OpenFile(name string) (*os.File, error)

	// Delete removes a file
	Delete(name string) error

	// List returns all stored files sorted by name
	List() ([]os.FileInfo, error)
}

// MetadataRepository defines the interface for video description access
type MetadataRepository interface {
	List(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, filename string) (string, error)
	Update(ctx context.Context, fn func(entries map[string]string) error) error
}

type videoService struct {
	metadataRepo MetadataRepository
	storage      Storage
	logger       *zap.Logger
	now          func() time.Time
}

// NewVideoService creates a new video service
func NewVideoService(metadataRepo MetadataRepository, storage Storage, logger *zap.Logger) *videoService {
	return &videoService{
		metadataRepo: metadataRepo,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
	}
}

// List retrieves the filename to description mapping of all uploaded videos
func (s *videoService) List(ctx context.Context) (map[string]string, error) {
	entries, err := s.metadataRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list videos", zap.Error(err))
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return entries, nil
}

// Upload stores a video binary and its description.
//
// The binary is streamed to a temporary file first, then moved into place and
// recorded in the metadata sidecar while the sidecar lock is held.
// If the sidecar cannot be written for a new video, the binary is removed again.
func (s *videoService) Upload(ctx context.Context, filename string, reader io.Reader, description string) (*models.Video, error) {
	if err := validateName("filename", filename); err != nil {
		return nil, err
	}
	if !models.IsAllowedVideo(filename) {
		return nil, errs.Validation("filename", "unsupported video type, allowed: .mp4, .avi, .mkv")
	}
	if description == "" {
		return nil, errs.Validation("description", "is required")
	}
	if reader == nil {
		return nil, errs.Validation("file", "is required")
	}

	tmp, err := s.storage.CreateTemp()
	if err != nil {
		s.logger.Error("failed to create upload file", zap.Error(err))
		return nil, errs.IO("create", filename, err)
	}
	tempPath := tmp.Name()

	// Create SizeWriter to track bytes
	sizeWriter := storage.NewSizeWriter()
	_, copyErr := io.Copy(tmp, io.TeeReader(reader, sizeWriter))
	if err := multierr.Append(copyErr, tmp.Close()); err != nil {
		s.discard(tempPath)
		s.logger.Error("failed to write upload file", zap.Error(err), zap.String("filename", filename))
		return nil, errs.IO("write", filename, err)
	}
	if sizeWriter.Size() == 0 {
		s.discard(tempPath)
		return nil, errs.Validation("file", "must not be empty")
	}

	created := false
	err = s.metadataRepo.Update(ctx, func(entries map[string]string) error {
		_, existed := entries[filename]
		if err := s.storage.Commit(tempPath, filename); err != nil {
			return errs.IO("commit", filename, err)
		}
		created = !existed
		entries[filename] = description
		return nil
	})
	if err != nil {
		// Commit may not have happened
		s.discard(tempPath)
		if created {
			if delErr := s.storage.Delete(filename); delErr != nil && !os.IsNotExist(delErr) {
				s.logger.Error("failed to remove video after metadata failure", zap.Error(delErr), zap.String("filename", filename))
			}
		}
		s.logger.Error("failed to upload video", zap.Error(err), zap.String("filename", filename))
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	s.logger.Info("video uploaded", zap.String("filename", filename), zap.Int64("size", sizeWriter.Size()))
	return &models.Video{
		Filename:    filename,
		Description: description,
		Size:        sizeWriter.Size(),
	}, nil
}

// Delete removes a video binary and its description.
//
// The filename must be a current metadata entry. A binary that is already missing
// does not fail the deletion, the dangling entry is removed anyway.
func (s *videoService) Delete(ctx context.Context, filename string) error {
	if err := validateName("filename", filename); err != nil {
		return err
	}

	err := s.metadataRepo.Update(ctx, func(entries map[string]string) error {
		if _, ok := entries[filename]; !ok {
			return errs.NotFound("video", filename)
		}

		if err := s.storage.Delete(filename); err != nil {
			if !os.IsNotExist(err) {
				return errs.IO("delete", filename, err)
			}
			s.logger.Warn("video binary already missing, removing metadata entry", zap.String("filename", filename))
		}

		delete(entries, filename)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	s.logger.Info("video deleted", zap.String("filename", filename))
	return nil
}

// Open opens a video binary for streaming
func (s *videoService) Open(ctx context.Context, filename string) (*os.File, error) {
	if err := validateName("filename", filename); err != nil {
		return nil, err
	}

	if _, err := s.metadataRepo.Get(ctx, filename); err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	file, err := s.storage.OpenFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("video", filename)
		}
		return nil, errs.IO("open", filename, err)
	}
	return file, nil
}

// Reconcile compares stored binaries with metadata entries and reports orphans in both directions.
//
// With repair set, orphan binaries are removed and dangling entries dropped from the sidecar.
// Uncommitted uploads younger than an hour are skipped since they may still be in progress.
func (s *videoService) Reconcile(ctx context.Context, repair bool) (*models.ConsistencyReport, error) {
	if !repair {
		entries, err := s.metadataRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile videos: %w", err)
		}
		return s.compare(entries)
	}

	var (
		report  *models.ConsistencyReport
		fileErr error
	)
	err := s.metadataRepo.Update(ctx, func(entries map[string]string) error {
		var err error
		report, err = s.compare(entries)
		if err != nil {
			return err
		}

		for _, name := range report.OrphanFiles {
			if err := s.storage.Delete(name); err != nil && !os.IsNotExist(err) {
				fileErr = multierr.Append(fileErr, errs.IO("delete", name, err))
			}
		}
		for _, name := range report.DanglingEntries {
			delete(entries, name)
		}
		return nil
	})
	if err := multierr.Append(err, fileErr); err != nil {
		s.logger.Error("failed to repair videos", zap.Error(err))
		return nil, fmt.Errorf("failed to reconcile videos: %w", err)
	}

	report.Repaired = true
	if !report.Consistent() {
		s.logger.Info("video storage repaired",
			zap.Strings("orphanFiles", report.OrphanFiles),
			zap.Strings("danglingEntries", report.DanglingEntries),
		)
	}
	return report, nil
}

// compare lists binaries without entries and entries without binaries
func (s *videoService) compare(entries map[string]string) (*models.ConsistencyReport, error) {
	files, err := s.storage.List()
	if err != nil {
		return nil, errs.IO("list", "videos", err)
	}

	report := &models.ConsistencyReport{
		OrphanFiles:     []string{},
		DanglingEntries: []string{},
	}

	present := make(map[string]struct{}, len(files))
	for _, file := range files {
		name := file.Name()
		present[name] = struct{}{}

		if _, ok := entries[name]; ok {
			continue
		}
		if storage.IsTempName(name) && s.now().Sub(file.ModTime()) < staleUploadAge {
			continue
		}
		report.OrphanFiles = append(report.OrphanFiles, name)
	}

	for name := range entries {
		if _, ok := present[name]; !ok {
			report.DanglingEntries = append(report.DanglingEntries, name)
		}
	}
	slices.Sort(report.DanglingEntries)

	return report, nil
}

// discard removes a temporary upload file, logging failures
func (s *videoService) discard(tempPath string) {
	if err := s.storage.Discard(tempPath); err != nil {
		s.logger.Error("failed to remove temporary upload", zap.Error(err), zap.String("path", tempPath))
	}
}
