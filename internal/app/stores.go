// Package app opens the on-disk stores and assembles the HTTP API on top of them
package app

import (
	"fmt"

	"github.com/coursedash/backend/internal/config"
	"github.com/coursedash/backend/internal/repositories"
	"github.com/coursedash/backend/internal/services"
	"github.com/coursedash/backend/internal/storage"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Stores groups the quiz store and the two halves of the asset store
type Stores struct {
	Quizzes  services.QuizRepository
	Metadata services.MetadataRepository
	Videos   services.Storage

	badgerDB *badger.DB
}

// OpenStores validates and creates the directory layout, initializes the metadata sidecar
// and opens the configured quiz backend.
// The caller must Close the returned stores.
func OpenStores(cfg config.StorageConfig, logger *zap.Logger) (*Stores, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage layout: %w", err)
	}

	videoStorage := storage.NewLocalStorage(cfg.AssetDir)
	if err := videoStorage.Init(); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	metadataRepo := repositories.NewMetadataRepository(cfg.MetadataFile, logger)
	if err := metadataRepo.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize video metadata: %w", err)
	}

	stores := &Stores{
		Metadata: metadataRepo,
		Videos:   videoStorage,
	}

	switch cfg.QuizBackend {
	case config.QuizBackendBadger:
		db, err := repositories.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open quiz index: %w", err)
		}
		stores.badgerDB = db
		stores.Quizzes = repositories.NewQuizBadgerRepository(db, logger)
	case config.QuizBackendFS, "":
		quizRepo := repositories.NewQuizRepository(cfg.QuizDir, logger)
		if err := quizRepo.Init(); err != nil {
			return nil, fmt.Errorf("failed to create quiz directory: %w", err)
		}
		stores.Quizzes = quizRepo
	default:
		return nil, fmt.Errorf("unknown quiz backend: %s", cfg.QuizBackend)
	}

	logger.Info("stores opened",
		zap.String("asset_dir", cfg.AssetDir),
		zap.String("metadata_file", cfg.MetadataFile),
		zap.String("quiz_backend", cfg.QuizBackend),
	)

	return stores, nil
}

// Close releases the quiz backend
func (s *Stores) Close() error {
	if s.badgerDB == nil {
		return nil
	}
	if err := s.badgerDB.Close(); err != nil {
		return fmt.Errorf("failed to close quiz index: %w", err)
	}
	return nil
}
