package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const quizKeyPrefix = "quiz:"

// quizBadgerRepository stores quizzes in an embedded Badger key-value store.
// Keys iterate in byte order, so List returns quizzes ordered by title like the directory backend.
type quizBadgerRepository struct {
	db     *badger.DB
	logger *zap.Logger
}

// OpenBadger opens (or creates) a Badger database at path
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// NewQuizBadgerRepository creates a new Badger-backed quiz repository
func NewQuizBadgerRepository(db *badger.DB, logger *zap.Logger) *quizBadgerRepository {
	return &quizBadgerRepository{
		db:     db,
		logger: logger,
	}
}

func quizKey(title string) []byte {
	return []byte(quizKeyPrefix + title)
}

// List returns all quizzes ordered by title
func (r *quizBadgerRepository) List(ctx context.Context) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	prefix := []byte(quizKeyPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			content, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			quizzes = append(quizzes, models.Quiz{
				Title:   string(item.Key()[len(prefix):]),
				Content: string(content),
			})
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to iterate quizzes", zap.Error(err))
		return nil, errs.IO("list", "badger", err)
	}

	return quizzes, nil
}

// Get retrieves a quiz by its title
func (r *quizBadgerRepository) Get(ctx context.Context, title string) (*models.Quiz, error) {
	var content []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(quizKey(title))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, errs.NotFound("quiz", title)
		}
		return nil, errs.IO("read", "badger", err)
	}

	return &models.Quiz{Title: title, Content: string(content)}, nil
}

// Save stores the quiz, replacing any quiz with the same title
func (r *quizBadgerRepository) Save(ctx context.Context, quiz *models.Quiz) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(quizKey(quiz.Title), []byte(quiz.Content))
	})
	if err != nil {
		r.logger.Error("failed to save quiz", zap.Error(err), zap.String("title", quiz.Title))
		return errs.IO("write", "badger", err)
	}
	return nil
}

// Delete removes the quiz
func (r *quizBadgerRepository) Delete(ctx context.Context, title string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(quizKey(title)); err != nil {
			return err
		}
		return txn.Delete(quizKey(title))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errs.NotFound("quiz", title)
		}
		r.logger.Error("failed to delete quiz", zap.Error(err), zap.String("title", title))
		return errs.IO("delete", "badger", err)
	}
	return nil
}
