package repositories

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"github.com/coursedash/backend/internal/storage"
	"go.uber.org/zap"
)

// quizRepository stores one plain-text file per quiz; the directory listing is the catalog
type quizRepository struct {
	dir    string
	logger *zap.Logger
}

// NewQuizRepository creates a new directory-backed quiz repository
func NewQuizRepository(dir string, logger *zap.Logger) *quizRepository {
	return &quizRepository{
		dir:    dir,
		logger: logger,
	}
}

// Init creates the quiz directory if it does not exist
func (r *quizRepository) Init() error {
	return errs.IO("init", r.dir, os.MkdirAll(r.dir, 0755))
}

func (r *quizRepository) path(title string) string {
	return filepath.Join(r.dir, title+models.QuizFileExtension)
}

// Method List is a QuizRepository implementation returning every "*.txt" quiz ordered by title.
func (r *quizRepository) List(ctx context.Context) ([]models.Quiz, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Quiz{}, nil
		}
		r.logger.Error("failed to read quiz directory", zap.Error(err), zap.String("dir", r.dir))
		return nil, errs.IO("list", r.dir, err)
	}

	quizzes := make([]models.Quiz, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, models.QuizFileExtension) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			// Deleted between the listing and the read
			if os.IsNotExist(err) {
				continue
			}
			r.logger.Error("failed to read quiz file", zap.Error(err), zap.String("file", name))
			return nil, errs.IO("read", filepath.Join(r.dir, name), err)
		}

		quizzes = append(quizzes, models.Quiz{
			Title:   strings.TrimSuffix(name, models.QuizFileExtension),
			Content: string(content),
		})
	}

	// Directory order is by file name, which differs from title order ("a b.txt" < "a.txt")
	slices.SortFunc(quizzes, func(a, b models.Quiz) int {
		return strings.Compare(a.Title, b.Title)
	})

	return quizzes, nil
}

// Get retrieves a quiz by its title
func (r *quizRepository) Get(ctx context.Context, title string) (*models.Quiz, error) {
	path := r.path(title)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("quiz", title)
		}
		return nil, errs.IO("read", path, err)
	}

	return &models.Quiz{Title: title, Content: string(content)}, nil
}

// Save writes the quiz file, replacing any quiz with the same title
func (r *quizRepository) Save(ctx context.Context, quiz *models.Quiz) error {
	path := r.path(quiz.Title)
	if err := storage.WriteFileAtomic(path, []byte(quiz.Content), 0644); err != nil {
		r.logger.Error("failed to write quiz file", zap.Error(err), zap.String("title", quiz.Title))
		return errs.IO("write", path, err)
	}
	return nil
}

// Delete removes the quiz file
func (r *quizRepository) Delete(ctx context.Context, title string) error {
	path := r.path(title)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errs.NotFound("quiz", title)
		}
		r.logger.Error("failed to delete quiz file", zap.Error(err), zap.String("title", title))
		return errs.IO("delete", path, err)
	}
	return nil
}
