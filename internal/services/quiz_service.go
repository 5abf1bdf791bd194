package services

import (
	"context"
	"fmt"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"go.uber.org/zap"
)

// QuizRepository is the interface that wraps methods for quiz persistence
type QuizRepository interface {
	// Method List retrieve all stored quizzes ordered by title.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.Quiz, error)
	// Method Get retrieve a quiz by its title.
	//
	// If the quiz does not exist, a *errors.ErrNotFound is returned.
	Get(ctx context.Context, title string) (*models.Quiz, error)
	// Method Save store the quiz, replacing any quiz stored under the same title.
	Save(ctx context.Context, quiz *models.Quiz) error
	// Method Delete remove the quiz stored under the title.
	//
	// If the quiz does not exist, a *errors.ErrNotFound is returned.
	Delete(ctx context.Context, title string) error
}

type quizService struct {
	repo   QuizRepository
	logger *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(repo QuizRepository, logger *zap.Logger) *quizService {
	return &quizService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves all quizzes ordered by title
func (s *quizService) List(ctx context.Context) ([]models.Quiz, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list quizzes", zap.Error(err))
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// Get retrieves a quiz by its title
func (s *quizService) Get(ctx context.Context, title string) (*models.Quiz, error) {
	if err := validateName("title", title); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Get(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// Create stores a new quiz.
//
// Both title and content are required. An existing quiz with the same title is overwritten.
func (s *quizService) Create(ctx context.Context, title, content string) (*models.Quiz, error) {
	if err := validateName("title", title); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, errs.Validation("content", "is required")
	}

	quiz := &models.Quiz{Title: title, Content: content}
	if err := s.repo.Save(ctx, quiz); err != nil {
		s.logger.Error("failed to create quiz", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("quiz created", zap.String("title", title))
	return quiz, nil
}

// Delete removes a quiz by its title
func (s *quizService) Delete(ctx context.Context, title string) error {
	if err := validateName("title", title); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, title); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.logger.Info("quiz deleted", zap.String("title", title))
	return nil
}
