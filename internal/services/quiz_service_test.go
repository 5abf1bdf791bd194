package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"github.com/coursedash/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockQuizRepository is a mock implementation of QuizRepository
type mockQuizRepository struct {
	quizzes   []models.Quiz
	quiz      *models.Quiz
	err       error
	saved     *models.Quiz
	deleted   string
	saveCalls int
}

func (m *mockQuizRepository) List(ctx context.Context) ([]models.Quiz, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quizzes, nil
}

func (m *mockQuizRepository) Get(ctx context.Context, title string) (*models.Quiz, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quiz, nil
}

func (m *mockQuizRepository) Save(ctx context.Context, quiz *models.Quiz) error {
	m.saveCalls++
	if m.err != nil {
		return m.err
	}
	m.saved = quiz
	return nil
}

func (m *mockQuizRepository) Delete(ctx context.Context, title string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = title
	return nil
}

func TestNewQuizService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	mockRepo := &mockQuizRepository{}

	svc := NewQuizService(mockRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.repo)
	assert.Equal(t, logger, svc.logger)
}

func TestQuizService_List(t *testing.T) {
	tests := []struct {
		name          string
		mockRepo      *mockQuizRepository
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			mockRepo: &mockQuizRepository{
				quizzes: []models.Quiz{
					{Title: "Algebra Quiz", Content: "2+2"},
					{Title: "Geometry", Content: "angles"},
				},
			},
			expectedCount: 2,
		},
		{
			name:          "empty result",
			mockRepo:      &mockQuizRepository{quizzes: []models.Quiz{}},
			expectedCount: 0,
		},
		{
			name:          "repository error",
			mockRepo:      &mockQuizRepository{err: errors.New("disk error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuizService(tt.mockRepo, zap.NewNop())

			result, err := svc.List(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestQuizService_Create(t *testing.T) {
	tests := []struct {
		name               string
		title              string
		content            string
		mockRepo           *mockQuizRepository
		expectedValidation bool
		expectedError      bool
	}{
		{
			name:     "success",
			title:    "Algebra Quiz",
			content:  "Q1: 2+2?",
			mockRepo: &mockQuizRepository{},
		},
		{
			name:     "unicode title",
			title:    "Квиз по алгебре",
			content:  "Q1",
			mockRepo: &mockQuizRepository{},
		},
		{
			name:     "title at max length",
			title:    strings.Repeat("a", maxNameLength),
			content:  "Q1",
			mockRepo: &mockQuizRepository{},
		},
		{
			name:               "title too long",
			title:              strings.Repeat("a", maxNameLength+1),
			content:            "Q1",
			mockRepo:           &mockQuizRepository{},
			expectedValidation: true,
		},
		{
			name:               "empty title",
			title:              "",
			content:            "Q1",
			mockRepo:           &mockQuizRepository{},
			expectedValidation: true,
		},
		{
			name:               "empty content",
			title:              "Algebra Quiz",
			content:            "",
			mockRepo:           &mockQuizRepository{},
			expectedValidation: true,
		},
		{
			name:               "title shadows an atomic write temp file",
			title:              ".Algebra Quiz.txt.tmp-123",
			content:            "Q1",
			mockRepo:           &mockQuizRepository{},
			expectedValidation: true,
		},
		{
			name:               "path traversal",
			title:              "../escape",
			content:            "Q1",
			mockRepo:           &mockQuizRepository{},
			expectedValidation: true,
		},
		{
			name:          "repository error",
			title:         "Algebra Quiz",
			content:       "Q1",
			mockRepo:      &mockQuizRepository{err: errors.New("disk full")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuizService(tt.mockRepo, zap.NewNop())

			quiz, err := svc.Create(context.Background(), tt.title, tt.content)

			switch {
			case tt.expectedValidation:
				var validation *errs.ErrValidation
				assert.True(t, errors.As(err, &validation), "expected validation error, got %v", err)
				assert.Nil(t, quiz)
				assert.Zero(t, tt.mockRepo.saveCalls, "nothing should be stored")
			case tt.expectedError:
				assert.Error(t, err)
				assert.Nil(t, quiz)
			default:
				require.NoError(t, err)
				assert.Equal(t, &models.Quiz{Title: tt.title, Content: tt.content}, quiz)
				assert.Equal(t, quiz, tt.mockRepo.saved)
			}
		})
	}
}

func TestQuizService_GetAndDelete(t *testing.T) {
	t.Run("not found is preserved through wrapping", func(t *testing.T) {
		mockRepo := &mockQuizRepository{err: errs.NotFound("quiz", "Missing")}
		svc := NewQuizService(mockRepo, zap.NewNop())

		_, err := svc.Get(context.Background(), "Missing")
		var notFound *errs.ErrNotFound
		assert.True(t, errors.As(err, &notFound))

		err = svc.Delete(context.Background(), "Missing")
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("invalid title", func(t *testing.T) {
		svc := NewQuizService(&mockQuizRepository{}, zap.NewNop())

		_, err := svc.Get(context.Background(), "a/b")
		var validation *errs.ErrValidation
		assert.True(t, errors.As(err, &validation))

		err = svc.Delete(context.Background(), "")
		assert.True(t, errors.As(err, &validation))
	})

	t.Run("delete success", func(t *testing.T) {
		mockRepo := &mockQuizRepository{}
		svc := NewQuizService(mockRepo, zap.NewNop())

		require.NoError(t, svc.Delete(context.Background(), "Algebra Quiz"))
		assert.Equal(t, "Algebra Quiz", mockRepo.deleted)
	})
}

func TestQuizService_DirectoryScenario(t *testing.T) {
	repo := repositories.NewQuizRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, repo.Init())
	svc := NewQuizService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Algebra Quiz", "Q1: 2+2?")
	require.NoError(t, err)

	quizzes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Quiz{{Title: "Algebra Quiz", Content: "Q1: 2+2?"}}, quizzes)

	require.NoError(t, svc.Delete(ctx, "Algebra Quiz"))

	quizzes, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}
