package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/models"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// quizStore is implemented by both quiz backends
type quizStore interface {
	List(ctx context.Context) ([]models.Quiz, error)
	Get(ctx context.Context, title string) (*models.Quiz, error)
	Save(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, title string) error
}

func setupQuizBackends(t *testing.T) map[string]quizStore {
	t.Helper()

	fsRepo := NewQuizRepository(filepath.Join(t.TempDir(), "quiz_data"), zap.NewNop())
	require.NoError(t, fsRepo.Init())

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]quizStore{
		"fs":     fsRepo,
		"badger": NewQuizBadgerRepository(db, zap.NewNop()),
	}
}

func TestNewQuizRepository(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := NewQuizRepository("/data/quizzes", logger)

	assert.NotNil(t, repo)
	assert.Equal(t, "/data/quizzes", repo.dir)
	assert.Equal(t, logger, repo.logger)
	assert.Equal(t, filepath.Join("/data/quizzes", "Algebra Quiz.txt"), repo.path("Algebra Quiz"))
}

func TestQuizRepositories_SaveGetDelete(t *testing.T) {
	for name, repo := range setupQuizBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			quiz := &models.Quiz{Title: "Algebra Quiz", Content: "Q1: 2+2?\nA: 4"}
			require.NoError(t, repo.Save(ctx, quiz))

			got, err := repo.Get(ctx, "Algebra Quiz")
			require.NoError(t, err)
			assert.Equal(t, quiz, got)

			// Saving under the same title replaces the content
			require.NoError(t, repo.Save(ctx, &models.Quiz{Title: "Algebra Quiz", Content: "replaced"}))
			got, err = repo.Get(ctx, "Algebra Quiz")
			require.NoError(t, err)
			assert.Equal(t, "replaced", got.Content)

			require.NoError(t, repo.Delete(ctx, "Algebra Quiz"))

			_, err = repo.Get(ctx, "Algebra Quiz")
			var notFound *errs.ErrNotFound
			assert.True(t, errors.As(err, &notFound))

			err = repo.Delete(ctx, "Algebra Quiz")
			assert.True(t, errors.As(err, &notFound), "deleting twice should report not found")
		})
	}
}

func TestQuizRepositories_List(t *testing.T) {
	for name, repo := range setupQuizBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			quizzes, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, quizzes)

			for _, title := range []string{"b", "a.b", "a b", "a"} {
				require.NoError(t, repo.Save(ctx, &models.Quiz{Title: title, Content: "content of " + title}))
			}

			quizzes, err = repo.List(ctx)
			require.NoError(t, err)

			titles := make([]string, 0, len(quizzes))
			for _, q := range quizzes {
				titles = append(titles, q.Title)
				assert.Equal(t, "content of "+q.Title, q.Content)
			}
			assert.Equal(t, []string{"a", "a b", "a.b", "b"}, titles)
		})
	}
}

func TestQuizRepository_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewQuizRepository(dir, zap.NewNop())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Algebra Quiz.txt"), []byte("2+2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".Algebra Quiz.txt.tmp-123"), []byte("partial"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.txt"), 0755))

	quizzes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Quiz{{Title: "Algebra Quiz", Content: "2+2"}}, quizzes)
}

func TestQuizRepository_ListMissingDirectory(t *testing.T) {
	repo := NewQuizRepository(filepath.Join(t.TempDir(), "absent"), zap.NewNop())

	quizzes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestQuizRepository_FileLayout(t *testing.T) {
	dir := t.TempDir()
	repo := NewQuizRepository(dir, zap.NewNop())

	require.NoError(t, repo.Save(context.Background(), &models.Quiz{Title: "Algebra Quiz", Content: "2+2"}))

	data, err := os.ReadFile(filepath.Join(dir, "Algebra Quiz.txt"))
	require.NoError(t, err)
	assert.Equal(t, "2+2", string(data))
}

func TestQuizBadgerRepository_KeysArePrefixed(t *testing.T) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	defer db.Close()

	// Keys outside the quiz prefix are not listed
	require.NoError(t, db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("other:key"), []byte("value"))
	}))

	repo := NewQuizBadgerRepository(db, zap.NewNop())
	require.NoError(t, repo.Save(context.Background(), &models.Quiz{Title: "Algebra Quiz", Content: "2+2"}))

	quizzes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Quiz{{Title: "Algebra Quiz", Content: "2+2"}}, quizzes)
	assert.Equal(t, []byte("quiz:Algebra Quiz"), quizKey("Algebra Quiz"))
}
