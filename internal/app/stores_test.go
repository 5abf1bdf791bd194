package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/coursedash/backend/internal/config"
	"github.com/coursedash/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStores(t *testing.T) {
	for _, backend := range []string{config.QuizBackendFS, config.QuizBackendBadger} {
		t.Run(backend, func(t *testing.T) {
			cfg, err := config.LoadTestConfig(t.TempDir())
			require.NoError(t, err)
			cfg.Storage.QuizBackend = backend

			stores, err := OpenStores(cfg.Storage, zap.NewNop())
			require.NoError(t, err)

			_, err = os.Stat(cfg.Storage.AssetDir)
			assert.NoError(t, err)
			data, err := os.ReadFile(cfg.Storage.MetadataFile)
			require.NoError(t, err)
			assert.Equal(t, "{}", string(data))

			ctx := context.Background()
			require.NoError(t, stores.Quizzes.Save(ctx, &models.Quiz{Title: "Algebra Quiz", Content: "2+2"}))
			require.NoError(t, stores.Close())

			// Quizzes survive reopening the stores
			stores, err = OpenStores(cfg.Storage, zap.NewNop())
			require.NoError(t, err)
			defer stores.Close()

			quiz, err := stores.Quizzes.Get(ctx, "Algebra Quiz")
			require.NoError(t, err)
			assert.Equal(t, "2+2", quiz.Content)
		})
	}
}

func TestOpenStores_UnknownBackend(t *testing.T) {
	cfg, err := config.LoadTestConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.QuizBackend = "mysql"

	stores, err := OpenStores(cfg.Storage, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, stores)
}

func TestOpenStores_RejectsSharedAssetDirectory(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.StorageConfig)
	}{
		{
			name:   "metadata file in asset directory",
			modify: func(c *config.StorageConfig) { c.MetadataFile = filepath.Join(c.AssetDir, "meta.json") },
		},
		{
			name:   "quiz directory is the asset directory",
			modify: func(c *config.StorageConfig) { c.QuizDir = c.AssetDir + string(filepath.Separator) },
		},
		{
			name: "badger directory is the asset directory",
			modify: func(c *config.StorageConfig) {
				c.QuizBackend = config.QuizBackendBadger
				c.BadgerPath = c.AssetDir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadTestConfig(t.TempDir())
			require.NoError(t, err)
			tt.modify(&cfg.Storage)

			stores, err := OpenStores(cfg.Storage, zap.NewNop())
			assert.Error(t, err)
			assert.Nil(t, stores)

			// Nothing is created for a rejected layout
			_, err = os.Stat(cfg.Storage.AssetDir)
			assert.True(t, os.IsNotExist(err))
		})
	}
}
