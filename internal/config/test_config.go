package config

import (
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Credentials used by LoadTestConfig
const (
	TestAdminUsername = "admin"
	TestAdminPassword = "admin-password"
	TestJWTSecret     = "b8a3c2267dc85f855dea9b46b452bf20"
)

// LoadTestConfig returns a configuration whose storage is rooted at baseDir.
// No environment variables or .env file are read, so tests stay isolated from each other.
func LoadTestConfig(baseDir string) (*Config, error) {
	// MinCost keeps test setup fast
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Server.Port = 0
	cfg.Server.MaxUploadSize = 10 << 20
	cfg.Logging.Level = "debug"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Storage = StorageConfig{
		AssetDir:     filepath.Join(baseDir, "uploaded_videos"),
		QuizDir:      filepath.Join(baseDir, "quiz_data"),
		MetadataFile: filepath.Join(baseDir, "video_metadata.json"),
		QuizBackend:  QuizBackendFS,
		BadgerPath:   filepath.Join(baseDir, "quiz_index"),
	}
	cfg.Admin = AdminConfig{
		Username:     TestAdminUsername,
		PasswordHash: string(hash),
	}
	cfg.JWT = JWTConfig{
		Secret:            TestJWTSecret,
		AccessTokenExpiry: time.Hour,
	}

	return cfg, nil
}
