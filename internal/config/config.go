// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Quiz storage backends
const (
	QuizBackendFS     = "fs"
	QuizBackendBadger = "badger"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
	Storage StorageConfig
	Admin   AdminConfig
	JWT     JWTConfig
	// ConsistencySchedule is a cron expression for the background consistency check, empty when disabled
	ConsistencySchedule string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
	// MaxUploadSize is the maximum request body size in bytes
	MaxUploadSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// StorageConfig holds filesystem locations of quizzes, videos and the video metadata sidecar
type StorageConfig struct {
	AssetDir     string
	QuizDir      string
	MetadataFile string
	QuizBackend  string
	BadgerPath   string
}

// AdminConfig holds the single admin credential pair
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}

	// Server configuration
	serverPortStr := getEnv("SERVER_PORT", "8080")
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	maxUploadStr := getEnv("MAX_UPLOAD_SIZE_MB", "500")
	maxUpload, err := strconv.ParseInt(maxUploadStr, 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %q", maxUploadStr)
	}
	cfg.Server.MaxUploadSize = maxUpload << 20

	// Logging configuration
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Storage configuration
	cfg.Storage.AssetDir = getEnv("ASSET_DIR", "assets/uploaded_videos")
	cfg.Storage.QuizDir = getEnv("QUIZ_DIR", "assets/quiz_data")
	cfg.Storage.MetadataFile = getEnv("METADATA_FILE", "assets/video_metadata.json")
	cfg.Storage.BadgerPath = getEnv("BADGER_PATH", "assets/quiz_index")
	cfg.Storage.QuizBackend = strings.ToLower(getEnv("QUIZ_BACKEND", QuizBackendFS))
	if cfg.Storage.QuizBackend != QuizBackendFS && cfg.Storage.QuizBackend != QuizBackendBadger {
		return nil, fmt.Errorf("invalid QUIZ_BACKEND: %s, must be '%s' or '%s'", cfg.Storage.QuizBackend, QuizBackendFS, QuizBackendBadger)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}

	// Admin credentials
	cfg.Admin.Username = os.Getenv("ADMIN_USERNAME")
	if cfg.Admin.Username == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME is required")
	}
	cfg.Admin.PasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.Admin.PasswordHash == "" {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash ADMIN_PASSWORD: %w", err)
		}
		cfg.Admin.PasswordHash = string(hash)
	}

	// JWT configuration
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	expiry, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.AccessTokenExpiry = expiry

	// Background consistency check
	cfg.ConsistencySchedule = getEnv("CONSISTENCY_SCHEDULE", "@hourly")
	if strings.EqualFold(cfg.ConsistencySchedule, "off") {
		cfg.ConsistencySchedule = ""
	}

	return cfg, nil
}

// Validate checks that nothing else is stored in the asset directory.
// Every regular file there without a metadata entry is an orphan video and gets removed by a repair.
func (c StorageConfig) Validate() error {
	if c.AssetDir == "" {
		return fmt.Errorf("asset directory is required")
	}
	if c.MetadataFile == "" {
		return fmt.Errorf("metadata file is required")
	}
	assetDir, err := filepath.Abs(c.AssetDir)
	if err != nil {
		return fmt.Errorf("invalid asset directory %q: %w", c.AssetDir, err)
	}

	type location struct {
		what string
		dir  string
	}
	shared := []location{{what: "metadata file", dir: filepath.Dir(c.MetadataFile)}}
	if c.QuizBackend == QuizBackendBadger {
		shared = append(shared, location{what: "badger directory", dir: c.BadgerPath})
	} else {
		shared = append(shared, location{what: "quiz directory", dir: c.QuizDir})
	}

	for _, loc := range shared {
		dir, err := filepath.Abs(loc.dir)
		if err != nil {
			return fmt.Errorf("invalid %s location %q: %w", loc.what, loc.dir, err)
		}
		if dir == assetDir {
			return fmt.Errorf("%s must not be located in the asset directory %s", loc.what, c.AssetDir)
		}
	}
	return nil
}

// getEnv returns the value of the environment variable or the default value if it is unset
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseOrigins parses comma-separated origins, defaulting to all origins
func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(raw, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	// If no valid origins found, default to allow all
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}
