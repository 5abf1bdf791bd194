package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/coursedash/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the login pair does not match the admin account
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccessTokenGenerator issues access tokens
type AccessTokenGenerator interface {
	GenerateAccessToken(subject string, role models.Role) (string, error)
}

type authService struct {
	username     string
	passwordHash []byte
	tokens       AccessTokenGenerator
	logger       *zap.Logger
}

// NewAuthService creates a new auth service for the single admin account
func NewAuthService(username, passwordHash string, tokens AccessTokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger,
	}
}

// Login checks the admin credentials and returns an admin access token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	// bcrypt runs regardless of the username result
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		s.logger.Info("rejected admin login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(s.username, models.RoleAdmin)
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.LoginResponse{
		AccessToken: token,
		Role:        models.RoleAdmin,
	}, nil
}
