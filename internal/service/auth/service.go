package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/Glen2003/IPTspotifyFinal/internal/domain"
	"github.com/Glen2003/IPTspotifyFinal/internal/repository"
	"github.com/Glen2003/IPTspotifyFinal/pkg/config"
	"github.com/Glen2003/IPTspotifyFinal/pkg/crypto"
	jwtpkg "github.com/Glen2003/IPTspotifyFinal/pkg/jwt"
)

// ErrMissingFields indicates a required registration field was absent.
var ErrMissingFields = errors.New("email, username and password are required")

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords so responses never reveal which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken indicates a token failed signature or claims validation.
var ErrInvalidToken = errors.New("invalid token")

// Service handles registration, login and token verification.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Register hashes the password and inserts a new user. Uniqueness violations
// surface as repository.ErrConflict.
func (s Service) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := jwtpkg.GenerateToken(user.ID, user.Username, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return token, nil
}

// VerifyToken validates a session token by signature alone; there is no
// store round-trip and no revocation list.
func (s Service) VerifyToken(token string) (*jwtpkg.Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrInvalidToken
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
