// Package directory exposes CRUD over user records independent of auth.
// Rows created here carry no password, so they cannot be logged into; they
// coexist with registered accounts in the same table.
package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/Glen2003/IPTspotifyFinal/internal/domain"
	"github.com/Glen2003/IPTspotifyFinal/internal/repository"
)

// ErrMissingFields indicates username or email was absent.
var ErrMissingFields = errors.New("username and email are required")

// Service manages the user directory.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

// Create inserts a passwordless user record.
func (s Service) Create(ctx context.Context, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, ErrMissingFields
	}
	user := &domain.User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("directory user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// List returns the public projection of all users.
func (s Service) List(ctx context.Context) ([]domain.UserProfile, error) {
	return s.users.ListUsers(ctx)
}

// Update replaces username and email for the given id. A missing id affects
// zero rows and succeeds.
func (s Service) Update(ctx context.Context, id int64, username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return ErrMissingFields
	}
	if err := s.users.UpdateUser(ctx, id, username, email); err != nil {
		return err
	}
	s.logger.Info("directory user updated", "user_id", id)
	return nil
}
