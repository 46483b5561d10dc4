package repository

import (
	"context"

	"github.com/Glen2003/IPTspotifyFinal/internal/domain"
)

// UserRepository persists users. The store assigns identifiers and enforces
// email/username uniqueness; violations surface as ErrConflict.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.UserProfile, error)
	UpdateUser(ctx context.Context, id int64, username, email string) error
}
