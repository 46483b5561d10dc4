package directory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Glen2003/IPTspotifyFinal/internal/domain"
	"github.com/Glen2003/IPTspotifyFinal/internal/repository"
)

type userRepoMock struct {
	createFunc func(ctx context.Context, user *domain.User) error
	listFunc   func(ctx context.Context) ([]domain.UserProfile, error)
	updateFunc func(ctx context.Context, id int64, username, email string) error
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc == nil {
		return errors.New("unexpected CreateUser call")
	}
	return m.createFunc(ctx, user)
}

func (m *userRepoMock) GetUserByUsername(context.Context, string) (*domain.User, error) {
	return nil, errors.New("unexpected GetUserByUsername call")
}

func (m *userRepoMock) GetUserByID(context.Context, int64) (*domain.User, error) {
	return nil, errors.New("unexpected GetUserByID call")
}

func (m *userRepoMock) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	if m.listFunc == nil {
		return nil, errors.New("unexpected ListUsers call")
	}
	return m.listFunc(ctx)
}

func (m *userRepoMock) UpdateUser(ctx context.Context, id int64, username, email string) error {
	if m.updateFunc == nil {
		return errors.New("unexpected UpdateUser call")
	}
	return m.updateFunc(ctx, id, username, email)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateInsertsPasswordlessRecord(t *testing.T) {
	var stored *domain.User
	repo := &userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			user.ID = 3
			stored = user
			return nil
		},
	}
	svc := New(repo, newLogger())

	user, err := svc.Create(context.Background(), "bob", "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 {
		t.Fatalf("expected store-assigned id, got %d", user.ID)
	}
	if stored.PasswordHash != nil {
		t.Fatalf("directory creation must not set a password hash")
	}
}

func TestCreateSurfacesConflict(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			return repository.ErrConflict
		},
	}
	svc := New(repo, newLogger())
	if _, err := svc.Create(context.Background(), "bob", "bob@example.com"); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateRequiresBothFields(t *testing.T) {
	svc := New(&userRepoMock{}, newLogger())
	if _, err := svc.Create(context.Background(), "", "bob@example.com"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", "  "); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestListReturnsProjection(t *testing.T) {
	repo := &userRepoMock{
		listFunc: func(context.Context) ([]domain.UserProfile, error) {
			return []domain.UserProfile{
				{ID: 1, Username: "alice", Email: "alice@example.com"},
				{ID: 2, Username: "bob", Email: "bob@example.com"},
			}, nil
		},
	}
	svc := New(repo, newLogger())

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Username != "alice" || profiles[1].ID != 2 {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}

func TestUpdateRequiresBothFields(t *testing.T) {
	svc := New(&userRepoMock{}, newLogger())
	if err := svc.Update(context.Background(), 1, "bob", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUpdateIsPermissiveAboutMissingIDs(t *testing.T) {
	var gotID int64
	repo := &userRepoMock{
		updateFunc: func(_ context.Context, id int64, username, email string) error {
			gotID = id
			// Zero rows affected for an unknown id is not an error.
			return nil
		},
	}
	svc := New(repo, newLogger())
	if err := svc.Update(context.Background(), 9999, "ghost", "ghost@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != 9999 {
		t.Fatalf("unexpected id passed to repository: %d", gotID)
	}
}
