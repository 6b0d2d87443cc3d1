package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/pkg/errors"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*model.User
	deleted []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", email)
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*model.User, error) {
	var out []*model.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func seedUser(repo *fakeUserRepo, role string) *model.User {
	user := &model.User{
		Email:  fmt.Sprintf("%s@example.org", uuid.NewString()[:8]),
		Name:   "Test User",
		Role:   role,
		Status: model.UserStatusActive,
	}
	user.ID = uuid.New()
	repo.users[user.ID] = user
	return user
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "staff@example.org",
		Name:     "Staff Member",
		Password: "supersecret",
		Role:     "instructor",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
	assert.Equal(t, model.UserStatusActive, user.Status)
}

func TestDeleteUserGuards(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	admin := seedUser(repo, "admin")
	target := seedUser(repo, "parent")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		instructor := seedUser(repo, "instructor")
		err := svc.DeleteUser(context.Background(), instructor.ID.String(), "instructor", target.ID)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
		assert.Empty(t, repo.deleted)
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), admin.ID.String(), "admin", admin.ID)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
		assert.Empty(t, repo.deleted)
	})

	t.Run("missing target", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), admin.ID.String(), "admin", uuid.New())
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("admin deletes other user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), admin.ID.String(), "admin", target.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{target.ID}, repo.deleted)
	})
}
