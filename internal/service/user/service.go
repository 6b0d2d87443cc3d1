package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/pkg/errors"
	"github.com/campfirehq/youthorg-api/pkg/fieldauth"
)

const bcryptCost = 12

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       model.UserStatusActive,
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("user", err)
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("user", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser is the privileged deletion path: only admins may delete, and
// never themselves. Both rules are checked here, not in the handler, so every
// caller gets them.
func (s *Service) DeleteUser(ctx context.Context, callerID, callerRole string, targetID uuid.UUID) error {
	if fieldauth.Role(callerRole) != fieldauth.RoleAdmin {
		return errors.Forbidden("only admins may delete users", nil)
	}
	if callerID == targetID.String() {
		return errors.Forbidden("admins cannot delete their own account", nil)
	}

	if _, err := s.repo.Get(ctx, targetID); err != nil {
		return errors.NotFound("user", err)
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}
