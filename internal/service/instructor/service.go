package instructor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/pkg/errors"
)

type Service struct {
	repo repository.InstructorRepository
}

func NewService(repo repository.InstructorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateInstructor(ctx context.Context, req *model.CreateInstructorRequest) (*model.Instructor, error) {
	instructor := &model.Instructor{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	instructor.ID = uuid.New()
	instructor.CreatedAt = time.Now()
	instructor.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}
	return instructor, nil
}

func (s *Service) GetInstructor(ctx context.Context, id uuid.UUID) (*model.Instructor, error) {
	instructor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("instructor", err)
	}
	return instructor, nil
}

func (s *Service) UpdateInstructor(ctx context.Context, instructor *model.Instructor) error {
	instructor.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, instructor); err != nil {
		return fmt.Errorf("failed to update instructor: %w", err)
	}
	return nil
}

func (s *Service) DeleteInstructor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return errors.NotFound("instructor", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	return nil
}

func (s *Service) ListInstructors(ctx context.Context) ([]*model.Instructor, error) {
	return s.repo.List(ctx)
}
