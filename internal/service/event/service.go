package event

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
	repo repository.EventRepository
}

func NewService(repo repository.EventRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateEvent(ctx context.Context, req *model.CreateEventRequest, createdBy uuid.UUID) (*model.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.BadRequest("event must end after it starts", nil)
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TeamID:      req.TeamID,
		CreatedBy:   createdBy,
	}
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("event", err)
	}
	return event, nil
}

func (s *Service) UpdateEvent(ctx context.Context, event *model.Event) error {
	if !event.EndTime.After(event.StartTime) {
		return errors.BadRequest("event must end after it starts", nil)
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return errors.NotFound("event", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *Service) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpcomingEvents(ctx context.Context, window time.Duration) ([]*model.Event, error) {
	now := time.Now()
	return s.repo.ListBetween(ctx, now, now.Add(window))
}
