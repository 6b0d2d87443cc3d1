package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (id, title, description, location, start_time, end_time, team_id, created_by, created_at, updated_at)
		VALUES (:id, :title, :description, :location, :start_time, :end_time, :team_id, :created_by, :created_at, :updated_at)
	`
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `SELECT * FROM events WHERE id = $1 AND deleted_at IS NULL`
	var event model.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events SET title = :title, description = :description, location = :location,
			start_time = :start_time, end_time = :end_time, team_id = :team_id, updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	event.UpdatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE events SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM events WHERE deleted_at IS NULL ORDER BY start_time`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	query := `
		SELECT * FROM events
		WHERE start_time >= $1 AND start_time < $2 AND deleted_at IS NULL
		ORDER BY start_time
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list events between: %w", err)
	}
	return events, nil
}
