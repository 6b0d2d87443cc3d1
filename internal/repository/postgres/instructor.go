package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
)

type instructorRepository struct {
	db *sqlx.DB
}

func NewInstructorRepository(db *sqlx.DB) repository.InstructorRepository {
	return &instructorRepository{db: db}
}

type instructorRow struct {
	model.Base
	Name    string         `db:"name"`
	Email   string         `db:"email"`
	Phone   string         `db:"phone"`
	TeamIDs pq.StringArray `db:"team_ids"`
}

func (row *instructorRow) toModel() (*model.Instructor, error) {
	teamIDs, err := parseUUIDs(row.TeamIDs)
	if err != nil {
		return nil, err
	}
	return &model.Instructor{
		Base:    row.Base,
		Name:    row.Name,
		Email:   row.Email,
		Phone:   row.Phone,
		TeamIDs: teamIDs,
	}, nil
}

func (r *instructorRepository) Create(ctx context.Context, instructor *model.Instructor) error {
	query := `
		INSERT INTO instructors (id, name, email, phone, team_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	instructor.CreatedAt = time.Now()
	instructor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		instructor.ID,
		instructor.Name,
		instructor.Email,
		instructor.Phone,
		formatUUIDs(instructor.TeamIDs),
		instructor.CreatedAt,
		instructor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}
	return nil
}

func (r *instructorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Instructor, error) {
	query := `SELECT * FROM instructors WHERE id = $1 AND deleted_at IS NULL`
	var row instructorRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get instructor: %w", err)
	}
	return row.toModel()
}

func (r *instructorRepository) Update(ctx context.Context, instructor *model.Instructor) error {
	query := `
		UPDATE instructors SET name = $1, email = $2, phone = $3, team_ids = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`
	instructor.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		instructor.Name,
		instructor.Email,
		instructor.Phone,
		formatUUIDs(instructor.TeamIDs),
		instructor.UpdatedAt,
		instructor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update instructor: %w", err)
	}
	return nil
}

func (r *instructorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE instructors SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	return nil
}

func (r *instructorRepository) List(ctx context.Context) ([]*model.Instructor, error) {
	query := `SELECT * FROM instructors WHERE deleted_at IS NULL ORDER BY name`
	var rows []*instructorRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	instructors := make([]*model.Instructor, 0, len(rows))
	for _, row := range rows {
		instructor, err := row.toModel()
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}
	return instructors, nil
}
