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

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

// teamRow shadows model.Team for scanning; the id lists are uuid[] columns.
type teamRow struct {
	model.Base
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	InstructorIDs pq.StringArray `db:"instructor_ids"`
	KidIDs        pq.StringArray `db:"kid_ids"`
	VehicleIDs    pq.StringArray `db:"vehicle_ids"`
}

func (row *teamRow) toModel() (*model.Team, error) {
	team := &model.Team{
		Base:        row.Base,
		Name:        row.Name,
		Description: row.Description,
	}
	var err error
	if team.InstructorIDs, err = parseUUIDs(row.InstructorIDs); err != nil {
		return nil, err
	}
	if team.KidIDs, err = parseUUIDs(row.KidIDs); err != nil {
		return nil, err
	}
	if team.VehicleIDs, err = parseUUIDs(row.VehicleIDs); err != nil {
		return nil, err
	}
	return team, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid in array: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatUUIDs(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	query := `
		INSERT INTO teams (id, name, description, instructor_ids, kid_ids, vehicle_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		team.ID,
		team.Name,
		team.Description,
		formatUUIDs(team.InstructorIDs),
		formatUUIDs(team.KidIDs),
		formatUUIDs(team.VehicleIDs),
		team.CreatedAt,
		team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *teamRepository) Get(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	query := `SELECT * FROM teams WHERE id = $1 AND deleted_at IS NULL`
	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return row.toModel()
}

func (r *teamRepository) Update(ctx context.Context, team *model.Team) error {
	query := `
		UPDATE teams SET
			name = $1, description = $2,
			instructor_ids = $3, kid_ids = $4, vehicle_ids = $5,
			updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`
	team.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.Description,
		formatUUIDs(team.InstructorIDs),
		formatUUIDs(team.KidIDs),
		formatUUIDs(team.VehicleIDs),
		team.UpdatedAt,
		team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE teams SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (r *teamRepository) List(ctx context.Context) ([]*model.Team, error) {
	query := `SELECT * FROM teams WHERE deleted_at IS NULL ORDER BY name`
	return r.selectTeams(ctx, query)
}

func (r *teamRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeID *uuid.UUID) ([]*model.Team, error) {
	query := `
		SELECT * FROM teams
		WHERE $1 = ANY(vehicle_ids)
		  AND deleted_at IS NULL
		  AND ($2::uuid IS NULL OR id <> $2)
	`
	return r.selectTeams(ctx, query, vehicleID.String(), excludeID)
}

func (r *teamRepository) selectTeams(ctx context.Context, query string, args ...interface{}) ([]*model.Team, error) {
	var rows []*teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]*model.Team, 0, len(rows))
	for _, row := range rows {
		team, err := row.toModel()
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}
