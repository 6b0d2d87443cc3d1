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

type kidRepository struct {
	db *sqlx.DB
}

func NewKidRepository(db *sqlx.DB) repository.KidRepository {
	return &kidRepository{db: db}
}

func (r *kidRepository) Create(ctx context.Context, kid *model.Kid) error {
	query := `
		INSERT INTO kids (
			id, first_name, last_name, birth_date, address, capabilities, photo_url,
			allergies, medical_notes,
			parent_name, parent_email, parent_phone, parent_work_phone, parent_address,
			team_id, instructor_id, vehicle_id,
			org_comment, parent_comment, attendance,
			created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :birth_date, :address, :capabilities, :photo_url,
			:allergies, :medical_notes,
			:parent_name, :parent_email, :parent_phone, :parent_work_phone, :parent_address,
			:team_id, :instructor_id, :vehicle_id,
			:org_comment, :parent_comment, :attendance,
			:created_at, :updated_at
		)
	`
	kid.CreatedAt = time.Now()
	kid.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, kid); err != nil {
		return fmt.Errorf("failed to create kid: %w", err)
	}
	return nil
}

func (r *kidRepository) Get(ctx context.Context, id uuid.UUID) (*model.Kid, error) {
	query := `SELECT * FROM kids WHERE id = $1 AND deleted_at IS NULL`
	var kid model.Kid
	if err := r.db.GetContext(ctx, &kid, query, id); err != nil {
		return nil, fmt.Errorf("failed to get kid: %w", err)
	}
	return &kid, nil
}

func (r *kidRepository) Update(ctx context.Context, kid *model.Kid) error {
	query := `
		UPDATE kids SET
			first_name = :first_name, last_name = :last_name, birth_date = :birth_date,
			address = :address, capabilities = :capabilities, photo_url = :photo_url,
			allergies = :allergies, medical_notes = :medical_notes,
			parent_name = :parent_name, parent_email = :parent_email,
			parent_phone = :parent_phone, parent_work_phone = :parent_work_phone,
			parent_address = :parent_address,
			team_id = :team_id, instructor_id = :instructor_id, vehicle_id = :vehicle_id,
			org_comment = :org_comment, parent_comment = :parent_comment,
			attendance = :attendance, updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	kid.UpdatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, kid); err != nil {
		return fmt.Errorf("failed to update kid: %w", err)
	}
	return nil
}

func (r *kidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE kids SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete kid: %w", err)
	}
	return nil
}

func (r *kidRepository) List(ctx context.Context) ([]*model.Kid, error) {
	query := `SELECT * FROM kids WHERE deleted_at IS NULL ORDER BY last_name, first_name`
	var kids []*model.Kid
	if err := r.db.SelectContext(ctx, &kids, query); err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}
	return kids, nil
}

func (r *kidRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*model.Kid, error) {
	query := `SELECT * FROM kids WHERE team_id = $1 AND deleted_at IS NULL ORDER BY last_name, first_name`
	var kids []*model.Kid
	if err := r.db.SelectContext(ctx, &kids, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list kids by team: %w", err)
	}
	return kids, nil
}

func (r *kidRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) ([]*model.Kid, error) {
	// IS DISTINCT FROM keeps kids without a team in the result set.
	query := `
		SELECT * FROM kids
		WHERE vehicle_id = $1
		  AND deleted_at IS NULL
		  AND ($2::uuid IS NULL OR team_id IS DISTINCT FROM $2)
	`
	var kids []*model.Kid
	if err := r.db.SelectContext(ctx, &kids, query, vehicleID, excludeTeamID); err != nil {
		return nil, fmt.Errorf("failed to list kids by vehicle: %w", err)
	}
	return kids, nil
}

func (r *kidRepository) SwapVehicles(ctx context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin swap transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE kids SET vehicle_id = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`
	now := time.Now()

	res, err := tx.ExecContext(ctx, query, vehicleForA, now, kidAID)
	if err != nil {
		return fmt.Errorf("failed to update first kid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("kid %s not found", kidAID)
	}

	res, err = tx.ExecContext(ctx, query, vehicleForB, now, kidBID)
	if err != nil {
		return fmt.Errorf("failed to update second kid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("kid %s not found", kidBID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit swap: %w", err)
	}
	return nil
}

func (r *kidRepository) SetTeam(ctx context.Context, kidID uuid.UUID, teamID *uuid.UUID) error {
	query := `UPDATE kids SET team_id = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, teamID, time.Now(), kidID); err != nil {
		return fmt.Errorf("failed to set kid team: %w", err)
	}
	return nil
}
