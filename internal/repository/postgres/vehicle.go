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

type vehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, plate_number, type, capacity, status, created_at, updated_at)
		VALUES (:id, :name, :plate_number, :type, :capacity, :status, :created_at, :updated_at)
	`
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE id = $1 AND deleted_at IS NULL`
	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	query := `
		UPDATE vehicles SET name = :name, plate_number = :plate_number, type = :type,
			capacity = :capacity, status = :status, updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	vehicle.UpdatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE deleted_at IS NULL ORDER BY name`
	var vehicles []*model.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, query); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}
