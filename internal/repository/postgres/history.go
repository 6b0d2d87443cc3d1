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

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.VehicleAssignment) error {
	query := `
		INSERT INTO vehicle_assignments (id, kid_id, team_id, from_vehicle_id, to_vehicle_id, change_type, actor_id, created_at)
		VALUES (:id, :kid_id, :team_id, :from_vehicle_id, :to_vehicle_id, :change_type, :actor_id, :created_at)
	`
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to append assignment history: %w", err)
	}
	return nil
}

func (r *historyRepository) ListByKid(ctx context.Context, kidID uuid.UUID) ([]*model.VehicleAssignment, error) {
	query := `SELECT * FROM vehicle_assignments WHERE kid_id = $1 ORDER BY created_at DESC`
	var entries []*model.VehicleAssignment
	if err := r.db.SelectContext(ctx, &entries, query, kidID); err != nil {
		return nil, fmt.Errorf("failed to list assignment history: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) ListSince(ctx context.Context, since time.Time) ([]*model.VehicleAssignment, error) {
	query := `SELECT * FROM vehicle_assignments WHERE created_at >= $1 ORDER BY created_at`
	var entries []*model.VehicleAssignment
	if err := r.db.SelectContext(ctx, &entries, query, since); err != nil {
		return nil, fmt.Errorf("failed to list assignment history since: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM vehicle_assignments WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune assignment history: %w", err)
	}
	return res.RowsAffected()
}
