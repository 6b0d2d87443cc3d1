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

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (id, generated_by, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`
	report.CreatedAt = time.Now()
	if _, err := r.db.ExecContext(ctx, query, report.ID, report.GeneratedBy, report.Payload, report.CreatedAt); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report model.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]*model.Report, error) {
	query := `SELECT * FROM reports ORDER BY created_at DESC`
	var reports []*model.Report
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
