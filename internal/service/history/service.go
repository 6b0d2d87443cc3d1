package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
)

// Service reads and prunes the vehicle assignment audit trail. Writes happen
// inside the swap and team services at the point of change.
type Service struct {
	repo repository.HistoryRepository
}

func NewService(repo repository.HistoryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListForKid(ctx context.Context, kidID uuid.UUID) ([]*model.VehicleAssignment, error) {
	return s.repo.ListByKid(ctx, kidID)
}

func (s *Service) ListSince(ctx context.Context, since time.Time) ([]*model.VehicleAssignment, error) {
	return s.repo.ListSince(ctx, since)
}

// Prune drops entries older than the retention window and reports how many
// rows went away.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune assignment history: %w", err)
	}
	return deleted, nil
}
