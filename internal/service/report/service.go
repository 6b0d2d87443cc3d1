package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/pkg/errors"
)

const upcomingWindow = 30 * 24 * time.Hour

// Service builds point-in-time aggregate snapshots of the organization and
// stores them as JSON.
type Service struct {
	reports  repository.ReportRepository
	kids     repository.KidRepository
	teams    repository.TeamRepository
	vehicles repository.VehicleRepository
	events   repository.EventRepository
}

func NewService(
	reports repository.ReportRepository,
	kids repository.KidRepository,
	teams repository.TeamRepository,
	vehicles repository.VehicleRepository,
	events repository.EventRepository,
) *Service {
	return &Service{
		reports:  reports,
		kids:     kids,
		teams:    teams,
		vehicles: vehicles,
		events:   events,
	}
}

func (s *Service) GenerateReport(ctx context.Context, generatedBy uuid.UUID) (*model.Report, *model.ReportPayload, error) {
	kids, err := s.kids.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load kids for report: %w", err)
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load teams for report: %w", err)
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vehicles for report: %w", err)
	}
	now := time.Now()
	upcoming, err := s.events.ListBetween(ctx, now, now.Add(upcomingWindow))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load events for report: %w", err)
	}

	payload := &model.ReportPayload{
		GeneratedAt:    now,
		TotalKids:      len(kids),
		TotalTeams:     len(teams),
		TotalVehicles:  len(vehicles),
		KidsPerTeam:    make(map[string]int, len(teams)),
		UpcomingEvents: len(upcoming),
	}
	for _, team := range teams {
		payload.KidsPerTeam[team.Name] = len(team.KidIDs)
	}

	inUse := make(map[uuid.UUID]struct{})
	for _, kid := range kids {
		if kid.VehicleID != nil {
			inUse[*kid.VehicleID] = struct{}{}
		}
	}
	for _, team := range teams {
		for _, id := range team.VehicleIDs {
			inUse[id] = struct{}{}
		}
	}
	payload.VehiclesInUse = len(inUse)

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal report payload: %w", err)
	}

	report := &model.Report{
		ID:          uuid.New(),
		GeneratedBy: generatedBy,
		Payload:     raw,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, nil, fmt.Errorf("failed to store report: %w", err)
	}
	return report, payload, nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, *model.ReportPayload, error) {
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, nil, errors.NotFound("report", err)
	}
	var payload model.ReportPayload
	if err := json.Unmarshal(report.Payload, &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode report payload: %w", err)
	}
	return report, &payload, nil
}

func (s *Service) ListReports(ctx context.Context) ([]*model.Report, error) {
	return s.reports.List(ctx)
}
