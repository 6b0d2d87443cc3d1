// Package conflict decides whether a vehicle can be bound to a new owner.
// Kid-level bindings are exclusive and block; team-level listings are
// tolerated and only warn. The checks are best-effort reads with no snapshot
// isolation; a concurrent reassignment between the two queries can produce a
// stale verdict.
package conflict

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campfirehq/youthorg-api/internal/model"
)

type TeamFinder interface {
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeID *uuid.UUID) ([]*model.Team, error)
}

type KidFinder interface {
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) ([]*model.Kid, error)
}

// Config controls what happens when the underlying queries fail. The
// default is fail-open: transient infrastructure errors must not block
// legitimate roster work. A stricter deployment flips FailClosed.
type Config struct {
	FailClosed bool
}

type Service struct {
	teams TeamFinder
	kids  KidFinder
	cfg   Config
}

func NewService(teams TeamFinder, kids KidFinder, cfg Config) *Service {
	return &Service{teams: teams, kids: kids, cfg: cfg}
}

// CheckVehicleConflicts looks for existing bindings of the vehicle outside
// the team being edited. excludeTeamID may be nil when assigning outside any
// team context.
func (s *Service) CheckVehicleConflicts(ctx context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) *model.ConflictResult {
	var (
		wg       sync.WaitGroup
		teams    []*model.Team
		kids     []*model.Kid
		teamsErr error
		kidsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		teams, teamsErr = s.teams.ListByVehicle(ctx, vehicleID, excludeTeamID)
	}()
	go func() {
		defer wg.Done()
		kids, kidsErr = s.kids.ListByVehicle(ctx, vehicleID, excludeTeamID)
	}()
	wg.Wait()

	if teamsErr != nil || kidsErr != nil {
		return s.uncheckedResult(vehicleID, teamsErr, kidsErr)
	}

	result := &model.ConflictResult{
		VehicleID: vehicleID,
		Checked:   true,
	}

	for _, team := range teams {
		result.TeamConflicts = append(result.TeamConflicts, model.TeamConflict{
			TeamID:   team.ID,
			TeamName: team.Name,
		})
	}
	for _, kid := range kids {
		result.KidConflicts = append(result.KidConflicts, model.KidConflict{
			KidID:   kid.ID,
			KidName: kid.DisplayName(),
			TeamID:  kid.TeamID,
		})
	}

	switch {
	case len(result.KidConflicts) > 0:
		// A kid-level binding is a hard conflict even when team conflicts
		// exist alongside it.
		result.HasConflict = true
		result.ConflictType = model.ConflictKidAssignment
		result.CanProceed = false
		result.Message = fmt.Sprintf("vehicle is already assigned to %s", kidNames(result.KidConflicts))
	case len(result.TeamConflicts) > 0:
		result.HasConflict = true
		result.ConflictType = model.ConflictTeamAssignment
		result.CanProceed = true
		result.Message = fmt.Sprintf("vehicle is listed by %s; proceeding will share or move it", teamNames(result.TeamConflicts))
	default:
		result.CanProceed = true
		result.Message = "no conflicts found"
	}

	return result
}

// CheckMultipleVehicleConflicts runs the single check concurrently for every
// id. Checks do not interact; a duplicated id is simply checked twice and the
// last result wins the map slot.
func (s *Service) CheckMultipleVehicleConflicts(ctx context.Context, vehicleIDs []uuid.UUID, excludeTeamID *uuid.UUID) map[uuid.UUID]*model.ConflictResult {
	results := make(map[uuid.UUID]*model.ConflictResult, len(vehicleIDs))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, id := range vehicleIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			result := s.CheckVehicleConflicts(ctx, id, excludeTeamID)
			mu.Lock()
			results[id] = result
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return results
}

// Summary maps a conflict result onto a UI severity tier. Total over the
// four classification outcomes: every result lands in exactly one tier.
func (s *Service) Summary(result *model.ConflictResult) *model.ConflictSummary {
	switch {
	case !result.Checked:
		return &model.ConflictSummary{
			Severity: model.SeverityUnknown,
			Action:   model.ActionCaution,
			Message:  result.Message,
		}
	case !result.HasConflict:
		return &model.ConflictSummary{
			Severity: model.SeverityNone,
			Action:   model.ActionProceed,
			Message:  result.Message,
		}
	case result.ConflictType == model.ConflictKidAssignment:
		return &model.ConflictSummary{
			Severity: model.SeverityCritical,
			Action:   model.ActionBlock,
			Message:  result.Message,
		}
	case result.ConflictType == model.ConflictTeamAssignment:
		return &model.ConflictSummary{
			Severity: model.SeverityWarning,
			Action:   model.ActionWarn,
			Message:  result.Message,
		}
	default:
		return &model.ConflictSummary{
			Severity: model.SeverityUnknown,
			Action:   model.ActionCaution,
			Message:  result.Message,
		}
	}
}

func (s *Service) uncheckedResult(vehicleID uuid.UUID, teamsErr, kidsErr error) *model.ConflictResult {
	log.Warn().
		Str("vehicle_id", vehicleID.String()).
		AnErr("teams_err", teamsErr).
		AnErr("kids_err", kidsErr).
		Bool("fail_closed", s.cfg.FailClosed).
		Msg("vehicle conflict check failed")

	result := &model.ConflictResult{
		VehicleID: vehicleID,
		Checked:   false,
	}
	if s.cfg.FailClosed {
		result.HasConflict = true
		result.CanProceed = false
		result.Message = "conflict check failed and strict mode is on; assignment blocked"
	} else {
		result.CanProceed = true
		result.Message = "conflict check failed; proceed with caution"
	}
	return result
}

func kidNames(conflicts []model.KidConflict) string {
	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, c.KidName)
	}
	return strings.Join(names, ", ")
}

func teamNames(conflicts []model.TeamConflict) string {
	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, c.TeamName)
	}
	return strings.Join(names, ", ")
}
