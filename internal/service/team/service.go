package team

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/internal/service/conflict"
	"github.com/campfirehq/youthorg-api/pkg/errors"
)

// Service owns every operation that touches team membership or vehicle
// bindings. References between kids, instructors and teams are mirrored
// manually: each assignment writes both sides, and nothing in the schema
// enforces the mirror. Keeping all those writes here is what keeps the data
// from diverging.
type Service struct {
	teams       repository.TeamRepository
	kids        repository.KidRepository
	instructors repository.InstructorRepository
	history     repository.HistoryRepository
	conflicts   *conflict.Service
}

func NewService(
	teams repository.TeamRepository,
	kids repository.KidRepository,
	instructors repository.InstructorRepository,
	history repository.HistoryRepository,
	conflicts *conflict.Service,
) *Service {
	return &Service{
		teams:       teams,
		kids:        kids,
		instructors: instructors,
		history:     history,
		conflicts:   conflicts,
	}
}

func (s *Service) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.Team, error) {
	team := &model.Team{
		Name:        req.Name,
		Description: req.Description,
	}
	team.ID = uuid.New()
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	if err := s.teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *Service) GetTeam(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	team, err := s.teams.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("team", err)
	}
	return team, nil
}

func (s *Service) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.teams.List(ctx)
}

func (s *Service) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	team, err := s.teams.Get(ctx, id)
	if err != nil {
		return errors.NotFound("team", err)
	}

	// Unhook members first so kid records do not point at a dead team.
	for _, kidID := range team.KidIDs {
		if err := s.kids.SetTeam(ctx, kidID, nil); err != nil {
			log.Error().Err(err).Str("kid_id", kidID.String()).Msg("failed to detach kid from deleted team")
		}
	}

	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// AssignKid writes both sides of the membership: the kid's team_id and the
// team's kid list. A kid already on another team is moved, with that team's
// list updated too.
func (s *Service) AssignKid(ctx context.Context, teamID, kidID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}
	kid, err := s.kids.Get(ctx, kidID)
	if err != nil {
		return errors.NotFound("kid", err)
	}

	if kid.TeamID != nil && *kid.TeamID != teamID {
		if prev, err := s.teams.Get(ctx, *kid.TeamID); err == nil {
			prev.KidIDs = removeID(prev.KidIDs, kidID)
			if err := s.teams.Update(ctx, prev); err != nil {
				return fmt.Errorf("failed to detach kid from previous team: %w", err)
			}
		}
	}

	if err := s.kids.SetTeam(ctx, kidID, &teamID); err != nil {
		return fmt.Errorf("failed to set kid team: %w", err)
	}
	if !team.HasKid(kidID) {
		team.KidIDs = append(team.KidIDs, kidID)
		if err := s.teams.Update(ctx, team); err != nil {
			return fmt.Errorf("failed to add kid to team roster: %w", err)
		}
	}
	return nil
}

func (s *Service) RemoveKid(ctx context.Context, teamID, kidID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}

	if err := s.kids.SetTeam(ctx, kidID, nil); err != nil {
		return fmt.Errorf("failed to clear kid team: %w", err)
	}
	team.KidIDs = removeID(team.KidIDs, kidID)
	if err := s.teams.Update(ctx, team); err != nil {
		return fmt.Errorf("failed to remove kid from team roster: %w", err)
	}
	return nil
}

func (s *Service) AssignInstructor(ctx context.Context, teamID, instructorID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}
	instructor, err := s.instructors.Get(ctx, instructorID)
	if err != nil {
		return errors.NotFound("instructor", err)
	}

	if !containsID(team.InstructorIDs, instructorID) {
		team.InstructorIDs = append(team.InstructorIDs, instructorID)
		if err := s.teams.Update(ctx, team); err != nil {
			return fmt.Errorf("failed to add instructor to team: %w", err)
		}
	}
	if !containsID(instructor.TeamIDs, teamID) {
		instructor.TeamIDs = append(instructor.TeamIDs, teamID)
		if err := s.instructors.Update(ctx, instructor); err != nil {
			return fmt.Errorf("failed to mirror team onto instructor: %w", err)
		}
	}
	return nil
}

func (s *Service) RemoveInstructor(ctx context.Context, teamID, instructorID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}

	team.InstructorIDs = removeID(team.InstructorIDs, instructorID)
	if err := s.teams.Update(ctx, team); err != nil {
		return fmt.Errorf("failed to remove instructor from team: %w", err)
	}

	if instructor, err := s.instructors.Get(ctx, instructorID); err == nil {
		instructor.TeamIDs = removeID(instructor.TeamIDs, teamID)
		if err := s.instructors.Update(ctx, instructor); err != nil {
			return fmt.Errorf("failed to mirror removal onto instructor: %w", err)
		}
	}

	// Kids on this team bound to the departing instructor would otherwise
	// keep a dangling reference.
	kids, err := s.kids.ListByTeam(ctx, teamID)
	if err != nil {
		log.Error().Err(err).Str("team_id", teamID.String()).Msg("failed to list kids for instructor unbind")
		return nil
	}
	for _, kid := range kids {
		if kid.InstructorID == nil || *kid.InstructorID != instructorID {
			continue
		}
		kid.InstructorID = nil
		if err := s.kids.Update(ctx, kid); err != nil {
			log.Error().Err(err).Str("kid_id", kid.ID.String()).Msg("failed to clear kid instructor binding")
		}
	}
	return nil
}

// AssignInstructorToKid binds one of the team's instructors directly to a
// kid on that team. The instructor must already be on the team roster.
func (s *Service) AssignInstructorToKid(ctx context.Context, teamID, kidID, instructorID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}
	kid, err := s.kids.Get(ctx, kidID)
	if err != nil {
		return errors.NotFound("kid", err)
	}
	if _, err := s.instructors.Get(ctx, instructorID); err != nil {
		return errors.NotFound("instructor", err)
	}
	if !team.HasKid(kidID) {
		return errors.BadRequest("kid is not on this team", nil)
	}
	if !containsID(team.InstructorIDs, instructorID) {
		return errors.BadRequest("instructor is not assigned to this team", nil)
	}

	kid.InstructorID = &instructorID
	if err := s.kids.Update(ctx, kid); err != nil {
		return fmt.Errorf("failed to assign instructor to kid: %w", err)
	}
	return nil
}

func (s *Service) RemoveInstructorFromKid(ctx context.Context, teamID, kidID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}
	kid, err := s.kids.Get(ctx, kidID)
	if err != nil {
		return errors.NotFound("kid", err)
	}
	if !team.HasKid(kidID) {
		return errors.BadRequest("kid is not on this team", nil)
	}

	kid.InstructorID = nil
	if err := s.kids.Update(ctx, kid); err != nil {
		return fmt.Errorf("failed to clear kid instructor binding: %w", err)
	}
	return nil
}

// AssignVehicle binds a vehicle to the team after a conflict check. A
// kid-level conflict always blocks. A team-level conflict blocks unless
// force is set, in which case the vehicle is shared or implicitly moved.
// The verdict is returned either way so callers can show it.
func (s *Service) AssignVehicle(ctx context.Context, teamID, vehicleID uuid.UUID, force bool) (*model.ConflictResult, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, errors.NotFound("team", err)
	}

	result := s.conflicts.CheckVehicleConflicts(ctx, vehicleID, &teamID)
	if !result.CanProceed {
		return result, errors.Conflict(result.Message, nil)
	}
	if result.HasConflict && !force {
		return result, errors.Conflict(result.Message, nil)
	}

	if !team.HasVehicle(vehicleID) {
		team.VehicleIDs = append(team.VehicleIDs, vehicleID)
		if err := s.teams.Update(ctx, team); err != nil {
			return result, fmt.Errorf("failed to assign vehicle to team: %w", err)
		}
	}
	return result, nil
}

func (s *Service) RemoveVehicle(ctx context.Context, teamID, vehicleID uuid.UUID) error {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return errors.NotFound("team", err)
	}

	team.VehicleIDs = removeID(team.VehicleIDs, vehicleID)
	if err := s.teams.Update(ctx, team); err != nil {
		return fmt.Errorf("failed to remove vehicle from team: %w", err)
	}
	return nil
}

// AssignVehicleToKid binds a vehicle to a single kid on the team. This is
// the exclusive binding: it runs the conflict check first and refuses on any
// blocking verdict, then records an audit entry.
func (s *Service) AssignVehicleToKid(ctx context.Context, teamID, kidID, vehicleID uuid.UUID, actorID uuid.UUID) (*model.ConflictResult, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, errors.NotFound("team", err)
	}
	kid, err := s.kids.Get(ctx, kidID)
	if err != nil {
		return nil, errors.NotFound("kid", err)
	}
	if !team.HasKid(kidID) {
		return nil, errors.BadRequest("kid is not on this team", nil)
	}

	result := s.conflicts.CheckVehicleConflicts(ctx, vehicleID, &teamID)
	if !result.CanProceed {
		return result, errors.Conflict(result.Message, nil)
	}

	before := kid.VehicleID
	kid.VehicleID = &vehicleID
	if err := s.kids.Update(ctx, kid); err != nil {
		return result, fmt.Errorf("failed to assign vehicle to kid: %w", err)
	}

	entry := &model.VehicleAssignment{
		KidID:         kidID,
		TeamID:        &teamID,
		FromVehicleID: before,
		ToVehicleID:   &vehicleID,
		ChangeType:    model.ChangeAssigned,
		ActorID:       actorID,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("kid_id", kidID.String()).Msg("failed to record vehicle assignment history")
	}

	return result, nil
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
