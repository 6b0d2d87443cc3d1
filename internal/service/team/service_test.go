package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/service/conflict"
	apperrors "github.com/campfirehq/youthorg-api/pkg/errors"
)

type fakeTeamRepo struct {
	teams map[uuid.UUID]*model.Team
}

func newFakeTeamRepo(teams ...*model.Team) *fakeTeamRepo {
	f := &fakeTeamRepo{teams: make(map[uuid.UUID]*model.Team)}
	for _, team := range teams {
		f.teams[team.ID] = team
	}
	return f
}

func (f *fakeTeamRepo) Create(_ context.Context, team *model.Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) Get(_ context.Context, id uuid.UUID) (*model.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, errors.New("team not found")
	}
	return team, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *model.Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]*model.Team, error) {
	var out []*model.Team
	for _, team := range f.teams {
		out = append(out, team)
	}
	return out, nil
}

func (f *fakeTeamRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID, excludeID *uuid.UUID) ([]*model.Team, error) {
	var out []*model.Team
	for _, team := range f.teams {
		if excludeID != nil && team.ID == *excludeID {
			continue
		}
		if team.HasVehicle(vehicleID) {
			out = append(out, team)
		}
	}
	return out, nil
}

type fakeKidRepo struct {
	kids map[uuid.UUID]*model.Kid
}

func newFakeKidRepo(kids ...*model.Kid) *fakeKidRepo {
	f := &fakeKidRepo{kids: make(map[uuid.UUID]*model.Kid)}
	for _, kid := range kids {
		f.kids[kid.ID] = kid
	}
	return f
}

func (f *fakeKidRepo) Create(_ context.Context, kid *model.Kid) error {
	f.kids[kid.ID] = kid
	return nil
}

func (f *fakeKidRepo) Get(_ context.Context, id uuid.UUID) (*model.Kid, error) {
	kid, ok := f.kids[id]
	if !ok {
		return nil, errors.New("kid not found")
	}
	return kid, nil
}

func (f *fakeKidRepo) Update(_ context.Context, kid *model.Kid) error {
	f.kids[kid.ID] = kid
	return nil
}

func (f *fakeKidRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.kids, id)
	return nil
}

func (f *fakeKidRepo) List(_ context.Context) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		out = append(out, kid)
	}
	return out, nil
}

func (f *fakeKidRepo) ListByTeam(_ context.Context, teamID uuid.UUID) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		if kid.TeamID != nil && *kid.TeamID == teamID {
			out = append(out, kid)
		}
	}
	return out, nil
}

func (f *fakeKidRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		if kid.VehicleID == nil || *kid.VehicleID != vehicleID {
			continue
		}
		if excludeTeamID != nil && kid.TeamID != nil && *kid.TeamID == *excludeTeamID {
			continue
		}
		out = append(out, kid)
	}
	return out, nil
}

func (f *fakeKidRepo) SwapVehicles(_ context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error {
	f.kids[kidAID].VehicleID = vehicleForA
	f.kids[kidBID].VehicleID = vehicleForB
	return nil
}

func (f *fakeKidRepo) SetTeam(_ context.Context, kidID uuid.UUID, teamID *uuid.UUID) error {
	kid, ok := f.kids[kidID]
	if !ok {
		return errors.New("kid not found")
	}
	kid.TeamID = teamID
	return nil
}

type fakeInstructorRepo struct {
	instructors map[uuid.UUID]*model.Instructor
}

func newFakeInstructorRepo(instructors ...*model.Instructor) *fakeInstructorRepo {
	f := &fakeInstructorRepo{instructors: make(map[uuid.UUID]*model.Instructor)}
	for _, instructor := range instructors {
		f.instructors[instructor.ID] = instructor
	}
	return f
}

func (f *fakeInstructorRepo) Create(_ context.Context, instructor *model.Instructor) error {
	f.instructors[instructor.ID] = instructor
	return nil
}

func (f *fakeInstructorRepo) Get(_ context.Context, id uuid.UUID) (*model.Instructor, error) {
	instructor, ok := f.instructors[id]
	if !ok {
		return nil, errors.New("instructor not found")
	}
	return instructor, nil
}

func (f *fakeInstructorRepo) Update(_ context.Context, instructor *model.Instructor) error {
	f.instructors[instructor.ID] = instructor
	return nil
}

func (f *fakeInstructorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.instructors, id)
	return nil
}

func (f *fakeInstructorRepo) List(_ context.Context) ([]*model.Instructor, error) {
	var out []*model.Instructor
	for _, instructor := range f.instructors {
		out = append(out, instructor)
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []*model.VehicleAssignment
}

func (f *fakeHistoryRepo) Append(_ context.Context, entry *model.VehicleAssignment) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) ListByKid(_ context.Context, kidID uuid.UUID) ([]*model.VehicleAssignment, error) {
	var out []*model.VehicleAssignment
	for _, entry := range f.entries {
		if entry.KidID == kidID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListSince(_ context.Context, since time.Time) ([]*model.VehicleAssignment, error) {
	return f.entries, nil
}

func (f *fakeHistoryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTeam(name string) *model.Team {
	team := &model.Team{Name: name}
	team.ID = uuid.New()
	return team
}

func newKid(first string, teamID *uuid.UUID) *model.Kid {
	kid := &model.Kid{FirstName: first, LastName: "Test", TeamID: teamID}
	kid.ID = uuid.New()
	return kid
}

func newService(teams *fakeTeamRepo, kids *fakeKidRepo, instructors *fakeInstructorRepo, history *fakeHistoryRepo) *Service {
	conflicts := conflict.NewService(teams, kids, conflict.Config{})
	return NewService(teams, kids, instructors, history, conflicts)
}

func TestAssignKidMovesBetweenTeams(t *testing.T) {
	teamA := newTeam("Eagles")
	teamB := newTeam("Hawks")
	kid := newKid("Mara", &teamA.ID)
	teamA.KidIDs = []uuid.UUID{kid.ID}

	teams := newFakeTeamRepo(teamA, teamB)
	kids := newFakeKidRepo(kid)
	svc := newService(teams, kids, newFakeInstructorRepo(), &fakeHistoryRepo{})

	require.NoError(t, svc.AssignKid(context.Background(), teamB.ID, kid.ID))

	assert.Equal(t, teamB.ID, *kid.TeamID)
	assert.Empty(t, teamA.KidIDs)
	assert.Equal(t, []uuid.UUID{kid.ID}, teamB.KidIDs)
}

func TestAssignKidIdempotent(t *testing.T) {
	team := newTeam("Eagles")
	kid := newKid("Mara", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(), &fakeHistoryRepo{})

	require.NoError(t, svc.AssignKid(context.Background(), team.ID, kid.ID))
	assert.Equal(t, []uuid.UUID{kid.ID}, team.KidIDs)
}

func TestAssignKidUnknownTeam(t *testing.T) {
	kid := newKid("Mara", nil)
	svc := newService(newFakeTeamRepo(), newFakeKidRepo(kid), newFakeInstructorRepo(), &fakeHistoryRepo{})

	err := svc.AssignKid(context.Background(), uuid.New(), kid.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestRemoveKidClearsBothSides(t *testing.T) {
	team := newTeam("Eagles")
	kid := newKid("Mara", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(), &fakeHistoryRepo{})

	require.NoError(t, svc.RemoveKid(context.Background(), team.ID, kid.ID))
	assert.Nil(t, kid.TeamID)
	assert.Empty(t, team.KidIDs)
}

func TestAssignInstructorMirrorsBothSides(t *testing.T) {
	team := newTeam("Eagles")
	instructor := &model.Instructor{Name: "Sam"}
	instructor.ID = uuid.New()

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(), newFakeInstructorRepo(instructor), &fakeHistoryRepo{})

	require.NoError(t, svc.AssignInstructor(context.Background(), team.ID, instructor.ID))
	assert.Equal(t, []uuid.UUID{instructor.ID}, team.InstructorIDs)
	assert.Equal(t, []uuid.UUID{team.ID}, instructor.TeamIDs)

	require.NoError(t, svc.RemoveInstructor(context.Background(), team.ID, instructor.ID))
	assert.Empty(t, team.InstructorIDs)
	assert.Empty(t, instructor.TeamIDs)
}

func TestAssignInstructorToKid(t *testing.T) {
	team := newTeam("Eagles")
	instructor := &model.Instructor{Name: "Sam"}
	instructor.ID = uuid.New()
	kid := newKid("Mia", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(instructor), &fakeHistoryRepo{})
	require.NoError(t, svc.AssignInstructor(context.Background(), team.ID, instructor.ID))

	require.NoError(t, svc.AssignInstructorToKid(context.Background(), team.ID, kid.ID, instructor.ID))
	require.NotNil(t, kid.InstructorID)
	assert.Equal(t, instructor.ID, *kid.InstructorID)

	require.NoError(t, svc.RemoveInstructorFromKid(context.Background(), team.ID, kid.ID))
	assert.Nil(t, kid.InstructorID)
}

func TestAssignInstructorToKidRequiresTeamRoster(t *testing.T) {
	team := newTeam("Eagles")
	instructor := &model.Instructor{Name: "Sam"}
	instructor.ID = uuid.New()
	kid := newKid("Mia", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(instructor), &fakeHistoryRepo{})

	err := svc.AssignInstructorToKid(context.Background(), team.ID, kid.ID, instructor.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.Nil(t, kid.InstructorID)
}

func TestRemoveInstructorClearsKidBindings(t *testing.T) {
	team := newTeam("Eagles")
	instructor := &model.Instructor{Name: "Sam"}
	instructor.ID = uuid.New()
	kid := newKid("Mia", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(instructor), &fakeHistoryRepo{})
	require.NoError(t, svc.AssignInstructor(context.Background(), team.ID, instructor.ID))
	require.NoError(t, svc.AssignInstructorToKid(context.Background(), team.ID, kid.ID, instructor.ID))

	require.NoError(t, svc.RemoveInstructor(context.Background(), team.ID, instructor.ID))
	assert.Nil(t, kid.InstructorID)
}

func TestAssignVehicleClean(t *testing.T) {
	team := newTeam("Eagles")
	vehicleID := uuid.New()

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(), newFakeInstructorRepo(), &fakeHistoryRepo{})

	result, err := svc.AssignVehicle(context.Background(), team.ID, vehicleID, false)
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.True(t, team.HasVehicle(vehicleID))
}

func TestAssignVehicleTeamConflictNeedsForce(t *testing.T) {
	team := newTeam("Eagles")
	other := newTeam("Hawks")
	vehicleID := uuid.New()
	other.VehicleIDs = []uuid.UUID{vehicleID}

	teams := newFakeTeamRepo(team, other)
	svc := newService(teams, newFakeKidRepo(), newFakeInstructorRepo(), &fakeHistoryRepo{})

	result, err := svc.AssignVehicle(context.Background(), team.ID, vehicleID, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, model.ConflictTeamAssignment, result.ConflictType)
	assert.False(t, team.HasVehicle(vehicleID))

	result, err = svc.AssignVehicle(context.Background(), team.ID, vehicleID, true)
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.True(t, team.HasVehicle(vehicleID))
}

func TestAssignVehicleKidConflictBlocksEvenForced(t *testing.T) {
	team := newTeam("Eagles")
	otherTeamID := uuid.New()
	vehicleID := uuid.New()
	bound := newKid("Ira", &otherTeamID)
	bound.VehicleID = &vehicleID

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(bound), newFakeInstructorRepo(), &fakeHistoryRepo{})

	result, err := svc.AssignVehicle(context.Background(), team.ID, vehicleID, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, model.ConflictKidAssignment, result.ConflictType)
	assert.False(t, result.CanProceed)
	assert.False(t, team.HasVehicle(vehicleID))
}

func TestAssignVehicleToKid(t *testing.T) {
	team := newTeam("Eagles")
	kid := newKid("Mara", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}
	vehicleID := uuid.New()
	actor := uuid.New()
	history := &fakeHistoryRepo{}

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(), history)

	result, err := svc.AssignVehicleToKid(context.Background(), team.ID, kid.ID, vehicleID, actor)
	require.NoError(t, err)
	assert.True(t, result.CanProceed)
	require.NotNil(t, kid.VehicleID)
	assert.Equal(t, vehicleID, *kid.VehicleID)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, model.ChangeAssigned, entry.ChangeType)
	assert.Equal(t, kid.ID, entry.KidID)
	assert.Nil(t, entry.FromVehicleID)
	assert.Equal(t, vehicleID, *entry.ToVehicleID)
	assert.Equal(t, actor, entry.ActorID)
}

func TestAssignVehicleToKidNotOnTeam(t *testing.T) {
	team := newTeam("Eagles")
	kid := newKid("Mara", nil)

	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid), newFakeInstructorRepo(), &fakeHistoryRepo{})

	_, err := svc.AssignVehicleToKid(context.Background(), team.ID, kid.ID, uuid.New(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestAssignVehicleToKidBlockedByOtherBinding(t *testing.T) {
	team := newTeam("Eagles")
	kid := newKid("Mara", &team.ID)
	team.KidIDs = []uuid.UUID{kid.ID}

	otherTeamID := uuid.New()
	vehicleID := uuid.New()
	bound := newKid("Ira", &otherTeamID)
	bound.VehicleID = &vehicleID

	history := &fakeHistoryRepo{}
	svc := newService(newFakeTeamRepo(team), newFakeKidRepo(kid, bound), newFakeInstructorRepo(), history)

	result, err := svc.AssignVehicleToKid(context.Background(), team.ID, kid.ID, vehicleID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.False(t, result.CanProceed)
	assert.Nil(t, kid.VehicleID)
	assert.Empty(t, history.entries)
}

func TestDeleteTeamDetachesKids(t *testing.T) {
	team := newTeam("Eagles")
	kidA := newKid("Mara", &team.ID)
	kidB := newKid("Ira", &team.ID)
	team.KidIDs = []uuid.UUID{kidA.ID, kidB.ID}

	teams := newFakeTeamRepo(team)
	svc := newService(teams, newFakeKidRepo(kidA, kidB), newFakeInstructorRepo(), &fakeHistoryRepo{})

	require.NoError(t, svc.DeleteTeam(context.Background(), team.ID))
	assert.Nil(t, kidA.TeamID)
	assert.Nil(t, kidB.TeamID)
	assert.Empty(t, teams.teams)
}
