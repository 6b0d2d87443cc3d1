package conflict

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
)

type fakeTeamFinder struct {
	teams map[uuid.UUID][]*model.Team
	err   error
}

func (f *fakeTeamFinder) ListByVehicle(_ context.Context, vehicleID uuid.UUID, excludeID *uuid.UUID) ([]*model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Team
	for _, team := range f.teams[vehicleID] {
		if excludeID != nil && team.ID == *excludeID {
			continue
		}
		out = append(out, team)
	}
	return out, nil
}

type fakeKidFinder struct {
	kids map[uuid.UUID][]*model.Kid
	err  error
}

func (f *fakeKidFinder) ListByVehicle(_ context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) ([]*model.Kid, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Kid
	for _, kid := range f.kids[vehicleID] {
		if excludeTeamID != nil && kid.TeamID != nil && *kid.TeamID == *excludeTeamID {
			continue
		}
		out = append(out, kid)
	}
	return out, nil
}

func newTeam(name string) *model.Team {
	team := &model.Team{Name: name}
	team.ID = uuid.New()
	return team
}

func newKid(first, last string, teamID *uuid.UUID) *model.Kid {
	kid := &model.Kid{FirstName: first, LastName: last, TeamID: teamID}
	kid.ID = uuid.New()
	return kid
}

func TestCheckVehicleConflictsClean(t *testing.T) {
	vehicleID := uuid.New()
	svc := NewService(&fakeTeamFinder{}, &fakeKidFinder{}, Config{})

	result := svc.CheckVehicleConflicts(context.Background(), vehicleID, nil)

	assert.True(t, result.Checked)
	assert.False(t, result.HasConflict)
	assert.True(t, result.CanProceed)
	assert.Empty(t, result.ConflictType)
	assert.Equal(t, vehicleID, result.VehicleID)
}

func TestCheckVehicleConflictsKidBlocks(t *testing.T) {
	vehicleID := uuid.New()
	otherTeamID := uuid.New()

	teams := &fakeTeamFinder{teams: map[uuid.UUID][]*model.Team{
		vehicleID: {newTeam("Otters")},
	}}
	kids := &fakeKidFinder{kids: map[uuid.UUID][]*model.Kid{
		vehicleID: {newKid("Mia", "Kovacs", &otherTeamID)},
	}}
	svc := NewService(teams, kids, Config{})

	result := svc.CheckVehicleConflicts(context.Background(), vehicleID, nil)

	// Kid conflict dominates even when a team conflict exists alongside it.
	assert.True(t, result.HasConflict)
	assert.Equal(t, model.ConflictKidAssignment, result.ConflictType)
	assert.False(t, result.CanProceed)
	require.Len(t, result.KidConflicts, 1)
	assert.Equal(t, "Mia Kovacs", result.KidConflicts[0].KidName)
	assert.Contains(t, result.Message, "Mia Kovacs")
}

func TestCheckVehicleConflictsTeamOnlyWarns(t *testing.T) {
	vehicleID := uuid.New()
	teams := &fakeTeamFinder{teams: map[uuid.UUID][]*model.Team{
		vehicleID: {newTeam("Badgers")},
	}}
	svc := NewService(teams, &fakeKidFinder{}, Config{})

	result := svc.CheckVehicleConflicts(context.Background(), vehicleID, nil)

	assert.True(t, result.HasConflict)
	assert.Equal(t, model.ConflictTeamAssignment, result.ConflictType)
	assert.True(t, result.CanProceed)
	assert.Contains(t, result.Message, "Badgers")
}

func TestCheckVehicleConflictsExcludesEditingTeam(t *testing.T) {
	vehicleID := uuid.New()
	editing := newTeam("Editing")

	teams := &fakeTeamFinder{teams: map[uuid.UUID][]*model.Team{
		vehicleID: {editing},
	}}
	kids := &fakeKidFinder{kids: map[uuid.UUID][]*model.Kid{
		vehicleID: {newKid("Ben", "Ortiz", &editing.ID)},
	}}
	svc := NewService(teams, kids, Config{})

	result := svc.CheckVehicleConflicts(context.Background(), vehicleID, &editing.ID)

	assert.False(t, result.HasConflict)
	assert.True(t, result.CanProceed)
}

func TestCheckVehicleConflictsFailOpen(t *testing.T) {
	svc := NewService(&fakeTeamFinder{err: errors.New("boom")}, &fakeKidFinder{}, Config{})

	result := svc.CheckVehicleConflicts(context.Background(), uuid.New(), nil)

	assert.False(t, result.Checked)
	assert.True(t, result.CanProceed)
	assert.False(t, result.HasConflict)
	assert.Contains(t, result.Message, "caution")
}

func TestCheckVehicleConflictsFailClosed(t *testing.T) {
	svc := NewService(&fakeTeamFinder{}, &fakeKidFinder{err: errors.New("boom")}, Config{FailClosed: true})

	result := svc.CheckVehicleConflicts(context.Background(), uuid.New(), nil)

	assert.False(t, result.Checked)
	assert.False(t, result.CanProceed)
	assert.True(t, result.HasConflict)
}

func TestCheckMultipleVehicleConflicts(t *testing.T) {
	clean := uuid.New()
	blocked := uuid.New()
	otherTeam := uuid.New()

	kids := &fakeKidFinder{kids: map[uuid.UUID][]*model.Kid{
		blocked: {newKid("Lena", "Faro", &otherTeam)},
	}}
	svc := NewService(&fakeTeamFinder{}, kids, Config{})

	results := svc.CheckMultipleVehicleConflicts(context.Background(), []uuid.UUID{clean, blocked, clean}, nil)

	require.Len(t, results, 2)
	assert.True(t, results[clean].CanProceed)
	assert.False(t, results[blocked].CanProceed)
	assert.Equal(t, model.ConflictKidAssignment, results[blocked].ConflictType)
}

func TestSummaryIsTotal(t *testing.T) {
	svc := NewService(&fakeTeamFinder{}, &fakeKidFinder{}, Config{})

	tests := []struct {
		name     string
		result   *model.ConflictResult
		severity string
		action   string
	}{
		{
			"clean",
			&model.ConflictResult{Checked: true, CanProceed: true},
			model.SeverityNone, model.ActionProceed,
		},
		{
			"kid conflict",
			&model.ConflictResult{Checked: true, HasConflict: true, ConflictType: model.ConflictKidAssignment},
			model.SeverityCritical, model.ActionBlock,
		},
		{
			"team conflict",
			&model.ConflictResult{Checked: true, HasConflict: true, ConflictType: model.ConflictTeamAssignment},
			model.SeverityWarning, model.ActionWarn,
		},
		{
			"unchecked",
			&model.ConflictResult{Checked: false, CanProceed: true},
			model.SeverityUnknown, model.ActionCaution,
		},
		{
			"conflict with unrecognized type",
			&model.ConflictResult{Checked: true, HasConflict: true, ConflictType: "mystery"},
			model.SeverityUnknown, model.ActionCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := svc.Summary(tt.result)
			assert.Equal(t, tt.severity, summary.Severity)
			assert.Equal(t, tt.action, summary.Action)
		})
	}
}
