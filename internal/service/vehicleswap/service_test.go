package vehicleswap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
)

type fakeKidStore struct {
	kids    map[uuid.UUID]*model.Kid
	swapErr error
}

func (f *fakeKidStore) Get(_ context.Context, id uuid.UUID) (*model.Kid, error) {
	kid, ok := f.kids[id]
	if !ok {
		return nil, fmt.Errorf("kid %s not found", id)
	}
	return kid, nil
}

func (f *fakeKidStore) SwapVehicles(_ context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error {
	if f.swapErr != nil {
		return f.swapErr
	}
	f.kids[kidAID].VehicleID = vehicleForA
	f.kids[kidBID].VehicleID = vehicleForB
	return nil
}

type fakeHistory struct {
	entries []*model.VehicleAssignment
	err     error
}

func (f *fakeHistory) Append(_ context.Context, entry *model.VehicleAssignment) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func kidWithVehicle(first, last string, teamID *uuid.UUID, vehicleID *uuid.UUID) *model.Kid {
	kid := &model.Kid{FirstName: first, LastName: last, TeamID: teamID, VehicleID: vehicleID}
	kid.ID = uuid.New()
	return kid
}

func TestSwapVehiclesBetweenKids(t *testing.T) {
	teamID := uuid.New()
	v1 := uuid.New()
	v2 := uuid.New()
	actorID := uuid.New()

	kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
	kidB := kidWithVehicle("Ben", "Ortiz", &teamID, &v2)

	store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kidA.ID: kidA, kidB.ID: kidB}}
	history := &fakeHistory{}
	svc := NewService(store, history)

	result := svc.SwapVehiclesBetweenKids(context.Background(), kidA.ID, kidB.ID, &teamID, actorID)

	require.True(t, result.Success)
	assert.Equal(t, &v1, result.KidA.VehicleBefore)
	assert.Equal(t, &v2, result.KidA.VehicleAfter)
	assert.Equal(t, &v2, result.KidB.VehicleBefore)
	assert.Equal(t, &v1, result.KidB.VehicleAfter)
	assert.Equal(t, model.ChangeSwapped, result.KidA.ChangeType)
	assert.Equal(t, model.ChangeSwapped, result.KidB.ChangeType)

	// Bindings actually exchanged.
	assert.Equal(t, v2, *store.kids[kidA.ID].VehicleID)
	assert.Equal(t, v1, *store.kids[kidB.ID].VehicleID)

	// Two history entries, both swapped, attributed to the actor.
	require.Len(t, history.entries, 2)
	for _, entry := range history.entries {
		assert.Equal(t, model.ChangeSwapped, entry.ChangeType)
		assert.Equal(t, actorID, entry.ActorID)
	}
}

func TestSwapWithUnassignedCounterpart(t *testing.T) {
	teamID := uuid.New()
	v1 := uuid.New()

	kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
	kidB := kidWithVehicle("Ben", "Ortiz", &teamID, nil)

	store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kidA.ID: kidA, kidB.ID: kidB}}
	history := &fakeHistory{}
	svc := NewService(store, history)

	result := svc.SwapVehiclesBetweenKids(context.Background(), kidA.ID, kidB.ID, &teamID, uuid.New())

	require.True(t, result.Success)
	assert.Nil(t, result.KidA.VehicleAfter)
	assert.Equal(t, model.ChangeUnassigned, result.KidA.ChangeType)
	assert.Equal(t, &v1, result.KidB.VehicleAfter)
	assert.Equal(t, model.ChangeSwapped, result.KidB.ChangeType)

	assert.Nil(t, store.kids[kidA.ID].VehicleID)
	assert.Equal(t, v1, *store.kids[kidB.ID].VehicleID)

	require.Len(t, history.entries, 2)
	assert.Equal(t, model.ChangeUnassigned, history.entries[0].ChangeType)
	assert.Equal(t, model.ChangeSwapped, history.entries[1].ChangeType)
}

func TestSwapFailures(t *testing.T) {
	teamID := uuid.New()
	v1 := uuid.New()

	t.Run("self swap is a no-op", func(t *testing.T) {
		kid := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
		store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kid.ID: kid}}
		svc := NewService(store, &fakeHistory{})

		result := svc.SwapVehiclesBetweenKids(context.Background(), kid.ID, kid.ID, &teamID, uuid.New())
		assert.False(t, result.Success)
		assert.Equal(t, model.SwapErrNoOp, result.ErrorCode)
	})

	t.Run("missing kid", func(t *testing.T) {
		kid := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
		store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kid.ID: kid}}
		svc := NewService(store, &fakeHistory{})

		result := svc.SwapVehiclesBetweenKids(context.Background(), kid.ID, uuid.New(), &teamID, uuid.New())
		assert.False(t, result.Success)
		assert.Equal(t, model.SwapErrNotFound, result.ErrorCode)
	})

	t.Run("identical assignments", func(t *testing.T) {
		kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
		kidB := kidWithVehicle("Ben", "Ortiz", &teamID, &v1)
		store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kidA.ID: kidA, kidB.ID: kidB}}
		svc := NewService(store, &fakeHistory{})

		result := svc.SwapVehiclesBetweenKids(context.Background(), kidA.ID, kidB.ID, &teamID, uuid.New())
		assert.False(t, result.Success)
		assert.Equal(t, model.SwapErrNoOp, result.ErrorCode)
		assert.Contains(t, result.Message, "nothing to swap")
	})

	t.Run("write failure", func(t *testing.T) {
		v2 := uuid.New()
		kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
		kidB := kidWithVehicle("Ben", "Ortiz", &teamID, &v2)
		store := &fakeKidStore{
			kids:    map[uuid.UUID]*model.Kid{kidA.ID: kidA, kidB.ID: kidB},
			swapErr: errors.New("connection reset"),
		}
		history := &fakeHistory{}
		svc := NewService(store, history)

		result := svc.SwapVehiclesBetweenKids(context.Background(), kidA.ID, kidB.ID, &teamID, uuid.New())
		assert.False(t, result.Success)
		assert.Equal(t, model.SwapErrWrite, result.ErrorCode)
		assert.Empty(t, history.entries)
	})

	t.Run("history failure does not fail the swap", func(t *testing.T) {
		v2 := uuid.New()
		kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
		kidB := kidWithVehicle("Ben", "Ortiz", &teamID, &v2)
		store := &fakeKidStore{kids: map[uuid.UUID]*model.Kid{kidA.ID: kidA, kidB.ID: kidB}}
		svc := NewService(store, &fakeHistory{err: errors.New("audit table gone")})

		result := svc.SwapVehiclesBetweenKids(context.Background(), kidA.ID, kidB.ID, &teamID, uuid.New())
		assert.True(t, result.Success)
	})
}

func TestSwappableKids(t *testing.T) {
	teamID := uuid.New()
	otherTeamID := uuid.New()
	v1 := uuid.New()
	v2 := uuid.New()

	subject := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
	differentVehicle := kidWithVehicle("Ben", "Ortiz", &teamID, &v2)
	noVehicle := kidWithVehicle("Ines", "Duarte", &teamID, nil)
	sameAssignment := kidWithVehicle("Ana", "Lima", &teamID, &v1)
	otherTeam := kidWithVehicle("Tom", "Reyes", &otherTeamID, &v2)
	noTeam := kidWithVehicle("Noa", "Berg", nil, &v2)

	all := []*model.Kid{subject, differentVehicle, noVehicle, sameAssignment, otherTeam, noTeam}

	got := SwappableKids(subject, all, teamID)

	require.Len(t, got, 2)
	assert.Contains(t, got, differentVehicle)
	assert.Contains(t, got, noVehicle)
}

func TestValidateSwap(t *testing.T) {
	teamID := uuid.New()
	otherTeamID := uuid.New()
	v1 := uuid.New()
	v2 := uuid.New()

	kidA := kidWithVehicle("Mia", "Kovacs", &teamID, &v1)
	kidB := kidWithVehicle("Ben", "Ortiz", &teamID, &v2)
	kidSame := kidWithVehicle("Ana", "Lima", &teamID, &v1)
	kidElsewhere := kidWithVehicle("Tom", "Reyes", &otherTeamID, &v2)

	all := []*model.Kid{kidA, kidB, kidSame, kidElsewhere}

	t.Run("valid pair", func(t *testing.T) {
		verdict := ValidateSwap(kidA.ID, kidB.ID, all, teamID)
		require.True(t, verdict.IsValid)
		assert.Equal(t, "Mia Kovacs", verdict.KidA.KidName)
		assert.Equal(t, &v2, verdict.KidA.VehicleAfter)
		assert.Equal(t, &v1, verdict.KidB.VehicleAfter)
	})

	t.Run("self", func(t *testing.T) {
		verdict := ValidateSwap(kidA.ID, kidA.ID, all, teamID)
		assert.False(t, verdict.IsValid)
	})

	t.Run("missing kid", func(t *testing.T) {
		verdict := ValidateSwap(kidA.ID, uuid.New(), all, teamID)
		assert.False(t, verdict.IsValid)
		assert.Contains(t, verdict.Message, "not found")
	})

	t.Run("wrong team", func(t *testing.T) {
		verdict := ValidateSwap(kidA.ID, kidElsewhere.ID, all, teamID)
		assert.False(t, verdict.IsValid)
		assert.Contains(t, verdict.Message, "belong to the team")
	})

	t.Run("identical vehicles", func(t *testing.T) {
		verdict := ValidateSwap(kidA.ID, kidSame.ID, all, teamID)
		assert.False(t, verdict.IsValid)
		assert.Contains(t, verdict.Message, "nothing to swap")
	})
}

func TestVehicleDisplayInfo(t *testing.T) {
	bus := &model.Vehicle{Name: "Blue Bus"}
	bus.ID = uuid.New()
	vehicles := []*model.Vehicle{bus}

	t.Run("nil reference", func(t *testing.T) {
		display := VehicleDisplayInfo(nil, vehicles)
		assert.Equal(t, NoVehicleLabel, display.Name)
		assert.False(t, display.Known)
		assert.Empty(t, display.VehicleID)
	})

	t.Run("known vehicle", func(t *testing.T) {
		display := VehicleDisplayInfo(&bus.ID, vehicles)
		assert.Equal(t, "Blue Bus", display.Name)
		assert.True(t, display.Known)
	})

	t.Run("dangling id", func(t *testing.T) {
		dangling := uuid.New()
		display := VehicleDisplayInfo(&dangling, vehicles)
		assert.Equal(t, UnknownVehicleLabel, display.Name)
		assert.False(t, display.Known)
		assert.Equal(t, dangling.String(), display.VehicleID)
	})
}
