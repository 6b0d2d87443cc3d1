// Package vehicleswap exchanges the vehicle bindings of two kids on the same
// team. The exchange itself is one database transaction; the audit trail is
// appended afterwards and is best-effort only.
package vehicleswap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campfirehq/youthorg-api/internal/model"
)

const (
	NoVehicleLabel      = "No Vehicle Assigned"
	UnknownVehicleLabel = "Unknown Vehicle"
)

type KidStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Kid, error)
	SwapVehicles(ctx context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error
}

type HistoryAppender interface {
	Append(ctx context.Context, entry *model.VehicleAssignment) error
}

type Service struct {
	kids    KidStore
	history HistoryAppender
}

func NewService(kids KidStore, history HistoryAppender) *Service {
	return &Service{kids: kids, history: history}
}

// SwapVehiclesBetweenKids gives each kid the other's current vehicle. The
// result is always a tagged value; nothing here reaches callers as an error.
// The service re-reads both kids rather than trusting any earlier
// ValidateSwap call, which may have run against stale data.
func (s *Service) SwapVehiclesBetweenKids(ctx context.Context, kidAID, kidBID uuid.UUID, teamID *uuid.UUID, actorID uuid.UUID) *model.SwapResult {
	if kidAID == kidBID {
		return &model.SwapResult{
			Success:   false,
			ErrorCode: model.SwapErrNoOp,
			Message:   "cannot swap a kid with itself",
		}
	}

	kidA, err := s.kids.Get(ctx, kidAID)
	if err != nil {
		return &model.SwapResult{
			Success:   false,
			ErrorCode: model.SwapErrNotFound,
			Message:   fmt.Sprintf("kid %s not found", kidAID),
		}
	}
	kidB, err := s.kids.Get(ctx, kidBID)
	if err != nil {
		return &model.SwapResult{
			Success:   false,
			ErrorCode: model.SwapErrNotFound,
			Message:   fmt.Sprintf("kid %s not found", kidBID),
		}
	}

	if sameVehicle(kidA.VehicleID, kidB.VehicleID) {
		return &model.SwapResult{
			Success:   false,
			ErrorCode: model.SwapErrNoOp,
			Message:   "both kids have the same vehicle assignment; nothing to swap",
		}
	}

	sideA := swapSide(kidA, kidB.VehicleID)
	sideB := swapSide(kidB, kidA.VehicleID)

	// A gets B's vehicle and vice versa, committed together.
	if err := s.kids.SwapVehicles(ctx, kidAID, kidBID, sideA.VehicleAfter, sideB.VehicleAfter); err != nil {
		return &model.SwapResult{
			Success:   false,
			ErrorCode: model.SwapErrWrite,
			Message:   fmt.Sprintf("failed to swap vehicles: %v", err),
		}
	}

	s.appendHistory(ctx, kidA, teamID, sideA, actorID)
	s.appendHistory(ctx, kidB, teamID, sideB, actorID)

	return &model.SwapResult{
		Success: true,
		KidA:    sideA,
		KidB:    sideB,
	}
}

func swapSide(kid *model.Kid, after *uuid.UUID) *model.SwapSide {
	changeType := model.ChangeSwapped
	if after == nil {
		changeType = model.ChangeUnassigned
	}
	return &model.SwapSide{
		KidID:         kid.ID,
		KidName:       kid.DisplayName(),
		VehicleBefore: kid.VehicleID,
		VehicleAfter:  after,
		ChangeType:    changeType,
	}
}

func (s *Service) appendHistory(ctx context.Context, kid *model.Kid, teamID *uuid.UUID, side *model.SwapSide, actorID uuid.UUID) {
	entry := &model.VehicleAssignment{
		KidID:         kid.ID,
		TeamID:        teamID,
		FromVehicleID: side.VehicleBefore,
		ToVehicleID:   side.VehicleAfter,
		ChangeType:    side.ChangeType,
		ActorID:       actorID,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		// Audit is not authoritative state; the swap already committed.
		log.Error().Err(err).
			Str("kid_id", kid.ID.String()).
			Str("change_type", side.ChangeType).
			Msg("failed to record vehicle assignment history")
	}
}

// SwappableKids returns the same-team kids whose vehicle assignment differs
// from the subject's, self excluded.
func SwappableKids(subject *model.Kid, allKids []*model.Kid, teamID uuid.UUID) []*model.Kid {
	var out []*model.Kid
	for _, kid := range allKids {
		if kid.ID == subject.ID {
			continue
		}
		if kid.TeamID == nil || *kid.TeamID != teamID {
			continue
		}
		if sameVehicle(kid.VehicleID, subject.VehicleID) {
			continue
		}
		out = append(out, kid)
	}
	return out
}

// ValidateSwap is the pre-flight check UI flows run before calling the
// mutating swap. It never touches storage; callers pass the kid list they
// already hold.
func ValidateSwap(kidAID, kidBID uuid.UUID, allKids []*model.Kid, teamID uuid.UUID) *model.SwapValidation {
	if kidAID == kidBID {
		return &model.SwapValidation{IsValid: false, Message: "cannot swap a kid with itself"}
	}

	kidA := findKid(allKids, kidAID)
	if kidA == nil {
		return &model.SwapValidation{IsValid: false, Message: "first kid not found"}
	}
	kidB := findKid(allKids, kidBID)
	if kidB == nil {
		return &model.SwapValidation{IsValid: false, Message: "second kid not found"}
	}

	if kidA.TeamID == nil || *kidA.TeamID != teamID || kidB.TeamID == nil || *kidB.TeamID != teamID {
		return &model.SwapValidation{IsValid: false, Message: "both kids must belong to the team"}
	}

	if sameVehicle(kidA.VehicleID, kidB.VehicleID) {
		return &model.SwapValidation{IsValid: false, Message: "both kids have the same vehicle assignment; nothing to swap"}
	}

	return &model.SwapValidation{
		IsValid: true,
		KidA:    swapSide(kidA, kidB.VehicleID),
		KidB:    swapSide(kidB, kidA.VehicleID),
	}
}

// VehicleDisplayInfo resolves a vehicle reference for display. It never
// fails: a nil reference and a dangling id both get placeholder names.
func VehicleDisplayInfo(vehicleID *uuid.UUID, allVehicles []*model.Vehicle) *model.VehicleDisplay {
	if vehicleID == nil {
		return &model.VehicleDisplay{Name: NoVehicleLabel}
	}
	for _, vehicle := range allVehicles {
		if vehicle.ID == *vehicleID {
			return &model.VehicleDisplay{
				VehicleID: vehicle.ID.String(),
				Name:      vehicle.Name,
				Known:     true,
			}
		}
	}
	return &model.VehicleDisplay{
		VehicleID: vehicleID.String(),
		Name:      UnknownVehicleLabel,
	}
}

func findKid(kids []*model.Kid, id uuid.UUID) *model.Kid {
	for _, kid := range kids {
		if kid.ID == id {
			return kid
		}
	}
	return nil
}

func sameVehicle(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
