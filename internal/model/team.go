package model

import (
	"github.com/google/uuid"
)

// Team holds its member references as plain id lists. Both sides of every
// kid/instructor assignment are written together by the team service; the
// schema does not enforce the mirror.
type Team struct {
	Base
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description" db:"description"`
	InstructorIDs []uuid.UUID `json:"instructor_ids" db:"-"`
	KidIDs        []uuid.UUID `json:"kid_ids" db:"-"`
	VehicleIDs    []uuid.UUID `json:"vehicle_ids" db:"-"`
}

// HasVehicle reports whether the team lists the vehicle.
func (t *Team) HasVehicle(vehicleID uuid.UUID) bool {
	for _, id := range t.VehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}

// HasKid reports whether the team lists the kid.
func (t *Team) HasKid(kidID uuid.UUID) bool {
	for _, id := range t.KidIDs {
		if id == kidID {
			return true
		}
	}
	return false
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AssignVehicleRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	// Force proceeds past a team-level warning; kid-level conflicts always block.
	Force bool `json:"force"`
}

type SwapRequest struct {
	KidAID uuid.UUID `json:"kid_a_id" binding:"required"`
	KidBID uuid.UUID `json:"kid_b_id" binding:"required"`
}
