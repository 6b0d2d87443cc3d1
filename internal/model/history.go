package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment history change types.
const (
	ChangeAssigned   = "assigned"
	ChangeSwapped    = "swapped"
	ChangeUnassigned = "unassigned"
)

// VehicleAssignment is one append-only audit entry for a kid's vehicle
// binding. Entries are best-effort: a failed insert never fails the
// operation that produced it.
type VehicleAssignment struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	KidID         uuid.UUID  `json:"kid_id" db:"kid_id"`
	TeamID        *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	FromVehicleID *uuid.UUID `json:"from_vehicle_id,omitempty" db:"from_vehicle_id"`
	ToVehicleID   *uuid.UUID `json:"to_vehicle_id,omitempty" db:"to_vehicle_id"`
	ChangeType    string     `json:"change_type" db:"change_type"`
	ActorID       uuid.UUID  `json:"actor_id" db:"actor_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
