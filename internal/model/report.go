package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is a point-in-time aggregate snapshot, stored as JSON.
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	GeneratedBy uuid.UUID `json:"generated_by" db:"generated_by"`
	Payload     []byte    `json:"-" db:"payload"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReportPayload is what actually goes into Report.Payload.
type ReportPayload struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalKids      int            `json:"total_kids"`
	TotalTeams     int            `json:"total_teams"`
	TotalVehicles  int            `json:"total_vehicles"`
	KidsPerTeam    map[string]int `json:"kids_per_team"`
	VehiclesInUse  int            `json:"vehicles_in_use"`
	UpcomingEvents int            `json:"upcoming_events"`
}
