package model

const (
	VehicleStatusActive      = "active"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusRetired     = "retired"
)

type Vehicle struct {
	Base
	Name        string `json:"name" db:"name"`
	PlateNumber string `json:"plate_number" db:"plate_number"`
	Type        string `json:"type" db:"type"`
	Capacity    int    `json:"capacity" db:"capacity"`
	Status      string `json:"status" db:"status"`
}

type CreateVehicleRequest struct {
	Name        string `json:"name" binding:"required"`
	PlateNumber string `json:"plate_number"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=1"`
}

// VehicleDisplay is the UI-facing resolution of a vehicle reference. It is
// always well formed: nil references and dangling ids get placeholder names.
type VehicleDisplay struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Name      string `json:"name"`
	Known     bool   `json:"known"`
}
