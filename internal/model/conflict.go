package model

import "github.com/google/uuid"

// Conflict types, in decreasing severity.
const (
	ConflictKidAssignment  = "kid_assignment"
	ConflictTeamAssignment = "team_assignment"
)

// Severity tiers surfaced to the UI.
const (
	SeverityNone     = "none"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
	SeverityUnknown  = "unknown"
)

// Allowed actions per tier.
const (
	ActionProceed = "proceed"
	ActionWarn    = "warn"
	ActionBlock   = "block"
	ActionCaution = "caution"
)

// TeamConflict names another team already listing the vehicle.
type TeamConflict struct {
	TeamID   uuid.UUID `json:"team_id"`
	TeamName string    `json:"team_name"`
}

// KidConflict names a kid outside the editing team already bound to the
// vehicle.
type KidConflict struct {
	KidID   uuid.UUID  `json:"kid_id"`
	KidName string     `json:"kid_name"`
	TeamID  *uuid.UUID `json:"team_id,omitempty"`
}

// ConflictResult is the verdict of a single vehicle conflict check. Checked
// is false when the underlying queries failed and the verdict is a
// fail-open (or fail-closed) guess rather than an observation.
type ConflictResult struct {
	VehicleID     uuid.UUID      `json:"vehicle_id"`
	HasConflict   bool           `json:"has_conflict"`
	ConflictType  string         `json:"conflict_type,omitempty"`
	CanProceed    bool           `json:"can_proceed"`
	Checked       bool           `json:"checked"`
	Message       string         `json:"message"`
	TeamConflicts []TeamConflict `json:"team_conflicts,omitempty"`
	KidConflicts  []KidConflict  `json:"kid_conflicts,omitempty"`
}

// ConflictSummary maps a result onto a UI severity tier and allowed action.
type ConflictSummary struct {
	Severity string `json:"severity"`
	Action   string `json:"action"`
	Message  string `json:"message"`
}

// SwapSide captures one kid's half of a swap outcome.
type SwapSide struct {
	KidID         uuid.UUID  `json:"kid_id"`
	KidName       string     `json:"kid_name"`
	VehicleBefore *uuid.UUID `json:"vehicle_before,omitempty"`
	VehicleAfter  *uuid.UUID `json:"vehicle_after,omitempty"`
	ChangeType    string     `json:"change_type"`
}

// SwapResult is the tagged outcome of a swap. Services return it instead of
// raising: callers check Success and ErrorCode, never recover from panics.
type SwapResult struct {
	Success   bool      `json:"success"`
	ErrorCode string    `json:"error_code,omitempty"`
	Message   string    `json:"message,omitempty"`
	KidA      *SwapSide `json:"kid_a,omitempty"`
	KidB      *SwapSide `json:"kid_b,omitempty"`
}

// Swap failure codes.
const (
	SwapErrNotFound = "not_found"
	SwapErrNoOp     = "no_op"
	SwapErrWrite    = "write_failed"
)

// SwapValidation is the pre-flight verdict for a proposed swap. The mutating
// swap re-derives its own state; this exists so UI flows can reject early
// with display-ready context.
type SwapValidation struct {
	IsValid bool      `json:"is_valid"`
	Message string    `json:"message,omitempty"`
	KidA    *SwapSide `json:"kid_a,omitempty"`
	KidB    *SwapSide `json:"kid_b,omitempty"`
}
