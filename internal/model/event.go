package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location"`
	StartTime   time.Time  `json:"start_time" db:"start_time"`
	EndTime     time.Time  `json:"end_time" db:"end_time"`
	TeamID      *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	CreatedBy   uuid.UUID  `json:"created_by" db:"created_by"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     time.Time  `json:"end_time" binding:"required"`
	TeamID      *uuid.UUID `json:"team_id,omitempty"`
}
