package model

import "github.com/google/uuid"

type Instructor struct {
	Base
	Name    string      `json:"name" db:"name"`
	Email   string      `json:"email" db:"email"`
	Phone   string      `json:"phone" db:"phone"`
	TeamIDs []uuid.UUID `json:"team_ids" db:"-"`
}

type CreateInstructorRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}
