package model

import (
	"time"

	"github.com/google/uuid"
)

// Kid is a participant record. Vehicle assignment is a single optional
// reference; the matching entry in the owning team's vehicle list is
// maintained by the team service, not by the database.
type Kid struct {
	Base
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	BirthDate    *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Address      string     `json:"address" db:"address"`
	Capabilities string     `json:"capabilities" db:"capabilities"`
	PhotoURL     string     `json:"photo_url" db:"photo_url"`

	Allergies    string `json:"allergies" db:"allergies"`
	MedicalNotes string `json:"medical_notes" db:"medical_notes"`

	ParentName      string `json:"parent_name" db:"parent_name"`
	ParentEmail     string `json:"parent_email" db:"parent_email"`
	ParentPhone     string `json:"parent_phone" db:"parent_phone"`
	ParentWorkPhone string `json:"parent_work_phone" db:"parent_work_phone"`
	ParentAddress   string `json:"parent_address" db:"parent_address"`

	TeamID       *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	InstructorID *uuid.UUID `json:"instructor_id,omitempty" db:"instructor_id"`
	VehicleID    *uuid.UUID `json:"vehicle_id,omitempty" db:"vehicle_id"`

	OrgComment    string `json:"org_comment" db:"org_comment"`
	ParentComment string `json:"parent_comment" db:"parent_comment"`
	Attendance    int    `json:"attendance" db:"attendance"`
}

// DisplayName is used in swap results and audit entries.
func (k *Kid) DisplayName() string {
	if k.LastName == "" {
		return k.FirstName
	}
	return k.FirstName + " " + k.LastName
}

// Record renders the kid as the nested map the field permission table is
// keyed against, so responses can be redacted per caller role.
func (k *Kid) Record() JSONMap {
	personal := JSONMap{
		"firstName":    k.FirstName,
		"lastName":     k.LastName,
		"address":      k.Address,
		"capabilities": k.Capabilities,
		"photoURL":     k.PhotoURL,
	}
	if k.BirthDate != nil {
		personal["birthDate"] = k.BirthDate.Format("2006-01-02")
	}

	assignment := JSONMap{}
	if k.TeamID != nil {
		assignment["teamId"] = k.TeamID.String()
	}
	if k.InstructorID != nil {
		assignment["instructorId"] = k.InstructorID.String()
	}
	if k.VehicleID != nil {
		assignment["vehicleId"] = k.VehicleID.String()
	}

	return JSONMap{
		"personalInfo": map[string]interface{}(personal),
		"medicalInfo": map[string]interface{}{
			"allergies": k.Allergies,
			"notes":     k.MedicalNotes,
		},
		"parentInfo": map[string]interface{}{
			"name":      k.ParentName,
			"email":     k.ParentEmail,
			"phone":     k.ParentPhone,
			"workPhone": k.ParentWorkPhone,
			"address":   k.ParentAddress,
		},
		"assignment": map[string]interface{}(assignment),
		"comments": map[string]interface{}{
			"organization": k.OrgComment,
			"parent":       k.ParentComment,
		},
		"attendance": k.Attendance,
	}
}

type CreateKidRequest struct {
	FirstName    string     `json:"first_name" binding:"required"`
	LastName     string     `json:"last_name" binding:"required"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Address      string     `json:"address"`
	Capabilities string     `json:"capabilities"`
	Allergies    string     `json:"allergies"`
	MedicalNotes string     `json:"medical_notes"`
	ParentName   string     `json:"parent_name"`
	ParentEmail  string     `json:"parent_email" binding:"omitempty,email"`
	ParentPhone  string     `json:"parent_phone"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
}
