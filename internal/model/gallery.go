package model

import "github.com/google/uuid"

type Gallery struct {
	Base
	Title   string     `json:"title" db:"title"`
	EventID *uuid.UUID `json:"event_id,omitempty" db:"event_id"`
}

// Photo is gallery metadata; the bytes live in the object store under Path.
type Photo struct {
	Base
	GalleryID  uuid.UUID `json:"gallery_id" db:"gallery_id"`
	Path       string    `json:"path" db:"path"`
	Caption    string    `json:"caption" db:"caption"`
	UploadedBy uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
}

type CreateGalleryRequest struct {
	Title   string     `json:"title" binding:"required"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
}
