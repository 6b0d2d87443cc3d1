package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.User, error)
	ListByRole(ctx context.Context, role string) ([]*model.User, error)
}

type KidRepository interface {
	Create(ctx context.Context, kid *model.Kid) error
	Get(ctx context.Context, id uuid.UUID) (*model.Kid, error)
	Update(ctx context.Context, kid *model.Kid) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Kid, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*model.Kid, error)
	// ListByVehicle returns kids bound to the vehicle, excluding members of
	// excludeTeamID when it is non-nil.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeTeamID *uuid.UUID) ([]*model.Kid, error)
	// SwapVehicles writes both kids' new vehicle bindings in one
	// transaction so a partial swap can never be observed.
	SwapVehicles(ctx context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error
	SetTeam(ctx context.Context, kidID uuid.UUID, teamID *uuid.UUID) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	Get(ctx context.Context, id uuid.UUID) (*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Team, error)
	// ListByVehicle returns teams listing the vehicle, excluding the team
	// with excludeID when it is non-nil.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, excludeID *uuid.UUID) ([]*model.Team, error)
}

type InstructorRepository interface {
	Create(ctx context.Context, instructor *model.Instructor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Instructor, error)
	Update(ctx context.Context, instructor *model.Instructor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Instructor, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Vehicle, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *model.VehicleAssignment) error
	ListByKid(ctx context.Context, kidID uuid.UUID) ([]*model.VehicleAssignment, error)
	ListSince(ctx context.Context, since time.Time) ([]*model.VehicleAssignment, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery *model.Gallery) error
	GetGallery(ctx context.Context, id uuid.UUID) (*model.Gallery, error)
	DeleteGallery(ctx context.Context, id uuid.UUID) error
	ListGalleries(ctx context.Context) ([]*model.Gallery, error)
	AddPhoto(ctx context.Context, photo *model.Photo) error
	ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]*model.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	Get(ctx context.Context, id uuid.UUID) (*model.Report, error)
	List(ctx context.Context) ([]*model.Report, error)
}
