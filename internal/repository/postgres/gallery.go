package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
)

type galleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) repository.GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) CreateGallery(ctx context.Context, gallery *model.Gallery) error {
	query := `
		INSERT INTO galleries (id, title, event_id, created_at, updated_at)
		VALUES (:id, :title, :event_id, :created_at, :updated_at)
	`
	gallery.CreatedAt = time.Now()
	gallery.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, gallery); err != nil {
		return fmt.Errorf("failed to create gallery: %w", err)
	}
	return nil
}

func (r *galleryRepository) GetGallery(ctx context.Context, id uuid.UUID) (*model.Gallery, error) {
	query := `SELECT * FROM galleries WHERE id = $1 AND deleted_at IS NULL`
	var gallery model.Gallery
	if err := r.db.GetContext(ctx, &gallery, query, id); err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return &gallery, nil
}

func (r *galleryRepository) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE galleries SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	return nil
}

func (r *galleryRepository) ListGalleries(ctx context.Context) ([]*model.Gallery, error) {
	query := `SELECT * FROM galleries WHERE deleted_at IS NULL ORDER BY created_at DESC`
	var galleries []*model.Gallery
	if err := r.db.SelectContext(ctx, &galleries, query); err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, nil
}

func (r *galleryRepository) AddPhoto(ctx context.Context, photo *model.Photo) error {
	query := `
		INSERT INTO photos (id, gallery_id, path, caption, uploaded_by, created_at, updated_at)
		VALUES (:id, :gallery_id, :path, :caption, :uploaded_by, :created_at, :updated_at)
	`
	photo.CreatedAt = time.Now()
	photo.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, photo); err != nil {
		return fmt.Errorf("failed to add photo: %w", err)
	}
	return nil
}

func (r *galleryRepository) ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]*model.Photo, error) {
	query := `SELECT * FROM photos WHERE gallery_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	var photos []*model.Photo
	if err := r.db.SelectContext(ctx, &photos, query, galleryID); err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

func (r *galleryRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE photos SET deleted_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
