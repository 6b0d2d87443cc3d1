package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/internal/service/vehicleswap"
	"github.com/campfirehq/youthorg-api/pkg/errors"
)

const (
	displayCacheTTL     = 5 * time.Minute
	displayCacheCleanup = 10 * time.Minute
	fleetCacheKey       = "fleet"
)

// Service is plain CRUD over the fleet plus cached display lookups. The
// fleet changes rarely, so display resolution reads a short-lived in-process
// cache instead of hitting the database per reference.
type Service struct {
	repo  repository.VehicleRepository
	cache *gocache.Cache
}

func NewService(repo repository.VehicleRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(displayCacheTTL, displayCacheCleanup),
	}
}

func (s *Service) CreateVehicle(ctx context.Context, req *model.CreateVehicleRequest) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		Name:        req.Name,
		PlateNumber: req.PlateNumber,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Status:      model.VehicleStatusActive,
	}
	vehicle.ID = uuid.New()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	s.cache.Delete(fleetCacheKey)
	return vehicle, nil
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("vehicle", err)
	}
	return vehicle, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	s.cache.Delete(fleetCacheKey)
	return nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return errors.NotFound("vehicle", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	s.cache.Delete(fleetCacheKey)
	return nil
}

func (s *Service) ListVehicles(ctx context.Context) ([]*model.Vehicle, error) {
	return s.repo.List(ctx)
}

// DisplayInfo resolves a vehicle reference to its display record through the
// fleet cache. It never fails; unresolvable references get placeholders.
func (s *Service) DisplayInfo(ctx context.Context, vehicleID *uuid.UUID) *model.VehicleDisplay {
	fleet := s.cachedFleet(ctx)
	return vehicleswap.VehicleDisplayInfo(vehicleID, fleet)
}

func (s *Service) cachedFleet(ctx context.Context) []*model.Vehicle {
	if cached, ok := s.cache.Get(fleetCacheKey); ok {
		return cached.([]*model.Vehicle)
	}
	fleet, err := s.repo.List(ctx)
	if err != nil {
		// Display resolution degrades to "Unknown Vehicle" placeholders.
		return nil
	}
	s.cache.Set(fleetCacheKey, fleet, gocache.DefaultExpiration)
	return fleet
}
