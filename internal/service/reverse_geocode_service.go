package service

import (
	"context"
	"fmt"

	"jp-municipalities/internal/models"
)

// ReverseGeoCodeService finds the municipality around a coordinate.
type ReverseGeoCodeService struct {
	repo ReverseGeoCodeRepository
}

// ReverseGeoCodeRepository is the storage the service reads from.
type ReverseGeoCodeRepository interface {
	FindNearest(ctx context.Context, lat, lon float64) (*models.Municipality, error)
}

// NewReverseGeoCodeService creates a ReverseGeoCodeService backed by repo.
func NewReverseGeoCodeService(repo ReverseGeoCodeRepository) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode finds the nearest municipality to the given coordinates.
// Out-of-range coordinates are rejected with ErrInvalidQuery.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Municipality, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: invalid latitude: %f", ErrInvalidQuery, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: invalid longitude: %f", ErrInvalidQuery, lon)
	}

	municipality, err := s.repo.FindNearest(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest municipality: %w", err)
	}

	return municipality, nil
}
