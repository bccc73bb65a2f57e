package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jp-municipalities/internal/models"
)

// ErrInvalidQuery is returned for empty or malformed lookups.
var ErrInvalidQuery = errors.New("service: invalid query")

// MunicipalityService contains the lookup logic over the imported dataset.
type MunicipalityService struct {
	repo MunicipalityRepository
}

// MunicipalityRepository is the storage the service reads from.
type MunicipalityRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Municipality, error)
	SearchByName(ctx context.Context, query string) ([]models.Municipality, error)
}

// NewMunicipalityService creates a MunicipalityService backed by repo.
func NewMunicipalityService(repo MunicipalityRepository) *MunicipalityService {
	return &MunicipalityService{repo: repo}
}

// Lookup returns the municipality with the given local government code.
func (s *MunicipalityService) Lookup(ctx context.Context, code string) (*models.Municipality, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code cannot be empty", ErrInvalidQuery)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: code must be numeric: %q", ErrInvalidQuery, code)
		}
	}

	municipality, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find municipality: %w", err)
	}

	return municipality, nil
}

// Search finds municipalities whose kanji, kana or romaji name contains name.
func (s *MunicipalityService) Search(ctx context.Context, name string) ([]models.Municipality, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidQuery)
	}

	municipalities, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search municipalities: %w", err)
	}

	return municipalities, nil
}
