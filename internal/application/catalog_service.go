package application

import (
	"context"
	"errors"
	"strings"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
)

var (
	ErrOccasionNotFound = errors.New("occasion not found")
	ErrOfferingNotFound = errors.New("offering not found")
)

// CatalogService serves the read-only occasion and offering catalogs.
type CatalogService struct {
	Occasions repo.OccasionRepository
	Offerings repo.OfferingRepository
}

func NewCatalogService(occasions repo.OccasionRepository, offerings repo.OfferingRepository) *CatalogService {
	return &CatalogService{Occasions: occasions, Offerings: offerings}
}

func (s *CatalogService) GetOccasion(ctx context.Context, id string) (*entity.Occasion, error) {
	o, err := s.Occasions.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, ErrOccasionNotFound
	}
	return o, nil
}

func (s *CatalogService) ListOccasions(ctx context.Context, search string, limit, offset int) ([]entity.Occasion, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.Occasions.List(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *CatalogService) GetOffering(ctx context.Context, id string) (*entity.Offering, error) {
	o, err := s.Offerings.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, ErrOfferingNotFound
	}
	return o, nil
}

func (s *CatalogService) ListOfferings(ctx context.Context, search string, limit, offset int) ([]entity.Offering, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.Offerings.List(ctx, strings.TrimSpace(search), limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
