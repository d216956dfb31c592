package repository

import (
	"context"

	"github.com/drewhq/drew/internal/domain/entity"
)

// OccasionRepository defines occasion read operations.
type OccasionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Occasion, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Occasion, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.Occasion, int, error)
}

// OfferingRepository defines offering read operations.
type OfferingRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Offering, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.Offering, int, error)
}
