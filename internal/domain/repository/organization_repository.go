package repository

import (
	"context"

	"github.com/drewhq/drew/internal/domain/entity"
)

// OrganizationRepository defines organization persistence operations.
type OrganizationRepository interface {
	Create(ctx context.Context, o *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	Update(ctx context.Context, o *entity.Organization) error
	// List returns a page of organizations plus the total match count.
	// search matches name or industry, case-insensitively.
	List(ctx context.Context, search string, limit, offset int) ([]entity.Organization, int, error)
}
