package repository

import (
	"context"

	"github.com/drewhq/drew/internal/domain/entity"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Project, int, error)
}

// RecommendationRepository defines recommendation persistence operations.
type RecommendationRepository interface {
	Create(ctx context.Context, r *entity.Recommendation) error
	GetByID(ctx context.Context, id string) (*entity.Recommendation, error)
	ListByProject(ctx context.Context, projectID string) ([]entity.Recommendation, error)
	Delete(ctx context.Context, id string) error
}
