package repository

import (
	"context"

	"github.com/drewhq/drew/internal/domain/entity"
)

// ActivityRepository defines activity persistence and search operations.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	Update(ctx context.Context, a *entity.Activity) error
	List(ctx context.Context, f entity.ActivityFilter) ([]entity.Activity, int, error)
	// SetEmbedding stores the semantic-search vector for an activity.
	SetEmbedding(ctx context.Context, id string, embedding []float32) error
	// SearchByEmbedding returns activities ordered by cosine distance to
	// the query vector, optionally narrowed by the same filter as List.
	SearchByEmbedding(ctx context.Context, embedding []float32, f entity.ActivityFilter) ([]entity.Activity, error)
	// ExpandOfferings fills in short/long descriptions on offering links.
	ExpandOfferings(ctx context.Context, a *entity.Activity) error
	// ExpandPreRequisites fills in prerequisite details on links.
	ExpandPreRequisites(ctx context.Context, a *entity.Activity) error
}
