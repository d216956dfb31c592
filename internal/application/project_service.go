package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)

// ProjectService manages planning projects and their saved recommendations.
type ProjectService struct {
	Projects        repo.ProjectRepository
	Recommendations repo.RecommendationRepository
	Occasions       repo.OccasionRepository
	Logger          *logrus.Logger
}

func NewProjectService(projects repo.ProjectRepository, recs repo.RecommendationRepository, occasions repo.OccasionRepository, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Recommendations: recs, Occasions: occasions, Logger: logger}
}

type ProjectInput struct {
	Name        string
	Description string
	OccasionIDs []string
}

func (s *ProjectService) Create(ctx context.Context, userID string, in ProjectInput) (*entity.Project, error) {
	p := &entity.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		UserID:      userID,
		ThreadID:    uuid.NewString(),
		OccasionIDs: in.OccasionIDs,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, err
	}
	s.populateOccasions(ctx, p)
	return p, nil
}

// Get loads a project owned by userID, with its occasions populated.
func (s *ProjectService) Get(ctx context.Context, userID, id string) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil || p == nil || p.UserID != userID {
		return nil, ErrProjectNotFound
	}
	s.populateOccasions(ctx, p)
	return p, nil
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	OccasionIDs *[]string
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, in UpdateProjectInput) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil || p == nil || p.UserID != userID {
		return nil, ErrProjectNotFound
	}
	if in.Name == nil && in.Description == nil && in.OccasionIDs == nil {
		return nil, ErrNoUpdateData
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.OccasionIDs != nil {
		p.OccasionIDs = *in.OccasionIDs
	}
	if err := s.Projects.Update(ctx, p); err != nil {
		return nil, err
	}
	s.populateOccasions(ctx, p)
	return p, nil
}

func (s *ProjectService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Project, int, error) {
	limit, offset = clampPage(limit, offset)
	items, total, err := s.Projects.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.populateOccasions(ctx, &items[i])
	}
	return items, total, nil
}

// ListRecommendations returns the saved recommendations for a project the
// user owns, highest score first.
func (s *ProjectService) ListRecommendations(ctx context.Context, userID, projectID string) ([]entity.Recommendation, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil || p == nil || p.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return s.Recommendations.ListByProject(ctx, projectID)
}

func (s *ProjectService) DeleteRecommendation(ctx context.Context, userID, projectID, recID string) error {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil || p == nil || p.UserID != userID {
		return ErrProjectNotFound
	}
	rec, err := s.Recommendations.GetByID(ctx, recID)
	if err != nil || rec == nil || rec.ProjectID != projectID {
		return ErrRecommendationNotFound
	}
	return s.Recommendations.Delete(ctx, recID)
}

func (s *ProjectService) populateOccasions(ctx context.Context, p *entity.Project) {
	if len(p.OccasionIDs) == 0 {
		return
	}
	occasions, err := s.Occasions.GetByIDs(ctx, p.OccasionIDs)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("project_id", p.ID).Warn("load occasions failed")
		}
		return
	}
	p.Occasions = occasions
}
