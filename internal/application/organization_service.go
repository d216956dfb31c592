package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
	"github.com/drewhq/drew/pkg/helpers"
)

var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationService manages company records users attach to.
type OrganizationService struct {
	Orgs   repo.OrganizationRepository
	Users  repo.UserRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewOrganizationService(orgs repo.OrganizationRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger) *OrganizationService {
	return &OrganizationService{Orgs: orgs, Users: users, Redis: rdb, Logger: logger}
}

type OrganizationInput struct {
	Name        string
	Industry    string
	CompanySize string
	Website     string
}

func (s *OrganizationService) Create(ctx context.Context, in OrganizationInput) (*entity.Organization, error) {
	org := &entity.Organization{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Industry:    strings.TrimSpace(in.Industry),
		CompanySize: strings.TrimSpace(in.CompanySize),
		Website:     strings.TrimSpace(in.Website),
	}
	if err := s.Orgs.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// CreateFor creates an organization and attaches it to the given user.
func (s *OrganizationService) CreateFor(ctx context.Context, userID string, in OrganizationInput) (*entity.Organization, error) {
	org, err := s.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	u.OrganizationID = org.ID
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateUserCache(ctx, userID)
	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id string) (*entity.Organization, error) {
	org, err := s.Orgs.GetByID(ctx, id)
	if err != nil || org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

type UpdateOrganizationInput struct {
	Name        *string
	Industry    *string
	CompanySize *string
	Website     *string
}

// Update applies a partial update. callerID's cached profile is dropped so
// subsequent reads see the fresh organization.
func (s *OrganizationService) Update(ctx context.Context, callerID, id string, in UpdateOrganizationInput) (*entity.Organization, error) {
	org, err := s.Orgs.GetByID(ctx, id)
	if err != nil || org == nil {
		return nil, ErrOrganizationNotFound
	}
	if in.Name == nil && in.Industry == nil && in.CompanySize == nil && in.Website == nil {
		return nil, ErrNoUpdateData
	}
	if in.Name != nil {
		org.Name = strings.TrimSpace(*in.Name)
	}
	if in.Industry != nil {
		org.Industry = strings.TrimSpace(*in.Industry)
	}
	if in.CompanySize != nil {
		org.CompanySize = strings.TrimSpace(*in.CompanySize)
	}
	if in.Website != nil {
		org.Website = strings.TrimSpace(*in.Website)
	}
	if err := s.Orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	s.invalidateUserCache(ctx, callerID)
	return org, nil
}

// List returns a page of organizations and the total match count.
func (s *OrganizationService) List(ctx context.Context, search string, limit, offset int) ([]entity.Organization, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Orgs.List(ctx, strings.TrimSpace(search), limit, offset)
}

func (s *OrganizationService) invalidateUserCache(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	_ = helpers.RedisDel(ctx, s.Redis, helpers.KeyUserCache(userID))
}
