package application

import (
	"context"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/infrastructure/postgres"
)

// In-memory repositories backing the service tests. They return
// postgres.ErrNotFound the way the real implementations do so the
// services' IsNotFound checks behave identically.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[string]*entity.Organization{}}
}

func (r *fakeOrgRepo) Create(_ context.Context, o *entity.Organization) error {
	cp := *o
	r.orgs[o.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	if o, ok := r.orgs[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeOrgRepo) Update(_ context.Context, o *entity.Organization) error {
	if _, ok := r.orgs[o.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *o
	r.orgs[o.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) List(_ context.Context, _ string, limit, offset int) ([]entity.Organization, int, error) {
	out := make([]entity.Organization, 0, len(r.orgs))
	for _, o := range r.orgs {
		out = append(out, *o)
	}
	return out, len(out), nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo(projects ...*entity.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: map[string]*entity.Project{}}
	for _, p := range projects {
		cp := *p
		r.projects[p.ID] = &cp
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	if p, ok := r.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]entity.Project, int, error) {
	var out []entity.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

type fakeActivityRepo struct {
	activities []entity.Activity
	listErr    error
}

func (r *fakeActivityRepo) Create(_ context.Context, a *entity.Activity) error {
	r.activities = append(r.activities, *a)
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id string) (*entity.Activity, error) {
	for i := range r.activities {
		if r.activities[i].ID == id {
			cp := r.activities[i]
			return &cp, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeActivityRepo) Update(_ context.Context, a *entity.Activity) error {
	for i := range r.activities {
		if r.activities[i].ID == a.ID {
			r.activities[i] = *a
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (r *fakeActivityRepo) List(_ context.Context, f entity.ActivityFilter) ([]entity.Activity, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	return r.activities, len(r.activities), nil
}

func (r *fakeActivityRepo) SetEmbedding(_ context.Context, id string, _ []float32) error {
	return nil
}

func (r *fakeActivityRepo) SearchByEmbedding(_ context.Context, _ []float32, _ entity.ActivityFilter) ([]entity.Activity, error) {
	return r.activities, nil
}

func (r *fakeActivityRepo) ExpandOfferings(_ context.Context, _ *entity.Activity) error {
	return nil
}

func (r *fakeActivityRepo) ExpandPreRequisites(_ context.Context, _ *entity.Activity) error {
	return nil
}

type fakeRecommendationRepo struct {
	recs map[string]*entity.Recommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{recs: map[string]*entity.Recommendation{}}
}

func (r *fakeRecommendationRepo) Create(_ context.Context, rec *entity.Recommendation) error {
	cp := *rec
	r.recs[rec.ID] = &cp
	return nil
}

func (r *fakeRecommendationRepo) GetByID(_ context.Context, id string) (*entity.Recommendation, error) {
	if rec, ok := r.recs[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeRecommendationRepo) ListByProject(_ context.Context, projectID string) ([]entity.Recommendation, error) {
	var out []entity.Recommendation
	for _, rec := range r.recs {
		if rec.ProjectID == projectID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecommendationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.recs[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.recs, id)
	return nil
}
