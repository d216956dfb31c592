package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/domain/repository"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	var occasionIDs []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.UserID, &p.ThreadID,
		&occasionIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(occasionIDs) > 0 {
		_ = json.Unmarshal(occasionIDs, &p.OccasionIDs)
	}
	if p.OccasionIDs == nil {
		p.OccasionIDs = []string{}
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if p.OccasionIDs == nil {
		p.OccasionIDs = []string{}
	}
	occasionIDs, _ := json.Marshal(p.OccasionIDs)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, user_id, thread_id, occasion_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.UserID, p.ThreadID, occasionIDs)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `
		SELECT id, name, description, user_id, thread_id, occasion_ids, created_at, updated_at
		FROM projects WHERE id = $1
	`, id))
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	p.UpdatedAt = time.Now().UTC()
	occasionIDs, _ := json.Marshal(p.OccasionIDs)
	res, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, occasion_ids = $3, updated_at = $4
		WHERE id = $5
	`, p.Name, p.Description, occasionIDs, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Project, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM projects WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, user_id, thread_id, occasion_ids, created_at, updated_at
		FROM projects WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

type RecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{pool: pool}
}

func scanRecommendation(row pgx.Row) (*entity.Recommendation, error) {
	rec := &entity.Recommendation{}
	var criteria []byte
	if err := row.Scan(&rec.ID, &rec.ProjectID, &rec.ActivityID, &rec.UserID,
		&rec.Title, &rec.ShortDescription, &rec.ThumbnailURL,
		&rec.ReasonToRecommend, &criteria, &rec.Score,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(criteria) > 0 {
		_ = json.Unmarshal(criteria, &rec.MatchedCriteria)
	}
	return rec, nil
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *entity.Recommendation) error {
	criteria, _ := json.Marshal(rec.MatchedCriteria)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recommendations (project_id, activity_id, user_id, title,
			short_description, thumbnail_url, reason_to_recommend, matched_criteria, score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`, rec.ProjectID, rec.ActivityID, rec.UserID, rec.Title,
		rec.ShortDescription, rec.ThumbnailURL, rec.ReasonToRecommend, criteria, rec.Score)
	return row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecommendationRepository) GetByID(ctx context.Context, id string) (*entity.Recommendation, error) {
	return scanRecommendation(r.pool.QueryRow(ctx, `
		SELECT id, project_id, activity_id, user_id, title, short_description,
			thumbnail_url, reason_to_recommend, matched_criteria, score,
			created_at, updated_at
		FROM recommendations WHERE id = $1
	`, id))
}

func (r *RecommendationRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, activity_id, user_id, title, short_description,
			thumbnail_url, reason_to_recommend, matched_criteria, score,
			created_at, updated_at
		FROM recommendations WHERE project_id = $1
		ORDER BY score DESC, created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *RecommendationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recommendations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.RecommendationRepository = (*RecommendationRepository)(nil)
