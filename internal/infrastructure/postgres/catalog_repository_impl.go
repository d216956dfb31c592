package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/domain/repository"
)

type OccasionRepository struct {
	pool *pgxpool.Pool
}

func NewOccasionRepository(pool *pgxpool.Pool) *OccasionRepository {
	return &OccasionRepository{pool: pool}
}

func (r *OccasionRepository) GetByID(ctx context.Context, id string) (*entity.Occasion, error) {
	o := &entity.Occasion{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at FROM occasions WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OccasionRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Occasion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at FROM occasions WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Occasion
	for rows.Next() {
		var o entity.Occasion
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OccasionRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.Occasion, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM occasions `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM occasions `+where+`
		ORDER BY name ASC
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Occasion
	for rows.Next() {
		var o entity.Occasion
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

var _ repository.OccasionRepository = (*OccasionRepository)(nil)

type OfferingRepository struct {
	pool *pgxpool.Pool
}

func NewOfferingRepository(pool *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{pool: pool}
}

func (r *OfferingRepository) GetByID(ctx context.Context, id string) (*entity.Offering, error) {
	o := &entity.Offering{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, short_description, long_description, created_at, updated_at
		FROM offerings WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.ShortDescription, &o.LongDescription, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OfferingRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.Offering, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE short_description ILIKE $1 OR long_description ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM offerings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id, short_description, long_description, created_at, updated_at
		FROM offerings `+where+`
		ORDER BY created_at DESC
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Offering
	for rows.Next() {
		var o entity.Offering
		if err := rows.Scan(&o.ID, &o.ShortDescription, &o.LongDescription, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

var _ repository.OfferingRepository = (*OfferingRepository)(nil)
