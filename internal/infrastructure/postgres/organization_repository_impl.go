package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/domain/repository"
)

type OrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *entity.Organization) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO organizations (name, industry, company_size, website)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.Name, o.Industry, o.CompanySize, o.Website)
	return row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	o := &entity.Organization{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, industry, company_size, website, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.Name, &o.Industry, &o.CompanySize, &o.Website,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o *entity.Organization) error {
	o.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE organizations
		SET name = $1, industry = $2, company_size = $3, website = $4, updated_at = $5
		WHERE id = $6
	`, o.Name, o.Industry, o.CompanySize, o.Website, o.UpdatedAt, o.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrganizationRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.Organization, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE $1 OR industry ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM organizations `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, industry, company_size, website, created_at, updated_at
		FROM organizations `+where+`
		ORDER BY created_at DESC
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Industry, &o.CompanySize, &o.Website,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

var _ repository.OrganizationRepository = (*OrganizationRepository)(nil)
