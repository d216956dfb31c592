package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, role,
	organization_id, has_completed_onboarding, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var orgID sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName,
		&u.LastName, &u.Role, &orgID, &u.HasCompletedOnboarding,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.OrganizationID = orgID.String
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Role)
	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	var orgID any
	if u.OrganizationID != "" {
		orgID = u.OrganizationID
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, first_name = $4,
			last_name = $5, role = $6, organization_id = $7,
			has_completed_onboarding = $8, updated_at = $9
		WHERE id = $10
	`, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Role,
		orgID, u.HasCompletedOnboarding, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
