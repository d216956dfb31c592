package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/internal/domain/repository"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `id, title, short_description, long_description, category,
	location, city, state, price, min_participants, max_participants,
	min_duration, max_duration, preferred_duration, thumbnail_url,
	images, host, itinerary, free_cancellation, rating, review_count,
	created_at, updated_at`

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	a := &entity.Activity{}
	var images, host, itinerary []byte
	if err := row.Scan(&a.ID, &a.Title, &a.ShortDescription, &a.LongDescription,
		&a.Category, &a.Location, &a.City, &a.State, &a.Price,
		&a.MinParticipants, &a.MaxParticipants, &a.MinDuration, &a.MaxDuration,
		&a.PreferredDuration, &a.ThumbnailURL, &images, &host, &itinerary,
		&a.FreeCancellation, &a.Rating, &a.ReviewCount,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(images) > 0 {
		_ = json.Unmarshal(images, &a.Images)
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	if len(host) > 0 {
		_ = json.Unmarshal(host, &a.Host)
	}
	if len(itinerary) > 0 {
		_ = json.Unmarshal(itinerary, &a.Itinerary)
	}
	return a, nil
}

func activityJSONCols(a *entity.Activity) (images, host, itinerary []byte) {
	if a.Images == nil {
		a.Images = []string{}
	}
	images, _ = json.Marshal(a.Images)
	if a.Host != nil {
		host, _ = json.Marshal(a.Host)
	}
	if a.Itinerary != nil {
		itinerary, _ = json.Marshal(a.Itinerary)
	}
	return images, host, itinerary
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	images, host, itinerary := activityJSONCols(a)
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO activities (title, short_description, long_description, category,
			location, city, state, price, min_participants, max_participants,
			min_duration, max_duration, preferred_duration, thumbnail_url,
			images, host, itinerary, free_cancellation, rating, review_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id, created_at, updated_at
	`, a.Title, a.ShortDescription, a.LongDescription, a.Category,
		a.Location, a.City, a.State, a.Price, a.MinParticipants, a.MaxParticipants,
		a.MinDuration, a.MaxDuration, a.PreferredDuration, a.ThumbnailURL,
		images, host, itinerary, a.FreeCancellation, a.Rating, a.ReviewCount)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	if err := replaceLinks(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func replaceLinks(ctx context.Context, tx pgx.Tx, a *entity.Activity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM activity_offerings WHERE activity_id = $1`, a.ID); err != nil {
		return err
	}
	for _, l := range a.Offerings {
		if _, err := tx.Exec(ctx, `
			INSERT INTO activity_offerings (activity_id, offering_id, is_required)
			VALUES ($1, $2, $3)
		`, a.ID, l.OfferingID, l.IsRequired); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM activity_pre_requisites WHERE activity_id = $1`, a.ID); err != nil {
		return err
	}
	for _, l := range a.PreRequisites {
		if _, err := tx.Exec(ctx, `
			INSERT INTO activity_pre_requisites (activity_id, pre_requisite_id)
			VALUES ($1, $2)
		`, a.ID, l.PreRequisiteID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := scanActivity(r.pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLinks(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ActivityRepository) loadLinks(ctx context.Context, a *entity.Activity) error {
	rows, err := r.pool.Query(ctx, `
		SELECT offering_id, is_required FROM activity_offerings WHERE activity_id = $1
	`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OfferingLink
		if err := rows.Scan(&l.OfferingID, &l.IsRequired); err != nil {
			return err
		}
		a.Offerings = append(a.Offerings, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := r.pool.Query(ctx, `
		SELECT pre_requisite_id FROM activity_pre_requisites WHERE activity_id = $1
	`, a.ID)
	if err != nil {
		return err
	}
	defer prows.Close()
	for prows.Next() {
		var l entity.PreRequisiteLink
		if err := prows.Scan(&l.PreRequisiteID); err != nil {
			return err
		}
		a.PreRequisites = append(a.PreRequisites, l)
	}
	return prows.Err()
}

func (r *ActivityRepository) Update(ctx context.Context, a *entity.Activity) error {
	a.UpdatedAt = time.Now().UTC()
	images, host, itinerary := activityJSONCols(a)
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE activities
		SET title = $1, short_description = $2, long_description = $3, category = $4,
			location = $5, city = $6, state = $7, price = $8,
			min_participants = $9, max_participants = $10, min_duration = $11,
			max_duration = $12, preferred_duration = $13, thumbnail_url = $14,
			images = $15, host = $16, itinerary = $17, free_cancellation = $18,
			rating = $19, review_count = $20, updated_at = $21
		WHERE id = $22
	`, a.Title, a.ShortDescription, a.LongDescription, a.Category,
		a.Location, a.City, a.State, a.Price, a.MinParticipants, a.MaxParticipants,
		a.MinDuration, a.MaxDuration, a.PreferredDuration, a.ThumbnailURL,
		images, host, itinerary, a.FreeCancellation, a.Rating, a.ReviewCount,
		a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := replaceLinks(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// buildActivityWhere translates an ActivityFilter into a WHERE clause with
// positional args starting at $1.
func buildActivityWhere(f entity.ActivityFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + itoa(len(args))
	}

	if f.Search != "" {
		p := next("%" + f.Search + "%")
		conds = append(conds, "(title ILIKE "+p+" OR short_description ILIKE "+p+" OR long_description ILIKE "+p+")")
	}
	if f.Category != "" {
		conds = append(conds, "category ILIKE "+next("%"+f.Category+"%"))
	}
	if f.Location != "" {
		p := next("%" + f.Location + "%")
		conds = append(conds, "(city ILIKE "+p+" OR state ILIKE "+p+" OR location ILIKE "+p+")")
	}
	if f.City != "" {
		conds = append(conds, "city ILIKE "+next("%"+f.City+"%"))
	}
	if f.State != "" {
		conds = append(conds, "state ILIKE "+next("%"+f.State+"%"))
	}
	if f.MinPrice > 0 {
		conds = append(conds, "price >= "+next(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "price <= "+next(f.MaxPrice))
	}
	if f.Participants > 0 {
		p := next(f.Participants)
		conds = append(conds, "(min_participants <= "+p+" AND max_participants >= "+p+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *ActivityRepository) List(ctx context.Context, f entity.ActivityFilter) ([]entity.Activity, int, error) {
	where, args := buildActivityWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM activities `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, f.Offset)
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+` FROM activities `+where+`
		ORDER BY created_at DESC
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *ActivityRepository) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE activities SET embedding = $1 WHERE id = $2
	`, pgvector.NewVector(embedding), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ActivityRepository) SearchByEmbedding(ctx context.Context, embedding []float32, f entity.ActivityFilter) ([]entity.Activity, error) {
	where, args := buildActivityWhere(f)
	if where == "" {
		where = "WHERE embedding IS NOT NULL"
	} else {
		where += " AND embedding IS NOT NULL"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, pgvector.NewVector(embedding), limit)
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+` FROM activities `+where+`
		ORDER BY embedding <=> $`+itoa(len(args)-1)+`
		LIMIT $`+itoa(len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *ActivityRepository) ExpandOfferings(ctx context.Context, a *entity.Activity) error {
	if len(a.Offerings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(a.Offerings))
	for _, l := range a.Offerings {
		ids = append(ids, l.OfferingID)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, short_description, long_description FROM offerings WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	details := map[string][2]string{}
	for rows.Next() {
		var id, short, long string
		if err := rows.Scan(&id, &short, &long); err != nil {
			return err
		}
		details[id] = [2]string{short, long}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range a.Offerings {
		if d, ok := details[a.Offerings[i].OfferingID]; ok {
			a.Offerings[i].ShortDescription = d[0]
			a.Offerings[i].LongDescription = d[1]
		}
	}
	return nil
}

func (r *ActivityRepository) ExpandPreRequisites(ctx context.Context, a *entity.Activity) error {
	if len(a.PreRequisites) == 0 {
		return nil
	}
	ids := make([]string, 0, len(a.PreRequisites))
	for _, l := range a.PreRequisites {
		ids = append(ids, l.PreRequisiteID)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, additional_info FROM pre_requisites WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	type detail struct{ name, desc, info string }
	details := map[string]detail{}
	for rows.Next() {
		var id string
		var d detail
		if err := rows.Scan(&id, &d.name, &d.desc, &d.info); err != nil {
			return err
		}
		details[id] = d
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range a.PreRequisites {
		if d, ok := details[a.PreRequisites[i].PreRequisiteID]; ok {
			a.PreRequisites[i].Name = d.name
			a.PreRequisites[i].Description = d.desc
			a.PreRequisites[i].AdditionalInfo = d.info
		}
	}
	return nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
