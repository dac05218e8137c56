package gym

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for gyms.
type Repository interface {
	Create(ctx context.Context, g *Gym) error
	GetByID(ctx context.Context, id string) (*Gym, error)
	List(ctx context.Context, filter Filter) ([]*Gym, int, error)
	Update(ctx context.Context, g *Gym) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id string, fileID *string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var gymColumns = []string{
	"g.id", "g.owner_id", "u.name", "g.name", "g.address", "g.subscription_fee", "g.trial_available",
	"g.description", "g.latitude", "g.longitude", "g.cover_file_id", "g.created_at", "g.updated_at",
}

func selectGyms(extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(append([]string{}, gymColumns...), extra...)...).
		From("public.gyms g").
		Join("public.users u ON g.owner_id = u.id")
}

func scanGym(row pgx.Row, extra ...any) (*Gym, error) {
	var g Gym
	dest := []any{
		&g.ID, &g.OwnerID, &g.OwnerName, &g.Name, &g.Address, &g.SubscriptionFee, &g.TrialAvailable,
		&g.Description, &g.Latitude, &g.Longitude, &g.CoverFileID, &g.CreatedAt, &g.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &g, nil
}

// escapeLike makes user input literal inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildListQuery applies every filter before the window so that each page only
// ever contains matching gyms. Ordering by (created_at, id) keeps windows stable.
func buildListQuery(filter Filter) squirrel.SelectBuilder {
	query := selectGyms("count(*) OVER() AS total_count")

	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where(squirrel.ILike{"g.address": "%" + escapeLike(loc) + "%"})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.Expr("g.subscription_fee >= ?::numeric", *filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.Expr("g.subscription_fee <= ?::numeric", *filter.MaxPrice))
	}
	if filter.HasTrial != nil {
		query = query.Where(squirrel.Eq{"g.trial_available": *filter.HasTrial})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"g.owner_id": filter.OwnerID})
	}

	return query.OrderBy("g.created_at ASC", "g.id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Skip))
}

func (r *pgxRepository) Create(ctx context.Context, g *Gym) error {
	query, args, err := psql.Insert("public.gyms").
		Columns(
			"owner_id", "name", "address", "subscription_fee", "trial_available",
			"description", "latitude", "longitude",
		).
		Values(
			g.OwnerID, g.Name, g.Address, g.SubscriptionFee, g.TrialAvailable,
			g.Description, g.Latitude, g.Longitude,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create gym query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("create gym failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Gym, error) {
	query, args, err := selectGyms().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get gym query failed: %w", err)
	}

	g, err := scanGym(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get gym failed: %w", err)
	}
	return g, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Gym, int, error) {
	sql, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list gyms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list gyms failed: %w", err)
	}
	defer rows.Close()

	var gyms []*Gym
	var total int
	for rows.Next() {
		g, err := scanGym(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan gym failed: %w", err)
		}
		gyms = append(gyms, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate gyms failed: %w", err)
	}

	return gyms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, g *Gym) error {
	query, args, err := psql.Update("public.gyms").
		Set("name", g.Name).
		Set("address", g.Address).
		Set("subscription_fee", g.SubscriptionFee).
		Set("trial_available", g.TrialAvailable).
		Set("description", g.Description).
		Set("latitude", g.Latitude).
		Set("longitude", g.Longitude).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update gym query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update gym failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.gyms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete gym query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete gym failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetCover(ctx context.Context, id string, fileID *string) error {
	query, args, err := psql.Update("public.gyms").
		Set("cover_file_id", fileID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set gym cover query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set gym cover failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
