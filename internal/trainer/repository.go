package trainer

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Trainer) error
	ListByGym(ctx context.Context, gymID string) ([]*Trainer, error)
	// Delete removes the trainer only when it belongs to gymID.
	Delete(ctx context.Context, gymID, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, t *Trainer) error {
	query, args, err := psql.Insert("public.trainers").
		Columns("gym_id", "name", "specialty", "fee").
		Values(t.GymID, t.Name, t.Specialty, t.Fee).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create trainer query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("create trainer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByGym(ctx context.Context, gymID string) ([]*Trainer, error) {
	query, args, err := psql.Select("id", "gym_id", "name", "specialty", "fee", "created_at").
		From("public.trainers").
		Where(squirrel.Eq{"gym_id": gymID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list trainers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trainers failed: %w", err)
	}
	defer rows.Close()

	trainers := []*Trainer{}
	for rows.Next() {
		var t Trainer
		if err := rows.Scan(&t.ID, &t.GymID, &t.Name, &t.Specialty, &t.Fee, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trainer failed: %w", err)
		}
		trainers = append(trainers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trainers failed: %w", err)
	}
	return trainers, nil
}

func (r *pgxRepository) Delete(ctx context.Context, gymID, id string) error {
	query, args, err := psql.Delete("public.trainers").
		Where(squirrel.Eq{"id": id, "gym_id": gymID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete trainer query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete trainer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
