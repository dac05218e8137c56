package trial

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// HasPending reports whether userID already has a pending booking at gymID.
	HasPending(ctx context.Context, userID, gymID string) (bool, error)
	// CreatePending inserts b as pending. It fails with ErrGymNotFound or ErrDuplicatePending.
	CreatePending(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// UpdateStatus moves the booking from one status to another and fails with
	// ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"b.id", "b.user_id", "u.name", "b.gym_id", "g.name", "g.owner_id",
	"b.status", "b.scheduled_at", "b.created_at", "b.updated_at",
}

func selectBookings(extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(append([]string{}, bookingColumns...), extra...)...).
		From("public.trial_bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.gyms g ON b.gym_id = g.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var status string
	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.GymID, &b.GymName, &b.GymOwnerID,
		&status, &b.ScheduledAt, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Status = Status(status)
	return &b, nil
}

func pendingExists(userID, gymID string) (string, []any, error) {
	sql, args, err := psql.Select("1").
		From("public.trial_bookings").
		Where(squirrel.Eq{"user_id": userID, "gym_id": gymID, "status": string(StatusPending)}).
		ToSql()
	if err != nil {
		return "", nil, err
	}
	return "SELECT EXISTS (" + sql + ")", args, nil
}

func isPendingViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) HasPending(ctx context.Context, userID, gymID string) (bool, error) {
	query, args, err := pendingExists(userID, gymID)
	if err != nil {
		return false, fmt.Errorf("build pending check query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending booking failed: %w", err)
	}
	return exists, nil
}

// CreatePending locks the gym row so concurrent requests for the same gym
// serialize on the duplicate check. The partial unique index
// trial_bookings_one_pending_idx backs this up.
func (r *pgxRepository) CreatePending(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lockQuery, lockArgs, err := psql.Select("owner_id", "name").
		From("public.gyms").
		Where(squirrel.Eq{"id": b.GymID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock gym query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&b.GymOwnerID, &b.GymName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrGymNotFound
		}
		return fmt.Errorf("lock gym failed: %w", err)
	}

	existsQuery, existsArgs, err := pendingExists(b.UserID, b.GymID)
	if err != nil {
		return fmt.Errorf("build pending check query failed: %w", err)
	}
	var exists bool
	if err := tx.QueryRow(ctx, existsQuery, existsArgs...).Scan(&exists); err != nil {
		return fmt.Errorf("check pending booking failed: %w", err)
	}
	if exists {
		return ErrDuplicatePending
	}

	insertQuery, insertArgs, err := psql.Insert("public.trial_bookings").
		Columns("user_id", "gym_id", "status", "scheduled_at").
		Values(b.UserID, b.GymID, string(StatusPending), b.ScheduledAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, insertQuery, insertArgs...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isPendingViolation(err) {
			return ErrDuplicatePending
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isPendingViolation(err) {
			return ErrDuplicatePending
		}
		return fmt.Errorf("commit create booking failed: %w", err)
	}

	b.Status = StatusPending
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (*Booking, error) {
	query, args, err := psql.Update("public.trial_bookings").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either the booking vanished or another request changed it first.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	return r.GetByID(ctx, id)
}

func buildListQuery(filter Filter) squirrel.SelectBuilder {
	query := selectBookings("count(*) OVER() AS total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.GymID != "" {
		query = query.Where(squirrel.Eq{"b.gym_id": filter.GymID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": string(filter.Status)})
	}

	return query.OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Skip))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	sql, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}
