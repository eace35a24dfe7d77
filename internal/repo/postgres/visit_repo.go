package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entryline/visitdesk/internal/domain"
)

type VisitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Visit, error)
	GetByBadgeToken(ctx context.Context, token string) (*domain.Visit, error)
	List(ctx context.Context, limit, offset int, status *domain.VisitStatus) ([]domain.Visit, error)
	// CheckOut performs the one-shot active -> completed transition.
	// Returns nil when the visit is missing or no longer active; the
	// row predicate resolves concurrent checkouts at the database.
	CheckOut(ctx context.Context, id int64) (*domain.Visit, error)
	SetStickerPrinted(ctx context.Context, id int64, printed bool) (*domain.Visit, error)
}

type visitRepository struct {
	pool *pgxpool.Pool
}

func NewVisitRepository(pool *pgxpool.Pool) VisitRepository {
	return &visitRepository{pool: pool}
}

const visitCols = `id, visitor_id, host_name, department, purpose, status,
access_areas, check_in_at, check_out_at, sticker_printed, badge_token,
created_at, updated_at`

func scanVisit(row pgx.Row) (*domain.Visit, error) {
	var v domain.Visit
	err := row.Scan(
		&v.ID, &v.VisitorID, &v.HostName, &v.Department, &v.Purpose, &v.Status,
		&v.AccessAreas, &v.CheckInAt, &v.CheckOutAt, &v.StickerPrinted, &v.BadgeToken,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *visitRepository) GetByID(ctx context.Context, id int64) (*domain.Visit, error) {
	const q = `SELECT ` + visitCols + ` FROM visits WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisit(r.pool.QueryRow(ctx, q, id))
}

func (r *visitRepository) GetByBadgeToken(ctx context.Context, token string) (*domain.Visit, error) {
	const q = `SELECT ` + visitCols + ` FROM visits WHERE badge_token=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisit(r.pool.QueryRow(ctx, q, token))
}

func (r *visitRepository) List(ctx context.Context, limit, offset int, status *domain.VisitStatus) ([]domain.Visit, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + visitCols + ` FROM visits`
	args := []any{}
	if status != nil {
		q += ` WHERE status=$1 ORDER BY check_in_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *status, limit, offset)
	} else {
		q += ` ORDER BY check_in_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(
			&v.ID, &v.VisitorID, &v.HostName, &v.Department, &v.Purpose, &v.Status,
			&v.AccessAreas, &v.CheckInAt, &v.CheckOutAt, &v.StickerPrinted, &v.BadgeToken,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *visitRepository) CheckOut(ctx context.Context, id int64) (*domain.Visit, error) {
	const q = `
		UPDATE visits
		SET status='completed', check_out_at=now(), updated_at=now()
		WHERE id=$1 AND status='active'
		RETURNING ` + visitCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisit(r.pool.QueryRow(ctx, q, id))
}

func (r *visitRepository) SetStickerPrinted(ctx context.Context, id int64, printed bool) (*domain.Visit, error) {
	const q = `
		UPDATE visits
		SET sticker_printed=$2, updated_at=now()
		WHERE id=$1
		RETURNING ` + visitCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisit(r.pool.QueryRow(ctx, q, id, printed))
}
