package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entryline/visitdesk/internal/domain"
)

type AccessLogRepository interface {
	// Append writes one immutable audit row. Rows are never updated
	// or deleted; they go away only when the visit itself is deleted
	// (FK cascade).
	Append(ctx context.Context, visitID int64, department string, granted bool, reason string) (*domain.AccessLogEntry, error)
	ListByVisit(ctx context.Context, visitID int64, limit, offset int) ([]domain.AccessLogEntry, error)
}

type accessLogRepository struct {
	pool *pgxpool.Pool
}

func NewAccessLogRepository(pool *pgxpool.Pool) AccessLogRepository {
	return &accessLogRepository{pool: pool}
}

const accessLogCols = `id, visit_id, department, access_time, access_granted, reason, created_at`

func (r *accessLogRepository) Append(ctx context.Context, visitID int64, department string, granted bool, reason string) (*domain.AccessLogEntry, error) {
	const q = `
		INSERT INTO access_logs (visit_id, department, access_time, access_granted, reason)
		VALUES ($1,$2,now(),$3,$4)
		RETURNING ` + accessLogCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var e domain.AccessLogEntry
	err := r.pool.QueryRow(ctx, q, visitID, department, granted, reason).Scan(
		&e.ID, &e.VisitID, &e.Department, &e.AccessTime, &e.AccessGranted, &e.Reason, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *accessLogRepository) ListByVisit(ctx context.Context, visitID int64, limit, offset int) ([]domain.AccessLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + accessLogCols + ` FROM access_logs
		WHERE visit_id=$1 ORDER BY access_time DESC, id DESC LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, visitID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AccessLogEntry
	for rows.Next() {
		var e domain.AccessLogEntry
		if err := rows.Scan(
			&e.ID, &e.VisitID, &e.Department, &e.AccessTime, &e.AccessGranted, &e.Reason, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
