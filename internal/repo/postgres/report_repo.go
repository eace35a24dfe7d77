package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entryline/visitdesk/internal/domain"
)

type ReportRepository interface {
	Daily(ctx context.Context, days int) ([]domain.DailyReportRow, error)
	Weekly(ctx context.Context, weeks int) ([]domain.WeeklyReportRow, error)
	AccessSummary(ctx context.Context, from, to time.Time) ([]domain.AccessSummaryRow, error)
	FrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitorRow, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Daily(ctx context.Context, days int) ([]domain.DailyReportRow, error) {
	const q = `
		SELECT date_trunc('day', check_in_at) AS day,
		       count(*) AS total_visits,
		       count(*) FILTER (WHERE status='active') AS active_visits,
		       count(DISTINCT visitor_id) AS unique_visitors
		FROM visits
		WHERE check_in_at >= now() - make_interval(days => $1)
		GROUP BY 1
		ORDER BY 1 DESC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyReportRow
	for rows.Next() {
		var row domain.DailyReportRow
		if err := rows.Scan(&row.Day, &row.TotalVisits, &row.ActiveVisits, &row.UniqueVisitors); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *reportRepository) Weekly(ctx context.Context, weeks int) ([]domain.WeeklyReportRow, error) {
	const q = `
		SELECT date_trunc('week', check_in_at) AS week_start,
		       count(*) AS total_visits,
		       coalesce(avg(extract(epoch FROM (check_out_at - check_in_at))) FILTER (WHERE check_out_at IS NOT NULL), 0) AS avg_duration
		FROM visits
		WHERE check_in_at >= now() - make_interval(weeks => $1)
		GROUP BY 1
		ORDER BY 1 DESC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, weeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeeklyReportRow
	for rows.Next() {
		var row domain.WeeklyReportRow
		if err := rows.Scan(&row.WeekStart, &row.TotalVisits, &row.AvgDuration); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *reportRepository) AccessSummary(ctx context.Context, from, to time.Time) ([]domain.AccessSummaryRow, error) {
	const q = `
		SELECT department,
		       count(*) FILTER (WHERE access_granted) AS granted,
		       count(*) FILTER (WHERE NOT access_granted) AS denied
		FROM access_logs
		WHERE access_time >= $1 AND access_time < $2
		GROUP BY department
		ORDER BY granted + denied DESC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AccessSummaryRow
	for rows.Next() {
		var row domain.AccessSummaryRow
		if err := rows.Scan(&row.Department, &row.Granted, &row.Denied); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *reportRepository) FrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitorRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	const q = `
		SELECT v.id, v.document_number,
		       trim(v.first_name || ' ' || v.last_name) AS full_name,
		       v.company,
		       count(vi.id) AS visit_count,
		       max(vi.check_in_at) AS last_visit_at
		FROM visitors v
		JOIN visits vi ON vi.visitor_id = v.id
		GROUP BY v.id, v.document_number, v.first_name, v.last_name, v.company
		ORDER BY visit_count DESC, last_visit_at DESC
		LIMIT $1`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FrequentVisitorRow
	for rows.Next() {
		var row domain.FrequentVisitorRow
		if err := rows.Scan(&row.VisitorID, &row.DocumentNumber, &row.FullName, &row.Company, &row.VisitCount, &row.LastVisitAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
