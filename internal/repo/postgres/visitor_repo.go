package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entryline/visitdesk/internal/domain"
)

type VisitorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Visitor, error)
	GetByDocument(ctx context.Context, documentNumber string) (*domain.Visitor, error)
}

type visitorRepository struct {
	pool *pgxpool.Pool
}

func NewVisitorRepository(pool *pgxpool.Pool) VisitorRepository {
	return &visitorRepository{pool: pool}
}

const visitorCols = `id, document_number, first_name, last_name, email, phone,
company, photo_path, id_photo_path, created_at, updated_at`

func scanVisitor(row pgx.Row) (*domain.Visitor, error) {
	var v domain.Visitor
	err := row.Scan(
		&v.ID, &v.DocumentNumber, &v.FirstName, &v.LastName, &v.Email, &v.Phone,
		&v.Company, &v.PhotoPath, &v.IDPhotoPath, &v.CreatedAt, &v.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *visitorRepository) GetByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	const q = `SELECT ` + visitorCols + ` FROM visitors WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisitor(r.pool.QueryRow(ctx, q, id))
}

func (r *visitorRepository) GetByDocument(ctx context.Context, documentNumber string) (*domain.Visitor, error) {
	const q = `SELECT ` + visitorCols + ` FROM visitors WHERE document_number=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanVisitor(r.pool.QueryRow(ctx, q, documentNumber))
}
