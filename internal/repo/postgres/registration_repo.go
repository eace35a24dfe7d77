package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entryline/visitdesk/internal/domain"
)

type RegistrationRepository interface {
	// RegisterVisit upserts the visitor by document number and creates
	// the active visit in one transaction. Re-registration of a known
	// document number refreshes only the photo references.
	RegisterVisit(ctx context.Context, req *domain.RegisterVisitReq, badgeToken string) (*domain.Visitor, *domain.Visit, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) RegisterVisit(ctx context.Context, req *domain.RegisterVisitReq, badgeToken string) (*domain.Visitor, *domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	visitor, err := upsertVisitor(ctx, tx, req)
	if err != nil {
		return nil, nil, err
	}

	const insertVisit = `
		INSERT INTO visits (
			visitor_id, host_name, department, purpose, status,
			access_areas, check_in_at, sticker_printed, badge_token
		) VALUES ($1,$2,$3,$4,'active',$5,now(),false,$6)
		RETURNING ` + visitCols

	areas := req.AccessAreas
	if areas == nil {
		areas = []string{}
	}
	visit, err := scanVisit(tx.QueryRow(ctx, insertVisit,
		visitor.ID, req.HostName, req.Department, req.Purpose, areas, badgeToken,
	))
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return visitor, visit, nil
}

func upsertVisitor(ctx context.Context, tx pgx.Tx, req *domain.RegisterVisitReq) (*domain.Visitor, error) {
	const lookup = `SELECT ` + visitorCols + ` FROM visitors WHERE document_number=$1 FOR UPDATE`

	existing, err := scanVisitor(tx.QueryRow(ctx, lookup, req.DocumentNumber))
	if err != nil {
		return nil, err
	}

	if existing == nil {
		const insert = `
			INSERT INTO visitors (
				document_number, first_name, last_name, email, phone,
				company, photo_path, id_photo_path
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING ` + visitorCols

		return scanVisitor(tx.QueryRow(ctx, insert,
			req.DocumentNumber, req.FirstName, req.LastName, req.Email, req.Phone,
			req.Company, req.PhotoPath, req.IDPhotoPath,
		))
	}

	// Known visitor: overwrite the photo references only.
	const update = `
		UPDATE visitors
		SET photo_path=$2, id_photo_path=$3, updated_at=now()
		WHERE id=$1
		RETURNING ` + visitorCols

	return scanVisitor(tx.QueryRow(ctx, update, existing.ID, req.PhotoPath, req.IDPhotoPath))
}
