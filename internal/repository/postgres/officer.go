package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type officerRepository struct {
	db *sql.DB
}

func NewOfficerRepository(db *sql.DB) repository.OfficerRepository {
	return &officerRepository{db: db}
}

const officerColumns = `id, member_id, member_no, name, password_hash, roles, area, created_on, deactivated_at`

func scanOfficer(row interface{ Scan(...any) error }) (*domain.Officer, error) {
	var o domain.Officer
	var roles pq.StringArray
	err := row.Scan(&o.ID, &o.MemberID, &o.MemberNo, &o.Name, &o.PasswordHash,
		&roles, &o.Area, &o.CreatedOn, &o.DeactivatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Roles = roles
	return &o, nil
}

func (r *officerRepository) Create(ctx context.Context, officer *domain.Officer) error {
	query := `INSERT INTO officers (member_id, member_no, name, password_hash, roles, area, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if officer.CreatedOn.IsZero() {
		officer.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, officer.MemberID, officer.MemberNo, officer.Name,
		officer.PasswordHash, pq.Array(officer.Roles), officer.Area, officer.CreatedOn).
		Scan(&officer.ID)
}

func (r *officerRepository) GetByID(ctx context.Context, id int64) (*domain.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM officers WHERE id = $1`
	return scanOfficer(r.db.QueryRowContext(ctx, query, id))
}

func (r *officerRepository) GetByMemberNo(ctx context.Context, memberNo int32) (*domain.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM officers WHERE member_no = $1`
	return scanOfficer(r.db.QueryRowContext(ctx, query, memberNo))
}

func (r *officerRepository) List(ctx context.Context) ([]domain.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM officers ORDER BY member_no`
	return r.queryOfficers(ctx, query)
}

func (r *officerRepository) ListByRole(ctx context.Context, role string) ([]domain.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM officers
	          WHERE $1 = ANY(roles) AND deactivated_at IS NULL ORDER BY member_no`
	return r.queryOfficers(ctx, query, role)
}

func (r *officerRepository) queryOfficers(ctx context.Context, query string, args ...any) ([]domain.Officer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var officers []domain.Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, err
		}
		officers = append(officers, *o)
	}
	return officers, rows.Err()
}

func (r *officerRepository) Update(ctx context.Context, officer *domain.Officer) error {
	query := `UPDATE officers SET name = $1, roles = $2, area = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, officer.Name, pq.Array(officer.Roles), officer.Area, officer.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *officerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE officers SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *officerRepository) SetDeactivated(ctx context.Context, id int64, deactivated bool) error {
	var query string
	if deactivated {
		query = `UPDATE officers SET deactivated_at = NOW() WHERE id = $1`
	} else {
		query = `UPDATE officers SET deactivated_at = NULL WHERE id = $1`
	}
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *officerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM officers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
