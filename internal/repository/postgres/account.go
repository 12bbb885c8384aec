package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type membershipPaymentRepository struct {
	db *sql.DB
}

func NewMembershipPaymentRepository(db *sql.DB) repository.MembershipPaymentRepository {
	return &membershipPaymentRepository{db: db}
}

func (r *membershipPaymentRepository) Insert(ctx context.Context, payment *domain.MembershipPayment) error {
	query := `INSERT INTO membership_payments (member_id, date, amount) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, payment.MemberID, payment.Date, payment.Amount).Scan(&payment.ID)
}

func (r *membershipPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.MembershipPayment, error) {
	var p domain.MembershipPayment
	query := `SELECT id, member_id, date, amount FROM membership_payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.MemberID, &p.Date, &p.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *membershipPaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM membership_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *membershipPaymentRepository) ListByMember(ctx context.Context, memberID int64) ([]domain.MembershipPayment, error) {
	query := `SELECT id, member_id, date, amount FROM membership_payments WHERE member_id = $1 ORDER BY date`
	return r.query(ctx, query, memberID)
}

func (r *membershipPaymentRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.MembershipPayment, error) {
	query := `SELECT id, member_id, date, amount FROM membership_payments WHERE date = $1 ORDER BY id`
	return r.query(ctx, query, date)
}

func (r *membershipPaymentRepository) query(ctx context.Context, query string, args ...any) ([]domain.MembershipPayment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.MembershipPayment
	for rows.Next() {
		var p domain.MembershipPayment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Date, &p.Amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *membershipPaymentRepository) SumForMemberYear(ctx context.Context, memberID int64, year int) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM membership_payments
	          WHERE member_id = $1 AND date >= $2 AND date < $3`
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	err := r.db.QueryRowContext(ctx, query, memberID, start, start.AddDate(1, 0, 0)).Scan(&total)
	return total, err
}

func (r *membershipPaymentRepository) SumByMemberForYear(ctx context.Context, year int) (map[int64]int64, error) {
	query := `SELECT member_id, COALESCE(SUM(amount), 0) FROM membership_payments
	          WHERE date >= $1 AND date < $2 GROUP BY member_id`
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := r.db.QueryContext(ctx, query, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var id, total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, err
		}
		totals[id] = total
	}
	return totals, rows.Err()
}

type finePaymentRepository struct {
	db *sql.DB
}

func NewFinePaymentRepository(db *sql.DB) repository.FinePaymentRepository {
	return &finePaymentRepository{db: db}
}

func (r *finePaymentRepository) Insert(ctx context.Context, payment *domain.FinePayment) error {
	query := `INSERT INTO fine_payments (member_id, date, amount) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, payment.MemberID, payment.Date, payment.Amount).Scan(&payment.ID)
}

func (r *finePaymentRepository) GetByID(ctx context.Context, id int64) (*domain.FinePayment, error) {
	var p domain.FinePayment
	query := `SELECT id, member_id, date, amount FROM fine_payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.MemberID, &p.Date, &p.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *finePaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fine_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *finePaymentRepository) ListByMember(ctx context.Context, memberID int64) ([]domain.FinePayment, error) {
	query := `SELECT id, member_id, date, amount FROM fine_payments WHERE member_id = $1 ORDER BY date`
	return r.query(ctx, query, memberID)
}

func (r *finePaymentRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.FinePayment, error) {
	query := `SELECT id, member_id, date, amount FROM fine_payments WHERE date = $1 ORDER BY id`
	return r.query(ctx, query, date)
}

func (r *finePaymentRepository) query(ctx context.Context, query string, args ...any) ([]domain.FinePayment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.FinePayment
	for rows.Next() {
		var p domain.FinePayment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Date, &p.Amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
