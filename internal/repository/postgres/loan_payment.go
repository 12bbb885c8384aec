package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

// The three payment ledgers are separate append-only tables with the
// same shape. One payment event writes one row to each, all sharing a
// group id, so update and delete work on an exact key instead of a
// date heuristic.
var paymentTables = []string{
	"loan_principal_payments",
	"loan_interest_payments",
	"loan_penalty_payments",
}

type loanPaymentRepository struct {
	db *sql.DB
}

func NewLoanPaymentRepository(db *sql.DB) repository.LoanPaymentRepository {
	return &loanPaymentRepository{db: db}
}

func (r *loanPaymentRepository) InsertGroup(ctx context.Context, group *domain.PaymentGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	amounts := []int64{group.Principal, group.Interest, group.PenaltyInterest}
	for i, table := range paymentTables {
		query := `INSERT INTO ` + table + ` (loan_id, group_id, date, amount) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, group.LoanID, group.GroupID, group.Date, amounts[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *loanPaymentRepository) GetGroup(ctx context.Context, groupID string) (*domain.PaymentGroup, error) {
	group := &domain.PaymentGroup{GroupID: groupID}
	found := false

	dests := []*int64{&group.Principal, &group.Interest, &group.PenaltyInterest}
	for i, table := range paymentTables {
		query := `SELECT loan_id, date, amount FROM ` + table + ` WHERE group_id = $1`
		err := r.db.QueryRowContext(ctx, query, groupID).Scan(&group.LoanID, &group.Date, dests[i])
		if errors.Is(err, sql.ErrNoRows) {
			// Orphaned sibling: tolerated, amount stays zero.
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
	}

	if !found {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

func (r *loanPaymentRepository) UpdateGroup(ctx context.Context, group *domain.PaymentGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	amounts := []int64{group.Principal, group.Interest, group.PenaltyInterest}
	for i, table := range paymentTables {
		// Missing siblings are a no-op for that ledger.
		query := `UPDATE ` + table + ` SET amount = $1, date = $2 WHERE group_id = $3`
		if _, err := tx.ExecContext(ctx, query, amounts[i], group.Date, group.GroupID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *loanPaymentRepository) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range paymentTables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE group_id = $1`, groupID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *loanPaymentRepository) ListByLoan(ctx context.Context, loanID int64) ([]domain.PaymentGroup, error) {
	query := `
		SELECT group_id, date,
		       COALESCE(SUM(principal), 0), COALESCE(SUM(interest), 0), COALESCE(SUM(penalty), 0)
		FROM (
			SELECT group_id, date, amount AS principal, 0 AS interest, 0 AS penalty
			FROM loan_principal_payments WHERE loan_id = $1
			UNION ALL
			SELECT group_id, date, 0, amount, 0
			FROM loan_interest_payments WHERE loan_id = $1
			UNION ALL
			SELECT group_id, date, 0, 0, amount
			FROM loan_penalty_payments WHERE loan_id = $1
		) payments
		GROUP BY group_id, date
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.PaymentGroup
	for rows.Next() {
		g := domain.PaymentGroup{LoanID: loanID}
		if err := rows.Scan(&g.GroupID, &g.Date, &g.Principal, &g.Interest, &g.PenaltyInterest); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *loanPaymentRepository) CountByLoan(ctx context.Context, loanID int64) (int, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM loan_principal_payments WHERE loan_id = $1) +
		(SELECT COUNT(*) FROM loan_interest_payments WHERE loan_id = $1) +
		(SELECT COUNT(*) FROM loan_penalty_payments WHERE loan_id = $1)`
	var count int
	err := r.db.QueryRowContext(ctx, query, loanID).Scan(&count)
	return count, err
}

func (r *loanPaymentRepository) LastInterestPaymentDate(ctx context.Context, loanID int64) (time.Time, error) {
	var date sql.NullTime
	query := `SELECT MAX(date) FROM loan_interest_payments WHERE loan_id = $1 AND amount > 0`
	if err := r.db.QueryRowContext(ctx, query, loanID).Scan(&date); err != nil {
		return time.Time{}, err
	}
	if !date.Valid {
		return time.Time{}, nil
	}
	return date.Time, nil
}
