package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, loan_number, member_id, principal, remaining_amount,
	loan_date, guarantor1_id, guarantor2_id, created_on`

func scanLoan(row interface{ Scan(...any) error }) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.ID, &l.LoanNumber, &l.MemberID, &l.Principal, &l.RemainingAmount,
		&l.LoanDate, &l.Guarantor1ID, &l.Guarantor2ID, &l.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `INSERT INTO loans (loan_number, member_id, principal, remaining_amount,
	          loan_date, guarantor1_id, guarantor2_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, loan.LoanNumber, loan.MemberID, loan.Principal,
		loan.RemainingAmount, loan.LoanDate, loan.Guarantor1ID, loan.Guarantor2ID, loan.CreatedOn).
		Scan(&loan.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrDuplicateLoan
	}
	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoan(r.db.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) GetByLoanNumber(ctx context.Context, loanNumber int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_number = $1`
	return scanLoan(r.db.QueryRowContext(ctx, query, loanNumber))
}

func (r *loanRepository) LatestByMember(ctx context.Context, memberID int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 ORDER BY loan_date DESC LIMIT 1`
	return scanLoan(r.db.QueryRowContext(ctx, query, memberID))
}

func (r *loanRepository) ActiveByMember(ctx context.Context, memberID int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE member_id = $1 AND remaining_amount > 0 ORDER BY loan_date DESC LIMIT 1`
	return scanLoan(r.db.QueryRowContext(ctx, query, memberID))
}

func (r *loanRepository) ListActive(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE remaining_amount > 0 ORDER BY loan_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) NextLoanNumber(ctx context.Context) (int32, error) {
	var next int32
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(loan_number), 0) + 1 FROM loans`).Scan(&next)
	return next, err
}

func (r *loanRepository) CountActiveByGuarantor(ctx context.Context, memberID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM loans
	          WHERE (guarantor1_id = $1 OR guarantor2_id = $1) AND remaining_amount > 0`
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	return count, err
}

// DecrementRemaining applies a principal payment with the remaining
// balance as part of the filter, so two concurrent payments cannot both
// succeed past the balance. Zero rows affected means the payment would
// overdraw the loan.
func (r *loanRepository) DecrementRemaining(ctx context.Context, loanID int64, amount int64) error {
	query := `UPDATE loans SET remaining_amount = remaining_amount - $1
	          WHERE id = $2 AND remaining_amount >= $1`
	res, err := r.db.ExecContext(ctx, query, amount, loanID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrOverpayment
	}
	return nil
}

func (r *loanRepository) IncrementRemaining(ctx context.Context, loanID int64, amount int64) error {
	query := `UPDATE loans SET remaining_amount = remaining_amount + $1
	          WHERE id = $2 AND remaining_amount + $1 <= principal`
	res, err := r.db.ExecContext(ctx, query, amount, loanID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
