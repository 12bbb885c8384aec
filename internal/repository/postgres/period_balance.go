package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type periodBalanceRepository struct {
	db *sql.DB
}

func NewPeriodBalanceRepository(db *sql.DB) repository.PeriodBalanceRepository {
	return &periodBalanceRepository{db: db}
}

const periodBalanceColumns = `id, period_start_date, period_end_date, ending_cash_on_hand,
	ending_bank_deposit, total_income, total_expense, net_cash_flow, created_on`

func (r *periodBalanceRepository) Upsert(ctx context.Context, balance *domain.PeriodBalance) error {
	query := `INSERT INTO period_balances (period_start_date, period_end_date, ending_cash_on_hand,
	          ending_bank_deposit, total_income, total_expense, net_cash_flow, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (period_end_date) DO UPDATE SET
	              period_start_date = EXCLUDED.period_start_date,
	              ending_cash_on_hand = EXCLUDED.ending_cash_on_hand,
	              ending_bank_deposit = EXCLUDED.ending_bank_deposit,
	              total_income = EXCLUDED.total_income,
	              total_expense = EXCLUDED.total_expense,
	              net_cash_flow = EXCLUDED.net_cash_flow
	          RETURNING id`
	if balance.CreatedOn.IsZero() {
		balance.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, balance.PeriodStartDate, balance.PeriodEndDate,
		balance.EndingCashOnHand, balance.EndingBankDeposit, balance.TotalIncome,
		balance.TotalExpense, balance.NetCashFlow, balance.CreatedOn).
		Scan(&balance.ID)
}

func (r *periodBalanceRepository) LastBefore(ctx context.Context, date time.Time) (*domain.PeriodBalance, error) {
	var b domain.PeriodBalance
	query := `SELECT ` + periodBalanceColumns + ` FROM period_balances
	          WHERE period_end_date < $1 ORDER BY period_end_date DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, date).
		Scan(&b.ID, &b.PeriodStartDate, &b.PeriodEndDate, &b.EndingCashOnHand,
			&b.EndingBankDeposit, &b.TotalIncome, &b.TotalExpense, &b.NetCashFlow, &b.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *periodBalanceRepository) List(ctx context.Context, limit int32) ([]domain.PeriodBalance, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + periodBalanceColumns + ` FROM period_balances
	          ORDER BY period_end_date DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []domain.PeriodBalance
	for rows.Next() {
		var b domain.PeriodBalance
		if err := rows.Scan(&b.ID, &b.PeriodStartDate, &b.PeriodEndDate, &b.EndingCashOnHand,
			&b.EndingBankDeposit, &b.TotalIncome, &b.TotalExpense, &b.NetCashFlow, &b.CreatedOn); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
