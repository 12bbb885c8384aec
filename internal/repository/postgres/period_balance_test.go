package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestPeriodBalanceRepository_Upsert_KeyedOnPeriodEnd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPeriodBalanceRepository(db)
	balance := &domain.PeriodBalance{
		PeriodStartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEndDate:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		EndingCashOnHand:  42000,
		EndingBankDeposit: 310000,
		TotalIncome:       90000,
		TotalExpense:      65000,
		NetCashFlow:       25000,
	}

	mock.ExpectQuery(`INSERT INTO period_balances (.+) ON CONFLICT \(period_end_date\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err = repo.Upsert(context.Background(), balance)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), balance.ID)
	assert.False(t, balance.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodBalanceRepository_LastBefore_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPeriodBalanceRepository(db)
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM period_balances WHERE period_end_date < \$1`).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "period_start_date", "period_end_date", "ending_cash_on_hand",
			"ending_bank_deposit", "total_income", "total_expense", "net_cash_flow", "created_on",
		}))

	_, err = repo.LastBefore(context.Background(), date)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
