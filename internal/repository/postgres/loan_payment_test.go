package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestLoanPaymentRepository_InsertGroup_WritesAllThreeLedgers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanPaymentRepository(db)
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	group := &domain.PaymentGroup{
		GroupID:         "g-1",
		LoanID:          5,
		Date:            date,
		Principal:       1000,
		Interest:        300,
		PenaltyInterest: 0,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO loan_principal_payments").
		WithArgs(int64(5), "g-1", date, int64(1000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO loan_interest_payments").
		WithArgs(int64(5), "g-1", date, int64(300)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	// A zero amount still gets its ledger row.
	mock.ExpectExec("INSERT INTO loan_penalty_payments").
		WithArgs(int64(5), "g-1", date, int64(0)).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	err = repo.InsertGroup(context.Background(), group)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanPaymentRepository_DeleteGroup_RemovesAllSiblings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM loan_principal_payments").
		WithArgs("g-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM loan_interest_payments").
		WithArgs("g-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM loan_penalty_payments").
		WithArgs("g-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.DeleteGroup(context.Background(), "g-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanPaymentRepository_GetGroup_ToleratesOrphanedSiblings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanPaymentRepository(db)
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT loan_id, date, amount FROM loan_principal_payments").
		WithArgs("g-2").
		WillReturnRows(sqlmock.NewRows([]string{"loan_id", "date", "amount"}).AddRow(5, date, 1000))
	mock.ExpectQuery("SELECT loan_id, date, amount FROM loan_interest_payments").
		WithArgs("g-2").
		WillReturnRows(sqlmock.NewRows([]string{"loan_id", "date", "amount"}))
	mock.ExpectQuery("SELECT loan_id, date, amount FROM loan_penalty_payments").
		WithArgs("g-2").
		WillReturnRows(sqlmock.NewRows([]string{"loan_id", "date", "amount"}))

	group, err := repo.GetGroup(context.Background(), "g-2")
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), group.Principal)
	assert.Equal(t, int64(0), group.Interest)
	assert.Equal(t, int64(0), group.PenaltyInterest)
}

func TestLoanPaymentRepository_GetGroup_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanPaymentRepository(db)

	for _, table := range paymentTables {
		mock.ExpectQuery("SELECT loan_id, date, amount FROM " + table).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"loan_id", "date", "amount"}))
	}

	_, err = repo.GetGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanPaymentRepository_LastInterestPaymentDate_ZeroWhenNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanPaymentRepository(db)

	mock.ExpectQuery("SELECT MAX\\(date\\) FROM loan_interest_payments").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	date, err := repo.LastInterestPaymentDate(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, date.IsZero())
}
