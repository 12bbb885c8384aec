package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestLoanRepository_DecrementRemaining(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE loans SET remaining_amount = remaining_amount - \\$1").
			WithArgs(int64(1000), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementRemaining(ctx, 5, 1000)
		assert.NoError(t, err)
	})

	t.Run("OverpaymentLeavesBalanceUntouched", func(t *testing.T) {
		// The balance guard is part of the WHERE clause, so an overdraw
		// matches zero rows instead of going negative.
		mock.ExpectExec("UPDATE loans SET remaining_amount = remaining_amount - \\$1").
			WithArgs(int64(99999), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementRemaining(ctx, 5, 99999)
		assert.ErrorIs(t, err, domain.ErrOverpayment)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_IncrementRemaining_CappedAtPrincipal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)

	mock.ExpectExec("UPDATE loans SET remaining_amount = remaining_amount \\+ \\$1").
		WithArgs(int64(5000), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.IncrementRemaining(context.Background(), 5, 5000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_Create_DuplicateLoanNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)

	mock.ExpectQuery("INSERT INTO loans").
		WillReturnError(&pq.Error{Code: "23505"})

	loan := &domain.Loan{LoanNumber: 12, MemberID: 1, Principal: 10000, RemainingAmount: 10000}
	err = repo.Create(context.Background(), loan)
	assert.ErrorIs(t, err, domain.ErrDuplicateLoan)
}

func TestLoanRepository_CountActiveByGuarantor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loans").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveByGuarantor(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoanRepository_ActiveByMember_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM loans").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "loan_number", "member_id", "principal", "remaining_amount",
			"loan_date", "guarantor1_id", "guarantor2_id", "created_on",
		}))

	_, err = repo.ActiveByMember(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM loans WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "loan_number", "member_id", "principal", "remaining_amount",
			"loan_date", "guarantor1_id", "guarantor2_id", "created_on",
		}).AddRow(5, 12, 1, 10000, 7000, now, 2, 3, now))

	loan, err := repo.GetByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, int32(12), loan.LoanNumber)
	assert.Equal(t, int64(7000), loan.RemainingAmount)
}
