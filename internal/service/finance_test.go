package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestFinanceService_LastPeriodBalance_FallsBackToOpeningPosition(t *testing.T) {
	balanceRepo := new(MockPeriodBalanceRepo)
	svc := NewFinanceService(nil, nil, balanceRepo, 25000, 180000)

	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	balanceRepo.On("LastBefore", mock.Anything, before).Return(nil, domain.ErrNotFound)

	balance, err := svc.LastPeriodBalance(context.Background(), before)
	assert.NoError(t, err)
	assert.True(t, balance.Initial)
	assert.Equal(t, int64(25000), balance.EndingCashOnHand)
	assert.Equal(t, int64(180000), balance.EndingBankDeposit)
}

func TestFinanceService_LastPeriodBalance_ReturnsLatestSnapshot(t *testing.T) {
	balanceRepo := new(MockPeriodBalanceRepo)
	svc := NewFinanceService(nil, nil, balanceRepo, 0, 0)

	before := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.PeriodBalance{
		ID:                3,
		PeriodEndDate:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		EndingCashOnHand:  42000,
		EndingBankDeposit: 310000,
	}
	balanceRepo.On("LastBefore", mock.Anything, before).Return(snapshot, nil)

	balance, err := svc.LastPeriodBalance(context.Background(), before)
	assert.NoError(t, err)
	assert.False(t, balance.Initial)
	assert.Equal(t, int64(42000), balance.EndingCashOnHand)
}

func TestFinanceService_SavePeriodBalance(t *testing.T) {
	balanceRepo := new(MockPeriodBalanceRepo)
	svc := NewFinanceService(nil, nil, balanceRepo, 0, 0)

	t.Run("RequiresEndDate", func(t *testing.T) {
		err := svc.SavePeriodBalance(context.Background(), &domain.PeriodBalance{})
		assert.Error(t, err)
		balanceRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("DerivesNetCashFlow", func(t *testing.T) {
		balanceRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		balance := &domain.PeriodBalance{
			PeriodStartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			TotalIncome:     90000,
			TotalExpense:    65000,
		}
		err := svc.SavePeriodBalance(context.Background(), balance)
		assert.NoError(t, err)
		assert.Equal(t, int64(25000), balance.NetCashFlow)
	})

	t.Run("RejectsInvertedPeriod", func(t *testing.T) {
		balance := &domain.PeriodBalance{
			PeriodStartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		}
		err := svc.SavePeriodBalance(context.Background(), balance)
		assert.Error(t, err)
	})
}
