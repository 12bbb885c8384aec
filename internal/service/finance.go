package service

import (
	"context"
	"errors"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

type financeService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	balanceRepo repository.PeriodBalanceRepository

	initialCashOnHand  int64
	initialBankDeposit int64
}

func NewFinanceService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	balanceRepo repository.PeriodBalanceRepository,
	initialCashOnHand int64,
	initialBankDeposit int64,
) FinanceService {
	return &financeService{
		incomeRepo:         incomeRepo,
		expenseRepo:        expenseRepo,
		balanceRepo:        balanceRepo,
		initialCashOnHand:  initialCashOnHand,
		initialBankDeposit: initialBankDeposit,
	}
}

func (s *financeService) AddIncome(ctx context.Context, income *domain.Income) error {
	if income.Amount <= 0 {
		return errors.New("income amount must be positive")
	}
	if income.Category == "" {
		return errors.New("income category is required")
	}
	if income.Date.IsZero() {
		income.Date = time.Now()
	}
	return s.incomeRepo.Create(ctx, income)
}

func (s *financeService) ListIncomes(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Income, int32, error) {
	return s.incomeRepo.List(ctx, from, to, page, pageSize)
}

func (s *financeService) UpdateIncome(ctx context.Context, income *domain.Income) error {
	if income.Amount <= 0 {
		return errors.New("income amount must be positive")
	}
	return s.incomeRepo.Update(ctx, income)
}

func (s *financeService) DeleteIncome(ctx context.Context, id int64) error {
	return s.incomeRepo.Delete(ctx, id)
}

func (s *financeService) IncomeSummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error) {
	return s.incomeRepo.Summary(ctx, from, to)
}

func (s *financeService) AddExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.Amount <= 0 {
		return errors.New("expense amount must be positive")
	}
	if expense.Category == "" {
		return errors.New("expense category is required")
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	return s.expenseRepo.Create(ctx, expense)
}

func (s *financeService) ListExpenses(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Expense, int32, error) {
	return s.expenseRepo.List(ctx, from, to, page, pageSize)
}

func (s *financeService) UpdateExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.Amount <= 0 {
		return errors.New("expense amount must be positive")
	}
	return s.expenseRepo.Update(ctx, expense)
}

func (s *financeService) DeleteExpense(ctx context.Context, id int64) error {
	return s.expenseRepo.Delete(ctx, id)
}

func (s *financeService) ExpenseSummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error) {
	return s.expenseRepo.Summary(ctx, from, to)
}

func (s *financeService) SavePeriodBalance(ctx context.Context, balance *domain.PeriodBalance) error {
	if balance.PeriodEndDate.IsZero() {
		return errors.New("period end date is required")
	}
	if !balance.PeriodStartDate.IsZero() && balance.PeriodEndDate.Before(balance.PeriodStartDate) {
		return errors.New("period end date cannot precede the start date")
	}
	if balance.NetCashFlow == 0 {
		balance.NetCashFlow = balance.TotalIncome - balance.TotalExpense
	}
	return s.balanceRepo.Upsert(ctx, balance)
}

func (s *financeService) LastPeriodBalance(ctx context.Context, before time.Time) (*domain.PeriodBalance, error) {
	if before.IsZero() {
		return nil, errors.New("a reference date is required")
	}
	balance, err := s.balanceRepo.LastBefore(ctx, before)
	if errors.Is(err, domain.ErrNotFound) {
		// No period has been closed yet; report the configured opening
		// position so carry-forward arithmetic still has a starting point.
		return &domain.PeriodBalance{
			EndingCashOnHand:  s.initialCashOnHand,
			EndingBankDeposit: s.initialBankDeposit,
			Initial:           true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (s *financeService) ListPeriodBalances(ctx context.Context, limit int32) ([]domain.PeriodBalance, error) {
	return s.balanceRepo.List(ctx, limit)
}
