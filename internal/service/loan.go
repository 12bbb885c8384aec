package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lakkaru/eksath-samithiya-backend/internal/accrual"
	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

// maxActiveGuarantees is the number of active loans a member may stand
// guarantor for at the same time.
const maxActiveGuarantees = 2

type loanService struct {
	loanRepo    repository.LoanRepository
	paymentRepo repository.LoanPaymentRepository
	memberRepo  repository.MemberRepository
	calc        *accrual.Calculator
	principal   int64
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.LoanPaymentRepository,
	memberRepo repository.MemberRepository,
	calc *accrual.Calculator,
	defaultPrincipal int64,
) LoanService {
	return &loanService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		calc:        calc,
		principal:   defaultPrincipal,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, memberNo int32, loanNumber int32, principal int64, loanDate time.Time, guarantor1No, guarantor2No int32) (*domain.Loan, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, errors.New("member is not active")
	}
	if member.Blacklisted {
		return nil, errors.New("member is blacklisted")
	}
	if guarantor1No == guarantor2No {
		return nil, errors.New("guarantors must be two distinct members")
	}
	if guarantor1No == memberNo || guarantor2No == memberNo {
		return nil, errors.New("a member cannot guarantee their own loan")
	}

	if active, err := s.loanRepo.ActiveByMember(ctx, member.ID); err == nil && active != nil {
		return nil, errors.New("member already has an active loan")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	g1, err := s.guarantor(ctx, guarantor1No)
	if err != nil {
		return nil, err
	}
	g2, err := s.guarantor(ctx, guarantor2No)
	if err != nil {
		return nil, err
	}

	if loanNumber == 0 {
		loanNumber, err = s.loanRepo.NextLoanNumber(ctx)
		if err != nil {
			return nil, err
		}
	}
	if principal == 0 {
		principal = s.principal
	}
	if loanDate.IsZero() {
		loanDate = time.Now()
	}

	loan := &domain.Loan{
		LoanNumber:      loanNumber,
		MemberID:        member.ID,
		Principal:       principal,
		RemainingAmount: principal,
		LoanDate:        loanDate,
		Guarantor1ID:    g1.ID,
		Guarantor2ID:    g2.ID,
		CreatedOn:       time.Now(),
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	logger.Info("loan created",
		"loan_number", loan.LoanNumber,
		"member_no", memberNo,
		"principal", principal)
	return loan, nil
}

// guarantor resolves a guarantor by member number and enforces the
// active-guarantee cap and eligibility rules.
func (s *loanService) guarantor(ctx context.Context, memberNo int32) (*domain.Member, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("guarantor %d: %w", memberNo, err)
		}
		return nil, err
	}
	if !member.IsActive() {
		return nil, fmt.Errorf("guarantor %d is not an active member", memberNo)
	}
	if member.Blacklisted {
		return nil, fmt.Errorf("guarantor %d is blacklisted", memberNo)
	}

	count, err := s.loanRepo.CountActiveByGuarantor(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxActiveGuarantees {
		return nil, domain.ErrGuarantorLimit
	}
	return member, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, loanID)
}

func (s *loanService) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

func (s *loanService) NextLoanNumber(ctx context.Context) (int32, error) {
	return s.loanRepo.NextLoanNumber(ctx)
}

func (s *loanService) LoanOfMember(ctx context.Context, memberNo int32) (*domain.Loan, []domain.PaymentGroup, accrual.Accrual, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, nil, accrual.Accrual{}, err
	}
	loan, err := s.loanRepo.LatestByMember(ctx, member.ID)
	if err != nil {
		return nil, nil, accrual.Accrual{}, err
	}
	groups, err := s.paymentRepo.ListByLoan(ctx, loan.ID)
	if err != nil {
		return nil, nil, accrual.Accrual{}, err
	}
	acc, err := s.computeAccrual(ctx, loan, time.Now())
	if err != nil {
		return nil, nil, accrual.Accrual{}, err
	}
	return loan, groups, acc, nil
}

func (s *loanService) Accrual(ctx context.Context, loanID int64, asOf time.Time) (accrual.Accrual, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return accrual.Accrual{}, err
	}
	return s.computeAccrual(ctx, loan, asOf)
}

func (s *loanService) computeAccrual(ctx context.Context, loan *domain.Loan, asOf time.Time) (accrual.Accrual, error) {
	lastPaid, err := s.paymentRepo.LastInterestPaymentDate(ctx, loan.ID)
	if err != nil {
		return accrual.Accrual{}, err
	}
	return s.calc.Compute(loan.LoanDate, loan.RemainingAmount, lastPaid, asOf), nil
}

func (s *loanService) RecordPayment(ctx context.Context, loanID int64, principal, interest, penalty int64, date time.Time) (*domain.PaymentGroup, error) {
	if principal < 0 || interest < 0 || penalty < 0 {
		return nil, errors.New("payment amounts cannot be negative")
	}
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	group := &domain.PaymentGroup{
		GroupID:         uuid.NewString(),
		LoanID:          loanID,
		Date:            date,
		Principal:       principal,
		Interest:        interest,
		PenaltyInterest: penalty,
	}
	if err := s.paymentRepo.InsertGroup(ctx, group); err != nil {
		return nil, err
	}

	if principal > 0 {
		if err := s.loanRepo.DecrementRemaining(ctx, loanID, principal); err != nil {
			// The ledger rows are already written; take them back out so
			// a rejected overpayment leaves no trace.
			if delErr := s.paymentRepo.DeleteGroup(ctx, group.GroupID); delErr != nil {
				logger.Error("failed to roll back payment group after rejected decrement",
					"group_id", group.GroupID, "error", delErr)
			}
			return nil, err
		}
	}

	logger.Info("loan payment recorded",
		"loan_id", loanID,
		"group_id", group.GroupID,
		"principal", principal,
		"interest", interest,
		"penalty_interest", penalty)
	return group, nil
}

func (s *loanService) UpdatePayment(ctx context.Context, groupID string, principal, interest, penalty int64, date time.Time) (*domain.PaymentGroup, error) {
	if principal < 0 || interest < 0 || penalty < 0 {
		return nil, errors.New("payment amounts cannot be negative")
	}
	old, err := s.paymentRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	// Apply the principal delta to the balance before rewriting the
	// ledger rows so an overpaying edit is rejected with nothing changed.
	delta := principal - old.Principal
	switch {
	case delta > 0:
		if err := s.loanRepo.DecrementRemaining(ctx, old.LoanID, delta); err != nil {
			return nil, err
		}
	case delta < 0:
		if err := s.loanRepo.IncrementRemaining(ctx, old.LoanID, -delta); err != nil {
			return nil, err
		}
	}

	updated := &domain.PaymentGroup{
		GroupID:         groupID,
		LoanID:          old.LoanID,
		Date:            date,
		Principal:       principal,
		Interest:        interest,
		PenaltyInterest: penalty,
	}
	if updated.Date.IsZero() {
		updated.Date = old.Date
	}
	if err := s.paymentRepo.UpdateGroup(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *loanService) DeletePayment(ctx context.Context, groupID string) error {
	group, err := s.paymentRepo.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	if group.Principal > 0 {
		if err := s.loanRepo.IncrementRemaining(ctx, group.LoanID, group.Principal); err != nil {
			return err
		}
	}
	logger.Info("loan payment deleted", "loan_id", group.LoanID, "group_id", groupID)
	return nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID int64) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}

	// Only a loan created today with no payments may be deleted; anything
	// older is part of the books and must stay.
	if !sameDay(loan.CreatedOn, time.Now()) {
		return domain.ErrLoanLocked
	}
	count, err := s.paymentRepo.CountByLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrLoanLocked
	}

	if err := s.loanRepo.Delete(ctx, loanID); err != nil {
		return err
	}
	logger.Info("loan deleted", "loan_id", loanID, "loan_number", loan.LoanNumber)
	return nil
}

func (s *loanService) BlacklistOverdueGuarantors(ctx context.Context, asOf time.Time) (int, error) {
	loans, err := s.loanRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, loan := range loans {
		acc, err := s.computeAccrual(ctx, &loan, asOf)
		if err != nil {
			logger.Error("accrual failed during guarantor sweep", "loan_id", loan.ID, "error", err)
			continue
		}
		if !acc.Applicable || acc.TotalMonths <= s.calc.TermMonths() || acc.UnpaidMonths == 0 {
			continue
		}
		for _, guarantorID := range []int64{loan.Guarantor1ID, loan.Guarantor2ID} {
			if err := s.memberRepo.SetBlacklisted(ctx, guarantorID, true); err != nil {
				logger.Error("failed to blacklist guarantor",
					"loan_id", loan.ID, "member_id", guarantorID, "error", err)
				continue
			}
			flagged++
		}
	}
	return flagged, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
