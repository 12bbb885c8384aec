package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lakkaru/eksath-samithiya-backend/internal/accrual"
	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"
)

// siblingSurcharge is the fraction of the monthly membership charged per
// additional covered sibling.
var siblingSurcharge = decimal.RequireFromString("0.3")

type duesService struct {
	memberRepo        repository.MemberRepository
	loanRepo          repository.LoanRepository
	paymentRepo       repository.LoanPaymentRepository
	membershipRepo    repository.MembershipPaymentRepository
	calc              *accrual.Calculator
	monthlyMembership int64
}

func NewDuesService(
	memberRepo repository.MemberRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.LoanPaymentRepository,
	membershipRepo repository.MembershipPaymentRepository,
	calc *accrual.Calculator,
	monthlyMembership int64,
) DuesService {
	return &duesService{
		memberRepo:        memberRepo,
		loanRepo:          loanRepo,
		paymentRepo:       paymentRepo,
		membershipRepo:    membershipRepo,
		calc:              calc,
		monthlyMembership: monthlyMembership,
	}
}

// membershipCharge is what a member owes in membership for the elapsed
// months of the year: the base rate plus a per-sibling surcharge, per
// month. Free-status members owe nothing.
func (s *duesService) membershipCharge(member *domain.Member, elapsedMonths int) int64 {
	if member.Status == domain.MemberStatusFree {
		return 0
	}
	base := decimal.NewFromInt(s.monthlyMembership)
	perMonth := base.Add(base.Mul(siblingSurcharge).Mul(decimal.NewFromInt(int64(member.SiblingsCount))))
	return perMonth.Mul(decimal.NewFromInt(int64(elapsedMonths))).Round(0).IntPart()
}

func (s *duesService) MemberDue(ctx context.Context, memberNo int32, asOf time.Time) (*domain.MemberDue, error) {
	member, err := s.memberRepo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, err
	}

	fines, err := s.memberRepo.ListFines(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	var fineTotal int64
	for _, f := range fines {
		fineTotal += f.Amount
	}

	paid, err := s.membershipRepo.SumForMemberYear(ctx, member.ID, asOf.Year())
	if err != nil {
		return nil, err
	}
	membershipDue := s.membershipCharge(member, int(asOf.Month())) - paid

	installment, err := s.loanInstallment(ctx, member.ID, asOf)
	if err != nil {
		return nil, err
	}

	due := &domain.MemberDue{
		MemberNo:        member.MemberNo,
		Name:            member.Name,
		PreviousDue:     member.PreviousDue,
		FineTotal:       fineTotal,
		MembershipDue:   membershipDue,
		LoanInstallment: installment,
	}
	due.TotalDue = due.PreviousDue + due.FineTotal + due.MembershipDue + due.LoanInstallment
	return due, nil
}

// loanInstallment returns the member's suggested installment, or zero when
// there is no active loan or the loan has no unpaid interest months. An
// up-to-date loan contributes nothing to the member's due.
func (s *duesService) loanInstallment(ctx context.Context, memberID int64, asOf time.Time) (int64, error) {
	loan, err := s.loanRepo.ActiveByMember(ctx, memberID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	lastPaid, err := s.paymentRepo.LastInterestPaymentDate(ctx, loan.ID)
	if err != nil {
		return 0, err
	}
	acc := s.calc.Compute(loan.LoanDate, loan.RemainingAmount, lastPaid, asOf)
	if !acc.Applicable || !acc.HasArrears() {
		return 0, nil
	}
	return acc.Installment, nil
}

func (s *duesService) MeetingSignSheet(ctx context.Context, asOf time.Time) ([]domain.MemberDue, error) {
	members, err := s.memberRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]int64, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}
	fineTotals, err := s.memberRepo.FineTotals(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	membershipPaid, err := s.membershipRepo.SumByMemberForYear(ctx, asOf.Year())
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	loansByMember := make(map[int64]domain.Loan, len(loans))
	for _, l := range loans {
		loansByMember[l.MemberID] = l
	}

	sheet := make([]domain.MemberDue, 0, len(members))
	for _, m := range members {
		if m.Status == domain.MemberStatusFree {
			continue
		}

		due := domain.MemberDue{
			MemberNo:      m.MemberNo,
			Name:          m.Name,
			PreviousDue:   m.PreviousDue,
			FineTotal:     fineTotals[m.ID],
			MembershipDue: s.membershipCharge(&m, int(asOf.Month())) - membershipPaid[m.ID],
		}

		if loan, ok := loansByMember[m.ID]; ok {
			lastPaid, err := s.paymentRepo.LastInterestPaymentDate(ctx, loan.ID)
			if err != nil {
				logger.Error("sign sheet: interest payment lookup failed",
					"member_no", m.MemberNo, "loan_id", loan.ID, "error", err)
			} else {
				acc := s.calc.Compute(loan.LoanDate, loan.RemainingAmount, lastPaid, asOf)
				if acc.Applicable && acc.HasArrears() {
					due.LoanInstallment = acc.Installment
				}
			}
		}

		due.TotalDue = due.PreviousDue + due.FineTotal + due.MembershipDue + due.LoanInstallment
		sheet = append(sheet, due)
	}
	return sheet, nil
}
