package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

func TestDuesService_MemberDue_AggregatesAllComponents(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{
		ID:          1,
		MemberNo:    10,
		Name:        "W.A. Perera",
		Status:      domain.MemberStatusRegular,
		PreviousDue: 250,
	}

	memberRepo.On("GetByMemberNo", mock.Anything, int32(10)).Return(member, nil)
	memberRepo.On("ListFines", mock.Anything, int64(1)).Return([]domain.Fine{
		{Amount: 500}, {Amount: 100},
	}, nil)
	// 5 elapsed months at 300/month = 1500 charged, 900 already paid.
	membershipRepo.On("SumForMemberYear", mock.Anything, int64(1), 2025).Return(int64(900), nil)
	loanRepo.On("ActiveByMember", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

	due, err := svc.MemberDue(context.Background(), 10, asOf)
	assert.NoError(t, err)
	assert.Equal(t, int64(250), due.PreviousDue)
	assert.Equal(t, int64(600), due.FineTotal)
	assert.Equal(t, int64(600), due.MembershipDue)
	assert.Equal(t, int64(0), due.LoanInstallment)
	assert.Equal(t, int64(1450), due.TotalDue)
}

func TestDuesService_MemberDue_SiblingSurcharge(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{
		ID:            2,
		MemberNo:      11,
		Status:        domain.MemberStatusRegular,
		SiblingsCount: 2,
	}

	memberRepo.On("GetByMemberNo", mock.Anything, int32(11)).Return(member, nil)
	memberRepo.On("ListFines", mock.Anything, int64(2)).Return([]domain.Fine{}, nil)
	membershipRepo.On("SumForMemberYear", mock.Anything, int64(2), 2025).Return(int64(0), nil)
	loanRepo.On("ActiveByMember", mock.Anything, int64(2)).Return(nil, domain.ErrNotFound)

	due, err := svc.MemberDue(context.Background(), 11, asOf)
	assert.NoError(t, err)
	// (300 + 2*90) per month, 2 elapsed months.
	assert.Equal(t, int64(960), due.MembershipDue)
}

func TestDuesService_MemberDue_FreeMemberOwesNoMembership(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: 3, MemberNo: 12, Status: domain.MemberStatusFree}

	memberRepo.On("GetByMemberNo", mock.Anything, int32(12)).Return(member, nil)
	memberRepo.On("ListFines", mock.Anything, int64(3)).Return([]domain.Fine{}, nil)
	membershipRepo.On("SumForMemberYear", mock.Anything, int64(3), 2025).Return(int64(0), nil)
	loanRepo.On("ActiveByMember", mock.Anything, int64(3)).Return(nil, domain.ErrNotFound)

	due, err := svc.MemberDue(context.Background(), 12, asOf)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), due.MembershipDue)
	assert.Equal(t, int64(0), due.TotalDue)
}

func TestDuesService_MemberDue_UpToDateLoanAddsNothing(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: 4, MemberNo: 13, Status: domain.MemberStatusRegular}
	loan := &domain.Loan{
		ID:              9,
		LoanDate:        time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		RemainingAmount: 6000,
	}

	memberRepo.On("GetByMemberNo", mock.Anything, int32(13)).Return(member, nil)
	memberRepo.On("ListFines", mock.Anything, int64(4)).Return([]domain.Fine{}, nil)
	membershipRepo.On("SumForMemberYear", mock.Anything, int64(4), 2025).Return(int64(1500), nil)
	loanRepo.On("ActiveByMember", mock.Anything, int64(4)).Return(loan, nil)
	// Interest settled through the same accrual window as asOf.
	paymentRepo.On("LastInterestPaymentDate", mock.Anything, int64(9)).
		Return(time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC), nil)

	due, err := svc.MemberDue(context.Background(), 13, asOf)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), due.LoanInstallment)
}

func TestDuesService_MemberDue_ArrearsLoanAddsInstallment(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: 5, MemberNo: 14, Status: domain.MemberStatusRegular}
	loan := &domain.Loan{
		ID:              10,
		LoanDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		RemainingAmount: 10000,
	}

	memberRepo.On("GetByMemberNo", mock.Anything, int32(14)).Return(member, nil)
	memberRepo.On("ListFines", mock.Anything, int64(5)).Return([]domain.Fine{}, nil)
	membershipRepo.On("SumForMemberYear", mock.Anything, int64(5), 2024).Return(int64(1800), nil)
	loanRepo.On("ActiveByMember", mock.Anything, int64(5)).Return(loan, nil)
	paymentRepo.On("LastInterestPaymentDate", mock.Anything, int64(10)).Return(time.Time{}, nil)

	due, err := svc.MemberDue(context.Background(), 14, asOf)
	assert.NoError(t, err)
	// 5 unpaid months on 10000 at 3% is 1500 interest; 5 months of the
	// 1000/month principal schedule are due with nothing paid yet.
	assert.Equal(t, int64(6500), due.LoanInstallment)
	assert.Equal(t, due.TotalDue, due.MembershipDue+due.LoanInstallment)
}

func TestDuesService_MeetingSignSheet_SkipsFreeMembers(t *testing.T) {
	memberRepo := new(MockMemberRepo)
	loanRepo := new(MockLoanRepo)
	paymentRepo := new(MockLoanPaymentRepo)
	membershipRepo := new(MockMembershipPaymentRepo)
	svc := NewDuesService(memberRepo, loanRepo, paymentRepo, membershipRepo, testCalculator(), 300)

	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	members := []domain.Member{
		{ID: 1, MemberNo: 10, Name: "Perera", Status: domain.MemberStatusRegular, PreviousDue: 100},
		{ID: 2, MemberNo: 11, Name: "Silva", Status: domain.MemberStatusFree},
		{ID: 3, MemberNo: 12, Name: "Fernando", Status: domain.MemberStatusAttendanceFree},
	}

	memberRepo.On("ListActive", mock.Anything).Return(members, nil)
	memberRepo.On("FineTotals", mock.Anything, []int64{1, 2, 3}).
		Return(map[int64]int64{1: 500}, nil)
	membershipRepo.On("SumByMemberForYear", mock.Anything, 2025).
		Return(map[int64]int64{1: 900, 3: 900}, nil)
	loanRepo.On("ListActive", mock.Anything).Return([]domain.Loan{}, nil)

	sheet, err := svc.MeetingSignSheet(context.Background(), asOf)
	assert.NoError(t, err)
	assert.Len(t, sheet, 2)

	assert.Equal(t, int32(10), sheet[0].MemberNo)
	assert.Equal(t, int64(500), sheet[0].FineTotal)
	assert.Equal(t, int64(0), sheet[0].MembershipDue) // 3 months * 300 = 900, fully paid
	assert.Equal(t, int64(600), sheet[0].TotalDue)

	// Attendance-free members still owe membership.
	assert.Equal(t, int32(12), sheet[1].MemberNo)
	assert.Equal(t, int64(0), sheet[1].MembershipDue)
}
