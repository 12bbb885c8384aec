package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByMemberNo(ctx context.Context, memberNo int32) (*domain.Member, error) {
	args := m.Called(ctx, memberNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByMemberNos(ctx context.Context, memberNos []int32) ([]domain.Member, error) {
	args := m.Called(ctx, memberNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) NextMemberNo(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) SearchByName(ctx context.Context, query string) ([]domain.Member, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) SearchByArea(ctx context.Context, area string) ([]domain.Member, error) {
	args := m.Called(ctx, area)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListActive(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListForAttendance(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) SetDiedOn(ctx context.Context, id int64, diedOn time.Time) error {
	args := m.Called(ctx, id, diedOn)
	return args.Error(0)
}
func (m *MockMemberRepo) SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error {
	args := m.Called(ctx, id, blacklisted)
	return args.Error(0)
}
func (m *MockMemberRepo) AdjustPreviousDue(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
func (m *MockMemberRepo) ResetMeetingAbsents(ctx context.Context, memberNos []int32) error {
	args := m.Called(ctx, memberNos)
	return args.Error(0)
}
func (m *MockMemberRepo) IncrementMeetingAbsents(ctx context.Context, memberNos []int32) ([]domain.Member, error) {
	args := m.Called(ctx, memberNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) AddFine(ctx context.Context, fine *domain.Fine) error {
	args := m.Called(ctx, fine)
	return args.Error(0)
}
func (m *MockMemberRepo) DeleteFine(ctx context.Context, memberID, fineID int64) error {
	args := m.Called(ctx, memberID, fineID)
	return args.Error(0)
}
func (m *MockMemberRepo) RemoveFinesForEvent(ctx context.Context, memberNos []int32, eventID int64, fineType domain.FineType) error {
	args := m.Called(ctx, memberNos, eventID, fineType)
	return args.Error(0)
}
func (m *MockMemberRepo) ListFines(ctx context.Context, memberID int64) ([]domain.Fine, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.Fine), args.Error(1)
}
func (m *MockMemberRepo) ListFinesForEvent(ctx context.Context, eventID int64, fineType domain.FineType) ([]domain.Fine, error) {
	args := m.Called(ctx, eventID, fineType)
	return args.Get(0).([]domain.Fine), args.Error(1)
}
func (m *MockMemberRepo) FineTotals(ctx context.Context, memberIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, memberIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockMemberRepo) ListDependents(ctx context.Context, memberID int64) ([]domain.Dependent, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.Dependent), args.Error(1)
}
func (m *MockMemberRepo) AddDependent(ctx context.Context, dep *domain.Dependent) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}
func (m *MockMemberRepo) SetDependentDiedOn(ctx context.Context, dependentID int64, diedOn time.Time) error {
	args := m.Called(ctx, dependentID, diedOn)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetByLoanNumber(ctx context.Context, loanNumber int32) (*domain.Loan, error) {
	args := m.Called(ctx, loanNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) LatestByMember(ctx context.Context, memberID int64) (*domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ActiveByMember(ctx context.Context, memberID int64) (*domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) NextLoanNumber(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLoanRepo) CountActiveByGuarantor(ctx context.Context, memberID int64) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}
func (m *MockLoanRepo) DecrementRemaining(ctx context.Context, loanID int64, amount int64) error {
	args := m.Called(ctx, loanID, amount)
	return args.Error(0)
}
func (m *MockLoanRepo) IncrementRemaining(ctx context.Context, loanID int64, amount int64) error {
	args := m.Called(ctx, loanID, amount)
	return args.Error(0)
}
func (m *MockLoanRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLoanPaymentRepo
type MockLoanPaymentRepo struct {
	mock.Mock
}

func (m *MockLoanPaymentRepo) InsertGroup(ctx context.Context, group *domain.PaymentGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockLoanPaymentRepo) GetGroup(ctx context.Context, groupID string) (*domain.PaymentGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentGroup), args.Error(1)
}
func (m *MockLoanPaymentRepo) UpdateGroup(ctx context.Context, group *domain.PaymentGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockLoanPaymentRepo) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}
func (m *MockLoanPaymentRepo) ListByLoan(ctx context.Context, loanID int64) ([]domain.PaymentGroup, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.PaymentGroup), args.Error(1)
}
func (m *MockLoanPaymentRepo) CountByLoan(ctx context.Context, loanID int64) (int, error) {
	args := m.Called(ctx, loanID)
	return args.Int(0), args.Error(1)
}
func (m *MockLoanPaymentRepo) LastInterestPaymentDate(ctx context.Context, loanID int64) (time.Time, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(time.Time), args.Error(1)
}

// MockMembershipPaymentRepo
type MockMembershipPaymentRepo struct {
	mock.Mock
}

func (m *MockMembershipPaymentRepo) Insert(ctx context.Context, payment *domain.MembershipPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockMembershipPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.MembershipPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipPayment), args.Error(1)
}
func (m *MockMembershipPaymentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMembershipPaymentRepo) ListByMember(ctx context.Context, memberID int64) ([]domain.MembershipPayment, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.MembershipPayment), args.Error(1)
}
func (m *MockMembershipPaymentRepo) SumForMemberYear(ctx context.Context, memberID int64, year int) (int64, error) {
	args := m.Called(ctx, memberID, year)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMembershipPaymentRepo) SumByMemberForYear(ctx context.Context, year int) (map[int64]int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockMembershipPaymentRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.MembershipPayment, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.MembershipPayment), args.Error(1)
}

// MockFinePaymentRepo
type MockFinePaymentRepo struct {
	mock.Mock
}

func (m *MockFinePaymentRepo) Insert(ctx context.Context, payment *domain.FinePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockFinePaymentRepo) GetByID(ctx context.Context, id int64) (*domain.FinePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinePayment), args.Error(1)
}
func (m *MockFinePaymentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFinePaymentRepo) ListByMember(ctx context.Context, memberID int64) ([]domain.FinePayment, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.FinePayment), args.Error(1)
}
func (m *MockFinePaymentRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.FinePayment, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.FinePayment), args.Error(1)
}

// MockFuneralRepo
type MockFuneralRepo struct {
	mock.Mock
}

func (m *MockFuneralRepo) Create(ctx context.Context, funeral *domain.Funeral) error {
	args := m.Called(ctx, funeral)
	return args.Error(0)
}
func (m *MockFuneralRepo) GetByID(ctx context.Context, id int64) (*domain.Funeral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Funeral), args.Error(1)
}
func (m *MockFuneralRepo) GetByDeceasedRef(ctx context.Context, deceasedRef string) (*domain.Funeral, error) {
	args := m.Called(ctx, deceasedRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Funeral), args.Error(1)
}
func (m *MockFuneralRepo) Latest(ctx context.Context) (*domain.Funeral, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Funeral), args.Error(1)
}
func (m *MockFuneralRepo) List(ctx context.Context, limit int32) ([]domain.Funeral, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Funeral), args.Error(1)
}
func (m *MockFuneralRepo) UpdateEventAbsents(ctx context.Context, id int64, absents []int32) error {
	args := m.Called(ctx, id, absents)
	return args.Error(0)
}
func (m *MockFuneralRepo) UpdateAssignmentAbsents(ctx context.Context, id int64, absents []int32) error {
	args := m.Called(ctx, id, absents)
	return args.Error(0)
}
func (m *MockFuneralRepo) AddExtraDueMember(ctx context.Context, id int64, memberNo int32) error {
	args := m.Called(ctx, id, memberNo)
	return args.Error(0)
}

// MockMeetingRepo
type MockMeetingRepo struct {
	mock.Mock
}

func (m *MockMeetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}
func (m *MockMeetingRepo) List(ctx context.Context) ([]domain.Meeting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

// MockPeriodBalanceRepo
type MockPeriodBalanceRepo struct {
	mock.Mock
}

func (m *MockPeriodBalanceRepo) Upsert(ctx context.Context, balance *domain.PeriodBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}
func (m *MockPeriodBalanceRepo) LastBefore(ctx context.Context, date time.Time) (*domain.PeriodBalance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodBalance), args.Error(1)
}
func (m *MockPeriodBalanceRepo) List(ctx context.Context, limit int32) ([]domain.PeriodBalance, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PeriodBalance), args.Error(1)
}
