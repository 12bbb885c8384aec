package repository

import (
	"context"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByMemberNo(ctx context.Context, memberNo int32) (*domain.Member, error)
	GetByMemberNos(ctx context.Context, memberNos []int32) ([]domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	NextMemberNo(ctx context.Context) (int32, error)
	SearchByName(ctx context.Context, query string) ([]domain.Member, error)
	SearchByArea(ctx context.Context, area string) ([]domain.Member, error)

	// Listing. ListActive excludes deceased and deactivated members;
	// ListForAttendance additionally excludes free-status members.
	ListActive(ctx context.Context) ([]domain.Member, error)
	ListForAttendance(ctx context.Context) ([]domain.Member, error)

	SetDiedOn(ctx context.Context, id int64, diedOn time.Time) error
	SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error

	// AdjustPreviousDue adds delta (may be negative) to previousDue.
	AdjustPreviousDue(ctx context.Context, id int64, delta int64) error

	// Meeting absence counters.
	ResetMeetingAbsents(ctx context.Context, memberNos []int32) error
	IncrementMeetingAbsents(ctx context.Context, memberNos []int32) ([]domain.Member, error)

	// Fines.
	AddFine(ctx context.Context, fine *domain.Fine) error
	DeleteFine(ctx context.Context, memberID, fineID int64) error
	RemoveFinesForEvent(ctx context.Context, memberNos []int32, eventID int64, fineType domain.FineType) error
	ListFines(ctx context.Context, memberID int64) ([]domain.Fine, error)
	ListFinesForEvent(ctx context.Context, eventID int64, fineType domain.FineType) ([]domain.Fine, error)
	FineTotals(ctx context.Context, memberIDs []int64) (map[int64]int64, error)

	// Dependents.
	ListDependents(ctx context.Context, memberID int64) ([]domain.Dependent, error)
	AddDependent(ctx context.Context, dep *domain.Dependent) error
	SetDependentDiedOn(ctx context.Context, dependentID int64, diedOn time.Time) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetByLoanNumber(ctx context.Context, loanNumber int32) (*domain.Loan, error)
	LatestByMember(ctx context.Context, memberID int64) (*domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ActiveByMember(ctx context.Context, memberID int64) (*domain.Loan, error)
	NextLoanNumber(ctx context.Context) (int32, error)
	CountActiveByGuarantor(ctx context.Context, memberID int64) (int, error)

	// DecrementRemaining is the atomic conditional decrement: it only
	// succeeds when remaining_amount >= amount, otherwise it returns
	// domain.ErrOverpayment and changes nothing.
	DecrementRemaining(ctx context.Context, loanID int64, amount int64) error

	// IncrementRemaining restores balance on payment deletion, capped
	// at the original principal.
	IncrementRemaining(ctx context.Context, loanID int64, amount int64) error

	Delete(ctx context.Context, id int64) error
}

type LoanPaymentRepository interface {
	// InsertGroup writes one row into each of the principal, interest
	// and penalty-interest ledgers, all sharing group.GroupID.
	InsertGroup(ctx context.Context, group *domain.PaymentGroup) error

	// GetGroup assembles the three sibling rows for a group id. Missing
	// siblings come back as zero amounts rather than an error.
	GetGroup(ctx context.Context, groupID string) (*domain.PaymentGroup, error)

	UpdateGroup(ctx context.Context, group *domain.PaymentGroup) error
	DeleteGroup(ctx context.Context, groupID string) error

	ListByLoan(ctx context.Context, loanID int64) ([]domain.PaymentGroup, error)
	CountByLoan(ctx context.Context, loanID int64) (int, error)

	// LastInterestPaymentDate returns the zero time when the loan has
	// no interest payment with a positive amount.
	LastInterestPaymentDate(ctx context.Context, loanID int64) (time.Time, error)
}

type FuneralRepository interface {
	Create(ctx context.Context, funeral *domain.Funeral) error
	GetByID(ctx context.Context, id int64) (*domain.Funeral, error)
	GetByDeceasedRef(ctx context.Context, deceasedRef string) (*domain.Funeral, error)
	Latest(ctx context.Context) (*domain.Funeral, error)
	List(ctx context.Context, limit int32) ([]domain.Funeral, error)
	UpdateEventAbsents(ctx context.Context, id int64, absents []int32) error
	UpdateAssignmentAbsents(ctx context.Context, id int64, absents []int32) error
	AddExtraDueMember(ctx context.Context, id int64, memberNo int32) error
}

type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	List(ctx context.Context) ([]domain.Meeting, error)
}

type MembershipPaymentRepository interface {
	Insert(ctx context.Context, payment *domain.MembershipPayment) error
	GetByID(ctx context.Context, id int64) (*domain.MembershipPayment, error)
	Delete(ctx context.Context, id int64) error
	ListByMember(ctx context.Context, memberID int64) ([]domain.MembershipPayment, error)
	SumForMemberYear(ctx context.Context, memberID int64, year int) (int64, error)
	SumByMemberForYear(ctx context.Context, year int) (map[int64]int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.MembershipPayment, error)
}

type FinePaymentRepository interface {
	Insert(ctx context.Context, payment *domain.FinePayment) error
	GetByID(ctx context.Context, id int64) (*domain.FinePayment, error)
	Delete(ctx context.Context, id int64) error
	ListByMember(ctx context.Context, memberID int64) ([]domain.FinePayment, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.FinePayment, error)
}

type IncomeRepository interface {
	Create(ctx context.Context, income *domain.Income) error
	GetByID(ctx context.Context, id int64) (*domain.Income, error)
	List(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Income, int32, error)
	Update(ctx context.Context, income *domain.Income) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	List(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Expense, int32, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error)
}

type PeriodBalanceRepository interface {
	// Upsert keys on period_end_date so re-closing the same period
	// overwrites the earlier snapshot.
	Upsert(ctx context.Context, balance *domain.PeriodBalance) error

	// LastBefore returns the most recent snapshot whose period ends
	// strictly before the given date.
	LastBefore(ctx context.Context, date time.Time) (*domain.PeriodBalance, error)

	List(ctx context.Context, limit int32) ([]domain.PeriodBalance, error)
}

type OfficerRepository interface {
	Create(ctx context.Context, officer *domain.Officer) error
	GetByID(ctx context.Context, id int64) (*domain.Officer, error)
	GetByMemberNo(ctx context.Context, memberNo int32) (*domain.Officer, error)
	List(ctx context.Context) ([]domain.Officer, error)
	ListByRole(ctx context.Context, role string) ([]domain.Officer, error)
	Update(ctx context.Context, officer *domain.Officer) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetDeactivated(ctx context.Context, id int64, deactivated bool) error
	Delete(ctx context.Context, id int64) error
}
