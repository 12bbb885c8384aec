package service

import (
	"context"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/accrual"
	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
)

type LoanService interface {
	CreateLoan(ctx context.Context, memberNo int32, loanNumber int32, principal int64, loanDate time.Time, guarantor1No, guarantor2No int32) (*domain.Loan, error)
	GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
	NextLoanNumber(ctx context.Context) (int32, error)
	DeleteLoan(ctx context.Context, loanID int64) error

	// LoanOfMember returns the member's most recent loan with its
	// payment history and the accrual as of now.
	LoanOfMember(ctx context.Context, memberNo int32) (*domain.Loan, []domain.PaymentGroup, accrual.Accrual, error)

	// Accrual computes interest/penalty/installment for a loan as of
	// the given date.
	Accrual(ctx context.Context, loanID int64, asOf time.Time) (accrual.Accrual, error)

	RecordPayment(ctx context.Context, loanID int64, principal, interest, penalty int64, date time.Time) (*domain.PaymentGroup, error)
	UpdatePayment(ctx context.Context, groupID string, principal, interest, penalty int64, date time.Time) (*domain.PaymentGroup, error)
	DeletePayment(ctx context.Context, groupID string) error

	// BlacklistOverdueGuarantors marks the guarantors of overdue loans
	// and returns how many members were flagged.
	BlacklistOverdueGuarantors(ctx context.Context, asOf time.Time) (int, error)
}

type DuesService interface {
	MemberDue(ctx context.Context, memberNo int32, asOf time.Time) (*domain.MemberDue, error)
	MeetingSignSheet(ctx context.Context, asOf time.Time) ([]domain.MemberDue, error)
}

type MemberService interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	GetMember(ctx context.Context, memberNo int32) (*domain.Member, error)
	UpdateMember(ctx context.Context, member *domain.Member) error
	ListActiveMembers(ctx context.Context) ([]domain.Member, error)
	NextMemberNo(ctx context.Context) (int32, error)
	SearchByName(ctx context.Context, query string) ([]domain.Member, error)
	SearchByArea(ctx context.Context, area string) ([]domain.Member, error)

	Fines(ctx context.Context, memberNo int32) ([]domain.Fine, error)
	DeleteFine(ctx context.Context, memberNo int32, fineID int64) error

	Family(ctx context.Context, memberNo int32) (*domain.Member, []domain.Dependent, error)
	AddDependent(ctx context.Context, memberNo int32, dep *domain.Dependent) error
	MarkMemberDied(ctx context.Context, memberNo int32, diedOn time.Time) error
	MarkDependentDied(ctx context.Context, dependentID int64, diedOn time.Time) error
}

type FuneralService interface {
	CreateFuneral(ctx context.Context, funeral *domain.Funeral) error
	GetFuneral(ctx context.Context, id int64) (*domain.Funeral, error)
	FuneralByDeceased(ctx context.Context, deceasedRef string) (*domain.Funeral, error)
	ListFunerals(ctx context.Context, limit int32) ([]domain.Funeral, error)

	// LastAssignmentInfo returns the member anchoring the next cemetery
	// duty rotation and the members excluded from it.
	LastAssignmentInfo(ctx context.Context) (int32, []int32, error)

	UpdateEventAbsents(ctx context.Context, funeralID int64, absents []int32) (added, removed int, err error)
	UpdateWorkAttendance(ctx context.Context, funeralID int64, absents []int32) (added, removed int, err error)

	AddExtraDueFine(ctx context.Context, deceasedRef string, memberNo int32, amount int64) error
	ExtraDueFines(ctx context.Context, deceasedRef string) ([]domain.Fine, error)
}

type AttendanceService interface {
	SaveAttendance(ctx context.Context, date time.Time, absentNos []int32) (*domain.Meeting, error)
	GetAttendance(ctx context.Context) ([]domain.MeetingAttendance, []int32, error)
}

type ReceiptService interface {
	CreateReceipts(ctx context.Context, date time.Time, lines []domain.ReceiptLine) (*domain.ReceiptResult, error)
	ReceiptsByDate(ctx context.Context, date time.Time) ([]domain.MembershipPayment, []domain.FinePayment, error)
	DeleteFinePayment(ctx context.Context, id int64) error
	DeleteMembershipPayment(ctx context.Context, id int64) error
}

type FinanceService interface {
	AddIncome(ctx context.Context, income *domain.Income) error
	ListIncomes(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Income, int32, error)
	UpdateIncome(ctx context.Context, income *domain.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	IncomeSummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error)

	AddExpense(ctx context.Context, expense *domain.Expense) error
	ListExpenses(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.Expense, int32, error)
	UpdateExpense(ctx context.Context, expense *domain.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ExpenseSummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummary, error)

	// Period-end cash snapshots. LastPeriodBalance falls back to the
	// configured opening balance when no snapshot ends before the date.
	SavePeriodBalance(ctx context.Context, balance *domain.PeriodBalance) error
	LastPeriodBalance(ctx context.Context, before time.Time) (*domain.PeriodBalance, error)
	ListPeriodBalances(ctx context.Context, limit int32) ([]domain.PeriodBalance, error)
}

type AuthService interface {
	Login(ctx context.Context, memberNo int32, password string) (string, *domain.Officer, error)
	ChangePassword(ctx context.Context, officerID int64, currentPassword, newPassword string) error
}

type OfficerService interface {
	CreateOfficer(ctx context.Context, officer *domain.Officer, password string) error
	GetOfficer(ctx context.Context, id int64) (*domain.Officer, error)
	ListOfficers(ctx context.Context) ([]domain.Officer, error)
	ListOfficersByRole(ctx context.Context, role string) ([]domain.Officer, error)
	UpdateOfficer(ctx context.Context, officer *domain.Officer) error
	DeactivateOfficer(ctx context.Context, id int64) error
	ReactivateOfficer(ctx context.Context, id int64) error
	DeleteOfficer(ctx context.Context, id int64) error
	AssignAreaRole(ctx context.Context, officerID int64, role, area string) error
	RemoveAreaRole(ctx context.Context, officerID int64, role string) error
}
