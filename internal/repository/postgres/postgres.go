package postgres

import (
	"database/sql"

	"github.com/lakkaru/eksath-samithiya-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.LoanRepository
	repository.LoanPaymentRepository
	repository.FuneralRepository
	repository.MeetingRepository
	repository.MembershipPaymentRepository
	repository.FinePaymentRepository
	repository.IncomeRepository
	repository.ExpenseRepository
	repository.PeriodBalanceRepository
	repository.OfficerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                          db,
		MemberRepository:            NewMemberRepository(db),
		LoanRepository:              NewLoanRepository(db),
		LoanPaymentRepository:       NewLoanPaymentRepository(db),
		FuneralRepository:           NewFuneralRepository(db),
		MeetingRepository:           NewMeetingRepository(db),
		MembershipPaymentRepository: NewMembershipPaymentRepository(db),
		FinePaymentRepository:       NewFinePaymentRepository(db),
		IncomeRepository:            NewIncomeRepository(db),
		ExpenseRepository:           NewExpenseRepository(db),
		PeriodBalanceRepository:     NewPeriodBalanceRepository(db),
		OfficerRepository:           NewOfficerRepository(db),
	}
}
