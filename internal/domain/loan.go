package domain

import "time"

// Loan is a member loan. Principal is fixed at origination and
// RemainingAmount only ever decreases, via guarded principal payments.
type Loan struct {
	ID              int64     `json:"id"`
	LoanNumber      int32     `json:"loan_number"`
	MemberID        int64     `json:"member_id"`
	Principal       int64     `json:"principal"`
	RemainingAmount int64     `json:"remaining_amount"`
	LoanDate        time.Time `json:"loan_date"`
	Guarantor1ID    int64     `json:"guarantor1_id"`
	Guarantor2ID    int64     `json:"guarantor2_id"`
	CreatedOn       time.Time `json:"created_on"`
}

// LoanPayment is one row in a single payment ledger (principal, interest
// or penalty interest). The three rows written by one payment event share
// a GroupID so they can be updated or deleted together.
type LoanPayment struct {
	ID      int64     `json:"id"`
	LoanID  int64     `json:"loan_id"`
	GroupID string    `json:"group_id"`
	Date    time.Time `json:"date"`
	Amount  int64     `json:"amount"`
}

// PaymentGroup is the caller-facing view of one payment event across the
// three ledgers.
type PaymentGroup struct {
	GroupID         string    `json:"group_id"`
	LoanID          int64     `json:"loan_id"`
	Date            time.Time `json:"date"`
	Principal       int64     `json:"principal"`
	Interest        int64     `json:"interest"`
	PenaltyInterest int64     `json:"penalty_interest"`
}

// Active reports whether the loan still has principal outstanding.
func (l *Loan) Active() bool {
	return l.RemainingAmount > 0
}
