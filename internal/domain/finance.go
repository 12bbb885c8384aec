package domain

import "time"

// Income is a ledger entry for money received by the society.
type Income struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	CreatedOn   time.Time `json:"created_on"`
}

// Expense is a ledger entry for money paid out by the society.
type Expense struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	CreatedOn   time.Time `json:"created_on"`
}

// PeriodBalance is a period-end snapshot of the society's cash position,
// keyed by the period end date. Initial marks the synthetic opening
// balance returned when no snapshot exists before the asked date.
type PeriodBalance struct {
	ID                int64     `json:"id"`
	PeriodStartDate   time.Time `json:"period_start_date"`
	PeriodEndDate     time.Time `json:"period_end_date"`
	EndingCashOnHand  int64     `json:"ending_cash_on_hand"`
	EndingBankDeposit int64     `json:"ending_bank_deposit"`
	TotalIncome       int64     `json:"total_income"`
	TotalExpense      int64     `json:"total_expense"`
	NetCashFlow       int64     `json:"net_cash_flow"`
	Initial           bool      `json:"initial"`
	CreatedOn         time.Time `json:"created_on"`
}

// CategorySummary is the aggregated total for one category over a range.
type CategorySummary struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int32  `json:"count"`
}
