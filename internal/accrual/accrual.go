// Package accrual computes loan interest, penalty interest and the
// suggested installment for a member loan. It is pure calculation with
// no storage access and no clock; callers pass the evaluation date.
package accrual

import (
	"time"

	"github.com/shopspring/decimal"
)

// Terms are the loan product terms. They come from configuration, not
// from call sites, so every endpoint computes against the same numbers.
type Terms struct {
	MonthlyRate decimal.Decimal // e.g. 0.03
	TermMonths  int             // e.g. 10
	Principal   int64           // standard principal, e.g. 10000
}

// Accrual is the result of one computation. All amounts are whole
// currency units, rounded half-up, and never negative.
//
// Applicable distinguishes a real zero accrual from the degenerate case
// (no loan date, no evaluation date, or nothing outstanding). Callers
// that only care about the numbers can ignore it; callers aggregating
// dues must not treat an inapplicable result as "loan is up to date".
type Accrual struct {
	Interest        int64 `json:"interest"`
	PenaltyInterest int64 `json:"penalty_interest"`
	Installment     int64 `json:"installment"`

	TotalMonths   int  `json:"total_months"`
	UnpaidMonths  int  `json:"unpaid_months"`
	PenaltyMonths int  `json:"penalty_months"`
	Applicable    bool `json:"applicable"`
}

// HasArrears reports whether the loan has unpaid interest months. The
// due-aggregation endpoints only add the installment to a member's total
// due when this is true, so an up-to-date loan's principal is not
// double-counted as due.
func (a Accrual) HasArrears() bool {
	return a.Interest > 0 || a.PenaltyInterest > 0
}

type Calculator struct {
	terms Terms
}

func NewCalculator(terms Terms) *Calculator {
	return &Calculator{terms: terms}
}

// TermMonths returns the repayment term the calculator was built with.
func (c *Calculator) TermMonths() int {
	return c.terms.TermMonths
}

// MonthsBetween counts the whole calendar months from one date to
// another: year*12+month difference, plus one when the later day of
// month has passed the earlier one. A partial month past the anniversary
// day counts as a full elapsed month; a date exactly on the anniversary
// does not. The same rule is applied to every month count in this
// package so penalty boundaries cannot drift by a month between counts.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() > from.Day() {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// Compute returns the accrual for a loan as of evalDate.
//
// lastInterestPaid is the date of the most recent interest payment and
// may be the zero time when no interest payment has ever been made; the
// accrual window then anchors at the loan date.
func (c *Calculator) Compute(loanDate time.Time, remaining int64, lastInterestPaid, evalDate time.Time) Accrual {
	if loanDate.IsZero() || evalDate.IsZero() || remaining <= 0 {
		return Accrual{}
	}

	totalMonths := MonthsBetween(loanDate, evalDate)

	// Principal tranche of the suggested installment.
	perMonth := c.terms.Principal / int64(c.terms.TermMonths)
	shouldHavePaid := perMonth * int64(totalMonths)
	alreadyPaid := c.terms.Principal - remaining

	var tranche int64
	switch {
	case alreadyPaid >= shouldHavePaid:
		// Ahead of schedule, no principal due this installment.
		tranche = 0
	case totalMonths <= c.terms.TermMonths:
		tranche = shouldHavePaid - alreadyPaid
	default:
		// Term fully elapsed: everything still owed is due at once.
		tranche = remaining
	}

	if lastInterestPaid.IsZero() {
		lastInterestPaid = loanDate
	}
	lastPaymentMonths := MonthsBetween(loanDate, lastInterestPaid)

	unpaidMonths := totalMonths - lastPaymentMonths
	if unpaidMonths < 0 {
		unpaidMonths = 0
	}

	penaltyMonths := 0
	if totalMonths > c.terms.TermMonths {
		dueMonths := totalMonths - c.terms.TermMonths
		if unpaidMonths > dueMonths {
			penaltyMonths = dueMonths
		} else {
			penaltyMonths = unpaidMonths
		}
	}

	interest := c.monthlyInterest(remaining, unpaidMonths)
	penalty := c.monthlyInterest(remaining, penaltyMonths)

	return Accrual{
		Interest:        interest,
		PenaltyInterest: penalty,
		Installment:     tranche + interest + penalty,
		TotalMonths:     totalMonths,
		UnpaidMonths:    unpaidMonths,
		PenaltyMonths:   penaltyMonths,
		Applicable:      true,
	}
}

// monthlyInterest is remaining * months * rate, rounded half-up to a
// whole currency unit.
func (c *Calculator) monthlyInterest(remaining int64, months int) int64 {
	if months <= 0 {
		return 0
	}
	amount := decimal.NewFromInt(remaining).
		Mul(c.terms.MonthlyRate).
		Mul(decimal.NewFromInt(int64(months)))
	return amount.Round(0).IntPart()
}
