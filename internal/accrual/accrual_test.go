package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testTerms() Terms {
	return Terms{
		MonthlyRate: decimal.RequireFromString("0.03"),
		TermMonths:  10,
		Principal:   10000,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"same day", date(2024, 1, 10), date(2024, 1, 10), 0},
		{"exact anniversary", date(2024, 1, 10), date(2024, 2, 10), 1},
		{"one day past anniversary", date(2024, 1, 10), date(2024, 2, 11), 2},
		{"day before anniversary", date(2024, 1, 10), date(2024, 6, 5), 5},
		{"across year boundary", date(2024, 1, 10), date(2025, 1, 10), 12},
		{"across year past day", date(2024, 1, 10), date(2025, 1, 15), 13},
		{"to before from clamps to zero", date(2024, 5, 1), date(2024, 4, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestCompute_DegenerateInputs(t *testing.T) {
	calc := NewCalculator(testTerms())

	t.Run("zero loan date", func(t *testing.T) {
		a := calc.Compute(time.Time{}, 10000, time.Time{}, date(2024, 6, 1))
		assert.False(t, a.Applicable)
		assert.Zero(t, a.Interest)
		assert.Zero(t, a.PenaltyInterest)
		assert.Zero(t, a.Installment)
	})

	t.Run("zero eval date", func(t *testing.T) {
		a := calc.Compute(date(2024, 1, 10), 10000, time.Time{}, time.Time{})
		assert.False(t, a.Applicable)
	})

	t.Run("paid off loan", func(t *testing.T) {
		a := calc.Compute(date(2024, 1, 10), 0, time.Time{}, date(2024, 6, 1))
		assert.False(t, a.Applicable)
		assert.Zero(t, a.Installment)
	})
}

func TestCompute_ZeroMonthIdempotence(t *testing.T) {
	calc := NewCalculator(testTerms())

	for _, remaining := range []int64{1, 500, 10000} {
		a := calc.Compute(date(2024, 1, 10), remaining, time.Time{}, date(2024, 1, 10))
		assert.True(t, a.Applicable)
		assert.Zero(t, a.Interest)
		assert.Zero(t, a.PenaltyInterest)
		assert.Zero(t, a.Installment)
	}
}

func TestCompute_OverdueLoanFullBalanceDue(t *testing.T) {
	// Loan of 10,000 originated 2024-01-10, no interest ever paid,
	// evaluated 2024-11-15. Day 15 is past the anniversary day, so 11
	// months have elapsed and the loan is one month past its term.
	calc := NewCalculator(testTerms())

	a := calc.Compute(date(2024, 1, 10), 10000, time.Time{}, date(2024, 11, 15))

	assert.True(t, a.Applicable)
	assert.Equal(t, 11, a.TotalMonths)
	assert.Equal(t, 11, a.UnpaidMonths)
	assert.Equal(t, 1, a.PenaltyMonths)
	assert.Equal(t, int64(3300), a.Interest)        // 10000 * 11 * 0.03
	assert.Equal(t, int64(300), a.PenaltyInterest)  // 10000 * 1 * 0.03
	assert.Equal(t, int64(13600), a.Installment)    // full balance + interest + penalty
	assert.True(t, a.HasArrears())
}

func TestCompute_WithinTerm(t *testing.T) {
	// Same loan evaluated 2024-06-05. Day 5 is before the anniversary
	// day, so only 5 whole months count and no penalty applies.
	calc := NewCalculator(testTerms())

	a := calc.Compute(date(2024, 1, 10), 10000, time.Time{}, date(2024, 6, 5))

	assert.Equal(t, 5, a.TotalMonths)
	assert.Zero(t, a.PenaltyMonths)
	assert.Zero(t, a.PenaltyInterest)
	assert.Equal(t, int64(1500), a.Interest)     // 10000 * 5 * 0.03
	assert.Equal(t, int64(6500), a.Installment)  // 5*1000 tranche + interest
}

func TestCompute_NoPenaltyWithinTerm(t *testing.T) {
	calc := NewCalculator(testTerms())
	loanDate := date(2024, 1, 10)

	// Every evaluation up to and including the 10-month anniversary is
	// penalty free; one day later the penalty window opens.
	for m := time.Month(2); m <= 11; m++ {
		a := calc.Compute(loanDate, 10000, time.Time{}, date(2024, m, 10))
		assert.Zero(t, a.PenaltyInterest, "month %d", m)
	}

	a := calc.Compute(loanDate, 10000, time.Time{}, date(2024, 11, 11))
	assert.Equal(t, 11, a.TotalMonths)
	assert.Equal(t, int64(300), a.PenaltyInterest)
}

func TestCompute_MonotonicInterest(t *testing.T) {
	calc := NewCalculator(testTerms())
	loanDate := date(2024, 1, 10)

	var prev int64
	for i := 0; i < 24; i++ {
		eval := loanDate.AddDate(0, i, 3)
		a := calc.Compute(loanDate, 8000, time.Time{}, eval)
		assert.GreaterOrEqual(t, a.Interest, prev, "eval %s", eval)
		prev = a.Interest
	}
}

func TestCompute_InterestAnchorsOnLastPayment(t *testing.T) {
	calc := NewCalculator(testTerms())
	loanDate := date(2024, 1, 10)

	// Interest settled through month 5 (payment on 2024-05-12 counts as
	// 5 months by the same day-of-month rule); nothing further accrues
	// by 2024-06-05.
	a := calc.Compute(loanDate, 10000, date(2024, 5, 12), date(2024, 6, 5))
	assert.Zero(t, a.UnpaidMonths)
	assert.Zero(t, a.Interest)
	assert.False(t, a.HasArrears())
	assert.Equal(t, int64(5000), a.Installment) // principal tranche only

	// One more elapsed month, one unpaid month.
	a = calc.Compute(loanDate, 10000, date(2024, 5, 12), date(2024, 7, 5))
	assert.Equal(t, 1, a.UnpaidMonths)
	assert.Equal(t, int64(300), a.Interest)
}

func TestCompute_AheadOfSchedule(t *testing.T) {
	calc := NewCalculator(testTerms())

	// 3,000 of principal repaid after two elapsed months; schedule only
	// required 2,000, so the tranche is zero and only interest is due.
	a := calc.Compute(date(2024, 1, 10), 7000, time.Time{}, date(2024, 3, 10))
	assert.Equal(t, 2, a.TotalMonths)
	assert.Equal(t, int64(420), a.Interest) // 7000 * 2 * 0.03
	assert.Equal(t, int64(420), a.Installment)
}

func TestCompute_PenaltyCappedByOverdueWindow(t *testing.T) {
	calc := NewCalculator(testTerms())
	loanDate := date(2024, 1, 10)

	// 14 elapsed months, nothing ever paid: 14 unpaid months but only
	// 4 overdue months attract penalty interest.
	a := calc.Compute(loanDate, 10000, time.Time{}, date(2025, 3, 15))
	assert.Equal(t, 14, a.TotalMonths)
	assert.Equal(t, 14, a.UnpaidMonths)
	assert.Equal(t, 4, a.PenaltyMonths)

	// Interest settled up to month 12: 2 unpaid months, both inside the
	// overdue window, so penalty covers the unpaid months only.
	a = calc.Compute(loanDate, 10000, date(2025, 1, 15), date(2025, 3, 15))
	assert.Equal(t, 2, a.UnpaidMonths)
	assert.Equal(t, 2, a.PenaltyMonths)
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	calc := NewCalculator(testTerms())

	// 50 * 1 * 0.03 = 1.5 rounds half-up to 2.
	a := calc.Compute(date(2024, 1, 10), 50, time.Time{}, date(2024, 2, 10))
	assert.Equal(t, 1, a.UnpaidMonths)
	assert.Equal(t, int64(2), a.Interest)

	// 25 * 1 * 0.03 = 0.75 rounds to 1.
	a = calc.Compute(date(2024, 1, 10), 25, time.Time{}, date(2024, 2, 10))
	assert.Equal(t, int64(1), a.Interest)
}
