package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOverpayment is returned when a principal payment exceeds the
	// loan's remaining amount. The guarded decrement rejects it without
	// touching the balance.
	ErrOverpayment = errors.New("principal payment exceeds remaining loan amount")

	// ErrGuarantorLimit is returned when a proposed guarantor already
	// backs two active loans.
	ErrGuarantorLimit = errors.New("member already guarantees two active loans")

	// ErrDuplicateLoan is returned on a loan number collision.
	ErrDuplicateLoan = errors.New("loan number already exists")

	// ErrLoanLocked is returned when deleting a loan that has recorded
	// payments or was not created today.
	ErrLoanLocked = errors.New("loan has payments or is not deletable today")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid member number or password")
)
