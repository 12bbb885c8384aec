package domain

import "time"

// MembershipPayment is a payment toward the member's yearly membership dues.
type MembershipPayment struct {
	ID       int64     `json:"id"`
	MemberID int64     `json:"member_id"`
	Date     time.Time `json:"date"`
	Amount   int64     `json:"amount"`
}

// FinePayment settles fines and legacy previous dues. Recording one
// decrements the member's PreviousDue; deleting it restores exactly the
// amount that was subtracted.
type FinePayment struct {
	ID       int64     `json:"id"`
	MemberID int64     `json:"member_id"`
	Date     time.Time `json:"date"`
	Amount   int64     `json:"amount"`
}

// ReceiptLine is one member's entry on a collection-day receipt sheet.
type ReceiptLine struct {
	MemberNo          int32 `json:"member_no"`
	MembershipPayment int64 `json:"membership_payment"`
	FinePayment       int64 `json:"fine_payment"`
}

// ReceiptResult summarises a processed receipt batch.
type ReceiptResult struct {
	MembershipPayments int      `json:"membership_payments"`
	FinePayments       int      `json:"fine_payments"`
	Errors             []string `json:"errors,omitempty"`
}
