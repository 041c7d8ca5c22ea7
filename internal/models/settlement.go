package models

import "github.com/mmynk/groupledger/internal/money"

// Settlement records a real-world repayment between group members.
// Settlements are append-only.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// PaidBy is the member who paid (debtor settling up).
	PaidBy string

	// PaidTo is the member who received payment (creditor being paid).
	PaidTo string

	// Amount is the payment amount.
	Amount money.Money

	// ExpenseID optionally ties the settlement to one expense. Informational:
	// the settlement still counts after that expense is deleted.
	ExpenseID string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the member who recorded this settlement.
	CreatedBy string
}
