package models

import (
	"math/big"

	"github.com/mmynk/groupledger/internal/money"
)

// Expense is an amount paid by one member on behalf of a group.
// It owns exactly one set of splits whose amounts add up to Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// CreatedBy is the member who recorded the expense.
	CreatedBy string

	// PaidBy is the member who paid. Defaults to CreatedBy.
	PaidBy string

	// Description is a human-readable label (e.g., "Groceries").
	Description string

	// Amount is the total paid.
	Amount money.Money

	// Date is the day the expense happened, formatted YYYY-MM-DD.
	Date string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits is the allocation of Amount across participants.
	// Populated by reads that load splits; empty for the bare row.
	Splits []ExpenseSplit
}

// Payer returns PaidBy, falling back to CreatedBy.
func (e *Expense) Payer() string {
	if e.PaidBy != "" {
		return e.PaidBy
	}
	return e.CreatedBy
}

// SplitTotal sums the split amounts.
func (e *Expense) SplitTotal() money.Money {
	var total money.Money
	for _, s := range e.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// ExpenseSplit is one member's part of an expense.
type ExpenseSplit struct {
	// ID is the unique identifier for the split row (UUID format).
	ID string

	ExpenseID string
	MemberID  string

	// Share is the advisory fraction of the total. Nil when unknown;
	// use EffectiveShare for display.
	Share *big.Rat

	// Amount is authoritative.
	Amount money.Money
}

// EffectiveShare returns Share, or Amount/total when Share is nil.
func (s *ExpenseSplit) EffectiveShare(total money.Money) *big.Rat {
	if s.Share != nil {
		return new(big.Rat).Set(s.Share)
	}
	if total.IsZero() {
		return new(big.Rat)
	}
	return big.NewRat(s.Amount.Cents(), total.Cents())
}
