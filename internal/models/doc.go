// Package models defines the row types shared by the ledger engine and the
// data-access layer.
//
// # Models
//
//   - Group: a set of people sharing expenses
//   - Member: a profile, either linked to an authenticated identity or a
//     placeholder managed by group admins
//   - Membership: a member's role within one group
//   - Expense and ExpenseSplit: an amount paid by one member and its
//     allocation across participants
//   - Settlement: a recorded repayment between two members
//
// # Design Principles
//
// 1. **Exact money**: every amount is a money.Money (integer cents)
// 2. **IDs, not pointers**: relationships reference ID strings
// 3. **Explicit rows**: the storage layer maps its rows onto these types at the
// boundary so nothing downstream handles loosely-typed maps
package models
