// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/groupledger/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember is returned when a membership already exists for the
	// (group, member) pair.
	ErrAlreadyMember = errors.New("already a member of the group")
)

// Store defines the data-access operations over groups, members,
// memberships, expenses, expense splits and settlements.
//
// Inserts populate generated fields (ID, timestamps) on the passed row.
// Writes to different tables are not assumed to share a transaction;
// callers that need several rows to appear together must compensate on
// failure themselves.
type Store interface {
	// CreateGroup persists a new group.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if it does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// DeleteGroup removes a group with its memberships, expenses and
	// settlements.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateMember persists a new member profile.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member profile by ID. Returns ErrNotFound if it
	// does not exist.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// UpdateMember overwrites a member's display name, email and payment handle.
	UpdateMember(ctx context.Context, member *models.Member) error

	// AddMembership places a member in a group. Returns ErrAlreadyMember if
	// the pair already exists.
	AddMembership(ctx context.Context, m *models.Membership) error

	// GetMembership returns ErrNotFound if the member is not in the group.
	GetMembership(ctx context.Context, groupID, memberID string) (*models.Membership, error)

	// ListMemberships returns a group's memberships in join order.
	ListMemberships(ctx context.Context, groupID string) ([]*models.Membership, error)

	// DeleteMembership removes a member from a group.
	DeleteMembership(ctx context.Context, groupID, memberID string) error

	// CreateExpense persists the expense row only. Splits are written
	// separately with CreateSplits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses with their splits,
	// newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSplits persists every split of one expense, all or none.
	CreateSplits(ctx context.Context, expenseID string, splits []models.ExpenseSplit) error

	// ListSplitsByMember returns the member's splits across a group's expenses.
	ListSplitsByMember(ctx context.Context, groupID, memberID string) ([]models.ExpenseSplit, error)

	// DeleteSplits removes the member's splits from the given expenses and
	// reports how many rows were deleted.
	DeleteSplits(ctx context.Context, memberID string, expenseIDs []string) (int64, error)

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup returns a group's settlements, oldest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
