package coordinator

import (
	"context"

	"github.com/mmynk/groupledger/internal/models"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=coordinator

// Repository is the slice of storage the coordinator writes through.
// storage.Store satisfies it.
type Repository interface {
	GetMembership(ctx context.Context, groupID, memberID string) (*models.Membership, error)
	ListMemberships(ctx context.Context, groupID string) ([]*models.Membership, error)
	DeleteMembership(ctx context.Context, groupID, memberID string) error

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	CreateSplits(ctx context.Context, expenseID string, splits []models.ExpenseSplit) error
	ListSplitsByMember(ctx context.Context, groupID, memberID string) ([]models.ExpenseSplit, error)
	DeleteSplits(ctx context.Context, memberID string, expenseIDs []string) (int64, error)

	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
}

// Observer is told about every committed mutation, in commit order.
// ledger.Cache implements it.
type Observer interface {
	ExpenseAdded(ctx context.Context, expense *models.Expense)
	ExpenseRemoved(ctx context.Context, groupID, expenseID string)
	SettlementAdded(ctx context.Context, settlement *models.Settlement)
	MemberRemoved(ctx context.Context, groupID, memberID string)
}
