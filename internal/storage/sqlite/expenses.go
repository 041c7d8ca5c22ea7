package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/storage"
)

const expenseColumns = "id, group_id, created_by, paid_by, description, amount, date, created_at"

// CreateExpense persists the expense row without splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	if e.PaidBy == "" {
		e.PaidBy = e.CreatedBy
	}
	if e.Date == "" {
		e.Date = time.Unix(e.CreatedAt, 0).UTC().Format(time.DateOnly)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GroupID, e.CreatedBy, e.PaidBy, e.Description, e.Amount.Cents(), e.Date, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	splits, err := s.querySplits(ctx,
		`SELECT id, expense_id, member_id, share, amount FROM expense_splits
		 WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	e.Splits = splits
	return e, nil
}

// ListExpensesByGroup returns a group's expenses with their splits, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ?
		 ORDER BY date DESC, created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}

	splits, err := s.querySplits(ctx,
		`SELECT s.id, s.expense_id, s.member_id, s.share, s.amount
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.group_id = ? ORDER BY s.expense_id, s.position`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	for _, split := range splits {
		if e, ok := byID[split.ExpenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its splits in one transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := requireAffected(res, "expense", expenseID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateSplits persists every split of one expense in one transaction.
// Split IDs are generated when empty.
func (s *SQLiteStore) CreateSplits(ctx context.Context, expenseID string, splits []models.ExpenseSplit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range splits {
		split := &splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expenseID

		var share any
		if split.Share != nil {
			share = split.Share.RatString()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, member_id, position, share, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			split.ID, expenseID, split.MemberID, i, share, split.Amount.Cents(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split for %s: %w", split.MemberID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListSplitsByMember returns the member's splits across a group's expenses.
func (s *SQLiteStore) ListSplitsByMember(ctx context.Context, groupID, memberID string) ([]models.ExpenseSplit, error) {
	return s.querySplits(ctx,
		`SELECT s.id, s.expense_id, s.member_id, s.share, s.amount
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.group_id = ? AND s.member_id = ? ORDER BY s.expense_id`,
		groupID, memberID,
	)
}

// DeleteSplits removes the member's splits from the listed expenses.
func (s *SQLiteStore) DeleteSplits(ctx context.Context, memberID string, expenseIDs []string) (int64, error) {
	if len(expenseIDs) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(expenseIDs)+1)
	args = append(args, memberID)
	for _, id := range expenseIDs {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM expense_splits WHERE member_id = ? AND expense_id IN (`+placeholders(len(expenseIDs))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete splits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted splits: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	var cents int64
	if err := row.Scan(&e.ID, &e.GroupID, &e.CreatedBy, &e.PaidBy, &e.Description, &cents, &e.Date, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Amount = money.FromCents(cents)
	return e, nil
}

func (s *SQLiteStore) querySplits(ctx context.Context, query string, args ...any) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var share sql.NullString
		var cents int64
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.MemberID, &share, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.FromCents(cents)
		if share.Valid {
			r, ok := new(big.Rat).SetString(share.String)
			if !ok {
				return nil, fmt.Errorf("split %s has malformed share %q", split.ID, share.String)
			}
			split.Share = r
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}
