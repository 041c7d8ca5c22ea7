package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/session"
)

// ExpenseRequest is the input of SubmitExpense.
type ExpenseRequest struct {
	// IdempotencyKey identifies one "add expense" action. Concurrent
	// submissions with the same key share a single write. When empty, a key
	// is derived from the request contents.
	IdempotencyKey string

	GroupID     string
	Description string
	Amount      money.Money

	// Date is YYYY-MM-DD; defaults to today (UTC).
	Date string

	// PaidBy defaults to the caller.
	PaidBy string

	// Participants defaults to every group member for an equal split.
	Participants []string

	Policy calculator.Policy
}

// SubmitExpense validates, allocates and persists a new expense with its
// splits, then reports it to the observer.
func (c *Coordinator) SubmitExpense(ctx context.Context, s *session.Session, req ExpenseRequest) (*models.Expense, error) {
	key := req.IdempotencyKey
	if key == "" {
		var actor string
		if s != nil {
			actor = s.MemberID
		}
		key = req.fingerprint(actor)
	}

	v, shared, err := c.share(ctx, "expense:"+key, func(ctx context.Context) (any, error) {
		return c.submitExpense(ctx, s, req)
	})
	if shared {
		c.logger.Info("Duplicate expense submission joined in-flight request", "group_id", req.GroupID, "key", key)
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Expense), nil
}

func (c *Coordinator) submitExpense(ctx context.Context, s *session.Session, req ExpenseRequest) (*models.Expense, error) {
	r := c.start("submit_expense", "group_id", req.GroupID)

	// Validating
	expense, participants, err := c.validateExpense(ctx, s, &req)
	if err != nil {
		return nil, r.fail(err)
	}

	// Allocating
	r.enter(PhaseAllocating)
	allocs, err := calculator.Allocate(req.Amount, participants, req.Policy)
	if err != nil {
		return nil, r.fail(err)
	}
	splits := make([]models.ExpenseSplit, len(allocs))
	for i, a := range allocs {
		splits[i] = models.ExpenseSplit{MemberID: a.MemberID, Share: a.Share, Amount: a.Amount}
	}

	// Persisting
	pctx, err := beginPersist(ctx, r)
	if err != nil {
		return nil, r.fail(err)
	}
	if err := c.repo.CreateExpense(pctx, expense); err != nil {
		return nil, r.fail(&PersistError{Op: "create expense", Err: err, Compensated: true})
	}
	if err := c.repo.CreateSplits(pctx, expense.ID, splits); err != nil {
		return nil, r.fail(c.compensateExpense(pctx, r, expense, err))
	}
	expense.Splits = splits

	r.commit()
	r.logger.Info("Expense committed",
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"splits", len(splits),
	)
	c.observer.ExpenseAdded(pctx, expense)
	return expense, nil
}

// compensateExpense deletes an expense row whose splits could not be written.
func (c *Coordinator) compensateExpense(ctx context.Context, r *run, expense *models.Expense, cause error) error {
	r.logger.Warn("Split write failed, deleting expense row", "expense_id", expense.ID, "error", cause)

	if err := c.repo.DeleteExpense(ctx, expense.ID); err != nil {
		metrics.Compensations.WithLabelValues("failed").Inc()
		r.logger.Error("Compensating delete failed, expense left without splits",
			"expense_id", expense.ID,
			"error", err,
		)
		return &PersistError{Op: "create splits", Err: errors.Join(cause, err), Compensated: false}
	}
	metrics.Compensations.WithLabelValues("ok").Inc()
	return &PersistError{Op: "create splits", Err: cause, Compensated: true}
}

func (c *Coordinator) validateExpense(ctx context.Context, s *session.Session, req *ExpenseRequest) (*models.Expense, []string, error) {
	if req.GroupID == "" {
		return nil, nil, invalid("group_id", "is required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, nil, invalid("description", "is required")
	}
	if !req.Amount.IsPositive() {
		return nil, nil, invalid("amount", "must be positive, got %s", req.Amount)
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, nil, invalid("date", "must be YYYY-MM-DD, got %q", date)
	}

	if _, err := c.requireMembership(ctx, s, req.GroupID); err != nil {
		return nil, nil, err
	}

	memberships, err := c.repo.ListMemberships(ctx, req.GroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}
	inGroup := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		inGroup[m.MemberID] = true
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = s.MemberID
	}
	if !inGroup[paidBy] {
		return nil, nil, invalid("paid_by", "%s is not a member of the group", paidBy)
	}

	participants := req.Participants
	if len(participants) == 0 {
		if req.Policy.Kind != calculator.PolicyEqual {
			return nil, nil, invalid("participants", "are required for a %s split", req.Policy.Kind)
		}
		for _, m := range memberships {
			participants = append(participants, m.MemberID)
		}
	}
	if len(participants) == 0 {
		return nil, nil, invalid("participants", "at least one is required")
	}
	for _, p := range participants {
		if !inGroup[p] {
			return nil, nil, invalid("participants", "%s is not a member of the group", p)
		}
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		CreatedBy:   s.MemberID,
		PaidBy:      paidBy,
		Description: description,
		Amount:      req.Amount,
		Date:        date,
	}
	return expense, participants, nil
}

// fingerprint identifies a request by its contents.
func (req *ExpenseRequest) fingerprint(actor string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%d|%s|%s|%s|%s",
		actor, req.GroupID, req.Description, req.Amount.Cents(), req.Date, req.PaidBy,
		strings.Join(req.Participants, ","), req.Policy.Kind)
	for _, w := range req.Policy.Weights {
		b.WriteString("|" + w.String())
	}
	for _, a := range req.Policy.Amounts {
		fmt.Fprintf(&b, "|%d", a.Cents())
	}
	return b.String()
}

// DeleteExpense removes an expense and its splits. Only the creator or a
// group admin may delete.
func (c *Coordinator) DeleteExpense(ctx context.Context, s *session.Session, expenseID string) error {
	r := c.start("delete_expense", "expense_id", expenseID)

	expense, err := c.repo.GetExpense(ctx, expenseID)
	if err != nil {
		return r.fail(fmt.Errorf("failed to load expense: %w", err))
	}
	membership, err := c.requireMembership(ctx, s, expense.GroupID)
	if err != nil {
		return r.fail(err)
	}
	if expense.CreatedBy != s.MemberID && !membership.IsAdmin() {
		return r.fail(fmt.Errorf("%w: only the creator or an admin can delete an expense", ErrForbidden))
	}

	pctx, err := beginPersist(ctx, r)
	if err != nil {
		return r.fail(err)
	}
	if err := c.repo.DeleteExpense(pctx, expenseID); err != nil {
		return r.fail(&PersistError{Op: "delete expense", Err: err, Compensated: true})
	}

	r.commit()
	r.logger.Info("Expense deleted", "group_id", expense.GroupID)
	c.observer.ExpenseRemoved(pctx, expense.GroupID, expenseID)
	return nil
}
