package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/session"
	"github.com/mmynk/groupledger/internal/storage"
)

// SettlementRequest is the input of AddSettlement.
type SettlementRequest struct {
	GroupID string
	PaidBy  string
	PaidTo  string
	Amount  money.Money

	// ExpenseID optionally ties the settlement to an expense of the group.
	ExpenseID string
}

// AddSettlement records a repayment between two members of a group.
func (c *Coordinator) AddSettlement(ctx context.Context, s *session.Session, req SettlementRequest) (*models.Settlement, error) {
	r := c.start("add_settlement", "group_id", req.GroupID)

	if !req.Amount.IsPositive() {
		return nil, r.fail(invalid("amount", "must be positive, got %s", req.Amount))
	}
	if req.PaidBy == "" || req.PaidTo == "" {
		return nil, r.fail(invalid("paid_by", "payer and payee are required"))
	}
	if req.PaidBy == req.PaidTo {
		return nil, r.fail(invalid("paid_to", "cannot settle with yourself"))
	}
	if _, err := c.requireMembership(ctx, s, req.GroupID); err != nil {
		return nil, r.fail(err)
	}

	for _, party := range []struct{ field, id string }{{"paid_by", req.PaidBy}, {"paid_to", req.PaidTo}} {
		_, err := c.repo.GetMembership(ctx, req.GroupID, party.id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, r.fail(invalid(party.field, "%s is not a member of the group", party.id))
		}
		if err != nil {
			return nil, r.fail(fmt.Errorf("failed to load membership: %w", err))
		}
	}
	if req.ExpenseID != "" {
		expense, err := c.repo.GetExpense(ctx, req.ExpenseID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, r.fail(fmt.Errorf("failed to load expense: %w", err))
		}
		if err != nil || expense.GroupID != req.GroupID {
			return nil, r.fail(invalid("expense_id", "%s is not an expense of the group", req.ExpenseID))
		}
	}

	pctx, err := beginPersist(ctx, r)
	if err != nil {
		return nil, r.fail(err)
	}
	settlement := &models.Settlement{
		GroupID:   req.GroupID,
		PaidBy:    req.PaidBy,
		PaidTo:    req.PaidTo,
		Amount:    req.Amount,
		ExpenseID: req.ExpenseID,
		CreatedBy: s.MemberID,
	}
	if err := c.repo.CreateSettlement(pctx, settlement); err != nil {
		return nil, r.fail(&PersistError{Op: "create settlement", Err: err, Compensated: true})
	}

	r.commit()
	r.logger.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"paid_by", settlement.PaidBy,
		"paid_to", settlement.PaidTo,
		"amount", settlement.Amount.String(),
	)
	c.observer.SettlementAdded(pctx, settlement)
	return settlement, nil
}
