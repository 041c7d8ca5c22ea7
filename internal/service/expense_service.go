package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/coordinator"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
	"github.com/mmynk/groupledger/pkg/api/apiconnect"
)

// ExpenseService handles split previews and the expense lifecycle.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
	coord *coordinator.Coordinator
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, coord *coordinator.Coordinator) *ExpenseService {
	return &ExpenseService{store: store, coord: coord}
}

// PreviewSplit allocates an amount without persisting anything.
func (s *ExpenseService) PreviewSplit(
	ctx context.Context,
	req *connect.Request[api.PreviewSplitRequest],
) (*connect.Response[api.PreviewSplitResponse], error) {
	slog.Info("PreviewSplit request received",
		"amount", req.Msg.Amount,
		"policy", req.Msg.Split.Policy,
		"participants", len(req.Msg.Split.Participants),
	)

	total, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}
	policy, err := parsePolicy(req.Msg.Split)
	if err != nil {
		return nil, err
	}

	allocs, err := calculator.Allocate(total, req.Msg.Split.Participants, policy)
	if err != nil {
		slog.Warn("Split rejected", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Allocation, len(allocs))
	for i, a := range allocs {
		out[i] = &api.Allocation{
			MemberID: a.MemberID,
			Share:    shareString(a.Share),
			Percent:  percentString(a.Share),
			Amount:   a.Amount.String(),
		}
	}
	return connect.NewResponse(&api.PreviewSplitResponse{Allocations: out}), nil
}

// RebalanceShares replays percentage edits over a participant list and
// returns the settled shares.
func (s *ExpenseService) RebalanceShares(
	ctx context.Context,
	req *connect.Request[api.RebalanceSharesRequest],
) (*connect.Response[api.RebalanceSharesResponse], error) {
	slog.Info("RebalanceShares request received",
		"participants", len(req.Msg.Participants),
		"edits", len(req.Msg.Edits),
	)

	r := calculator.NewRebalancer()
	if err := r.SetParticipants(req.Msg.Participants); err != nil {
		return nil, toConnectError(err)
	}
	for _, edit := range req.Msg.Edits {
		if edit == nil {
			continue
		}
		if err := r.EditShare(edit.MemberID, edit.Units); err != nil {
			return nil, toConnectError(err)
		}
	}

	entries := r.Entries()
	out := &api.RebalanceSharesResponse{
		Entries: make([]*api.ShareEntry, len(entries)),
		Total:   r.Total(),
		Valid:   r.IsValid(),
	}
	for i, e := range entries {
		out.Entries[i] = &api.ShareEntry{
			MemberID: e.MemberID,
			Units:    e.Units,
			Locked:   e.State == calculator.StateLocked,
		}
	}

	if req.Msg.Amount != "" {
		total, err := parseAmount("amount", req.Msg.Amount)
		if err != nil {
			return nil, err
		}
		if !total.IsPositive() {
			return nil, toConnectError(calculator.ErrInvalidTotal)
		}
		for i, amount := range r.AmountView(total) {
			out.Entries[i].Amount = amount.String()
		}
	}

	return connect.NewResponse(out), nil
}

// SubmitExpense records an expense with its splits.
func (s *ExpenseService) SubmitExpense(
	ctx context.Context,
	req *connect.Request[api.SubmitExpenseRequest],
) (*connect.Response[api.SubmitExpenseResponse], error) {
	slog.Info("SubmitExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"policy", req.Msg.Split.Policy,
	)

	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}
	policy, err := parsePolicy(req.Msg.Split)
	if err != nil {
		return nil, err
	}

	key := req.Msg.IdempotencyKey
	if key == "" {
		key = req.Header().Get("Idempotency-Key")
	}

	expense, err := s.coord.SubmitExpense(ctx, sess, coordinator.ExpenseRequest{
		IdempotencyKey: key,
		GroupID:        req.Msg.GroupID,
		Description:    req.Msg.Description,
		Amount:         amount,
		Date:           req.Msg.Date,
		PaidBy:         req.Msg.PaidBy,
		Participants:   req.Msg.Split.Participants,
		Policy:         policy,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SubmitExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(
	ctx context.Context,
	req *connect.Request[api.ListExpensesRequest],
) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	if _, _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("Failed to list expenses", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(
	ctx context.Context,
	req *connect.Request[api.DeleteExpenseRequest],
) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}
	if err := s.coord.DeleteExpense(ctx, sess, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
