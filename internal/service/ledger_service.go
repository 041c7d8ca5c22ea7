package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/coordinator"
	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
	"github.com/mmynk/groupledger/pkg/api/apiconnect"
)

// LedgerService reports balances and records settlements.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	store  storage.Store
	coord  *coordinator.Coordinator
	ledger *ledger.Cache
}

// NewLedgerService creates a new LedgerService. The cache must also be the
// coordinator's observer so that committed mutations reach it.
func NewLedgerService(store storage.Store, coord *coordinator.Coordinator, cache *ledger.Cache) *LedgerService {
	return &LedgerService{store: store, coord: coord, ledger: cache}
}

// GetBalances returns net balances, pairwise debts and a simplified
// repayment plan.
func (s *LedgerService) GetBalances(
	ctx context.Context,
	req *connect.Request[api.GetBalancesRequest],
) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "group_id", req.Msg.GroupID)

	if _, _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	view, err := s.ledger.For(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("Failed to load balances", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	balances := make([]*api.Balance, len(view.Members))
	for i, b := range view.Members {
		balances[i] = &api.Balance{
			MemberID: b.MemberID,
			Net:      b.NetBalance.String(),
			Paid:     b.TotalPaid.String(),
			Owed:     b.TotalOwed.String(),
		}
	}

	return connect.NewResponse(&api.GetBalancesResponse{
		Version:    view.Version,
		Balances:   balances,
		Debts:      debtsToAPI(view.Pairwise),
		Simplified: debtsToAPI(view.Simplified),
	}), nil
}

// AddSettlement records a repayment between two members.
func (s *LedgerService) AddSettlement(
	ctx context.Context,
	req *connect.Request[api.AddSettlementRequest],
) (*connect.Response[api.AddSettlementResponse], error) {
	slog.Info("AddSettlement request received",
		"group_id", req.Msg.GroupID,
		"paid_by", req.Msg.PaidBy,
		"paid_to", req.Msg.PaidTo,
		"amount", req.Msg.Amount,
	)

	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}

	settlement, err := s.coord.AddSettlement(ctx, sess, coordinator.SettlementRequest{
		GroupID:   req.Msg.GroupID,
		PaidBy:    req.Msg.PaidBy,
		PaidTo:    req.Msg.PaidTo,
		Amount:    amount,
		ExpenseID: req.Msg.ExpenseID,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddSettlementResponse{Settlement: settlementToAPI(settlement)}), nil
}

// ListSettlements returns a group's settlements, oldest first.
func (s *LedgerService) ListSettlements(
	ctx context.Context,
	req *connect.Request[api.ListSettlementsRequest],
) (*connect.Response[api.ListSettlementsResponse], error) {
	slog.Info("ListSettlements request received", "group_id", req.Msg.GroupID)

	if _, _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = settlementToAPI(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}
