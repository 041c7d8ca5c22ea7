package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/coordinator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/session"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
)

var errNoSession = errors.New("authentication required")

var hundred = big.NewRat(100, 1)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return err
	}

	var ve *coordinator.ValidationError
	var pe *coordinator.PersistError
	switch {
	case errors.As(err, &ve):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &pe):
		return connect.NewError(connect.CodeInternal, err)
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidWeights),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrDuplicateParticipant),
		errors.Is(err, calculator.ErrUnknownParticipant),
		errors.Is(err, calculator.ErrInvalidWeight),
		errors.Is(err, calculator.ErrInvalidShareTotal),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, calculator.ErrInvalidTotal):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, coordinator.ErrForbidden), errors.Is(err, coordinator.ErrNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadyMember):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func requireSession(ctx context.Context) (*session.Session, error) {
	s, ok := session.From(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}
	return s, nil
}

// requireMember checks that the caller belongs to the group.
func requireMember(ctx context.Context, store storage.Store, groupID string) (*session.Session, *models.Membership, error) {
	s, err := requireSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if groupID == "" {
		return nil, nil, invalidArgument("group_id required")
	}
	m, err := store.GetMembership(ctx, groupID, s.MemberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, connect.NewError(connect.CodePermissionDenied, coordinator.ErrNotMember)
	}
	if err != nil {
		return nil, nil, toConnectError(err)
	}
	return s, m, nil
}

func parseAmount(field, s string) (money.Money, error) {
	m, err := money.Parse(s)
	if err != nil {
		return 0, invalidArgument("%s: %v", field, err)
	}
	return m, nil
}

// parsePolicy turns a wire split into an allocation policy.
func parsePolicy(split api.Split) (calculator.Policy, error) {
	name := split.Policy
	if name == "" {
		name = calculator.PolicyEqual.String()
	}
	kind, err := calculator.ParsePolicyKind(name)
	if err != nil {
		return calculator.Policy{}, invalidArgument("split.policy: %v", err)
	}

	switch kind {
	case calculator.PolicyShares, calculator.PolicyPercentages:
		weights := make([]decimal.Decimal, len(split.Weights))
		for i, w := range split.Weights {
			d, err := decimal.NewFromString(w)
			if err != nil {
				return calculator.Policy{}, invalidArgument("split.weights[%d]: %q is not a number", i, w)
			}
			weights[i] = d
		}
		return calculator.Policy{Kind: kind, Weights: weights}, nil
	case calculator.PolicyAmounts:
		amounts := make([]money.Money, len(split.Amounts))
		for i, a := range split.Amounts {
			m, err := parseAmount(fmt.Sprintf("split.amounts[%d]", i), a)
			if err != nil {
				return calculator.Policy{}, err
			}
			amounts[i] = m
		}
		return calculator.Amounts(amounts...), nil
	}
	return calculator.Equal(), nil
}

func shareString(r *big.Rat) string {
	if r == nil {
		return ""
	}
	return r.RatString()
}

func percentString(r *big.Rat) string {
	if r == nil {
		return ""
	}
	return new(big.Rat).Mul(r, hundred).FloatString(2)
}

func memberToAPI(m *models.Member, ms *models.Membership) *api.Member {
	out := &api.Member{
		ID:            m.ID,
		DisplayName:   m.DisplayName,
		Email:         m.Email,
		PaymentHandle: m.PaymentHandle,
		Placeholder:   m.IsPlaceholder(),
	}
	if ms != nil {
		out.Role = string(ms.Role)
	}
	return out
}

func expenseToAPI(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		PaidBy:      e.Payer(),
		Description: e.Description,
		Amount:      e.Amount.String(),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		Splits:      make([]*api.ExpenseSplit, len(e.Splits)),
	}
	for i := range e.Splits {
		split := &e.Splits[i]
		out.Splits[i] = &api.ExpenseSplit{
			MemberID: split.MemberID,
			Share:    shareString(split.EffectiveShare(e.Amount)),
			Amount:   split.Amount.String(),
		}
	}
	return out
}

func settlementToAPI(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		PaidBy:    s.PaidBy,
		PaidTo:    s.PaidTo,
		Amount:    s.Amount.String(),
		ExpenseID: s.ExpenseID,
		CreatedAt: s.CreatedAt,
		CreatedBy: s.CreatedBy,
	}
}

func debtsToAPI(edges []calculator.DebtEdge) []*api.Debt {
	out := make([]*api.Debt, len(edges))
	for i, e := range edges {
		out[i] = &api.Debt{From: e.From, To: e.To, Amount: e.Amount.String()}
	}
	return out
}
