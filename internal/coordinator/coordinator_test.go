package coordinator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/session"
	"github.com/mmynk/groupledger/internal/storage"
)

const groupID = "g1"

var (
	alice = &session.Session{MemberID: "alice"}
	bob   = &session.Session{MemberID: "bob"}
)

type fixture struct {
	repo     *MockRepository
	observer *MockObserver
	coord    *Coordinator

	// validating, when set, runs inside every membership lookup.
	validating func()
}

// newFixture wires a coordinator to mocks. The group has alice (admin),
// bob and carol; membership reads may happen any number of times.
func newFixture(t *testing.T, opts ...Option) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:     NewMockRepository(ctrl),
		observer: NewMockObserver(ctrl),
	}
	f.coord = New(f.repo, append([]Option{
		WithObserver(f.observer),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)...)

	members := []*models.Membership{
		{GroupID: groupID, MemberID: "alice", Role: models.RoleAdmin},
		{GroupID: groupID, MemberID: "bob", Role: models.RoleMember},
		{GroupID: groupID, MemberID: "carol", Role: models.RoleMember},
	}
	f.repo.EXPECT().GetMembership(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, g, m string) (*models.Membership, error) {
			if f.validating != nil {
				f.validating()
			}
			for _, ms := range members {
				if ms.GroupID == g && ms.MemberID == m {
					return ms, nil
				}
			}
			return nil, storage.ErrNotFound
		}).AnyTimes()
	f.repo.EXPECT().ListMemberships(gomock.Any(), groupID).Return(members, nil).AnyTimes()
	return f
}

func assignID(id string) func(context.Context, *models.Expense) error {
	return func(_ context.Context, e *models.Expense) error {
		e.ID = id
		return nil
	}
}

func TestSubmitExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e1")),
		f.repo.EXPECT().CreateSplits(gomock.Any(), "e1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, splits []models.ExpenseSplit) error {
				require.Len(t, splits, 3)
				assert.Equal(t, money.Money(3334), splits[0].Amount)
				return nil
			}),
		f.observer.EXPECT().ExpenseAdded(gomock.Any(), gomock.Any()).Do(
			func(_ context.Context, e *models.Expense) {
				assert.Equal(t, "e1", e.ID)
				assert.Len(t, e.Splits, 3)
			}),
	)

	expense, err := f.coord.SubmitExpense(ctx, alice, ExpenseRequest{
		GroupID:     groupID,
		Description: "  Groceries ",
		Amount:      money.MustParse("100.00"),
		Date:        "2024-05-01",
		Policy:      calculator.Equal(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Groceries", expense.Description)
	assert.Equal(t, "alice", expense.CreatedBy)
	assert.Equal(t, "alice", expense.PaidBy)
	assert.Equal(t, []money.Money{3334, 3333, 3333}, []money.Money{
		expense.Splits[0].Amount, expense.Splits[1].Amount, expense.Splits[2].Amount,
	})
	assert.Equal(t, expense.Amount, expense.SplitTotal())
}

func TestSubmitExpense_Shares(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e2"))
	f.repo.EXPECT().CreateSplits(gomock.Any(), "e2", gomock.Any()).Return(nil)
	f.observer.EXPECT().ExpenseAdded(gomock.Any(), gomock.Any())

	expense, err := f.coord.SubmitExpense(context.Background(), bob, ExpenseRequest{
		GroupID:      groupID,
		Description:  "Cabin",
		Amount:       money.MustParse("90.00"),
		PaidBy:       "carol",
		Participants: []string{"alice", "bob"},
		Policy:       calculator.Shares(decimal.NewFromInt(1), decimal.NewFromInt(2)),
	})
	require.NoError(t, err)
	assert.Equal(t, "carol", expense.PaidBy)
	assert.Equal(t, "bob", expense.CreatedBy)
	assert.Equal(t, money.MustParse("30.00"), expense.Splits[0].Amount)
	assert.Equal(t, money.MustParse("60.00"), expense.Splits[1].Amount)
}

func TestSubmitExpense_Rejected(t *testing.T) {
	valid := ExpenseRequest{
		GroupID:     groupID,
		Description: "Taxi",
		Amount:      money.MustParse("100.00"),
		Policy:      calculator.Equal(),
	}

	tests := []struct {
		name      string
		session   *session.Session
		mutate    func(r *ExpenseRequest)
		wantField string
		wantErr   error
	}{
		{name: "missing description", mutate: func(r *ExpenseRequest) { r.Description = "   " }, wantField: "description"},
		{name: "zero amount", mutate: func(r *ExpenseRequest) { r.Amount = 0 }, wantField: "amount"},
		{name: "bad date", mutate: func(r *ExpenseRequest) { r.Date = "01/05/2024" }, wantField: "date"},
		{name: "missing group", mutate: func(r *ExpenseRequest) { r.GroupID = "" }, wantField: "group_id"},
		{name: "payer outside group", mutate: func(r *ExpenseRequest) { r.PaidBy = "mallory" }, wantField: "paid_by"},
		{name: "participant outside group", mutate: func(r *ExpenseRequest) { r.Participants = []string{"alice", "mallory"} }, wantField: "participants"},
		{
			name: "weighted split needs participants",
			mutate: func(r *ExpenseRequest) {
				r.Policy = calculator.Shares(decimal.NewFromInt(1))
			},
			wantField: "participants",
		},
		{
			name:    "caller outside group",
			session: &session.Session{MemberID: "mallory"},
			mutate:  func(r *ExpenseRequest) {},
			wantErr: ErrNotMember,
		},
		{
			name:    "no session",
			mutate:  func(r *ExpenseRequest) {},
			wantErr: ErrNotMember,
		},
		{
			name: "explicit amounts one cent short",
			mutate: func(r *ExpenseRequest) {
				r.Participants = []string{"alice", "bob"}
				r.Policy = calculator.Amounts(money.MustParse("50.00"), money.MustParse("49.99"))
			},
			wantErr: calculator.ErrSplitMismatch,
		},
		{
			name: "percentages off by more than a hundredth",
			mutate: func(r *ExpenseRequest) {
				r.Participants = []string{"alice", "bob"}
				r.Policy = calculator.Percentages(decimal.NewFromInt(50), decimal.RequireFromString("49.98"))
			},
			wantErr: calculator.ErrInvalidShareTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No write expectations: any write fails the test.
			f := newFixture(t)

			req := valid
			tt.mutate(&req)
			s := tt.session
			if s == nil && tt.name != "no session" {
				s = alice
			}

			_, err := f.coord.SubmitExpense(context.Background(), s, req)
			require.Error(t, err)
			if tt.wantField != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitExpense_CompensatesFailedSplits(t *testing.T) {
	writeErr := errors.New("connection reset")

	t.Run("expense row deleted", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e1")),
			f.repo.EXPECT().CreateSplits(gomock.Any(), "e1", gomock.Any()).Return(writeErr),
			f.repo.EXPECT().DeleteExpense(gomock.Any(), "e1").Return(nil),
		)

		_, err := f.coord.SubmitExpense(context.Background(), alice, ExpenseRequest{
			GroupID: groupID, Description: "Hotel", Amount: 30000, Policy: calculator.Equal(),
		})
		var pe *PersistError
		require.ErrorAs(t, err, &pe)
		assert.True(t, pe.Compensated)
		assert.Equal(t, "create splits", pe.Op)
		assert.ErrorIs(t, err, writeErr)
	})

	t.Run("compensation fails too", func(t *testing.T) {
		f := newFixture(t)
		deleteErr := errors.New("disk full")
		f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e1"))
		f.repo.EXPECT().CreateSplits(gomock.Any(), "e1", gomock.Any()).Return(writeErr)
		f.repo.EXPECT().DeleteExpense(gomock.Any(), "e1").Return(deleteErr)

		_, err := f.coord.SubmitExpense(context.Background(), alice, ExpenseRequest{
			GroupID: groupID, Description: "Hotel", Amount: 30000, Policy: calculator.Equal(),
		})
		var pe *PersistError
		require.ErrorAs(t, err, &pe)
		assert.False(t, pe.Compensated)
		assert.ErrorIs(t, err, writeErr)
		assert.ErrorIs(t, err, deleteErr)
	})

	t.Run("expense row not written", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(writeErr)

		_, err := f.coord.SubmitExpense(context.Background(), alice, ExpenseRequest{
			GroupID: groupID, Description: "Hotel", Amount: 30000, Policy: calculator.Equal(),
		})
		var pe *PersistError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "create expense", pe.Op)
	})
}

func TestSubmitExpense_CancelledBeforePersisting(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.coord.SubmitExpense(ctx, alice, ExpenseRequest{
		GroupID: groupID, Description: "Lunch", Amount: 1500, Policy: calculator.Equal(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitExpense_DuplicateSubmissionWritesOnce(t *testing.T) {
	f := newFixture(t)
	release := make(chan struct{})

	f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *models.Expense) error {
			<-release
			e.ID = "e1"
			return nil
		}).Times(1)
	f.repo.EXPECT().CreateSplits(gomock.Any(), "e1", gomock.Any()).Return(nil).Times(1)
	f.observer.EXPECT().ExpenseAdded(gomock.Any(), gomock.Any()).Times(1)

	req := ExpenseRequest{
		IdempotencyKey: "form-1",
		GroupID:        groupID,
		Description:    "Concert",
		Amount:         9000,
		Policy:         calculator.Equal(),
	}

	var wg sync.WaitGroup
	results := make([]*models.Expense, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := f.coord.SubmitExpense(context.Background(), alice, req)
			assert.NoError(t, err)
			results[i] = e
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
}

// notifyHandler closes done the first time a record with msg is logged.
type notifyHandler struct {
	slog.Handler
	msg  string
	once *sync.Once
	done chan struct{}
}

func newNotifyHandler(msg string) notifyHandler {
	return notifyHandler{
		Handler: slog.NewTextHandler(io.Discard, nil),
		msg:     msg,
		once:    &sync.Once{},
		done:    make(chan struct{}),
	}
}

func (h notifyHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Message == h.msg {
		h.once.Do(func() { close(h.done) })
	}
	return nil
}

func (h notifyHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h notifyHandler) WithGroup(string) slog.Handler      { return h }

// blockValidation holds the next membership lookup until release is closed
// and reports on entered once it is reached.
func (f *fixture) blockValidation() (entered <-chan struct{}, release chan struct{}) {
	in := make(chan struct{}, 1)
	release = make(chan struct{})
	f.validating = func() {
		select {
		case in <- struct{}{}:
		default:
		}
		<-release
	}
	return in, release
}

func TestSubmitExpense_DuplicateOutlivesCancelledCaller(t *testing.T) {
	f := newFixture(t)
	entered, release := f.blockValidation()

	f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e1")).Times(1)
	f.repo.EXPECT().CreateSplits(gomock.Any(), "e1", gomock.Any()).Return(nil).Times(1)
	f.observer.EXPECT().ExpenseAdded(gomock.Any(), gomock.Any()).Times(1)

	req := ExpenseRequest{
		IdempotencyKey: "form-2",
		GroupID:        groupID,
		Description:    "Taxi",
		Amount:         4500,
		Policy:         calculator.Equal(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := f.coord.SubmitExpense(ctx, alice, req)
		first <- err
	}()
	<-entered

	type result struct {
		expense *models.Expense
		err     error
	}
	second := make(chan result, 1)
	go func() {
		e, err := f.coord.SubmitExpense(context.Background(), alice, req)
		second <- result{e, err}
	}()
	time.Sleep(100 * time.Millisecond)

	// The first caller walks away while the shared call is still validating.
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "e1", res.expense.ID)
}

func TestSubmitExpense_AbandonedBeforePersistingWritesNothing(t *testing.T) {
	logs := newNotifyHandler("Mutation rejected")
	f := newFixture(t, WithLogger(slog.New(logs)))
	entered, release := f.blockValidation()

	req := ExpenseRequest{
		IdempotencyKey: "form-3",
		GroupID:        groupID,
		Description:    "Museum",
		Amount:         3000,
		Policy:         calculator.Equal(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.coord.SubmitExpense(ctx, alice, req)
		done <- err
	}()
	<-entered
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// The abandoned call stops at the persist boundary without writing.
	close(release)
	select {
	case <-logs.done:
	case <-time.After(5 * time.Second):
		t.Fatal("abandoned submission did not stop")
	}

	// A later submission with the same key is not handed the cancelled result.
	f.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).DoAndReturn(assignID("e2")).Times(1)
	f.repo.EXPECT().CreateSplits(gomock.Any(), "e2", gomock.Any()).Return(nil).Times(1)
	f.observer.EXPECT().ExpenseAdded(gomock.Any(), gomock.Any()).Times(1)

	e, err := f.coord.SubmitExpense(context.Background(), alice, req)
	require.NoError(t, err)
	assert.Equal(t, "e2", e.ID)
}

func TestRemoveMember(t *testing.T) {
	t.Run("purges splits in every expense before removing the membership", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.repo.EXPECT().ListSplitsByMember(gomock.Any(), groupID, "carol").Return([]models.ExpenseSplit{
				{ExpenseID: "e1", MemberID: "carol", Amount: 3000},
				{ExpenseID: "e2", MemberID: "carol", Amount: 2500},
			}, nil),
			f.repo.EXPECT().DeleteSplits(gomock.Any(), "carol", []string{"e1", "e2"}).Return(int64(2), nil),
			f.repo.EXPECT().DeleteMembership(gomock.Any(), groupID, "carol").Return(nil),
			f.observer.EXPECT().MemberRemoved(gomock.Any(), groupID, "carol"),
		)

		require.NoError(t, f.coord.RemoveMember(context.Background(), alice, groupID, "carol"))
	})

	t.Run("purge failure keeps the membership", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().ListSplitsByMember(gomock.Any(), groupID, "carol").Return([]models.ExpenseSplit{
			{ExpenseID: "e1", MemberID: "carol"},
		}, nil)
		f.repo.EXPECT().DeleteSplits(gomock.Any(), "carol", []string{"e1"}).Return(int64(0), errors.New("locked"))

		err := f.coord.RemoveMember(context.Background(), alice, groupID, "carol")
		var pe *PersistError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "purge splits", pe.Op)
	})

	t.Run("member without splits", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().ListSplitsByMember(gomock.Any(), groupID, "bob").Return(nil, nil)
		f.repo.EXPECT().DeleteMembership(gomock.Any(), groupID, "bob").Return(nil)
		f.observer.EXPECT().MemberRemoved(gomock.Any(), groupID, "bob")

		// members may leave on their own
		require.NoError(t, f.coord.RemoveMember(context.Background(), bob, groupID, "bob"))
	})

	t.Run("membership delete fails after purge", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().ListSplitsByMember(gomock.Any(), groupID, "carol").Return([]models.ExpenseSplit{{ExpenseID: "e1", MemberID: "carol"}}, nil)
		f.repo.EXPECT().DeleteSplits(gomock.Any(), "carol", []string{"e1"}).Return(int64(1), nil)
		f.repo.EXPECT().DeleteMembership(gomock.Any(), groupID, "carol").Return(errors.New("busy"))
		f.observer.EXPECT().MemberRemoved(gomock.Any(), groupID, "carol")

		err := f.coord.RemoveMember(context.Background(), alice, groupID, "carol")
		var pe *PersistError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "remove membership", pe.Op)
		assert.False(t, pe.Compensated)
	})

	t.Run("non-admin removing someone else", func(t *testing.T) {
		f := newFixture(t)
		err := f.coord.RemoveMember(context.Background(), bob, groupID, "carol")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("last admin", func(t *testing.T) {
		f := newFixture(t)
		err := f.coord.RemoveMember(context.Background(), alice, groupID, "alice")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newFixture(t)
		err := f.coord.RemoveMember(context.Background(), alice, groupID, "nobody")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteExpense(t *testing.T) {
	expense := &models.Expense{ID: "e1", GroupID: groupID, CreatedBy: "bob", Amount: 1000}

	t.Run("creator", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "e1").Return(expense, nil)
		f.repo.EXPECT().DeleteExpense(gomock.Any(), "e1").Return(nil)
		f.observer.EXPECT().ExpenseRemoved(gomock.Any(), groupID, "e1")

		require.NoError(t, f.coord.DeleteExpense(context.Background(), bob, "e1"))
	})

	t.Run("admin", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "e1").Return(expense, nil)
		f.repo.EXPECT().DeleteExpense(gomock.Any(), "e1").Return(nil)
		f.observer.EXPECT().ExpenseRemoved(gomock.Any(), groupID, "e1")

		require.NoError(t, f.coord.DeleteExpense(context.Background(), alice, "e1"))
	})

	t.Run("other member", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "e1").Return(expense, nil)

		err := f.coord.DeleteExpense(context.Background(), &session.Session{MemberID: "carol"}, "e1")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "nope").Return(nil, storage.ErrNotFound)

		err := f.coord.DeleteExpense(context.Background(), alice, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAddSettlement(t *testing.T) {
	t.Run("recorded", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "e1").Return(&models.Expense{ID: "e1", GroupID: groupID}, nil)
		f.repo.EXPECT().CreateSettlement(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s *models.Settlement) error {
				s.ID = "s1"
				return nil
			})
		f.observer.EXPECT().SettlementAdded(gomock.Any(), gomock.Any())

		s, err := f.coord.AddSettlement(context.Background(), bob, SettlementRequest{
			GroupID: groupID, PaidBy: "bob", PaidTo: "alice", Amount: 2500, ExpenseID: "e1",
		})
		require.NoError(t, err)
		assert.Equal(t, "s1", s.ID)
		assert.Equal(t, "bob", s.CreatedBy)
	})

	tests := []struct {
		name      string
		req       SettlementRequest
		wantField string
	}{
		{"self", SettlementRequest{GroupID: groupID, PaidBy: "bob", PaidTo: "bob", Amount: 100}, "paid_to"},
		{"zero", SettlementRequest{GroupID: groupID, PaidBy: "bob", PaidTo: "alice"}, "amount"},
		{"missing payee", SettlementRequest{GroupID: groupID, PaidBy: "bob", Amount: 100}, "paid_by"},
		{"outsider payee", SettlementRequest{GroupID: groupID, PaidBy: "bob", PaidTo: "mallory", Amount: 100}, "paid_to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.coord.AddSettlement(context.Background(), bob, tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}

	t.Run("expense from another group", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetExpense(gomock.Any(), "e9").Return(&models.Expense{ID: "e9", GroupID: "g2"}, nil)

		_, err := f.coord.AddSettlement(context.Background(), bob, SettlementRequest{
			GroupID: groupID, PaidBy: "bob", PaidTo: "alice", Amount: 100, ExpenseID: "e9",
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "expense_id", ve.Field)
	})
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "persisting", PhasePersisting.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
