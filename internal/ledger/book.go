// Package ledger maintains per-group balances incrementally.
//
// A Book is fed committed events in order and must always agree with a full
// recompute over the same history. A Cache keeps one Book per group and
// falls back to rebuilding from storage whenever that promise is in doubt.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

var (
	ErrOutOfOrder          = errors.New("ledger event out of order")
	ErrUnknownExpense      = errors.New("expense not in ledger")
	ErrDuplicateExpense    = errors.New("expense already in ledger")
	ErrDuplicateSettlement = errors.New("settlement already in ledger")
	ErrWrongGroup          = errors.New("event belongs to another group")
)

// ConsistencyError reports a book that disagrees with a full recompute.
// The cached view must be discarded.
type ConsistencyError struct {
	GroupID string
	Detail  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("ledger for group %s disagrees with recompute: %s", e.GroupID, e.Detail)
}

// EventKind identifies a ledger mutation.
type EventKind int

const (
	ExpenseAdded EventKind = iota + 1
	ExpenseRemoved
	SettlementAdded
	MemberRemoved
)

func (k EventKind) String() string {
	switch k {
	case ExpenseAdded:
		return "expense_added"
	case ExpenseRemoved:
		return "expense_removed"
	case SettlementAdded:
		return "settlement_added"
	case MemberRemoved:
		return "member_removed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one committed mutation. Version must be exactly one more than the
// book's current version.
type Event struct {
	Version    int64
	Kind       EventKind
	Expense    *models.Expense
	ExpenseID  string
	Settlement *models.Settlement
	MemberID   string
}

// Book is the incremental balance ledger of one group.
type Book struct {
	groupID     string
	version     int64
	tally       *calculator.Tally
	expenses    map[string]*models.Expense
	settlements map[string]bool
	history     []*models.Settlement
}

// NewBook returns an empty book at version 0.
func NewBook(groupID string) *Book {
	return &Book{
		groupID:     groupID,
		tally:       calculator.NewTally(),
		expenses:    make(map[string]*models.Expense),
		settlements: make(map[string]bool),
	}
}

// Rebuild computes a book from the group's full history.
func Rebuild(groupID string, version int64, expenses []*models.Expense, settlements []*models.Settlement) *Book {
	b := NewBook(groupID)
	b.version = version
	b.tally = calculator.ComputeBalances(expenses, settlements)
	for _, e := range expenses {
		b.expenses[e.ID] = cloneExpense(e)
	}
	for _, s := range settlements {
		cp := *s
		b.history = append(b.history, &cp)
		if s.ID != "" {
			b.settlements[s.ID] = true
		}
	}
	return b
}

func (b *Book) GroupID() string { return b.groupID }

// Version is the version of the last applied event.
func (b *Book) Version() int64 { return b.version }

// Apply dispatches ev to the matching hook.
func (b *Book) Apply(ev Event) error {
	switch ev.Kind {
	case ExpenseAdded:
		if ev.Expense == nil {
			return fmt.Errorf("%s event without expense", ev.Kind)
		}
		return b.OnExpenseAdded(ev.Version, ev.Expense)
	case ExpenseRemoved:
		return b.OnExpenseRemoved(ev.Version, ev.ExpenseID)
	case SettlementAdded:
		if ev.Settlement == nil {
			return fmt.Errorf("%s event without settlement", ev.Kind)
		}
		return b.OnSettlementAdded(ev.Version, ev.Settlement)
	case MemberRemoved:
		return b.OnMemberRemoved(ev.Version, ev.MemberID)
	}
	return fmt.Errorf("unknown ledger event %v", ev.Kind)
}

// OnExpenseAdded records a committed expense with its splits.
func (b *Book) OnExpenseAdded(version int64, e *models.Expense) error {
	if err := b.checkVersion(version); err != nil {
		return err
	}
	if e.GroupID != b.groupID {
		return fmt.Errorf("%w: expense %s", ErrWrongGroup, e.ID)
	}
	if _, ok := b.expenses[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateExpense, e.ID)
	}

	cp := cloneExpense(e)
	b.expenses[e.ID] = cp
	b.tally.AddExpense(cp)
	b.version = version
	return nil
}

// OnExpenseRemoved reverses a previously added expense.
func (b *Book) OnExpenseRemoved(version int64, expenseID string) error {
	if err := b.checkVersion(version); err != nil {
		return err
	}
	e, ok := b.expenses[expenseID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExpense, expenseID)
	}

	b.tally.RemoveExpense(e)
	delete(b.expenses, expenseID)
	b.version = version
	return nil
}

// OnSettlementAdded records a repayment. Settlements are append-only.
func (b *Book) OnSettlementAdded(version int64, s *models.Settlement) error {
	if err := b.checkVersion(version); err != nil {
		return err
	}
	if s.GroupID != b.groupID {
		return fmt.Errorf("%w: settlement %s", ErrWrongGroup, s.ID)
	}
	if s.ID != "" && b.settlements[s.ID] {
		return fmt.Errorf("%w: %s", ErrDuplicateSettlement, s.ID)
	}

	cp := *s
	b.history = append(b.history, &cp)
	if s.ID != "" {
		b.settlements[s.ID] = true
	}
	b.tally.AddSettlement(&cp)
	b.version = version
	return nil
}

// OnMemberRemoved drops the member's splits from every expense.
// Settlements and expenses the member paid for are kept.
func (b *Book) OnMemberRemoved(version int64, memberID string) error {
	if err := b.checkVersion(version); err != nil {
		return err
	}

	for _, e := range b.expenses {
		kept := e.Splits[:0]
		for _, s := range e.Splits {
			if s.MemberID == memberID {
				b.tally.RemoveSplit(e.Payer(), s)
				continue
			}
			kept = append(kept, s)
		}
		e.Splits = kept
	}
	b.version = version
	return nil
}

func (b *Book) checkVersion(version int64) error {
	if version != b.version+1 {
		return fmt.Errorf("%w: have %d, got %d", ErrOutOfOrder, b.version, version)
	}
	return nil
}

// Balances returns net balance per member; positive means owed money.
func (b *Book) Balances() map[string]money.Money {
	return b.tally.Balances()
}

// MemberBalances lists non-zero balances sorted by member.
func (b *Book) MemberBalances() []calculator.MemberBalance {
	return b.tally.MemberBalances()
}

// Pairwise returns netted debts between pairs of members.
func (b *Book) Pairwise() []calculator.DebtEdge {
	return b.tally.Pairwise()
}

// Simplify returns a short list of transfers settling every balance.
func (b *Book) Simplify() []calculator.DebtEdge {
	return b.tally.Simplify()
}

// Expenses returns the expenses held by the book, sorted by ID.
func (b *Book) Expenses() []*models.Expense {
	out := make([]*models.Expense, 0, len(b.expenses))
	for _, e := range b.expenses {
		out = append(out, cloneExpense(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Settlements returns the settlements in the order they were applied.
func (b *Book) Settlements() []*models.Settlement {
	out := make([]*models.Settlement, len(b.history))
	for i, s := range b.history {
		cp := *s
		out[i] = &cp
	}
	return out
}

// Verify compares the book against a recompute over the given history.
func (b *Book) Verify(expenses []*models.Expense, settlements []*models.Settlement) error {
	want := calculator.ComputeBalances(expenses, settlements).Snapshot()
	if diff := b.tally.Snapshot().Diff(want); diff != "" {
		return &ConsistencyError{GroupID: b.groupID, Detail: diff}
	}
	return nil
}

// View is a read-only copy of a book's derived balances.
type View struct {
	GroupID    string
	Version    int64
	Balances   map[string]money.Money
	Members    []calculator.MemberBalance
	Pairwise   []calculator.DebtEdge
	Simplified []calculator.DebtEdge
}

// View renders the book's current balances.
func (b *Book) View() *View {
	return &View{
		GroupID:    b.groupID,
		Version:    b.version,
		Balances:   b.tally.Balances(),
		Members:    b.tally.MemberBalances(),
		Pairwise:   b.tally.Pairwise(),
		Simplified: b.tally.Simplify(),
	}
}

func cloneExpense(e *models.Expense) *models.Expense {
	cp := *e
	cp.Splits = append([]models.ExpenseSplit(nil), e.Splits...)
	return &cp
}
