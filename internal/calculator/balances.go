package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID   string
	NetBalance money.Money // Positive = owed money, Negative = owes money
	TotalPaid  money.Money // Shares of others' splits this member fronted, plus settlements paid
	TotalOwed  money.Money // This member's own splits, plus settlements received
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount money.Money
}

// Pair is an ordered (debtor, creditor) key.
type Pair struct {
	From string
	To   string
}

// Tally accumulates balances from expense splits and settlements.
//
// Sign convention: a positive net balance means the member is owed money.
// For every split of an expense, the payer is credited and the split's member
// debited by the split amount; a payer's own split cancels out. A settlement
// credits the member who paid and debits the member who received.
//
// The payer is credited with the sum of the splits rather than the expense
// amount, so purging a member's splits leaves the tally balanced.
//
// Every operation has an exact inverse, which is what makes incremental
// maintenance agree with a full recompute.
type Tally struct {
	members map[string]*MemberBalance
	owes    map[Pair]money.Money
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		members: make(map[string]*MemberBalance),
		owes:    make(map[Pair]money.Money),
	}
}

// ComputeBalances builds a tally from scratch. The result does not depend on
// the order of expenses or settlements.
func ComputeBalances(expenses []*models.Expense, settlements []*models.Settlement) *Tally {
	t := NewTally()
	for _, e := range expenses {
		t.AddExpense(e)
	}
	for _, s := range settlements {
		t.AddSettlement(s)
	}
	return t
}

// AddExpense applies every split of e.
func (t *Tally) AddExpense(e *models.Expense) {
	for _, s := range e.Splits {
		t.applySplit(e.Payer(), s.MemberID, s.Amount)
	}
}

// RemoveExpense reverses AddExpense for the same expense.
func (t *Tally) RemoveExpense(e *models.Expense) {
	for _, s := range e.Splits {
		t.applySplit(e.Payer(), s.MemberID, s.Amount.Neg())
	}
}

// RemoveSplit reverses a single split of an expense paid by payer.
func (t *Tally) RemoveSplit(payer string, s models.ExpenseSplit) {
	t.applySplit(payer, s.MemberID, s.Amount.Neg())
}

// AddSettlement applies a repayment.
func (t *Tally) AddSettlement(s *models.Settlement) {
	if s.PaidBy == s.PaidTo {
		return
	}

	from := t.member(s.PaidBy)
	to := t.member(s.PaidTo)

	from.TotalPaid = from.TotalPaid.Add(s.Amount)
	from.NetBalance = from.NetBalance.Add(s.Amount)
	to.TotalOwed = to.TotalOwed.Add(s.Amount)
	to.NetBalance = to.NetBalance.Sub(s.Amount)

	// Paying someone back is the same as them owing you.
	t.addOwed(Pair{From: s.PaidTo, To: s.PaidBy}, s.Amount)
	t.prune(s.PaidBy, s.PaidTo)
}

func (t *Tally) applySplit(payer, memberID string, amount money.Money) {
	if payer == memberID {
		return
	}

	p := t.member(payer)
	m := t.member(memberID)

	p.TotalPaid = p.TotalPaid.Add(amount)
	p.NetBalance = p.NetBalance.Add(amount)
	m.TotalOwed = m.TotalOwed.Add(amount)
	m.NetBalance = m.NetBalance.Sub(amount)

	t.addOwed(Pair{From: memberID, To: payer}, amount)
	t.prune(payer, memberID)
}

func (t *Tally) member(id string) *MemberBalance {
	b, ok := t.members[id]
	if !ok {
		b = &MemberBalance{MemberID: id}
		t.members[id] = b
	}
	return b
}

func (t *Tally) addOwed(p Pair, amount money.Money) {
	v := t.owes[p].Add(amount)
	if v.IsZero() {
		delete(t.owes, p)
		return
	}
	t.owes[p] = v
}

// prune drops members with no remaining activity so that adding and then
// removing an entry leaves no trace.
func (t *Tally) prune(ids ...string) {
	for _, id := range ids {
		b, ok := t.members[id]
		if ok && b.NetBalance.IsZero() && b.TotalPaid.IsZero() && b.TotalOwed.IsZero() {
			delete(t.members, id)
		}
	}
}

// Balances returns net balance per member. Members whose balance is zero are
// omitted.
func (t *Tally) Balances() map[string]money.Money {
	out := make(map[string]money.Money, len(t.members))
	for id, b := range t.members {
		if !b.NetBalance.IsZero() {
			out[id] = b.NetBalance
		}
	}
	return out
}

// Balance returns one member's net balance.
func (t *Tally) Balance(memberID string) money.Money {
	if b, ok := t.members[memberID]; ok {
		return b.NetBalance
	}
	return money.Zero
}

// MemberBalances lists members with a non-zero net balance, sorted by ID.
func (t *Tally) MemberBalances() []MemberBalance {
	var out []MemberBalance
	for _, b := range t.members {
		if !b.NetBalance.IsZero() {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })
	return out
}

// Pairwise returns who owes whom, netted per pair of members, sorted by
// debtor then creditor.
func (t *Tally) Pairwise() []DebtEdge {
	seen := make(map[Pair]bool)
	var out []DebtEdge
	for p := range t.owes {
		key := Pair{From: min(p.From, p.To), To: max(p.From, p.To)}
		if seen[key] {
			continue
		}
		seen[key] = true

		net := t.owes[key].Sub(t.owes[Pair{From: key.To, To: key.From}])
		switch {
		case net.IsPositive():
			out = append(out, DebtEdge{From: key.From, To: key.To, Amount: net})
		case net.IsNegative():
			out = append(out, DebtEdge{From: key.To, To: key.From, Amount: net.Neg()})
		}
	}
	sortEdges(out)
	return out
}

// Simplify returns a short list of transfers that settles every net balance.
//
// Greedy: match the largest debtor with the largest creditor until both
// sides are exhausted. Ties break on member ID so the output is stable.
func (t *Tally) Simplify() []DebtEdge {
	var creditors, debtors []MemberBalance
	for _, b := range t.members {
		if b.NetBalance.IsPositive() {
			creditors = append(creditors, *b)
		} else if b.NetBalance.IsNegative() {
			debtors = append(debtors, *b)
		}
	}
	byMagnitude := func(s []MemberBalance) {
		sort.Slice(s, func(i, j int) bool {
			ai, aj := s[i].NetBalance.Abs(), s[j].NetBalance.Abs()
			if ai != aj {
				return ai > aj
			}
			return s[i].MemberID < s[j].MemberID
		})
	}
	byMagnitude(creditors)
	byMagnitude(debtors)

	var edges []DebtEdge
	i, j := 0, 0
	debt := make([]money.Money, len(debtors))
	credit := make([]money.Money, len(creditors))
	for k, d := range debtors {
		debt[k] = d.NetBalance.Neg()
	}
	for k, c := range creditors {
		credit[k] = c.NetBalance
	}

	for i < len(debtors) && j < len(creditors) {
		amount := debt[i]
		if credit[j] < amount {
			amount = credit[j]
		}

		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: debtors[i].MemberID, To: creditors[j].MemberID, Amount: amount})
		}

		debt[i] = debt[i].Sub(amount)
		credit[j] = credit[j].Sub(amount)
		if debt[i].IsZero() {
			i++
		}
		if credit[j].IsZero() {
			j++
		}
	}

	return edges
}

// Snapshot copies the tally's observable state.
func (t *Tally) Snapshot() Snapshot {
	s := Snapshot{
		Members: make(map[string]MemberBalance, len(t.members)),
		Owes:    make(map[Pair]money.Money, len(t.owes)),
	}
	for id, b := range t.members {
		s.Members[id] = *b
	}
	for p, v := range t.owes {
		s.Owes[p] = v
	}
	return s
}

// Clone returns an independent copy.
func (t *Tally) Clone() *Tally {
	c := NewTally()
	for id, b := range t.members {
		cp := *b
		c.members[id] = &cp
	}
	for p, v := range t.owes {
		c.owes[p] = v
	}
	return c
}

// Snapshot is a comparable copy of a tally.
type Snapshot struct {
	Members map[string]MemberBalance
	Owes    map[Pair]money.Money
}

// Diff describes how s differs from other; empty when they agree.
func (s Snapshot) Diff(other Snapshot) string {
	var diffs []string
	for id, b := range s.Members {
		if o, ok := other.Members[id]; !ok || o != b {
			diffs = append(diffs, fmt.Sprintf("member %s: %+v vs %+v", id, b, o))
		}
	}
	for id, o := range other.Members {
		if _, ok := s.Members[id]; !ok {
			diffs = append(diffs, fmt.Sprintf("member %s: missing vs %+v", id, o))
		}
	}
	for p, v := range s.Owes {
		if other.Owes[p] != v {
			diffs = append(diffs, fmt.Sprintf("%s->%s: %s vs %s", p.From, p.To, v, other.Owes[p]))
		}
	}
	for p, v := range other.Owes {
		if _, ok := s.Owes[p]; !ok {
			diffs = append(diffs, fmt.Sprintf("%s->%s: missing vs %s", p.From, p.To, v))
		}
	}
	sort.Strings(diffs)
	return strings.Join(diffs, "; ")
}

func sortEdges(edges []DebtEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
}
