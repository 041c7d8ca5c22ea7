package calculator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

func equalExpense(t *testing.T, id, payer string, total money.Money, participants ...string) *models.Expense {
	t.Helper()

	allocs, err := Allocate(total, participants, Equal())
	require.NoError(t, err)

	e := &models.Expense{ID: id, GroupID: "g1", CreatedBy: payer, Amount: total}
	for _, a := range allocs {
		e.Splits = append(e.Splits, models.ExpenseSplit{ExpenseID: id, MemberID: a.MemberID, Share: a.Share, Amount: a.Amount})
	}
	return e
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		expenses     func(t *testing.T) []*models.Expense
		settlements  []*models.Settlement
		wantBalances map[string]money.Money
		wantPairwise []DebtEdge
	}{
		{
			name: "one payer three way",
			expenses: func(t *testing.T) []*models.Expense {
				return []*models.Expense{equalExpense(t, "e1", "alice", money.MustParse("90.00"), "alice", "bob", "carol")}
			},
			wantBalances: map[string]money.Money{"alice": 6000, "bob": -3000, "carol": -3000},
			wantPairwise: []DebtEdge{{From: "bob", To: "alice", Amount: 3000}, {From: "carol", To: "alice", Amount: 3000}},
		},
		{
			name: "settlement clears a debt",
			expenses: func(t *testing.T) []*models.Expense {
				return []*models.Expense{equalExpense(t, "e1", "alice", money.MustParse("100.00"), "alice", "bob")}
			},
			settlements:  []*models.Settlement{{ID: "s1", PaidBy: "bob", PaidTo: "alice", Amount: 5000}},
			wantBalances: map[string]money.Money{},
			wantPairwise: nil,
		},
		{
			name: "payers on both sides net out per pair",
			expenses: func(t *testing.T) []*models.Expense {
				return []*models.Expense{
					equalExpense(t, "e1", "alice", money.MustParse("40.00"), "alice", "bob"),
					equalExpense(t, "e2", "bob", money.MustParse("10.00"), "alice", "bob"),
				}
			},
			wantBalances: map[string]money.Money{"alice": 1500, "bob": -1500},
			wantPairwise: []DebtEdge{{From: "bob", To: "alice", Amount: 1500}},
		},
		{
			name: "settlement tied to a deleted expense still counts",
			expenses: func(t *testing.T) []*models.Expense {
				return nil
			},
			settlements:  []*models.Settlement{{ID: "s1", PaidBy: "bob", PaidTo: "alice", Amount: 700, ExpenseID: "gone"}},
			wantBalances: map[string]money.Money{"bob": 700, "alice": -700},
			wantPairwise: []DebtEdge{{From: "alice", To: "bob", Amount: 700}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := ComputeBalances(tt.expenses(t), tt.settlements)
			assert.Equal(t, tt.wantBalances, tally.Balances())
			assert.Equal(t, tt.wantPairwise, tally.Pairwise())

			var sum money.Money
			for _, b := range tally.Balances() {
				sum = sum.Add(b)
			}
			assert.True(t, sum.IsZero(), "balances must net to zero")
		})
	}
}

func TestTally_Simplify(t *testing.T) {
	expenses := []*models.Expense{
		equalExpense(t, "e1", "alice", money.MustParse("30.00"), "alice", "bob", "carol"),
		equalExpense(t, "e2", "bob", money.MustParse("30.00"), "alice", "bob", "carol"),
		equalExpense(t, "e3", "dave", money.MustParse("60.00"), "carol", "dave"),
	}
	tally := ComputeBalances(expenses, nil)

	// alice +10, bob +10, carol -50, dave +30
	assert.Equal(t, []DebtEdge{
		{From: "carol", To: "dave", Amount: 3000},
		{From: "carol", To: "alice", Amount: 1000},
		{From: "carol", To: "bob", Amount: 1000},
	}, tally.Simplify())
}

func TestTally_RemoveIsInverse(t *testing.T) {
	e := equalExpense(t, "e1", "alice", money.MustParse("100.00"), "alice", "bob", "carol")

	tally := NewTally()
	tally.AddExpense(e)
	tally.RemoveExpense(e)

	assert.Empty(t, tally.Balances())
	assert.Empty(t, tally.Snapshot().Members)
	assert.Empty(t, tally.Snapshot().Owes)
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	people := []string{"a", "b", "c", "d", "e"}

	var expenses []*models.Expense
	for i := 0; i < 30; i++ {
		n := 1 + rng.Intn(len(people))
		perm := rng.Perm(len(people))[:n]
		participants := make([]string, n)
		for k, p := range perm {
			participants[k] = people[p]
		}
		expenses = append(expenses, equalExpense(t, "e", people[rng.Intn(len(people))], money.FromCents(1+rng.Int63n(100000)), participants...))
	}
	var settlements []*models.Settlement
	for i := 0; i < 10; i++ {
		settlements = append(settlements, &models.Settlement{PaidBy: people[i%5], PaidTo: people[(i+2)%5], Amount: money.FromCents(rng.Int63n(5000))})
	}

	first := ComputeBalances(expenses, settlements)
	rng.Shuffle(len(expenses), func(i, j int) { expenses[i], expenses[j] = expenses[j], expenses[i] })
	rng.Shuffle(len(settlements), func(i, j int) { settlements[i], settlements[j] = settlements[j], settlements[i] })
	second := ComputeBalances(expenses, settlements)

	assert.Empty(t, first.Snapshot().Diff(second.Snapshot()))
	assert.Equal(t, first.Balances(), second.Balances())
	assert.Equal(t, first.Simplify(), second.Simplify())
}
