package calculator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/money"
)

// PolicyKind selects how a total is divided.
type PolicyKind int

const (
	PolicyEqual PolicyKind = iota
	PolicyShares
	PolicyPercentages
	PolicyAmounts
)

var policyNames = map[PolicyKind]string{
	PolicyEqual:       "equal",
	PolicyShares:      "shares",
	PolicyPercentages: "percentages",
	PolicyAmounts:     "amounts",
}

func (k PolicyKind) String() string {
	if name, ok := policyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PolicyKind(%d)", int(k))
}

// ParsePolicyKind maps a name such as "equal" to its kind.
func ParsePolicyKind(s string) (PolicyKind, error) {
	for k, name := range policyNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown split policy %q", s)
}

// percentTolerance is how far percentages may drift from 100 before rejection.
var (
	hundred          = decimal.NewFromInt(100)
	percentTolerance = decimal.New(1, -2)
)

// Policy describes a split. Weights and Amounts are positional: entry i
// belongs to participant i.
type Policy struct {
	Kind    PolicyKind
	Weights []decimal.Decimal
	Amounts []money.Money
}

// Equal splits the total evenly.
func Equal() Policy {
	return Policy{Kind: PolicyEqual}
}

// Shares splits the total in proportion to positive weights.
func Shares(weights ...decimal.Decimal) Policy {
	return Policy{Kind: PolicyShares, Weights: weights}
}

// Percentages splits the total by percentages that add up to 100 (±0.01).
func Percentages(percents ...decimal.Decimal) Policy {
	return Policy{Kind: PolicyPercentages, Weights: percents}
}

// Amounts assigns explicit amounts that must add up to the total exactly.
func Amounts(amounts ...money.Money) Policy {
	return Policy{Kind: PolicyAmounts, Amounts: amounts}
}

// Allocation is one participant's part of a total.
type Allocation struct {
	MemberID string
	Share    *big.Rat
	Amount   money.Money
}

// Allocate divides total among participants according to policy.
//
// The returned allocations follow the participant order and their amounts add
// up to total exactly. Indivisible cents go one each to the earliest
// participants. Allocate is pure.
func Allocate(total money.Money, participants []string, policy Policy) ([]Allocation, error) {
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTotal, total)
	}

	switch policy.Kind {
	case PolicyEqual:
		weights := make([]decimal.Decimal, len(participants))
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
		return allocateWeighted(total, participants, weights)

	case PolicyShares:
		if err := validateWeights(policy.Weights, len(participants)); err != nil {
			return nil, err
		}
		return allocateWeighted(total, participants, policy.Weights)

	case PolicyPercentages:
		if err := validateWeights(policy.Weights, len(participants)); err != nil {
			return nil, err
		}
		sum := decimal.Sum(decimal.Zero, policy.Weights...)
		if sum.Sub(hundred).Abs().GreaterThan(percentTolerance) {
			return nil, fmt.Errorf("%w: got %s%%", ErrInvalidShareTotal, sum.String())
		}
		return allocateWeighted(total, participants, policy.Weights)

	case PolicyAmounts:
		return allocateExplicit(total, participants, policy.Amounts)

	default:
		return nil, fmt.Errorf("unknown split policy %v", policy.Kind)
	}
}

func validateParticipants(participants []string) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return fmt.Errorf("%w: empty participant id", ErrNoParticipants)
		}
		if seen[p] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = true
	}
	return nil
}

func validateWeights(weights []decimal.Decimal, n int) error {
	if len(weights) != n {
		return fmt.Errorf("%w: %d weights for %d participants", ErrInvalidWeight, len(weights), n)
	}
	for i, w := range weights {
		if !w.IsPositive() {
			return fmt.Errorf("%w: weight %d is %s", ErrInvalidWeight, i, w.String())
		}
	}
	return nil
}

func allocateWeighted(total money.Money, participants []string, weights []decimal.Decimal) ([]Allocation, error) {
	amounts, err := money.Distribute(total, weights)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, err)
	}

	sum := decimal.Sum(decimal.Zero, weights...).Rat()
	out := make([]Allocation, len(participants))
	for i, p := range participants {
		out[i] = Allocation{
			MemberID: p,
			Share:    new(big.Rat).Quo(weights[i].Rat(), sum),
			Amount:   amounts[i],
		}
	}
	return out, nil
}

func allocateExplicit(total money.Money, participants []string, amounts []money.Money) ([]Allocation, error) {
	if len(amounts) != len(participants) {
		return nil, fmt.Errorf("%w: %d amounts for %d participants", ErrSplitMismatch, len(amounts), len(participants))
	}

	var sum money.Money
	for i, a := range amounts {
		if a.IsNegative() {
			return nil, fmt.Errorf("%w: amount %d is negative", ErrSplitMismatch, i)
		}
		sum = sum.Add(a)
	}
	if sum != total {
		return nil, fmt.Errorf("%w: splits add up to %s, total is %s", ErrSplitMismatch, sum, total)
	}

	out := make([]Allocation, len(participants))
	for i, p := range participants {
		out[i] = Allocation{
			MemberID: p,
			Share:    big.NewRat(amounts[i].Cents(), total.Cents()),
			Amount:   amounts[i],
		}
	}
	return out, nil
}
