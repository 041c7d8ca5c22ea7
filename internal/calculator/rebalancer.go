package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/money"
)

// TotalUnits is 100.00% expressed in hundredths of a percent.
const TotalUnits int64 = 10000

// EntryState tells whether a participant's share was typed by the user.
type EntryState int

const (
	// StateAuto entries receive an equal part of whatever the locked entries leave.
	StateAuto EntryState = iota
	// StateLocked entries keep the value the user typed.
	StateLocked
)

func (s EntryState) String() string {
	if s == StateLocked {
		return "locked"
	}
	return "auto"
}

// ShareEntry is one participant's row in a Rebalancer.
type ShareEntry struct {
	MemberID string
	Units    int64
	State    EntryState
}

type entry struct {
	units int64
	state EntryState
}

// Rebalancer holds the state of a custom-share form while the user edits it.
//
// Every active participant holds a number of units (hundredths of a percent).
// Editing one participant locks it; the units the locked entries leave over
// are spread evenly across the auto entries, earliest participants taking the
// indivisible remainder. A Rebalancer belongs to a single editing session and
// is not safe for concurrent use.
type Rebalancer struct {
	order   []string
	entries map[string]*entry
}

// NewRebalancer returns an empty rebalancer.
func NewRebalancer() *Rebalancer {
	return &Rebalancer{entries: make(map[string]*entry)}
}

// SetParticipants replaces the active set. Locked values of participants that
// remain are kept; everyone else is auto. With no locks the result is an
// equal split.
func (r *Rebalancer) SetParticipants(ids []string) error {
	if err := validateParticipants(ids); err != nil {
		return err
	}

	entries := make(map[string]*entry, len(ids))
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && e.state == StateLocked {
			entries[id] = &entry{units: e.units, state: StateLocked}
			continue
		}
		entries[id] = &entry{state: StateAuto}
	}

	r.order = append([]string(nil), ids...)
	r.entries = entries
	r.rebalance()
	return nil
}

// EditShare locks id at units and rebalances the auto entries. units is not
// clamped: a locked total above 100% leaves auto entries at zero and the
// state invalid until the user corrects it.
func (r *Rebalancer) EditShare(id string, units int64) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	if units < 0 {
		return fmt.Errorf("%w: %d units for %s", ErrInvalidWeight, units, id)
	}

	e.units = units
	e.state = StateLocked
	r.rebalance()
	return nil
}

// EditAmount is EditShare with the value typed in currency against total.
func (r *Rebalancer) EditAmount(id string, amount, total money.Money) error {
	units, err := AmountToUnits(amount, total)
	if err != nil {
		return err
	}
	return r.EditShare(id, units)
}

// ToggleParticipant adds id as an auto entry or removes it entirely.
// Removing a locked participant drops its lock with it.
func (r *Rebalancer) ToggleParticipant(id string, included bool) error {
	if id == "" {
		return fmt.Errorf("%w: empty participant id", ErrUnknownParticipant)
	}

	_, present := r.entries[id]
	switch {
	case included && !present:
		r.order = append(r.order, id)
		r.entries[id] = &entry{state: StateAuto}
	case !included && present:
		delete(r.entries, id)
		for i, o := range r.order {
			if o == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}

	r.rebalance()
	return nil
}

// Reset unlocks everyone and returns to an equal split.
func (r *Rebalancer) Reset() {
	for _, e := range r.entries {
		e.state = StateAuto
	}
	r.rebalance()
}

// Total is the sum of units over active participants.
func (r *Rebalancer) Total() int64 {
	var sum int64
	for _, e := range r.entries {
		sum += e.units
	}
	return sum
}

// IsValid reports whether the active participants hold exactly 100.00%.
func (r *Rebalancer) IsValid() bool {
	return len(r.order) > 0 && r.Total() == TotalUnits
}

// Units returns the units held by id.
func (r *Rebalancer) Units(id string) (int64, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.units, true
}

// IsLocked reports whether id holds a user-typed value.
func (r *Rebalancer) IsLocked(id string) bool {
	e, ok := r.entries[id]
	return ok && e.state == StateLocked
}

// Participants returns the active set in order.
func (r *Rebalancer) Participants() []string {
	return append([]string(nil), r.order...)
}

// Entries returns a snapshot of the form in participant order.
func (r *Rebalancer) Entries() []ShareEntry {
	out := make([]ShareEntry, len(r.order))
	for i, id := range r.order {
		e := r.entries[id]
		out[i] = ShareEntry{MemberID: id, Units: e.units, State: e.state}
	}
	return out
}

// AmountView renders every entry in currency against total.
// Converting does not touch locks.
func (r *Rebalancer) AmountView(total money.Money) []money.Money {
	out := make([]money.Money, len(r.order))
	for i, id := range r.order {
		out[i] = UnitsToAmount(r.entries[id].units, total)
	}
	return out
}

// Policy returns the participants and a percentage policy for Allocate.
// It fails with ErrInvalidShareTotal unless the state is valid.
func (r *Rebalancer) Policy() ([]string, Policy, error) {
	if !r.IsValid() {
		return nil, Policy{}, fmt.Errorf("%w: shares add up to %s%%", ErrInvalidShareTotal, unitsPercent(r.Total()))
	}

	percents := make([]decimal.Decimal, 0, len(r.order))
	participants := make([]string, 0, len(r.order))
	for _, id := range r.order {
		units := r.entries[id].units
		if units == 0 {
			continue
		}
		participants = append(participants, id)
		percents = append(percents, decimal.New(units, -2))
	}
	return participants, Percentages(percents...), nil
}

// Allocate divides total according to the current shares. Participants
// holding zero units are left out.
func (r *Rebalancer) Allocate(total money.Money) ([]Allocation, error) {
	participants, policy, err := r.Policy()
	if err != nil {
		return nil, err
	}
	return Allocate(total, participants, policy)
}

func (r *Rebalancer) rebalance() {
	var locked int64
	var auto []*entry
	for _, id := range r.order {
		e := r.entries[id]
		if e.state == StateLocked {
			locked += e.units
			continue
		}
		auto = append(auto, e)
	}
	if len(auto) == 0 {
		return
	}

	remaining := TotalUnits - locked
	if remaining < 0 {
		remaining = 0
	}

	base := remaining / int64(len(auto))
	extra := remaining % int64(len(auto))
	for i, e := range auto {
		e.units = base
		if int64(i) < extra {
			e.units++
		}
	}
}

// UnitsToAmount converts hundredths of a percent of total to currency,
// rounding half away from zero.
func UnitsToAmount(units int64, total money.Money) money.Money {
	return total.MulFrac(units, TotalUnits)
}

// AmountToUnits converts an amount of total to hundredths of a percent,
// rounding to the nearest unit. Converting back with UnitsToAmount is within
// total/20000 + 0.5 cents, which is one cent only for totals up to 200.00.
func AmountToUnits(amount, total money.Money) (int64, error) {
	if !total.IsPositive() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTotal, total)
	}

	units := decimal.NewFromInt(amount.Cents()).
		Mul(decimal.NewFromInt(TotalUnits)).
		DivRound(decimal.NewFromInt(total.Cents()), 0)
	return units.IntPart(), nil
}

func unitsPercent(units int64) string {
	return decimal.New(units, -2).StringFixed(2)
}
