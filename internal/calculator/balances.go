// Package calculator derives group balances from raw expense records.
//
// Nothing here performs I/O or keeps state between calls: the same inputs
// always produce the same Result, regardless of the order expenses are given in.
package calculator

import (
	"cmp"
	"math/big"
	"slices"

	"github.com/shopspring/decimal"
)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	ID           string
	Amount       decimal.Decimal
	PaidBy       string
	Participants []string
}

// Membership classifies a name found on an expense against the group's current members.
type Membership int

const (
	// MemberUnknown means the name is not in the group's member list (for
	// example, the list was edited after the expense was recorded).
	MemberUnknown Membership = iota
	// MemberKnown means the name has a balance entry.
	MemberKnown
)

func (m Membership) String() string {
	if m == MemberKnown {
		return "known"
	}
	return "unknown"
}

// Role says which side of an expense a name appeared on.
type Role string

const (
	RolePayer       Role = "payer"
	RoleParticipant Role = "participant"
)

// UnmatchedEntry records a credit or debit that was skipped because the name
// was not a member. Such expenses do not net to zero across the group.
type UnmatchedEntry struct {
	ExpenseID string
	Name      string
	Role      Role
	Amount    *big.Rat // the credit or share that was not applied, exact
}

// Result is the output of ComputeBalances.
type Result struct {
	// Balances maps every member to their exact net position.
	// Positive = owed money, Negative = owes money.
	Balances map[string]*big.Rat

	// Total is the sum of all expense amounts.
	Total decimal.Decimal

	// Unmatched lists skipped entries, sorted by expense ID, role and name.
	Unmatched []UnmatchedEntry
}

// ledger holds running balances keyed by member name.
type ledger map[string]*big.Rat

func (l ledger) classify(name string) Membership {
	if _, ok := l[name]; ok {
		return MemberKnown
	}
	return MemberUnknown
}

// ComputeBalances computes each member's net balance and the group's total spend.
//
// Algorithm:
//   - every member starts at zero
//   - for each expense: the payer is credited the full amount, and each
//     participant is debited an equal, exact share (see Share)
//   - a payer who also participates therefore nets amount minus their share
//
// Balances are kept as exact rationals, so every participant of an expense
// owes the same amount and the balances of a fully matched group sum to
// exactly zero. Round converts them for display.
//
// Names that are not members are skipped and reported in Result.Unmatched.
// The credit for an unknown payer still counts towards Total.
func ComputeBalances(members []string, expenses []ExpenseForBalance) Result {
	balances := make(ledger, len(members))
	for _, m := range members {
		balances[m] = new(big.Rat)
	}

	total := decimal.Zero
	var unmatched []UnmatchedEntry

	for _, e := range expenses {
		total = total.Add(e.Amount)

		switch balances.classify(e.PaidBy) {
		case MemberKnown:
			b := balances[e.PaidBy]
			b.Add(b, e.Amount.Rat())
		case MemberUnknown:
			unmatched = append(unmatched, UnmatchedEntry{
				ExpenseID: e.ID,
				Name:      e.PaidBy,
				Role:      RolePayer,
				Amount:    e.Amount.Rat(),
			})
		}

		share := Share(e.Amount, len(e.Participants))
		for _, p := range e.Participants {
			switch balances.classify(p) {
			case MemberKnown:
				b := balances[p]
				b.Sub(b, share)
			case MemberUnknown:
				unmatched = append(unmatched, UnmatchedEntry{
					ExpenseID: e.ID,
					Name:      p,
					Role:      RoleParticipant,
					Amount:    new(big.Rat).Set(share),
				})
			}
		}
	}

	slices.SortStableFunc(unmatched, func(a, b UnmatchedEntry) int {
		return cmp.Or(
			cmp.Compare(a.ExpenseID, b.ExpenseID),
			cmp.Compare(a.Role, b.Role),
			cmp.Compare(a.Name, b.Name),
			a.Amount.Cmp(b.Amount),
		)
	})

	return Result{
		Balances:  balances,
		Total:     total,
		Unmatched: unmatched,
	}
}

// Sum adds up all balances. For a group whose expenses only reference
// members, the sum is exactly zero.
func (r Result) Sum() *big.Rat {
	sum := new(big.Rat)
	for _, b := range r.Balances {
		sum.Add(sum, b)
	}
	return sum
}

// Balance returns a member's balance rounded to places, or zero for a non-member.
func (r Result) Balance(member string, places int32) decimal.Decimal {
	b, ok := r.Balances[member]
	if !ok {
		return decimal.Zero
	}
	return Round(b, places)
}
