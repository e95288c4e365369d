package service

import (
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount.InexactFloat64(),
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

// displayPlaces is the precision balances are rounded to on the way out.
const displayPlaces = 2

func toAPIGroup(g *models.Group, result calculator.Result) *api.Group {
	balances := make(map[string]float64, len(result.Balances))
	for name := range result.Balances {
		balances[name] = result.Balance(name, displayPlaces).InexactFloat64()
	}
	return &api.Group{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		Members:       g.Members,
		TotalExpenses: result.Total.InexactFloat64(),
		Balances:      balances,
		CreatedAt:     g.CreatedAt,
	}
}

// toMemberBalances lists each distinct member once, in member order.
func toMemberBalances(members []string, result calculator.Result) []*api.MemberBalance {
	seen := make(map[string]bool, len(members))
	out := make([]*api.MemberBalance, 0, len(members))
	for _, m := range members {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, &api.MemberBalance{
			Member:  m,
			Balance: result.Balance(m, displayPlaces).InexactFloat64(),
		})
	}
	return out
}

func toAPIUnmatched(entries []calculator.UnmatchedEntry) []*api.UnmatchedEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]*api.UnmatchedEntry, len(entries))
	for i, u := range entries {
		out[i] = &api.UnmatchedEntry{
			ExpenseID: u.ExpenseID,
			Name:      u.Name,
			Role:      string(u.Role),
			Amount:    calculator.Round(u.Amount, displayPlaces).InexactFloat64(),
		}
	}
	return out
}

func toBalanceInputs(expenses []*models.Expense) []calculator.ExpenseForBalance {
	out := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		out[i] = calculator.ExpenseForBalance{
			ID:           e.ID,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
		}
	}
	return out
}
