package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/storage/memory"
	"github.com/mmynk/groupsplit/pkg/client"
)

func TestEqualSplitExample(t *testing.T) {
	for _, backend := range storeBackends {
		t.Run(backend.name, func(t *testing.T) {
			env := setupTestServer(t, backend.new(t))
			ctx := context.Background()
			owner := env.register(t, "owner")

			group, err := env.client.CreateGroup(ctx, owner, "Trip", "", []string{"A", "B", "C"})
			if err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}

			expense, err := env.client.AddExpense(ctx, owner, client.NewExpense{
				GroupID:      group.ID,
				Description:  "Hotel",
				Amount:       money("200"),
				PaidBy:       "A",
				Participants: []string{"A", "B", "C"},
				Date:         "2024-01-15",
			})
			if err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
			if expense.ID == "" || expense.Amount != 200 {
				t.Errorf("unexpected expense: %+v", expense)
			}

			resp, err := env.client.Balances(ctx, owner, group.ID)
			if err != nil {
				t.Fatalf("Balances failed: %v", err)
			}
			if resp.TotalExpenses != 200 {
				t.Errorf("expected total 200, got %v", resp.TotalExpenses)
			}

			want := []struct {
				member  string
				balance float64
			}{{"A", 133.33}, {"B", -66.67}, {"C", -66.67}}
			if len(resp.MemberBalances) != len(want) {
				t.Fatalf("expected %d balances, got %d", len(want), len(resp.MemberBalances))
			}
			for i, w := range want {
				got := resp.MemberBalances[i]
				if got.Member != w.member || got.Balance != w.balance {
					t.Errorf("balance %d: got %s=%v, want %s=%v", i, got.Member, got.Balance, w.member, w.balance)
				}
			}
			if len(resp.Unmatched) != 0 {
				t.Errorf("expected no unmatched entries, got %v", resp.Unmatched)
			}
		})
	}
}

func TestMultiExpenseExample(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	owner := env.register(t, "owner")

	group, err := env.client.CreateGroup(ctx, owner, "Flat", "", []string{"A", "B"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	for _, e := range []client.NewExpense{
		{Description: "Groceries", Amount: money("100"), PaidBy: "A", Participants: []string{"A", "B"}, Date: "2024-03-01"},
		{Description: "Internet", Amount: money("40"), PaidBy: "B", Participants: []string{"A", "B"}, Date: "2024-03-02"},
	} {
		e.GroupID = group.ID
		if _, err := env.client.AddExpense(ctx, owner, e); err != nil {
			t.Fatalf("AddExpense(%s) failed: %v", e.Description, err)
		}
	}

	got, err := env.client.Group(ctx, owner, group.ID)
	if err != nil {
		t.Fatalf("Group failed: %v", err)
	}
	if got.TotalExpenses != 140 {
		t.Errorf("expected total 140, got %v", got.TotalExpenses)
	}
	if got.Balances["A"] != 30 || got.Balances["B"] != -30 {
		t.Errorf("expected A=30 B=-30, got %v", got.Balances)
	}
	if env.publisher.count() != 2 {
		t.Errorf("expected 2 published events, got %d", env.publisher.count())
	}
}

func TestRejectedExpenseIsNotStored(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	owner := env.register(t, "owner")
	intruder := env.register(t, "intruder")

	group, err := env.client.CreateGroup(ctx, owner, "Trip", "", []string{"A", "B"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	valid := client.NewExpense{
		GroupID:      group.ID,
		Description:  "Dinner",
		Amount:       money("50"),
		PaidBy:       "A",
		Participants: []string{"A", "B"},
		Date:         "2024-01-17",
	}

	tests := []struct {
		name    string
		session *client.Session
		mutate  func(e *client.NewExpense)
		code    connect.Code
	}{
		{"payer not a member", owner, func(e *client.NewExpense) { e.PaidBy = "Z" }, connect.CodeInvalidArgument},
		{"participant not a member", owner, func(e *client.NewExpense) { e.Participants = []string{"A", "Dan"} }, connect.CodeInvalidArgument},
		{"no participants", owner, func(e *client.NewExpense) { e.Participants = []string{} }, connect.CodeInvalidArgument},
		{"zero amount", owner, func(e *client.NewExpense) { e.Amount = money("0") }, connect.CodeInvalidArgument},
		{"missing description", owner, func(e *client.NewExpense) { e.Description = "" }, connect.CodeInvalidArgument},
		{"bad date", owner, func(e *client.NewExpense) { e.Date = "17/01/2024" }, connect.CodeInvalidArgument},
		{"not the owner", intruder, func(*client.NewExpense) {}, connect.CodePermissionDenied},
		{"unknown group", owner, func(e *client.NewExpense) { e.GroupID = "nonexistent-id" }, connect.CodeNotFound},
		{"missing group", owner, func(e *client.NewExpense) { e.GroupID = "" }, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			_, err := env.client.AddExpense(ctx, tt.session, e)
			expectCode(t, err, tt.code)
		})
	}

	expenses, err := env.client.GroupExpenses(ctx, owner, group.ID)
	if err != nil {
		t.Fatalf("GroupExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("rejected expenses must not be stored, got %d", len(expenses))
	}
	balances, err := env.client.Balances(ctx, owner, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	for _, b := range balances.MemberBalances {
		if b.Balance != 0 {
			t.Errorf("expected zero balance for %s, got %v", b.Member, b.Balance)
		}
	}
	if env.publisher.count() != 0 {
		t.Errorf("rejected expenses must not publish events, got %d", env.publisher.count())
	}
}

func TestCreateExpenseNormalises(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	owner := env.register(t, "owner")

	group, err := env.client.CreateGroup(ctx, owner, "Trip", "", []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	expense, err := env.client.AddExpense(ctx, owner, client.NewExpense{
		GroupID:      group.ID,
		Description:  "  Museum  ",
		Amount:       money("12.345"),
		PaidBy:       " Bob ",
		Participants: []string{"Alice ", " Bob"},
		Date:         "2024-05-05",
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if expense.Description != "Museum" || expense.PaidBy != "Bob" {
		t.Errorf("expected trimmed fields, got %+v", expense)
	}
	if expense.Amount != 12.35 {
		t.Errorf("expected amount rounded to 12.35, got %v", expense.Amount)
	}
	if expense.Participants[0] != "Alice" || expense.Participants[1] != "Bob" {
		t.Errorf("expected trimmed participants, got %v", expense.Participants)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	env := setupTestServer(t, memory.New())
	env.publisher.failWith(errors.New("broker down"))
	ctx := context.Background()
	owner := env.register(t, "owner")

	group, err := env.client.CreateGroup(ctx, owner, "Trip", "", []string{"A"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	_, err = env.client.AddExpense(ctx, owner, client.NewExpense{
		GroupID:      group.ID,
		Description:  "Solo lunch",
		Amount:       money("10"),
		PaidBy:       "A",
		Participants: []string{"A"},
		Date:         "2024-01-01",
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	expenses, err := env.client.GroupExpenses(ctx, owner, group.ID)
	if err != nil {
		t.Fatalf("GroupExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Errorf("expected the expense to be stored, got %d", len(expenses))
	}
}

func TestListExpensesAcrossGroups(t *testing.T) {
	for _, backend := range storeBackends {
		t.Run(backend.name, func(t *testing.T) {
			env := setupTestServer(t, backend.new(t))
			ctx := context.Background()
			alice := env.register(t, "alice")
			bob := env.register(t, "bob")

			trip, err := env.client.CreateGroup(ctx, alice, "Trip", "", []string{"A", "B"})
			if err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}
			flat, err := env.client.CreateGroup(ctx, alice, "Flat", "", []string{"A", "C"})
			if err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}

			for _, e := range []client.NewExpense{
				{GroupID: trip.ID, Description: "Bus", Amount: money("8"), PaidBy: "A", Participants: []string{"A", "B"}, Date: "2024-01-01"},
				{GroupID: flat.ID, Description: "Rent", Amount: money("900"), PaidBy: "C", Participants: []string{"A", "C"}, Date: "2024-01-02"},
			} {
				if _, err := env.client.AddExpense(ctx, alice, e); err != nil {
					t.Fatalf("AddExpense(%s) failed: %v", e.Description, err)
				}
			}

			mine, err := env.client.Expenses(ctx, alice)
			if err != nil {
				t.Fatalf("Expenses failed: %v", err)
			}
			if len(mine) != 2 {
				t.Fatalf("expected 2 expenses, got %d", len(mine))
			}
			if mine[0].Description != "Rent" || mine[1].Description != "Bus" {
				t.Errorf("expected newest first, got %s, %s", mine[0].Description, mine[1].Description)
			}

			theirs, err := env.client.Expenses(ctx, bob)
			if err != nil {
				t.Fatalf("Expenses failed: %v", err)
			}
			if len(theirs) != 0 {
				t.Errorf("bob recorded nothing, got %d", len(theirs))
			}

			tripExpenses, err := env.client.GroupExpenses(ctx, alice, trip.ID)
			if err != nil {
				t.Fatalf("GroupExpenses failed: %v", err)
			}
			if len(tripExpenses) != 1 || tripExpenses[0].GroupID != trip.ID {
				t.Errorf("unexpected trip expenses: %+v", tripExpenses)
			}
		})
	}
}
