package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/storage/memory"
	"github.com/mmynk/groupsplit/pkg/client"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	alice := env.register(t, "alice")

	group, err := env.client.CreateGroup(ctx, alice, "  Roommates ", "Flat 4B", []string{"Alice", " ", "Bob", "", "Charlie"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if group.ID == "" {
		t.Error("expected group ID to be generated")
	}
	if group.Name != "Roommates" {
		t.Errorf("expected trimmed name, got %q", group.Name)
	}
	if len(group.Members) != 3 {
		t.Errorf("expected blank members to be dropped, got %v", group.Members)
	}
	if group.TotalExpenses != 0 {
		t.Errorf("expected zero total, got %v", group.TotalExpenses)
	}
	for _, m := range group.Members {
		if b, ok := group.Balances[m]; !ok || b != 0 {
			t.Errorf("expected zero balance for %s, got %v (present=%v)", m, b, ok)
		}
	}
}

func TestCreateGroupValidation(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	alice := env.register(t, "alice")

	tests := []struct {
		name    string
		group   string
		members []string
	}{
		{"blank name", "   ", []string{"Alice"}},
		{"only blank members", "Trip", []string{" ", ""}},
		{"no members", "Trip", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.CreateGroup(ctx, alice, tt.group, "", tt.members)
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}

	groups, err := env.client.Groups(ctx, alice)
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("rejected groups must not be stored, got %d", len(groups))
	}
}

func TestGroupAccessIsOwnerOnly(t *testing.T) {
	env := setupTestServer(t, memory.New())
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	group, err := env.client.CreateGroup(ctx, alice, "Trip", "", []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err = env.client.Group(ctx, bob, group.ID)
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.client.Balances(ctx, bob, group.ID)
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.client.GroupExpenses(ctx, bob, group.ID)
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.client.Group(ctx, alice, "nonexistent-id")
	expectCode(t, err, connect.CodeNotFound)

	_, err = env.client.Group(ctx, alice, "")
	expectCode(t, err, connect.CodeInvalidArgument)

	bobGroups, err := env.client.Groups(ctx, bob)
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(bobGroups) != 0 {
		t.Errorf("bob should see no groups, got %d", len(bobGroups))
	}
}

func TestListGroupsSummaries(t *testing.T) {
	for _, backend := range storeBackends {
		t.Run(backend.name, func(t *testing.T) {
			env := setupTestServer(t, backend.new(t))
			ctx := context.Background()
			alice := env.register(t, "alice")

			var ids []string
			for _, name := range []string{"First", "Second", "Third"} {
				g, err := env.client.CreateGroup(ctx, alice, name, "", []string{"A", "B"})
				if err != nil {
					t.Fatalf("CreateGroup failed: %v", err)
				}
				ids = append(ids, g.ID)
			}

			_, err := env.client.AddExpense(ctx, alice, client.NewExpense{
				GroupID:      ids[1],
				Description:  "Taxi",
				Amount:       money("30"),
				PaidBy:       "A",
				Participants: []string{"A", "B"},
				Date:         "2024-02-01",
			})
			if err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}

			groups, err := env.client.Groups(ctx, alice)
			if err != nil {
				t.Fatalf("Groups failed: %v", err)
			}
			if len(groups) != 3 {
				t.Fatalf("expected 3 groups, got %d", len(groups))
			}
			if groups[0].ID != ids[2] || groups[1].ID != ids[1] || groups[2].ID != ids[0] {
				t.Errorf("expected newest first, got %s, %s, %s", groups[0].Name, groups[1].Name, groups[2].Name)
			}
			if groups[1].TotalExpenses != 30 || groups[1].Balances["A"] != 15 || groups[1].Balances["B"] != -15 {
				t.Errorf("unexpected summary: %+v", groups[1])
			}
			if groups[0].TotalExpenses != 0 {
				t.Errorf("expected empty group total 0, got %v", groups[0].TotalExpenses)
			}
		})
	}
}
