package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

func TestStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	user := models.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	err = s.CreateUser(ctx, models.NewUser("Again", "alice@example.com", "x"))
	assert.True(t, errors.Is(err, storage.ErrConflict))

	_, err = s.GetUserByID(ctx, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestStoreGroupsAndExpenses(t *testing.T) {
	ctx := context.Background()
	s := New()

	base := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	older := &models.Group{Name: "Roommates", Members: []string{"David", "Emma"}, OwnerID: "u1", CreatedAt: base}
	newer := &models.Group{Name: "Lunch", Members: []string{"Grace"}, OwnerID: "u1", CreatedAt: base.Add(time.Hour)}
	other := &models.Group{Name: "Not mine", Members: []string{"X"}, OwnerID: "u2"}
	for _, g := range []*models.Group{older, newer, other} {
		require.NoError(t, s.CreateGroup(ctx, g))
		require.NotEmpty(t, g.ID)
	}

	groups, err := s.ListGroupsByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, newer.ID, groups[0].ID)
	assert.Equal(t, older.ID, groups[1].ID)

	t.Run("returned groups are copies", func(t *testing.T) {
		g, err := s.GetGroup(ctx, older.ID)
		require.NoError(t, err)
		g.Members[0] = "Mallory"

		again, err := s.GetGroup(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"David", "Emma"}, again.Members)
	})

	t.Run("expenses", func(t *testing.T) {
		first := &models.Expense{GroupID: older.ID, Amount: decimal.NewFromInt(10), PaidBy: "David", Participants: []string{"David", "Emma"}, CreatedBy: "u1"}
		second := &models.Expense{GroupID: older.ID, Amount: decimal.NewFromInt(20), PaidBy: "Emma", Participants: []string{"Emma"}, CreatedBy: "u1"}
		require.NoError(t, s.CreateExpense(ctx, first))
		require.NoError(t, s.CreateExpense(ctx, second))

		err := s.CreateExpense(ctx, &models.Expense{GroupID: "missing"})
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		expenses, err := s.ListExpensesByGroup(ctx, older.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, second.ID, expenses[0].ID, "newest first")

		mine, err := s.ListExpensesByCreator(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		none, err := s.ListExpensesByGroup(ctx, newer.ID)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	_, err = s.GetGroup(ctx, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
