package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// ownedGroup loads a group the caller owns. Missing groups are not_found and
// groups owned by someone else are permission_denied.
func ownedGroup(ctx context.Context, store storage.Store, groupID, userID string) (*models.Group, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupIDRequired)
	}

	group, err := store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, errGroupNotFound)
	}
	if err != nil {
		return nil, connectError(err)
	}

	if !group.IsOwnedBy(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotGroupOwner)
	}
	return group, nil
}

// groupBalances recomputes a group's balances from its stored expenses.
func groupBalances(ctx context.Context, store storage.Store, group *models.Group) (calculator.Result, error) {
	expenses, err := store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return calculator.Result{}, fmt.Errorf("failed to list expenses for group %s: %w", group.ID, err)
	}
	return calculator.ComputeBalances(group.Members, toBalanceInputs(expenses)), nil
}
