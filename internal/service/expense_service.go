package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/events"
	"github.com/mmynk/groupsplit/internal/intake"
	"github.com/mmynk/groupsplit/internal/storage"
	"github.com/mmynk/groupsplit/pkg/api"
	"github.com/mmynk/groupsplit/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
}

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates an ExpenseService. A nil publisher drops events.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpenseService{store: store, publisher: publisher}
}

// CreateExpense validates and records an expense in one of the caller's groups.
// Nothing is written when validation fails.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"participants_count", len(req.Msg.Participants),
	)

	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupIDRequired)
	}
	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	expense, err := intake.ValidateExpense(group, userID, intake.ProposedExpense{
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		PaidBy:       req.Msg.PaidBy,
		Participants: req.Msg.Participants,
		Date:         req.Msg.Date,
	})
	if err != nil {
		slog.InfoContext(ctx, "Expense rejected", "group_id", group.ID, "reason", err)
		return nil, connectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "CreateExpense failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	if err := s.publisher.PublishExpenseCreated(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense.created",
			"expense_id", expense.ID,
			"error", err,
		)
	}

	slog.InfoContext(ctx, "Expense created", "expense_id", expense.ID, "group_id", group.ID)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := ownedGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.ErrorContext(ctx, "ListGroupExpenses failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// ListExpenses returns every expense the caller recorded, across groups.
func (s *ExpenseService) ListExpenses(ctx context.Context, _ *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByCreator(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "ListExpenses failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}
