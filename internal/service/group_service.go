package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/intake"
	"github.com/mmynk/groupsplit/internal/storage"
	"github.com/mmynk/groupsplit/pkg/api"
	"github.com/mmynk/groupsplit/pkg/api/apiconnect"
)

// summaryConcurrency bounds how many group summaries ListGroups computes at once.
const summaryConcurrency = 8

// GroupService implements the Connect GroupService.
type GroupService struct {
	store storage.Store
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	group, err := intake.ValidateGroup(userID, intake.ProposedGroup{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Members:     req.Msg.Members,
	})
	if err != nil {
		return nil, connectError(err)
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.ErrorContext(ctx, "CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	slog.InfoContext(ctx, "Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{
		Group: toAPIGroup(group, calculator.ComputeBalances(group.Members, nil)),
	}), nil
}

// GetGroup returns a group with its current total and balances.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := ownedGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	result, err := groupBalances(ctx, s.store, group)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroup failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group, result)}), nil
}

// ListGroups returns the caller's groups, newest first, each with its summary.
func (s *GroupService) ListGroups(ctx context.Context, _ *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByOwner(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	summaries := make([]*api.Group, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)
	for i, group := range groups {
		g.Go(func() error {
			result, err := groupBalances(gctx, s.store, group)
			if err != nil {
				return err
			}
			summaries[i] = toAPIGroup(group, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	slog.DebugContext(ctx, "ListGroups successful", "count", len(summaries))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: summaries}), nil
}

// GetGroupBalances returns every member's balance in member order, plus any
// expense entries that no longer match a member.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := ownedGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	result, err := groupBalances(ctx, s.store, group)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroupBalances failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}
	if len(result.Unmatched) > 0 {
		slog.WarnContext(ctx, "Group has expenses naming non-members",
			"group_id", group.ID,
			"unmatched", len(result.Unmatched),
		)
	}

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		MemberBalances: toMemberBalances(group.Members, result),
		TotalExpenses:  result.Total.InexactFloat64(),
		Unmatched:      toAPIUnmatched(result.Unmatched),
	}), nil
}
