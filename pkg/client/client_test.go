package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupsplit/pkg/api"
	"github.com/mmynk/groupsplit/pkg/api/apiconnect"
)

// fakeGroups records the Authorization header of the last call.
type fakeGroups struct {
	lastAuth atomic.Value
}

func (f *fakeGroups) CreateGroup(_ context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	f.lastAuth.Store(req.Header().Get("Authorization"))
	return connect.NewResponse(&api.CreateGroupResponse{Group: &api.Group{ID: "g-1", Name: req.Msg.Name, Members: req.Msg.Members}}), nil
}

func (f *fakeGroups) GetGroup(_ context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	f.lastAuth.Store(req.Header().Get("Authorization"))
	return connect.NewResponse(&api.GetGroupResponse{Group: &api.Group{ID: req.Msg.GroupID}}), nil
}

func (f *fakeGroups) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return connect.NewResponse(&api.ListGroupsResponse{}), nil
}

func (f *fakeGroups) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeNotFound, errors.New("group not found"))
}

func newFakeServer(t *testing.T) (*Client, *fakeGroups) {
	t.Helper()
	fake := &fakeGroups{}
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(fake))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return New(server.URL, server.Client()), fake
}

func TestClientSendsSessionToken(t *testing.T) {
	c, fake := newFakeServer(t)
	ctx := context.Background()

	alice := &Session{Token: "alice-token"}
	bob := &Session{Token: "bob-token"}

	group, err := c.CreateGroup(ctx, alice, "Flat", "", []string{"Alice", "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", group.ID)
	assert.Equal(t, []string{"Alice", "Bob"}, group.Members)
	assert.Equal(t, "Bearer alice-token", fake.lastAuth.Load())

	_, err = c.Group(ctx, bob, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer bob-token", fake.lastAuth.Load())
}

func TestClientWithoutSession(t *testing.T) {
	c, _ := newFakeServer(t)

	_, err := c.Groups(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = c.Group(context.Background(), &Session{}, "g-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClientSurfacesErrorCodes(t *testing.T) {
	c, _ := newFakeServer(t)

	_, err := c.Balances(context.Background(), &Session{Token: "t"}, "g-1")
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
