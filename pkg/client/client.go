// Package client is a typed Go client for the groupsplit server.
//
// Register or Login returns a Session; every other call takes that session
// explicitly, so one Client can serve several users at once.
package client

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupsplit/pkg/api"
	"github.com/mmynk/groupsplit/pkg/api/apiconnect"
)

// ErrNoSession is returned when an authenticated call is made without a token.
var ErrNoSession = errors.New("client: not signed in")

// Session is a signed-in user.
type Session struct {
	Token string
	User  *api.User
}

type Client struct {
	auth     *apiconnect.AuthServiceClient
	groups   *apiconnect.GroupServiceClient
	expenses *apiconnect.ExpenseServiceClient
}

// New creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient connect.HTTPClient, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		auth:     apiconnect.NewAuthServiceClient(httpClient, baseURL, opts...),
		groups:   apiconnect.NewGroupServiceClient(httpClient, baseURL, opts...),
		expenses: apiconnect.NewExpenseServiceClient(httpClient, baseURL, opts...),
	}
}

// NewExpense describes an expense to record.
type NewExpense struct {
	GroupID      string
	Description  string
	Amount       decimal.Decimal
	PaidBy       string
	Participants []string
	Date         string
}

func authorized[T any](s *Session, msg *T) (*connect.Request[T], error) {
	if s == nil || s.Token == "" {
		return nil, ErrNoSession
	}
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.Token)
	return req, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	resp, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Msg.Token, User: resp.Msg.User}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Msg.Token, User: resp.Msg.User}, nil
}

func (c *Client) Profile(ctx context.Context, s *Session) (*api.User, error) {
	req, err := authorized(s, &api.GetProfileRequest{})
	if err != nil {
		return nil, err
	}
	resp, err := c.auth.GetProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.User, nil
}

func (c *Client) CreateGroup(ctx context.Context, s *Session, name, description string, members []string) (*api.Group, error) {
	req, err := authorized(s, &api.CreateGroupRequest{
		Name:        name,
		Description: description,
		Members:     members,
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.groups.CreateGroup(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Group, nil
}

func (c *Client) Group(ctx context.Context, s *Session, groupID string) (*api.Group, error) {
	req, err := authorized(s, &api.GetGroupRequest{GroupID: groupID})
	if err != nil {
		return nil, err
	}
	resp, err := c.groups.GetGroup(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Group, nil
}

// Groups lists the session user's groups, newest first.
func (c *Client) Groups(ctx context.Context, s *Session) ([]*api.Group, error) {
	req, err := authorized(s, &api.ListGroupsRequest{})
	if err != nil {
		return nil, err
	}
	resp, err := c.groups.ListGroups(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Groups, nil
}

func (c *Client) Balances(ctx context.Context, s *Session, groupID string) (*api.GetGroupBalancesResponse, error) {
	req, err := authorized(s, &api.GetGroupBalancesRequest{GroupID: groupID})
	if err != nil {
		return nil, err
	}
	resp, err := c.groups.GetGroupBalances(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) AddExpense(ctx context.Context, s *Session, e NewExpense) (*api.Expense, error) {
	req, err := authorized(s, &api.CreateExpenseRequest{
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       &e.Amount,
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		Date:         e.Date,
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.expenses.CreateExpense(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Expense, nil
}

func (c *Client) GroupExpenses(ctx context.Context, s *Session, groupID string) ([]*api.Expense, error) {
	req, err := authorized(s, &api.ListGroupExpensesRequest{GroupID: groupID})
	if err != nil {
		return nil, err
	}
	resp, err := c.expenses.ListGroupExpenses(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Expenses, nil
}

// Expenses lists every expense the session user recorded, across groups.
func (c *Client) Expenses(ctx context.Context, s *Session) ([]*api.Expense, error) {
	req, err := authorized(s, &api.ListExpensesRequest{})
	if err != nil {
		return nil, err
	}
	resp, err := c.expenses.ListExpenses(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg.Expenses, nil
}
