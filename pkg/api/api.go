// Package api defines the request and response messages of the groupsplit
// RPC services. Messages travel as JSON over the Connect protocol; see
// package apiconnect for handlers and clients.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is a group with its derived totals.
// Balances: positive = owed to the member, negative = the member owes.
type Group struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Members       []string           `json:"members"`
	TotalExpenses float64            `json:"totalExpenses"`
	Balances      map[string]float64 `json:"balances"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// Expense is a recorded expense. Amount is in the group's currency.
type Expense struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	Participants []string  `json:"participants"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MemberBalance is one member's position, in group member order.
type MemberBalance struct {
	Member  string  `json:"member"`
	Balance float64 `json:"balance"`
}

// UnmatchedEntry is a credit or debit skipped because the name is no longer a member.
type UnmatchedEntry struct {
	ExpenseID string  `json:"expenseId"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Amount    float64 `json:"amount"`
}

// Auth

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest signs in with email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both Register and Login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// GetProfileRequest asks for the caller's own account.
type GetProfileRequest struct{}

// GetProfileResponse carries the caller's account.
type GetProfileResponse struct {
	User *User `json:"user"`
}

// Groups

// CreateGroupRequest creates a group owned by the caller. Blank members are dropped.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// CreateGroupResponse carries the stored group with zero balances.
type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

// GetGroupRequest names one of the caller's groups.
type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

// GetGroupResponse carries the group with its current total and balances.
type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// ListGroupsRequest lists the caller's groups.
type ListGroupsRequest struct{}

// ListGroupsResponse holds the caller's groups, newest first.
type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// GetGroupBalancesRequest names the group to compute balances for.
type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

// GetGroupBalancesResponse lists balances in member order, rounded to cents.
type GetGroupBalancesResponse struct {
	MemberBalances []*MemberBalance  `json:"memberBalances"`
	TotalExpenses  float64           `json:"totalExpenses"`
	Unmatched      []*UnmatchedEntry `json:"unmatched,omitempty"`
}

// Expenses

// CreateExpenseRequest carries the amount as a decimal so both JSON numbers
// and numeric strings ("12.50") are accepted. A missing amount stays nil.
type CreateExpenseRequest struct {
	GroupID      string           `json:"groupId"`
	Description  string           `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	PaidBy       string           `json:"paidBy"`
	Participants []string         `json:"participants"`
	Date         string           `json:"date"`
}

// CreateExpenseResponse carries the stored expense.
type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListGroupExpensesRequest names the group whose expenses to list.
type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId"`
}

// ListGroupExpensesResponse holds a group's expenses, newest first.
type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// ListExpensesRequest lists every expense the caller has recorded, across groups.
type ListExpensesRequest struct{}

// ListExpensesResponse holds the caller's expenses, newest first.
type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}
