// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/groupsplit/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no record.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped when a unique constraint (such as a user's email) is violated.
	ErrConflict = errors.New("already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user. Returns an error wrapping ErrConflict
	// if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by their (normalised) email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the interface for group and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the service layer.
//
// Groups and expenses are append-only: there are no update or delete operations.
type Store interface {
	UserStore

	// CreateGroup persists a new group.
	// The group.ID and group.CreatedAt fields are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID, members in their original order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByOwner returns the owner's groups, newest first.
	ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error)

	// CreateExpense persists a new expense.
	// The expense.ID and expense.CreatedAt fields are populated by the store when empty.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup returns a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesByCreator returns every expense the user recorded, newest first.
	ListExpensesByCreator(ctx context.Context, userID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
