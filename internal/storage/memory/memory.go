// Package memory provides an in-process storage.Store, used for local
// development and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps records in insertion order behind a single lock.
// Records are copied on the way in and out so callers cannot alias them.
type Store struct {
	mu       sync.RWMutex
	users    []*models.User
	groups   []*models.Group
	expenses []*models.Expense
}

func New() *Store {
	return &Store{}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("failed to create user %s: %w", user.Email, storage.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u := *user
	s.users = append(s.users, &u)
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	s.groups = append(s.groups, copyGroup(group))
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g := s.findGroup(groupID); g != nil {
		return copyGroup(g), nil
	}
	return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
}

func (s *Store) ListGroupsByOwner(_ context.Context, ownerID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []*models.Group
	for _, g := range s.groups {
		if g.OwnerID == ownerID {
			groups = append(groups, copyGroup(g))
		}
	}
	newestFirst(groups, func(g *models.Group) time.Time { return g.CreatedAt })
	return groups, nil
}

func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findGroup(expense.GroupID) == nil {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	s.expenses = append(s.expenses, copyExpense(expense))
	return nil
}

func (s *Store) ListExpensesByGroup(_ context.Context, groupID string) ([]*models.Expense, error) {
	return s.filterExpenses(func(e *models.Expense) bool { return e.GroupID == groupID }), nil
}

func (s *Store) ListExpensesByCreator(_ context.Context, userID string) ([]*models.Expense, error) {
	return s.filterExpenses(func(e *models.Expense) bool { return e.CreatedBy == userID }), nil
}

func (s *Store) filterExpenses(keep func(*models.Expense) bool) []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []*models.Expense
	for _, e := range s.expenses {
		if keep(e) {
			expenses = append(expenses, copyExpense(e))
		}
	}
	newestFirst(expenses, func(e *models.Expense) time.Time { return e.CreatedAt })
	return expenses
}

func (s *Store) findGroup(id string) *models.Group {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// newestFirst orders records by creation time, descending. Records created
// at the same instant end up in reverse insertion order, like the SQLite store.
func newestFirst[T any](records []T, createdAt func(T) time.Time) {
	slices.Reverse(records)
	slices.SortStableFunc(records, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
}

func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return &c
}

func copyExpense(e *models.Expense) *models.Expense {
	c := *e
	c.Participants = slices.Clone(e.Participants)
	return &c
}
