package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

const expenseColumns = `e.id, e.group_id, e.description, e.amount, e.paid_by, e.date, e.created_at, e.created_by`

// CreateExpense persists a new expense and its ordered participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = stampNow()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", expense.GroupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, date, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.String(),
		expense.PaidBy, expense.Date, toMillis(expense.CreatedAt), expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, name := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, name) VALUES (?, ?, ?)",
			expense.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "e.group_id = ?", groupID)
}

// ListExpensesByCreator retrieves all expenses recorded by a user, newest first.
func (s *SQLiteStore) ListExpensesByCreator(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "e.created_by = ?", userID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, where string, arg string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses e WHERE `+where+`
		 ORDER BY e.created_at DESC, e.rowid DESC`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var createdAt int64
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
			&expense.PaidBy, &expense.Date, &createdAt, &expense.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.CreatedAt = fromMillis(createdAt)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participants, err := s.collectNames(ctx,
		`SELECT ep.expense_id, ep.name FROM expense_participants ep
		 JOIN expenses e ON e.id = ep.expense_id
		 WHERE `+where+` ORDER BY ep.expense_id, ep.position`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	for _, expense := range expenses {
		expense.Participants = participants[expense.ID]
	}

	return expenses, nil
}
