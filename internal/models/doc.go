// Package models defines the core domain records for groupsplit.
//
// # Records
//
//   - User: a registered account; owns groups.
//   - Group: a named list of member display names, owned by one user.
//   - Expense: one shared cost inside a group, paid by one member and split
//     equally across its participants.
//
// Members and participants are free-text display names, not user accounts.
// Two members with the same name are indistinguishable.
//
// # Lifecycle
//
// Groups are created once and then only appended to with new expenses.
// Nothing is updated or deleted. Derived values (a group's total spend and
// per-member balances) are never stored; see package calculator.
//
// Relationships use ID strings rather than pointers.
package models
