package intake

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupsplit/internal/models"
)

const maxExpenseDescription = 200

// ProposedExpense is an expense as submitted by a caller, before normalisation.
type ProposedExpense struct {
	Description  string
	Amount       *decimal.Decimal // nil when the caller sent no amount
	PaidBy       string
	Participants []string
	Date         string
}

// ValidateExpense checks a proposed expense against its group and returns the
// normalised record ready to persist. The returned expense has no ID or
// CreatedAt; the store assigns those.
//
// Checks, in order:
//  1. all fields present                 -> MissingFields
//  2. at least one participant           -> NoParticipants
//  3. amount >= 0.01 after rounding      -> NonPositiveAmount
//  4. caller owns the group              -> NotAuthorized
//  5. payer is a member                  -> PayerNotMember
//  6. every participant is a member      -> ParticipantsNotMembers
//  7. description fits                   -> FieldTooLong
//  8. date parses                        -> InvalidDate
func ValidateExpense(group *models.Group, callerID string, p ProposedExpense) (*models.Expense, error) {
	description := strings.TrimSpace(p.Description)
	paidBy := strings.TrimSpace(p.PaidBy)
	date := strings.TrimSpace(p.Date)

	if description == "" || p.Amount == nil || paidBy == "" || p.Participants == nil || date == "" {
		return nil, reject(MissingFields)
	}
	if len(p.Participants) == 0 {
		return nil, reject(NoParticipants)
	}

	amount := p.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, reject(NonPositiveAmount)
	}

	if !group.IsOwnedBy(callerID) {
		return nil, reject(NotAuthorized)
	}

	members := memberSet(group.Members)
	if _, ok := members[paidBy]; !ok {
		return nil, reject(PayerNotMember)
	}

	participants := make([]string, len(p.Participants))
	var outsiders []string
	for i, raw := range p.Participants {
		name := strings.TrimSpace(raw)
		participants[i] = name
		if _, ok := members[name]; !ok {
			outsiders = append(outsiders, name)
		}
	}
	if len(outsiders) > 0 {
		return nil, reject(ParticipantsNotMembers, outsiders...)
	}

	if utf8.RuneCountInString(description) > maxExpenseDescription {
		return nil, reject(FieldTooLong, "description")
	}
	if !validDate(date) {
		return nil, reject(InvalidDate)
	}

	return &models.Expense{
		GroupID:      group.ID,
		Description:  description,
		Amount:       amount,
		PaidBy:       paidBy,
		Participants: participants,
		Date:         date,
		CreatedBy:    callerID,
	}, nil
}

// memberSet indexes the trimmed member names of a group.
func memberSet(members []string) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[strings.TrimSpace(m)] = struct{}{}
	}
	return set
}

func validDate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
