// Package intake validates proposed groups and expenses before they are stored.
//
// Checks run in a fixed order and the first failure is reported, so the same
// bad input always produces the same reason.
package intake

import (
	"fmt"
	"strings"
)

// Reason identifies why a proposal was rejected.
type Reason string

const (
	MissingFields          Reason = "missing_fields"
	NoParticipants         Reason = "no_participants"
	NonPositiveAmount      Reason = "non_positive_amount"
	NotAuthorized          Reason = "not_authorized"
	PayerNotMember         Reason = "payer_not_member"
	ParticipantsNotMembers Reason = "participants_not_members"
	FieldTooLong           Reason = "field_too_long"
	InvalidDate            Reason = "invalid_date"
	InvalidGroupName       Reason = "invalid_group_name"
	NoValidMembers         Reason = "no_valid_members"
)

// Kind groups reasons into the error taxonomy surfaced to callers.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
)

var messages = map[Reason]string{
	MissingFields:          "description, amount, paidBy, participants and date are required",
	NoParticipants:         "at least one participant is required",
	NonPositiveAmount:      "amount must be at least 0.01",
	NotAuthorized:          "not authorized to modify this group",
	PayerNotMember:         "payer must be a member of the group",
	ParticipantsNotMembers: "all participants must be members of the group",
	FieldTooLong:           "field is too long",
	InvalidDate:            "date must be YYYY-MM-DD or RFC 3339",
	InvalidGroupName:       "group name is required (max 100 characters)",
	NoValidMembers:         "at least one member is required",
}

// RejectedError is returned when a proposal fails a check.
type RejectedError struct {
	Reason Reason
	// Names lists the offending member names for ParticipantsNotMembers, or
	// the offending field for FieldTooLong.
	Names []string
}

func reject(reason Reason, names ...string) *RejectedError {
	return &RejectedError{Reason: reason, Names: names}
}

func (e *RejectedError) Error() string {
	msg := messages[e.Reason]
	if msg == "" {
		msg = string(e.Reason)
	}
	if len(e.Names) > 0 {
		return fmt.Sprintf("%s: %s", msg, strings.Join(e.Names, ", "))
	}
	return msg
}

// Kind reports whether the rejection is a validation or an authorization failure.
func (e *RejectedError) Kind() Kind {
	if e.Reason == NotAuthorized {
		return KindAuthorization
	}
	return KindValidation
}

// Is matches another *RejectedError with the same reason, so callers can write
// errors.Is(err, &intake.RejectedError{Reason: intake.PayerNotMember}).
func (e *RejectedError) Is(target error) bool {
	t, ok := target.(*RejectedError)
	return ok && t.Reason == e.Reason
}
