package intake

import (
	"strings"
	"unicode/utf8"

	"github.com/mmynk/groupsplit/internal/models"
)

const (
	maxGroupName        = 100
	maxGroupDescription = 500
)

// ProposedGroup is a group as submitted by a caller.
type ProposedGroup struct {
	Name        string
	Description string
	Members     []string
}

// ValidateGroup checks a proposed group and returns the normalised record.
// Blank member entries are dropped rather than rejected.
func ValidateGroup(ownerID string, p ProposedGroup) (*models.Group, error) {
	if ownerID == "" {
		return nil, reject(NotAuthorized)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" || utf8.RuneCountInString(name) > maxGroupName {
		return nil, reject(InvalidGroupName)
	}

	description := strings.TrimSpace(p.Description)
	if utf8.RuneCountInString(description) > maxGroupDescription {
		return nil, reject(FieldTooLong, "description")
	}

	members := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil, reject(NoValidMembers)
	}

	return &models.Group{
		Name:        name,
		Description: description,
		Members:     members,
		OwnerID:     ownerID,
	}, nil
}
