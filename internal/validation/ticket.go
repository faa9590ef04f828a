package validation

import (
	"fmt"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// ValidateTicket checks every ticket field and returns the first failure as a
// *FieldError, or nil when the ticket is importable.
func ValidateTicket(in *model.TicketInput) error {
	return firstFieldError(validate.Struct(in))
}

// ValidateTicketUpdate applies the ticket rules to the fields present in u.
func ValidateTicketUpdate(u *model.TicketUpdate) error {
	return firstFieldError(validate.Struct(u))
}

// ParseCategory, ParsePriority and ParseStatus check filter values against
// the enumerations; matching is exact.
func ParseCategory(s string) (model.Category, error) {
	for _, c := range model.Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category filter: %s", s)
}

func ParsePriority(s string) (model.Priority, error) {
	for _, p := range model.Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority filter: %s", s)
}

func ParseStatus(s string) (model.Status, error) {
	for _, st := range model.Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status filter: %s", s)
}
