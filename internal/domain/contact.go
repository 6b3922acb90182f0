package domain

import (
	"fmt"
	"strings"
)

// Contact is one emergency contact. ID is the creation time in milliseconds;
// callers that add contacts faster than the clock ticks must bump the ID past
// the previous one to keep IDs unique.
type Contact struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Relation  string `json:"relation"`
	IsPrimary bool   `json:"isPrimary"`
}

// ValidationError reports a rejected user input. It is surfaced as a warning,
// never a crash: the operation aborts and prior state is retained.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewContact validates and builds a contact. Name and phone are required;
// relation is free-form. The ID comes from the injected clock.
func NewContact(name, phone, relation string, isPrimary bool) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Contact{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if phone == "" {
		return Contact{}, &ValidationError{Field: "phone", Reason: "must not be empty"}
	}

	return Contact{
		ID:        clock.Now().UnixMilli(),
		Name:      name,
		Phone:     phone,
		Relation:  relation,
		IsPrimary: isPrimary,
	}, nil
}

// EmergencyNumbers maps service types to dial strings. Static reference data
// for the contacts view.
var EmergencyNumbers = map[string]string{
	"911":     "911",
	"fire":    "911",
	"medical": "1-800-222-1222",
	"police":  "311",
}
