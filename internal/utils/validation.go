package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// Ticket numbers and prize ranges live in the three-digit space [1, 500].
const (
	TicketMin = 1
	TicketMax = 500
)

var (
	nameRegexp   = regexp.MustCompile(`^[\p{L}]+(?: [\p{L}]+)*$`)
	cedulaRegexp = regexp.MustCompile(`^[0-9]{10}$`)
	ticketRegexp = regexp.MustCompile(`^[0-9]{3}$`)
)

// ValidationError reports a rejected input field. It is returned before any
// write reaches the persistence layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateName checks that a name is non-empty and contains letters and
// spaces only
func ValidateName(name string) error {
	if name == "" {
		return NewValidationError("name", "name is required")
	}
	if !nameRegexp.MatchString(name) {
		return NewValidationError("name", "name may contain letters and spaces only")
	}
	return nil
}

// ValidateCedula checks that a cedula is exactly 10 digits
func ValidateCedula(cedula string) error {
	if cedula == "" {
		return NewValidationError("cedula", "cedula is required")
	}
	if !cedulaRegexp.MatchString(cedula) {
		return NewValidationError("cedula", "cedula must be exactly 10 digits")
	}
	return nil
}

// ValidateTicketNumber checks that a ticket number is exactly 3 digits with
// a numeric value in [1, 500]
func ValidateTicketNumber(ticket string) error {
	if !ticketRegexp.MatchString(ticket) {
		return NewValidationError("ticket_number", "ticket number must be exactly 3 digits")
	}
	n, err := strconv.Atoi(ticket)
	if err != nil || n < TicketMin || n > TicketMax {
		return NewValidationError("ticket_number", fmt.Sprintf("ticket number must be between %03d and %d", TicketMin, TicketMax))
	}
	return nil
}

// ValidatePrizeRange checks that a prize range is inside [1, 500] and ordered
func ValidatePrizeRange(rangeStart, rangeEnd int) error {
	if rangeStart < TicketMin || rangeStart > TicketMax {
		return NewValidationError("range_start", fmt.Sprintf("range start must be between %d and %d", TicketMin, TicketMax))
	}
	if rangeEnd < TicketMin || rangeEnd > TicketMax {
		return NewValidationError("range_end", fmt.Sprintf("range end must be between %d and %d", TicketMin, TicketMax))
	}
	if rangeStart > rangeEnd {
		return NewValidationError("range_start", "range start must not be greater than range end")
	}
	return nil
}
