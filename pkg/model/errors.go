package model

import (
	"errors"
	"fmt"
)

var (
	// Returned when an entity is constructed with malformed data (negative ids, capacities, penalties, mismatched lengths, ...)
	ErrInvalidArgument = errors.New("invalid argument")
	// Returned when a searched element does not exist
	ErrNotFound = errors.New("not found")
	// Returned when a caller breaks the assignment contract of an event or a builder
	ErrContractViolation = errors.New("contract violation")
)

// PreconditionError is raised (as a panic value) when a constraint is evaluated against an event that is not scheduled
// enough to be evaluated, e.g. it has no time or it needs a room and has none
type PreconditionError struct {
	Class  int
	Reason string
}

func (err PreconditionError) Error() string {
	return fmt.Sprintf("class %d cannot be evaluated: %s", err.Class, err.Reason)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func contractViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
