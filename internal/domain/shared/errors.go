package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Precondition failures
//
// A PreconditionError signals an expected, recoverable refusal: insufficient
// resources, unmet requirements, an invalid quantity. The Message is the
// literal human-readable reason surfaced to the player, so engines phrase it
// accordingly ("Not enough Deuterium for fuel"). Preconditions are returned
// as values, never used for control flow beyond "the action did not happen".

type PreconditionError struct {
	*DomainError
}

func NewPreconditionError(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// precondition marks the type and everything embedding it, so wrapper
// errors like InsufficientResourcesError classify correctly
func (e *PreconditionError) precondition() {}

type preconditioner interface{ precondition() }

// IsPrecondition reports whether err is an expected precondition failure
func IsPrecondition(err error) bool {
	_, ok := err.(preconditioner)
	return ok
}

type InsufficientResourcesError struct {
	*PreconditionError
	Required  Resources
	Available Resources
}

func NewInsufficientResourcesError(required, available Resources) *InsufficientResourcesError {
	return &InsufficientResourcesError{
		PreconditionError: NewPreconditionError(
			"Not enough resources: need %s, have %s", required, available),
		Required:  required,
		Available: available,
	}
}

type RequirementsNotMetError struct {
	*PreconditionError
	Entity string
}

func NewRequirementsNotMetError(entity string) *RequirementsNotMetError {
	return &RequirementsNotMetError{
		PreconditionError: NewPreconditionError("Requirements for %s are not met", entity),
		Entity:            entity,
	}
}

// Invariant violations
//
// An InvariantViolationError signals a bug (a ship count about to
// go negative, a queue item with negative quantity). The triggering mutation
// is aborted and prior state left intact; callers log it and continue.

type InvariantViolationError struct {
	*DomainError
}

func NewInvariantViolationError(format string, args ...interface{}) *InvariantViolationError {
	return &InvariantViolationError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Not-found error

type NotFoundError struct {
	*DomainError
	Kind string
	ID   string
}

// IsNotFound reports whether err signals a missing aggregate
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %s not found", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}
