package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated indicates a missing, malformed or expired credential.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates a valid identity acting on a resource it does not own.
	ErrForbidden = errors.New("you are not authorized to access this resource")
	// ErrValidation indicates malformed or incomplete caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates no record owned by the caller matched.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")
	// ErrUpstream indicates the persistence layer or another collaborator failed.
	ErrUpstream = errors.New("upstream failure")
)

// ValidationError names the input fields that were rejected.
type ValidationError struct {
	Fields []string
	Reason string
}

// MissingFields reports required fields that were absent.
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: "please provide required fields"}
}

// InvalidField reports a field whose value could not be parsed.
func InvalidField(field, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Upstream wraps a collaborator failure so that both ErrUpstream and the cause match errors.Is.
func Upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}
